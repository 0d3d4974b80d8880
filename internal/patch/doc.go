// Package patch applies ordered sed substitutions to files inside a
// container and checks the result.
//
// Each Rule becomes one invocation of
//
//	docker exec <container> sh -c "cd <workdir> && sed -i '<script>' <file>"
//
// The first failing rule aborts the run with a docker error naming the
// rule. There is no rollback: earlier rules stay applied.
//
// Rules created with EnvAssignment match both `KEY=...` and `# KEY=...`
// lines, so they do not depend on one another. Verify parses the file with
// godotenv afterwards and reports the first key that does not hold its
// expected value.
package patch
