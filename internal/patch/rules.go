package patch

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/srRodolfo/dev-container/internal/config"
)

// Rule is one ordered line-editor substitution. Rules built by
// EnvAssignment also carry the key and value they establish, which lets
// Verify check the outcome structurally.
type Rule struct {
	Name   string
	Script string
	Key    string
	Value  string
}

// IsAssignment reports whether the rule sets a dotenv key.
func (r Rule) IsAssignment() bool {
	return r.Key != ""
}

func (r Rule) String() string {
	return fmt.Sprintf("%s [%s]", r.Name, r.Script)
}

// EnvAssignment returns a rule that sets key to value whether the key is
// currently active or commented out.
func EnvAssignment(name, key, value string) Rule {
	pattern := "^[#[:space:]]*" + escapePattern(key) + "=.*$"
	line := key + "=" + dotenvValue(value)
	return Rule{
		Name:   name,
		Script: "s/" + pattern + "/" + escapeReplacement(line) + "/",
		Key:    key,
		Value:  value,
	}
}

// LaravelEnvRules returns the substitutions applied to a fresh project's
// .env, in order.
func LaravelEnvRules(req *config.ProjectRequest, settings *config.Settings) []Rule {
	return []Rule{
		EnvAssignment("app url", "APP_URL", "http://"+req.Host),
		EnvAssignment("db connection", "DB_CONNECTION", "mariadb"),
		EnvAssignment("db port", "DB_PORT", strconv.Itoa(int(settings.DBPort))),
		EnvAssignment("db database", "DB_DATABASE", req.Name),
		EnvAssignment("db host", "DB_HOST", settings.DBHost),
		EnvAssignment("db username", "DB_USERNAME", "root"),
		EnvAssignment("db password", "DB_PASSWORD", settings.DBRootPassword),
	}
}

// ViteServerRule makes the dev server listen on all interfaces by adding a
// server block before the closing `});` of vite.config.js.
func ViteServerRule() Rule {
	return Rule{
		Name:   "vite server host",
		Script: `s|});$|\tserver: {\n\t\thost: '0.0.0.0'\n\t}\n});|`,
	}
}

// escapePattern escapes BRE metacharacters and the '/' delimiter.
func escapePattern(s string) string {
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(`\/.*[]^$`, r) {
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// escapeReplacement escapes characters special in a sed replacement.
func escapeReplacement(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\\', '/', '&':
			b.WriteRune('\\')
			b.WriteRune(r)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// dotenvValue quotes value when a dotenv parser would otherwise alter it.
func dotenvValue(value string) string {
	if !strings.ContainsAny(value, " \t#\"'$\\") {
		return value
	}
	if !strings.Contains(value, "'") {
		return "'" + value + "'"
	}
	escaped := strings.NewReplacer(`\`, `\\`, `"`, `\"`, `$`, `\$`).Replace(value)
	return `"` + escaped + `"`
}
