// Package provision runs the end-to-end workflow that turns a validated
// project request into a served Laravel application.
//
// The pipeline passes through these stages, in order:
//
//	container-ready          PHP container running (starting the environment if needed)
//	project-scaffolded       composer create-project inside the PHP container
//	config-patched           .env rewritten and, optionally, verified
//	dependencies-installed   artisan maintenance, composer update, npm install, vite binding
//	vhost-written            Apache virtual host on the host filesystem
//	host-alias-registered    /etc/hosts entry
//	proxy-restarted          apache compose service restarted
//
// A failing stage aborts the run. Nothing is rolled back; instead every
// completed stage is recorded in a journal, and a run with Resume set skips
// the stages the journal already lists. The container check always runs.
package provision
