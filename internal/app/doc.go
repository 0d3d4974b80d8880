// Package app wires laravel-maker's components together.
//
// The App struct holds the shared dependencies and builds every
// component from them:
//
//	type App struct {
//	    Options *config.Options       // tool options (viper)
//	    FS      system.FileSystem     // host filesystem
//	    Runner  system.Runner         // host processes (sudo, docker)
//	    Runtime runtime.Runtime       // container runtime
//	    Status  runtime.StatusChecker // CLI or Engine API status queries
//	}
//
// Use New with functional options; anything not supplied is built from
// Options:
//
//	a := app.New(app.WithOptions(opts))
//
//	// Testing with custom dependencies
//	a := app.New(
//	    app.WithFS(system.NewMockFS()),
//	    app.WithRuntime(runtime.NewMockRuntime()),
//	)
//
// Besides the provisioning pipeline, App implements the read-only
// commands: Doctor (environment preflight) and ProjectStatus (journal
// plus live checks).
package app
