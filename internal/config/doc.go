// Package config resolves everything a provisioning run is parameterized by.
//
// # Environment Settings
//
// Settings come from the development environment's dotenv file, located in
// the current directory or its parent. When only env.example exists it is
// copied to .env and the user is asked whether to continue with the
// defaults. Five keys are read:
//
//	CONTAINER_NAME    base container name (default dev_container)
//	SERVER_PORT       published web port (default 8000)
//	DB_PORT           database port (default 3306)
//	DB_ROOT_PASSWORD  database root password (default password)
//	DB_HOST           database service host (default mariadb)
//
// The process environment takes precedence over the file. A missing, blank
// or unparsable value falls back to its default; resolution never fails on
// a bad value.
//
// # Project Requests
//
// NormalizeName turns free-form input into a kebab-case identifier and
// NewProjectRequest derives the host alias (<name>.test) and source path
// (../src/<name>) from it.
//
// # Tool Options
//
// Options hold the tool's own settings (poll budget, paths, backends). They
// are loaded through viper from flags, MAKER_* environment variables and an
// optional .laravel-maker config file.
package config
