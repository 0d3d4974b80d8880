// Package compose reads the development environment's compose file.
//
// It is a read-only view used by preflight checks: the maker never edits
// the compose file and only drives it through the docker compose CLI.
package compose
