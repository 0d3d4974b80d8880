// Package testutil provides a mocked development environment and test
// fixtures.
//
// # Fixtures
//
// Fixtures are embedded using go:embed:
//
//	fixtures/env                 environment dotenv file
//	fixtures/env.example         the example it is copied from
//	fixtures/env.invalid         unparseable ports and an empty container name
//	fixtures/docker-compose.yml  php, node, apache and mariadb services
//	fixtures/laravel.env         the .env of a freshly created Laravel project
//
// # Test Environment
//
// NewTestEnv seeds a MockFS with the fixtures and wires an app.App to it
// with a mock runtime and runner:
//
//	env := testutil.NewTestEnv(t)
//	settings := env.Settings()
//	env.StartContainers(settings)
//	report := env.App.Doctor(ctx, settings)
package testutil
