package testutil

import (
	"embed"
)

//go:embed fixtures/*
var fixturesFS embed.FS

// Fixture names
const (
	EnvFixture        = "env"
	ExampleEnvFixture = "env.example"
	InvalidEnvFixture = "env.invalid"
	ComposeFixture    = "docker-compose.yml"
	LaravelEnvFixture = "laravel.env"
)

// LoadFixture loads a fixture file by name.
func LoadFixture(name string) ([]byte, error) {
	return fixturesFS.ReadFile("fixtures/" + name)
}

// MustFixture loads a fixture and panics if it is missing.
func MustFixture(name string) []byte {
	data, err := LoadFixture(name)
	if err != nil {
		panic(err)
	}
	return data
}
