// Package migrations embeds the goose migrations for every supported
// database dialect. Each dialect has its own directory.
package migrations

import "embed"

//go:embed postgres/*.sql sqlite/*.sql
var Migrations embed.FS

const (
	PostgresDir = "postgres"
	SQLiteDir   = "sqlite"
)
