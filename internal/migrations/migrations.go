// Package migrations embeds the SQL schema migrations applied at
// startup via goose.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
