// Package migrations embeds the goose SQL migration files so the migrate
// command works from a bare binary.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
