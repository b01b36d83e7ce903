// Package migrations embeds the goose SQL migrations so the migrate command
// and the integration tests run exactly the schema shipped in the binary.
package migrations

import "embed"

// FS holds all *.sql migration files embedded at compile time.
// Pass it to goose.NewProvider instead of relying on a filesystem path.
//
//go:embed *.sql
var FS embed.FS
