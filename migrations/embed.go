// Package migrations embeds the goose SQL migrations so the binary can
// migrate its schema at startup without shipping extra files.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
