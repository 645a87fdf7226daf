// Package migrations embebe las migraciones SQL de goose en el binario.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
