// Package migrations embeds the SQL schema migrations applied by db.Store.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
