// Package migrations carries the schema of the front desk store.
package migrations

import "embed"

// FS holds the numbered SQL files applied by db.Migrator.
//
//go:embed *.sql
var FS embed.FS
