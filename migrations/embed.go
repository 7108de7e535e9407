// Package migrations holds the versioned SQL schema applied by the migration
// runner. Files are named V<version>__<name>.sql.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
