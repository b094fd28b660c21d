package dbx

import "database/sql"

// Compile-time checks: both handle types must be usable by repositories.
var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)
