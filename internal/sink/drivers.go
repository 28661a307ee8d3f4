package sink

// Driver registrations for every supported dialect. The mysql and go-ora
// packages are imported non-blank elsewhere (DSN building); these three are
// side-effect only.
import (
	_ "github.com/jackc/pgx/v5/stdlib"    // pgx as database/sql driver "pgx"
	_ "github.com/microsoft/go-mssqldb"   // driver "sqlserver"
	_ "modernc.org/sqlite"                // cgo-free SQLite, driver "sqlite"
)
