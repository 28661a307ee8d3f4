package tabload

import (
	"fmt"
	"strings"
)

// Dialect identifies a supported target database kind.
type Dialect string

const (
	DialectPostgres  Dialect = "postgres"
	DialectMySQL     Dialect = "mysql"
	DialectSQLite    Dialect = "sqlite"
	DialectSQLServer Dialect = "sqlserver"
	DialectOracle    Dialect = "oracle"
)

// Dialects lists all supported dialects in display order.
func Dialects() []Dialect {
	return []Dialect{DialectPostgres, DialectMySQL, DialectSQLite, DialectSQLServer, DialectOracle}
}

// ParseDialect maps a user-supplied name to a Dialect. Matching is
// case-insensitive and accepts the common aliases ("postgresql", "pg",
// "mssql").
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "postgres", "postgresql", "pg":
		return DialectPostgres, nil
	case "mysql":
		return DialectMySQL, nil
	case "sqlite", "sqlite3":
		return DialectSQLite, nil
	case "sqlserver", "mssql":
		return DialectSQLServer, nil
	case "oracle":
		return DialectOracle, nil
	default:
		return "", fmt.Errorf("unknown dialect %q (supported: postgres, mysql, sqlite, sqlserver, oracle): %w",
			s, ErrInvalidConfig)
	}
}

// ConnectionDescriptor identifies a target database and carries the
// parameters its dialect requires. It is immutable once constructed and owned
// by the loader call that opens a connection from it.
//
// Password is never accepted as a CLI flag; the CLI reads it from the
// TABLOAD_PASSWORD environment variable.
type ConnectionDescriptor struct {
	Dialect  Dialect
	Host     string
	Port     int
	Username string
	Password string
	Database string
	Path     string // SQLite database file
	Service  string // Oracle service name
	SSLMode  string // Postgres sslmode
}

// Validate checks that the parameters the dialect requires are present.
func (c *ConnectionDescriptor) Validate() error {
	switch c.Dialect {
	case DialectSQLite:
		if c.Path == "" {
			return fmt.Errorf("sqlite connection requires a database file path: %w", ErrInvalidConfig)
		}
		return nil
	case DialectOracle:
		if c.Service == "" {
			return fmt.Errorf("oracle connection requires a service name: %w", ErrInvalidConfig)
		}
	case DialectPostgres, DialectMySQL, DialectSQLServer:
		if c.Database == "" {
			return fmt.Errorf("%s connection requires a database name: %w", c.Dialect, ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("unknown dialect %q: %w", c.Dialect, ErrInvalidConfig)
	}
	if c.Host == "" {
		return fmt.Errorf("%s connection requires a host: %w", c.Dialect, ErrInvalidConfig)
	}
	if c.Username == "" {
		return fmt.Errorf("%s connection requires a username: %w", c.Dialect, ErrInvalidConfig)
	}
	return nil
}

// Destination names the table a load writes to, together with the connection
// used to reach it.
type Destination struct {
	Connection ConnectionDescriptor
	Table      string
}

// Validate checks the destination table name and connection parameters.
func (d *Destination) Validate() error {
	if d.Table == "" {
		return fmt.Errorf("destination table name is required: %w", ErrInvalidConfig)
	}
	return d.Connection.Validate()
}
