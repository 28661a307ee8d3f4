package sink

import (
	"fmt"
	"net/url"

	"github.com/go-sql-driver/mysql"
	go_ora "github.com/sijms/go-ora/v2"

	"github.com/vvka-141/tabload/pkg/tabload"
)

// Default ports per dialect, applied when the descriptor leaves Port zero.
var defaultPorts = map[tabload.Dialect]int{
	tabload.DialectPostgres:  5432,
	tabload.DialectMySQL:     3306,
	tabload.DialectSQLServer: 1433,
	tabload.DialectOracle:    1521,
}

// buildDSN renders the driver-specific connection string for a descriptor.
// The descriptor is assumed validated.
func buildDSN(c tabload.ConnectionDescriptor) (string, error) {
	port := c.Port
	if port == 0 {
		port = defaultPorts[c.Dialect]
	}

	switch c.Dialect {
	case tabload.DialectSQLite:
		return c.Path, nil

	case tabload.DialectPostgres:
		u := url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(c.Username, c.Password),
			Host:   fmt.Sprintf("%s:%d", c.Host, port),
			Path:   "/" + c.Database,
		}
		if c.SSLMode != "" {
			u.RawQuery = url.Values{"sslmode": {c.SSLMode}}.Encode()
		}
		return u.String(), nil

	case tabload.DialectMySQL:
		cfg := mysql.NewConfig()
		cfg.User = c.Username
		cfg.Passwd = c.Password
		cfg.Net = "tcp"
		cfg.Addr = fmt.Sprintf("%s:%d", c.Host, port)
		cfg.DBName = c.Database
		cfg.ParseTime = true
		return cfg.FormatDSN(), nil

	case tabload.DialectSQLServer:
		u := url.URL{
			Scheme:   "sqlserver",
			User:     url.UserPassword(c.Username, c.Password),
			Host:     fmt.Sprintf("%s:%d", c.Host, port),
			RawQuery: url.Values{"database": {c.Database}}.Encode(),
		}
		return u.String(), nil

	case tabload.DialectOracle:
		return go_ora.BuildUrl(c.Host, port, c.Service, c.Username, c.Password, nil), nil

	default:
		return "", fmt.Errorf("unknown dialect %q: %w", c.Dialect, tabload.ErrInvalidConfig)
	}
}
