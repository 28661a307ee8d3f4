package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/vvka-141/tabload/internal/config"
	"github.com/vvka-141/tabload/pkg/tabload"
)

// connFlags holds the connection parameters from CLI flags.
//
// Note: the password is NOT a CLI flag for security reasons (it would be
// visible in shell history and the process list). Use the TABLOAD_PASSWORD
// environment variable or a .env file instead.
type connFlags struct {
	dialect  string
	host     string
	port     int
	username string
	database string
	path     string
	service  string
	sslMode  string
}

// envVars holds the TABLOAD_* environment variables.
type envVars struct {
	dialect  string
	host     string
	port     string
	username string
	password string
	database string
	path     string
	service  string
	sslMode  string
}

func loadFromEnvironment() envVars {
	return envVars{
		dialect:  os.Getenv("TABLOAD_DIALECT"),
		host:     os.Getenv("TABLOAD_HOST"),
		port:     os.Getenv("TABLOAD_PORT"),
		username: os.Getenv("TABLOAD_USER"),
		password: os.Getenv("TABLOAD_PASSWORD"),
		database: os.Getenv("TABLOAD_DATABASE"),
		path:     os.Getenv("TABLOAD_PATH"),
		service:  os.Getenv("TABLOAD_SERVICE"),
		sslMode:  os.Getenv("TABLOAD_SSLMODE"),
	}
}

// resolveConnection builds a ConnectionDescriptor using the precedence
// flag > environment variable > tabload.yaml. The project config is optional;
// a missing tabload.yaml in the working directory is not an error.
func resolveConnection(flags connFlags, env envVars, cfg *config.ProjectConfig) (tabload.ConnectionDescriptor, error) {
	var fileConn config.ConnectionConfig
	if cfg != nil {
		fileConn = cfg.Connection
	}

	dialectName := firstOf(flags.dialect, env.dialect, fileConn.Dialect)
	if dialectName == "" {
		return tabload.ConnectionDescriptor{}, fmt.Errorf(
			"no dialect given: pass --dialect, set TABLOAD_DIALECT or add a connection section to %s: %w",
			config.ConfigFileName, tabload.ErrInvalidConfig)
	}
	dialect, err := tabload.ParseDialect(dialectName)
	if err != nil {
		return tabload.ConnectionDescriptor{}, err
	}

	port := flags.port
	if port == 0 && env.port != "" {
		port, err = strconv.Atoi(env.port)
		if err != nil {
			return tabload.ConnectionDescriptor{}, fmt.Errorf("TABLOAD_PORT %q is not a number: %w", env.port, tabload.ErrInvalidConfig)
		}
	}
	if port == 0 {
		port = fileConn.Port
	}

	desc := tabload.ConnectionDescriptor{
		Dialect:  dialect,
		Host:     firstOf(flags.host, env.host, fileConn.Host),
		Port:     port,
		Username: firstOf(flags.username, env.username, fileConn.Username),
		Password: env.password,
		Database: firstOf(flags.database, env.database, fileConn.Database),
		Path:     firstOf(flags.path, env.path, fileConn.Path),
		Service:  firstOf(flags.service, env.service, fileConn.Service),
		SSLMode:  firstOf(flags.sslMode, env.sslMode, fileConn.SSLMode),
	}
	if err := desc.Validate(); err != nil {
		return tabload.ConnectionDescriptor{}, err
	}
	return desc, nil
}

// loadProjectConfig reads tabload.yaml from the working directory, treating
// its absence as "no config".
func loadProjectConfig() (*config.ProjectConfig, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(cwd)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %v: %w", config.ConfigFileName, err, tabload.ErrInvalidConfig)
	}
	return cfg, nil
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
