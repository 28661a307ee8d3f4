package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/tabload/internal/config"
	"github.com/vvka-141/tabload/internal/format"
	"github.com/vvka-141/tabload/internal/logging"
	"github.com/vvka-141/tabload/internal/sink"
	"github.com/vvka-141/tabload/pkg/tabload"
)

var loadCmd = &cobra.Command{
	Use:   "load <file>",
	Short: "Load a tabular file into a database table",
	Long: `Load reads a tabular file and bulk-inserts its rows into the target table.

The file format is chosen from the extension:
  .csv .txt .tsv .tab   delimited text (header row required)
  .dbf                  dBase table
  .xlsx                 Excel workbook (--sheet selects the worksheet)
  .accdb .mdb           Access database (--source-table is required)

Connection parameters resolve with the precedence
flag > TABLOAD_* environment variable > tabload.yaml in the working
directory. A .env file in the working directory is loaded first.

Password Authentication:
  For security, the password is NOT accepted as a CLI flag. Set the
  TABLOAD_PASSWORD environment variable or put it in a .env file.

Examples:
  # CSV into a fresh SQLite table
  tabload load people.csv --dialect sqlite --db-path ./people.db -t people --create

  # Pipe-delimited text into Postgres, replacing prior contents
  tabload load tanks.txt --delimiter '|' -t tanks --truncate \
    --dialect postgres -H dbhost -U loader -d warehouse

  # One sheet of a workbook into SQL Server
  tabload load book.xlsx --sheet "BSA 12 2020" -t bsa --create \
    --dialect sqlserver -H dbhost -U loader -d warehouse

  # An Access table into Oracle
  tabload load Tanks.accdb --source-table tbAllRegUSTs -t all_reg_usts --create \
    --dialect oracle -H dbhost -U loader --service ORCLPDB1`,
	Args: cobra.ExactArgs(1),
	RunE: runLoad,
}

type loadFlagValues struct {
	conn        connFlags
	table       string
	create      bool
	truncate    bool
	replace     bool
	normalize   bool
	batchSize   int
	delimiter   string
	qualified   bool
	encoding    string
	sheet       string
	sourceTable string
	timeout     time.Duration
}

var loadFlags loadFlagValues

func init() {
	rootCmd.AddCommand(loadCmd)

	loadCmd.Flags().StringVar(&loadFlags.conn.dialect, "dialect", "",
		"Target database dialect: postgres|mysql|sqlite|sqlserver|oracle\n"+
			"Precedence: --dialect > $TABLOAD_DIALECT > tabload.yaml")
	loadCmd.Flags().StringVarP(&loadFlags.conn.host, "host", "H", "",
		"Database server host")
	loadCmd.Flags().IntVarP(&loadFlags.conn.port, "port", "p", 0,
		"Database server port (default: the dialect's standard port)")
	loadCmd.Flags().StringVarP(&loadFlags.conn.username, "username", "U", "",
		"Database user")
	loadCmd.Flags().StringVarP(&loadFlags.conn.database, "database", "d", "",
		"Target database name")
	loadCmd.Flags().StringVar(&loadFlags.conn.path, "db-path", "",
		"SQLite database file (sqlite only)")
	loadCmd.Flags().StringVar(&loadFlags.conn.service, "service", "",
		"Oracle service name (oracle only)")
	loadCmd.Flags().StringVar(&loadFlags.conn.sslMode, "sslmode", "",
		"SSL mode (postgres only): disable|allow|prefer|require|verify-ca|verify-full")

	loadCmd.Flags().StringVarP(&loadFlags.table, "table", "t", "",
		"Destination table name (required)")
	loadCmd.Flags().BoolVar(&loadFlags.create, "create", false,
		"Create the destination table when it does not exist")
	loadCmd.Flags().BoolVar(&loadFlags.truncate, "truncate", false,
		"Remove all existing rows before inserting")
	loadCmd.Flags().BoolVar(&loadFlags.replace, "replace", false,
		"Drop and recreate the destination table")
	loadCmd.Flags().BoolVar(&loadFlags.normalize, "normalize-names", true,
		"Rewrite column names into safe SQL identifiers")
	loadCmd.Flags().IntVar(&loadFlags.batchSize, "batch-size", 0,
		fmt.Sprintf("Rows per insert round trip (default %d)", tabload.DefaultBatchSize))

	loadCmd.Flags().StringVar(&loadFlags.delimiter, "delimiter", "",
		"Field separator for delimited text (default ',')")
	loadCmd.Flags().BoolVar(&loadFlags.qualified, "qualified", false,
		"Treat '\"' as a field qualifier in delimited text")
	loadCmd.Flags().StringVar(&loadFlags.encoding, "encoding", "",
		"Text encoding of delimited/DBF sources: utf8|cp1252 (default: probe)")
	loadCmd.Flags().StringVar(&loadFlags.sheet, "sheet", "",
		"Worksheet name for .xlsx sources (default: first sheet)")
	loadCmd.Flags().StringVar(&loadFlags.sourceTable, "source-table", "",
		"Table to extract from .accdb/.mdb sources (required for Access)")
	loadCmd.Flags().DurationVar(&loadFlags.timeout, "timeout", 0,
		"Overall timeout for the load (default: none)")

	if err := loadCmd.MarkFlagRequired("table"); err != nil {
		panic(err)
	}
}

func runLoad(cmd *cobra.Command, args []string) error {
	log := logging.NewConsoleLogger(getVerboseFlag(cmd))

	// Best effort; a missing .env is the normal case.
	if err := godotenv.Load(); err == nil {
		log.Verbose("loaded environment from .env")
	}

	cfg, err := loadProjectConfig()
	if err != nil {
		return err
	}

	conn, err := resolveConnection(loadFlags.conn, loadFromEnvironment(), cfg)
	if err != nil {
		return err
	}

	dest := tabload.Destination{Connection: conn, Table: loadFlags.table}
	ropts, wopts := buildOptions(cfg, cmd.Flags().Changed("normalize-names"))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if loadFlags.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, loadFlags.timeout)
		defer cancel()
	}

	loader := tabload.NewFileLoader(format.NewReader(), sink.New(log), log)
	start := time.Now()
	n, err := loader.Load(ctx, args[0], ropts, dest, wopts)
	if err != nil {
		log.Error("%v", err)
		return err
	}
	log.Info("done: %d rows in %s", n, time.Since(start).Round(time.Millisecond))
	return nil
}

// buildOptions folds the flags and the optional project config into reader
// and writer options. Flags win over config file values; for normalize-names
// the config only applies when the flag was left at its default, since the
// flag's default true is indistinguishable from an explicit --normalize-names
// without asking pflag whether it changed.
func buildOptions(cfg *config.ProjectConfig, normalizeFlagSet bool) (tabload.ReadOptions, tabload.WriteOptions) {
	normalize := loadFlags.normalize
	if cfg != nil && cfg.Load.NormalizeNames != nil && !normalizeFlagSet {
		normalize = *cfg.Load.NormalizeNames
	}

	ropts := tabload.ReadOptions{
		Qualified:      loadFlags.qualified,
		Encoding:       loadFlags.encoding,
		Sheet:          loadFlags.sheet,
		Table:          loadFlags.sourceTable,
		NormalizeNames: normalize,
	}
	if loadFlags.delimiter != "" {
		ropts.Delimiter = []rune(loadFlags.delimiter)[0]
	}

	wopts := tabload.WriteOptions{
		CreateIfMissing: loadFlags.create,
		TruncateFirst:   loadFlags.truncate,
		Replace:         loadFlags.replace,
		NormalizeNames:  normalize,
		BatchSize:       loadFlags.batchSize,
	}
	if cfg != nil {
		if wopts.BatchSize == 0 {
			wopts.BatchSize = cfg.Load.BatchSize
		}
		if !wopts.CreateIfMissing {
			wopts.CreateIfMissing = cfg.Load.CreateIfMissing
		}
	}
	return ropts, wopts
}
