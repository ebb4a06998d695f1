package app

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/shapestone/shape-escsv/internal/logging"
	"github.com/shapestone/shape-escsv/pkg/sqlite"
)

var importExample = `
		# Load a headed file into table "people"
		escsv import people.csv --db app.db --table people

		# Let escsv pick a table name (import_<id>)
		escsv import people.csv`

type importOptions struct {
	db    string
	table string
}

// Bind adds the import specific flags to the flagset passed in as an argument.
func (o *importOptions) Bind(flags *pflag.FlagSet) {
	flags.StringVar(&o.db, "db", "", "SQLite database path (default ESCSV_DB_PATH).")
	flags.StringVar(&o.table, "table", "", "Destination table; generated when empty.")
}

// Complete fills in a generated table name when none was given.
func (o *importOptions) Complete() {
	if o.table == "" {
		o.table = "import_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	}
}

func newImportCommand(g *globalOptions) *cobra.Command {
	opts := &importOptions{}

	cmd := &cobra.Command{
		Use:     "import FILE",
		Short:   "Load a headed table into SQLite",
		Example: importExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Complete()

			t, err := g.readTable(cmd, args[0])
			if err != nil {
				return err
			}

			path := g.dbPath(opts.db)
			logger := logging.WithFields(g.ctx, "file", args[0], "db", path, "table", opts.table)

			db, err := sqlite.Open(path)
			if err != nil {
				return err
			}
			defer db.Close()

			logger.Info("import started")
			n, err := db.ImportTable(g.ctx, opts.table, t)
			if err != nil {
				logger.Error("import failed", "error", err)
				return err
			}
			logger.Info("import completed", "rows", n)

			_, err = fmt.Fprintf(g.out, "imported %d rows into %s\n", n, opts.table)
			return err
		},
	}
	opts.Bind(cmd.Flags())

	return cmd
}
