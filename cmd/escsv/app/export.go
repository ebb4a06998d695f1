package app

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/shapestone/shape-escsv/internal/logging"
	"github.com/shapestone/shape-escsv/pkg/escsv"
	"github.com/shapestone/shape-escsv/pkg/sqlite"
)

var exportExample = `
		# Print a query result as a table
		escsv export --db app.db --query "SELECT * FROM people"

		# Without the header line
		escsv export --db app.db --query "SELECT name FROM people" --no-header`

type exportOptions struct {
	db    string
	query string
}

// Bind adds the export specific flags to the flagset passed in as an argument.
func (o *exportOptions) Bind(flags *pflag.FlagSet) {
	flags.StringVar(&o.db, "db", "", "SQLite database path (default ESCSV_DB_PATH).")
	flags.StringVar(&o.query, "query", "", "SQL query to run.")
}

// withoutHeaders copies the rows of t into a table with no column names.
func withoutHeaders(t *escsv.Table) (*escsv.Table, error) {
	out := escsv.NewTable()
	for i := 0; i < t.RowCount(); i++ {
		row, err := t.Row(i)
		if err != nil {
			return nil, err
		}
		if err := out.Append(row); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func newExportCommand(g *globalOptions) *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:     "export",
		Short:   "Print a SQLite query result as a table",
		Example: exportExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.query == "" {
				return errors.New("--query is required")
			}

			path := g.dbPath(opts.db)
			db, err := sqlite.Open(path)
			if err != nil {
				return err
			}
			defer db.Close()

			t, err := db.ExportQuery(g.ctx, opts.query)
			if err != nil {
				return err
			}
			if !g.header {
				if t, err = withoutHeaders(t); err != nil {
					return err
				}
			}

			logging.WithFields(g.ctx, "db", path).Info("exported", "rows", t.RowCount())
			_, err = t.WriteTo(g.out)
			return err
		},
	}
	opts.Bind(cmd.Flags())

	return cmd
}
