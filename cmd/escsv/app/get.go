package app

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/shapestone/shape-escsv/pkg/escsv"
)

var getExample = `
		# Print the serialized cell in row 0, column "city"
		escsv get people.csv --row 0 --col city

		# Print the unescaped text of column 2
		escsv get people.csv --row 0 --col 2 --raw`

type getOptions struct {
	row int
	col string
	raw bool
}

// Bind adds the get specific flags to the flagset passed in as an argument.
func (o *getOptions) Bind(flags *pflag.FlagSet) {
	flags.IntVar(&o.row, "row", 0, "Zero-based data row index.")
	flags.StringVar(&o.col, "col", "", "Column name, or zero-based column index.")
	flags.BoolVar(&o.raw, "raw", false, "Print the unescaped text instead of the serialized field.")
}

// Run looks up the cell and prints it.
func (o *getOptions) Run(g *globalOptions, t *escsv.Table) error {
	v, err := o.lookup(t)
	if err != nil {
		return err
	}

	if !o.raw {
		_, err = fmt.Fprintln(g.out, v.String())
		return err
	}

	s, err := v.AsString()
	if err != nil {
		return fmt.Errorf("row %d column %q: %w", o.row, o.col, err)
	}
	_, err = fmt.Fprintln(g.out, s)
	return err
}

// lookup resolves --col as a header name first, then as an index.
func (o *getOptions) lookup(t *escsv.Table) (escsv.Value, error) {
	if t.HasHeaders() {
		v, err := t.GetByName(o.row, o.col)
		if err == nil || !errors.Is(err, escsv.ErrUnknownColumn) {
			return v, err
		}
	}

	idx, convErr := strconv.Atoi(o.col)
	if convErr != nil {
		if t.HasHeaders() {
			return escsv.Value{}, fmt.Errorf("%w: %q", escsv.ErrUnknownColumn, o.col)
		}
		return escsv.Value{}, fmt.Errorf("%w: column %q is not an index", escsv.ErrNoHeaders, o.col)
	}
	return t.Get(o.row, idx)
}

func newGetCommand(g *globalOptions) *cobra.Command {
	opts := &getOptions{}

	cmd := &cobra.Command{
		Use:     "get FILE",
		Short:   "Print a single cell",
		Example: getExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.col == "" {
				return errors.New("--col is required")
			}
			t, err := g.readTable(cmd, args[0])
			if err != nil {
				return err
			}
			return opts.Run(g, t)
		},
	}
	opts.Bind(cmd.Flags())

	return cmd
}
