package app

import (
	"github.com/spf13/cobra"

	"github.com/shapestone/shape-escsv/internal/logging"
)

var fmtExample = `
		# Normalize a file: drop blank lines, canonical header separator
		escsv fmt people.csv

		# Read from stdin
		cat people.csv | escsv fmt -`

func newFmtCommand(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "fmt FILE",
		Short:   "Parse a table and print it in normalized form",
		Example: fmtExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := g.readTable(cmd, args[0])
			if err != nil {
				return err
			}
			n, err := t.WriteTo(g.out)
			if err != nil {
				return err
			}
			logging.WithFields(g.ctx, "file", args[0]).Info("formatted", "bytes", n)
			return nil
		},
	}
}
