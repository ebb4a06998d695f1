// Package app wires the escsv command line.
package app

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/shapestone/shape-escsv/internal/config"
	"github.com/shapestone/shape-escsv/internal/logging"
	"github.com/shapestone/shape-escsv/pkg/escsv"
)

var escsvLong = `
		Reads, normalizes and moves backslash-escaped CSV tables.

		Settings come from ESCSV_* environment variables (optionally
		loaded from a .env file in the working directory) and are
		overridden by flags.`

// globalOptions holds state shared by every subcommand.
type globalOptions struct {
	noHeader  bool
	logLevel  string
	logFormat string

	out    io.Writer
	errOut io.Writer

	cfg    *config.Config
	header bool
	ctx    context.Context
}

// Bind adds the global flags to the flagset passed in as an argument.
func (o *globalOptions) Bind(flags *pflag.FlagSet) {
	flags.BoolVar(&o.noHeader, "no-header", false, "Input has no header line (overrides ESCSV_HEADER).")
	flags.StringVar(&o.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides ESCSV_LOG_LEVEL).")
	flags.StringVar(&o.logFormat, "log-format", "", "Log format: text or json (overrides ESCSV_LOG_FORMAT).")
}

// Complete loads configuration, applies flag overrides and sets up logging.
func (o *globalOptions) Complete(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Logging.Level = o.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = o.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	o.header = cfg.Input.Header
	if flags.Changed("no-header") {
		o.header = !o.noHeader
	}
	o.cfg = cfg

	logger := logging.Setup(o.errOut, cfg.Logging.Level, cfg.Logging.Format)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	o.ctx = logging.NewContext(ctx, logger)
	return nil
}

// readTable reads a table from path, or from stdin when path is "-".
func (o *globalOptions) readTable(cmd *cobra.Command, path string) (*escsv.Table, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	t, err := escsv.ReadTable(r, o.header)
	if err != nil {
		return nil, err
	}
	logging.WithFields(o.ctx, "file", path).Debug("table read",
		"rows", t.RowCount(), "columns", t.ColCount(), "headers", t.HasHeaders())
	return t, nil
}

// dbPath returns the flag value, falling back to ESCSV_DB_PATH.
func (o *globalOptions) dbPath(flag string) string {
	if flag != "" {
		return flag
	}
	return o.cfg.Database.Path
}

// NewEscsvCommand creates the root escsv command writing results to out and
// logs to errOut.
func NewEscsvCommand(out, errOut io.Writer) *cobra.Command {
	g := &globalOptions{out: out, errOut: errOut}

	cmd := &cobra.Command{
		Use:           "escsv",
		Short:         "Work with backslash-escaped CSV tables",
		Long:          escsvLong,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.Complete(cmd)
		},
	}
	g.Bind(cmd.PersistentFlags())

	cmd.AddCommand(
		newFmtCommand(g),
		newGetCommand(g),
		newImportCommand(g),
		newExportCommand(g),
	)
	return cmd
}
