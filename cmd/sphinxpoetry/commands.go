package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Azhovan/sphinxpoetry"
)

type rootOptions struct {
	file     string
	logLevel string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "sphinxpoetry",
		Short:         "Read Sphinx settings from a Poetry pyproject.toml",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVarP(&opts.file, "file", "f", sphinxpoetry.DefaultFile, "path to the pyproject document")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(newShowCmd(opts), newValidateCmd(opts))

	return root
}

func newLogger(level string, w io.Writer) (zerolog.Logger, error) {
	parsed, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).
		Level(parsed).
		With().
		Timestamp().
		Str("component", "sphinxpoetry").
		Logger(), nil
}

func load(ctx context.Context, cmd *cobra.Command, opts *rootOptions) (*sphinxpoetry.Config, error) {
	logger, err := newLogger(opts.logLevel, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	return sphinxpoetry.NewLoader().
		WithFile(opts.file).
		WithLogger(logger).
		Load(ctx)
}

func newShowCmd(root *rootOptions) *cobra.Command {
	var format string
	var sources bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the namespace conf.py would receive",
		Long: `Prints the project metadata (name, version, description, author)
followed by every key of the [tool.sphinx-pyproject] table in document order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var dumpOpts []sphinxpoetry.DumpOption
			switch format {
			case "text":
			case "json":
				dumpOpts = append(dumpOpts, sphinxpoetry.AsJSON())
			case "yaml":
				dumpOpts = append(dumpOpts, sphinxpoetry.AsYAML())
			default:
				return fmt.Errorf("unsupported format %q (supported: text, json, yaml)", format)
			}
			if sources {
				dumpOpts = append(dumpOpts, sphinxpoetry.WithSources())
			}

			cfg, err := load(cmd.Context(), cmd, root)
			if err != nil {
				return err
			}
			return sphinxpoetry.DumpEffective(cmd.OutOrStdout(), cfg, dumpOpts...)
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format (text, json, yaml)")
	cmd.Flags().BoolVar(&sources, "sources", false, "annotate each key with the document key it came from")
	return cmd
}

func newValidateCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check that the document can be loaded",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load(cmd.Context(), cmd, root)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is valid (%s %s, %d settings)\n",
				cfg.Path(), cfg.Name(), cfg.Version(), cfg.Len())
			return nil
		},
	}
}
