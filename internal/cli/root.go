// Package cli provides the command-line interface for colourtype.
package cli

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/colourtype/internal/version"
)

// Environment variables read by the CLI.
const (
	envFormat   = "COLOURTYPE_FORMAT"
	envLogLevel = "COLOURTYPE_LOG_LEVEL"
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	verbose bool
	quiet   bool
	logger  hclog.Logger
}

// Logger returns the command logger, or a null logger before the command
// has started.
func (o *globalOptions) Logger() hclog.Logger {
	if o.logger == nil {
		return hclog.NewNullLogger()
	}
	return o.logger
}

// NewRootCmd builds the colourtype command tree.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "colourtype",
		Short: "Parse, convert and extract RGB colours",
		Long: `colourtype parses colours from hex strings, RGB triples and packed integers,
converts them between hexadecimal, decimal, RGB and HSL, and extracts the
most prominent colours from images.`,
		Version:      version.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts.logger = newLogger(cmd.ErrOrStderr(), opts.verbose, opts.quiet)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newInspectCmd(opts))
	rootCmd.AddCommand(newExtractCmd(opts))

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	format := OutputFormatText

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == OutputFormatJSON || format == OutputFormatYAML {
				return writeStructured(cmd.OutOrStdout(), format, version.GetInfo())
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.String())
			return err
		},
	}
	cmd.Flags().VarP(&format, "format", "f", "output format (text, json, yaml)")
	return cmd
}
