package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/colourtype/internal/colour"
	"github.com/jmylchreest/colourtype/internal/image"
	"github.com/jmylchreest/colourtype/internal/palette"
)

// algorithmValue adapts palette.Algorithm to pflag.Value.
type algorithmValue palette.Algorithm

var _ pflag.Value = (*algorithmValue)(nil)

func (a *algorithmValue) String() string {
	return string(*a)
}

func (a *algorithmValue) Set(s string) error {
	alg := palette.Algorithm(strings.ToLower(s))
	if _, err := palette.NewExtractor(alg); err != nil {
		return err
	}
	*a = algorithmValue(alg)
	return nil
}

func (a *algorithmValue) Type() string {
	return "algorithm"
}

type extractOptions struct {
	*globalOptions
	format    OutputFormat
	algorithm algorithmValue
	count     int
	precision int
	hex       bool
	output    string
	preview   bool
}

func newExtractCmd(global *globalOptions) *cobra.Command {
	defaults := palette.DefaultConfig()
	opts := &extractOptions{
		globalOptions: global,
		format:        defaultFormat(),
		algorithm:     algorithmValue(defaults.Algorithm),
	}

	cmd := &cobra.Command{
		Use:   "extract <image>",
		Short: "Extract the most prominent colours from an image",
		Long: `Extract the most prominent colours from an image.

The dominant algorithm (default) counts how often each shade occurs; the
kmeans algorithm clusters similar colours together. Precision is the pixel
sampling step: higher values are faster but less accurate.

Supported image formats: JPEG, PNG, GIF, WebP

Examples:
  # Five most used colours as RGB triples
  colourtype extract wallpaper.jpg

  # Eight colours as HTML hex strings
  colourtype extract --hex -c 8 wallpaper.png

  # Sample every pixel and emit JSON
  colourtype extract -p 1 -f json wallpaper.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("preview") {
				opts.preview = opts.output == "" && isTerminal(cmd.OutOrStdout())
			}
			return runExtract(cmd, opts, args[0])
		},
	}

	cmd.Flags().VarP(&opts.format, "format", "f", "output format (text, table, json, yaml)")
	cmd.Flags().VarP(&opts.algorithm, "algorithm", "a", "extraction algorithm (dominant, kmeans)")
	cmd.Flags().IntVarP(&opts.count, "colours", "c", defaults.Count, fmt.Sprintf("number of colours to extract (1-%d)", palette.MaxCount))
	cmd.Flags().IntVarP(&opts.precision, "precision", "p", defaults.Precision, "sample every Nth pixel on each axis")
	cmd.Flags().BoolVar(&opts.hex, "hex", false, "output HTML hex strings instead of RGB triples")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&opts.preview, "preview", false, "show colour swatches (default: on for terminals)")

	return cmd
}

func runExtract(cmd *cobra.Command, opts *extractOptions, path string) error {
	logger := opts.Logger().Named("extract")

	if err := image.ValidateImagePath(path); err != nil {
		return fmt.Errorf("invalid image path: %w", err)
	}

	cfg := palette.Config{
		Algorithm: palette.Algorithm(opts.algorithm),
		Count:     opts.count,
		Precision: opts.precision,
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	p, err := palette.FromFile(cmd.Context(), path, cfg, logger)
	if err != nil {
		return err
	}
	logger.Info("extracted palette", "path", path, "colours", p.Len())

	var buf bytes.Buffer
	if err := writePalette(&buf, p, opts); err != nil {
		return err
	}

	if opts.output != "" {
		logger.Debug("writing output", "file", opts.output)
		if err := os.WriteFile(opts.output, buf.Bytes(), 0o644); err != nil { // #nosec G306 - palette output is not sensitive
			return fmt.Errorf("failed to write output file: %w", err)
		}
		return nil
	}

	_, err = io.Copy(cmd.OutOrStdout(), &buf)
	return err
}

func writePalette(w io.Writer, p *palette.Palette, opts *extractOptions) error {
	switch opts.format {
	case OutputFormatJSON, OutputFormatYAML:
		if opts.hex {
			return writeStructured(w, opts.format, p.HTML())
		}
		return writeStructured(w, opts.format, p.Document())
	case OutputFormatTable:
		headers := []string{"#", "HTML", "RGB"}
		if opts.preview {
			headers = append(headers, "Swatch")
		}
		table := NewTable(headers...)
		for i, c := range p.Colors() {
			row := []string{strconv.Itoa(i + 1), c.HTML(), c.RGB().String()}
			if opts.preview {
				row = append(row, colour.Swatch(c, 6))
			}
			table.AddRow(row...)
		}
		_, err := io.WriteString(w, table.Render())
		return err
	default:
		for _, c := range p.Colors() {
			text := c.RGB().String()
			if opts.hex {
				text = c.HTML()
			}
			if opts.preview {
				text = colour.Swatch(c, 8) + " " + text
			}
			if _, err := fmt.Fprintln(w, text); err != nil {
				return err
			}
		}
		return nil
	}
}
