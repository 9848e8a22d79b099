package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/colourtype/internal/colour"
)

type inspectOptions struct {
	*globalOptions
	format     OutputFormat
	decimal    bool
	negate     bool
	monochrome bool
	preview    bool
}

// colourReport is a single colour in every representation.
type colourReport struct {
	Input     string     `json:"input" yaml:"input"`
	HTML      string     `json:"html" yaml:"html"`
	Hex       string     `json:"hex" yaml:"hex"`
	Decimal   int        `json:"decimal" yaml:"decimal"`
	RGB       colour.RGB `json:"rgb" yaml:"rgb"`
	HSL       colour.HSL `json:"hsl" yaml:"hsl"`
	Luminance float64    `json:"luminance" yaml:"luminance"`

	color colour.Color
}

func newColourReport(input string, c colour.Color) colourReport {
	return colourReport{
		Input:     input,
		HTML:      c.HTML(),
		Hex:       c.Hex(),
		Decimal:   c.Decimal(),
		RGB:       c.RGB(),
		HSL:       c.HSL(),
		Luminance: c.Luminance(),
		color:     c,
	}
}

func newInspectCmd(global *globalOptions) *cobra.Command {
	opts := &inspectOptions{globalOptions: global, format: defaultFormat()}

	cmd := &cobra.Command{
		Use:   "inspect <colour>...",
		Short: "Show a colour in every representation",
		Long: `Parse one or more colours and print them as HTML hex, bare hex, packed
decimal, RGB and HSL.

A colour may be written as hex text ("#1a2b3c", "1a2b3c", "#abc") or as a
comma separated RGB triple ("26,43,60"). With --decimal, arguments are read
as packed integers instead of hex.

Examples:
  # Show a colour in every representation
  colourtype inspect "#1a2b3c"

  # Invert a colour, then reduce it to black or white
  colourtype inspect --negate --monochrome 255,128,0

  # Read packed integers, as stored in a database column
  colourtype inspect --decimal 1715004 16777215

  # Emit JSON
  colourtype inspect -f json abc`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("preview") {
				opts.preview = isTerminal(cmd.OutOrStdout())
			}
			return runInspect(cmd.OutOrStdout(), opts, args)
		},
	}

	cmd.Flags().VarP(&opts.format, "format", "f", "output format (text, table, json, yaml)")
	cmd.Flags().BoolVarP(&opts.decimal, "decimal", "d", false, "read arguments as packed decimal integers")
	cmd.Flags().BoolVar(&opts.negate, "negate", false, "invert each colour")
	cmd.Flags().BoolVar(&opts.monochrome, "monochrome", false, "reduce each colour to near black or white (applied after --negate)")
	cmd.Flags().BoolVar(&opts.preview, "preview", false, "show colour swatches (default: on for terminals)")

	return cmd
}

func runInspect(w io.Writer, opts *inspectOptions, args []string) error {
	logger := opts.Logger().Named("inspect")

	reports := make([]colourReport, 0, len(args))
	for _, arg := range args {
		v, err := inputValue(arg, opts.decimal)
		if err != nil {
			return err
		}
		logger.Debug("parsing colour", "input", arg, "kind", v.Kind())

		c, err := colour.Parse(v)
		if err != nil {
			return fmt.Errorf("invalid colour %q: %w", arg, err)
		}
		if opts.negate {
			c = c.Negate()
		}
		if opts.monochrome {
			c = c.Monochrome()
		}
		reports = append(reports, newColourReport(arg, c))
	}

	switch opts.format {
	case OutputFormatJSON, OutputFormatYAML:
		if len(reports) == 1 {
			return writeStructured(w, opts.format, reports[0])
		}
		return writeStructured(w, opts.format, reports)
	case OutputFormatTable:
		_, err := io.WriteString(w, reportTable(reports, opts.preview).Render())
		return err
	default:
		for i, r := range reports {
			if i > 0 {
				fmt.Fprintln(w)
			}
			writeReportText(w, r, opts.preview)
		}
		return nil
	}
}

// inputValue classifies a command line argument as a packed integer, an
// RGB triple or hex text.
func inputValue(arg string, decimal bool) (colour.Value, error) {
	if decimal {
		n, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil {
			return colour.Value{}, fmt.Errorf("invalid decimal colour %q: %w", arg, err)
		}
		return colour.Int(n), nil
	}

	if strings.Contains(arg, ",") {
		parts := strings.Split(arg, ",")
		channels := make([]any, len(parts))
		for i, p := range parts {
			channels[i] = strings.TrimSpace(p)
		}
		return colour.SeqOf(channels), nil
	}

	return colour.Text(arg), nil
}

func writeReportText(w io.Writer, r colourReport, preview bool) {
	if preview {
		fmt.Fprintln(w, colour.FormatWithSwatch(r.color, 8))
	} else {
		fmt.Fprintln(w, r.HTML)
	}
	fmt.Fprintf(w, "  hex:     %s\n", r.Hex)
	fmt.Fprintf(w, "  decimal: %d\n", r.Decimal)
	fmt.Fprintf(w, "  rgb:     %s\n", r.RGB)
	fmt.Fprintf(w, "  hsl:     %s\n", r.HSL)
	fmt.Fprintf(w, "  luma:    %.4f\n", r.Luminance)
}

func reportTable(reports []colourReport, preview bool) *Table {
	headers := []string{"Input", "HTML", "Decimal", "RGB", "HSL"}
	if preview {
		headers = append([]string{"Swatch"}, headers...)
	}

	table := NewTable(headers...)
	for _, r := range reports {
		row := []string{r.Input, r.HTML, strconv.Itoa(r.Decimal), r.RGB.String(), r.HSL.String()}
		if preview {
			row = append([]string{colour.Swatch(r.color, 6)}, row...)
		}
		table.AddRow(row...)
	}
	return table
}
