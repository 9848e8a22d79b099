package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// OutputFormat represents the output format for CLI commands.
type OutputFormat string

const (
	OutputFormatText  OutputFormat = "text"
	OutputFormatTable OutputFormat = "table"
	OutputFormatJSON  OutputFormat = "json"
	OutputFormatYAML  OutputFormat = "yaml"
)

var _ pflag.Value = (*OutputFormat)(nil)

func outputFormats() []string {
	return []string{string(OutputFormatText), string(OutputFormatTable), string(OutputFormatJSON), string(OutputFormatYAML)}
}

// String implements pflag.Value.
func (f *OutputFormat) String() string {
	return string(*f)
}

// Set implements pflag.Value.
func (f *OutputFormat) Set(s string) error {
	switch OutputFormat(strings.ToLower(s)) {
	case OutputFormatText, OutputFormatTable, OutputFormatJSON, OutputFormatYAML:
		*f = OutputFormat(strings.ToLower(s))
		return nil
	default:
		return fmt.Errorf("unsupported format %q (supported: %s)", s, strings.Join(outputFormats(), ", "))
	}
}

// Type implements pflag.Value.
func (f *OutputFormat) Type() string {
	return "format"
}

// defaultFormat returns the format named by COLOURTYPE_FORMAT, or text.
func defaultFormat() OutputFormat {
	f := OutputFormatText
	if env := os.Getenv(envFormat); env != "" {
		if err := f.Set(env); err != nil {
			return OutputFormatText
		}
	}
	return f
}

// writeStructured encodes v as JSON or YAML.
func writeStructured(w io.Writer, format OutputFormat, v any) error {
	switch format {
	case OutputFormatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to convert to JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case OutputFormatYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to convert to YAML: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unsupported structured format: %s", format)
	}
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
