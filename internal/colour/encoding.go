package colour

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// MarshalJSON encodes the colour as its HTML string, e.g. "#1a2b3c".
func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.HTML())
}

// UnmarshalJSON accepts a hex string, a packed integer or an [r, g, b]
// array. A JSON null leaves the colour unchanged.
func (c *Color) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("decode colour: %w", err)
	}

	parsed, err := Parse(ValueOf(raw))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalText encodes the colour as its HTML string.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.HTML()), nil
}

// UnmarshalText parses hexadecimal colour text.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseString(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalYAML encodes the colour as its HTML string.
func (c Color) MarshalYAML() (any, error) {
	return c.HTML(), nil
}

// UnmarshalYAML accepts a hex string, a packed integer or an [r, g, b]
// sequence. Plain scalars that YAML resolves to integers are treated as
// packed values, so a hex colour made only of digits must be quoted.
// Floats and booleans are coerced the way Any coerces them, and mappings
// read as black.
func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		return c.UnmarshalYAML(node.Alias)
	}

	var v Value
	switch node.Kind {
	case yaml.ScalarNode:
		switch node.Tag {
		case "!!null":
			return nil
		case "!!int":
			var n int
			if err := node.Decode(&n); err != nil {
				return fmt.Errorf("decode colour: %w", err)
			}
			v = Int(n)
		case "!!float":
			var f float64
			if err := node.Decode(&f); err != nil {
				return fmt.Errorf("decode colour: %w", err)
			}
			v = Any(f)
		case "!!bool":
			var b bool
			if err := node.Decode(&b); err != nil {
				return fmt.Errorf("decode colour: %w", err)
			}
			v = Any(b)
		default:
			v = Text(node.Value)
		}
	case yaml.SequenceNode:
		var seq []any
		if err := node.Decode(&seq); err != nil {
			return fmt.Errorf("decode colour: %w", err)
		}
		v = SeqOf(seq)
	default:
		v = Any(nil)
	}

	parsed, err := Parse(v)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Value implements driver.Valuer. Colours are stored as their packed
// integer.
func (c Color) Value() (driver.Value, error) {
	return int64(c.Decimal()), nil
}

// Scan implements sql.Scanner. A NULL column reads as black. Integer
// columns are taken as packed values; text columns are read as decimal when
// they hold only digits, ignoring surrounding space, and as hexadecimal
// colour text otherwise.
func (c *Color) Scan(src any) error {
	switch x := src.(type) {
	case nil:
		*c = Color{}
	case int64:
		*c = New(int(x))
	case float64:
		*c = New(floatToInt(x))
	case []byte:
		return c.scanText(string(x))
	case string:
		return c.scanText(x)
	default:
		return fmt.Errorf("scan colour: unsupported source type %T", src)
	}
	return nil
}

func (c *Color) scanText(s string) error {
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		*c = New(n)
		return nil
	}
	parsed, err := ParseString(s)
	if err != nil {
		return fmt.Errorf("scan colour: %w", err)
	}
	*c = parsed
	return nil
}

// NullColor is a Color that may be NULL in storage.
type NullColor struct {
	Color Color
	Valid bool
}

// Scan implements sql.Scanner.
func (n *NullColor) Scan(src any) error {
	if src == nil {
		n.Color, n.Valid = Color{}, false
		return nil
	}
	if err := n.Color.Scan(src); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

// Value implements driver.Valuer.
func (n NullColor) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.Color.Value()
}
