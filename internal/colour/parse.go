package colour

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrEmpty is returned when colour text contains no hex digits.
	ErrEmpty = errors.New("empty colour text")

	// ErrInvalidHex is returned when colour text is not valid hexadecimal.
	ErrInvalidHex = errors.New("invalid hexadecimal colour")
)

// ParseError describes colour text that could not be parsed.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse colour %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Kind identifies which representation a Value holds.
type Kind uint8

const (
	// KindOther holds an arbitrary value that is coerced to a number.
	KindOther Kind = iota
	// KindSeq holds a sequence of channel values.
	KindSeq
	// KindText holds hexadecimal colour text.
	KindText
	// KindInt holds a packed integer.
	KindInt
	// KindColor holds an existing Color.
	KindColor
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindSeq:
		return "sequence"
	case KindText:
		return "text"
	case KindInt:
		return "integer"
	case KindColor:
		return "colour"
	default:
		return "other"
	}
}

// Value is an input accepted by Parse. Build one with Seq, SeqInts, SeqOf,
// Text, Int, Of, Any or ValueOf.
type Value struct {
	kind  Kind
	seq   []int
	text  string
	n     int
	color Color
	other any
}

// Kind reports which representation v holds.
func (v Value) Kind() Kind {
	return v.kind
}

// Seq wraps channel values. Fractions are truncated toward zero.
func Seq(channels ...float64) Value {
	seq := make([]int, len(channels))
	for i, f := range channels {
		seq[i] = floatToInt(f)
	}
	return Value{kind: KindSeq, seq: seq}
}

// SeqInts wraps integer channel values.
func SeqInts(channels ...int) Value {
	return Value{kind: KindSeq, seq: append([]int(nil), channels...)}
}

// SeqOf wraps loosely typed channel values such as a decoded JSON array.
// Each element is coerced the same way Any coerces its value.
func SeqOf(channels []any) Value {
	seq := make([]int, len(channels))
	for i, ch := range channels {
		seq[i] = coerceInt(ch)
	}
	return Value{kind: KindSeq, seq: seq}
}

// Text wraps hexadecimal colour text such as "#1a2b3c", "abc" or "ff0000".
func Text(s string) Value {
	return Value{kind: KindText, text: s}
}

// Int wraps a packed integer.
func Int(n int) Value {
	return Value{kind: KindInt, n: n}
}

// Of wraps an existing Color.
func Of(c Color) Value {
	return Value{kind: KindColor, color: c}
}

// Any wraps an arbitrary value. Parse coerces it to an integer on a best
// effort basis; values with no numeric meaning become 0.
func Any(v any) Value {
	return Value{kind: KindOther, other: v}
}

// ValueOf selects the Value arm that matches the dynamic type of v. Strings
// become Text, slices become sequences, integers become Int and Colors are
// copied. Everything else falls back to Any.
func ValueOf(v any) Value {
	switch x := v.(type) {
	case Value:
		return x
	case Color:
		return Of(x)
	case *Color:
		if x == nil {
			return Int(0)
		}
		return Of(*x)
	case string:
		return Text(x)
	case []byte:
		return Text(string(x))
	case int:
		return Int(x)
	case []int:
		return SeqInts(x...)
	case []float64:
		return Seq(x...)
	case []any:
		return SeqOf(x)
	case RGB:
		return SeqInts(int(x.R), int(x.G), int(x.B))
	default:
		return Any(v)
	}
}

// Parse converts v into a Color.
//
// Sequences use their first three elements as red, green and blue; shorter
// sequences give black. Text has every '#' removed, a three digit shorthand
// is expanded ("abc" becomes "aabbcc"), and the result is read as
// hexadecimal. Text that is not valid hexadecimal returns black and a
// *ParseError. No other input produces an error; out of range numbers are
// clamped.
func Parse(v Value) (Color, error) {
	switch v.kind {
	case KindSeq:
		if len(v.seq) < 3 {
			return Color{}, nil
		}
		return FromRGB(v.seq[0], v.seq[1], v.seq[2]), nil
	case KindText:
		return parseHex(v.text)
	case KindInt:
		return New(v.n), nil
	case KindColor:
		return v.color, nil
	default:
		return New(coerceInt(v.other)), nil
	}
}

// ParseOrZero is Parse with malformed text degrading to black.
func ParseOrZero(v Value) Color {
	c, _ := Parse(v)
	return c
}

// ParseString parses hexadecimal colour text.
func ParseString(s string) (Color, error) {
	return Parse(Text(s))
}

// parseHex reads colour text as hexadecimal after stripping '#' and
// expanding shorthand.
func parseHex(input string) (Color, error) {
	s := strings.TrimSpace(strings.ReplaceAll(input, "#", ""))
	if s == "" {
		return Color{}, &ParseError{Input: input, Err: ErrEmpty}
	}

	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}

	n, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return New(MaxValue), nil
		}
		return Color{}, &ParseError{Input: input, Err: ErrInvalidHex}
	}
	if n > MaxValue {
		return New(MaxValue), nil
	}
	return New(int(n)), nil
}

// coerceInt converts v to an int, truncating fractions and saturating at
// the int range. Values with no numeric meaning give 0.
func coerceInt(v any) int {
	switch x := v.(type) {
	case nil:
		return 0
	case int:
		return x
	case int8:
		return int(x)
	case int16:
		return int(x)
	case int32:
		return int(x)
	case int64:
		return int(x)
	case uint:
		return uintToInt(uint64(x))
	case uint8:
		return int(x)
	case uint16:
		return int(x)
	case uint32:
		return int(x)
	case uint64:
		return uintToInt(x)
	case float32:
		return floatToInt(float64(x))
	case float64:
		return floatToInt(x)
	case bool:
		if x {
			return 1
		}
		return 0
	case json.Number:
		return stringToInt(string(x))
	case string:
		return stringToInt(x)
	case Color:
		return x.Decimal()
	case fmt.Stringer:
		return stringToInt(x.String())
	default:
		return 0
	}
}

func uintToInt(u uint64) int {
	if u > math.MaxInt {
		return math.MaxInt
	}
	return int(u)
}

func floatToInt(f float64) int {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt:
		return math.MaxInt
	case f <= math.MinInt:
		return math.MinInt
	default:
		return int(f)
	}
}

// stringToInt reads the leading decimal number of s. "12px" gives 12 and
// "px" gives 0.
func stringToInt(s string) int {
	s = strings.TrimSpace(s)
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return floatToInt(f)
	}

	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		if s[0] == '-' {
			return math.MinInt
		}
		return math.MaxInt
	}
	return n
}
