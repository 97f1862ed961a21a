// Package format holds the small value-formatting helpers the
// expression language exposes as format_mask, format_number and
// display_format - split out from the expression grammar itself. The
// set of named formats is fixed by the expr package's helper registry;
// this package has no registration API.
package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Formatter turns one value into display text. BaseFormatter is the
// zero-configuration default: a plain string conversion.
type Formatter interface {
	Format(value interface{}) (string, error)
}

// BaseFormatter formats any value through Stringify.
type BaseFormatter struct{}

func (BaseFormatter) Format(value interface{}) (string, error) {
	return Stringify(value), nil
}

// Mask applies a positional "#" placeholder mask over value's digits,
// e.g. Mask(1234567, "###-###-###") -> "123-456-7".
func Mask(value interface{}, mask string) string {
	raw := Stringify(value)
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)

	var b strings.Builder
	di := 0
	for _, r := range mask {
		if r == '#' {
			if di >= len(digits) {
				break
			}
			b.WriteByte(digits[di])
			di++
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Number formats a float with precision decimal places.
func Number(value float64, precision int) string {
	return strconv.FormatFloat(value, 'f', precision, 64)
}

// Display formats a time.Time through a Go time layout string.
func Display(value time.Time, layout string) string {
	return value.Format(layout)
}

// Stringify is the fallback textual representation used when no other
// formatter applies. Booleans render as "True"/"False" to match the
// Highlight/Visible expression contract; floats go through strconv
// directly rather than generic.ConvertToString, whose float branch is
// tuned for config round-tripping (scientific notation), not report text.
func Stringify(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case nil:
		return ""
	case bool:
		if v {
			return "True"
		}
		return "False"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	default:
		return fmt.Sprint(v)
	}
}
