package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMaskAppliesDigitsOverPlaceholders(t *testing.T) {
	assert.Equal(t, "123-456-7", Mask(1234567, "###-###-###"))
	assert.Equal(t, "(555) 123-4567", Mask("5551234567", "(###) ###-####"))
}

func TestMaskStopsWhenDigitsRunOut(t *testing.T) {
	assert.Equal(t, "12-3", Mask(123, "##-##"))
}

func TestNumberFormatsWithFixedPrecision(t *testing.T) {
	assert.Equal(t, "7.50", Number(7.5, 2))
	assert.Equal(t, "7", Number(7, 0))
}

func TestDisplayFormatsTimeWithLayout(t *testing.T) {
	ts := time.Date(2026, 3, 5, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, "2026-03-05", Display(ts, "2006-01-02"))
}

// TestStringifyFloatsAvoidScientificNotation guards against a float value
// like a sum() result rendering as "7.50000000e+00" in report text.
func TestStringifyFloatsAvoidScientificNotation(t *testing.T) {
	assert.Equal(t, "7.5", Stringify(7.5))
	assert.Equal(t, "1000000", Stringify(1000000.0))
	assert.Equal(t, "0.001", Stringify(0.001))
}

func TestStringifyBoolsRenderTitleCase(t *testing.T) {
	assert.Equal(t, "True", Stringify(true))
	assert.Equal(t, "False", Stringify(false))
}

func TestStringifyNilIsEmptyString(t *testing.T) {
	assert.Equal(t, "", Stringify(nil))
}

func TestStringifyStringPassesThrough(t *testing.T) {
	assert.Equal(t, "hello", Stringify("hello"))
}

func TestBaseFormatterDelegatesToStringify(t *testing.T) {
	f := BaseFormatter{}
	out, err := f.Format(42)
	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal("42", out)
}
