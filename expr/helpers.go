package expr

import (
	"fmt"

	"github.com/adverax/bandreport"
	"github.com/adverax/bandreport/format"
	"github.com/adverax/bandreport/generic"
)

type helperFunc func(ctx *bandreport.Context, args []interface{}) (interface{}, error)

// helpers is the registry of bare (non-method) function calls a compiled
// expression can invoke: the aggregate functions over a rendered value
// list, the group-scoped total() shorthand, and the formatting family.
var helpers = map[string]helperFunc{
	"SUM":            sumHelper,
	"sum":            sumHelper,
	"COUNT":          countHelper,
	"count":          countHelper,
	"AVG":            avgHelper,
	"avg":            avgHelper,
	"MIN":            minHelper,
	"MAX":            maxHelper,
	"total":          totalHelper,
	"str":            strHelper,
	"format_mask":    formatMaskHelper,
	"format_number":  formatNumberHelper,
	"display_format": displayFormatHelper,
}

func numbers(args []interface{}) []float64 {
	var list []interface{}
	if len(args) == 1 {
		if s, ok := args[0].([]interface{}); ok {
			list = s
		}
	}
	if list == nil {
		list = args
	}
	out := make([]float64, 0, len(list))
	for _, v := range list {
		f, _ := generic.ConvertToFloat64(v)
		out = append(out, f)
	}
	return out
}

func sumHelper(_ *bandreport.Context, args []interface{}) (interface{}, error) {
	var total float64
	for _, f := range numbers(args) {
		total += f
	}
	return total, nil
}

func countHelper(_ *bandreport.Context, args []interface{}) (interface{}, error) {
	if len(args) == 1 {
		if s, ok := args[0].([]interface{}); ok {
			return float64(len(s)), nil
		}
	}
	return float64(len(args)), nil
}

func avgHelper(_ *bandreport.Context, args []interface{}) (interface{}, error) {
	vals := numbers(args)
	if len(vals) == 0 {
		return 0.0, nil
	}
	var total float64
	for _, f := range vals {
		total += f
	}
	return total / float64(len(vals)), nil
}

func minHelper(_ *bandreport.Context, args []interface{}) (interface{}, error) {
	vals := numbers(args)
	if len(vals) == 0 {
		return nil, fmt.Errorf("expr: MIN() of an empty set")
	}
	m := vals[0]
	for _, f := range vals[1:] {
		if f < m {
			m = f
		}
	}
	return m, nil
}

func maxHelper(_ *bandreport.Context, args []interface{}) (interface{}, error) {
	vals := numbers(args)
	if len(vals) == 0 {
		return nil, fmt.Errorf("expr: MAX() of an empty set")
	}
	m := vals[0]
	for _, f := range vals[1:] {
		if f > m {
			m = f
		}
	}
	return m, nil
}

// totalHelper sums field across the records of the group currently bound
// under the "group" key - the shorthand for total('amount') instead of
// SUM(orders.Values('amount')) inside a group footer.
func totalHelper(ctx *bandreport.Context, args []interface{}) (interface{}, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("expr: total() takes exactly one field name")
	}
	field, _ := generic.ConvertToString(args[0])

	v, ok := ctx.Get(bandreport.KeyGroup)
	if !ok {
		return nil, fmt.Errorf("expr: total() used outside of a group")
	}
	g, ok := v.(*bandreport.Group)
	if !ok {
		return nil, fmt.Errorf("expr: total() used outside of a group")
	}

	var total float64
	for _, rec := range g.Data {
		val, ok := rec.Field(field)
		if !ok || val == nil {
			continue
		}
		f, _ := generic.ConvertToFloat64(val)
		total += f
	}
	return total, nil
}

func strHelper(_ *bandreport.Context, args []interface{}) (interface{}, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("expr: str() takes exactly one argument")
	}
	return format.Stringify(args[0]), nil
}

func formatMaskHelper(_ *bandreport.Context, args []interface{}) (interface{}, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("expr: format_mask() takes a value and a mask")
	}
	mask, _ := generic.ConvertToString(args[1])
	return format.Mask(args[0], mask), nil
}

func formatNumberHelper(_ *bandreport.Context, args []interface{}) (interface{}, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("expr: format_number() takes a value and an optional precision")
	}
	val, _ := generic.ConvertToFloat64(args[0])
	precision := 2
	if len(args) > 1 {
		p, _ := generic.ConvertToInt(args[1])
		precision = p
	}
	return format.Number(val, precision), nil
}

// displayFormatHelper formats a time.Time (or a value convertible to
// one) through a Go time layout string; anything else falls back to a
// plain string conversion.
func displayFormatHelper(_ *bandreport.Context, args []interface{}) (interface{}, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("expr: display_format() takes a value and a layout")
	}
	layout, _ := generic.ConvertToString(args[1])
	if t, ok := generic.ConvertToTime(args[0]); ok {
		return format.Display(t, layout), nil
	}
	return format.Stringify(args[0]), nil
}
