package bandreport

import (
	"time"

	"github.com/adverax/bandreport/generic"
)

// Reserved context keys, per the data model: each is bound by the engine
// itself at well-known points during preparation.
const (
	KeyReport    = "report"
	KeyPageIndex = "page_index"
	KeyPageCount = "page_count"
	KeyDate      = "date"
	KeyTime      = "time"
	KeyParams    = "params"
	KeyRecord    = "record"
	KeyRow       = "row"
	KeyLine      = "line"
	KeyEven      = "even"
	KeyOdd       = "odd"
	KeyGroup     = "group"

	// KeyResolveSecondary is not a report-facing identifier: it is the
	// flag an Evaluator implementation checks to decide whether a
	// secondary-delimiter ("${ }") block should render literally (the
	// primary pass) or actually evaluate (the deferred pass, once
	// page_count is final). See bandreport/expr.Template.Render.
	KeyResolveSecondary = "__bandreport_resolve_secondary__"
)

// Record exposes field-addressable values. MapRecord forwards to a map;
// RecordSetProxy forwards to its first row. All implementations satisfy
// the same trait so the evaluator never needs to know which one it holds.
type Record interface {
	Field(name string) (interface{}, bool)
}

// MapRecord is a record backed by a plain map, e.g. rows decoded from
// JSON or hand-built in a test.
type MapRecord map[string]interface{}

func (r MapRecord) Field(name string) (interface{}, bool) {
	v, ok := r[name]
	return v, ok
}

// Context is the mutable key -> value scope threaded through preparation.
// It is a small parent-chained lookup, the same shape as the teacher's
// request-scoped value chaining, generalized from HTTP request values to
// report preparation state: a child context (created for each group-key
// evaluation and each table row) sees its own bindings first and falls
// back to the enclosing scope.
type Context struct {
	parent *Context
	values map[string]interface{}
}

// NewContext creates a root context with no parent.
func NewContext() *Context {
	return &Context{values: make(map[string]interface{}, 16)}
}

// Child returns a new context that inherits from ctx. Bindings set on the
// child never leak back into the parent.
func (c *Context) Child() *Context {
	return &Context{parent: c, values: make(map[string]interface{}, 8)}
}

// Get walks the parent chain and returns the first binding found for key.
func (c *Context) Get(key string) (interface{}, bool) {
	for cur := c; cur != nil; cur = cur.parent {
		if v, ok := cur.values[key]; ok {
			return v, true
		}
	}
	return nil, false
}

// Set binds key to value in this context only.
func (c *Context) Set(key string, value interface{}) {
	c.values[key] = value
}

// Unset removes a binding from this context only; bindings on an
// enclosing scope, if any, are left untouched.
func (c *Context) Unset(key string) {
	delete(c.values, key)
}

// GetString reads key and coerces it to a string, the empty string if the
// key is unbound or unconvertible.
func (c *Context) GetString(key string) string {
	v, ok := c.Get(key)
	if !ok {
		return ""
	}
	s, _ := generic.ConvertToString(v)
	return s
}

// GetInt reads key and coerces it to an int, 0 if unbound or unconvertible.
func (c *Context) GetInt(key string) int {
	v, ok := c.Get(key)
	if !ok {
		return 0
	}
	i, _ := generic.ConvertToInt(v)
	return i
}

// GetBool reads key and coerces it to a bool, false if unbound.
func (c *Context) GetBool(key string) bool {
	v, ok := c.Get(key)
	if !ok {
		return false
	}
	b, _ := generic.ConvertToBoolean(v)
	return b
}

// Record returns the value bound under KeyRecord, if any.
func (c *Context) Record() (Record, bool) {
	v, ok := c.Get(KeyRecord)
	if !ok {
		return nil, false
	}
	r, ok := v.(Record)
	return r, ok
}

// seedRoot binds the identifiers the preparation engine owns for the
// lifetime of a single prepare() call: report, params, date, time and the
// initial page_index/page_count.
func seedRoot(ctx *Context, report *Report, now time.Time) {
	ctx.Set(KeyReport, report)
	ctx.Set(KeyParams, report.Variables)
	ctx.Set(KeyDate, now)
	ctx.Set(KeyTime, now)
	ctx.Set(KeyPageIndex, 0)
	ctx.Set(KeyPageCount, 0)
	ctx.Set(KeyLine, 0)
}
