package expr

import (
	"fmt"

	"github.com/adverax/bandreport"
	"github.com/adverax/bandreport/generic"
)

// node is one parsed expression tree. eval resolves it against a single
// record/page context.
type node interface {
	eval(ctx *bandreport.Context) (interface{}, error)
}

type identNode struct {
	name string
}

func (n *identNode) eval(ctx *bandreport.Context) (interface{}, error) {
	v, ok := ctx.Get(n.name)
	if !ok {
		return nil, fmt.Errorf("expr: %q is unbound", n.name)
	}
	return v, nil
}

type literalNode struct {
	value interface{}
}

func (n *literalNode) eval(*bandreport.Context) (interface{}, error) {
	return n.value, nil
}

// fieldNode resolves base.name or base['name'] - a Record field lookup,
// a map index, or a generic.Params lookup, in that preference order.
type fieldNode struct {
	base node
	name string
}

func (n *fieldNode) eval(ctx *bandreport.Context) (interface{}, error) {
	base, err := n.base.eval(ctx)
	if err != nil {
		return nil, err
	}
	return resolveField(base, n.name)
}

func resolveField(base interface{}, name string) (interface{}, error) {
	switch v := base.(type) {
	case bandreport.Record:
		val, ok := v.Field(name)
		if !ok {
			return nil, fmt.Errorf("expr: field %q absent from record", name)
		}
		return val, nil
	case map[string]interface{}:
		val, ok := v[name]
		if !ok {
			return nil, fmt.Errorf("expr: key %q absent", name)
		}
		return val, nil
	case generic.Params:
		val, ok := v[name]
		if !ok {
			return nil, fmt.Errorf("expr: param %q absent", name)
		}
		return val, nil
	default:
		return nil, fmt.Errorf("expr: cannot access field %q on %T", name, base)
	}
}

// callNode is either a bare function call (a registered helper) or a
// method call on a base value (base.Values('field')-style accessors the
// data model's proxies expose).
type callNode struct {
	base node // nil for a bare helper call
	name string
	args []node
}

func (n *callNode) eval(ctx *bandreport.Context) (interface{}, error) {
	args := make([]interface{}, len(n.args))
	for i, a := range n.args {
		v, err := a.eval(ctx)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	if n.base == nil {
		fn, ok := helpers[n.name]
		if !ok {
			return nil, fmt.Errorf("expr: unknown function %q", n.name)
		}
		return fn(ctx, args)
	}

	base, err := n.base.eval(ctx)
	if err != nil {
		return nil, err
	}
	return callMethod(base, n.name, args)
}

func callMethod(base interface{}, name string, args []interface{}) (interface{}, error) {
	switch name {
	case "Values":
		vals, ok := base.(interface{ Values(string) []interface{} })
		if !ok {
			return nil, fmt.Errorf("expr: %T has no Values method", base)
		}
		field, _ := generic.ConvertToString(arg(args, 0))
		return vals.Values(field), nil
	case "Field":
		rec, ok := base.(bandreport.Record)
		if !ok {
			return nil, fmt.Errorf("expr: %T has no Field method", base)
		}
		field, _ := generic.ConvertToString(arg(args, 0))
		v, _ := rec.Field(field)
		return v, nil
	default:
		return nil, fmt.Errorf("expr: unknown method %q on %T", name, base)
	}
}

func arg(args []interface{}, i int) interface{} {
	if i < len(args) {
		return args[i]
	}
	return nil
}

type binaryNode struct {
	op          tokenKind
	left, right node
}

func (n *binaryNode) eval(ctx *bandreport.Context) (interface{}, error) {
	l, err := n.left.eval(ctx)
	if err != nil {
		return nil, err
	}
	r, err := n.right.eval(ctx)
	if err != nil {
		return nil, err
	}
	return applyBinary(n.op, l, r)
}

func applyBinary(op tokenKind, l, r interface{}) (interface{}, error) {
	switch op {
	case tokEq:
		return compareEqual(l, r), nil
	case tokNeq:
		return !compareEqual(l, r), nil
	case tokLt, tokLte, tokGt, tokGte:
		lf, lok := generic.ConvertToFloat64(l)
		rf, rok := generic.ConvertToFloat64(r)
		if !lok || !rok {
			return nil, fmt.Errorf("expr: cannot compare %T and %T", l, r)
		}
		switch op {
		case tokLt:
			return lf < rf, nil
		case tokLte:
			return lf <= rf, nil
		case tokGt:
			return lf > rf, nil
		default:
			return lf >= rf, nil
		}
	}

	// string concatenation when either side is non-numeric text
	if op == tokPlus {
		if ls, lok := l.(string); lok {
			if rs, rok := r.(string); rok {
				return ls + rs, nil
			}
		}
	}

	lf, lok := generic.ConvertToFloat64(l)
	rf, rok := generic.ConvertToFloat64(r)
	if !lok || !rok {
		return nil, fmt.Errorf("expr: cannot apply arithmetic to %T and %T", l, r)
	}
	switch op {
	case tokPlus:
		return lf + rf, nil
	case tokMinus:
		return lf - rf, nil
	case tokStar:
		return lf * rf, nil
	case tokSlash:
		if rf == 0 {
			return nil, fmt.Errorf("expr: division by zero")
		}
		return lf / rf, nil
	case tokPercent:
		if rf == 0 {
			return nil, fmt.Errorf("expr: modulo by zero")
		}
		return float64(int64(lf) % int64(rf)), nil
	}
	return nil, fmt.Errorf("expr: unsupported operator")
}

func compareEqual(l, r interface{}) bool {
	lf, lok := generic.ConvertToFloat64(l)
	rf, rok := generic.ConvertToFloat64(r)
	if lok && rok {
		return lf == rf
	}
	ls, _ := generic.ConvertToString(l)
	rs, _ := generic.ConvertToString(r)
	return ls == rs
}

type unaryMinusNode struct {
	operand node
}

func (n *unaryMinusNode) eval(ctx *bandreport.Context) (interface{}, error) {
	v, err := n.operand.eval(ctx)
	if err != nil {
		return nil, err
	}
	f, ok := generic.ConvertToFloat64(v)
	if !ok {
		return nil, fmt.Errorf("expr: cannot negate %T", v)
	}
	return -f, nil
}
