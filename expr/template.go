package expr

import (
	"strings"

	"github.com/adverax/bandreport"
	"github.com/adverax/bandreport/format"
)

type segmentKind uint8

const (
	segmentText segmentKind = iota
	segmentPrimary
	segmentSecondary
)

type segment struct {
	kind segmentKind
	text string // literal text, or the raw source between delimiters
	expr node   // compiled expression, for segmentPrimary/segmentSecondary
}

// Template is the compiled form of one bandreport.Template source string: an
// ordered list of literal-text and expression segments.
type Template struct {
	segments []segment
}

func (t *Template) Render(ctx *bandreport.Context) (string, error) {
	resolveSecondary := ctx.GetBool(bandreport.KeyResolveSecondary)

	var b strings.Builder
	for _, s := range t.segments {
		switch s.kind {
		case segmentText:
			b.WriteString(s.text)
		case segmentPrimary:
			v, err := s.expr.eval(ctx)
			if err != nil {
				return "", err
			}
			b.WriteString(stringify(v))
		case segmentSecondary:
			if !resolveSecondary {
				b.WriteString("${ " + s.text + " }")
				continue
			}
			v, err := s.expr.eval(ctx)
			if err != nil {
				return "", err
			}
			b.WriteString(stringify(v))
		}
	}
	return b.String(), nil
}

func stringify(v interface{}) string {
	return format.Stringify(v)
}

// Evaluator is the bandreport.Evaluator implementation: a template
// compiler recognizing both {{ expr }} and ${ expr } expression blocks
// with identical grammar inside.
type Evaluator struct{}

// New returns the default hand-rolled evaluator.
func New() *Evaluator {
	return &Evaluator{}
}

func (e *Evaluator) Compile(source string) (bandreport.Template, error) {
	segs, err := scan(source)
	if err != nil {
		return nil, err
	}
	return &Template{segments: segs}, nil
}

// scan splits source into literal-text and expression segments, honoring
// whichever of {{ / ${ opens first at each position.
func scan(source string) ([]segment, error) {
	var out []segment
	i := 0
	for i < len(source) {
		primary := strings.Index(source[i:], "{{")
		secondary := strings.Index(source[i:], "${")

		if primary < 0 && secondary < 0 {
			out = append(out, segment{kind: segmentText, text: source[i:]})
			break
		}

		var kind segmentKind
		var open, close string
		var start int
		if primary >= 0 && (secondary < 0 || primary <= secondary) {
			kind, open, close, start = segmentPrimary, "{{", "}}", primary
		} else {
			kind, open, close, start = segmentSecondary, "${", "}", secondary
		}

		if start > 0 {
			out = append(out, segment{kind: segmentText, text: source[i : i+start]})
		}

		exprStart := i + start + len(open)
		end := strings.Index(source[exprStart:], close)
		if end < 0 {
			// unterminated delimiter: treat the rest as literal text
			out = append(out, segment{kind: segmentText, text: source[i+start:]})
			break
		}

		raw := strings.TrimSpace(source[exprStart : exprStart+end])
		n, err := parseExpression(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, segment{kind: kind, text: raw, expr: n})

		i = exprStart + end + len(close)
	}
	return out, nil
}
