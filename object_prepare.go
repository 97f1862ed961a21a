package bandreport

import (
	"github.com/adverax/bandreport/generic"
	"github.com/adverax/bandreport/log"
)

// renderObjects renders every object of b against ctx, producing the
// prepared form ready to attach to a PreparedBand. Evaluation failures
// never abort: a failing Text falls back to the error placeholder and
// is marked errored, matching the evaluation failure semantics.
func renderObjects(report *Report, ctx *Context, b *Band) []PreparedObject {
	out := make([]PreparedObject, 0, len(b.Objects))
	for _, obj := range b.Objects {
		switch o := obj.(type) {
		case *Text:
			out = append(out, prepareText(report, ctx, o))
		case *Image:
			out = append(out, prepareImage(report, ctx, o))
		case *Line:
			out = append(out, &PreparedLine{
				Geometry:  o.Geom,
				Direction: o.Direction,
				Stroke:    o.Stroke,
			})
		case *Barcode:
			if pb := prepareBarcode(report, ctx, o); pb != nil {
				out = append(out, pb)
			}
		case *Table:
			out = append(out, prepareTable(report, ctx, o))
		case *Subreport:
			// handled by printBand once the band itself is placed, since
			// it needs the layouter's cursor, not just the band context.
		}
	}
	return out
}

func prepareText(report *Report, ctx *Context, o *Text) *PreparedText {
	text, errored := renderOrPlaceholder(report.Evaluator, ctx, o.Source, report.placeholder())

	pt := &PreparedText{
		Geometry:   o.Geom,
		Text:       text,
		Errored:    errored,
		HAlign:     o.HAlign,
		VAlign:     o.VAlign,
		Background: o.Background,
		Font:       o.Font,
	}

	if (o.CanGrow || o.CanShrink) && report.Measure != nil {
		_, h := report.Measure(text, o.Font, o.Geom.Width)
		if o.CanGrow && h > pt.Height {
			pt.Height = h
		}
		if o.CanShrink && h < pt.Height && h > 0 {
			pt.Height = h
		}
	}

	if o.Highlight != nil {
		cond, _ := renderOrPlaceholderStrict(report.Evaluator, ctx, o.Highlight.Condition)
		if cond == "True" {
			pt.Background = o.Highlight.Background
			pt.BrushStyle = o.Highlight.BrushStyle
		}
	}

	if HasSecondaryDelimiter(text) {
		report.deferText(text, pt)
	}

	return pt
}

// renderOrPlaceholderStrict renders source and returns the empty string
// on error instead of the configured placeholder - used for boolean
// highlight conditions, where a placeholder like "-" must never be
// mistaken for "True".
func renderOrPlaceholderStrict(ev Evaluator, ctx *Context, source string) (string, error) {
	if source == "" {
		return "", nil
	}
	tpl, err := ev.Compile(source)
	if err != nil {
		return "", err
	}
	return tpl.Render(ctx)
}

func prepareImage(report *Report, ctx *Context, o *Image) *PreparedImage {
	src := o.Source
	if src.Variable != "" {
		if v, ok := report.Variables[src.Variable]; ok {
			if b, ok := v.([]byte); ok {
				src = ImageSource{Bytes: b}
			}
		}
	} else if src.Field != "" {
		if rec, ok := ctx.Record(); ok {
			if v, ok := rec.Field(src.Field); ok {
				if b, ok := v.([]byte); ok {
					src = ImageSource{Bytes: b}
				}
			}
		}
	}
	return &PreparedImage{
		Geometry: o.Geom,
		Source:   src,
		SizeMode: o.SizeMode,
	}
}

// prepareBarcode resolves a barcode's encoded value. A barcode with an
// absent datasource (its Source.Field names a field but no record is
// bound) logs a warning and produces no object, per the failure
// semantics table.
func prepareBarcode(report *Report, ctx *Context, o *Barcode) *PreparedBarcode {
	var value string
	switch {
	case o.Source.Literal != "":
		value = o.Source.Literal
	case o.Source.Template != "":
		v, errored := renderOrPlaceholder(report.Evaluator, ctx, o.Source.Template, report.placeholder())
		if errored {
			return nil
		}
		value = v
	case o.Source.Field != "":
		rec, ok := ctx.Record()
		if !ok {
			report.logf(log.ClassWarning, "barcode %q: no datasource bound, field %q unavailable", o.Name, o.Source.Field)
			return nil
		}
		v, ok := rec.Field(o.Source.Field)
		if !ok {
			report.logf(log.ClassWarning, "barcode %q: field %q absent from record", o.Name, o.Source.Field)
			return nil
		}
		str, _ := generic.ConvertToString(v)
		value = str
	default:
		report.logf(log.ClassWarning, "barcode %q: no source configured", o.Name)
		return nil
	}

	return &PreparedBarcode{
		Geometry:  o.Geom,
		Symbology: o.Symbology,
		Value:     value,
	}
}

func prepareTable(report *Report, ctx *Context, o *Table) *PreparedTable {
	pt := &PreparedTable{Geometry: o.Geom}
	for _, c := range o.Columns {
		pt.Columns = append(pt.Columns, c.Label)
	}

	var ds DataSource
	for _, d := range report.DataSources {
		if d.Name() == o.DataSource {
			ds = d
			break
		}
	}
	if ds == nil {
		return pt
	}

	rows := ds.Records()
	for _, rec := range rows {
		rowCtx := ctx.Child()
		rowCtx.Set(KeyRecord, rec)
		row := make([]string, 0, len(o.Columns))
		for _, c := range o.Columns {
			text, _ := renderOrPlaceholder(report.Evaluator, rowCtx, c.Source, report.placeholder())
			row = append(row, text)
		}
		pt.Rows = append(pt.Rows, row)
	}
	return pt
}
