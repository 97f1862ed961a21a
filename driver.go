package bandreport

// printBand renders b's objects against ctx and places the result on the
// page. When the band is Stretched, its declared height grows to fit any
// text object that overflows it. A band whose Visible expression renders anything other
// than the literal "True" is skipped entirely - it contributes neither a
// PreparedBand nor cursor movement.
func printBand(report *Report, ctx *Context, l *layouter, b *Band, firstRowHeight float64) (*PreparedBand, error) {
	if b == nil {
		return nil, nil
	}
	if b.Visible != "" {
		v, err := renderOrPlaceholderStrict(report.Evaluator, ctx, b.Visible)
		if err != nil {
			return nil, nil
		}
		if v != "True" {
			return nil, nil
		}
	}

	objs := renderObjects(report, ctx, b)

	height := b.Height
	if b.Stretched {
		for _, o := range objs {
			if t, ok := o.(*PreparedText); ok {
				if bottom := t.Top + t.Height; bottom > height {
					height = bottom
				}
			}
		}
	}

	pb, err := l.place(b, height, firstRowHeight)
	if err != nil {
		return nil, err
	}
	if pb != nil {
		pb.Objects = objs
	}

	for _, obj := range b.Objects {
		if sr, ok := obj.(*Subreport); ok {
			if err := runSubreport(report, ctx, l, sr); err != nil {
				return pb, err
			}
		}
	}

	return pb, nil
}

// runSubreport embeds sr's target page inline: its root bands are driven
// through the enclosing layouter at sr's position, so they land on the
// same prepared page, then the cursor is restored to where the subreport
// object left it.
func runSubreport(report *Report, ctx *Context, l *layouter, sr *Subreport) error {
	target := findPage(report, sr.Page)
	if target == nil {
		return configErrorf("subreport %q references unknown page %q", sr.Name, sr.Page)
	}

	savedX, savedY := l.x, l.y
	l.x = l.x + sr.Geom.Left
	l.y = l.y + sr.Geom.Top

	if err := runRootBands(report, ctx, l, target); err != nil {
		return err
	}

	l.x, l.y = savedX, savedY
	return nil
}

func findPage(report *Report, name string) *Page {
	for _, p := range report.Pages {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// driveDataBand is the data driver: it binds each record of records in
// turn and prints b once per record, bracketed by b's own Header/Footer
// bands when b is not itself nested under a group header (a grouped data
// band's header/footer printing is the group header/footer's job - see
// driveGrouping). dsName, when non-empty, is the datasource identifier
// records are additionally bound under in the context.
func driveDataBand(report *Report, ctx *Context, l *layouter, page *Page, b *Band, records []Record, dsName string) error {
	grouped := b.GroupHeader != ""

	if !grouped && b.Header != "" {
		if _, err := printBand(report, ctx, l, page.band(b.Header), 0); err != nil {
			return err
		}
	}

	for i, rec := range records {
		ctx.Set(KeyRecord, rec)
		ctx.Set(KeyRow, i+1)
		ctx.Set(KeyLine, ctx.GetInt(KeyLine)+1)
		even := i%2 == 1
		ctx.Set(KeyEven, even)
		ctx.Set(KeyOdd, !even)
		if dsName != "" {
			ctx.Set(dsName, rec)
		}
		if b.Name != "" {
			ctx.Set(b.Name, rec)
		}

		if _, err := printBand(report, ctx, l, b, 0); err != nil {
			return err
		}
	}

	if dsName != "" {
		ctx.Set(dsName, &RecordSetProxy{Rows: records})
	}
	ctx.Unset(KeyRecord)

	if !grouped && b.Footer != "" {
		if _, err := printBand(report, ctx, l, page.band(b.Footer), 0); err != nil {
			return err
		}
	}
	return nil
}
