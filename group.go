package bandreport

// Group is the value bound under KeyGroup while a group header/footer and
// its nested bands are being driven: the grouping key all of Data shares,
// the run of records itself, and its length.
type Group struct {
	Grouper interface{}
	Data    []Record
	Index   int
}

// groupChildren returns gh's direct nested bands in page declaration
// order: GroupHeaders whose Parent names gh, and the DataBand (there is
// at most one) whose GroupHeader names gh.
func groupChildren(page *Page, gh *Band) []*Band {
	var out []*Band
	for _, b := range page.Bands {
		switch b.Kind {
		case KindGroupHeader:
			if b.Parent == gh.Name {
				out = append(out, b)
			}
		case KindDataBand:
			if b.GroupHeader == gh.Name {
				out = append(out, b)
			}
		}
	}
	return out
}

// groupFooterFor returns the GroupFooter band closing gh, if declared.
func groupFooterFor(page *Page, gh *Band) *Band {
	for _, b := range page.Bands {
		if b.Kind == KindGroupFooter && b.OfGroupHeader == gh.Name {
			return b
		}
	}
	return nil
}

// ultimateDataBand walks down through nested group headers to find the
// DataBand gh ultimately drives, however many grouping levels deep.
func ultimateDataBand(page *Page, gh *Band) *Band {
	for _, child := range groupChildren(page, gh) {
		switch child.Kind {
		case KindDataBand:
			return child
		case KindGroupHeader:
			if db := ultimateDataBand(page, child); db != nil {
				return db
			}
		}
	}
	return nil
}

// groupKeySource returns the template source whose rendered value is the
// grouping key: the header's own Expression, or a field lookup built from
// its Field shorthand.
func groupKeySource(gh *Band) string {
	if gh.Expression != "" {
		return gh.Expression
	}
	return "{{ record['" + gh.Field + "'] }}"
}

// driveGrouping implements consecutive-equal grouping: a new group starts
// whenever the rendered key differs from the previous record's, not when
// a sort boundary is crossed. gh must have already passed validate(), so
// groupKeySource never has to handle the neither-Expression-nor-Field
// case. ctx is shared and mutated in place, the same context the whole
// page band pass is running against, so a "line" counter kept alive
// across groups stays monotonic.
func driveGrouping(report *Report, ctx *Context, l *layouter, page *Page, gh *Band, records []Record, dsName string) error {
	if len(records) == 0 {
		return nil
	}

	tpl, err := report.Evaluator.Compile(groupKeySource(gh))
	if err != nil {
		return configErrorf("group header %q: %v", gh.Name, err)
	}

	keyOf := func(rec Record) string {
		child := ctx.Child()
		child.Set(KeyRecord, rec)
		if dsName != "" {
			child.Set(dsName, rec)
		}
		key, _ := tpl.Render(child)
		return key
	}

	children := groupChildren(page, gh)
	footer := groupFooterFor(page, gh)

	i := 0
	for i < len(records) {
		start := i
		key := keyOf(records[i])
		for i < len(records) && keyOf(records[i]) == key {
			i++
		}
		run := records[start:i]

		ctx.Set(KeyGroup, &Group{Grouper: key, Data: run, Index: len(run)})
		if dsName != "" {
			ctx.Set(dsName, &RecordSetProxy{Rows: run})
		}

		cbID := l.onNewPage(func(c *Context) error {
			_, err := printBand(report, c, l, gh, 0)
			return err
		})

		firstRowHeight := 0.0
		if db := ultimateDataBand(page, gh); db != nil {
			firstRowHeight = db.Height
		}
		if _, err := printBand(report, ctx, l, gh, firstRowHeight); err != nil {
			l.offNewPage(cbID)
			return err
		}

		for _, child := range children {
			switch child.Kind {
			case KindDataBand:
				if err := driveDataBand(report, ctx, l, page, child, run, dsName); err != nil {
					l.offNewPage(cbID)
					return err
				}
			case KindGroupHeader:
				if err := driveGrouping(report, ctx, l, page, child, run, dsName); err != nil {
					l.offNewPage(cbID)
					return err
				}
			default:
				if _, err := printBand(report, ctx, l, child, 0); err != nil {
					l.offNewPage(cbID)
					return err
				}
			}
		}

		l.offNewPage(cbID)

		if footer != nil {
			if _, err := printBand(report, ctx, l, footer, 0); err != nil {
				return err
			}
		}
	}

	if gh.Parent == "" {
		if db := ultimateDataBand(page, gh); db != nil && db.Footer != "" {
			if dsName != "" {
				ctx.Set(dsName, &RecordSetProxy{Rows: records})
			}
			if _, err := printBand(report, ctx, l, page.band(db.Footer), 0); err != nil {
				return err
			}
		}
	}

	return nil
}
