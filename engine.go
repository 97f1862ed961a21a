package bandreport

import (
	stdcontext "context"
	"time"

	"github.com/adverax/bandreport/internal/ids"
	"github.com/adverax/bandreport/log"
)

// resolveCrossReferences turns every name-based reference a page's bands
// carry (header/footer/group header/data band/child band/group-header-of)
// into bandLinks indices, rejecting any name that does not resolve - a
// typo here is a configuration error, not a runtime one.
func resolveCrossReferences(page *Page) error {
	for _, b := range page.Bands {
		links := newBandLinks()

		if b.Header != "" {
			if links.header = page.bandIndex(b.Header); links.header < 0 {
				return configErrorf("band %q references unknown header %q", b.Name, b.Header)
			}
		}
		if b.Footer != "" {
			if links.footer = page.bandIndex(b.Footer); links.footer < 0 {
				return configErrorf("band %q references unknown footer %q", b.Name, b.Footer)
			}
		}
		if b.GroupHeader != "" {
			if links.groupHeader = page.bandIndex(b.GroupHeader); links.groupHeader < 0 {
				return configErrorf("data band %q references unknown group header %q", b.Name, b.GroupHeader)
			}
		}
		if b.DataBand != "" {
			if links.dataBand = page.bandIndex(b.DataBand); links.dataBand < 0 {
				return configErrorf("group header %q references unknown data band %q", b.Name, b.DataBand)
			}
		}
		if b.ChildBand != "" {
			if links.childBand = page.bandIndex(b.ChildBand); links.childBand < 0 {
				return configErrorf("band %q references unknown child band %q", b.Name, b.ChildBand)
			}
		}
		if b.OfGroupHeader != "" {
			if links.ofGroupHdr = page.bandIndex(b.OfGroupHeader); links.ofGroupHdr < 0 {
				return configErrorf("group footer %q references unknown group header %q", b.Name, b.OfGroupHeader)
			}
		}

		b.resolved = links
	}
	return nil
}

// isChildOf reports whether b is named as some other band's ChildBand
// continuation, and so is not a root in its own right.
func isChildOf(page *Page, b *Band) bool {
	for _, other := range page.Bands {
		if other.ChildBand == b.Name {
			return true
		}
	}
	return false
}

// rootBands returns page's bands in the order the page band pass visits
// them: PageHeader/PageFooter/ReportTitle are driven by the layouter
// itself as pages open and close (the title only on the first page),
// Header/Footer/GroupFooter/ChildBand are
// printed only when the band that names them reaches that point, and a
// DataBand/GroupHeader nested under a group header is driven through that
// group, not directly.
func rootBands(page *Page) []*Band {
	var out []*Band
	for _, b := range page.Bands {
		switch b.Kind {
		case KindPageHeader, KindPageFooter, KindReportTitle, KindHeader, KindFooter, KindGroupFooter:
			continue
		case KindDataBand:
			if b.GroupHeader != "" {
				continue
			}
		case KindGroupHeader:
			if b.Parent != "" {
				continue
			}
		case KindChildBand:
			if isChildOf(page, b) {
				continue
			}
		}
		out = append(out, b)
	}
	return out
}

func findDataSource(report *Report, name string) DataSource {
	for _, ds := range report.DataSources {
		if ds.Name() == name {
			return ds
		}
	}
	return nil
}

// dataBandRecords resolves the record slice and binding name a DataBand
// drives, whether it is backed by a named DataSource or a bare RowCount.
func dataBandRecords(report *Report, b *Band) ([]Record, string, error) {
	if b.DataSource == "" {
		records := make([]Record, b.RowCount)
		for i := range records {
			records[i] = rowCountRecord{}
		}
		return records, "", nil
	}
	ds := findDataSource(report, b.DataSource)
	if ds == nil {
		return nil, "", configErrorf("data band %q references unknown data source %q", b.Name, b.DataSource)
	}
	return ds.Records(), ds.Name(), nil
}

// runRootBands drives every root band of page, in declaration order, onto
// l's current prepared page. It is shared by the top-level page pass and
// by runSubreport, which calls it against an embedded page using the
// enclosing layouter instead of one of its own.
func runRootBands(report *Report, ctx *Context, l *layouter, page *Page) error {
	for _, b := range rootBands(page) {
		switch b.Kind {
		case KindDataBand:
			records, dsName, err := dataBandRecords(report, b)
			if err != nil {
				return err
			}
			if err := driveDataBand(report, ctx, l, page, b, records, dsName); err != nil {
				return err
			}
		case KindGroupHeader:
			var records []Record
			dsName := ""
			if db := ultimateDataBand(page, b); db != nil {
				var err error
				records, dsName, err = dataBandRecords(report, db)
				if err != nil {
					return err
				}
			}
			if err := driveGrouping(report, ctx, l, page, b, records, dsName); err != nil {
				return err
			}
		default:
			if _, err := printBand(report, ctx, l, b, 0); err != nil {
				return err
			}
		}

		if b.ChildBand != "" {
			if _, err := printBand(report, ctx, l, page.band(b.ChildBand), 0); err != nil {
				return err
			}
		}
	}
	return nil
}

// markSubreportTargets marks every page named by a Subreport object as
// skip, so the top-level pass never drives it as a page of its own - it
// is only ever reached inline, through runSubreport.
func markSubreportTargets(report *Report) {
	for _, p := range report.Pages {
		for _, b := range p.Bands {
			for _, obj := range b.Objects {
				if sr, ok := obj.(*Subreport); ok {
					if target := findPage(report, sr.Page); target != nil {
						target.skip = true
					}
				}
			}
		}
	}
}

// Prepare runs the full preparation pipeline: validation, cross-reference
// resolution, context seeding, data source binding, the page band pass
// for every non-skipped page, and finally deferred-template resolution
// now that page_count is known. level controls whether the page
// layouter takes page breaks (see Level).
func (r *Report) Prepare(level Level) (*Document, error) {
	runID := ids.New()
	r.logf(log.ClassTrace, "run %s: preparation starting", runID)
	defer r.logf(log.ClassTrace, "run %s: preparation finished", runID)

	if r.Events != nil {
		if err := r.Events.Trigger(stdcontext.Background(), EventPrepareStart, r); err != nil {
			return nil, err
		}
	}

	for _, p := range r.Pages {
		for _, b := range p.Bands {
			if err := b.validate(); err != nil {
				return nil, err
			}
		}
	}
	for _, p := range r.Pages {
		if err := resolveCrossReferences(p); err != nil {
			return nil, err
		}
	}
	for _, p := range r.Pages {
		p.skip = false
	}
	markSubreportTargets(r)

	r.document = &Document{}
	r.deferred = nil
	r.pageCounter = 0
	r.context = NewContext()
	seedRoot(r.context, r, time.Now())

	for _, ds := range r.DataSources {
		if err := ds.Open(r.context); err != nil {
			return nil, configErrorf("data source %q: %v", ds.Name(), err)
		}
		defer ds.Close()
		r.context.Set(ds.Name(), &RecordSetProxy{Rows: ds.Records()})
	}

	for _, p := range r.Pages {
		if p.skip {
			continue
		}
		l := newLayouter(r, p, level, r.context)
		// A page opens unconditionally, even with no root bands to drive -
		// a page consisting solely of PageHeader/PageFooter/ReportTitle (or
		// nothing at all) still yields exactly one prepared page.
		if err := l.newPage(); err != nil {
			return nil, err
		}
		if err := runRootBands(r, r.context, l, p); err != nil {
			return nil, err
		}
		if err := l.close(); err != nil {
			return nil, err
		}
	}

	r.context.Set(KeyPageCount, r.pageCounter)
	r.context.Set(KeyResolveSecondary, true)
	for _, entry := range r.deferred {
		tpl, err := r.Evaluator.Compile(entry.Source)
		if err != nil {
			continue
		}
		rendered, err := tpl.Render(r.context)
		if err != nil {
			continue
		}
		entry.Target.Text = rendered
	}

	if r.Events != nil {
		if err := r.Events.Trigger(stdcontext.Background(), EventPrepareDone, r); err != nil {
			return nil, err
		}
	}

	return r.document, nil
}
