package bandreport

import stdcontext "context"

// Level is the preparation detail level. It decides whether the page
// layouter takes page breaks: 1 runs the data/grouping driver with no
// pagination at all (every band lands on one page); 2 and 3 start a new
// page when a band would overflow. Levels do not differ in text
// measurement: can-grow/can-shrink measurement through Report.Measure
// runs at every level whenever Measure is set.
type Level uint8

const (
	LevelData Level = iota + 1
	LevelPagination
	LevelGeometry
)

// newPageCallback is a closure invoked every time the layouter starts a
// new page, in registration order - the mechanism group headers use to
// reprint themselves across a page break. Modelled as a plain ordered
// slice, not a publish/subscribe bus: the ordering and single-owner
// lifetime (the layouter that registered it also unregisters it) are
// load-bearing, and a generic event bus would obscure both.
type newPageCallback struct {
	id int
	fn func(ctx *Context) error
}

// layouter allocates prepared pages for one Page definition and decides
// when to start a new one, tracking a text cursor (x, y), an effective
// bottom ay, and a bottom stack for print-on-bottom bands.
type layouter struct {
	report *Report
	page   *Page
	level  Level
	ctx    *Context

	prepared *PreparedPage
	x, y     float64
	ay       float64
	bottom   float64 // cumulative height reserved at the page bottom

	callbacks  []newPageCallback
	callbackID int

	firstPage    bool
	titlePrinted bool
	open         bool
}

func newLayouter(report *Report, page *Page, level Level, ctx *Context) *layouter {
	return &layouter{
		report:    report,
		page:      page,
		level:     level,
		ctx:       ctx,
		firstPage: true,
	}
}

// onNewPage registers fn to run, in order, every time a page opens.
// It returns an id usable with off to unregister it later.
func (l *layouter) onNewPage(fn func(ctx *Context) error) int {
	l.callbackID++
	id := l.callbackID
	l.callbacks = append(l.callbacks, newPageCallback{id: id, fn: fn})
	return id
}

func (l *layouter) offNewPage(id int) {
	for i, cb := range l.callbacks {
		if cb.id == id {
			l.callbacks = append(l.callbacks[:i], l.callbacks[i+1:]...)
			return
		}
	}
}

// footerBand returns the page's pinned PageFooter, if declared.
func (l *layouter) footerBand() *Band {
	for _, b := range l.page.Bands {
		if b.Kind == KindPageFooter {
			return b
		}
	}
	return nil
}

func (l *layouter) headerBand() *Band {
	for _, b := range l.page.Bands {
		if b.Kind == KindPageHeader {
			return b
		}
	}
	return nil
}

func (l *layouter) titleBand() *Band {
	for _, b := range l.page.Bands {
		if b.Kind == KindReportTitle {
			return b
		}
	}
	return nil
}

// closeCurrent prints the pinned footer at the page bottom, just above
// the bottom margin, then marks the page closed. No-op if no page is open.
func (l *layouter) closeCurrent() error {
	if !l.open {
		return nil
	}
	if footer := l.footerBand(); footer != nil {
		l.y = l.page.Height - l.page.Margins.Bottom - footer.Height
		if _, err := l.placeDirect(footer); err != nil {
			return err
		}
	}
	l.open = false
	return nil
}

// newPage closes the current page (if any) and opens a fresh one,
// running header/title printing and every registered callback.
func (l *layouter) newPage() error {
	if err := l.closeCurrent(); err != nil {
		return err
	}

	l.report.pageCounter++
	l.ctx.Set(KeyPageIndex, l.report.pageCounter)

	p := &PreparedPage{
		Width:  l.page.Width,
		Height: l.page.Height,
		Margin: l.page.Margins,
		Index:  l.report.pageCounter,
	}
	if l.page.Watermark != nil {
		p.Watermark = &PreparedWatermark{
			Source:  l.page.Watermark.Source,
			Opacity: l.page.Watermark.Opacity,
			Angle:   l.page.Watermark.Angle,
		}
	}
	l.report.document.Pages = append(l.report.document.Pages, p)
	l.prepared = p
	l.open = true

	if l.report.Events != nil {
		if err := l.report.Events.Trigger(stdcontext.Background(), EventNewPage, p); err != nil {
			return err
		}
	}

	l.x = l.page.Margins.Left
	l.y = l.page.Margins.Top
	l.ay = l.page.Height - l.page.Margins.Bottom
	l.bottom = 0

	footerHeight := 0.0
	if footer := l.footerBand(); footer != nil {
		footerHeight = footer.Height
	}
	l.ay -= footerHeight

	printTitleFirst := l.page.TitleBeforeHeader && l.firstPage
	if printTitleFirst {
		if err := l.printTitleOnce(); err != nil {
			return err
		}
	}
	if header := l.headerBand(); header != nil {
		if _, err := l.placeDirect(header); err != nil {
			return err
		}
	}
	if !printTitleFirst && l.firstPage {
		if err := l.printTitleOnce(); err != nil {
			return err
		}
	}
	l.firstPage = false

	for _, cb := range append([]newPageCallback(nil), l.callbacks...) {
		if err := cb.fn(l.ctx); err != nil {
			return err
		}
	}
	return nil
}

func (l *layouter) printTitleOnce() error {
	if l.titlePrinted {
		return nil
	}
	title := l.titleBand()
	if title == nil {
		return nil
	}
	l.titlePrinted = true
	_, err := l.placeDirect(title)
	return err
}

// place lays the band out within the current page. At LevelPagination
// and above it starts a new page first if the band would not fit, or if
// it is a GroupHeader whose very first row would itself not fit - the
// orphaned-header avoidance rule. height is the band's computed
// height, already grown/shrunk by the caller if applicable.
func (l *layouter) place(b *Band, height float64, firstRowHeight float64) (*PreparedBand, error) {
	if !l.open {
		if err := l.newPage(); err != nil {
			return nil, err
		}
	}

	if l.level >= LevelPagination {
		needed := height
		if b.Kind == KindGroupHeader && firstRowHeight > 0 {
			needed += firstRowHeight
		}
		if l.y+needed > l.ay && l.y > l.page.Margins.Top {
			if err := l.newPage(); err != nil {
				return nil, err
			}
		}
	}

	if b.PrintOnBottom {
		l.ay -= height
		l.bottom += height
		return l.finishBand(b, l.x, l.ay, height)
	}

	return l.finishBand(b, l.x, l.y, height)
}

// placeDirect renders and places a band without the overflow/orphan
// checks printBand applies, used for header/footer/title printing which
// newPage drives itself rather than through the data/grouping driver.
func (l *layouter) placeDirect(b *Band) (*PreparedBand, error) {
	objs := renderObjects(l.report, l.ctx, b)

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

	var pb *PreparedBand
	var err error
	if b.PrintOnBottom {
		l.ay -= height
		pb, err = l.finishBand(b, l.x, l.ay, height)
	} else {
		pb, err = l.finishBand(b, l.x, l.y, height)
	}
	if err != nil {
		return nil, err
	}
	pb.Objects = objs
	return pb, nil
}

func (l *layouter) finishBand(b *Band, x, y, height float64) (*PreparedBand, error) {
	width := b.Width
	if width == 0 {
		width = l.page.contentWidth()
	}
	pb := &PreparedBand{
		Left:   x,
		Top:    y,
		Width:  width,
		Height: height,
		Kind:   b.Kind,
	}
	if !b.PrintOnBottom {
		l.y = y + height
	}
	if l.prepared != nil {
		l.prepared.Bands = append(l.prepared.Bands, pb)
	}
	return pb, nil
}

func (l *layouter) close() error {
	return l.closeCurrent()
}
