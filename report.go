package bandreport

import (
	"fmt"

	"github.com/adverax/bandreport/event"
	"github.com/adverax/bandreport/generic"
	"github.com/adverax/bandreport/log"
)

// Lifecycle event names triggered on a Report's Events publisher during
// preparation. A subscriber receives the PreparedPage for EventNewPage
// and the Report itself for the prepare start/done pair.
const (
	EventPrepareStart = "prepare.start"
	EventPrepareDone  = "prepare.done"
	EventNewPage      = "page.new"
)

// Millimetre is one millimetre expressed in device-independent points,
// the unit every coordinate in this package is expressed in.
const Millimetre = 2.834645

// Orientation is a page's paper orientation.
type Orientation uint8

const (
	Portrait Orientation = iota
	Landscape
)

// Margins is the four-sided page margin block.
type Margins struct {
	Left, Top, Right, Bottom float64
}

// Page owns an ordered list of bands plus paper geometry. Cross-band
// name references (a data band naming its group header by name, and
// back) are resolved into bandLinks indices during the page band pass.
type Page struct {
	Name              string
	Width             float64
	Height            float64
	Margins           Margins
	Orientation       Orientation
	TitleBeforeHeader bool
	Watermark         *Watermark
	Bands             []*Band

	skip bool // true once referenced as a subreport target
}

// Watermark is a page-wide background image.
type Watermark struct {
	Source  ImageSource
	Opacity float64
	Angle   float64
}

// NewDefaultPage returns an A4 portrait page with 5mm margins, the
// engine's documented default.
func NewDefaultPage() *Page {
	m := 5 * Millimetre
	return &Page{
		Width:   210 * Millimetre,
		Height:  297 * Millimetre,
		Margins: Margins{Left: m, Top: m, Right: m, Bottom: m},
	}
}

func (p *Page) bandIndex(name string) int {
	if name == "" {
		return -1
	}
	for i, b := range p.Bands {
		if b.Name == name {
			return i
		}
	}
	return -1
}

func (p *Page) band(name string) *Band {
	if i := p.bandIndex(name); i >= 0 {
		return p.Bands[i]
	}
	return nil
}

func (p *Page) contentWidth() float64 {
	return p.Width - p.Margins.Left - p.Margins.Right
}

// MeasureFunc is the externally injected font-metrics callback used to
// grow/shrink a Text object's height. The core never depends on a
// graphics toolkit; a rendering back-end supplies one.
type MeasureFunc func(text, font string, width float64) (w, h float64)

// Report is the root of a report definition: pages, data sources,
// variables, and - once Prepare runs - the transient preparation state
// (context, pending-deferred list, page counter, output document).
// A Report is meant to be built once per render job and prepared once;
// nothing about preparation is safe to run concurrently on one Report.
type Report struct {
	Pages       []*Page
	DataSources []DataSource
	Variables   generic.Params

	Evaluator        Evaluator
	ErrorPlaceholder string
	Measure          MeasureFunc
	Logger           log.Logger
	Events           event.Publisher

	context     *Context
	deferred    []deferredEntry
	pageCounter int
	document    *Document
}

// NewReport builds an empty Report wired to the given evaluator, with
// the documented default error placeholder.
func NewReport(ev Evaluator) *Report {
	return &Report{
		Evaluator:        ev,
		Variables:        make(generic.Params),
		ErrorPlaceholder: "-",
		Events:           event.New(),
	}
}

// deferredEntry is one pending secondary-delimiter template, queued
// during band processing and resolved once after every page has been
// prepared and page_count is known.
type deferredEntry struct {
	Source string
	Target *PreparedText
}

func (r *Report) deferText(source string, target *PreparedText) {
	r.deferred = append(r.deferred, deferredEntry{Source: source, Target: target})
}

func (r *Report) placeholder() string {
	if r.ErrorPlaceholder == "" {
		return "-"
	}
	return r.ErrorPlaceholder
}

func (r *Report) logf(class log.Class, format string, args ...interface{}) {
	if r.Logger == nil {
		return
	}
	msg := fmt.Sprintf(format, args...)
	switch class {
	case log.ClassTrace:
		r.Logger.Trace(msg)
	case log.ClassWarning:
		r.Logger.Warning(msg)
	case log.ClassError:
		r.Logger.Error(msg)
	default:
		r.Logger.Info(msg)
	}
}
