package bandreport

import (
	stdcontext "context"
	"testing"

	"github.com/adverax/bandreport/expr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDeferredPageCountResolvesAfterPagination drives a DataBand with
// enough rows to force several page breaks, each printing a text block
// that references the final page count through the secondary ("${ }")
// delimiter. No resolved text may still carry an unresolved "${" marker
// once preparation finishes, since page_count is only known once every
// page has been laid out.
func TestDeferredPageCountResolvesAfterPagination(t *testing.T) {
	page := NewDefaultPage()
	page.Height = 60
	page.Margins = Margins{Left: 2, Top: 2, Right: 2, Bottom: 2}
	page.Bands = []*Band{
		{
			Name: "rows", Kind: KindDataBand, Height: 20, RowCount: 5,
			Objects: []Object{
				&Text{Name: "t", Geom: Geometry{Width: 40, Height: 20}, Source: "page {{ page_index }} of ${ page_count }"},
			},
		},
	}

	r := NewReport(expr.New())
	r.Pages = []*Page{page}

	doc, err := r.Prepare(LevelGeometry)
	require.NoError(t, err)
	require.True(t, len(doc.Pages) > 1, "expected pagination to force more than one page")

	for _, p := range doc.Pages {
		for _, b := range p.Bands {
			for _, obj := range b.Objects {
				text, ok := obj.(*PreparedText)
				if !ok {
					continue
				}
				assert.NotContains(t, text.Text, "${")
			}
		}
	}
}

func TestDeferredTemplateLeavesMarkerOnRenderFailure(t *testing.T) {
	page := NewDefaultPage()
	page.Bands = []*Band{
		{
			Name: "one", Kind: KindDataBand, RowCount: 1,
			Objects: []Object{
				&Text{Name: "t", Geom: Geometry{Width: 40, Height: 10}, Source: "${ nonexistent_identifier }"},
			},
		},
	}

	r := NewReport(expr.New())
	r.Pages = []*Page{page}

	doc, err := r.Prepare(LevelGeometry)
	require.NoError(t, err)
	text := doc.Pages[0].Bands[0].Objects[0].(*PreparedText)
	assert.Equal(t, "${ nonexistent_identifier }", text.Text)
}

func TestCrossReferenceToUnknownBandIsConfigError(t *testing.T) {
	page := NewDefaultPage()
	page.Bands = []*Band{
		{Name: "rows", Kind: KindDataBand, RowCount: 1, Header: "missing"},
	}
	r := NewReport(expr.New())
	r.Pages = []*Page{page}

	_, err := r.Prepare(LevelGeometry)
	require.Error(t, err)
	_, ok := err.(*ConfigError)
	assert.True(t, ok)
}

func TestSubreportPageIsSkippedAsRoot(t *testing.T) {
	inner := NewDefaultPage()
	inner.Name = "inner"
	inner.Bands = []*Band{
		{Name: "inner-row", Kind: KindDataBand, Height: 5, RowCount: 1},
	}

	outer := NewDefaultPage()
	outer.Name = "outer"
	outer.Bands = []*Band{
		{
			Name: "host", Kind: KindDataBand, Height: 20, RowCount: 1,
			Objects: []Object{
				&Subreport{Name: "embed", Geom: Geometry{Left: 0, Top: 0}, Page: "inner"},
			},
		},
	}

	r := NewReport(expr.New())
	r.Pages = []*Page{outer, inner}

	doc, err := r.Prepare(LevelGeometry)
	require.NoError(t, err)
	require.Len(t, doc.Pages, 1, "the inner page must not be driven on its own")
	require.Len(t, doc.Pages[0].Bands, 2, "host band plus the inlined inner-row band")
	assert.Equal(t, KindDataBand, doc.Pages[0].Bands[0].Kind)
	assert.Equal(t, KindDataBand, doc.Pages[0].Bands[1].Kind)
}

// TestLifecycleEventsFireInOrder confirms a host subscribing through
// Report.Events sees prepare.start, one page.new per prepared page, and
// prepare.done fire in that order.
func TestLifecycleEventsFireInOrder(t *testing.T) {
	page := NewDefaultPage()
	page.Height = 30
	page.Margins = Margins{Left: 1, Top: 1, Right: 1, Bottom: 1}
	page.Bands = []*Band{
		{Name: "rows", Kind: KindDataBand, Height: 10, RowCount: 3},
	}

	r := NewReport(expr.New())
	r.Pages = []*Page{page}

	var seen []string
	r.Events.On(EventPrepareStart, func(ctx stdcontext.Context, ev interface{}) error {
		seen = append(seen, EventPrepareStart)
		return nil
	})
	r.Events.On(EventNewPage, func(ctx stdcontext.Context, ev interface{}) error {
		_, ok := ev.(*PreparedPage)
		assert.True(t, ok, "page.new payload must be the fresh *PreparedPage")
		seen = append(seen, EventNewPage)
		return nil
	})
	r.Events.On(EventPrepareDone, func(ctx stdcontext.Context, ev interface{}) error {
		seen = append(seen, EventPrepareDone)
		return nil
	})

	doc, err := r.Prepare(LevelGeometry)
	require.NoError(t, err)
	require.Len(t, doc.Pages, 2, "3 rows of height 10 on 28 usable units fits 2 then rolls 1 over")

	require.Len(t, seen, 4)
	assert.Equal(t, EventPrepareStart, seen[0])
	assert.Equal(t, EventNewPage, seen[1])
	assert.Equal(t, EventNewPage, seen[2])
	assert.Equal(t, EventPrepareDone, seen[3])
}
