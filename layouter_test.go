package bandreport

import (
	"testing"

	"github.com/adverax/bandreport/expr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPageOverflowBandsPerPage fits floor(usable height / band height)
// bands on each page before breaking: an 8-row band on a page with 300
// units of usable height after margins fits floor(300/40) = 7 per page,
// then rolls the remaining row onto a second page.
func TestPageOverflowBandsPerPage(t *testing.T) {
	const usable = 300.0
	const bandHeight = 40.0

	page := NewDefaultPage()
	page.Height = usable + 20 // + top/bottom margin below
	page.Margins = Margins{Left: 5, Top: 10, Right: 5, Bottom: 10}
	page.Bands = []*Band{
		{Name: "rows", Kind: KindDataBand, Height: bandHeight, RowCount: 8},
	}

	r := NewReport(expr.New())
	r.Pages = []*Page{page}

	doc, err := r.Prepare(LevelGeometry)
	require.NoError(t, err)

	require.Len(t, doc.Pages, 2)
	assert.Equal(t, 7, len(doc.Pages[0].Bands))
	assert.Equal(t, 1, len(doc.Pages[1].Bands))
}

// TestLevelDataNeverBreaksPages confirms LevelData (1) runs the driver
// without any pagination at all: every band lands on one synthetic page
// regardless of how much content would, at LevelGeometry, overflow it.
func TestLevelDataNeverBreaksPages(t *testing.T) {
	page := NewDefaultPage()
	page.Height = 50
	page.Margins = Margins{Left: 2, Top: 2, Right: 2, Bottom: 2}
	page.Bands = []*Band{
		{Name: "rows", Kind: KindDataBand, Height: 40, RowCount: 5},
	}

	r := NewReport(expr.New())
	r.Pages = []*Page{page}

	doc, err := r.Prepare(LevelData)
	require.NoError(t, err)
	require.Len(t, doc.Pages, 1)
	assert.Len(t, doc.Pages[0].Bands, 5)
}

// TestPageWithNoBandsYieldsOneEmptyPage: a page declaring no bands at all
// still opens - the first page is unconditional, not triggered lazily by
// the first root band.
func TestPageWithNoBandsYieldsOneEmptyPage(t *testing.T) {
	page := NewDefaultPage()

	r := NewReport(expr.New())
	r.Pages = []*Page{page}

	doc, err := r.Prepare(LevelGeometry)
	require.NoError(t, err)
	require.Len(t, doc.Pages, 1)
	assert.Empty(t, doc.Pages[0].Bands)
}

// TestPageWithOnlyHeaderFooterYieldsOnePage: a page whose only declared
// bands are PageHeader/PageFooter (excluded from rootBands) must still
// print them, on exactly one page.
func TestPageWithOnlyHeaderFooterYieldsOnePage(t *testing.T) {
	page := NewDefaultPage()
	page.Bands = []*Band{
		{Name: "head", Kind: KindPageHeader, Height: 8},
		{Name: "foot", Kind: KindPageFooter, Height: 8},
	}

	r := NewReport(expr.New())
	r.Pages = []*Page{page}

	doc, err := r.Prepare(LevelGeometry)
	require.NoError(t, err)
	require.Len(t, doc.Pages, 1)
	require.Len(t, doc.Pages[0].Bands, 2)
	assert.Equal(t, KindPageHeader, doc.Pages[0].Bands[0].Kind)
	assert.Equal(t, KindPageFooter, doc.Pages[0].Bands[1].Kind)
}

func TestOnNewPageCallbackFiresOnEveryPageBreak(t *testing.T) {
	page := NewDefaultPage()
	page.Height = 50
	page.Margins = Margins{Left: 2, Top: 2, Right: 2, Bottom: 2}

	r := NewReport(expr.New())
	ctx := NewContext()
	l := newLayouter(r, page, LevelGeometry, ctx)
	r.document = &Document{}

	var calls int
	l.onNewPage(func(*Context) error {
		calls++
		return nil
	})

	require.NoError(t, l.newPage())
	require.NoError(t, l.newPage())
	assert.Equal(t, 2, calls)
}
