package bandreport

import (
	"strconv"
	"testing"

	"github.com/adverax/bandreport/expr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReport() *Report {
	return NewReport(expr.New())
}

// TestDataBandByRowCount covers a DataBand driven by a bare RowCount
// rather than a named DataSource: it must print once per row, with only
// a field-less placeholder record bound, and "row"/"line" counting from 1.
func TestDataBandByRowCount(t *testing.T) {
	page := NewDefaultPage()
	page.Bands = []*Band{
		{
			Name:     "lines",
			Kind:     KindDataBand,
			Height:   10,
			RowCount: 3,
			Objects: []Object{
				&Text{Name: "n", Geom: Geometry{Width: 50, Height: 10}, Source: "{{ row }}/{{ line }}"},
			},
		},
	}

	r := newTestReport()
	r.Pages = []*Page{page}

	doc, err := r.Prepare(LevelGeometry)
	require.NoError(t, err)
	require.Len(t, doc.Pages, 1)
	require.Len(t, doc.Pages[0].Bands, 3)

	for i, pb := range doc.Pages[0].Bands {
		require.Len(t, pb.Objects, 1)
		text := pb.Objects[0].(*PreparedText)
		want := strconv.Itoa(i+1) + "/" + strconv.Itoa(i+1)
		assert.Equal(t, want, text.Text)
	}
}

// TestDataBandBindsOwnNameAsRecordAlias confirms a band's Name is bound
// to the current record in addition to the datasource name, so a
// template can address the record either way: through the datasource's
// own name or through the band's name.
func TestDataBandBindsOwnNameAsRecordAlias(t *testing.T) {
	page := NewDefaultPage()
	page.Bands = []*Band{
		{
			Name:       "aliasband",
			Kind:       KindDataBand,
			Height:     10,
			DataSource: "orders",
			Objects: []Object{
				&Text{Name: "n", Geom: Geometry{Width: 50, Height: 10}, Source: "{{ aliasband['sku'] }}"},
			},
		},
	}

	r := newTestReport()
	r.Pages = []*Page{page}
	r.DataSources = []DataSource{
		NewArrayDataSource("orders", []Record{
			MapRecord{"sku": "A1"},
			MapRecord{"sku": "B2"},
		}),
	}

	doc, err := r.Prepare(LevelGeometry)
	require.NoError(t, err)
	require.Len(t, doc.Pages[0].Bands, 2)
	assert.Equal(t, "A1", doc.Pages[0].Bands[0].Objects[0].(*PreparedText).Text)
	assert.Equal(t, "B2", doc.Pages[0].Bands[1].Objects[0].(*PreparedText).Text)
}

// TestDataBandByDictDataSource covers a dict-shaped record read through
// a named ArrayDataSource, confirming field lookup via record['field'].
func TestDataBandByDictDataSource(t *testing.T) {
	page := NewDefaultPage()
	page.Bands = []*Band{
		{
			Name:       "orders",
			Kind:       KindDataBand,
			Height:     10,
			DataSource: "orders",
			Objects: []Object{
				&Text{Name: "sku", Geom: Geometry{Width: 50, Height: 10}, Source: "{{ record['sku'] }}"},
			},
		},
	}

	r := newTestReport()
	r.Pages = []*Page{page}
	r.DataSources = []DataSource{
		NewArrayDataSource("orders", []Record{
			MapRecord{"sku": "A1"},
			MapRecord{"sku": "B2"},
		}),
	}

	doc, err := r.Prepare(LevelGeometry)
	require.NoError(t, err)
	require.Len(t, doc.Pages[0].Bands, 2)
	assert.Equal(t, "A1", doc.Pages[0].Bands[0].Objects[0].(*PreparedText).Text)
	assert.Equal(t, "B2", doc.Pages[0].Bands[1].Objects[0].(*PreparedText).Text)
}

// TestDataBandHeaderFooterOnlyWhenUngrouped confirms an ungrouped data
// band brackets its rows with its own Header/Footer, printed exactly
// once each regardless of row count.
func TestDataBandHeaderFooterOnlyWhenUngrouped(t *testing.T) {
	page := NewDefaultPage()
	page.Bands = []*Band{
		{Name: "hdr", Kind: KindHeader, Height: 5},
		{Name: "ftr", Kind: KindFooter, Height: 5},
		{Name: "rows", Kind: KindDataBand, Height: 10, RowCount: 2, Header: "hdr", Footer: "ftr"},
	}

	r := newTestReport()
	r.Pages = []*Page{page}

	doc, err := r.Prepare(LevelGeometry)
	require.NoError(t, err)
	require.Len(t, doc.Pages[0].Bands, 4)
	assert.Equal(t, KindHeader, doc.Pages[0].Bands[0].Kind)
	assert.Equal(t, KindDataBand, doc.Pages[0].Bands[1].Kind)
	assert.Equal(t, KindDataBand, doc.Pages[0].Bands[2].Kind)
	assert.Equal(t, KindFooter, doc.Pages[0].Bands[3].Kind)
}

func TestAmbiguousDataBandRejected(t *testing.T) {
	page := NewDefaultPage()
	page.Bands = []*Band{
		{Name: "bad", Kind: KindDataBand, RowCount: 1, DataSource: "x"},
	}

	r := newTestReport()
	r.Pages = []*Page{page}

	_, err := r.Prepare(LevelGeometry)
	require.Error(t, err)
	assert.Equal(t, ErrAmbiguousDataBand, err)
}
