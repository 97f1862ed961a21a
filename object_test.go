package bandreport

import (
	"testing"

	"github.com/adverax/bandreport/expr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHighlightOverridesOnlyWhenConditionIsTrue exercises a Text object
// whose Highlight.Condition is evaluated per record: rows where it
// renders the literal "True" get the highlighted background, every
// other row keeps its declared default.
func TestHighlightOverridesOnlyWhenConditionIsTrue(t *testing.T) {
	page := NewDefaultPage()
	page.Bands = []*Band{
		{
			Name: "rows", Kind: KindDataBand, Height: 10, DataSource: "orders",
			Objects: []Object{
				&Text{
					Name:       "amount",
					Geom:       Geometry{Width: 40, Height: 10},
					Source:     "{{ record['amount'] }}",
					Background: "white",
					Highlight: &Highlight{
						Condition:  "{{ record['amount'] > 100 }}",
						Background: "red",
						BrushStyle: "solid",
					},
				},
			},
		},
	}

	r := NewReport(expr.New())
	r.Pages = []*Page{page}
	r.DataSources = []DataSource{
		NewArrayDataSource("orders", []Record{
			MapRecord{"amount": 50},
			MapRecord{"amount": 150},
		}),
	}

	doc, err := r.Prepare(LevelGeometry)
	require.NoError(t, err)
	require.Len(t, doc.Pages[0].Bands, 2)

	low := doc.Pages[0].Bands[0].Objects[0].(*PreparedText)
	high := doc.Pages[0].Bands[1].Objects[0].(*PreparedText)

	assert.Equal(t, "white", low.Background)
	assert.Empty(t, low.BrushStyle)

	assert.Equal(t, "red", high.Background)
	assert.Equal(t, "solid", high.BrushStyle)
}

func TestBarcodeWithoutDataSourceProducesNoObject(t *testing.T) {
	page := NewDefaultPage()
	page.Bands = []*Band{
		{
			Name: "row", Kind: KindDataBand, Height: 10, RowCount: 1,
			Objects: []Object{
				&Barcode{Name: "code", Geom: Geometry{Width: 30, Height: 10}, Symbology: "code128", Source: BarcodeSource{Field: "sku"}},
			},
		},
	}

	r := NewReport(expr.New())
	r.Pages = []*Page{page}

	doc, err := r.Prepare(LevelGeometry)
	require.NoError(t, err)
	require.Len(t, doc.Pages, 1)
	require.Len(t, doc.Pages[0].Bands, 1)
	assert.Empty(t, doc.Pages[0].Bands[0].Objects)
}

func TestStretchedBandGrowsToFitOverflowingText(t *testing.T) {
	page := NewDefaultPage()
	page.Bands = []*Band{
		{
			Name: "note", Kind: KindDataBand, Height: 10, RowCount: 1, Stretched: true,
			Objects: []Object{
				&Text{Name: "t", Geom: Geometry{Top: 5, Height: 20, Width: 40}, Source: "x"},
			},
		},
	}

	r := NewReport(expr.New())
	r.Pages = []*Page{page}

	doc, err := r.Prepare(LevelGeometry)
	require.NoError(t, err)
	require.Len(t, doc.Pages[0].Bands, 1)
	assert.Equal(t, 25.0, doc.Pages[0].Bands[0].Height)
}
