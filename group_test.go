package bandreport

import (
	"testing"

	"github.com/adverax/bandreport/expr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNestedGrouping drives two levels of GroupHeader (region, then city)
// over consecutive-equal runs, confirming the outer header prints once
// per region, the inner header once per (region, city) run, and the
// data band's own Footer prints exactly once at the very end.
func TestNestedGrouping(t *testing.T) {
	page := NewDefaultPage()
	page.Bands = []*Band{
		{
			Name: "region", Kind: KindGroupHeader, Height: 8,
			Field: "region", DataBand: "city",
		},
		{
			Name: "city", Kind: KindGroupHeader, Height: 6,
			Field: "city", Parent: "region", DataBand: "rows",
		},
		{
			Name: "rows", Kind: KindDataBand, Height: 4,
			DataSource: "orders", GroupHeader: "city",
			Footer: "grand-total",
		},
		{Name: "grand-total", Kind: KindFooter, Height: 6},
	}

	r := NewReport(expr.New())
	r.Pages = []*Page{page}
	r.DataSources = []DataSource{
		NewArrayDataSource("orders", []Record{
			MapRecord{"region": "east", "city": "nyc", "amount": 1},
			MapRecord{"region": "east", "city": "nyc", "amount": 2},
			MapRecord{"region": "east", "city": "albany", "amount": 3},
			MapRecord{"region": "west", "city": "la", "amount": 4},
		}),
	}

	doc, err := r.Prepare(LevelGeometry)
	require.NoError(t, err)
	require.Len(t, doc.Pages, 1)

	var kinds []BandKind
	for _, b := range doc.Pages[0].Bands {
		kinds = append(kinds, b.Kind)
	}

	// 2 region headers, 3 city headers, 4 rows, 1 trailing footer.
	assert.Equal(t, []BandKind{
		KindGroupHeader, // region=east
		KindGroupHeader, // city=nyc
		KindDataBand,
		KindDataBand,
		KindGroupHeader, // city=albany
		KindDataBand,
		KindGroupHeader, // region=west
		KindGroupHeader, // city=la
		KindDataBand,
		KindFooter,
	}, kinds)
}

func TestGroupKeySourceUsesFieldShorthand(t *testing.T) {
	gh := &Band{Field: "region"}
	assert.Equal(t, "{{ record['region'] }}", groupKeySource(gh))

	gh2 := &Band{Expression: "{{ record['region'] }}-{{ record['city'] }}"}
	assert.Equal(t, gh2.Expression, groupKeySource(gh2))
}

func TestGroupHeaderWithoutExpressionOrFieldRejected(t *testing.T) {
	page := NewDefaultPage()
	page.Bands = []*Band{
		{Name: "bad", Kind: KindGroupHeader, DataBand: "rows"},
		{Name: "rows", Kind: KindDataBand, RowCount: 1, GroupHeader: "bad"},
	}
	r := NewReport(expr.New())
	r.Pages = []*Page{page}

	_, err := r.Prepare(LevelGeometry)
	require.Error(t, err)
}
