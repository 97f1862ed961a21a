package expr

import (
	"testing"

	"github.com/adverax/bandreport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, source string, ctx *bandreport.Context) string {
	t.Helper()
	tpl, err := New().Compile(source)
	require.NoError(t, err)
	out, err := tpl.Render(ctx)
	require.NoError(t, err)
	return out
}

func TestTemplateLiteralText(t *testing.T) {
	ctx := bandreport.NewContext()
	assert.Equal(t, "hello world", render(t, "hello world", ctx))
}

func TestTemplateFieldAndArithmetic(t *testing.T) {
	ctx := bandreport.NewContext()
	ctx.Set(bandreport.KeyRecord, bandreport.MapRecord{"qty": 3, "price": 2.5})
	out := render(t, "{{ record['qty'] * record['price'] }}", ctx)
	assert.Equal(t, "7.5", out)
}

func TestTemplateDotFieldAccess(t *testing.T) {
	ctx := bandreport.NewContext()
	ctx.Set(bandreport.KeyRecord, bandreport.MapRecord{"name": "Ada"})
	assert.Equal(t, "Ada", render(t, "{{ record.name }}", ctx))
}

func TestTemplateComparisonRendersAsTitleCase(t *testing.T) {
	ctx := bandreport.NewContext()
	ctx.Set(bandreport.KeyRecord, bandreport.MapRecord{"qty": 10})
	assert.Equal(t, "True", render(t, "{{ record['qty'] > 5 }}", ctx))
	assert.Equal(t, "False", render(t, "{{ record['qty'] > 50 }}", ctx))
}

func TestTemplateSecondaryDelimiterDeferredByDefault(t *testing.T) {
	ctx := bandreport.NewContext()
	ctx.Set(bandreport.KeyPageCount, 4)
	out := render(t, "page 1 of ${ page_count }", ctx)
	assert.Equal(t, "page 1 of ${ page_count }", out)
}

func TestTemplateSecondaryDelimiterResolvesWhenFlagged(t *testing.T) {
	ctx := bandreport.NewContext()
	ctx.Set(bandreport.KeyPageCount, 4)
	ctx.Set(bandreport.KeyResolveSecondary, true)
	out := render(t, "page 1 of ${ page_count }", ctx)
	assert.Equal(t, "page 1 of 4", out)
}

func TestHelperTotal(t *testing.T) {
	ctx := bandreport.NewContext()
	group := &bandreport.Group{
		Data: []bandreport.Record{
			bandreport.MapRecord{"amount": 10},
			bandreport.MapRecord{"amount": 5},
		},
	}
	ctx.Set(bandreport.KeyGroup, group)
	assert.Equal(t, "15", render(t, "{{ total('amount') }}", ctx))
}

func TestHelperFormatNumber(t *testing.T) {
	ctx := bandreport.NewContext()
	ctx.Set(bandreport.KeyRecord, bandreport.MapRecord{"amount": 12.3456})
	assert.Equal(t, "12.35", render(t, "{{ format_number(record['amount'], 2) }}", ctx))
}

func TestRenderErrorOnUnknownIdentifier(t *testing.T) {
	ctx := bandreport.NewContext()
	_, err := New().Compile("{{ nope }}")
	require.NoError(t, err)
	tpl, err := New().Compile("{{ nope }}")
	require.NoError(t, err)
	_, err = tpl.Render(ctx)
	assert.Error(t, err)
}
