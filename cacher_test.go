package bandreport

import (
	"testing"
	"time"

	"github.com/adverax/bandreport/cache/memory"
	"github.com/adverax/bandreport/expr"
	"github.com/adverax/bandreport/sync/arbiter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateCacheCompilesOnceAndReuses(t *testing.T) {
	tc := NewTemplateCache(arbiter.NewLocal(), memory.New(memory.Options{}), time.Minute)

	var calls int
	compile := func(source string) (Template, error) {
		calls++
		return expr.New().Compile(source)
	}

	tpl1, err := tc.Compile("{{ 1 + 1 }}", compile)
	require.NoError(t, err)
	tpl2, err := tc.Compile("{{ 1 + 1 }}", compile)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.True(t, tpl1 == tpl2, "second Compile must return the cached Template")
}

func TestCachingEvaluatorDelegatesThroughCache(t *testing.T) {
	ev := &CachingEvaluator{
		Evaluator: expr.New(),
		Cache:     NewTemplateCache(arbiter.NewLocal(), memory.New(memory.Options{}), time.Minute),
	}

	tpl, err := ev.Compile("{{ 2 * 3 }}")
	require.NoError(t, err)

	out, err := tpl.Render(NewContext())
	require.NoError(t, err)
	assert.Equal(t, "6", out)
}
