package bandreport

import (
	"time"

	"github.com/adverax/bandreport/cache"
	"github.com/adverax/bandreport/sync/arbiter"
)

// TemplateCache compiles a template source once and reuses the compiled
// Template for every later call with the same source.
type TemplateCache interface {
	Compile(source string, compile func(string) (Template, error)) (Template, error)
}

type templateCache struct {
	arbiter arbiter.Arbiter
	cache   cache.Cache
	ttl     time.Duration
}

// NewTemplateCache builds a TemplateCache over cache, guarded per-source
// by arbiter so two goroutines racing to compile the same source never
// both pay the parse cost - the second simply waits for the first.
func NewTemplateCache(a arbiter.Arbiter, c cache.Cache, ttl time.Duration) TemplateCache {
	return &templateCache{arbiter: a, cache: c, ttl: ttl}
}

func (c *templateCache) Compile(source string, compile func(string) (Template, error)) (Template, error) {
	c.arbiter.Lock(source)
	defer c.arbiter.Unlock(source)

	var tpl Template
	if err := c.cache.Get(source, &tpl); err == nil {
		return tpl, nil
	}

	tpl, err := compile(source)
	if err != nil {
		return nil, err
	}

	_ = c.cache.Set(source, tpl, c.ttl)
	return tpl, nil
}

// CachingEvaluator wraps an Evaluator so repeated Compile calls for the
// same source text - the common case, since a band's objects are
// re-rendered once per record - never recompile it.
type CachingEvaluator struct {
	Evaluator Evaluator
	Cache     TemplateCache
}

func (e *CachingEvaluator) Compile(source string) (Template, error) {
	return e.Cache.Compile(source, e.Evaluator.Compile)
}
