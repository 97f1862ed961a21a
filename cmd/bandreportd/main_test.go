package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adverax/bandreport"
	cachemem "github.com/adverax/bandreport/cache/memory"
	"github.com/adverax/bandreport/cacher"
	cachermem "github.com/adverax/bandreport/cacher/memory"
	"github.com/adverax/bandreport/log"
	"github.com/adverax/bandreport/sync/arbiter"
)

func newTestServer() *server {
	store := cachermem.New(arbiter.NewLocal(), cachemem.New(cachemem.Options{}))
	return &server{
		logger: log.New(discard{}, discard{}, discard{}, discard{}, "test "),
		cache:  cacher.New(store),
	}
}

// renderedDocument mirrors the JSON shape of a bandreport.Document. The
// prepared objects stay raw JSON: PreparedObject is an interface, so
// encoding/json cannot decode them back into a bandreport.Document.
type renderedDocument struct {
	Pages []struct {
		Bands []struct {
			Kind    bandreport.BandKind `json:"kind"`
			Objects []json.RawMessage   `json:"objects"`
		} `json:"bands"`
	} `json:"pages"`
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func orderReport() []*bandreport.Page {
	page := bandreport.NewDefaultPage()
	page.Bands = []*bandreport.Band{
		{
			Name: "rows", Kind: bandreport.KindDataBand, Height: 10, DataSource: "orders",
			Objects: []bandreport.Object{
				&bandreport.Text{Name: "sku", Geom: bandreport.Geometry{Width: 40, Height: 10}, Source: "{{ record['sku'] }}"},
			},
		},
	}
	return []*bandreport.Page{page}
}

func TestRenderReturnsPreparedDocumentJSON(t *testing.T) {
	Register("orders", orderReport)

	s := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/reports/orders/render", bytes.NewBufferString(
		`{"data_sources":{"orders":[{"sku":"A1"},{"sku":"B2"}]}}`,
	))
	rec := httptest.NewRecorder()

	newRouter(s).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var doc renderedDocument
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	require.Len(t, doc.Pages, 1)
	require.Len(t, doc.Pages[0].Bands, 2)
}

func TestRenderUnknownReportReturns404(t *testing.T) {
	s := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/reports/does-not-exist/render", bytes.NewBufferString(`{}`))
	rec := httptest.NewRecorder()

	newRouter(s).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRenderIsCachedPerDependencyTags(t *testing.T) {
	Register("orders", orderReport)
	s := newTestServer()
	body := `{"data_sources":{"orders":[{"sku":"A1"}]}}`

	var first, second renderedDocument
	for _, doc := range []*renderedDocument{&first, &second} {
		req := httptest.NewRequest(http.MethodPost, "/reports/orders/render", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()
		newRouter(s).ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), doc))
	}

	assert.Equal(t, first, second)
}

func TestDependencyTagsChangeWithDataSourceContent(t *testing.T) {
	a := &renderRequest{DataSources: map[string][]map[string]interface{}{
		"orders": {{"sku": "A1"}},
	}}
	b := &renderRequest{DataSources: map[string][]map[string]interface{}{
		"orders": {{"sku": "B2"}},
	}}

	tagsA := dependencyTags(a)
	tagsB := dependencyTags(b)
	assert.NotEqual(t, tagsA["ds:orders"], tagsB["ds:orders"])
}
