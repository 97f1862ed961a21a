// Command bandreportd exposes report preparation over HTTP: a client
// posts the data-source rows and parameters for a registered report and
// gets back the prepared document as JSON.
package main

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/adverax/bandreport"
	"github.com/adverax/bandreport/cache"
	cachemem "github.com/adverax/bandreport/cache/memory"
	"github.com/adverax/bandreport/cacher"
	cachermem "github.com/adverax/bandreport/cacher/memory"
	"github.com/adverax/bandreport/expr"
	"github.com/adverax/bandreport/log"
	"github.com/adverax/bandreport/sync/arbiter"
)

// Builder constructs the page definitions for one named report. Builders
// are registered at startup; the server never accepts band definitions
// over the wire, only the records and parameters they are driven with.
type Builder func() []*bandreport.Page

var registry = map[string]Builder{}

// Register makes a report available at POST /reports/{name}/render.
func Register(name string, build Builder) {
	registry[name] = build
}

type renderRequest struct {
	Params      map[string]interface{}              `json:"params"`
	DataSources map[string][]map[string]interface{} `json:"data_sources"`
	Level       uint8                                `json:"level"`
}

type server struct {
	logger log.Logger
	cache  cacher.Cacher
}

// dependencyTags hashes each data source's rows into a tag so the cache
// entry can be invalidated the moment that data source's content changes,
// without hashing the whole request body as the cache key.
func dependencyTags(req *renderRequest) map[string]string {
	tags := make(map[string]string, len(req.DataSources))
	for name, rows := range req.DataSources {
		raw, _ := json.Marshal(rows)
		sum := md5.Sum(raw)
		tags["ds:"+name] = hex.EncodeToString(sum[:])
	}
	return tags
}

func (s *server) render(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	build, ok := registry[name]
	if !ok {
		http.Error(w, "unknown report "+name, http.StatusNotFound)
		return
	}

	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var doc *bandreport.Document
	err := s.cache.FetchData(name, dependencyTags(&req), &doc, func() (interface{}, error) {
		return s.prepare(name, build, &req)
	}, time.Minute)
	if err != nil {
		s.logger.Error("render " + name + ": " + err.Error())
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(doc)
}

func (s *server) prepare(name string, build Builder, req *renderRequest) (*bandreport.Document, error) {
	rep := bandreport.NewReport(expr.New())
	rep.Logger = s.logger
	rep.Pages = build()

	for k, v := range req.Params {
		rep.Variables[k] = v
	}
	for dsName, rows := range req.DataSources {
		records := make([]bandreport.Record, len(rows))
		for i, row := range rows {
			records[i] = bandreport.MapRecord(row)
		}
		rep.DataSources = append(rep.DataSources, bandreport.NewArrayDataSource(dsName, records))
	}

	level := bandreport.Level(req.Level)
	if level == 0 {
		level = bandreport.LevelGeometry
	}

	s.logger.Trace("preparing report " + name)
	return rep.Prepare(level)
}

func newRouter(s *server) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Post("/reports/{name}/render", s.render)
	return r
}

func main() {
	logger := log.New(os.Stdout, os.Stdout, os.Stderr, os.Stderr, "bandreportd ")

	// BANDREPORTD_NO_CACHE plugs in a no-op cache.Cache so every render
	// recomputes the document - useful while iterating on a report's
	// band layout, where a stale cached page would be confusing.
	var backing cache.Cache = cachemem.New(cachemem.Options{})
	if os.Getenv("BANDREPORTD_NO_CACHE") != "" {
		backing = &cache.DummyCache{}
	}

	store := cachermem.New(arbiter.NewLocal(), backing)
	s := &server{
		logger: logger,
		cache:  cacher.New(store),
	}

	addr := os.Getenv("BANDREPORTD_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	logger.Info("listening on " + addr)
	if err := http.ListenAndServe(addr, newRouter(s)); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}
