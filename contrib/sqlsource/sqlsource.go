// Package sqlsource adapts a SQL query into a bandreport.DataSource,
// materializing every row into a record on Open so the rest of the
// preparation pipeline never needs to know it came from a database.
package sqlsource

import (
	"fmt"

	"github.com/adverax/bandreport"
	esql "github.com/adverax/bandreport/database/sql"
	_ "github.com/go-sql-driver/mysql"
)

// DataSource runs Query against DB once, on Open, and exposes every row
// as a bandreport.MapRecord keyed by column name.
type DataSource struct {
	NameValue string
	DB        esql.DB
	Query     string
	Args      []interface{}

	rows  []bandreport.Record
	state bandreport.DataSourceState
}

// New builds a sqlsource.DataSource bound to db, running query with args
// once opened.
func New(name string, db esql.DB, query string, args ...interface{}) *DataSource {
	return &DataSource{NameValue: name, DB: db, Query: query, Args: args}
}

// Connect opens dsc through the master/slave cluster machinery and wraps
// the result with query tracing when tracer is non-nil - a log.Logger
// already satisfies esql.Tracer, so the same logger a report is prepared
// with can trace the queries that feed it.
func Connect(dsc esql.DSC, tracer esql.Tracer) (esql.DB, error) {
	db, err := dsc.Open(nil)
	if err != nil {
		return nil, fmt.Errorf("sqlsource: connect: %w", err)
	}
	if tracer != nil {
		db = esql.WithProfiler(db, tracer, "sqlsource: ")
	}
	return db, nil
}

func (ds *DataSource) Name() string { return ds.NameValue }

func (ds *DataSource) Open(ctx *bandreport.Context) error {
	rs, err := ds.DB.Query(ds.Query, ds.Args...)
	if err != nil {
		return fmt.Errorf("sqlsource %q: %w", ds.NameValue, err)
	}
	defer rs.Close()

	cols, err := rs.Columns()
	if err != nil {
		return fmt.Errorf("sqlsource %q: %w", ds.NameValue, err)
	}

	ds.rows = nil
	for rs.Next() {
		values := make([]interface{}, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rs.Scan(ptrs...); err != nil {
			return fmt.Errorf("sqlsource %q: %w", ds.NameValue, err)
		}

		rec := make(bandreport.MapRecord, len(cols))
		for i, col := range cols {
			rec[col] = values[i]
		}
		ds.rows = append(ds.rows, rec)
	}
	if err := rs.Err(); err != nil {
		return fmt.Errorf("sqlsource %q: %w", ds.NameValue, err)
	}

	ds.state = bandreport.StateOpened
	return nil
}

func (ds *DataSource) Close() error {
	ds.state = bandreport.StateClosed
	return nil
}

func (ds *DataSource) State() bandreport.DataSourceState { return ds.state }

func (ds *DataSource) Records() []bandreport.Record {
	if ds.state != bandreport.StateOpened {
		return nil
	}
	return ds.rows
}
