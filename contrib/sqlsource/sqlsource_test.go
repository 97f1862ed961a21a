package sqlsource

import (
	"errors"
	"testing"

	"github.com/adverax/bandreport"
	esql "github.com/adverax/bandreport/database/sql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDB embeds esql.DB so it satisfies the full interface (including its
// unexported lifecycle methods) without implementing them; only Query is
// ever called by DataSource.Open, so only Query needs a real body.
type fakeDB struct {
	esql.DB
	query func(query string, args ...interface{}) (esql.Rows, error)
}

func (f *fakeDB) Query(query string, args ...interface{}) (esql.Rows, error) {
	return f.query(query, args...)
}

// fakeRows is a minimal in-memory esql.Rows over a fixed column/row set.
type fakeRows struct {
	cols   []string
	data   [][]interface{}
	cursor int
	closed bool
}

func (r *fakeRows) Err() error    { return nil }
func (r *fakeRows) Columns() ([]string, error) { return r.cols, nil }
func (r *fakeRows) Close() error  { r.closed = true; return nil }

func (r *fakeRows) Next() bool {
	if r.cursor >= len(r.data) {
		return false
	}
	r.cursor++
	return true
}

func (r *fakeRows) Scan(dest ...interface{}) error {
	row := r.data[r.cursor-1]
	for i, d := range dest {
		ptr := d.(*interface{})
		*ptr = row[i]
	}
	return nil
}

func TestDataSourceOpenMaterializesRowsAsMapRecords(t *testing.T) {
	rows := &fakeRows{
		cols: []string{"sku", "qty"},
		data: [][]interface{}{
			{"A1", int64(3)},
			{"B2", int64(7)},
		},
	}
	db := &fakeDB{query: func(query string, args ...interface{}) (esql.Rows, error) {
		assert.Equal(t, "select sku, qty from orders where region = ?", query)
		require.Len(t, args, 1)
		assert.Equal(t, "east", args[0])
		return rows, nil
	}}

	ds := New("orders", db, "select sku, qty from orders where region = ?", "east")
	require.NoError(t, ds.Open(bandreport.NewContext()))
	assert.True(t, rows.closed)
	assert.Equal(t, bandreport.StateOpened, ds.State())

	records := ds.Records()
	require.Len(t, records, 2)
	assert.Equal(t, bandreport.MapRecord{"sku": "A1", "qty": int64(3)}, records[0])
	assert.Equal(t, bandreport.MapRecord{"sku": "B2", "qty": int64(7)}, records[1])
}

func TestDataSourceOpenWrapsQueryError(t *testing.T) {
	db := &fakeDB{query: func(string, ...interface{}) (esql.Rows, error) {
		return nil, errors.New("connection refused")
	}}

	ds := New("orders", db, "select 1")
	err := ds.Open(bandreport.NewContext())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "orders")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestDataSourceRecordsEmptyUntilOpened(t *testing.T) {
	ds := New("orders", &fakeDB{}, "select 1")
	assert.Nil(t, ds.Records())
	assert.Equal(t, bandreport.StateClosed, ds.State())

	require.NoError(t, ds.Close())
	assert.Equal(t, bandreport.StateClosed, ds.State())
}
