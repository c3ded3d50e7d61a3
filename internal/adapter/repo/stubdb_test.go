package repo

import (
	"context"
	"fmt"
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"wfm/internal/infra"
)

type call struct {
	query string
	args  []any
}

// stubDB answers queries from the handlers set in each test. InTx runs fn
// against the same stub.
type stubDB struct {
	execs   []call
	queries []call
	txs     int

	exec     func(query string, args []any) (pgconn.CommandTag, error)
	queryRow func(query string, args []any) pgx.Row
	query    func(query string, args []any) (pgx.Rows, error)
}

func (s *stubDB) Exec(_ context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	s.execs = append(s.execs, call{query, args})
	if s.exec != nil {
		return s.exec(query, args)
	}
	return pgconn.NewCommandTag("UPDATE 1"), nil
}

func (s *stubDB) QueryRow(_ context.Context, query string, args ...any) pgx.Row {
	s.queries = append(s.queries, call{query, args})
	if s.queryRow != nil {
		return s.queryRow(query, args)
	}
	return simpleRow{}
}

func (s *stubDB) Query(_ context.Context, query string, args ...any) (pgx.Rows, error) {
	s.queries = append(s.queries, call{query, args})
	if s.query != nil {
		return s.query(query, args)
	}
	return &stubRows{}, nil
}

func (s *stubDB) InTx(_ context.Context, fn func(tx infra.SQLExecutor) error) error {
	s.txs++
	return fn(s)
}

// execsOf returns the args of every Exec issued with query.
func (s *stubDB) execsOf(query string) [][]any {
	var out [][]any
	for _, c := range s.execs {
		if c.query == query {
			out = append(out, c.args)
		}
	}
	return out
}

var _ infra.TxRunner = (*stubDB)(nil)

type simpleRow struct {
	scan func(dest ...any) error
}

func (r simpleRow) Scan(dest ...any) error {
	if r.scan == nil {
		return pgx.ErrNoRows
	}
	return r.scan(dest...)
}

// rowOf returns a row whose Scan copies values into the destinations.
func rowOf(values ...any) pgx.Row {
	return simpleRow{scan: func(dest ...any) error { return assign(dest, values) }}
}

func assign(dest []any, values []any) error {
	if len(dest) != len(values) {
		return fmt.Errorf("scan: %d destinations for %d values", len(dest), len(values))
	}
	for i, d := range dest {
		target := reflect.ValueOf(d).Elem()
		target.Set(reflect.ValueOf(values[i]).Convert(target.Type()))
	}
	return nil
}

type testRowsBase struct{}

func (testRowsBase) CommandTag() pgconn.CommandTag { return pgconn.CommandTag{} }

func (testRowsBase) Conn() *pgx.Conn { return nil }

func (testRowsBase) FieldDescriptions() []pgconn.FieldDescription { return nil }

func (testRowsBase) Values() ([]any, error) {
	return nil, fmt.Errorf("values not supported in test rows")
}

func (testRowsBase) RawValues() [][]byte { return nil }

type stubRows struct {
	testRowsBase
	data [][]any
	i    int
}

func rowsOf(data ...[]any) *stubRows {
	return &stubRows{data: data}
}

func (r *stubRows) Next() bool {
	if r.i >= len(r.data) {
		return false
	}
	r.i++
	return true
}

func (r *stubRows) Scan(dest ...any) error { return assign(dest, r.data[r.i-1]) }

func (r *stubRows) Close() {}

func (r *stubRows) Err() error { return nil }
