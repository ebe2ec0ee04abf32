// Package dbtest provides an in-process db.Querier for repository tests.
package dbtest

import (
	"context"
	"fmt"
	"reflect"

	"github.com/jackc/pgconn"
	pgx "github.com/jackc/pgx/v4"
)

type Call struct {
	SQL  string
	Args []interface{}
}

type Querier struct {
	ExecFunc     func(sql string, args ...interface{}) (pgconn.CommandTag, error)
	QueryFunc    func(sql string, args ...interface{}) (pgx.Rows, error)
	QueryRowFunc func(sql string, args ...interface{}) pgx.Row

	Calls []Call
}

func (q *Querier) Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	q.Calls = append(q.Calls, Call{SQL: sql, Args: args})
	if q.ExecFunc != nil {
		return q.ExecFunc(sql, args...)
	}
	return pgconn.CommandTag("OK 0"), nil
}

func (q *Querier) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	q.Calls = append(q.Calls, Call{SQL: sql, Args: args})
	if q.QueryFunc != nil {
		return q.QueryFunc(sql, args...)
	}
	return NewRows(), nil
}

func (q *Querier) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	q.Calls = append(q.Calls, Call{SQL: sql, Args: args})
	if q.QueryRowFunc != nil {
		return q.QueryRowFunc(sql, args...)
	}
	return Row{Err: pgx.ErrNoRows}
}

type Row struct {
	Values []interface{}
	Err    error
}

func (r Row) Scan(dest ...interface{}) error {
	if r.Err != nil {
		return r.Err
	}
	return assign(dest, r.Values)
}

type Rows struct {
	pgx.Rows

	records [][]interface{}
	pos     int
	closed  bool
	// IterErr is reported by Err once iteration ends.
	IterErr error
}

func NewRows(records ...[]interface{}) *Rows {
	return &Rows{records: records, pos: -1}
}

func (r *Rows) Next() bool {
	if r.closed {
		return false
	}
	r.pos++
	return r.pos < len(r.records)
}

func (r *Rows) Scan(dest ...interface{}) error {
	if r.pos < 0 || r.pos >= len(r.records) {
		return fmt.Errorf("scan called without a current row")
	}
	return assign(dest, r.records[r.pos])
}

func (r *Rows) Err() error {
	return r.IterErr
}

func (r *Rows) Close() {
	r.closed = true
}

func (r *Rows) Closed() bool {
	return r.closed
}

func assign(dest []interface{}, values []interface{}) error {
	if len(dest) != len(values) {
		return fmt.Errorf("scan: %d destinations for %d values", len(dest), len(values))
	}
	for i, d := range dest {
		target := reflect.ValueOf(d)
		if target.Kind() != reflect.Ptr || target.IsNil() {
			return fmt.Errorf("scan: destination %d is not a pointer", i)
		}
		elem := target.Elem()
		src := reflect.ValueOf(values[i])
		if !src.Type().ConvertibleTo(elem.Type()) {
			return fmt.Errorf("scan: cannot assign %s to %s", src.Type(), elem.Type())
		}
		elem.Set(src.Convert(elem.Type()))
	}
	return nil
}
