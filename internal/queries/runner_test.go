//-------------------------------------------------------------------------
//
// pgEdge Warehouse Demo
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// The PostgreSQL License
//
//-------------------------------------------------------------------------

package queries

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// fakeRows replays a fixed result set through the pgx.Rows interface.
type fakeRows struct {
	fields []pgconn.FieldDescription
	rows   [][]any
	pos    int
}

func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return nil }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return r.fields }
func (r *fakeRows) Next() bool                                   { r.pos++; return r.pos <= len(r.rows) }
func (r *fakeRows) Scan(dest ...any) error                       { return nil }
func (r *fakeRows) Values() ([]any, error)                       { return r.rows[r.pos-1], nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

// fakeQuerier records the statement and arguments it receives.
type fakeQuerier struct {
	sql  string
	args []any
	rows *fakeRows
	err  error
}

func (q *fakeQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.sql = sql
	q.args = args
	if q.err != nil {
		return nil, q.err
	}
	return q.rows, nil
}

func numeric(v int64) pgtype.Numeric {
	return pgtype.Numeric{Int: big.NewInt(v), Exp: -2, Valid: true}
}

func TestRunBindsParamsInOrder(t *testing.T) {
	db := &fakeQuerier{rows: &fakeRows{
		fields: []pgconn.FieldDescription{{Name: "week"}, {Name: "orders"}, {Name: "aov"}},
		rows: [][]any{
			{"2025-06-02", int64(120), numeric(7542)},
			{"2025-06-09", int64(131), numeric(8001)},
		},
	}}

	res, err := Run(context.Background(), db, "aov_trend",
		map[string]string{"end_date": "2025-06-30", "start_date": "2025-06-01", "extra": "ignored"})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(db.args) != 2 || db.args[0] != "2025-06-01" || db.args[1] != "2025-06-30" {
		t.Errorf("Expected positional args [start, end], got %v", db.args)
	}
	if res.QueryID != "aov_trend" || res.RowCount != 2 {
		t.Errorf("Unexpected result metadata: %s / %d rows", res.QueryID, res.RowCount)
	}
	if len(res.Columns) != 3 || res.Columns[2] != "aov" {
		t.Errorf("Unexpected columns: %v", res.Columns)
	}
	if len(res.Params) != 2 {
		t.Errorf("Expected only declared params echoed back, got %v", res.Params)
	}
	if v, ok := res.Rows[0][2].(float64); !ok || v != 75.42 {
		t.Errorf("Expected NUMERIC normalized to 75.42, got %v", res.Rows[0][2])
	}
}

func TestRunUnknownQuery(t *testing.T) {
	_, err := Run(context.Background(), &fakeQuerier{}, "nope", nil)
	if !errors.Is(err, ErrUnknownQuery) {
		t.Errorf("Expected ErrUnknownQuery, got: %v", err)
	}
}

func TestRunMissingParam(t *testing.T) {
	_, err := Run(context.Background(), &fakeQuerier{}, "aov_trend",
		map[string]string{"start_date": "2025-06-01"})
	if !errors.Is(err, ErrMissingParam) {
		t.Errorf("Expected ErrMissingParam, got: %v", err)
	}
}

func TestRunQueryError(t *testing.T) {
	db := &fakeQuerier{err: errors.New("connection reset")}
	_, err := Run(context.Background(), db, "conversion_funnel",
		map[string]string{"start_date": "2025-06-01", "end_date": "2025-06-30"})
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
}
