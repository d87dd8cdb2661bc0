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
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// Querier is the read side of a pgx pool. *pgxpool.Pool satisfies it.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Result is one curated query execution: metadata plus the full row set.
type Result struct {
	QueryID     string            `json:"query_id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Params      map[string]string `json:"params"`
	Columns     []string          `json:"columns"`
	Rows        [][]any           `json:"rows"`
	RowCount    int               `json:"row_count"`
	Chart       Chart             `json:"chart"`
}

// Run looks up a curated query, binds params positionally in the query's
// declared order, executes it, and collects the row set. Fails with
// ErrUnknownQuery or ErrMissingParam before touching the database.
func Run(ctx context.Context, db Querier, queryID string, params map[string]string) (*Result, error) {
	q, err := Get(queryID)
	if err != nil {
		return nil, err
	}

	args := make([]any, 0, len(q.Params))
	bound := make(map[string]string, len(q.Params))
	for _, name := range q.Params {
		v, ok := params[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingParam, name)
		}
		args = append(args, v)
		bound[name] = v
	}

	sql, err := q.SQL()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query %s: %w", queryID, err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = f.Name
	}

	out := make([][]any, 0, 64)
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("failed to read row for query %s: %w", queryID, err)
		}
		for i, v := range values {
			values[i] = normalize(v)
		}
		out = append(out, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed during query %s: %w", queryID, err)
	}

	return &Result{
		QueryID:     q.ID,
		Title:       q.Title,
		Description: q.Description,
		Params:      bound,
		Columns:     columns,
		Rows:        out,
		RowCount:    len(out),
		Chart:       q.Chart,
	}, nil
}

// normalize converts driver-specific values into plain JSON-friendly
// types. NUMERIC scans as pgtype.Numeric; everything else pgx already
// returns as a basic Go type.
func normalize(v any) any {
	switch n := v.(type) {
	case pgtype.Numeric:
		f, err := n.Float64Value()
		if err != nil || !f.Valid {
			return nil
		}
		return f.Float64
	default:
		return v
	}
}
