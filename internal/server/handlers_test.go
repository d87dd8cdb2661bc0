//-------------------------------------------------------------------------
//
// pgEdge Warehouse Demo
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pgEdge/pgedge-warehouse/internal/queries"
)

type stubService struct {
	lastID     string
	lastParams map[string]string
	result     *queries.Result
	err        error
}

func (s *stubService) Run(ctx context.Context, queryID string, params map[string]string) (*queries.Result, error) {
	s.lastID = queryID
	s.lastParams = params
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

type stubPinger struct{ err error }

func (p *stubPinger) Ping(ctx context.Context) error { return p.err }

func newTestMux(svc QueryService, pinger Pinger) *http.ServeMux {
	mux := http.NewServeMux()
	NewQueryHandler(svc, pinger).RegisterRoutes(mux)
	return mux
}

func TestHealth(t *testing.T) {
	mux := newTestMux(&stubService{}, &stubPinger{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if body["ok"] != true {
		t.Errorf("Expected ok=true, got %v", body)
	}
}

func TestHealthDatabaseDown(t *testing.T) {
	mux := newTestMux(&stubService{}, &stubPinger{err: errors.New("down")})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("Expected 503, got %d", rec.Code)
	}
}

func TestListQueries(t *testing.T) {
	mux := newTestMux(&stubService{}, &stubPinger{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/queries", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var body struct {
		Queries []queries.Def `json:"queries"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if len(body.Queries) != 7 {
		t.Errorf("Expected 7 queries, got %d", len(body.Queries))
	}
}

func TestRunQuery(t *testing.T) {
	svc := &stubService{result: &queries.Result{
		QueryID:  "aov_trend",
		Columns:  []string{"week", "aov"},
		Rows:     [][]any{{"2025-06-02", 75.42}},
		RowCount: 1,
	}}
	mux := newTestMux(svc, &stubPinger{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/api/query/aov_trend?start_date=2025-06-01&end_date=2025-06-30&bogus=1", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.lastID != "aov_trend" {
		t.Errorf("Expected query id aov_trend, got %s", svc.lastID)
	}
	if len(svc.lastParams) != 2 || svc.lastParams["start_date"] != "2025-06-01" {
		t.Errorf("Expected recognized params only, got %v", svc.lastParams)
	}

	var res queries.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if res.RowCount != 1 || res.QueryID != "aov_trend" {
		t.Errorf("Unexpected result: %+v", res)
	}
}

func TestRunQueryErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"unknown query", fmt.Errorf("%w: nope", queries.ErrUnknownQuery), http.StatusNotFound},
		{"missing param", fmt.Errorf("%w: start_date", queries.ErrMissingParam), http.StatusBadRequest},
		{"execution failure", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := newTestMux(&stubService{err: tt.err}, &stubPinger{})

			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/query/whatever", nil))

			if rec.Code != tt.expected {
				t.Fatalf("Expected %d, got %d", tt.expected, rec.Code)
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("Invalid JSON: %v", err)
			}
			if body["error"] == "" {
				t.Error("Expected error message in body")
			}
		})
	}
}
