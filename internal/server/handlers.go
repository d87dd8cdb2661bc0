//-------------------------------------------------------------------------
//
// pgEdge Warehouse Demo
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package server exposes the curated query catalog over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pgEdge/pgedge-warehouse/internal/logging"
	"github.com/pgEdge/pgedge-warehouse/internal/queries"
)

// QueryService executes curated queries by id.
type QueryService interface {
	Run(ctx context.Context, queryID string, params map[string]string) (*queries.Result, error)
}

// Pinger reports database liveness. *pgxpool.Pool satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PoolService is the production QueryService, running catalog queries
// against a pgx pool.
type PoolService struct {
	DB queries.Querier
}

func (s *PoolService) Run(ctx context.Context, queryID string, params map[string]string) (*queries.Result, error) {
	return queries.Run(ctx, s.DB, queryID, params)
}

// QueryHandler handles the /api endpoints.
type QueryHandler struct {
	service QueryService
	pinger  Pinger
}

// NewQueryHandler creates a handler backed by the given service.
func NewQueryHandler(service QueryService, pinger Pinger) *QueryHandler {
	return &QueryHandler{service: service, pinger: pinger}
}

// RegisterRoutes registers the query API routes.
func (h *QueryHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/health", h.handleHealth)
	mux.HandleFunc("GET /api/queries", h.handleListQueries)
	mux.HandleFunc("GET /api/query/{id}", h.handleRunQuery)
}

func (h *QueryHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.pinger.Ping(r.Context()); err != nil {
		logging.Error().Err(err).Msg("Health check failed")
		writeJSONError(w, "database unreachable", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h *QueryHandler) handleListQueries(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"queries": queries.All()})
}

func (h *QueryHandler) handleRunQuery(w http.ResponseWriter, r *http.Request) {
	queryID := r.PathValue("id")

	params := make(map[string]string)
	q := r.URL.Query()
	for _, name := range queries.RecognizedParams {
		if v := q.Get(name); v != "" {
			params[name] = v
		}
	}

	result, err := h.service.Run(r.Context(), queryID, params)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrUnknownQuery):
			writeJSONError(w, "unknown query", http.StatusNotFound)
		case errors.Is(err, queries.ErrMissingParam):
			writeJSONError(w, err.Error(), http.StatusBadRequest)
		default:
			logging.Error().Err(err).Str("query_id", queryID).Msg("Query execution failed")
			writeJSONError(w, "query execution failed", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// writeJSON writes a JSON response with the given status code and data.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeJSONError writes a JSON error response as {"error": "message"}.
func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
