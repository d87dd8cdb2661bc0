//-------------------------------------------------------------------------
//
// pgEdge Warehouse Demo
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package queries holds the fixed catalog of curated analytical queries
// and the runner that binds parameters and executes them.
package queries

import (
	"embed"
	"errors"
	"fmt"
)

//go:embed sql/*.sql
var sqlFiles embed.FS

var (
	// ErrUnknownQuery is returned when a query id is not in the catalog.
	ErrUnknownQuery = errors.New("unknown query")

	// ErrMissingParam is returned when a required parameter is absent.
	ErrMissingParam = errors.New("missing required parameter")
)

// RecognizedParams lists every parameter name used across the catalog.
// Dates arrive as ISO strings and are cast inside the SQL.
var RecognizedParams = []string{"start_date", "end_date", "start_month", "end_month"}

// Chart is a rendering hint for frontends; the server passes it through
// untouched.
type Chart struct {
	Type string `json:"type"`
}

// Def describes one curated query: its identity, the ordered parameter
// names bound to $1..$N, and the statement text.
type Def struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Params      []string `json:"params"`
	Chart       Chart    `json:"chart"`

	sqlFile string
}

// SQL returns the statement text for the query.
func (d Def) SQL() (string, error) {
	b, err := sqlFiles.ReadFile("sql/" + d.sqlFile)
	if err != nil {
		return "", fmt.Errorf("failed to load SQL for %s: %w", d.ID, err)
	}
	return string(b), nil
}

var catalog = []Def{
	{
		ID:          "cohort_retention",
		Title:       "Cohort Retention (monthly)",
		Description: "Customers grouped by first purchase month; retention by months since first order.",
		Params:      []string{"start_month", "end_month"},
		Chart:       Chart{Type: "heatmap_like"},
		sqlFile:     "cohort_retention.sql",
	},
	{
		ID:          "ltv_by_cohort",
		Title:       "LTV by Cohort (12 mo)",
		Description: "Average cumulative revenue per customer for each cohort over 12 months.",
		Params:      []string{"start_month", "end_month"},
		Chart:       Chart{Type: "line"},
		sqlFile:     "ltv_by_cohort.sql",
	},
	{
		ID:          "aov_trend",
		Title:       "AOV Trend",
		Description: "Average order value by week; includes rolling 4-week average (window function).",
		Params:      []string{"start_date", "end_date"},
		Chart:       Chart{Type: "line"},
		sqlFile:     "aov_trend.sql",
	},
	{
		ID:          "conversion_funnel",
		Title:       "Conversion Funnel",
		Description: "From sessions -> product views -> add to cart -> checkout -> paid orders.",
		Params:      []string{"start_date", "end_date"},
		Chart:       Chart{Type: "funnel"},
		sqlFile:     "conversion_funnel.sql",
	},
	{
		ID:          "anomaly_daily_revenue",
		Title:       "Revenue Anomaly Detection",
		Description: "Daily revenue z-score vs 28-day trailing mean/stddev (window).",
		Params:      []string{"start_date", "end_date"},
		Chart:       Chart{Type: "line"},
		sqlFile:     "anomaly_daily_revenue.sql",
	},
	{
		ID:          "return_rate_by_category",
		Title:       "Return Rate by Category",
		Description: "Refund rate and units returned by product category.",
		Params:      []string{"start_date", "end_date"},
		Chart:       Chart{Type: "bar"},
		sqlFile:     "return_rate_by_category.sql",
	},
	{
		ID:          "shipping_sla",
		Title:       "Shipping SLA Performance",
		Description: "Shipment delivery time percentiles and SLA breach rate by carrier/service.",
		Params:      []string{"start_date", "end_date"},
		Chart:       Chart{Type: "bar"},
		sqlFile:     "shipping_sla.sql",
	},
}

var catalogByID = func() map[string]Def {
	m := make(map[string]Def, len(catalog))
	for _, d := range catalog {
		m[d.ID] = d
	}
	return m
}()

// All returns the catalog in its fixed display order.
func All() []Def {
	out := make([]Def, len(catalog))
	copy(out, catalog)
	return out
}

// Get looks up a query by id.
func Get(id string) (Def, error) {
	d, ok := catalogByID[id]
	if !ok {
		return Def{}, fmt.Errorf("%w: %s", ErrUnknownQuery, id)
	}
	return d, nil
}
