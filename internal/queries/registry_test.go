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
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestCatalogContents(t *testing.T) {
	all := All()
	if len(all) != 7 {
		t.Fatalf("Expected 7 curated queries, got %d", len(all))
	}

	expected := []string{
		"cohort_retention",
		"ltv_by_cohort",
		"aov_trend",
		"conversion_funnel",
		"anomaly_daily_revenue",
		"return_rate_by_category",
		"shipping_sla",
	}
	for i, id := range expected {
		if all[i].ID != id {
			t.Errorf("Expected query %d to be %s, got %s", i, id, all[i].ID)
		}
	}
}

func TestCatalogDefinitions(t *testing.T) {
	recognized := make(map[string]bool)
	for _, p := range RecognizedParams {
		recognized[p] = true
	}

	for _, q := range All() {
		t.Run(q.ID, func(t *testing.T) {
			if q.Title == "" || q.Description == "" {
				t.Error("Missing title or description")
			}
			if q.Chart.Type == "" {
				t.Error("Missing chart hint")
			}
			for _, p := range q.Params {
				if !recognized[p] {
					t.Errorf("Parameter %q is not a recognized name", p)
				}
			}

			sql, err := q.SQL()
			if err != nil {
				t.Fatalf("SQL failed: %v", err)
			}
			for i := range q.Params {
				placeholder := fmt.Sprintf("$%d", i+1)
				if !strings.Contains(sql, placeholder) {
					t.Errorf("Statement does not reference %s", placeholder)
				}
			}
		})
	}
}

func TestGet(t *testing.T) {
	q, err := Get("aov_trend")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if q.ID != "aov_trend" {
		t.Errorf("Expected aov_trend, got %s", q.ID)
	}

	_, err = Get("nope")
	if !errors.Is(err, ErrUnknownQuery) {
		t.Errorf("Expected ErrUnknownQuery, got: %v", err)
	}
}
