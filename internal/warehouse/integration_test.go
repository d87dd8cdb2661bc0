//-------------------------------------------------------------------------
//
// pgEdge Warehouse Demo
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

//go:build integration
// +build integration

// Integration tests for the warehouse seed and query pipeline.
// Run with: go test -tags=integration ./internal/warehouse/...
// Requires PostgreSQL to be available.
// Set PGWAREHOUSE_TEST_CONN environment variable to override connection string.

package warehouse_test

import (
	"context"
	"testing"
	"time"

	"github.com/pgEdge/pgedge-warehouse/internal/datagen"
	"github.com/pgEdge/pgedge-warehouse/internal/queries"
	"github.com/pgEdge/pgedge-warehouse/internal/testutil"
	"github.com/pgEdge/pgedge-warehouse/internal/warehouse"
)

func TestSeedAndQueryIntegration(t *testing.T) {
	baseConnStr := testutil.SkipIfNoPostgres(t)

	testConnStr := testutil.CreateTestDB(t, baseConnStr, "seed")
	dbName := testutil.GetDBNameFromConnStr(testConnStr)
	cleanup := testutil.NewTestCleanup(t, baseConnStr, dbName)
	defer cleanup.Cleanup()

	pool := testutil.ConnectTestDB(t, testConnStr)
	cleanup.SetPool(pool)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := warehouse.CreateSchema(ctx, pool); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	end := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	pop := warehouse.Population{Products: 40, Customers: 200, Orders: 1500, Sessions: 2000}
	ds, err := warehouse.Generate(warehouse.Config{Seed: 7, Population: pop, End: end})
	if err != nil {
		t.Fatalf("Failed to generate dataset: %v", err)
	}

	if err := warehouse.Load(ctx, pool, ds, datagen.DefaultBatchConfig()); err != nil {
		t.Fatalf("Failed to load dataset: %v", err)
	}

	// Every table must hold exactly what the dataset holds.
	counts := []struct {
		table    string
		expected int
	}{
		{"products", len(ds.Products)},
		{"customers", len(ds.Customers)},
		{"orders", len(ds.Orders)},
		{"order_items", len(ds.OrderItems)},
		{"payments", len(ds.Payments)},
		{"shipments", len(ds.Shipments)},
		{"refunds", len(ds.Refunds)},
		{"web_events", len(ds.WebEvents)},
	}
	for _, c := range counts {
		var n int
		if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM "+c.table).Scan(&n); err != nil {
			t.Fatalf("Failed to count %s: %v", c.table, err)
		}
		if n != c.expected {
			t.Errorf("Table %s has %d rows, expected %d", c.table, n, c.expected)
		}
	}

	// Every curated query must execute against the seeded schema.
	params := map[string]string{
		"start_date":  "2025-01-01",
		"end_date":    "2026-01-01",
		"start_month": "2025-01-01",
		"end_month":   "2026-01-01",
	}
	for _, q := range queries.All() {
		t.Run(q.ID, func(t *testing.T) {
			res, err := queries.Run(ctx, pool, q.ID, params)
			if err != nil {
				t.Fatalf("Query failed: %v", err)
			}
			if len(res.Columns) == 0 {
				t.Error("Expected column metadata")
			}
			if res.RowCount == 0 {
				t.Error("Expected at least one row")
			}
		})
	}

	// Teardown must succeed on a populated database.
	if err := warehouse.DropSchema(ctx, pool); err != nil {
		t.Fatalf("Failed to drop schema: %v", err)
	}
}
