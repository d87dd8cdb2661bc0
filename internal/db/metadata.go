//-------------------------------------------------------------------------
//
// pgEdge Warehouse Demo
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package db

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pgEdge/pgedge-warehouse/internal/logging"
	"github.com/pgEdge/pgedge-warehouse/pkg/version"
)

const metadataTable = "warehouse_metadata"

const createMetadataTableSQL = `
CREATE TABLE IF NOT EXISTS warehouse_metadata (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
)`

// SeedInfo describes how the warehouse was seeded.
type SeedInfo struct {
	Seed      int64
	Products  int
	Customers int
	Orders    int
	Sessions  int
}

// SaveSeedInfo records the seed parameters so later invocations can
// report what the database contains.
func SaveSeedInfo(ctx context.Context, pool *pgxpool.Pool, info SeedInfo) error {
	_, err := pool.Exec(ctx, createMetadataTableSQL)
	if err != nil {
		return fmt.Errorf("failed to create metadata table: %w", err)
	}

	metadata := [][2]string{
		{"seed", strconv.FormatInt(info.Seed, 10)},
		{"products", strconv.Itoa(info.Products)},
		{"customers", strconv.Itoa(info.Customers)},
		{"orders", strconv.Itoa(info.Orders)},
		{"sessions", strconv.Itoa(info.Sessions)},
		{"version", version.Short()},
		{"seeded_at", time.Now().UTC().Format(time.RFC3339)},
	}

	for _, kv := range metadata {
		_, err := pool.Exec(ctx, `
            INSERT INTO warehouse_metadata (key, value) VALUES ($1, $2)
            ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
        `, kv[0], kv[1])
		if err != nil {
			return fmt.Errorf("failed to save metadata %s: %w", kv[0], err)
		}
	}

	logging.Debug().
		Int64("seed", info.Seed).
		Int("orders", info.Orders).
		Msg("Saved seed metadata")

	return nil
}

// GetMetadataValue retrieves a single metadata value by key.
func GetMetadataValue(ctx context.Context, pool *pgxpool.Pool, key string) (string, error) {
	var value string
	err := pool.QueryRow(ctx, `
        SELECT value FROM warehouse_metadata WHERE key = $1
    `, key).Scan(&value)
	if err != nil {
		return "", err
	}
	return value, nil
}

// GetAllMetadata retrieves all metadata as a map.
func GetAllMetadata(ctx context.Context, pool *pgxpool.Pool) (map[string]string, error) {
	rows, err := pool.Query(ctx, `SELECT key, value FROM warehouse_metadata`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	metadata := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		metadata[key] = value
	}

	return metadata, rows.Err()
}

// DropMetadata drops the metadata table.
func DropMetadata(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", metadataTable))
	return err
}
