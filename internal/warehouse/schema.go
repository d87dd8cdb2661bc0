//-------------------------------------------------------------------------
//
// pgEdge Warehouse Demo
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package warehouse

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Identifiers are plain BIGINTs supplied by the generator rather than
// sequences: generated rows already carry their keys, so foreign
// references never depend on insertion round-trips.
const createSchemaSQL = `
CREATE TABLE IF NOT EXISTS products (
    product_id  BIGINT PRIMARY KEY,
    sku         TEXT NOT NULL UNIQUE,
    name        TEXT NOT NULL,
    category    TEXT NOT NULL,
    unit_price  NUMERIC(10,2) NOT NULL CHECK (unit_price > 0),
    active      BOOLEAN NOT NULL DEFAULT TRUE
);

CREATE TABLE IF NOT EXISTS customers (
    customer_id      BIGINT PRIMARY KEY,
    created_at       TIMESTAMPTZ NOT NULL,
    email            TEXT NOT NULL UNIQUE,
    first_name       TEXT NOT NULL,
    last_name        TEXT NOT NULL,
    country          TEXT NOT NULL,
    marketing_opt_in BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE TABLE IF NOT EXISTS orders (
    order_id      BIGINT PRIMARY KEY,
    customer_id   BIGINT NOT NULL REFERENCES customers(customer_id),
    order_ts      TIMESTAMPTZ NOT NULL,
    status        TEXT NOT NULL,
    channel       TEXT NOT NULL,
    currency      TEXT NOT NULL,
    shipping_cost NUMERIC(10,2) NOT NULL DEFAULT 0,
    total         NUMERIC(12,2) NOT NULL
);

CREATE TABLE IF NOT EXISTS order_items (
    order_item_id BIGINT PRIMARY KEY,
    order_id      BIGINT NOT NULL REFERENCES orders(order_id),
    product_id    BIGINT NOT NULL REFERENCES products(product_id),
    quantity      INTEGER NOT NULL CHECK (quantity >= 1),
    unit_price    NUMERIC(10,2) NOT NULL,
    discount      NUMERIC(10,2) NOT NULL DEFAULT 0 CHECK (discount >= 0)
);

CREATE TABLE IF NOT EXISTS payments (
    payment_id BIGINT PRIMARY KEY,
    order_id   BIGINT NOT NULL UNIQUE REFERENCES orders(order_id),
    paid_ts    TIMESTAMPTZ NOT NULL,
    method     TEXT NOT NULL,
    amount     NUMERIC(12,2) NOT NULL,
    status     TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS shipments (
    shipment_id   BIGINT PRIMARY KEY,
    order_id      BIGINT NOT NULL UNIQUE REFERENCES orders(order_id),
    carrier       TEXT NOT NULL,
    service_level TEXT NOT NULL,
    shipped_ts    TIMESTAMPTZ NOT NULL,
    delivered_ts  TIMESTAMPTZ,
    status        TEXT NOT NULL,
    CHECK (delivered_ts IS NOT NULL OR status = 'lost')
);

CREATE TABLE IF NOT EXISTS refunds (
    refund_id BIGINT PRIMARY KEY,
    order_id  BIGINT NOT NULL UNIQUE REFERENCES orders(order_id),
    refund_ts TIMESTAMPTZ NOT NULL,
    amount    NUMERIC(12,2) NOT NULL CHECK (amount > 0),
    reason    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS web_events (
    event_id     BIGINT PRIMARY KEY,
    event_ts     TIMESTAMPTZ NOT NULL,
    session_id   UUID NOT NULL,
    customer_id  BIGINT REFERENCES customers(customer_id),
    event_type   TEXT NOT NULL,
    product_id   BIGINT REFERENCES products(product_id),
    channel      TEXT NOT NULL,
    utm_source   TEXT NOT NULL,
    utm_campaign TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders(customer_id);
CREATE INDEX IF NOT EXISTS idx_orders_ts ON orders(order_ts);
CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status);
CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id);
CREATE INDEX IF NOT EXISTS idx_order_items_product ON order_items(product_id);
CREATE INDEX IF NOT EXISTS idx_payments_ts ON payments(paid_ts);
CREATE INDEX IF NOT EXISTS idx_shipments_ts ON shipments(shipped_ts);
CREATE INDEX IF NOT EXISTS idx_refunds_ts ON refunds(refund_ts);
CREATE INDEX IF NOT EXISTS idx_web_events_ts ON web_events(event_ts);
CREATE INDEX IF NOT EXISTS idx_web_events_session ON web_events(session_id);
CREATE INDEX IF NOT EXISTS idx_web_events_type ON web_events(event_type);
`

const dropSchemaSQL = `
DROP TABLE IF EXISTS web_events CASCADE;
DROP TABLE IF EXISTS refunds CASCADE;
DROP TABLE IF EXISTS shipments CASCADE;
DROP TABLE IF EXISTS payments CASCADE;
DROP TABLE IF EXISTS order_items CASCADE;
DROP TABLE IF EXISTS orders CASCADE;
DROP TABLE IF EXISTS customers CASCADE;
DROP TABLE IF EXISTS products CASCADE;
`

// CreateSchema creates the warehouse schema.
func CreateSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, createSchemaSQL)
	return err
}

// DropSchema drops the warehouse schema.
func DropSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, dropSchemaSQL)
	return err
}
