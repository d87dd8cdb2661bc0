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
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pgEdge/pgedge-warehouse/internal/datagen"
)

// Load bulk-inserts a generated dataset in dependency order. Each
// table is one transaction of chunked COPY statements, so a failure
// mid-table leaves no partially visible stage. The dataset arrives
// already reconciled; a full re-run of seeding is the only recovery
// path after a failed load.
func Load(ctx context.Context, pool *pgxpool.Pool, ds *Dataset, cfg datagen.BatchInsertConfig) error {
	if cfg.BatchSize < 1 {
		cfg = datagen.DefaultBatchConfig()
	}

	if err := copyChunked(ctx, pool, cfg, "products",
		[]string{"product_id", "sku", "name", "category", "unit_price", "active"},
		len(ds.Products), func(i int) []any {
			p := ds.Products[i]
			return []any{p.ID, p.SKU, p.Name, p.Category, p.UnitPrice, p.Active}
		}); err != nil {
		return err
	}

	if err := copyChunked(ctx, pool, cfg, "customers",
		[]string{"customer_id", "created_at", "email", "first_name", "last_name", "country", "marketing_opt_in"},
		len(ds.Customers), func(i int) []any {
			c := ds.Customers[i]
			return []any{c.ID, c.CreatedAt, c.Email, c.FirstName, c.LastName, c.Country, c.MarketingOptIn}
		}); err != nil {
		return err
	}

	if err := copyChunked(ctx, pool, cfg, "orders",
		[]string{"order_id", "customer_id", "order_ts", "status", "channel", "currency", "shipping_cost", "total"},
		len(ds.Orders), func(i int) []any {
			o := ds.Orders[i]
			return []any{o.ID, o.CustomerID, o.OrderTS, o.Status, o.Channel, o.Currency, o.ShippingCost, o.Total}
		}); err != nil {
		return err
	}

	if err := copyChunked(ctx, pool, cfg, "order_items",
		[]string{"order_item_id", "order_id", "product_id", "quantity", "unit_price", "discount"},
		len(ds.OrderItems), func(i int) []any {
			it := ds.OrderItems[i]
			return []any{it.ID, it.OrderID, it.ProductID, it.Quantity, it.UnitPrice, it.Discount}
		}); err != nil {
		return err
	}

	if err := copyChunked(ctx, pool, cfg, "payments",
		[]string{"payment_id", "order_id", "paid_ts", "method", "amount", "status"},
		len(ds.Payments), func(i int) []any {
			p := ds.Payments[i]
			return []any{p.ID, p.OrderID, p.PaidTS, p.Method, p.Amount, p.Status}
		}); err != nil {
		return err
	}

	if err := copyChunked(ctx, pool, cfg, "shipments",
		[]string{"shipment_id", "order_id", "carrier", "service_level", "shipped_ts", "delivered_ts", "status"},
		len(ds.Shipments), func(i int) []any {
			s := ds.Shipments[i]
			return []any{s.ID, s.OrderID, s.Carrier, s.ServiceLevel, s.ShippedTS, s.DeliveredTS, s.Status}
		}); err != nil {
		return err
	}

	if err := copyChunked(ctx, pool, cfg, "refunds",
		[]string{"refund_id", "order_id", "refund_ts", "amount", "reason"},
		len(ds.Refunds), func(i int) []any {
			r := ds.Refunds[i]
			return []any{r.ID, r.OrderID, r.RefundTS, r.Amount, r.Reason}
		}); err != nil {
		return err
	}

	return copyChunked(ctx, pool, cfg, "web_events",
		[]string{"event_id", "event_ts", "session_id", "customer_id", "event_type", "product_id", "channel", "utm_source", "utm_campaign"},
		len(ds.WebEvents), func(i int) []any {
			e := ds.WebEvents[i]
			return []any{e.ID, e.EventTS, e.SessionID, e.CustomerID, e.EventType, e.ProductID, e.Channel, e.UTMSource, e.UTMCampaign}
		})
}

// copyChunked loads n rows into table within a single transaction,
// issuing COPY in BatchSize chunks to bound peak memory.
func copyChunked(ctx context.Context, pool *pgxpool.Pool, cfg datagen.BatchInsertConfig, table string, columns []string, n int, row func(int) []any) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for %s: %w", table, err)
	}
	defer tx.Rollback(ctx)

	progress := datagen.NewProgressReporter(table, int64(n), cfg.ProgressInterval)

	for start := 0; start < n; start += cfg.BatchSize {
		end := start + cfg.BatchSize
		if end > n {
			end = n
		}
		rows := make([][]any, 0, end-start)
		for i := start; i < end; i++ {
			rows = append(rows, row(i))
		}
		if _, err := tx.CopyFrom(ctx, pgx.Identifier{table}, columns, pgx.CopyFromRows(rows)); err != nil {
			return fmt.Errorf("failed to copy into %s: %w", table, err)
		}
		progress.Update(int64(end - start))
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit %s: %w", table, err)
	}
	progress.Done()
	return nil
}
