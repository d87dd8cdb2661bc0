package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-warehouse/internal/db"
	"github.com/pgEdge/pgedge-warehouse/internal/logging"
	"github.com/pgEdge/pgedge-warehouse/internal/server"
)

var serveListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the curated query API over HTTP",
	Long: `Serve the curated query catalog over HTTP against a previously
seeded database. The server runs until interrupted with Ctrl+C.

Endpoints:
  GET /api/health       - liveness plus database reachability
  GET /api/queries      - the query catalog with parameter lists
  GET /api/query/{id}   - run one curated query

Example:
  pgedge-warehouse serve --listen :8000 --connection "postgres://..."`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "",
		"listen address (default: :8000)")
}

func runServe(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if serveListen != "" {
		cfg.Serve.Listen = serveListen
	}

	// Validate configuration
	if err := cfg.ValidateServe(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	// Seed metadata is informational only
	if meta, err := db.GetAllMetadata(ctx, pool); err != nil || len(meta) == 0 {
		logging.Warn().Msg("Database has no seed metadata; run 'pgedge-warehouse seed' first")
	} else {
		logging.Info().
			Str("seed", meta["seed"]).
			Str("orders", meta["orders"]).
			Str("seeded_at", meta["seeded_at"]).
			Msg("Serving seeded warehouse")
	}

	return server.New(cfg.Serve.Listen, pool).Run(ctx)
}
