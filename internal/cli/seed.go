package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-warehouse/internal/datagen"
	"github.com/pgEdge/pgedge-warehouse/internal/db"
	"github.com/pgEdge/pgedge-warehouse/internal/logging"
	"github.com/pgEdge/pgedge-warehouse/internal/warehouse"
)

var (
	seedSeed         int64
	seedProducts     int
	seedCustomers    int
	seedOrders       int
	seedSessions     int
	seedLookbackDays int
	seedDropExisting bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the warehouse schema and populate it with synthetic data",
	Long: `Create the e-commerce warehouse schema and populate it with a
deterministic synthetic dataset. The same seed and population always
produce the same data.

Example:
  pgedge-warehouse seed --orders 22000 --connection "postgres://..."`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().Int64Var(&seedSeed, "seed", 0,
		"random seed (default: 7)")
	seedCmd.Flags().IntVar(&seedProducts, "products", 0,
		"number of products (default: 250)")
	seedCmd.Flags().IntVar(&seedCustomers, "customers", 0,
		"number of customers (default: 3500)")
	seedCmd.Flags().IntVar(&seedOrders, "orders", 0,
		"number of orders (default: 22000)")
	seedCmd.Flags().IntVar(&seedSessions, "sessions", 0,
		"number of web sessions (default: 90000)")
	seedCmd.Flags().IntVar(&seedLookbackDays, "lookback-days", 0,
		"size of the historical window in days (default: 365)")
	seedCmd.Flags().BoolVar(&seedDropExisting, "drop-existing", false,
		"drop the existing schema before seeding")
}

func runSeed(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed.Seed = seedSeed
	}
	if flags.Changed("products") {
		cfg.Seed.Products = seedProducts
	}
	if flags.Changed("customers") {
		cfg.Seed.Customers = seedCustomers
	}
	if flags.Changed("orders") {
		cfg.Seed.Orders = seedOrders
	}
	if flags.Changed("sessions") {
		cfg.Seed.Sessions = seedSessions
	}
	if flags.Changed("lookback-days") {
		cfg.Seed.LookbackDays = seedLookbackDays
	}
	if seedDropExisting {
		cfg.Seed.DropExisting = true
	}

	// Validate configuration
	if err := cfg.ValidateSeed(); err != nil {
		return err
	}

	logging.Info().
		Int64("seed", cfg.Seed.Seed).
		Int("products", cfg.Seed.Products).
		Int("customers", cfg.Seed.Customers).
		Int("orders", cfg.Seed.Orders).
		Int("sessions", cfg.Seed.Sessions).
		Msg("Seeding warehouse")

	// Connect to database
	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	// Refuse to clobber an existing dataset unless asked
	existingSeed, err := db.GetMetadataValue(ctx, pool, "seed")
	if err == nil && existingSeed != "" && !cfg.Seed.DropExisting {
		return fmt.Errorf(
			"database was already seeded (seed %s); use --drop-existing to reseed",
			existingSeed)
	}

	// Drop existing schema if requested
	if cfg.Seed.DropExisting {
		logging.Info().Msg("Dropping existing schema")
		if err := warehouse.DropSchema(ctx, pool); err != nil {
			return fmt.Errorf("failed to drop schema: %w", err)
		}
		if err := db.DropMetadata(ctx, pool); err != nil {
			logging.Debug().Err(err).Msg("No metadata table to drop")
		}
	}

	// Create schema
	logging.Info().Msg("Creating schema")
	if err := warehouse.CreateSchema(ctx, pool); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	// Generate the dataset in memory, then bulk load it
	logging.Info().Msg("Generating dataset")
	ds, err := warehouse.Generate(warehouse.Config{
		Seed: cfg.Seed.Seed,
		Population: warehouse.Population{
			Products:  cfg.Seed.Products,
			Customers: cfg.Seed.Customers,
			Orders:    cfg.Seed.Orders,
			Sessions:  cfg.Seed.Sessions,
		},
		LookbackDays: cfg.Seed.LookbackDays,
	})
	if err != nil {
		return fmt.Errorf("failed to generate dataset: %w", err)
	}

	logging.Info().
		Int("orders", len(ds.Orders)).
		Int("order_items", len(ds.OrderItems)).
		Int("web_events", len(ds.WebEvents)).
		Msg("Loading dataset")

	if err := warehouse.Load(ctx, pool, ds, datagen.DefaultBatchConfig()); err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	// Save metadata
	if err := db.SaveSeedInfo(ctx, pool, db.SeedInfo{
		Seed:      cfg.Seed.Seed,
		Products:  cfg.Seed.Products,
		Customers: cfg.Seed.Customers,
		Orders:    cfg.Seed.Orders,
		Sessions:  cfg.Seed.Sessions,
	}); err != nil {
		return fmt.Errorf("failed to save metadata: %w", err)
	}

	logging.Info().Msg("Warehouse seeding complete")
	return nil
}
