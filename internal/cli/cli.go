//-------------------------------------------------------------------------
//
// pgEdge Warehouse Demo
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package cli implements the command-line interface for pgedge-warehouse.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-warehouse/internal/config"
	"github.com/pgEdge/pgedge-warehouse/internal/logging"
	"github.com/pgEdge/pgedge-warehouse/internal/queries"
	"github.com/pgEdge/pgedge-warehouse/pkg/version"
)

var (
	// Global flags
	cfgFile    string
	connection string
	logLevel   string

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "pgedge-warehouse",
		Short: "E-commerce warehouse demo: synthetic data plus curated analytics",
		Long: `pgedge-warehouse seeds a PostgreSQL database with a synthetic but
internally consistent e-commerce dataset (orders, payments, shipments,
refunds, web events) and exposes a fixed catalog of curated analytical
queries over HTTP and the command line.

The generated data is deterministic for a given seed: orders obey causal
timestamp ordering, statuses reconcile with their payment/shipment/refund
rows, and web sessions follow a strict conversion funnel, so the curated
queries always have something meaningful to say.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./pgedge-warehouse.yaml)")
	rootCmd.PersistentFlags().StringVar(&connection, "connection", "",
		"PostgreSQL connection string")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(queriesCmd)
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	if connection != "" {
		cfg.Connection = connection
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	// Reinitialize logger with config
	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}

var queriesCmd = &cobra.Command{
	Use:   "queries",
	Short: "List the curated query catalog",
	Long: `List every curated analytical query with its required parameters.
Run one with 'pgedge-warehouse query <id>'.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println("Curated queries:")
		cmd.Println()
		for _, q := range queries.All() {
			params := "none"
			if len(q.Params) > 0 {
				params = strings.Join(q.Params, ", ")
			}
			cmd.Println(fmt.Sprintf("  %-24s %s", q.ID, q.Title))
			cmd.Println(fmt.Sprintf("  %-24s params: %s", "", params))
			cmd.Println()
		}
	},
}
