package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-warehouse/internal/db"
	"github.com/pgEdge/pgedge-warehouse/internal/queries"
)

var (
	queryStartDate  string
	queryEndDate    string
	queryStartMonth string
	queryEndMonth   string
)

var queryCmd = &cobra.Command{
	Use:   "query <id>",
	Short: "Run one curated query and print the result as JSON",
	Long: `Run a curated analytical query against a seeded database and print
the full result, including column names and chart hint, as JSON.

Example:
  pgedge-warehouse query aov_trend --start-date 2025-01-01 --end-date 2025-06-30`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().StringVar(&queryStartDate, "start-date", "",
		"start date (YYYY-MM-DD)")
	queryCmd.Flags().StringVar(&queryEndDate, "end-date", "",
		"end date (YYYY-MM-DD)")
	queryCmd.Flags().StringVar(&queryStartMonth, "start-month", "",
		"first cohort month (YYYY-MM-01)")
	queryCmd.Flags().StringVar(&queryEndMonth, "end-month", "",
		"last cohort month (YYYY-MM-01)")
}

func runQuery(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	params := make(map[string]string)
	for name, v := range map[string]string{
		"start_date":  queryStartDate,
		"end_date":    queryEndDate,
		"start_month": queryStartMonth,
		"end_month":   queryEndMonth,
	} {
		if v != "" {
			params[name] = v
		}
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	result, err := queries.Run(ctx, pool, args[0], params)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
