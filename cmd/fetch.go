package cmd

import (
	"context"
	"fmt"
	"time"

	"zaur-newsdesk/internal/feed"
	"zaur-newsdesk/internal/storage"
	"zaur-newsdesk/worker"

	"github.com/spf13/cobra"
)

// fetchCmd runs a single aggregation cycle and prints the merge counts.
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Run one aggregation cycle across all sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		ctx := context.Background()
		store, err := storage.Open(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer store.Close()

		sources, err := cfg.LoadSources()
		if err != nil {
			return err
		}
		timeout, err := time.ParseDuration(cfg.Fetch.Timeout)
		if err != nil {
			return fmt.Errorf("invalid fetch timeout: %w", err)
		}

		agg := &worker.Aggregator{
			Fetcher:      feed.NewFetcher(timeout, cfg.Fetch.UserAgent),
			Store:        store,
			Sources:      sources,
			FetchTimeout: timeout,
			MaxItems:     cfg.Store.MaxItems,
		}
		res, err := agg.RunOnce(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "added=%d updated=%d total=%d\n", res.Added, res.Updated, res.Total)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}
