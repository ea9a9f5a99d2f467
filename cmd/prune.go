package cmd

import (
	"context"
	"fmt"
	"time"

	"zaur-newsdesk/internal/storage"

	"github.com/spf13/cobra"
)

// pruneCmd trims the item pool to the configured size and drops old
// discovery records.
var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Trim stored items and expire old discovery records",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		ctx := context.Background()
		store, err := storage.Open(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer store.Close()

		items, err := store.Prune(ctx, cfg.Store.MaxItems)
		if err != nil {
			return err
		}
		discoveries := 0
		if cfg.Store.DiscoveryMaxAge != "" {
			maxAge, err := time.ParseDuration(cfg.Store.DiscoveryMaxAge)
			if err != nil {
				return fmt.Errorf("invalid discovery_max_age: %w", err)
			}
			discoveries, err = store.PruneDiscoveries(ctx, maxAge)
			if err != nil {
				return err
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "pruned items=%d discoveries=%d\n", items, discoveries)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pruneCmd)
}
