package cmd

import (
	"context"
	"fmt"
	"time"

	"zaur-newsdesk/internal/storage"

	"github.com/spf13/cobra"
)

// storePingCmd verifies the configured backend is reachable.
var storePingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Open the configured store and report its item count",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		store, err := storage.Open(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer store.Close()

		items, err := store.Query(ctx, "")
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s ok, %d items\n", cfg.Store.Backend, len(items))
		return nil
	},
}

func init() {
	storeCmd.AddCommand(storePingCmd)
}
