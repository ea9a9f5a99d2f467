package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"zaur-newsdesk/internal/discovery"
	"zaur-newsdesk/internal/storage"

	"github.com/spf13/cobra"
)

// discoverCmd forces a discovery outside the schedule and prints it.
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Force a discovery from the stored pool and print it",
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
		engine := discovery.NewEngine(store, sources, discovery.Config{
			PerSourceCap:   cfg.Feed.PerSourceCap,
			DominantSource: cfg.Feed.DominantSource,
		})

		d, err := engine.Force(ctx)
		if err != nil {
			return err
		}
		if d == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "no undiscovered items available")
			return nil
		}
		out, err := json.MarshalIndent(d, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(discoverCmd)
}
