package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"zaur-newsdesk/internal/ai"
	"zaur-newsdesk/internal/discovery"
	"zaur-newsdesk/internal/feed"
	"zaur-newsdesk/internal/server"
	"zaur-newsdesk/internal/storage"
	"zaur-newsdesk/worker"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the aggregation workers and the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		store, err := storage.Open(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer store.Close()

		sources, err := cfg.LoadSources()
		if err != nil {
			return err
		}

		interval, err := time.ParseDuration(cfg.Fetch.Interval)
		if err != nil {
			return fmt.Errorf("invalid fetch interval: %w", err)
		}
		timeout, err := time.ParseDuration(cfg.Fetch.Timeout)
		if err != nil {
			return fmt.Errorf("invalid fetch timeout: %w", err)
		}
		display, err := time.ParseDuration(cfg.Feed.DiscoveryDisplay)
		if err != nil {
			return fmt.Errorf("invalid discovery display duration: %w", err)
		}

		var summarizer ai.Summarizer
		if cfg.OpenAI.APIKey != "" {
			summarizer = ai.NewOpenAI(ai.Config{APIKey: cfg.OpenAI.APIKey, Model: cfg.OpenAI.Model, BaseURL: cfg.OpenAI.BaseURL})
		}

		engine := discovery.NewEngine(store, sources, discovery.Config{
			DisplayFor:     display,
			PerSourceCap:   cfg.Feed.PerSourceCap,
			DominantSource: cfg.Feed.DominantSource,
		})

		aggregator := &worker.Aggregator{
			Fetcher:      feed.NewFetcher(timeout, cfg.Fetch.UserAgent),
			Store:        store,
			Sources:      sources,
			Interval:     interval,
			FetchTimeout: timeout,
			MaxItems:     cfg.Store.MaxItems,
			Summarizer:   summarizer,
		}
		discoverer := &worker.DiscoveryWorker{Engine: engine}

		srv := server.New(store, engine, sources, server.Config{
			Addr:           cfg.Server.Addr,
			PerSourceCap:   cfg.Feed.PerSourceCap,
			DominantSource: cfg.Feed.DominantSource,
		})
		go func() {
			if err := srv.ListenAndServe(ctx); err != nil {
				log.Printf("http server stopped: %v", err)
				cancel()
			}
		}()

		// Signal handling for systemd
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			s := <-sigc
			log.Printf("received signal: %s, shutting down", s)
			cancel()
		}()

		mgr := worker.NewManager(aggregator, discoverer)
		return mgr.Start(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
