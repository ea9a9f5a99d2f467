package worker

import (
	"context"
	"log/slog"
	"time"

	"zaur-newsdesk/internal/discovery"
)

// DiscoveryWorker polls the discovery engine often enough to catch every
// window minute; the engine itself guarantees one discovery per window.
type DiscoveryWorker struct {
	Engine   *discovery.Engine
	Interval time.Duration
}

func (w *DiscoveryWorker) Name() string { return "discovery" }

func (w *DiscoveryWorker) Start(ctx context.Context) error {
	if w.Interval <= 0 {
		w.Interval = 30 * time.Second
	}
	t := time.NewTicker(w.Interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			d, err := w.Engine.Tick(ctx)
			if err != nil {
				slog.Error("discovery: tick failed", "error", err)
				continue
			}
			if d != nil {
				slog.Info("discovery: new item surfaced", "item", d.Item.ID, "title", d.Item.Title)
			}
		}
	}
}
