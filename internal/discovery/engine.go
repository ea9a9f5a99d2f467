package discovery

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"zaur-newsdesk/internal/commentary"
	"zaur-newsdesk/internal/detrand"
	"zaur-newsdesk/internal/model"
	"zaur-newsdesk/internal/ranking"
	"zaur-newsdesk/internal/storage"
)

// Config tunes an Engine. Now is injected so window math is testable.
type Config struct {
	DisplayFor     time.Duration // how long a discovery stays "showing"
	PerSourceCap   int
	DominantSource string
	Now            func() time.Time
}

// Engine drives the scheduled discovery cycle against the store and holds the
// currently displayed discovery.
type Engine struct {
	store          storage.Store
	sources        []model.NewsSource
	displayFor     time.Duration
	perSourceCap   int
	dominantSource string
	now            func() time.Time
	session        *Session

	mu       sync.Mutex
	current  *model.Discovery
	lastSeed int64
}

func NewEngine(st storage.Store, sources []model.NewsSource, cfg Config) *Engine {
	if cfg.DisplayFor <= 0 {
		cfg.DisplayFor = 10 * time.Minute
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Engine{
		store:          st,
		sources:        sources,
		displayFor:     cfg.DisplayFor,
		perSourceCap:   cfg.PerSourceCap,
		dominantSource: cfg.DominantSource,
		now:            cfg.Now,
		session:        NewSession(),
		lastSeed:       -1,
	}
}

// Session exposes the render-cycle state machine for the status endpoint.
func (e *Engine) Session() *Session {
	return e.session
}

// Current returns the discovery being displayed, or nil once its display
// window has lapsed.
func (e *Engine) Current() *model.Discovery {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.current == nil {
		return nil
	}
	if e.now().After(e.current.Timestamp.Add(e.displayFor)) {
		e.current = nil
		return nil
	}
	d := *e.current
	return &d
}

// Tick evaluates the discovery schedule at the current time and surfaces a
// new item when a window fires. Returns nil when nothing fired.
func (e *Engine) Tick(ctx context.Context) (*model.Discovery, error) {
	now := e.now()
	showing := e.Current() != nil

	available, discovered, undiscovered, err := e.load(ctx)
	if err != nil {
		return nil, err
	}

	ok, seed := Check(now, showing, undiscovered)
	if !ok {
		return nil, nil
	}
	e.mu.Lock()
	fired := e.lastSeed == seed
	e.mu.Unlock()
	if fired {
		// the worker polls faster than the minute clock; one discovery per window
		return nil, nil
	}
	return e.discover(ctx, now, seed, available, discovered)
}

// Force surfaces a discovery immediately, outside the schedule. Used by the
// discover command.
func (e *Engine) Force(ctx context.Context) (*model.Discovery, error) {
	now := e.now()
	available, discovered, _, err := e.load(ctx)
	if err != nil {
		return nil, err
	}
	return e.discover(ctx, now, detrand.WindowSeed(now), available, discovered)
}

func (e *Engine) load(ctx context.Context) ([]model.NewsItem, map[string]bool, int, error) {
	available, err := e.store.Query(ctx, "")
	if err != nil {
		return nil, nil, 0, fmt.Errorf("load items: %w", err)
	}
	records, err := e.store.ListDiscoveries(ctx)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("load discoveries: %w", err)
	}
	discovered := make(map[string]bool, len(records))
	for _, r := range records {
		discovered[r.ItemID] = true
	}
	undiscovered := 0
	for _, it := range available {
		if !discovered[it.ID] {
			undiscovered++
		}
	}
	return available, discovered, undiscovered, nil
}

func (e *Engine) discover(ctx context.Context, now time.Time, seed int64, available []model.NewsItem, discovered map[string]bool) (*model.Discovery, error) {
	e.session.BeginRefresh()

	current := ranking.Balance(available, e.sources, e.perSourceCap, e.dominantSource)
	pick, ok := PickNew(available, current, discovered, seed)
	if !ok {
		e.session.Done()
		return nil, nil
	}

	if err := e.store.AddDiscovery(ctx, pick.Item.ID); err != nil {
		e.session.Fail()
		return nil, fmt.Errorf("persist discovery: %w", err)
	}

	base, err := e.store.GetComment(ctx, pick.Item.ID)
	if err != nil {
		slog.Error("discovery: load comment failed", "item", pick.Item.ID, "error", err)
		base = ""
	}
	comment := commentary.Generate(pick.Item.Title, pick.Item.Category, base, map[string]struct{}{})
	if comment != "" && base == "" {
		if err := e.store.SaveComment(ctx, pick.Item.ID, comment); err != nil {
			slog.Error("discovery: save comment failed", "item", pick.Item.ID, "error", err)
		}
	}

	d := &model.Discovery{
		Item:             pick.Item,
		DiscoveryComment: pick.DiscoveryComment,
		Comment:          comment,
		Timestamp:        now,
	}
	e.mu.Lock()
	e.current = d
	e.lastSeed = seed
	e.mu.Unlock()
	e.session.Done()

	slog.Info("discovery: surfaced item",
		"item", d.Item.ID, "title", d.Item.Title, "seed", seed, "synthesized", pick.Synthesized)
	out := *d
	return &out, nil
}
