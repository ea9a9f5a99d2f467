// Package server exposes the panel's JSON API: the balanced feed with
// commentary, the current discovery, and the render-cycle status.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"zaur-newsdesk/internal/commentary"
	"zaur-newsdesk/internal/discovery"
	"zaur-newsdesk/internal/model"
	"zaur-newsdesk/internal/ranking"
	"zaur-newsdesk/internal/storage"
)

// Config carries the rendering knobs shared with the discovery engine.
type Config struct {
	Addr           string
	PerSourceCap   int
	DominantSource string
	Now            func() time.Time
}

type Server struct {
	store          storage.Store
	engine         *discovery.Engine
	sources        []model.NewsSource
	addr           string
	perSourceCap   int
	dominantSource string
	now            func() time.Time
}

func New(st storage.Store, engine *discovery.Engine, sources []model.NewsSource, cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Server{
		store:          st,
		engine:         engine,
		sources:        sources,
		addr:           cfg.Addr,
		perSourceCap:   cfg.PerSourceCap,
		dominantSource: cfg.DominantSource,
		now:            cfg.Now,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Route("/api", func(r chi.Router) {
		r.Get("/news", s.handleNews)
		r.Get("/discovery", s.handleDiscovery)
		r.Get("/discoveries", s.handleDiscoveries)
		r.Get("/status", s.handleStatus)
	})
	return r
}

// ListenAndServe runs the API until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.Router()}
	errs := make(chan error, 1)
	go func() {
		errs <- srv.ListenAndServe()
	}()
	slog.Info("server: listening", "addr", s.addr)
	select {
	case <-ctx.Done():
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	case err := <-errs:
		return err
	}
}

// commentedItem is a feed item with its rendered commentary attached.
type commentedItem struct {
	model.NewsItem
	Comment string `json:"comment,omitempty"`
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	items, err := s.store.Query(r.Context(), category)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "query failed")
		slog.Error("server: news query failed", "error", err)
		return
	}
	balanced := ranking.Balance(items, s.sources, s.perSourceCap, s.dominantSource)
	if len(balanced) == 0 {
		balanced = ranking.Placeholders(s.sources, s.now())
	}

	// one usedComments set per response keeps commentary unique per render
	used := map[string]struct{}{}
	out := make([]commentedItem, 0, len(balanced))
	for _, it := range balanced {
		base, err := s.store.GetComment(r.Context(), it.ID)
		if err != nil {
			slog.Error("server: load comment failed", "item", it.ID, "error", err)
			base = ""
		}
		c := commentary.Generate(it.Title, it.Category, base, used)
		if c != "" && base == "" {
			if err := s.store.SaveComment(r.Context(), it.ID, c); err != nil {
				slog.Error("server: save comment failed", "item", it.ID, "error", err)
			}
		}
		out = append(out, commentedItem{NewsItem: it, Comment: c})
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out})
}

func (s *Server) handleDiscovery(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"discovery": s.engine.Current()})
}

func (s *Server) handleDiscoveries(w http.ResponseWriter, r *http.Request) {
	ds, err := s.store.ListDiscoveries(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "query failed")
		slog.Error("server: discoveries query failed", "error", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"discoveries": ds})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": s.engine.Session().Status()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("server: encode response failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
