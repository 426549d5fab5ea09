package main

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/app"
	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/budget"
	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/config"
	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/estimate"
	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/history"
	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/logging"
	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/settings"
)

// server drives one process-wide session. Core operations are not safe for
// concurrent use, so every request runs under mu.
type server struct {
	mu        sync.Mutex
	log       *logging.Logger
	estimator *estimate.Estimator
	history   *history.Store
	settings  *settings.Store
	budget    *budget.Budget
}

func newServer(a *app.App) *server {
	return &server{
		log:       a.Log,
		estimator: a.Estimator,
		history:   a.History,
		settings:  a.Settings,
		budget:    budget.New(),
	}
}

func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.LogMode)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	a, err := app.Open(cfg, logger)
	if err != nil {
		logger.Fatal("failed to start", "error", err)
	}
	defer a.Close()

	srv := newServer(a)
	addr := cfg.Addr()
	logger.Info("listening", "addr", addr, "env", cfg.Env, "db", cfg.DBPath)
	if err := http.ListenAndServe(addr, srv.routes()); err != nil {
		logger.Error("server stopped", "error", err)
	}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	r.Use(s.serialize)

	r.Route("/api", func(r chi.Router) {
		r.Get("/categories", s.handleCategories)
		r.Post("/estimates/{category}", s.handleEstimatePreview)

		r.Get("/budget", s.handleBudget)
		r.Put("/budget/name", s.handleBudgetRename)
		r.Post("/budget/items/{category}", s.handleBudgetAddItem)
		r.Delete("/budget/items/{id}", s.handleBudgetRemoveItem)
		r.Post("/budget/clear", s.handleBudgetClear)
		r.Post("/budget/save", s.handleBudgetSave)

		r.Get("/history", s.handleHistoryList)
		r.Delete("/history", s.handleHistoryDeleteAll)
		r.Get("/history/stats", s.handleHistoryStats)
		r.Post("/history/{id}/load", s.handleHistoryLoad)
		r.Post("/history/{id}/duplicate", s.handleHistoryDuplicate)
		r.Put("/history/{id}/name", s.handleHistoryRename)
		r.Delete("/history/{id}", s.handleHistoryDelete)

		r.Get("/settings", s.handleSettings)
		r.Patch("/settings", s.handleSettingsUpdate)
		r.Delete("/settings", s.handleSettingsReset)
	})
	return r
}

func (s *server) serialize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
