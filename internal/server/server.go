// Package server exposes the news API: the country list and, per country,
// the normalized feed items.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"globenews/internal/cache"
	"globenews/internal/config"
	"globenews/internal/feed"
	"globenews/internal/fetch"
	"globenews/internal/metrics"
	"globenews/internal/news"
)

// Server wires the feed fetcher, the normalization pipeline and the result
// cache behind HTTP handlers.
type Server struct {
	countries []config.Country
	fetcher   *fetch.Client
	pipeline  *news.Pipeline
	cache     *cache.Cache
}

func New(countries []config.Country, fetcher *fetch.Client, pipeline *news.Pipeline, c *cache.Cache) *Server {
	return &Server{
		countries: countries,
		fetcher:   fetcher,
		pipeline:  pipeline,
		cache:     c,
	}
}

// Routes builds the handler tree.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/countries", s.handleCountries)
	mux.HandleFunc("GET /api/news/{country}", s.handleNews)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /metrics", s.handleMetrics)
	return s.withRequestID(mux)
}

func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)

		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Debug("request handled",
			"id", id, "method", r.Method, "path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds())
	})
}

func (s *Server) handleCountries(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, config.Names(s.countries))
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	country := r.PathValue("country")

	feedURL, ok := config.FeedURL(s.countries, country)
	if !ok {
		http.Error(w, "country not supported", http.StatusNotFound)
		return
	}

	if items, ok := s.cache.Get(country); ok {
		metrics.Global.IncrementCacheHits()
		writeJSON(w, http.StatusOK, items)
		return
	}

	items, err := s.loadNews(r.Context(), country, feedURL)
	if err != nil {
		metrics.Global.SetError(err.Error())

		var parseErr *feed.ParseError
		if errors.As(err, &parseErr) {
			slog.Error("feed unparsable", "country", country, "err", err)
			http.Error(w, "feed could not be parsed", http.StatusUnprocessableEntity)
			return
		}
		slog.Error("feed fetch failed", "country", country, "err", err)
		http.Error(w, "error fetching news", http.StatusBadGateway)
		return
	}

	s.cache.Set(country, items)
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) loadNews(ctx context.Context, country, feedURL string) ([]news.News, error) {
	feedText, err := s.fetcher.Feed(ctx, feedURL)
	if err != nil {
		metrics.Global.IncrementFeedFetchErrors()
		return nil, err
	}
	metrics.Global.IncrementFeedsFetched()

	items, err := s.pipeline.Normalize(ctx, feedText)
	if err != nil {
		return nil, err
	}

	metrics.Global.SetLastRun()
	slog.Info("feed normalized", "country", country, "items", len(items))
	return items, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	stats := metrics.Global.GetStats()

	status := "ok"
	code := http.StatusOK
	if !stats["is_healthy"].(bool) {
		status = "error"
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, map[string]interface{}{
		"status":     status,
		"last_run":   stats["last_run_time"],
		"last_error": stats["last_error"],
	})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, metrics.Global.GetStats())
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "err", err)
	}
}
