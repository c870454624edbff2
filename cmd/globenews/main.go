package main

import (
	"log/slog"
	"net/http"
	"os"

	"globenews/internal/cache"
	"globenews/internal/config"
	"globenews/internal/fetch"
	"globenews/internal/logger"
	"globenews/internal/news"
	"globenews/internal/server"
	"globenews/internal/translate"
)

func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	countries, err := config.LoadCountries(cfg.CountriesPath)
	if err != nil {
		slog.Error("countries file load failed", "path", cfg.CountriesPath, "err", err)
		os.Exit(1)
	}

	translator := translate.New(cfg.TranslateURL, cfg.TargetLang, cfg.TranslateTimeout)
	pipeline := news.NewPipeline(translator)
	fetcher := fetch.New(cfg.FetchTimeout, cfg.FetchAttempts, cfg.FetchRetryDelay)

	srv := server.New(countries, fetcher, pipeline, cache.New(cfg.CacheTTL))

	slog.Info("starting globenews server",
		"addr", cfg.ListenAddr, "countries", len(countries), "target_lang", cfg.TargetLang)
	if err := http.ListenAndServe(cfg.ListenAddr, srv.Routes()); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
