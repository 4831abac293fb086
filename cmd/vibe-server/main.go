// cmd/vibe-server/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"vibe-planner/internal/common/config"
	"vibe-planner/internal/common/logger"
	"vibe-planner/internal/common/observability"
	"vibe-planner/internal/common/validation"
	"vibe-planner/internal/providers/books"
	"vibe-planner/internal/providers/geocode"
	"vibe-planner/internal/providers/omdb"
	"vibe-planner/internal/providers/places"
	"vibe-planner/internal/providers/spotify"
	"vibe-planner/internal/providers/youtube"
	"vibe-planner/internal/server"
	"vibe-planner/internal/vibe/planner"
	"vibe-planner/pkg/registry"
)

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	zapLog.Info("Starting vibe planner server...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	// Re-init with the configured level and format now that we have it.
	zapLog = logger.New(cfg.Logging.Level, cfg.Logging.Format)
	log := logger.NewZapAdapter(zapLog)

	if !validation.ValidatePhone(cfg.Auth.PhoneNumber) {
		zapLog.Warn("MY_NUMBER does not look like a phone number; the validate tool will return it as-is",
			zap.String("value", cfg.Auth.PhoneNumber))
	}

	obs := observability.New("vibe-server")
	defer obs.Shutdown()

	// --- Tool registry ---
	reg := registry.DefaultRegistry()
	if path := os.Getenv("TOOL_REGISTRY_PATH"); path != "" {
		reg, err = registry.LoadRegistry(path)
		if err != nil {
			zapLog.Fatal("registry load failed", zap.String("path", path), zap.Error(err))
		}
		zapLog.Info("Tool registry loaded from file", zap.String("path", path))
	}

	// --- Provider handlers ---
	spotifyHandler := spotify.NewHandler(
		&spotify.Config{
			TokenURL:     cfg.APIs.Spotify.TokenURL,
			BaseURL:      cfg.APIs.Spotify.BaseURL,
			ClientID:     cfg.APIs.Spotify.ClientID,
			ClientSecret: cfg.APIs.Spotify.ClientSecret,
			Timeout:      config.GetDuration(cfg.APIs.Spotify.Timeout),
			MaxResults:   cfg.APIs.Spotify.MaxResults,
		},
		&spotifyLoggerAdapter{log},
	)

	youtubeHandler := youtube.NewHandler(
		&youtube.Config{
			BaseURL:    cfg.APIs.YouTube.BaseURL,
			APIKey:     cfg.APIs.YouTube.APIKey,
			Timeout:    config.GetDuration(cfg.APIs.YouTube.Timeout),
			MaxResults: cfg.APIs.YouTube.MaxResults,
		},
		&youtubeLoggerAdapter{log},
	)

	booksHandler := books.NewHandler(
		&books.Config{
			BaseURL:    cfg.APIs.Books.BaseURL,
			Timeout:    config.GetDuration(cfg.APIs.Books.Timeout),
			MaxResults: cfg.APIs.Books.MaxResults,
		},
		&booksLoggerAdapter{log},
	)

	omdbHandler := omdb.NewHandler(
		&omdb.Config{
			BaseURL:    cfg.APIs.OMDb.BaseURL,
			APIKey:     cfg.APIs.OMDb.APIKey,
			Timeout:    config.GetDuration(cfg.APIs.OMDb.Timeout),
			MaxResults: cfg.APIs.OMDb.MaxResults,
		},
		&omdbLoggerAdapter{log},
	)

	placesHandler := places.NewHandler(
		&places.Config{
			NearbySearchURL: cfg.APIs.GoogleMaps.NearbySearchURL,
			TextSearchURL:   cfg.APIs.GoogleMaps.TextSearchURL,
			APIKey:          cfg.APIs.GoogleMaps.APIKey,
			RadiusMeters:    cfg.APIs.GoogleMaps.RadiusMeters,
			Timeout:         config.GetDuration(cfg.APIs.GoogleMaps.Timeout),
			MaxResults:      cfg.APIs.GoogleMaps.MaxResults,
		},
		&placesLoggerAdapter{log},
	)

	geocodeHandler := geocode.NewHandler(
		&geocode.Config{
			BaseURL: cfg.APIs.GoogleMaps.GeocodeURL,
			APIKey:  cfg.APIs.GoogleMaps.APIKey,
			Timeout: config.GetDuration(cfg.APIs.GoogleMaps.Timeout),
		},
		&geocodeLoggerAdapter{log},
	)

	// --- Planner ---
	vibePlanner := planner.New(
		planner.Providers{
			Playlists: spotifyHandler,
			Recipes:   youtubeHandler,
			Books:     booksHandler,
			Movies:    omdbHandler,
			Cafes:     placesHandler,
			Geocoder:  geocodeHandler,
		},
		&plannerLoggerAdapter{log},
	)

	// --- HTTP server ---
	srv, err := server.New(cfg, reg, vibePlanner, obs, &serverLoggerAdapter{log})
	if err != nil {
		zapLog.Fatal("server init failed", zap.Error(err))
	}

	go func() {
		if err := srv.Start(); err != nil {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	zapLog.Info("Vibe planner server started",
		zap.Int("port", cfg.Server.Port),
		zap.Strings("tools", reg.Names()),
	)

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining requests...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("shutdown did not complete cleanly", zap.Error(err))
	}

	zapLog.Info("Vibe planner server stopped gracefully")
}

// Logger adapters bridging the shared logger to each package's Logger
// interface.

type spotifyLoggerAdapter struct {
	logger.Logger
}

func (a *spotifyLoggerAdapter) With(fields map[string]interface{}) spotify.Logger {
	return &spotifyLoggerAdapter{a.Logger.With(fields)}
}

type youtubeLoggerAdapter struct {
	logger.Logger
}

func (a *youtubeLoggerAdapter) With(fields map[string]interface{}) youtube.Logger {
	return &youtubeLoggerAdapter{a.Logger.With(fields)}
}

type booksLoggerAdapter struct {
	logger.Logger
}

func (a *booksLoggerAdapter) With(fields map[string]interface{}) books.Logger {
	return &booksLoggerAdapter{a.Logger.With(fields)}
}

type omdbLoggerAdapter struct {
	logger.Logger
}

func (a *omdbLoggerAdapter) With(fields map[string]interface{}) omdb.Logger {
	return &omdbLoggerAdapter{a.Logger.With(fields)}
}

type placesLoggerAdapter struct {
	logger.Logger
}

func (a *placesLoggerAdapter) With(fields map[string]interface{}) places.Logger {
	return &placesLoggerAdapter{a.Logger.With(fields)}
}

type geocodeLoggerAdapter struct {
	logger.Logger
}

func (a *geocodeLoggerAdapter) With(fields map[string]interface{}) geocode.Logger {
	return &geocodeLoggerAdapter{a.Logger.With(fields)}
}

type plannerLoggerAdapter struct {
	logger.Logger
}

func (a *plannerLoggerAdapter) With(fields map[string]interface{}) planner.Logger {
	return &plannerLoggerAdapter{a.Logger.With(fields)}
}

type serverLoggerAdapter struct {
	logger.Logger
}

func (a *serverLoggerAdapter) With(fields map[string]interface{}) server.Logger {
	return &serverLoggerAdapter{a.Logger.With(fields)}
}
