package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nextlevelbuilder/pbgate/internal/api"
	"github.com/nextlevelbuilder/pbgate/internal/bot"
	"github.com/nextlevelbuilder/pbgate/internal/config"
	"github.com/nextlevelbuilder/pbgate/internal/driver"
	httpapi "github.com/nextlevelbuilder/pbgate/internal/http"
	"github.com/nextlevelbuilder/pbgate/internal/msgconv"
	"github.com/nextlevelbuilder/pbgate/internal/plugin"
	"github.com/nextlevelbuilder/pbgate/internal/session"
	"github.com/nextlevelbuilder/pbgate/internal/tracing"
	"github.com/nextlevelbuilder/pbgate/internal/uri"
)

const shutdownTimeout = 10 * time.Second

func runGateway() {
	cfg, err := config.Load(resolveConfigPath())
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	setupLogging(cfg.Log)

	shutdownTracing, err := tracing.Setup(context.Background(), cfg.Tracing.OTLPEndpoint, Version)
	if err != nil {
		slog.Error("failed to set up tracing", "error", err)
		os.Exit(1)
	}
	defer func() {
		flushCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
		defer done()
		if err := shutdownTracing(flushCtx); err != nil {
			slog.Warn("tracing shutdown", "error", err)
		}
	}()

	store := plugin.NewStore(cfg.Plugins.Dir)
	conv := msgconv.NewConverter(uri.NewFetcher(), cfg.Media.VideoCacheDir)
	dispatcher := api.NewDispatcher(conv)
	registry := bot.NewRegistry(store, dispatcher)

	open := func(uin int64, protocol driver.Protocol, device *driver.Device) (driver.Client, error) {
		return driver.Open(cfg.Driver.Name, uin, protocol, device)
	}
	sessions := session.NewManager(open, registry)
	sessions.QRDeviceSeed = cfg.Driver.DeviceSeed

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Plugin file changes only apply to bots logged in after the change;
	// the watcher just surfaces them in the log.
	if err := store.Watch(ctx, func() {
		slog.Info("plugin configuration changed, applies to future logins")
	}); err != nil {
		slog.Warn("plugin watcher unavailable", "error", err)
	}

	server := httpapi.NewServer(cfg.Admin, registry, sessions, store)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("graceful shutdown initiated", "signal", sig)

		shutdownCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
		defer done()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Warn("admin api shutdown", "error", err)
		}
		sessions.StopAll()
		registry.StopAll()
		cancel()
	}()

	slog.Info("pbgate starting",
		"version", Version,
		"driver", cfg.Driver.Name,
		"drivers", driver.Drivers(),
		"plugin_dir", cfg.Plugins.Dir,
	)

	if err := server.ListenAndServe(); err != nil {
		slog.Error("admin api error", "error", err)
		os.Exit(1)
	}
}

// setupLogging installs the process-wide slog handler from config. The
// --verbose flag forces debug level.
func setupLogging(cfg config.LogConfig) {
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
