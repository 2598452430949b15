// Command reelcast runs the on-demand HLS transcoding service: resolve a
// resource/slug to a path, identify it, transcode on request, and serve
// segments over HTTP on port 7666.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/hashicorp/go-hclog"

	"github.com/mantonx/reelcast/internal/api"
	"github.com/mantonx/reelcast/internal/cache"
	"github.com/mantonx/reelcast/internal/config"
	"github.com/mantonx/reelcast/internal/encoder"
	"github.com/mantonx/reelcast/internal/history"
	"github.com/mantonx/reelcast/internal/mediainfo"
	"github.com/mantonx/reelcast/internal/resolver"
	"github.com/mantonx/reelcast/internal/server"
	"github.com/mantonx/reelcast/internal/transcoder"
)

func main() {
	configPath := os.Getenv("RC_CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "reelcast",
		Level: hclog.Info,
	})

	store := cache.NewStore(cfg.Paths.CacheRoot, cfg.Paths.MetadataRoot)
	if err := store.Wipe(logger); err != nil {
		log.Fatalf("wiping cache: %v", err)
	}

	identifier := mediainfo.NewIdentifier(logger, cfg.Paths.InspectorPath, cfg.Paths.FFmpegPath, cfg.Paths.MetadataRoot)
	driver := encoder.NewDriver(logger, cfg.Paths.FFmpegPath)
	manager := transcoder.NewManager(logger, store, driver, identifier)
	pathResolver := resolver.New(cfg.Resolver.APIURL, cfg.Resolver.FirstAPIKey())

	var ledger *history.Ledger
	if cfg.History.DatabaseURL != "" {
		ledger, err = history.Open(cfg.History.DatabaseURL)
		if err != nil {
			logger.Warn("playback history disabled: failed to open ledger", "error", err)
			ledger = nil
		}
	}

	deps := &api.Deps{
		Logger:                 logger.Named("api"),
		Manager:                manager,
		Resolver:               pathResolver,
		Identifier:             identifier,
		Store:                  store,
		Ledger:                 ledger,
		EnableOfflineDownloads: cfg.History.EnableOfflineDownloads,
	}

	engine := server.NewEngine(logger.Named("server"), deps)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("reelcast starting", "addr", fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port))
	if err := server.Run(ctx, logger, engine, cfg.Server.Host, cfg.Server.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
	logger.Info("reelcast stopped")
}
