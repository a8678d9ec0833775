package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nsqio/go-nsq"

	"studyhall/backend/internal/app"
	"studyhall/backend/internal/config"
	"studyhall/backend/internal/logger"
)

func main() {
	// Initialize structured logger
	base := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(slog.New(logger.NewContextHandler(base.Handler())))

	// 1. Load Config
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. Shared Dependencies
	deps, err := app.Bootstrap(ctx, cfg)
	if err != nil {
		slog.Error("bootstrap failed", "error", err)
		os.Exit(1)
	}
	defer deps.Close()

	// 3. Wire Services & Handlers
	application, err := app.New(cfg, deps)
	if err != nil {
		slog.Error("failed to build app", "error", err)
		os.Exit(1)
	}

	// 4. Ingest Worker
	// MaxInFlight 1 keeps index writes serialized through one handler.
	if cfg.EnableIngestWorker {
		nsqCfg := nsq.NewConfig()
		nsqCfg.MaxInFlight = 1

		consumer, err := nsq.NewConsumer(config.TopicIngestText, config.ChannelIngestIndexer, nsqCfg)
		if err != nil {
			slog.Error("failed to create NSQ consumer", "error", err)
			os.Exit(1)
		}
		consumer.AddHandler(application.IngestConsumer)

		if err := consumer.ConnectToNSQLookupd(cfg.NSQLookupd); err != nil {
			slog.Error("failed to connect to NSQLookupd", "error", err)
		} else {
			slog.Info("NSQ ingest consumer connected", "topic", config.TopicIngestText)
		}
		defer consumer.Stop()
	}

	// 5. HTTP Server
	if !cfg.EnableAPI {
		slog.Info("API disabled, running worker only")
		<-ctx.Done()
		return
	}

	if err := application.Run(ctx); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
