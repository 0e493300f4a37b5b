package main

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"fishlog/internal/amqp"
	"fishlog/internal/backend"
	"fishlog/internal/cli"
	"fishlog/internal/config"
	applog "fishlog/internal/log"
	"fishlog/internal/sheets"
	gsheet "fishlog/internal/sheets/google"
	mirrormem "fishlog/internal/sheets/memory"
	"fishlog/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentWorker)
	logger.Info("Starting fishlog-worker")

	cfg, err := cli.LoadAndValidateConfig((*config.Config).ValidateWorker)
	if err != nil {
		cli.Fatal(logger, "Configuration validation failed", err)
	}

	ctx, stop := cli.SignalContext()
	defer stop()

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		cli.Fatal(logger, "Invalid backend configuration", err)
	}
	store, err := backend.NewFactory(logger.WithComponent(applog.ComponentStorage).Logger).OpenStore(backendCfg)
	if err != nil {
		cli.Fatal(logger, "Failed to open catch store", err)
	}
	defer store.Close()

	var mirror sheets.CatchMirror
	if cfg.GoogleSpreadsheetID != "" {
		client, err := gsheet.New(ctx, gsheet.Options{
			SpreadsheetID:      cfg.GoogleSpreadsheetID,
			SheetName:          cfg.GoogleSheetName,
			ServiceAccountJSON: cfg.GoogleServiceAccountJSON,
			ServiceAccountFile: cfg.GoogleServiceAccountFile,
		})
		if err != nil {
			cli.Fatal(logger, "Failed to initialize Google Sheets client", err)
		}
		mirror = client
	} else {
		logger.Warn("GOOGLE_SPREADSHEET_ID not set, mirroring into memory only")
		mirror = mirrormem.New()
	}

	consumer, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		cli.Fatal(logger, "Failed to initialize AMQP client", err)
	}
	defer consumer.Close()

	syncWorker := worker.NewSyncWorker(store, mirror)

	logger.Info("Performing startup sync check")
	if err := syncWorker.StartupSyncCheck(ctx); err != nil {
		// Events keep flowing; the next restart retries the backfill.
		logger.Error("Startup sync check failed", applog.FieldError, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return consumer.ConsumeCatchEvents(gctx, syncWorker.HandleEvent)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Message consumption failed", applog.FieldError, err)
		return
	}
	logger.Info("Worker shutdown complete")
}
