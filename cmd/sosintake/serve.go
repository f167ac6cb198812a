package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sosintake/internal/db"
	"sosintake/internal/server"
	"sosintake/internal/store"

	"github.com/urfave/cli/v2"
)

var serveCommand = &cli.Command{
	Name:   "serve",
	Usage:  "Start the HTTP server",
	Action: serve,
}

func serve(cCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config, err := loadConfig(cCtx)
	if err != nil {
		return err
	}

	logger := newLogger(config)

	blobs, err := newBlobStore(ctx, config)
	if err != nil {
		return err
	}

	pool, err := db.Connect(ctx, config)
	if err != nil {
		return err
	}
	defer pool.Close()

	submissionRepo := store.NewSubmissionRepository(pool)

	notifier := newNotifier(logger, config)
	if notifier == nil {
		logger.Info("no webhook targets configured, notifications disabled")
	}

	srv, err := server.New(
		config,
		logger,
		blobs,
		submissionRepo,
		notifier,
	)
	if err != nil {
		return err
	}

	go func() {
		logger.WithField("port", config.ServerPort).
			WithField("storage_driver", config.StorageDriver).
			Infof("server starting http://localhost:%d", config.ServerPort)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Stop(shutdownCtx)
}
