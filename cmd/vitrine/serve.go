package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vitrine/internal/db"
	"vitrine/internal/server"
	"vitrine/internal/storage"
	"vitrine/internal/store"

	"github.com/sirupsen/logrus"
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

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	config, err := loadConfig()
	if err != nil {
		return err
	}

	if config.CookieHashKey == "" || config.CookieBlockKey == "" {
		return errors.New("set COOKIE_HASH_KEY and COOKIE_BLOCK_KEY (run `vitrine keygen`)")
	}

	pool, err := db.Connect(ctx, config)
	if err != nil {
		return err
	}
	defer pool.Close()

	contactRepo := store.NewContactRepository(pool)
	fileRepo := store.NewFileRepository(pool)
	appointmentRepo := store.NewAppointmentRepository(pool)
	adminRepo := store.NewAdminRepository(pool)

	uploads := storage.NewLocalStorage(config.RootPath, config.ContactUploadPath)

	srv, err := server.New(
		config,
		logger,
		contactRepo,
		fileRepo,
		appointmentRepo,
		adminRepo,
		uploads,
	)
	if err != nil {
		return err
	}

	go func() {
		logger.WithField("port", config.ServerPort).Infof("server starting http://localhost:%d", config.ServerPort)
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
