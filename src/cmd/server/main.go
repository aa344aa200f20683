package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/api-sage/swift-payments-portal/src/internal/app"
	"github.com/api-sage/swift-payments-portal/src/internal/config"
	"github.com/api-sage/swift-payments-portal/src/internal/logger"
	"golang.org/x/sync/errgroup"
)

const (
	startupTimeout  = 30 * time.Second
	shutdownTimeout = 15 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if err := run(cfg); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	db, repos, err := app.OpenStore(startCtx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("close database failed", err, nil)
		}
	}()
	logger.Info("migrations completed successfully", logger.Fields{"storageDriver": cfg.StorageDriver})

	portal := app.New(cfg, repos, nil)

	if cfg.SeedEmployeeUsername != "" {
		created, err := portal.Employees.EnsureSeeded(startCtx, cfg.SeedEmployeeUsername, cfg.SeedEmployeePassword)
		if err != nil {
			return err
		}
		logger.Info("seed employee checked", logger.Fields{
			"username": cfg.SeedEmployeeUsername,
			"created":  created,
		})
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           portal.Handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", logger.Fields{
			"addr": cfg.HTTPAddr,
			"tls":  cfg.TLSEnabled(),
		})

		var err error
		if cfg.TLSEnabled() {
			err = srv.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
		} else {
			err = srv.ListenAndServe()
		}
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("http server shutting down", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
