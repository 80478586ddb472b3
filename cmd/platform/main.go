package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/oops"

	"github.com/adk-labs/platform/internal/config"
	"github.com/adk-labs/platform/internal/db"
	"github.com/adk-labs/platform/internal/handlers"
	"github.com/adk-labs/platform/internal/log"
	"github.com/adk-labs/platform/internal/manager"
	"github.com/adk-labs/platform/internal/notifier"
	"github.com/adk-labs/platform/internal/repo/sql"
	"github.com/adk-labs/platform/utils/jwtauth"
)

var (
	configPath          = flag.String("config", "", "path to the configuration file")
	gracefulShutdownSec = flag.Int64("graceful-shutdown", 1, "graceful shutdown seconds")
)

func main() {
	os.Exit(runWithSignalHandling(run))
}

// runWithSignalHandling runs f under a signal-aware context. On CTRL-C
// or SIGTERM the context is cancelled and f is expected to drain.
func runWithSignalHandling(f func(context.Context, *config.Config) error) int {
	flag.Parse()

	ctx, cancelOnSignal := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer cancelOnSignal()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Error(ctx, "Failed to load the configuration", err)
		_, _ = fmt.Fprintln(os.Stderr, err)

		return 1
	}

	log.Setup(parseLevel(cfg.LogLevel))

	err = f(ctx, cfg)
	if err != nil {
		log.Error(ctx, "Failed to start the application", err)
		_, _ = fmt.Fprintln(os.Stderr, err)

		return 1
	}

	_, _ = fmt.Fprintf(os.Stderr, "Graceful shutdown in %d seconds\n", *gracefulShutdownSec)
	time.Sleep(time.Duration(*gracefulShutdownSec) * time.Second)

	return 0
}

func run(ctx context.Context, cfg *config.Config) error {
	dbCon, err := db.StartDB(ctx, cfg)
	if err != nil {
		return oops.In("main").Wrapf(err, "failed to initialise db connection")
	}

	repository := sql.NewRepository(dbCon)
	signer := jwtauth.NewSigner(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL)
	managers := manager.New(repository, dbCon, cfg, notifier.NewLogMailer())

	server := &http.Server{
		Addr:         cfg.HTTP.Address,
		Handler:      handlers.NewRouter(managers, signer),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errChan := make(chan error, 1)

	go func() {
		log.Info(ctx, "Starting HTTP server", slog.String("address", cfg.HTTP.Address))

		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return oops.In("main").Wrapf(err, "http server failed")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		return oops.In("main").Wrapf(err, "http server shutdown failed")
	}

	return nil
}

func parseLevel(level string) slog.Level {
	var l slog.Level

	err := l.UnmarshalText([]byte(level))
	if err != nil {
		return slog.LevelInfo
	}

	return l
}
