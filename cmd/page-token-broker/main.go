package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexjbarnes/page-token-broker/internal/config"
	"github.com/alexjbarnes/page-token-broker/internal/graph"
	"github.com/alexjbarnes/page-token-broker/internal/logging"
	"github.com/alexjbarnes/page-token-broker/internal/login"
	"github.com/alexjbarnes/page-token-broker/internal/server"
	"github.com/alexjbarnes/page-token-broker/internal/store"
	"golang.org/x/sync/errgroup"
)

var Version = "dev"

// shutdownTimeout bounds how long in-flight callbacks get to finish.
const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Config errors abort before anything listens.
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.NewLogger(cfg.Environment)
	logger.Info("page-token-broker starting",
		slog.String("version", Version),
		slog.String("redirect_uri", cfg.RedirectURI),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tokens := store.New()
	graphClient := graph.NewClient(graph.NewHTTPClient(cfg.GraphTimeout), cfg.GraphBaseURL)

	callback := login.NewHandler(login.Credentials{
		ClientID:      cfg.ClientID,
		ClientSecret:  cfg.ClientSecret,
		RedirectURI:   cfg.RedirectURI,
		EncryptionKey: cfg.EncryptionKey,
	}, graphClient, tokens, logger)

	srv := server.NewHTTPServer(cfg.ListenAddr(), server.NewMux(server.MuxConfig{
		Callback: callback,
		Logger:   logger,
	}))

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server running", slog.String("listen", cfg.ListenAddr()))

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", slog.Int("stored_records", tokens.Len()))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
