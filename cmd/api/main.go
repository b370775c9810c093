package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/analos-labs/launchpad-engine/internal/adapter"
	"github.com/analos-labs/launchpad-engine/internal/api/middleware"
	"github.com/analos-labs/launchpad-engine/internal/api/server"
	"github.com/analos-labs/launchpad-engine/internal/chain"
	"github.com/analos-labs/launchpad-engine/internal/config"
	"github.com/analos-labs/launchpad-engine/internal/engine"
	"github.com/analos-labs/launchpad-engine/internal/logger"
	"github.com/analos-labs/launchpad-engine/internal/providers/jetstream"
	"github.com/analos-labs/launchpad-engine/internal/store"
	"github.com/analos-labs/launchpad-engine/internal/sweeper"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "launchpad-api",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Launchpad API")

	// Load the collection schedule
	collections, err := config.LoadCollections(cfg.CollectionsPath)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to load collections", zap.Error(err), zap.String("path", cfg.CollectionsPath))
	}
	logger.InfoCtx(ctx, "Loaded collection schedule", zap.Int("collections", len(collections)))

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	// Initialize store
	dataStore := store.NewPGStore(db)

	// Connect to NATS JetStream for mint events
	publisher, err := jetstream.NewPublisher(jetstream.Config{
		URL:            cfg.NATS.URL,
		StreamName:     cfg.NATS.StreamName,
		MaxReconnects:  cfg.NATS.MaxReconnects,
		ReconnectWait:  cfg.NATS.ReconnectWait,
		ConnectionName: cfg.NATS.ConnectionName,
	}, adapter.NewNatsJetStream(), adapter.NewJSON())
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to NATS", zap.Error(err), zap.String("url", cfg.NATS.URL))
	}
	defer publisher.Close()
	logger.InfoCtx(ctx, "Connected to NATS", zap.String("stream", cfg.NATS.StreamName))

	// Chain querier for eligibility snapshots
	clock := adapter.NewClock()
	querier := chain.NewSolanaQuerier(chain.SolanaConfig{
		RPCURL:    cfg.Solana.RPCURL,
		TokenMint: cfg.Solana.TokenMint,
	}, clock)

	// Create the mint engine and load every collection
	eng, err := engine.NewService(ctx, collections, dataStore, querier, publisher, clock, engine.Config{
		ReservationTTL:       cfg.Engine.ReservationTTL,
		PersistRetryInterval: cfg.Engine.PersistRetryInterval,
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create mint engine", zap.Error(err))
	}

	// Background reaper for expired reservations
	reaper := sweeper.NewReservationSweeper(&sweeper.ReservationSweeperConfig{
		Interval:       cfg.Engine.ReapInterval,
		WorkerPoolSize: cfg.Sweeper.WorkerPoolSize,
	}, eng, clock)

	// Create and start server
	srv := server.New(server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		Auth: middleware.AuthConfig{
			JWTPublicKey: cfg.Auth.JWTPublicKey,
			APIKeys:      cfg.Auth.APIKeys,
		},
	}, eng)

	errCh := make(chan error, 2)
	go func() {
		if err := srv.Start(ctx); err != nil {
			errCh <- err
		}
	}()
	go func() {
		if err := reaper.Start(ctx); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err)
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	logger.InfoCtx(shutdownCtx, "Shutting down...")

	if err := reaper.Stop(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err, zap.String("component", reaper.Name()))
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	// Use non-context logger for final message since original ctx is canceled
	logger.Info("Launchpad API stopped")
}
