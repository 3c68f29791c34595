package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/edvin/catalog/internal/api"
	"github.com/edvin/catalog/internal/config"
	"github.com/edvin/catalog/internal/db"
	"github.com/edvin/catalog/internal/logging"
	"github.com/edvin/catalog/internal/metrics"
	"github.com/edvin/catalog/internal/seed"
	"github.com/edvin/catalog/internal/store"
)

func main() {
	migrateFlag := flag.Bool("migrate", false, "Run database migrations before starting")
	migrateDirFlag := flag.String("migrate-dir", "", "Migration files directory (default migrations/<driver>)")
	seedFlag := flag.String("seed", "", "YAML product fixture applied when the store is empty (overrides SEED_FILE)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *seedFlag != "" {
		cfg.SeedFile = *seedFlag
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg)

	if *migrateFlag {
		dsn := cfg.DatabaseURL
		if cfg.StoreDriver == config.DriverMySQL {
			dsn = cfg.MySQLDSN
		}
		dir := *migrateDirFlag
		if dir == "" {
			dir = filepath.Join("migrations", cfg.StoreDriver)
		}
		logger.Info().Str("dir", dir).Msg("running database migrations")
		if err := db.RunMigrations(cfg.StoreDriver, dsn, dir); err != nil {
			logger.Fatal().Err(err).Msg("migration failed")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	productStore, closeStore, err := store.Open(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open product store")
	}
	defer closeStore()

	if cfg.SeedFile != "" {
		products, err := seed.Load(cfg.SeedFile)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to load seed file")
		}
		n, err := seed.Apply(logger.WithContext(ctx), productStore, products)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to seed products")
		}
		logger.Info().Str("file", cfg.SeedFile).Int("inserted", n).Msg("seed applied")
	}

	srv := api.NewServer(logger, productStore, cfg)

	servers := []*http.Server{{
		Addr:         cfg.HTTPListenAddr,
		Handler:      srv,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}}
	if cfg.MetricsListenAddr != "" {
		var ready metrics.ReadinessFunc
		if p, ok := productStore.(store.Pinger); ok {
			ready = p.Ping
		}
		servers = append(servers, metrics.NewServer(cfg.MetricsListenAddr, ready))
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, s := range servers {
		g.Go(func() error {
			logger.Info().Str("addr", s.Addr).Msg("starting catalog server")
			if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serve %s: %w", s.Addr, err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		for _, s := range servers {
			if err := s.Shutdown(shutdownCtx); err != nil {
				logger.Error().Err(err).Str("addr", s.Addr).Msg("shutdown failed")
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("server failed")
		closeStore()
		os.Exit(1)
	}
}
