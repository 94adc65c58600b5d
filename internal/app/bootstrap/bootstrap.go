package bootstrap

import (
	"context"
	"log/slog"
	"strings"

	accountservice "shipline/contexts/identity-access/account-service"
	accountcrypto "shipline/contexts/identity-access/account-service/adapters/crypto"
	accountpostgres "shipline/contexts/identity-access/account-service/adapters/postgres"
	shipmentservice "shipline/contexts/shipment-operations/shipment-service"
	shipmentpostgres "shipline/contexts/shipment-operations/shipment-service/adapters/postgres"
	"shipline/internal/platform/config"
	"shipline/internal/platform/db"
	"shipline/internal/platform/filestore"
	"shipline/internal/platform/httpserver"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")

	var (
		pg        *db.Postgres
		accounts  accountservice.Module
		shipments shipmentservice.Module
	)
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		// No database configured: run fully in memory. Useful for local
		// evaluation, not for production.
		logger.Warn("no postgres dsn configured, using in-memory stores",
			"event", "bootstrap_in_memory_mode",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
		accounts = accountservice.NewInMemoryModule(nil, logger)
		shipments = shipmentservice.NewInMemoryModule(nil, logger)
	} else {
		pg, err = db.Connect(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		if err := accountpostgres.AutoMigrate(pg.DB); err != nil {
			return nil, err
		}
		if err := shipmentpostgres.AutoMigrate(pg.DB); err != nil {
			return nil, err
		}

		blobs, err := filestore.NewLocal(cfg.UploadDir)
		if err != nil {
			return nil, err
		}

		accounts = accountservice.NewModule(accountservice.Dependencies{
			Users:  accountpostgres.NewRepository(pg.DB, logger),
			Hasher: accountcrypto.NewBcryptHasher(cfg.BcryptCost),
			Tokens: accountcrypto.NewJWTSigner(cfg.JWTSecret, cfg.TokenTTL),
			Clock:  accountpostgres.SystemClock{},
			IDGen:  accountpostgres.UUIDGenerator{},
			Logger: logger,
		})

		shipmentRepo := shipmentpostgres.NewRepository(pg.DB, logger)
		shipments = shipmentservice.NewModule(shipmentservice.Dependencies{
			Shipments:   shipmentRepo,
			Attachments: shipmentRepo,
			History:     shipmentRepo,
			Blobs:       blobs,
			Tracking:    shipmentpostgres.TrackingGenerator{},
			Clock:       shipmentpostgres.SystemClock{},
			IDGen:       shipmentpostgres.UUIDGenerator{},
			Logger:      logger,
		})
	}

	server := httpserver.New(accounts, shipments, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
