// Command identityserver runs the identity service: user and role stores on
// MongoDB, sign-in throttling on Redis, JWT issuance, and the HTTP API.
//
// @title        Identity Service API
// @version      1.0
// @description  User registration, credential validation, role management and JWT issuance.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/peoplecore/identity-system/internal/api"
	"github.com/peoplecore/identity-system/internal/infrastructure/config"
	mongostore "github.com/peoplecore/identity-system/internal/infrastructure/db/mongo"
	redisstore "github.com/peoplecore/identity-system/internal/infrastructure/db/redis"
	"github.com/peoplecore/identity-system/internal/infrastructure/queue"
	"github.com/peoplecore/identity-system/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadIdentity(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	client, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index setup failed")
	}

	auditStore := mongostore.NewAuditStore(db)
	dispatcher := queue.NewAuditDispatcher(cfg.AuditWorkers, auditStore, log)
	dispatcher.Start(ctx)

	e := api.NewRouter(db, rdb, cfg, dispatcher)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("identity server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := mongostore.NewUserStore(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongostore.NewRoleStore(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	return mongostore.NewAuditStore(db).EnsureIndexes(ctx)
}
