package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"github.com/helpme/helpdesk/internal/config"
	"github.com/helpme/helpdesk/internal/observability"
	"github.com/helpme/helpdesk/internal/persistence"
	"github.com/helpme/helpdesk/internal/repository"
)

const historyCollection = "ticket_history"

// Purges every store used by the API. Intended for development and test
// environments only.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()

	logger.Info("cleanup starting",
		zap.String("postgres", config.MaskDSN(cfg.Postgres.DSN)),
		zap.String("mongodb", config.MaskDSN(cfg.Mongo.URI)),
		zap.String("redis", cfg.Redis.Addr()),
	)

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	tables := []string{"service_orders", "shifts", "tickets", "services", "users"}
	for _, table := range tables {
		cmd, err := pg.PoolHandle().Exec(ctx, "DELETE FROM "+table)
		if err != nil {
			logger.Error("failed to purge table", zap.String("table", table), zap.Error(err))
			continue
		}
		logger.Info("table purged", zap.String("table", table), zap.Int64("rows", cmd.RowsAffected()))
	}

	mongo, err := persistence.NewMongo(ctx, cfg.Mongo, logger)
	if err != nil {
		logger.Error("failed to connect mongodb", zap.Error(err))
	} else {
		defer mongo.Close(context.Background())
		historyRepo := repository.NewTicketHistoryRepository(mongo.Collection(historyCollection))
		deleted, err := historyRepo.Purge(ctx)
		if err != nil {
			logger.Error("failed to purge ticket history", zap.Error(err))
		} else {
			logger.Info("ticket history purged", zap.Int64("entries", deleted))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()
	if err := redis.Ping(ctx); err != nil {
		logger.Error("failed to connect redis", zap.Error(err))
	} else if err := redis.ClientHandle().FlushDB(ctx).Err(); err != nil {
		logger.Error("failed to flush redis", zap.Error(err))
	} else {
		logger.Info("redis flushed")
	}

	logger.Info("cleanup complete")
}
