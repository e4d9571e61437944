package main

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/helpme/helpdesk/internal/config"
	"github.com/helpme/helpdesk/internal/domain"
	"github.com/helpme/helpdesk/internal/observability"
	"github.com/helpme/helpdesk/internal/persistence"
	"github.com/helpme/helpdesk/internal/repository"
	"github.com/helpme/helpdesk/internal/service"
)

// Seeds the initial administrator account and a starter service catalog.
// Safe to run repeatedly, existing records are left untouched.
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

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(pg.PoolHandle())
	serviceRepo := repository.NewServiceRepository(pg.PoolHandle())
	userService := service.NewUserService(userRepo, cfg.Auth.BcryptCost)

	adminEmail := getSeedEnv("SEED_ADMIN_EMAIL", "admin@helpme.local")
	adminPassword := getSeedEnv("SEED_ADMIN_PASSWORD", "admin123!")

	if _, err := userRepo.GetByEmail(ctx, adminEmail); err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			logger.Fatal("failed to check admin account", zap.Error(err))
		}
		admin, err := userService.Create(ctx, service.CreateUserInput{
			Name:     "Administrador",
			Email:    adminEmail,
			Password: adminPassword,
			Role:     string(domain.RoleAdmin),
			Sector:   "TI",
		})
		if err != nil {
			logger.Fatal("failed to create admin account", zap.Error(err))
		}
		logger.Info("admin account created", zap.String("id", admin.ID), zap.String("email", admin.Email))
	} else {
		logger.Info("admin account already exists", zap.String("email", adminEmail))
	}

	catalog := []domain.Service{
		{Name: "Formatação de máquina", Description: "Reinstalação do sistema operacional e aplicativos padrão"},
		{Name: "Instalação de software", Description: "Instalação de aplicativos homologados"},
		{Name: "Problema de rede", Description: "Diagnóstico de conectividade e acesso à rede corporativa"},
		{Name: "Troca de equipamento", Description: "Substituição de periféricos e estações de trabalho"},
	}
	for i := range catalog {
		svc := catalog[i]
		if _, err := serviceRepo.GetByName(ctx, svc.Name); err == nil {
			logger.Info("service already exists", zap.String("name", svc.Name))
			continue
		} else if !errors.Is(err, pgx.ErrNoRows) {
			logger.Fatal("failed to check service", zap.String("name", svc.Name), zap.Error(err))
		}
		svc.Active = true
		if err := serviceRepo.Create(ctx, &svc); err != nil {
			logger.Fatal("failed to create service", zap.String("name", svc.Name), zap.Error(err))
		}
		logger.Info("service created", zap.String("id", svc.ID), zap.String("name", svc.Name))
	}

	logger.Info("seed complete")
}

func getSeedEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
