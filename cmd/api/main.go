package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/helpme/helpdesk/internal/api/http"
	"github.com/helpme/helpdesk/internal/api/http/handlers"
	"github.com/helpme/helpdesk/internal/auth"
	"github.com/helpme/helpdesk/internal/cache"
	"github.com/helpme/helpdesk/internal/config"
	"github.com/helpme/helpdesk/internal/events"
	"github.com/helpme/helpdesk/internal/observability"
	"github.com/helpme/helpdesk/internal/persistence"
	"github.com/helpme/helpdesk/internal/ratelimit"
	"github.com/helpme/helpdesk/internal/repository"
	"github.com/helpme/helpdesk/internal/service"
	"github.com/helpme/helpdesk/internal/worker"
)

const historyCollection = "ticket_history"

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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	mongo, err := persistence.NewMongo(ctx, cfg.Mongo, logger)
	if err != nil {
		logger.Fatal("failed to connect mongodb", zap.Error(err))
	}
	defer mongo.Close(context.Background())

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	// Redis backs the guards and session cache when reachable, the
	// in-memory fallbacks keep a single instance functional without it.
	var (
		generalLimiter ratelimit.Limiter
		loginLimiter   ratelimit.Limiter
		writeLimiter   ratelimit.Limiter
		sessions       cache.Store
	)
	if err := redis.Ping(ctx); err != nil {
		logger.Warn("redis unavailable, using in-memory rate limiting and sessions", zap.Error(err))
		generalLimiter = ratelimit.NewInMemory(cfg.RateLimit.GeneralWindow)
		loginLimiter = ratelimit.NewInMemory(cfg.RateLimit.LoginWindow)
		writeLimiter = ratelimit.NewInMemory(cfg.RateLimit.WriteWindow)
		sessions = cache.NewInMemory()
	} else {
		client := redis.ClientHandle()
		generalLimiter = ratelimit.NewRedis(client, "general", cfg.RateLimit.GeneralWindow)
		loginLimiter = ratelimit.NewRedis(client, "login", cfg.RateLimit.LoginWindow)
		writeLimiter = ratelimit.NewRedis(client, "write", cfg.RateLimit.WriteWindow)
		sessions = cache.NewRedis(client, "auth")
	}

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	serviceRepo := repository.NewServiceRepository(pool)
	orderRepo := repository.NewServiceOrderRepository(pool)
	shiftRepo := repository.NewShiftRepository(pool)
	historyRepo := repository.NewTicketHistoryRepository(mongo.Collection(historyCollection))

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger)
	worker.StartNotificationWorker(notificationService)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:     userRepo,
		Sessions:     sessions,
		LoginLimiter: loginLimiter,
		Logger:       logger,
	})
	userService := service.NewUserService(userRepo, cfg.Auth.BcryptCost)
	technicianService := service.NewTechnicianService(userService, shiftRepo)
	catalogService := service.NewCatalogService(serviceRepo, orderRepo)
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:       ticketRepo,
		ServiceOrderRepo: orderRepo,
		ServiceRepo:      serviceRepo,
		UserRepo:         userRepo,
		HistoryRepo:      historyRepo,
		Dispatcher:       dispatcher,
	})
	queueService := service.NewQueueService(ticketRepo)
	adminService := service.NewAdminService(ticketRepo, userRepo)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, httptransport.MiddlewareConfig{
		Logger:         logger,
		Metrics:        metrics,
		RequestTimeout: cfg.App.RequestTimeout(),
		GeneralLimiter: generalLimiter,
		GeneralLimit:   cfg.RateLimit.GeneralLimit,
		WriteLimiter:   writeLimiter,
		WriteLimit:     cfg.RateLimit.WriteLimit,
	})

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, mongo, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Usuario:        handlers.NewUsuarioHandler(userService),
		Chamado:        handlers.NewChamadoHandler(ticketService),
		Fila:           handlers.NewFilaHandler(queueService),
		Servico:        handlers.NewServicoHandler(catalogService),
		Tecnico:        handlers.NewTecnicoHandler(technicianService),
		Admin:          handlers.NewAdminHandler(adminService, metrics),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
