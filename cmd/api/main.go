package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/ecommerce-service/internal/api/http"
	"github.com/spec-kit/ecommerce-service/internal/api/http/handlers"
	"github.com/spec-kit/ecommerce-service/internal/auth"
	"github.com/spec-kit/ecommerce-service/internal/config"
	"github.com/spec-kit/ecommerce-service/internal/events"
	"github.com/spec-kit/ecommerce-service/internal/observability"
	"github.com/spec-kit/ecommerce-service/internal/payments"
	"github.com/spec-kit/ecommerce-service/internal/persistence"
	"github.com/spec-kit/ecommerce-service/internal/repository"
	"github.com/spec-kit/ecommerce-service/internal/service"
	"github.com/spec-kit/ecommerce-service/internal/worker"
)

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

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	roleRepo := repository.NewRoleRepository(pool)
	productRepo := repository.NewProductRepository(pool)
	imageRepo := repository.NewImageRepository(pool)
	cartRepo := repository.NewCartRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	paymentRepo := repository.NewPaymentRepository(pool)

	dispatcher := events.NewInMemoryDispatcher(logger)

	authService, err := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo: userRepo,
		RoleRepo: roleRepo,
	})
	if err != nil {
		logger.Fatal("failed to init auth service", zap.Error(err))
	}
	productService := service.NewProductService(productRepo, imageRepo, cartRepo)
	cartService := service.NewCartService(cartRepo, productRepo)
	orderService := service.NewOrderService(orderRepo, productRepo, cartRepo, dispatcher)
	dashboardService := service.NewDashboardService(orderRepo, redis, cfg.Dashboard.CacheTTL(), logger)
	exportService := service.NewExportService(productRepo)
	paypalClient := payments.NewPaypalClient(cfg.Paypal, logger)
	paymentService := service.NewPaymentService(paymentRepo, paypalClient, dispatcher)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notify)

	worker.StartNotificationWorker(notificationService)
	worker.StartDashboardWorker(dispatcher, dashboardService)

	filter := auth.NewFilter(authService.TokenManager(), logger)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:    handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Auth:      handlers.NewAuthHandler(authService),
		Products:  handlers.NewProductsHandler(productService),
		Cart:      handlers.NewCartHandler(cartService),
		Orders:    handlers.NewOrdersHandler(orderService),
		Dashboard: handlers.NewDashboardHandler(dashboardService),
		Images:    handlers.NewImagesHandler(productService),
		Export:    handlers.NewExportHandler(exportService),
		Payments:  handlers.NewPaymentsHandler(paymentService),
		Filter:    filter,
		Policy:    httptransport.AccessPolicy(),
		Logger:    logger,
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
