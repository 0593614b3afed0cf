package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/gift-registry/internal/api/http/handlers"
	"github.com/spec-kit/gift-registry/internal/blob"
	"github.com/spec-kit/gift-registry/internal/cache"
	"github.com/spec-kit/gift-registry/internal/config"
	"github.com/spec-kit/gift-registry/internal/events"
	"github.com/spec-kit/gift-registry/internal/observability"
	"github.com/spec-kit/gift-registry/internal/persistence"
	"github.com/spec-kit/gift-registry/internal/repository"
	"github.com/spec-kit/gift-registry/internal/service"
	"github.com/spec-kit/gift-registry/internal/worker"

	httptransport "github.com/spec-kit/gift-registry/internal/api/http"
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

	metrics := observability.NewMetrics()

	var (
		store  blob.Store
		pinger handlers.Pinger
	)
	switch cfg.Blob.Backend {
	case "memory":
		logger.Warn("using in-memory blob store; data will not survive a restart")
		store = blob.NewMemoryStore()
	default:
		redis := persistence.NewRedis(cfg.Redis, logger)
		defer redis.Close()
		store = blob.NewRedisStore(redis.Client)
		pinger = redis
	}

	phoneIndex := repository.NewPhoneIndex(store)
	userRepo := repository.NewUserRepository(store, phoneIndex)
	giftRepo := repository.NewGiftRepository(store)
	cartRepo := repository.NewCartRepository(store)

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	usersCache := cache.NewUsers(cfg.Cache.UsersTTL(), nil)
	giftService := service.NewGiftService(giftRepo, userRepo, usersCache, dispatcher)
	accountService := service.NewAccountService(userRepo, phoneIndex, dispatcher, cfg.Auth.BcryptCost)
	cartService := service.NewCartService(cartRepo, giftRepo, userRepo, logger)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout(), cfg.CORS)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pinger),
		Gifts:  handlers.NewGiftsHandler(giftService),
		Users:  handlers.NewUsersHandler(accountService),
		Cart:   handlers.NewCartHandler(cartService),
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
