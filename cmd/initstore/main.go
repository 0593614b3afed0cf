// Command initstore seeds an empty blob store with the initial admin
// account, its phone index and a sample gift. It refuses to touch a
// store that already holds data.
package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"github.com/spec-kit/gift-registry/internal/auth"
	"github.com/spec-kit/gift-registry/internal/blob"
	"github.com/spec-kit/gift-registry/internal/config"
	"github.com/spec-kit/gift-registry/internal/domain"
	"github.com/spec-kit/gift-registry/internal/observability"
	"github.com/spec-kit/gift-registry/internal/persistence"
	"github.com/spec-kit/gift-registry/internal/repository"
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

	var store blob.Store
	if cfg.Blob.Backend == "memory" {
		logger.Warn("seeding an in-memory store is only useful for smoke tests")
		store = blob.NewMemoryStore()
	} else {
		redis := persistence.NewRedis(cfg.Redis, logger)
		defer redis.Close()
		store = blob.NewRedisStore(redis.Client)
	}

	ctx := context.Background()

	giftKeys, err := store.ListByPrefix(ctx, "gifts/")
	if err != nil {
		logger.Fatal("failed to inspect store", zap.Error(err))
	}
	userKeys, err := store.ListByPrefix(ctx, "users/")
	if err != nil {
		logger.Fatal("failed to inspect store", zap.Error(err))
	}
	if len(giftKeys) > 0 || len(userKeys) > 0 {
		logger.Warn("store already holds data; refusing to seed",
			zap.Int("gifts", len(giftKeys)),
			zap.Int("users", len(userKeys)))
		return
	}

	phoneIndex := repository.NewPhoneIndex(store)
	users := repository.NewUserRepository(store, phoneIndex)
	gifts := repository.NewGiftRepository(store)

	hash, err := auth.HashPassword(cfg.Seed.AdminPassword, cfg.Auth.BcryptCost)
	if err != nil {
		logger.Fatal("failed to hash admin password", zap.Error(err))
	}
	admin := &domain.User{
		FirstName:    "Admin",
		LastName:     "Sistema",
		PhoneNumber:  cfg.Seed.AdminPhone,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
	}
	if err := users.Create(ctx, admin); err != nil {
		logger.Fatal("failed to create admin user", zap.Error(err))
	}
	if err := phoneIndex.Put(ctx, admin.PhoneNumber, admin.ID); err != nil {
		logger.Fatal("failed to create phone index", zap.Error(err))
	}
	logger.Info("admin user created",
		zap.Int("id", admin.ID),
		zap.String("phone", admin.PhoneNumber))
	logger.Warn("change the admin password after the first login")

	sample := &domain.Gift{
		Name:        "Presente de Exemplo",
		Description: "Este é um presente de exemplo. Você pode editá-lo ou deletá-lo.",
		ImageURL:    "https://via.placeholder.com/400x300?text=Presente+de+Exemplo",
	}
	if err := gifts.Create(ctx, sample); err != nil {
		logger.Fatal("failed to create sample gift", zap.Error(err))
	}
	logger.Info("sample gift created", zap.Int("id", sample.ID))
}
