// Command migrate imports gifts and users from the legacy SQL database
// into the blob store, rebuilding phone indexes and positioning the id
// sequence counters past the imported records.
package main

import (
	"context"
	"log"

	"go.uber.org/zap"

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

	if cfg.Legacy.PostgresDSN == "" {
		logger.Fatal("LEGACY_POSTGRES_DSN is required")
	}

	ctx := context.Background()

	pg, err := persistence.NewPostgres(ctx, cfg.Legacy, logger)
	if err != nil {
		logger.Fatal("failed to connect legacy database", zap.Error(err))
	}
	defer pg.Close()

	var store blob.Store
	if cfg.Blob.Backend == "memory" {
		logger.Fatal("refusing to migrate into an in-memory store")
	} else {
		redis := persistence.NewRedis(cfg.Redis, logger)
		defer redis.Close()
		store = blob.NewRedisStore(redis.Client)
	}

	maxUserID, err := migrateUsers(ctx, pg, store, logger)
	if err != nil {
		logger.Fatal("user migration failed", zap.Error(err))
	}
	maxGiftID, err := migrateGifts(ctx, pg, store, logger)
	if err != nil {
		logger.Fatal("gift migration failed", zap.Error(err))
	}

	if err := repository.SeedSequences(ctx, store, maxGiftID, maxUserID); err != nil {
		logger.Fatal("failed to seed id sequences", zap.Error(err))
	}
	logger.Info("migration complete",
		zap.Int("max_user_id", maxUserID),
		zap.Int("max_gift_id", maxGiftID))
}

func migrateUsers(ctx context.Context, pg *persistence.Postgres, store blob.Store, logger *zap.Logger) (int, error) {
	const query = `
        SELECT id, first_name, last_name, phone_number, password_hash, role, created_at
        FROM users ORDER BY id`

	rows, err := pg.Pool.Query(ctx, query)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	phoneIndex := repository.NewPhoneIndex(store)
	maxID := 0
	count := 0
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.ID,
			&user.FirstName,
			&user.LastName,
			&user.PhoneNumber,
			&user.PasswordHash,
			&user.Role,
			&user.CreatedAt,
		); err != nil {
			return 0, err
		}
		if err := repository.ImportUser(ctx, store, &user); err != nil {
			return 0, err
		}
		if err := phoneIndex.Put(ctx, user.PhoneNumber, user.ID); err != nil {
			return 0, err
		}
		if user.ID > maxID {
			maxID = user.ID
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	logger.Info("users migrated", zap.Int("count", count))
	return maxID, nil
}

func migrateGifts(ctx context.Context, pg *persistence.Postgres, store blob.Store, logger *zap.Logger) (int, error) {
	const query = `
        SELECT id, name, description, image_url, is_purchased, purchased_by_user_id, created_at
        FROM gifts ORDER BY id`

	rows, err := pg.Pool.Query(ctx, query)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	maxID := 0
	count := 0
	for rows.Next() {
		var gift domain.Gift
		if err := rows.Scan(
			&gift.ID,
			&gift.Name,
			&gift.Description,
			&gift.ImageURL,
			&gift.IsPurchased,
			&gift.PurchasedByUserID,
			&gift.CreatedAt,
		); err != nil {
			return 0, err
		}
		if err := repository.ImportGift(ctx, store, &gift); err != nil {
			return 0, err
		}
		if gift.ID > maxID {
			maxID = gift.ID
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	logger.Info("gifts migrated", zap.Int("count", count))
	return maxID, nil
}
