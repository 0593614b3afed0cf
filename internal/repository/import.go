package repository

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/spec-kit/gift-registry/internal/blob"
	"github.com/spec-kit/gift-registry/internal/domain"
)

// Bulk-import helpers used by the one-off tools. They write records at
// their existing ids instead of allocating new ones.

// ImportGift writes a gift record under its original id.
func ImportGift(ctx context.Context, store blob.Store, gift *domain.Gift) error {
	gift.SchemaVersion = domain.CurrentSchemaVersion
	data, err := json.Marshal(gift)
	if err != nil {
		return err
	}
	return store.Put(ctx, giftKey(gift.ID), data)
}

// ImportUser writes a user record under its original id.
func ImportUser(ctx context.Context, store blob.Store, user *domain.User) error {
	user.SchemaVersion = domain.CurrentSchemaVersion
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return store.Put(ctx, userKey(user.ID), data)
}

// SeedSequences positions the id counters past the imported records so
// future allocations do not collide with them.
func SeedSequences(ctx context.Context, store blob.Store, maxGiftID, maxUserID int) error {
	if err := store.Put(ctx, giftSequenceKey, []byte(strconv.Itoa(maxGiftID))); err != nil {
		return err
	}
	return store.Put(ctx, userSequenceKey, []byte(strconv.Itoa(maxUserID)))
}
