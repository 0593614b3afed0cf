package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/spec-kit/gift-registry/internal/blob"
	"github.com/spec-kit/gift-registry/internal/domain"
)

// CartRepository manages per-(user, gift) cart membership records.
type CartRepository interface {
	// Add writes the entry, refreshing addedAt when it already exists.
	Add(ctx context.Context, userID, giftID int) (*domain.CartEntry, error)
	// Remove deletes the entry; removing an absent entry is a no-op.
	Remove(ctx context.Context, userID, giftID int) error
	ListForUser(ctx context.Context, userID int) ([]domain.CartEntry, error)
	// CountOthersHolding reports how many other users currently hold the
	// gift in their cart. This scans the whole cart namespace; total cart
	// size is bounded by catalog size times active users.
	CountOthersHolding(ctx context.Context, giftID, excludingUserID int) (int, error)
	// OthersHoldingCounts is the batched variant over several gifts.
	OthersHoldingCounts(ctx context.Context, giftIDs []int, excludingUserID int) (map[int]int, error)
}

type cartRepository struct {
	store blob.Store
}

// NewCartRepository returns a blob-backed implementation.
func NewCartRepository(store blob.Store) CartRepository {
	return &cartRepository{store: store}
}

func (r *cartRepository) Add(ctx context.Context, userID, giftID int) (*domain.CartEntry, error) {
	entry := &domain.CartEntry{
		SchemaVersion: domain.CurrentSchemaVersion,
		UserID:        userID,
		GiftID:        giftID,
		AddedAt:       time.Now().UTC(),
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return nil, err
	}
	if err := r.store.Put(ctx, cartKey(userID, giftID), data); err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *cartRepository) Remove(ctx context.Context, userID, giftID int) error {
	return r.store.Delete(ctx, cartKey(userID, giftID))
}

func (r *cartRepository) ListForUser(ctx context.Context, userID int) ([]domain.CartEntry, error) {
	keys, err := r.store.ListByPrefix(ctx, cartUserPrefix(userID))
	if err != nil {
		return nil, err
	}

	entries := make([]domain.CartEntry, 0, len(keys))
	for _, key := range keys {
		data, err := r.store.Get(ctx, key)
		if errors.Is(err, blob.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		var entry domain.CartEntry
		if err := json.Unmarshal(data, &entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (r *cartRepository) CountOthersHolding(ctx context.Context, giftID, excludingUserID int) (int, error) {
	counts, err := r.OthersHoldingCounts(ctx, []int{giftID}, excludingUserID)
	if err != nil {
		return 0, err
	}
	return counts[giftID], nil
}

// OthersHoldingCounts decodes (userId, giftId) from every cart key and
// tallies entries for the requested gifts held by other users. Keys that
// do not decode are ignored.
func (r *cartRepository) OthersHoldingCounts(ctx context.Context, giftIDs []int, excludingUserID int) (map[int]int, error) {
	counts := make(map[int]int, len(giftIDs))
	wanted := make(map[int]struct{}, len(giftIDs))
	for _, id := range giftIDs {
		counts[id] = 0
		wanted[id] = struct{}{}
	}

	keys, err := r.store.ListByPrefix(ctx, cartPrefix)
	if err != nil {
		return nil, err
	}
	for _, key := range keys {
		userID, giftID, ok := parseCartKey(key)
		if !ok || userID == excludingUserID {
			continue
		}
		if _, want := wanted[giftID]; want {
			counts[giftID]++
		}
	}
	return counts, nil
}
