package repository

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/spec-kit/gift-registry/internal/blob"
	"github.com/spec-kit/gift-registry/internal/domain"
)

// GiftRepository defines persistence access for catalog entries.
type GiftRepository interface {
	List(ctx context.Context) ([]domain.Gift, error)
	GetByID(ctx context.Context, id int) (*domain.Gift, error)
	Create(ctx context.Context, gift *domain.Gift) error
	Update(ctx context.Context, gift *domain.Gift) error
	Delete(ctx context.Context, id int) error
}

type giftRepository struct {
	store blob.Store
}

// NewGiftRepository returns a blob-backed implementation.
func NewGiftRepository(store blob.Store) GiftRepository {
	return &giftRepository{store: store}
}

// List fetches every gift under the prefix, ordered by creation time
// ascending. Transport errors propagate; a key deleted between the
// listing and the fetch is skipped.
func (r *giftRepository) List(ctx context.Context) ([]domain.Gift, error) {
	keys, err := r.store.ListByPrefix(ctx, giftPrefix)
	if err != nil {
		return nil, err
	}

	gifts := make([]domain.Gift, 0, len(keys))
	for _, key := range keys {
		data, err := r.store.Get(ctx, key)
		if errors.Is(err, blob.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		var gift domain.Gift
		if err := json.Unmarshal(data, &gift); err != nil {
			return nil, err
		}
		gifts = append(gifts, gift)
	}

	sort.SliceStable(gifts, func(i, j int) bool {
		return gifts[i].CreatedAt.Before(gifts[j].CreatedAt)
	})
	return gifts, nil
}

func (r *giftRepository) GetByID(ctx context.Context, id int) (*domain.Gift, error) {
	data, err := r.store.Get(ctx, giftKey(id))
	if err != nil {
		return nil, err
	}
	var gift domain.Gift
	if err := json.Unmarshal(data, &gift); err != nil {
		return nil, err
	}
	return &gift, nil
}

// Create allocates the next id from the sequence counter and claims the
// record key atomically. The claim can only fail if the counter lags
// behind pre-existing data (e.g. a fresh counter over imported records),
// in which case allocation simply advances until it finds a free slot.
func (r *giftRepository) Create(ctx context.Context, gift *domain.Gift) error {
	gift.SchemaVersion = domain.CurrentSchemaVersion
	gift.CreatedAt = time.Now().UTC()
	gift.IsPurchased = false
	gift.PurchasedByUserID = nil

	for {
		id, err := r.store.Incr(ctx, giftSequenceKey)
		if err != nil {
			return err
		}
		gift.ID = int(id)

		data, err := json.Marshal(gift)
		if err != nil {
			return err
		}
		claimed, err := r.store.PutIfAbsent(ctx, giftKey(gift.ID), data)
		if err != nil {
			return err
		}
		if claimed {
			return nil
		}
	}
}

// Update persists the full record; last writer wins.
func (r *giftRepository) Update(ctx context.Context, gift *domain.Gift) error {
	gift.SchemaVersion = domain.CurrentSchemaVersion
	data, err := json.Marshal(gift)
	if err != nil {
		return err
	}
	return r.store.Put(ctx, giftKey(gift.ID), data)
}

func (r *giftRepository) Delete(ctx context.Context, id int) error {
	if _, err := r.store.Get(ctx, giftKey(id)); err != nil {
		return err
	}
	return r.store.Delete(ctx, giftKey(id))
}
