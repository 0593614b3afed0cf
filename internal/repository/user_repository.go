package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/spec-kit/gift-registry/internal/blob"
	"github.com/spec-kit/gift-registry/internal/domain"
)

// UserRepository defines persistence access for accounts.
type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id int) (*domain.User, error)
	// GetByPhone resolves through the phone index; when the index entry
	// is missing or dangling it falls back to a full scan comparing
	// phone numbers. The fallback is the documented degraded path for
	// legacy data, not a failure.
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	// Delete exists to roll back a registration that lost its phone
	// claim; user records are never deleted in normal flows.
	Delete(ctx context.Context, id int) error
}

type userRepository struct {
	store blob.Store
	index PhoneIndex
}

// NewUserRepository returns a blob-backed implementation.
func NewUserRepository(store blob.Store, index PhoneIndex) UserRepository {
	return &userRepository{store: store, index: index}
}

// List fetches every user; order follows the store's key listing.
func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	keys, err := r.store.ListByPrefix(ctx, userPrefix)
	if err != nil {
		return nil, err
	}

	users := make([]domain.User, 0, len(keys))
	for _, key := range keys {
		data, err := r.store.Get(ctx, key)
		if errors.Is(err, blob.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		var user domain.User
		if err := json.Unmarshal(data, &user); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int) (*domain.User, error) {
	data, err := r.store.Get(ctx, userKey(id))
	if err != nil {
		return nil, err
	}
	var user domain.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	if id, err := r.index.Resolve(ctx, phone); err == nil {
		user, err := r.GetByID(ctx, id)
		if err == nil && user.PhoneNumber == phone {
			return user, nil
		}
		if err != nil && !errors.Is(err, blob.ErrNotFound) {
			return nil, err
		}
		// dangling index entry, fall through to the scan
	} else if !errors.Is(err, blob.ErrNotFound) {
		return nil, err
	}

	users, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].PhoneNumber == phone {
			return &users[i], nil
		}
	}
	return nil, blob.ErrNotFound
}

// Create allocates the next id from the sequence counter and claims the
// record key atomically, advancing past any slots already occupied by
// imported data.
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	user.SchemaVersion = domain.CurrentSchemaVersion
	user.CreatedAt = time.Now().UTC()

	for {
		id, err := r.store.Incr(ctx, userSequenceKey)
		if err != nil {
			return err
		}
		user.ID = int(id)

		data, err := json.Marshal(user)
		if err != nil {
			return err
		}
		claimed, err := r.store.PutIfAbsent(ctx, userKey(user.ID), data)
		if err != nil {
			return err
		}
		if claimed {
			return nil
		}
	}
}

// Update persists the full record; last writer wins.
func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	user.SchemaVersion = domain.CurrentSchemaVersion
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return r.store.Put(ctx, userKey(user.ID), data)
}

func (r *userRepository) Delete(ctx context.Context, id int) error {
	return r.store.Delete(ctx, userKey(id))
}
