package repository

import (
	"context"
	"encoding/json"

	"github.com/spec-kit/gift-registry/internal/blob"
	"github.com/spec-kit/gift-registry/internal/domain"
)

// PhoneIndex maintains the secondary index from phone number to user id.
type PhoneIndex interface {
	// Claim writes the index entry only if the phone is unclaimed,
	// reporting whether this caller won. Registration rolls its user
	// record back on a lost claim, which closes the duplicate-phone race
	// the handler-level check alone would leave open.
	Claim(ctx context.Context, phone string, userID int) (bool, error)
	// Put writes the entry unconditionally (bulk import path).
	Put(ctx context.Context, phone string, userID int) error
	// Resolve returns the indexed user id, or blob.ErrNotFound.
	Resolve(ctx context.Context, phone string) (int, error)
	// Release removes a claim, used to roll back a failed registration.
	Release(ctx context.Context, phone string) error
}

type phoneIndex struct {
	store blob.Store
}

// NewPhoneIndex returns a blob-backed implementation.
func NewPhoneIndex(store blob.Store) PhoneIndex {
	return &phoneIndex{store: store}
}

func (i *phoneIndex) Claim(ctx context.Context, phone string, userID int) (bool, error) {
	data, err := json.Marshal(domain.PhoneIndexEntry{UserID: userID})
	if err != nil {
		return false, err
	}
	return i.store.PutIfAbsent(ctx, phoneIndexKey(phone), data)
}

func (i *phoneIndex) Put(ctx context.Context, phone string, userID int) error {
	data, err := json.Marshal(domain.PhoneIndexEntry{UserID: userID})
	if err != nil {
		return err
	}
	return i.store.Put(ctx, phoneIndexKey(phone), data)
}

func (i *phoneIndex) Resolve(ctx context.Context, phone string) (int, error) {
	data, err := i.store.Get(ctx, phoneIndexKey(phone))
	if err != nil {
		return 0, err
	}
	var entry domain.PhoneIndexEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return 0, err
	}
	return entry.UserID, nil
}

func (i *phoneIndex) Release(ctx context.Context, phone string) error {
	return i.store.Delete(ctx, phoneIndexKey(phone))
}
