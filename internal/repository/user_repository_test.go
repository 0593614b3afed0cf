package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/gift-registry/internal/blob"
	"github.com/spec-kit/gift-registry/internal/domain"
	"github.com/spec-kit/gift-registry/internal/repository"
)

func newUserFixtures() (blob.Store, repository.PhoneIndex, repository.UserRepository) {
	store := blob.NewMemoryStore()
	index := repository.NewPhoneIndex(store)
	users := repository.NewUserRepository(store, index)
	return store, index, users
}

func TestUserCreateAllocatesSequentialIDs(t *testing.T) {
	ctx := context.Background()
	_, _, users := newUserFixtures()

	alice := &domain.User{FirstName: "Alice", LastName: "Silva", PhoneNumber: "11911111111"}
	require.NoError(t, users.Create(ctx, alice))
	assert.Equal(t, 1, alice.ID)

	bob := &domain.User{FirstName: "Bob", LastName: "Costa", PhoneNumber: "11922222222"}
	require.NoError(t, users.Create(ctx, bob))
	assert.Equal(t, 2, bob.ID)
}

func TestUserGetByPhoneThroughIndex(t *testing.T) {
	ctx := context.Background()
	_, index, users := newUserFixtures()

	user := &domain.User{FirstName: "Alice", LastName: "Silva", PhoneNumber: "11911111111"}
	require.NoError(t, users.Create(ctx, user))
	claimed, err := index.Claim(ctx, user.PhoneNumber, user.ID)
	require.NoError(t, err)
	require.True(t, claimed)

	found, err := users.GetByPhone(ctx, "11911111111")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
}

func TestUserGetByPhoneFallsBackToScan(t *testing.T) {
	ctx := context.Background()
	_, _, users := newUserFixtures()

	// no index entry at all: legacy data
	user := &domain.User{FirstName: "Alice", LastName: "Silva", PhoneNumber: "11911111111"}
	require.NoError(t, users.Create(ctx, user))

	found, err := users.GetByPhone(ctx, "11911111111")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = users.GetByPhone(ctx, "11900000000")
	require.ErrorIs(t, err, blob.ErrNotFound)
}

func TestUserGetByPhoneToleratesDanglingIndex(t *testing.T) {
	ctx := context.Background()
	_, index, users := newUserFixtures()

	// index points at a user record that no longer exists
	claimed, err := index.Claim(ctx, "11911111111", 42)
	require.NoError(t, err)
	require.True(t, claimed)

	user := &domain.User{FirstName: "Alice", LastName: "Silva", PhoneNumber: "11911111111"}
	require.NoError(t, users.Create(ctx, user))

	found, err := users.GetByPhone(ctx, "11911111111")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
}

func TestPhoneIndexClaimIsExclusive(t *testing.T) {
	ctx := context.Background()
	_, index, _ := newUserFixtures()

	claimed, err := index.Claim(ctx, "11911111111", 1)
	require.NoError(t, err)
	assert.True(t, claimed)

	claimed, err = index.Claim(ctx, "11911111111", 2)
	require.NoError(t, err)
	assert.False(t, claimed)

	id, err := index.Resolve(ctx, "11911111111")
	require.NoError(t, err)
	assert.Equal(t, 1, id)
}

func TestUserUpdateRoundTrip(t *testing.T) {
	ctx := context.Background()
	_, _, users := newUserFixtures()

	user := &domain.User{FirstName: "Alice", LastName: "Silva", PhoneNumber: "11911111111"}
	require.NoError(t, users.Create(ctx, user))

	user.PasswordHash = "new-hash"
	require.NoError(t, users.Update(ctx, user))

	loaded, err := users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", loaded.PasswordHash)
	assert.Equal(t, "Alice", loaded.FirstName)
	assert.Equal(t, "11911111111", loaded.PhoneNumber)
}
