package users

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	store := NewStore(db)
	require.NoError(t, store.AutoMigrate())
	return store
}

func TestCreateAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := &User{Email: "alice@example.com", PasswordHash: "hash"}
	require.NoError(t, store.Create(ctx, user))
	assert.NotZero(t, user.ID)

	byEmail, err := store.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, user.ID, byEmail.ID)
	assert.Equal(t, "hash", byEmail.PasswordHash)

	byID, err := store.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "alice@example.com", byID.Email)
}

func TestGetMissingReturnsNil(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user, err := store.GetByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, user)

	user, err = store.GetByID(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestCreateDuplicateEmailFails(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &User{Email: "alice@example.com", PasswordHash: "h1"}))
	err := store.Create(ctx, &User{Email: "alice@example.com", PasswordHash: "h2"})
	assert.Error(t, err)
}

func TestResolveIdentity(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := &User{Email: "alice@example.com", PasswordHash: "hash"}
	require.NoError(t, store.Create(ctx, user))

	ident, err := store.ResolveIdentity(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, ident)
	assert.Equal(t, user.ID, ident.ID)
	assert.Equal(t, "alice@example.com", ident.Email)

	ident, err = store.ResolveIdentity(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, ident)
}
