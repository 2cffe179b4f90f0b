package tasks

import (
	"context"
	"testing"
	"time"

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

func TestListByOwnerIsolation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	now := time.Now()

	mine := []*Task{
		{UserID: 1, Title: "first", CreatedAt: now.Add(-2 * time.Hour)},
		{UserID: 1, Title: "second", CreatedAt: now.Add(-time.Hour)},
		{UserID: 1, Title: "third", CreatedAt: now},
	}
	for _, task := range mine {
		require.NoError(t, store.Create(ctx, task))
	}
	require.NoError(t, store.Create(ctx, &Task{UserID: 2, Title: "other users task", CreatedAt: now}))

	tasks, err := store.ListByOwner(ctx, 1)
	require.NoError(t, err)
	require.Len(t, tasks, 3)

	// Newest first, and nothing owned by anyone else.
	assert.Equal(t, "third", tasks[0].Title)
	assert.Equal(t, "second", tasks[1].Title)
	assert.Equal(t, "first", tasks[2].Title)
	for _, task := range tasks {
		assert.Equal(t, uint64(1), task.UserID)
	}

	empty, err := store.ListByOwner(ctx, 3)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestGetReturnsAnyOwnersTask(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	task := &Task{UserID: 2, Title: "not yours"}
	require.NoError(t, store.Create(ctx, task))

	// Get is ownership-blind: the caller decides between 404 and 403.
	got, err := store.Get(ctx, task.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, uint64(2), got.UserID)

	missing, err := store.Get(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUpdate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	task := &Task{UserID: 1, Title: "before"}
	require.NoError(t, store.Create(ctx, task))

	task.Title = "after"
	task.IsCompleted = true
	require.NoError(t, store.Update(ctx, task))

	got, err := store.Get(ctx, task.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "after", got.Title)
	assert.True(t, got.IsCompleted)
}

func TestDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	task := &Task{UserID: 1, Title: "doomed"}
	require.NoError(t, store.Create(ctx, task))
	require.NoError(t, store.Delete(ctx, task.ID))

	got, err := store.Get(ctx, task.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	// Deleting a missing row is not an error.
	assert.NoError(t, store.Delete(ctx, task.ID))
}
