package projects

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisStore(t *testing.T) *RedisStore {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisStore(client)
}

func TestRedisStore_CreateAndFetch(t *testing.T) {
	store := setupRedisStore(t)
	ctx := context.Background()

	p, err := store.Create(ctx, CreateInput{
		Name:              "Blink",
		WorkspaceDocument: "<xml><block type=\"controls_loop\"/></xml>",
		GeneratedSource:   "void setup() {}\nvoid loop() {}",
		Board:             "uno",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, p.PublicID)
	assert.False(t, p.CreatedAt.IsZero())

	got, err := store.Fetch(ctx, p.PublicID)
	require.NoError(t, err)
	assert.Equal(t, p.Name, got.Name)
	assert.Equal(t, p.WorkspaceDocument, got.WorkspaceDocument)
	assert.Equal(t, p.GeneratedSource, got.GeneratedSource)
	assert.Equal(t, "uno", got.Board)
}

func TestRedisStore_CreateRequiresName(t *testing.T) {
	store := setupRedisStore(t)

	_, err := store.Create(context.Background(), CreateInput{Name: "   "})
	assert.Error(t, err)
}

func TestRedisStore_FetchNotFound(t *testing.T) {
	store := setupRedisStore(t)

	_, err := store.Fetch(context.Background(), "missing-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_Update(t *testing.T) {
	store := setupRedisStore(t)
	ctx := context.Background()

	p, err := store.Create(ctx, CreateInput{Name: "Blink", Board: "uno"})
	require.NoError(t, err)

	t.Run("partial update leaves other fields", func(t *testing.T) {
		doc := "<xml><updated/></xml>"
		src := "void loop() { blink(); }"
		updated, err := store.Update(ctx, p.PublicID, UpdateFields{
			WorkspaceDocument: &doc,
			GeneratedSource:   &src,
		})
		require.NoError(t, err)
		assert.Equal(t, doc, updated.WorkspaceDocument)
		assert.Equal(t, src, updated.GeneratedSource)
		assert.Equal(t, "Blink", updated.Name)
		assert.Equal(t, "uno", updated.Board)
	})

	t.Run("update keyed by id does not create a second record", func(t *testing.T) {
		doc := "<xml><again/></xml>"
		_, err := store.Update(ctx, p.PublicID, UpdateFields{WorkspaceDocument: &doc})
		require.NoError(t, err)

		list, err := store.List(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 1)
		assert.Equal(t, p.PublicID, list[0].PublicID)
	})

	t.Run("missing id", func(t *testing.T) {
		name := "Nope"
		_, err := store.Update(ctx, "missing-id", UpdateFields{Name: &name})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRedisStore_ListOrdering(t *testing.T) {
	store := setupRedisStore(t)
	ctx := context.Background()

	a, err := store.Create(ctx, CreateInput{Name: "First"})
	require.NoError(t, err)
	b, err := store.Create(ctx, CreateInput{Name: "Second"})
	require.NoError(t, err)

	// touching a moves it to the front
	doc := "<xml/>"
	_, err = store.Update(ctx, a.PublicID, UpdateFields{WorkspaceDocument: &doc})
	require.NoError(t, err)

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, a.PublicID, list[0].PublicID)
	assert.Equal(t, b.PublicID, list[1].PublicID)
}
