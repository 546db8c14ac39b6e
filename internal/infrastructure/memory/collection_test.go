package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openboard/openboard-api/internal/domain/entity"
	"github.com/openboard/openboard-api/internal/domain/repository"
)

func TestInsertAndFindByID(t *testing.T) {
	c := NewCollection()
	ctx := context.Background()

	id, err := c.InsertOne(ctx, map[string]any{"email": "a@b.io", "name": "A"})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	doc, err := c.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, doc.ID)
	assert.Equal(t, "a@b.io", doc.GetString(entity.FieldEmail))

	_, err = c.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestFindOneByField(t *testing.T) {
	c := NewCollection()
	ctx := context.Background()

	_, err := c.InsertOne(ctx, map[string]any{"email": "first@b.io"})
	require.NoError(t, err)
	_, err = c.InsertOne(ctx, map[string]any{"email": "second@b.io"})
	require.NoError(t, err)

	doc, err := c.FindOne(ctx, entity.FieldEmail, "second@b.io")
	require.NoError(t, err)
	assert.Equal(t, "second@b.io", doc.GetString(entity.FieldEmail))

	_, err = c.FindOne(ctx, entity.FieldEmail, "nobody@b.io")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestFindManyFiltersAndKeepsInsertionOrder(t *testing.T) {
	c := NewCollection()
	ctx := context.Background()

	for _, post := range []string{"p1", "p2", "p1", "p1"} {
		_, err := c.InsertOne(ctx, map[string]any{"postId": post})
		require.NoError(t, err)
	}

	all, err := c.FindMany(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 4)

	matching, err := c.FindMany(ctx, entity.FieldPostID, "p1")
	require.NoError(t, err)
	require.Len(t, matching, 3)
	assert.Equal(t, all[0].ID, matching[0].ID)
	assert.Equal(t, all[2].ID, matching[1].ID)
	assert.Equal(t, all[3].ID, matching[2].ID)

	none, err := c.FindMany(ctx, entity.FieldPostID, "p9")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUpdateByIDMergesPatch(t *testing.T) {
	c := NewCollection()
	ctx := context.Background()

	id, err := c.InsertOne(ctx, map[string]any{"title": "hello", "upVote": 0})
	require.NoError(t, err)

	matched, err := c.UpdateByID(ctx, id, map[string]any{"upVote": 5, "tag": "go"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), matched)

	doc, err := c.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "hello", doc.GetString("title"))
	assert.Equal(t, 5, doc.Fields["upVote"])
	assert.Equal(t, "go", doc.GetString("tag"))

	matched, err = c.UpdateByID(ctx, "missing", map[string]any{"x": 1})
	require.NoError(t, err)
	assert.Zero(t, matched)
}

func TestDeleteByID(t *testing.T) {
	c := NewCollection()
	ctx := context.Background()

	id, err := c.InsertOne(ctx, map[string]any{"title": "bye"})
	require.NoError(t, err)

	deleted, err := c.DeleteByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = c.FindByID(ctx, id)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	deleted, err = c.DeleteByID(ctx, id)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}
