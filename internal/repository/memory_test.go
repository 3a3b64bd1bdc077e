package repository

import (
	"context"
	"testing"
	"time"

	"github.com/deppfellow/flatchores/internal/model"
	"github.com/deppfellow/flatchores/internal/sqlerr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_CreateAssignsIdentity(t *testing.T) {
	ctx := context.Background()
	repos := NewMemoryRepositories(NewMemoryStore())

	in := model.Badge{EarnedAt: model.TimestampOf(time.Unix(0, 0))}
	saved, err := repos.Badges.Save(ctx, in)
	require.NoError(t, err)

	id, ok := saved.ID.Get()
	require.True(t, ok)
	assert.Equal(t, int64(1), id)

	found, ok, err := repos.Badges.FindOne(ctx, id)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, in.EarnedAt, found.EarnedAt)
	assert.True(t, model.SameIdentity(saved, found))

	_, ok, err = repos.Badges.FindOne(ctx, id+1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryRepository_UpdateInPlace(t *testing.T) {
	ctx := context.Background()
	repos := NewMemoryRepositories(NewMemoryStore())

	saved, err := repos.Flats.Save(ctx, model.Flat{Name: model.String("Old Town")})
	require.NoError(t, err)

	saved.Name = model.String("New Town")
	saved.Address = model.String("Main St 1")
	updated, err := repos.Flats.Save(ctx, saved)
	require.NoError(t, err)
	assert.Equal(t, saved, updated)

	count, err := repos.Flats.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	_, err = repos.Flats.Save(ctx, model.Flat{ID: model.NewID(99), Name: model.String("x")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRepository_StoredRowsAreIsolated(t *testing.T) {
	ctx := context.Background()
	repos := NewMemoryRepositories(NewMemoryStore())

	name := "Loft"
	saved, err := repos.Flats.Save(ctx, model.Flat{Name: &name})
	require.NoError(t, err)

	name = "changed after save"
	found, _, err := repos.Flats.FindOne(ctx, saved.ID.Int64())
	require.NoError(t, err)
	assert.Equal(t, "Loft", *found.Name)
}

func TestMemoryRepository_FindAllOrderedAndNeverNil(t *testing.T) {
	ctx := context.Background()
	repos := NewMemoryRepositories(NewMemoryStore())

	all, err := repos.TypeOfChores.FindAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)

	for _, name := range []string{"dishes", "laundry", "trash"} {
		_, err := repos.TypeOfChores.Save(ctx, model.TypeOfChore{Name: model.String(name), Repeatable: model.Bool(true)})
		require.NoError(t, err)
	}

	all, err = repos.TypeOfChores.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i, chore := range all {
		assert.Equal(t, int64(i+1), chore.ID.Int64())
	}
}

func TestMemoryRepository_Constraints(t *testing.T) {
	ctx := context.Background()
	repos := NewMemoryRepositories(NewMemoryStore())

	t.Run("not null", func(t *testing.T) {
		_, err := repos.TypeOfChores.Save(ctx, model.TypeOfChore{Name: model.String("dishes")})
		require.Error(t, err)
		assert.Equal(t, sqlerr.NotNullViolation, sqlerr.ErrCode(err))
	})

	t.Run("dangling reference", func(t *testing.T) {
		_, err := repos.TypeOfBadges.Save(ctx, model.TypeOfBadge{Name: model.String("gold"), Badge: model.RefTo(42)})
		require.Error(t, err)
		assert.Equal(t, sqlerr.ForeignKeyViolation, sqlerr.ErrCode(err))

		count, err := repos.TypeOfBadges.Count(ctx)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("delete restricted while referenced", func(t *testing.T) {
		flat, err := repos.Flats.Save(ctx, model.Flat{Name: model.String("Loft")})
		require.NoError(t, err)
		chore, err := repos.Chores.Save(ctx, model.Chore{Flat: model.RefTo(flat.ID.Int64())})
		require.NoError(t, err)

		err = repos.Flats.Delete(ctx, flat.ID.Int64())
		require.Error(t, err)
		assert.Equal(t, sqlerr.ForeignKeyViolation, sqlerr.ErrCode(err))

		require.NoError(t, repos.Chores.Delete(ctx, chore.ID.Int64()))
		require.NoError(t, repos.Flats.Delete(ctx, flat.ID.Int64()))
	})
}

func TestMemoryRepository_DeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repos := NewMemoryRepositories(NewMemoryStore())

	saved, err := repos.Badges.Save(ctx, model.Badge{})
	require.NoError(t, err)
	id := saved.ID.Int64()

	require.NoError(t, repos.Badges.Delete(ctx, id))
	require.NoError(t, repos.Badges.Delete(ctx, id))

	_, ok, err := repos.Badges.FindOne(ctx, id)
	require.NoError(t, err)
	assert.False(t, ok)

	count, err := repos.Badges.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestMemoryRepository_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repos := NewMemoryRepositories(NewMemoryStore())
	_, err := repos.Flats.FindAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
