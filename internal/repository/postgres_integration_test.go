//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/deppfellow/flatchores/internal/database"
	"github.com/deppfellow/flatchores/internal/model"
	"github.com/deppfellow/flatchores/internal/sqlerr"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("flatchores"),
		postgres.WithUsername("flatchores"),
		postgres.WithPassword("flatchores"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "failed to start PostgreSQL container")
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	conn, err := pgx.Connect(ctx, connStr)
	require.NoError(t, err)
	logger := zerolog.Nop()
	require.NoError(t, database.MigrateConn(ctx, &logger, conn))
	require.NoError(t, conn.Close(ctx))

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return pool
}

func TestPostgresRepository(t *testing.T) {
	pool := setupPostgres(t)
	repos := NewPostgresRepositories(pool)
	ctx := context.Background()

	t.Run("badge round trip", func(t *testing.T) {
		in := model.Badge{EarnedAt: model.TimestampOf(time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC))}
		saved, err := repos.Badges.Save(ctx, in)
		require.NoError(t, err)
		require.True(t, saved.ID.IsSet())
		assert.Equal(t, "1970-01-01T00:00:00.000Z", saved.EarnedAt.String())

		found, ok, err := repos.Badges.FindOne(ctx, saved.ID.Int64())
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, saved, found)

		_, ok, err = repos.Badges.FindOne(ctx, saved.ID.Int64()+1)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("keyword column and update in place", func(t *testing.T) {
		saved, err := repos.TypeOfChores.Save(ctx, model.TypeOfChore{
			Name:       model.String("dishes"),
			Repeatable: model.Bool(true),
			Interval:   model.Int32(7),
		})
		require.NoError(t, err)

		before, err := repos.TypeOfChores.Count(ctx)
		require.NoError(t, err)

		saved.Points = model.Int32(3)
		updated, err := repos.TypeOfChores.Save(ctx, saved)
		require.NoError(t, err)
		assert.Equal(t, saved, updated)

		after, err := repos.TypeOfChores.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, before, after)

		_, err = repos.TypeOfChores.Save(ctx, saved.WithIdentity(model.NewID(saved.ID.Int64()+100)))
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("constraints surface as sqlerr codes", func(t *testing.T) {
		_, err := repos.TypeOfBadges.Save(ctx, model.TypeOfBadge{Name: model.String("gold"), Badge: model.RefTo(424242)})
		assert.Equal(t, sqlerr.ForeignKeyViolation, sqlerr.ErrCode(err))

		_, err = repos.Flats.Save(ctx, model.Flat{})
		assert.Equal(t, sqlerr.NotNullViolation, sqlerr.ErrCode(err))

		flat, err := repos.Flats.Save(ctx, model.Flat{Name: model.String("Loft")})
		require.NoError(t, err)
		_, err = repos.Chores.Save(ctx, model.Chore{Flat: model.RefTo(flat.ID.Int64())})
		require.NoError(t, err)

		err = repos.Flats.Delete(ctx, flat.ID.Int64())
		assert.Equal(t, sqlerr.ForeignKeyViolation, sqlerr.ErrCode(err))
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		saved, err := repos.Badges.Save(ctx, model.Badge{})
		require.NoError(t, err)

		require.NoError(t, repos.Badges.Delete(ctx, saved.ID.Int64()))
		require.NoError(t, repos.Badges.Delete(ctx, saved.ID.Int64()))

		all, err := repos.Badges.FindAll(ctx)
		require.NoError(t, err)
		for _, b := range all {
			assert.NotEqual(t, saved.ID, b.ID)
		}
	})
}
