//go:build integration

package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/MaruthamSatishReddy/easyToBuy/internal/rating/repository"
	"github.com/MaruthamSatishReddy/easyToBuy/internal/rating/repository/postgres"
)

func setupPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("ratings"),
		tcpostgres.WithUsername("rating"),
		tcpostgres.WithPassword("rating"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `
		CREATE TABLE ratings (
			id            BIGSERIAL PRIMARY KEY,
			product_id    TEXT        NOT NULL,
			user_id       TEXT        NOT NULL,
			user_name     TEXT        NOT NULL DEFAULT '',
			stars         INTEGER     NOT NULL CHECK (stars BETWEEN 1 AND 5),
			comment       TEXT        NOT NULL DEFAULT '',
			helpful_count BIGINT      NOT NULL DEFAULT 0,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at    TIMESTAMPTZ,
			CONSTRAINT ratings_product_user_unique UNIQUE (product_id, user_id)
		)`)
	require.NoError(t, err)

	return pool
}

func newRating(productID, userID string, stars int32) repository.Rating {
	return repository.Rating{
		ProductID: productID,
		UserID:    userID,
		UserName:  "user " + userID,
		Stars:     stars,
		CreatedAt: time.Now().UTC(),
	}
}

func TestRepository_CreateAndUpdateRoundTrip(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewRepository(pool)
	ctx := context.Background()

	created, err := repo.Create(ctx, newRating("p1", "u1", 4))
	require.NoError(t, err)
	assert.Equal(t, "user u1", created.UserName)
	// updated_at равен NULL до первого изменения
	assert.Nil(t, created.UpdatedAt)

	now := time.Now().UTC()
	created.Stars = 5
	created.Comment = "отличный товар"
	created.UpdatedAt = &now

	updated, err := repo.Update(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, int32(5), updated.Stars)
	assert.Equal(t, "user u1", updated.UserName)
	require.NotNil(t, updated.UpdatedAt)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "user u1", found.UserName)
	require.NotNil(t, found.UpdatedAt)
	assert.WithinDuration(t, now, *found.UpdatedAt, time.Second)
}

func TestRepository_CreateDuplicate(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewRepository(pool)
	ctx := context.Background()

	_, err := repo.Create(ctx, newRating("p1", "u1", 5))
	require.NoError(t, err)

	_, err = repo.Create(ctx, newRating("p1", "u1", 3))

	assert.ErrorIs(t, err, repository.ErrAlreadyExists)
}

func TestRepository_ConcurrentCreates(t *testing.T) {
	// гонку одновременных вставок одной пары закрывает уникальный индекс
	pool := setupPostgres(t)
	repo := postgres.NewRepository(pool)
	ctx := context.Background()

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = repo.Create(ctx, newRating("p1", "u1", 5))
		}(i)
	}
	wg.Wait()

	var ok, dup int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case err == repository.ErrAlreadyExists:
			dup++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, attempts-1, dup)
}

func TestRepository_IncrementHelpful_Concurrent(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewRepository(pool)
	ctx := context.Background()

	created, err := repo.Create(ctx, newRating("p1", "u1", 5))
	require.NoError(t, err)

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.IncrementHelpful(ctx, created.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	rating, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(n), rating.HelpfulCount)
}

func TestRepository_FindByProduct_NewestFirst(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewRepository(pool)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	for i, userID := range []string{"u1", "u2", "u3"} {
		r := newRating("p1", userID, 4)
		r.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		_, err := repo.Create(ctx, r)
		require.NoError(t, err)
	}

	ratings, err := repo.FindByProduct(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, ratings, 3)
	assert.Equal(t, "u3", ratings[0].UserID)
	assert.Equal(t, "u1", ratings[2].UserID)
}

func TestRepository_CountByProductAndStars(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewRepository(pool)
	ctx := context.Background()

	for i, stars := range []int32{5, 5, 4, 3, 5} {
		_, err := repo.Create(ctx, newRating("p1", string(rune('a'+i)), stars))
		require.NoError(t, err)
	}

	count, err := repo.CountByProductAndStars(ctx, "p1", 5)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	count, err = repo.CountByProductAndStars(ctx, "p1", 2)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestRepository_DeleteByID(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewRepository(pool)
	ctx := context.Background()

	created, err := repo.Create(ctx, newRating("p1", "u1", 5))
	require.NoError(t, err)

	require.NoError(t, repo.DeleteByID(ctx, created.ID))

	_, err = repo.FindByID(ctx, created.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.ErrorIs(t, repo.DeleteByID(ctx, created.ID), repository.ErrNotFound)
}
