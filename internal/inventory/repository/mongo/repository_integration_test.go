//go:build integration

package mongo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcmongodb "github.com/testcontainers/testcontainers-go/modules/mongodb"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/MaruthamSatishReddy/easyToBuy/internal/inventory/repository"
	mongorepo "github.com/MaruthamSatishReddy/easyToBuy/internal/inventory/repository/mongo"
)

func setupMongo(t *testing.T) *mongodriver.Database {
	t.Helper()
	ctx := context.Background()

	container, err := tcmongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := mongodriver.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(ctx) })

	return client.Database("inventory_test")
}

func TestRepository_SaveAndFind(t *testing.T) {
	db := setupMongo(t)
	ctx := context.Background()

	repo, err := mongorepo.NewRepository(ctx, db)
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, repository.Inventory{SkuCode: "iphone_15", Quantity: 10}))

	inv, err := repo.FindBySku(ctx, "iphone_15")
	require.NoError(t, err)
	assert.Equal(t, int64(10), inv.Quantity)

	// upsert по тому же артикулу перезаписывает остаток
	require.NoError(t, repo.Save(ctx, repository.Inventory{SkuCode: "iphone_15", Quantity: 7}))

	inv, err = repo.FindBySku(ctx, "iphone_15")
	require.NoError(t, err)
	assert.Equal(t, int64(7), inv.Quantity)
}

func TestRepository_FindBySku_NotFound(t *testing.T) {
	db := setupMongo(t)
	ctx := context.Background()

	repo, err := mongorepo.NewRepository(ctx, db)
	require.NoError(t, err)

	_, err = repo.FindBySku(ctx, "missing")

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRepository_FindAll(t *testing.T) {
	db := setupMongo(t)
	ctx := context.Background()

	repo, err := mongorepo.NewRepository(ctx, db)
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, repository.Inventory{SkuCode: "b", Quantity: 2}))
	require.NoError(t, repo.Save(ctx, repository.Inventory{SkuCode: "a", Quantity: 1}))

	items, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}
