package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/MaruthamSatishReddy/easyToBuy/internal/product/repository/memory"
	"github.com/MaruthamSatishReddy/easyToBuy/internal/product/service"
)

func TestCreateProduct_DefaultRating(t *testing.T) {
	repo := memory.NewRepository()
	svc := service.New(repo, zap.NewNop())

	product, err := svc.CreateProduct(context.Background(), service.CreateProductRequest{
		Name:        "iPhone 15",
		Description: "смартфон",
		SkuCode:     "iphone_15",
		Price:       999.99,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, product.ID)
	assert.Equal(t, 4.5, product.AverageRating)
	assert.Equal(t, int64(0), product.TotalRatings)
}

func TestCreateProduct_EmptyName(t *testing.T) {
	svc := service.New(memory.NewRepository(), zap.NewNop())

	_, err := svc.CreateProduct(context.Background(), service.CreateProductRequest{Name: ""})

	assert.ErrorIs(t, err, service.ErrInvalidName)
}

func TestApplyRatingUpdate(t *testing.T) {
	repo := memory.NewRepository()
	svc := service.New(repo, zap.NewNop())

	product, err := svc.CreateProduct(context.Background(), service.CreateProductRequest{Name: "товар"})
	require.NoError(t, err)

	err = svc.ApplyRatingUpdate(context.Background(), service.RatingChangedEvent{
		ProductID:     product.ID,
		AverageRating: 4.4,
		TotalRatings:  5,
		EventType:     "CREATED",
	})

	require.NoError(t, err)
	updated, err := svc.GetProduct(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.4, updated.AverageRating)
	assert.Equal(t, int64(5), updated.TotalRatings)
}

func TestApplyRatingUpdate_UnknownProductDiscarded(t *testing.T) {
	svc := service.New(memory.NewRepository(), zap.NewNop())

	// событие для отсутствующего товара отбрасывается без ошибки
	err := svc.ApplyRatingUpdate(context.Background(), service.RatingChangedEvent{
		ProductID:     "missing",
		AverageRating: 4.0,
		TotalRatings:  1,
		EventType:     "CREATED",
	})

	assert.NoError(t, err)
}

func TestGetProduct_NotFound(t *testing.T) {
	svc := service.New(memory.NewRepository(), zap.NewNop())

	_, err := svc.GetProduct(context.Background(), "missing")

	assert.ErrorIs(t, err, service.ErrProductNotFound)
}

func TestListProducts(t *testing.T) {
	repo := memory.NewRepository()
	svc := service.New(repo, zap.NewNop())

	for _, name := range []string{"a", "b", "c"} {
		_, err := svc.CreateProduct(context.Background(), service.CreateProductRequest{Name: name})
		require.NoError(t, err)
	}

	products, err := svc.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 3)
}

func TestApplyRatingUpdate_DeleteResetsToZero(t *testing.T) {
	repo := memory.NewRepository()
	svc := service.New(repo, zap.NewNop())

	product, err := svc.CreateProduct(context.Background(), service.CreateProductRequest{Name: "товар"})
	require.NoError(t, err)

	require.NoError(t, repo.UpdateRating(context.Background(), product.ID, 5.0, 1))

	err = svc.ApplyRatingUpdate(context.Background(), service.RatingChangedEvent{
		ProductID:     product.ID,
		AverageRating: 0.0,
		TotalRatings:  0,
		EventType:     "DELETED",
	})

	require.NoError(t, err)
	updated, err := svc.GetProduct(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, updated.AverageRating)
	assert.Equal(t, int64(0), updated.TotalRatings)
}
