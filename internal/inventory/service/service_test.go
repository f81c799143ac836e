package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/MaruthamSatishReddy/easyToBuy/internal/inventory/repository"
	"github.com/MaruthamSatishReddy/easyToBuy/internal/inventory/repository/memory"
	"github.com/MaruthamSatishReddy/easyToBuy/internal/inventory/service"
)

func TestHandleOrderPlaced_Decrements(t *testing.T) {
	repo := memory.NewRepository()
	require.NoError(t, repo.Save(context.Background(), repository.Inventory{SkuCode: "iphone_15", Quantity: 10}))

	svc := service.New(repo, zap.NewNop())

	err := svc.HandleOrderPlaced(context.Background(), service.OrderPlacedEvent{
		OrderNumber: "ord-1",
		SkuCode:     "iphone_15",
		Quantity:    3,
	})

	require.NoError(t, err)
	inv, err := repo.FindBySku(context.Background(), "iphone_15")
	require.NoError(t, err)
	assert.Equal(t, int64(7), inv.Quantity)
}

func TestHandleOrderPlaced_UnknownSku(t *testing.T) {
	repo := memory.NewRepository()
	svc := service.New(repo, zap.NewNop())

	err := svc.HandleOrderPlaced(context.Background(), service.OrderPlacedEvent{
		OrderNumber: "ord-1",
		SkuCode:     "unknown",
		Quantity:    1,
	})

	assert.ErrorIs(t, err, service.ErrSkuNotFound)
}

func TestHandleOrderPlaced_GoesNegative(t *testing.T) {
	repo := memory.NewRepository()
	require.NoError(t, repo.Save(context.Background(), repository.Inventory{SkuCode: "sku", Quantity: 2}))

	svc := service.New(repo, zap.NewNop())

	err := svc.HandleOrderPlaced(context.Background(), service.OrderPlacedEvent{
		OrderNumber: "ord-1",
		SkuCode:     "sku",
		Quantity:    5,
	})

	// списание не ограничено нулём
	require.NoError(t, err)
	inv, err := repo.FindBySku(context.Background(), "sku")
	require.NoError(t, err)
	assert.Equal(t, int64(-3), inv.Quantity)
}

func TestHandleOrderPlaced_RedeliveryDecrementsTwice(t *testing.T) {
	// at-least-once без дедупликации: повторная доставка того же события
	// списывает остаток повторно
	repo := memory.NewRepository()
	require.NoError(t, repo.Save(context.Background(), repository.Inventory{SkuCode: "sku", Quantity: 10}))

	svc := service.New(repo, zap.NewNop())
	event := service.OrderPlacedEvent{OrderNumber: "ord-1", SkuCode: "sku", Quantity: 2}

	require.NoError(t, svc.HandleOrderPlaced(context.Background(), event))
	require.NoError(t, svc.HandleOrderPlaced(context.Background(), event))

	inv, err := repo.FindBySku(context.Background(), "sku")
	require.NoError(t, err)
	assert.Equal(t, int64(6), inv.Quantity)
}

func TestIsInStock(t *testing.T) {
	repo := memory.NewRepository()
	require.NoError(t, repo.Save(context.Background(), repository.Inventory{SkuCode: "sku", Quantity: 5}))

	svc := service.New(repo, zap.NewNop())

	tests := []struct {
		name     string
		skuCode  string
		quantity int64
		want     bool
	}{
		{name: "enough stock", skuCode: "sku", quantity: 5, want: true},
		{name: "not enough stock", skuCode: "sku", quantity: 6, want: false},
		{name: "unknown sku", skuCode: "missing", quantity: 1, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.IsInStock(context.Background(), tt.skuCode, tt.quantity)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
