package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/MaruthamSatishReddy/easyToBuy/internal/order/repository/memory"
	"github.com/MaruthamSatishReddy/easyToBuy/internal/order/service"
	"github.com/MaruthamSatishReddy/easyToBuy/internal/order/service/mocks"
)

func TestPlaceOrder_Success(t *testing.T) {
	repo := memory.NewRepository()
	publisher := new(mocks.OrderEventPublisher)
	publisher.On("PublishOrderPlaced", mock.Anything, mock.MatchedBy(func(e service.OrderPlacedEvent) bool {
		return e.SkuCode == "iphone_15" && e.Quantity == 2 && e.Email == "buyer@example.com"
	})).Return(nil)

	svc := service.New(repo, publisher, zap.NewNop())

	order, err := svc.PlaceOrder(context.Background(), service.PlaceOrderRequest{
		SkuCode:  "iphone_15",
		Price:    999.99,
		Quantity: 2,
		Email:    "buyer@example.com",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, order.OrderNumber)
	assert.Equal(t, "iphone_15", order.SkuCode)
	assert.Equal(t, int32(2), order.Quantity)
	publisher.AssertExpectations(t)

	// заказ действительно сохранён
	saved, err := svc.GetOrder(context.Background(), order.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, order.ID, saved.ID)
}

func TestPlaceOrder_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     service.PlaceOrderRequest
		wantErr error
	}{
		{
			name:    "empty sku code",
			req:     service.PlaceOrderRequest{SkuCode: "", Price: 10, Quantity: 1, Email: "a@b.c"},
			wantErr: service.ErrInvalidSkuCode,
		},
		{
			name:    "zero quantity",
			req:     service.PlaceOrderRequest{SkuCode: "sku", Price: 10, Quantity: 0, Email: "a@b.c"},
			wantErr: service.ErrInvalidQuantity,
		},
		{
			name:    "negative quantity",
			req:     service.PlaceOrderRequest{SkuCode: "sku", Price: 10, Quantity: -5, Email: "a@b.c"},
			wantErr: service.ErrInvalidQuantity,
		},
		{
			name:    "negative price",
			req:     service.PlaceOrderRequest{SkuCode: "sku", Price: -1, Quantity: 1, Email: "a@b.c"},
			wantErr: service.ErrInvalidPrice,
		},
		{
			name:    "empty email",
			req:     service.PlaceOrderRequest{SkuCode: "sku", Price: 10, Quantity: 1},
			wantErr: service.ErrInvalidEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := memory.NewRepository()
			publisher := new(mocks.OrderEventPublisher)
			svc := service.New(repo, publisher, zap.NewNop())

			_, err := svc.PlaceOrder(context.Background(), tt.req)

			assert.ErrorIs(t, err, tt.wantErr)
			publisher.AssertNotCalled(t, "PublishOrderPlaced", mock.Anything, mock.Anything)
		})
	}
}

func TestPlaceOrder_PublishFailureDoesNotFailOrder(t *testing.T) {
	repo := memory.NewRepository()
	publisher := new(mocks.OrderEventPublisher)
	publisher.On("PublishOrderPlaced", mock.Anything, mock.Anything).
		Return(errors.New("kafka unavailable"))

	svc := service.New(repo, publisher, zap.NewNop())

	order, err := svc.PlaceOrder(context.Background(), service.PlaceOrderRequest{
		SkuCode:  "macbook_pro",
		Price:    2499,
		Quantity: 1,
		Email:    "buyer@example.com",
	})

	// заказ принят, потеря события не откатывает запись
	require.NoError(t, err)
	saved, err := svc.GetOrder(context.Background(), order.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, "macbook_pro", saved.SkuCode)
}

func TestListOrders(t *testing.T) {
	repo := memory.NewRepository()
	publisher := new(mocks.OrderEventPublisher)
	publisher.On("PublishOrderPlaced", mock.Anything, mock.Anything).Return(nil)

	svc := service.New(repo, publisher, zap.NewNop())

	for i := 0; i < 3; i++ {
		_, err := svc.PlaceOrder(context.Background(), service.PlaceOrderRequest{
			SkuCode:  "sku",
			Price:    10,
			Quantity: 1,
			Email:    "buyer@example.com",
		})
		require.NoError(t, err)
	}

	orders, err := svc.ListOrders(context.Background())
	require.NoError(t, err)
	assert.Len(t, orders, 3)
}

func TestGetOrder_NotFound(t *testing.T) {
	repo := memory.NewRepository()
	publisher := new(mocks.OrderEventPublisher)
	svc := service.New(repo, publisher, zap.NewNop())

	_, err := svc.GetOrder(context.Background(), "missing-number")

	assert.ErrorIs(t, err, service.ErrOrderNotFound)
}
