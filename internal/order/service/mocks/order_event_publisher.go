package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/MaruthamSatishReddy/easyToBuy/internal/order/service"
)

// OrderEventPublisher mock для service.OrderEventPublisher
type OrderEventPublisher struct {
	mock.Mock
}

// PublishOrderPlaced mock-реализация
func (m *OrderEventPublisher) PublishOrderPlaced(ctx context.Context, event service.OrderPlacedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
