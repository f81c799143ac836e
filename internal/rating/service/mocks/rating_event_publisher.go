package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/MaruthamSatishReddy/easyToBuy/internal/rating/service"
)

// RatingEventPublisher mock для service.RatingEventPublisher
type RatingEventPublisher struct {
	mock.Mock
}

// PublishRatingChanged mock-реализация
func (m *RatingEventPublisher) PublishRatingChanged(ctx context.Context, event service.RatingChangedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
