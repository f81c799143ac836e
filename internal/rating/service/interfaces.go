package service

import "context"

//go:generate mockery --name RatingEventPublisher --output ./mocks --outpkg mocks

// Типы событий изменения рейтинга
const (
	EventTypeCreated = "CREATED"
	EventTypeUpdated = "UPDATED"
	EventTypeDeleted = "DELETED"
)

// RatingChangedEvent событие об изменении агрегата рейтинга товара
type RatingChangedEvent struct {
	// ProductID идентификатор товара (ключ партиционирования)
	ProductID string
	// AverageRating средняя оценка, округлённая до одного знака
	AverageRating float64
	// TotalRatings общее число оценок
	TotalRatings int64
	// EventType CREATED, UPDATED или DELETED
	EventType string
}

// RatingEventPublisher публикует события изменения рейтинга
type RatingEventPublisher interface {
	// PublishRatingChanged публикует событие RatingChanged
	PublishRatingChanged(ctx context.Context, event RatingChangedEvent) error
}
