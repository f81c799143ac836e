package service

import (
	"context"
	"time"
)

//go:generate mockery --name OrderEventPublisher --output ./mocks --outpkg mocks

// OrderPlacedEvent событие об оформленном заказе для продюсера
type OrderPlacedEvent struct {
	// OrderNumber номер заказа
	OrderNumber string
	// SkuCode артикул товара (ключ партиционирования)
	SkuCode string
	// Price цена за единицу
	Price float64
	// Quantity количество единиц
	Quantity int32
	// Email адрес покупателя для уведомления
	Email string
	// OccurredAt время оформления заказа
	OccurredAt time.Time
}

// OrderEventPublisher публикует события заказов в канал событий
type OrderEventPublisher interface {
	// PublishOrderPlaced публикует событие OrderPlaced
	PublishOrderPlaced(ctx context.Context, event OrderPlacedEvent) error
}
