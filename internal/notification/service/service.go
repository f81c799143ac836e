package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/MaruthamSatishReddy/easyToBuy/internal/notification/email"
	"github.com/MaruthamSatishReddy/easyToBuy/internal/notification/templates"
	"github.com/MaruthamSatishReddy/easyToBuy/platform/observability"
)

// OrderPlacedEvent событие оформления заказа (входящее)
type OrderPlacedEvent struct {
	OrderNumber string
	SkuCode     string
	Price       float64
	Quantity    int64
	Email       string
}

// Service отправка уведомлений покупателям
type Service struct {
	sender   email.Sender
	renderer *templates.Renderer
	logger   *zap.Logger
}

// New создаёт сервис уведомлений
func New(sender email.Sender, renderer *templates.Renderer, logger *zap.Logger) *Service {
	return &Service{sender: sender, renderer: renderer, logger: logger}
}

// HandleOrderPlaced отправляет письмо о новом заказе.
// Уведомление best-effort: одна попытка, ошибка логируется и не возвращается
// наверх, чтобы не блокировать поток событий из-за недоступной почты.
func (s *Service) HandleOrderPlaced(ctx context.Context, event OrderPlacedEvent) error {
	logger := observability.L(ctx, s.logger).With(
		zap.String("order_number", event.OrderNumber),
	)

	if event.Email == "" {
		logger.Warn("order event without email, notification skipped")
		return nil
	}

	body, err := s.renderer.OrderPlaced(templates.OrderPlacedData{
		OrderNumber: event.OrderNumber,
		SkuCode:     event.SkuCode,
		Quantity:    event.Quantity,
		Price:       event.Price,
	})
	if err != nil {
		logger.Error("failed to render notification", zap.Error(err))
		return nil
	}

	subject := fmt.Sprintf("Заказ %s оформлен", event.OrderNumber)
	if err := s.sender.Send(ctx, event.Email, subject, body); err != nil {
		logger.Error("failed to send notification", zap.Error(err))
		return nil
	}

	logger.Info("order notification sent", zap.String("email", event.Email))
	return nil
}
