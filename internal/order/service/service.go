package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MaruthamSatishReddy/easyToBuy/internal/order/repository"
	"github.com/MaruthamSatishReddy/easyToBuy/platform/observability"
)

var (
	// ErrInvalidSkuCode пустой артикул
	ErrInvalidSkuCode = errors.New("sku code must not be empty")
	// ErrInvalidQuantity количество должно быть положительным
	ErrInvalidQuantity = errors.New("quantity must be positive")
	// ErrInvalidPrice цена не может быть отрицательной
	ErrInvalidPrice = errors.New("price must not be negative")
	// ErrInvalidEmail пустой адрес покупателя
	ErrInvalidEmail = errors.New("email must not be empty")
	// ErrOrderNotFound заказ не найден
	ErrOrderNotFound = errors.New("order not found")
)

// PlaceOrderRequest запрос на оформление заказа
type PlaceOrderRequest struct {
	SkuCode  string
	Price    float64
	Quantity int32
	Email    string
}

// Service бизнес-логика сервиса заказов
type Service struct {
	repo      repository.Repository
	publisher OrderEventPublisher
	logger    *zap.Logger
}

// New создаёт сервис заказов
func New(repo repository.Repository, publisher OrderEventPublisher, logger *zap.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// PlaceOrder оформляет заказ: генерирует номер, сохраняет, публикует OrderPlaced.
// Ошибка публикации не откатывает заказ: заказ уже принят, событие логируется как потерянное.
func (s *Service) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (repository.Order, error) {
	if req.SkuCode == "" {
		return repository.Order{}, ErrInvalidSkuCode
	}
	if req.Quantity <= 0 {
		return repository.Order{}, ErrInvalidQuantity
	}
	if req.Price < 0 {
		return repository.Order{}, ErrInvalidPrice
	}
	if req.Email == "" {
		return repository.Order{}, ErrInvalidEmail
	}

	order := repository.Order{
		OrderNumber: uuid.New().String(),
		SkuCode:     req.SkuCode,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Email:       req.Email,
		CreatedAt:   time.Now().UTC(),
	}

	saved, err := s.repo.Save(ctx, order)
	if err != nil {
		return repository.Order{}, fmt.Errorf("save order: %w", err)
	}

	event := OrderPlacedEvent{
		OrderNumber: saved.OrderNumber,
		SkuCode:     saved.SkuCode,
		Price:       saved.Price,
		Quantity:    saved.Quantity,
		Email:       saved.Email,
		OccurredAt:  saved.CreatedAt,
	}
	if err := s.publisher.PublishOrderPlaced(ctx, event); err != nil {
		observability.L(ctx, s.logger).Error("failed to publish OrderPlaced event",
			zap.String("order_number", saved.OrderNumber),
			zap.String("sku_code", saved.SkuCode),
			zap.Error(err),
		)
	} else {
		observability.L(ctx, s.logger).Info("order placed",
			zap.String("order_number", saved.OrderNumber),
			zap.String("sku_code", saved.SkuCode),
			zap.Int32("quantity", saved.Quantity),
		)
	}

	return saved, nil
}

// ListOrders возвращает все заказы
func (s *Service) ListOrders(ctx context.Context) ([]repository.Order, error) {
	orders, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("find all orders: %w", err)
	}
	return orders, nil
}

// GetOrder возвращает заказ по номеру
func (s *Service) GetOrder(ctx context.Context, orderNumber string) (repository.Order, error) {
	order, err := s.repo.FindByNumber(ctx, orderNumber)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.Order{}, ErrOrderNotFound
		}
		return repository.Order{}, fmt.Errorf("find order by number: %w", err)
	}
	return order, nil
}
