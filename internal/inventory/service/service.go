package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/MaruthamSatishReddy/easyToBuy/internal/inventory/repository"
	"github.com/MaruthamSatishReddy/easyToBuy/platform/observability"
)

var (
	// ErrSkuNotFound остаток по артикулу не заведён
	ErrSkuNotFound = errors.New("sku not found in inventory")
)

// OrderPlacedEvent событие оформления заказа (входящее)
type OrderPlacedEvent struct {
	OrderNumber string
	SkuCode     string
	Quantity    int64
}

// Service бизнес-логика сервиса остатков
type Service struct {
	repo   repository.Repository
	logger *zap.Logger
}

// New создаёт сервис остатков
func New(repo repository.Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// HandleOrderPlaced списывает остаток по событию OrderPlaced.
// Чтение-изменение-запись без блокировки безопасно: события одного артикула
// идут через одну партицию и обрабатываются последовательно.
// Остаток не ограничен нулём: отрицательное значение фиксирует oversell.
func (s *Service) HandleOrderPlaced(ctx context.Context, event OrderPlacedEvent) error {
	inv, err := s.repo.FindBySku(ctx, event.SkuCode)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrSkuNotFound, event.SkuCode)
		}
		return fmt.Errorf("find inventory: %w", err)
	}

	inv.Quantity -= event.Quantity
	if err := s.repo.Save(ctx, inv); err != nil {
		return fmt.Errorf("save inventory: %w", err)
	}

	logger := observability.L(ctx, s.logger)
	logger.Info("inventory decremented",
		zap.String("order_number", event.OrderNumber),
		zap.String("sku_code", event.SkuCode),
		zap.Int64("decrement", event.Quantity),
		zap.Int64("remaining", inv.Quantity),
	)
	if inv.Quantity < 0 {
		logger.Warn("inventory went negative",
			zap.String("sku_code", event.SkuCode),
			zap.Int64("remaining", inv.Quantity),
		)
	}
	return nil
}

// IsInStock проверяет, хватает ли остатка по артикулу на указанное количество.
// Незаведённый артикул считается отсутствующим на складе.
func (s *Service) IsInStock(ctx context.Context, skuCode string, quantity int64) (bool, error) {
	inv, err := s.repo.FindBySku(ctx, skuCode)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("find inventory: %w", err)
	}
	return inv.Quantity >= quantity, nil
}

// SetStock устанавливает остаток по артикулу (админ-операция)
func (s *Service) SetStock(ctx context.Context, skuCode string, quantity int64) error {
	if skuCode == "" {
		return errors.New("sku code must not be empty")
	}
	if err := s.repo.Save(ctx, repository.Inventory{SkuCode: skuCode, Quantity: quantity}); err != nil {
		return fmt.Errorf("save inventory: %w", err)
	}
	return nil
}

// ListStock возвращает все остатки
func (s *Service) ListStock(ctx context.Context) ([]repository.Inventory, error) {
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("find all inventory: %w", err)
	}
	return items, nil
}
