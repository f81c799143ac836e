package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MaruthamSatishReddy/easyToBuy/internal/product/repository"
	"github.com/MaruthamSatishReddy/easyToBuy/platform/observability"
)

// defaultAverageRating рейтинг нового товара до первых оценок
const defaultAverageRating = 4.5

var (
	// ErrInvalidName пустое название товара
	ErrInvalidName = errors.New("product name must not be empty")
	// ErrProductNotFound товар не найден
	ErrProductNotFound = errors.New("product not found")
)

// CreateProductRequest запрос на создание товара
type CreateProductRequest struct {
	Name        string
	Description string
	SkuCode     string
	Category    string
	Brand       string
	Price       float64
}

// RatingChangedEvent событие изменения рейтинга товара (входящее)
type RatingChangedEvent struct {
	ProductID     string
	AverageRating float64
	TotalRatings  int64
	EventType     string
}

// Service бизнес-логика каталога товаров
type Service struct {
	repo   repository.Repository
	logger *zap.Logger
}

// New создаёт сервис каталога
func New(repo repository.Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateProduct создаёт товар с дефолтным рейтингом
func (s *Service) CreateProduct(ctx context.Context, req CreateProductRequest) (repository.Product, error) {
	if req.Name == "" {
		return repository.Product{}, ErrInvalidName
	}

	product := repository.Product{
		ID:            uuid.New().String(),
		Name:          req.Name,
		Description:   req.Description,
		SkuCode:       req.SkuCode,
		Category:      req.Category,
		Brand:         req.Brand,
		Price:         req.Price,
		AverageRating: defaultAverageRating,
		TotalRatings:  0,
	}
	if err := s.repo.Save(ctx, product); err != nil {
		return repository.Product{}, fmt.Errorf("save product: %w", err)
	}

	observability.L(ctx, s.logger).Info("product created",
		zap.String("product_id", product.ID),
		zap.String("name", product.Name),
	)
	return product, nil
}

// GetProduct возвращает товар по идентификатору
func (s *Service) GetProduct(ctx context.Context, id string) (repository.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.Product{}, ErrProductNotFound
		}
		return repository.Product{}, fmt.Errorf("find product: %w", err)
	}
	return product, nil
}

// ListProducts возвращает все товары
func (s *Service) ListProducts(ctx context.Context) ([]repository.Product, error) {
	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("find all products: %w", err)
	}
	return products, nil
}

// ApplyRatingUpdate применяет событие RatingChanged к каталогу.
// Событие для отсутствующего товара логируется и отбрасывается:
// повторная доставка такому событию не поможет.
func (s *Service) ApplyRatingUpdate(ctx context.Context, event RatingChangedEvent) error {
	err := s.repo.UpdateRating(ctx, event.ProductID, event.AverageRating, event.TotalRatings)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			observability.L(ctx, s.logger).Warn("rating event for unknown product, discarded",
				zap.String("product_id", event.ProductID),
				zap.String("change_type", event.EventType),
			)
			return nil
		}
		return fmt.Errorf("update product rating: %w", err)
	}

	observability.L(ctx, s.logger).Info("product rating updated",
		zap.String("product_id", event.ProductID),
		zap.Float64("average_rating", event.AverageRating),
		zap.Int64("total_ratings", event.TotalRatings),
		zap.String("change_type", event.EventType),
	)
	return nil
}
