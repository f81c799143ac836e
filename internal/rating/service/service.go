package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/MaruthamSatishReddy/easyToBuy/internal/rating/repository"
	"github.com/MaruthamSatishReddy/easyToBuy/platform/observability"
)

var (
	// ErrInvalidStars оценка вне диапазона 1..5
	ErrInvalidStars = errors.New("stars must be between 1 and 5")
	// ErrInvalidProductID пустой идентификатор товара
	ErrInvalidProductID = errors.New("product id must not be empty")
	// ErrInvalidUserID пустой идентификатор пользователя
	ErrInvalidUserID = errors.New("user id must not be empty")
	// ErrAlreadyRated пользователь уже оценил этот товар
	ErrAlreadyRated = errors.New("user has already rated this product")
	// ErrRatingNotFound оценка не найдена
	ErrRatingNotFound = errors.New("rating not found")
	// ErrForbidden оценка принадлежит другому пользователю
	ErrForbidden = errors.New("rating belongs to another user")
)

// CreateRatingRequest запрос на создание оценки
type CreateRatingRequest struct {
	ProductID string
	UserID    string
	UserName  string
	Stars     int32
	Comment   string
}

// UpdateRatingRequest запрос на изменение оценки
type UpdateRatingRequest struct {
	RatingID int64
	UserID   string
	Stars    int32
	Comment  string
}

// AverageRating агрегат рейтинга товара
type AverageRating struct {
	// ProductID идентификатор товара
	ProductID string
	// Average средняя оценка с округлением до одного знака; 0.0 без оценок
	Average float64
	// Total общее число оценок
	Total int64
	// Histogram число оценок по каждому значению звёзд, индексы 1..5
	Histogram map[int32]int64
}

// Service бизнес-логика сервиса оценок
type Service struct {
	repo      repository.Repository
	publisher RatingEventPublisher
	logger    *zap.Logger
}

// New создаёт сервис оценок
func New(repo repository.Repository, publisher RatingEventPublisher, logger *zap.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateRating создаёт оценку товара.
// Предварительная проверка дубликата даёт понятную ошибку в обычном случае,
// гонку одновременных вставок закрывает уникальный ключ хранилища.
func (s *Service) CreateRating(ctx context.Context, req CreateRatingRequest) (repository.Rating, error) {
	if err := validate(req.ProductID, req.UserID, req.Stars); err != nil {
		return repository.Rating{}, err
	}

	_, err := s.repo.FindByProductAndUser(ctx, req.ProductID, req.UserID)
	if err == nil {
		return repository.Rating{}, ErrAlreadyRated
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return repository.Rating{}, fmt.Errorf("check existing rating: %w", err)
	}

	// UpdatedAt остаётся nil до первого изменения
	saved, err := s.repo.Create(ctx, repository.Rating{
		ProductID: req.ProductID,
		UserID:    req.UserID,
		UserName:  req.UserName,
		Stars:     req.Stars,
		Comment:   req.Comment,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return repository.Rating{}, ErrAlreadyRated
		}
		return repository.Rating{}, fmt.Errorf("create rating: %w", err)
	}

	s.publishRatingChanged(ctx, req.ProductID, EventTypeCreated)
	return saved, nil
}

// UpdateRating изменяет оценку. Менять чужую оценку нельзя.
func (s *Service) UpdateRating(ctx context.Context, req UpdateRatingRequest) (repository.Rating, error) {
	if req.Stars < 1 || req.Stars > 5 {
		return repository.Rating{}, ErrInvalidStars
	}
	if req.UserID == "" {
		return repository.Rating{}, ErrInvalidUserID
	}

	existing, err := s.repo.FindByID(ctx, req.RatingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.Rating{}, ErrRatingNotFound
		}
		return repository.Rating{}, fmt.Errorf("find rating: %w", err)
	}
	if existing.UserID != req.UserID {
		return repository.Rating{}, ErrForbidden
	}

	now := time.Now().UTC()
	existing.Stars = req.Stars
	existing.Comment = req.Comment
	existing.UpdatedAt = &now

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.Rating{}, ErrRatingNotFound
		}
		return repository.Rating{}, fmt.Errorf("update rating: %w", err)
	}

	s.publishRatingChanged(ctx, updated.ProductID, EventTypeUpdated)
	return updated, nil
}

// DeleteRating удаляет оценку. Удалять чужую оценку нельзя.
func (s *Service) DeleteRating(ctx context.Context, ratingID int64, userID string) error {
	if userID == "" {
		return ErrInvalidUserID
	}

	existing, err := s.repo.FindByID(ctx, ratingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRatingNotFound
		}
		return fmt.Errorf("find rating: %w", err)
	}
	if existing.UserID != userID {
		return ErrForbidden
	}

	if err := s.repo.DeleteByID(ctx, ratingID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRatingNotFound
		}
		return fmt.Errorf("delete rating: %w", err)
	}

	s.publishRatingChanged(ctx, existing.ProductID, EventTypeDeleted)
	return nil
}

// GetRating возвращает оценку по идентификатору
func (s *Service) GetRating(ctx context.Context, ratingID int64) (repository.Rating, error) {
	rating, err := s.repo.FindByID(ctx, ratingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.Rating{}, ErrRatingNotFound
		}
		return repository.Rating{}, fmt.Errorf("find rating: %w", err)
	}
	return rating, nil
}

// GetProductRatings возвращает оценки товара от новых к старым
func (s *Service) GetProductRatings(ctx context.Context, productID string) ([]repository.Rating, error) {
	ratings, err := s.repo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("find ratings by product: %w", err)
	}
	return ratings, nil
}

// GetUserRatings возвращает оценки пользователя от новых к старым
func (s *Service) GetUserRatings(ctx context.Context, userID string) ([]repository.Rating, error) {
	ratings, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find ratings by user: %w", err)
	}
	return ratings, nil
}

// GetAverageRating возвращает агрегат рейтинга товара.
// Товар без оценок отдаёт нулевой агрегат, а не ошибку.
func (s *Service) GetAverageRating(ctx context.Context, productID string) (AverageRating, error) {
	ratings, err := s.repo.FindByProduct(ctx, productID)
	if err != nil {
		return AverageRating{}, fmt.Errorf("find ratings by product: %w", err)
	}

	result := AverageRating{
		ProductID: productID,
		Histogram: map[int32]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}
	if len(ratings) == 0 {
		return result, nil
	}

	var sum int64
	for _, r := range ratings {
		sum += int64(r.Stars)
	}
	result.Total = int64(len(ratings))
	result.Average = roundToTenth(float64(sum) / float64(len(ratings)))

	for stars := int32(1); stars <= 5; stars++ {
		count, err := s.repo.CountByProductAndStars(ctx, productID, stars)
		if err != nil {
			return AverageRating{}, fmt.Errorf("count ratings by stars: %w", err)
		}
		result.Histogram[stars] = count
	}
	return result, nil
}

// MarkHelpful увеличивает счётчик "полезно". Отметка доступна любому
// пользователю и не порождает событие изменения рейтинга.
func (s *Service) MarkHelpful(ctx context.Context, ratingID int64) (repository.Rating, error) {
	rating, err := s.repo.IncrementHelpful(ctx, ratingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.Rating{}, ErrRatingNotFound
		}
		return repository.Rating{}, fmt.Errorf("increment helpful count: %w", err)
	}
	return rating, nil
}

// publishRatingChanged пересчитывает агрегат и публикует событие.
// Ошибки публикации и пересчёта не возвращаются наверх: операция с оценкой
// уже завершена, потерянное событие только логируется.
func (s *Service) publishRatingChanged(ctx context.Context, productID, eventType string) {
	logger := observability.L(ctx, s.logger).With(
		zap.String("product_id", productID),
		zap.String("event_type", eventType),
	)

	agg, err := s.GetAverageRating(ctx, productID)
	if err != nil {
		logger.Error("failed to compute rating aggregate for event", zap.Error(err))
		return
	}

	err = s.publisher.PublishRatingChanged(ctx, RatingChangedEvent{
		ProductID:     productID,
		AverageRating: agg.Average,
		TotalRatings:  agg.Total,
		EventType:     eventType,
	})
	if err != nil {
		logger.Error("failed to publish RatingChanged event", zap.Error(err))
		return
	}

	logger.Debug("RatingChanged event published",
		zap.Float64("average_rating", agg.Average),
		zap.Int64("total_ratings", agg.Total),
	)
}

// roundToTenth округляет до одного знака после запятой, 0.5 вверх
func roundToTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

func validate(productID, userID string, stars int32) error {
	if productID == "" {
		return ErrInvalidProductID
	}
	if userID == "" {
		return ErrInvalidUserID
	}
	if stars < 1 || stars > 5 {
		return ErrInvalidStars
	}
	return nil
}
