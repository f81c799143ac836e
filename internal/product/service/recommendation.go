package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/MaruthamSatishReddy/easyToBuy/internal/product/repository"
)

const (
	// defaultRecommendationLimit размер подборки по умолчанию
	defaultRecommendationLimit = 10
	// personalizedMinRating порог рейтинга для персональной подборки
	personalizedMinRating = 4.0
	// trendingMinRating порог рейтинга для трендовой подборки
	trendingMinRating = 3.5
)

// cacheEntry закешированная подборка с временем истечения
type cacheEntry struct {
	products  []repository.Product
	expiresAt time.Time
}

// RecommendationService подборки товаров: персональная, похожие, трендовые.
// Результаты мемоизируются с TTL: рейтинг меняется событиями, небольшое
// отставание подборки допустимо и экономит запросы к каталогу.
type RecommendationService struct {
	repo   repository.Repository
	logger *zap.Logger
	ttl    time.Duration

	mu    sync.Mutex
	cache map[string]cacheEntry
	now   func() time.Time
}

// NewRecommendationService создаёт сервис рекомендаций
func NewRecommendationService(repo repository.Repository, ttl time.Duration, logger *zap.Logger) *RecommendationService {
	return &RecommendationService{
		repo:   repo,
		logger: logger,
		ttl:    ttl,
		cache:  make(map[string]cacheEntry),
		now:    time.Now,
	}
}

// GetPersonalizedRecommendations возвращает подборку для пользователя:
// товары с рейтингом от 4.0, а если таких нет, случайную выборку каталога.
// limit <= 0 заменяется значением по умолчанию.
func (s *RecommendationService) GetPersonalizedRecommendations(ctx context.Context, userID string, limit int) ([]repository.Product, error) {
	limit = normalizeLimit(limit)

	return s.memoized(ctx, fmt.Sprintf("user:%s:%d", userID, limit), func(ctx context.Context) ([]repository.Product, error) {
		products, err := s.repo.FindTopRated(ctx, personalizedMinRating, limit)
		if err != nil {
			return nil, fmt.Errorf("find top rated products: %w", err)
		}
		if len(products) > 0 {
			return products, nil
		}

		// каталог без высоких оценок: отдаём случайную выборку, чтобы
		// подборка не была пустой
		all, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("find all products: %w", err)
		}
		rand.Shuffle(len(all), func(i, j int) { all[i], all[j] = all[j], all[i] })
		if len(all) > limit {
			all = all[:limit]
		}
		return all, nil
	})
}

// GetSimilarProducts возвращает товары той же категории, что и данный,
// дополняя подборку товарами того же бренда, когда категории не хватает
func (s *RecommendationService) GetSimilarProducts(ctx context.Context, productID string, limit int) ([]repository.Product, error) {
	limit = normalizeLimit(limit)

	return s.memoized(ctx, fmt.Sprintf("similar:%s:%d", productID, limit), func(ctx context.Context) ([]repository.Product, error) {
		product, err := s.repo.FindByID(ctx, productID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrProductNotFound
			}
			return nil, fmt.Errorf("find product: %w", err)
		}

		all, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("find all products: %w", err)
		}

		out := make([]repository.Product, 0, limit)
		for _, p := range all {
			if p.ID != product.ID && p.Category == product.Category {
				out = append(out, p)
			}
		}
		for _, p := range all {
			if len(out) >= limit {
				break
			}
			if p.ID != product.ID && p.Category != product.Category && p.Brand == product.Brand {
				out = append(out, p)
			}
		}
		if len(out) > limit {
			out = out[:limit]
		}
		return out, nil
	})
}

// GetTrendingProducts возвращает товары с рейтингом от 3.5
// по убыванию рейтинга
func (s *RecommendationService) GetTrendingProducts(ctx context.Context, limit int) ([]repository.Product, error) {
	limit = normalizeLimit(limit)

	return s.memoized(ctx, fmt.Sprintf("trending:%d", limit), func(ctx context.Context) ([]repository.Product, error) {
		products, err := s.repo.FindTopRated(ctx, trendingMinRating, limit)
		if err != nil {
			return nil, fmt.Errorf("find trending products: %w", err)
		}
		return products, nil
	})
}

// Invalidate сбрасывает кеш подборок
func (s *RecommendationService) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]cacheEntry)
}

// memoized возвращает живую запись кеша по ключу или вычисляет и кеширует новую
func (s *RecommendationService) memoized(ctx context.Context, key string, compute func(context.Context) ([]repository.Product, error)) ([]repository.Product, error) {
	s.mu.Lock()
	entry, ok := s.cache[key]
	if ok && s.now().Before(entry.expiresAt) {
		products := entry.products
		s.mu.Unlock()
		return products, nil
	}
	s.mu.Unlock()

	products, err := compute(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cache[key] = cacheEntry{products: products, expiresAt: s.now().Add(s.ttl)}
	s.mu.Unlock()

	s.logger.Debug("recommendation cache refreshed", zap.String("key", key))
	return products, nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultRecommendationLimit
	}
	return limit
}
