package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/MaruthamSatishReddy/easyToBuy/internal/product/repository"
)

// Repository in-memory реализация хранилища товаров
type Repository struct {
	mu       sync.RWMutex
	products map[string]repository.Product
}

// NewRepository создаёт пустое хранилище
func NewRepository() *Repository {
	return &Repository{products: make(map[string]repository.Product)}
}

// FindByID возвращает товар по идентификатору
func (r *Repository) FindByID(_ context.Context, id string) (repository.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return repository.Product{}, repository.ErrNotFound
	}
	return product, nil
}

// Save сохраняет товар
func (r *Repository) Save(_ context.Context, product repository.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products[product.ID] = product
	return nil
}

// FindAll возвращает все товары, отсортированные по идентификатору
func (r *Repository) FindAll(_ context.Context) ([]repository.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]repository.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// FindTopRated возвращает товары с рейтингом не ниже minRating
func (r *Repository) FindTopRated(_ context.Context, minRating float64, limit int) ([]repository.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]repository.Product, 0, len(r.products))
	for _, p := range r.products {
		if p.AverageRating >= minRating {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AverageRating == out[j].AverageRating {
			return out[i].TotalRatings > out[j].TotalRatings
		}
		return out[i].AverageRating > out[j].AverageRating
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// UpdateRating обновляет денормализованный рейтинг товара
func (r *Repository) UpdateRating(_ context.Context, productID string, averageRating float64, totalRatings int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[productID]
	if !ok {
		return repository.ErrNotFound
	}
	product.AverageRating = averageRating
	product.TotalRatings = totalRatings
	r.products[productID] = product
	return nil
}
