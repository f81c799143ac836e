package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/MaruthamSatishReddy/easyToBuy/internal/rating/repository"
)

// Repository in-memory реализация хранилища оценок.
// Один мьютекс сериализует все операции, поэтому гонка одновременных вставок
// одной пары (product_id, user_id) разрешается так же, как уникальным
// индексом в PostgreSQL: побеждает ровно одна.
type Repository struct {
	mu      sync.Mutex
	ratings map[int64]repository.Rating
	nextID  int64
}

// NewRepository создаёт пустое хранилище
func NewRepository() *Repository {
	return &Repository{
		ratings: make(map[int64]repository.Rating),
		nextID:  1,
	}
}

// Create сохраняет новую оценку
func (r *Repository) Create(_ context.Context, rating repository.Rating) (repository.Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.ratings {
		if existing.ProductID == rating.ProductID && existing.UserID == rating.UserID {
			return repository.Rating{}, repository.ErrAlreadyExists
		}
	}

	rating.ID = r.nextID
	r.nextID++
	r.ratings[rating.ID] = rating
	return rating, nil
}

// Update обновляет stars, comment и updated_at
func (r *Repository) Update(_ context.Context, rating repository.Rating) (repository.Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.ratings[rating.ID]
	if !ok {
		return repository.Rating{}, repository.ErrNotFound
	}
	existing.Stars = rating.Stars
	existing.Comment = rating.Comment
	existing.UpdatedAt = rating.UpdatedAt
	r.ratings[rating.ID] = existing
	return existing, nil
}

// DeleteByID удаляет оценку
func (r *Repository) DeleteByID(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.ratings[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.ratings, id)
	return nil
}

// FindByID возвращает оценку по идентификатору
func (r *Repository) FindByID(_ context.Context, id int64) (repository.Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rating, ok := r.ratings[id]
	if !ok {
		return repository.Rating{}, repository.ErrNotFound
	}
	return rating, nil
}

// FindByProductAndUser возвращает оценку пользователя для товара
func (r *Repository) FindByProductAndUser(_ context.Context, productID, userID string) (repository.Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rating := range r.ratings {
		if rating.ProductID == productID && rating.UserID == userID {
			return rating, nil
		}
	}
	return repository.Rating{}, repository.ErrNotFound
}

// FindByProduct возвращает оценки товара от новых к старым
func (r *Repository) FindByProduct(_ context.Context, productID string) ([]repository.Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []repository.Rating
	for _, rating := range r.ratings {
		if rating.ProductID == productID {
			out = append(out, rating)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

// FindByUser возвращает оценки пользователя от новых к старым
func (r *Repository) FindByUser(_ context.Context, userID string) ([]repository.Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []repository.Rating
	for _, rating := range r.ratings {
		if rating.UserID == userID {
			out = append(out, rating)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

// CountByProductAndStars возвращает число оценок товара с данным числом звёзд
func (r *Repository) CountByProductAndStars(_ context.Context, productID string, stars int32) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for _, rating := range r.ratings {
		if rating.ProductID == productID && rating.Stars == stars {
			count++
		}
	}
	return count, nil
}

// IncrementHelpful атомарно увеличивает счётчик "полезно"
func (r *Repository) IncrementHelpful(_ context.Context, id int64) (repository.Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rating, ok := r.ratings[id]
	if !ok {
		return repository.Rating{}, repository.ErrNotFound
	}
	rating.HelpfulCount++
	r.ratings[id] = rating
	return rating, nil
}

func sortNewestFirst(ratings []repository.Rating) {
	sort.Slice(ratings, func(i, j int) bool {
		if ratings[i].CreatedAt.Equal(ratings[j].CreatedAt) {
			return ratings[i].ID > ratings[j].ID
		}
		return ratings[i].CreatedAt.After(ratings[j].CreatedAt)
	})
}
