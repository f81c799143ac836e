package repository

import (
	"context"
	"errors"
	"time"
)

// Rating оценка товара пользователем.
// Пара (ProductID, UserID) уникальна: один пользователь оценивает товар один раз.
type Rating struct {
	// ID суррогатный идентификатор
	ID int64
	// ProductID идентификатор товара
	ProductID string
	// UserID идентификатор автора
	UserID string
	// UserName отображаемое имя автора на момент создания оценки
	UserName string
	// Stars оценка от 1 до 5
	Stars int32
	// Comment текст отзыва, может быть пустым
	Comment string
	// HelpfulCount счётчик отметок "полезно"
	HelpfulCount int64
	// CreatedAt время создания
	CreatedAt time.Time
	// UpdatedAt время последнего изменения, nil до первого изменения
	UpdatedAt *time.Time
}

var (
	// ErrNotFound оценка не найдена
	ErrNotFound = errors.New("rating not found")
	// ErrAlreadyExists пользователь уже оценил этот товар
	ErrAlreadyExists = errors.New("rating already exists")
)

// Repository интерфейс хранилища оценок
type Repository interface {
	// Create сохраняет новую оценку. Возвращает ErrAlreadyExists,
	// если пара (product_id, user_id) уже занята.
	Create(ctx context.Context, rating Rating) (Rating, error)
	// Update обновляет stars, comment и updated_at существующей оценки
	Update(ctx context.Context, rating Rating) (Rating, error)
	// DeleteByID удаляет оценку
	DeleteByID(ctx context.Context, id int64) error
	// FindByID возвращает оценку по идентификатору
	FindByID(ctx context.Context, id int64) (Rating, error)
	// FindByProductAndUser возвращает оценку пользователя для товара
	FindByProductAndUser(ctx context.Context, productID, userID string) (Rating, error)
	// FindByProduct возвращает оценки товара от новых к старым
	FindByProduct(ctx context.Context, productID string) ([]Rating, error)
	// FindByUser возвращает оценки пользователя от новых к старым
	FindByUser(ctx context.Context, userID string) ([]Rating, error)
	// CountByProductAndStars возвращает число оценок товара с данным числом звёзд
	CountByProductAndStars(ctx context.Context, productID string, stars int32) (int64, error)
	// IncrementHelpful атомарно увеличивает счётчик "полезно" и возвращает оценку
	IncrementHelpful(ctx context.Context, id int64) (Rating, error)
}
