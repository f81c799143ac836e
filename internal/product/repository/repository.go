package repository

import (
	"context"
	"errors"
)

// Product товар каталога с денормализованным рейтингом.
// AverageRating и TotalRatings обновляются по событиям RatingChanged.
type Product struct {
	// ID идентификатор товара
	ID string
	// Name название
	Name string
	// Description описание
	Description string
	// SkuCode артикул для связи со складом
	SkuCode string
	// Category категория товара
	Category string
	// Brand бренд
	Brand string
	// Price цена
	Price float64
	// AverageRating средняя оценка, округлённая до одного знака
	AverageRating float64
	// TotalRatings общее число оценок
	TotalRatings int64
}

var (
	// ErrNotFound товар не найден
	ErrNotFound = errors.New("product not found")
)

// Repository интерфейс хранилища товаров
type Repository interface {
	// FindByID возвращает товар по идентификатору
	FindByID(ctx context.Context, id string) (Product, error)
	// Save сохраняет товар (upsert по идентификатору)
	Save(ctx context.Context, product Product) error
	// FindAll возвращает все товары
	FindAll(ctx context.Context) ([]Product, error)
	// FindTopRated возвращает товары с рейтингом не ниже minRating,
	// отсортированные по рейтингу по убыванию
	FindTopRated(ctx context.Context, minRating float64, limit int) ([]Product, error)
	// UpdateRating обновляет денормализованный рейтинг товара
	UpdateRating(ctx context.Context, productID string, averageRating float64, totalRatings int64) error
}
