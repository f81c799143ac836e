package repository

import (
	"context"
	"errors"
)

// Inventory складской остаток по артикулу
type Inventory struct {
	// SkuCode артикул товара, уникален в хранилище
	SkuCode string
	// Quantity остаток на складе. Может уходить в минус: списание не
	// ограничено нулём, отрицательный остаток сигнализирует oversell.
	Quantity int64
}

var (
	// ErrNotFound остаток по артикулу не найден
	ErrNotFound = errors.New("inventory not found")
)

// Repository интерфейс хранилища остатков
type Repository interface {
	// FindBySku возвращает остаток по артикулу
	FindBySku(ctx context.Context, skuCode string) (Inventory, error)
	// Save сохраняет остаток (upsert по артикулу)
	Save(ctx context.Context, inv Inventory) error
	// FindAll возвращает все остатки
	FindAll(ctx context.Context) ([]Inventory, error)
}
