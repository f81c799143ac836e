package repository

import (
	"context"
	"errors"
	"time"
)

// Order заказ в хранилище сервиса заказов
type Order struct {
	// ID суррогатный идентификатор записи
	ID int64
	// OrderNumber уникальный номер заказа (uuid), генерируется при оформлении
	OrderNumber string
	// SkuCode артикул товара
	SkuCode string
	// Price цена за единицу
	Price float64
	// Quantity количество единиц
	Quantity int32
	// Email адрес покупателя для уведомления
	Email string
	// CreatedAt время оформления
	CreatedAt time.Time
}

var (
	// ErrNotFound заказ не найден
	ErrNotFound = errors.New("order not found")
)

// Repository интерфейс хранилища заказов
type Repository interface {
	// Save сохраняет новый заказ и возвращает его с заполненным ID
	Save(ctx context.Context, order Order) (Order, error)
	// FindAll возвращает все заказы
	FindAll(ctx context.Context) ([]Order, error)
	// FindByNumber возвращает заказ по номеру
	FindByNumber(ctx context.Context, orderNumber string) (Order, error)
}
