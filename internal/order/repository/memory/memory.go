package memory

import (
	"context"
	"sync"

	"github.com/MaruthamSatishReddy/easyToBuy/internal/order/repository"
)

// Repository in-memory реализация хранилища заказов (для тестов и локальной разработки)
type Repository struct {
	mu     sync.RWMutex
	orders []repository.Order
	nextID int64
}

// NewRepository создаёт пустое in-memory хранилище
func NewRepository() *Repository {
	return &Repository{nextID: 1}
}

// Save сохраняет заказ
func (r *Repository) Save(_ context.Context, order repository.Order) (repository.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order.ID = r.nextID
	r.nextID++
	r.orders = append(r.orders, order)
	return order, nil
}

// FindAll возвращает все заказы (от новых к старым)
func (r *Repository) FindAll(_ context.Context) ([]repository.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]repository.Order, 0, len(r.orders))
	for i := len(r.orders) - 1; i >= 0; i-- {
		out = append(out, r.orders[i])
	}
	return out, nil
}

// FindByNumber возвращает заказ по номеру
func (r *Repository) FindByNumber(_ context.Context, orderNumber string) (repository.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, o := range r.orders {
		if o.OrderNumber == orderNumber {
			return o, nil
		}
	}
	return repository.Order{}, repository.ErrNotFound
}
