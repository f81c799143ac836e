package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/MaruthamSatishReddy/easyToBuy/internal/inventory/repository"
)

// Repository in-memory реализация хранилища остатков
type Repository struct {
	mu    sync.RWMutex
	items map[string]int64
}

// NewRepository создаёт пустое хранилище
func NewRepository() *Repository {
	return &Repository{items: make(map[string]int64)}
}

// FindBySku возвращает остаток по артикулу
func (r *Repository) FindBySku(_ context.Context, skuCode string) (repository.Inventory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	qty, ok := r.items[skuCode]
	if !ok {
		return repository.Inventory{}, repository.ErrNotFound
	}
	return repository.Inventory{SkuCode: skuCode, Quantity: qty}, nil
}

// Save сохраняет остаток
func (r *Repository) Save(_ context.Context, inv repository.Inventory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[inv.SkuCode] = inv.Quantity
	return nil
}

// FindAll возвращает все остатки, отсортированные по артикулу
func (r *Repository) FindAll(_ context.Context) ([]repository.Inventory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]repository.Inventory, 0, len(r.items))
	for sku, qty := range r.items {
		out = append(out, repository.Inventory{SkuCode: sku, Quantity: qty})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SkuCode < out[j].SkuCode })
	return out, nil
}
