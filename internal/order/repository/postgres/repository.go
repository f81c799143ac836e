package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MaruthamSatishReddy/easyToBuy/internal/order/repository"
)

// Repository реализация хранилища заказов на PostgreSQL
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository создаёт репозиторий поверх пула соединений
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Save сохраняет заказ
func (r *Repository) Save(ctx context.Context, order repository.Order) (repository.Order, error) {
	const query = `
		INSERT INTO orders (order_number, sku_code, price, quantity, email, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := r.pool.QueryRow(ctx, query,
		order.OrderNumber,
		order.SkuCode,
		order.Price,
		order.Quantity,
		order.Email,
		order.CreatedAt,
	).Scan(&order.ID)
	if err != nil {
		return repository.Order{}, fmt.Errorf("insert order: %w", err)
	}
	return order, nil
}

// FindAll возвращает все заказы (от новых к старым)
func (r *Repository) FindAll(ctx context.Context) ([]repository.Order, error) {
	const query = `
		SELECT id, order_number, sku_code, price, quantity, email, created_at
		FROM orders
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	var orders []repository.Order
	for rows.Next() {
		var o repository.Order
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.SkuCode, &o.Price, &o.Quantity, &o.Email, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	return orders, nil
}

// FindByNumber возвращает заказ по номеру
func (r *Repository) FindByNumber(ctx context.Context, orderNumber string) (repository.Order, error) {
	const query = `
		SELECT id, order_number, sku_code, price, quantity, email, created_at
		FROM orders
		WHERE order_number = $1`

	var o repository.Order
	err := r.pool.QueryRow(ctx, query, orderNumber).
		Scan(&o.ID, &o.OrderNumber, &o.SkuCode, &o.Price, &o.Quantity, &o.Email, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.Order{}, repository.ErrNotFound
		}
		return repository.Order{}, fmt.Errorf("select order by number: %w", err)
	}
	return o, nil
}
