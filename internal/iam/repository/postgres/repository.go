package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MaruthamSatishReddy/easyToBuy/internal/iam/repository"
)

// код ошибки unique_violation в PostgreSQL
const uniqueViolationCode = "23505"

// Repository реализация хранилища пользователей на PostgreSQL
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository создаёт репозиторий поверх пула соединений
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create сохраняет нового пользователя
func (r *Repository) Create(ctx context.Context, user repository.User) (repository.User, error) {
	const query = `
		INSERT INTO users (email, password_hash, created_at)
		VALUES ($1, $2, $3)
		RETURNING id`

	err := r.pool.QueryRow(ctx, query, user.Email, user.PasswordHash, user.CreatedAt).Scan(&user.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return repository.User{}, repository.ErrAlreadyExists
		}
		return repository.User{}, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

// FindByEmail возвращает пользователя по email
func (r *Repository) FindByEmail(ctx context.Context, email string) (repository.User, error) {
	const query = `SELECT id, email, password_hash, created_at FROM users WHERE email = $1`

	var u repository.User
	err := r.pool.QueryRow(ctx, query, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.User{}, repository.ErrNotFound
		}
		return repository.User{}, fmt.Errorf("select user by email: %w", err)
	}
	return u, nil
}

// FindByID возвращает пользователя по идентификатору
func (r *Repository) FindByID(ctx context.Context, id int64) (repository.User, error) {
	const query = `SELECT id, email, password_hash, created_at FROM users WHERE id = $1`

	var u repository.User
	err := r.pool.QueryRow(ctx, query, id).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.User{}, repository.ErrNotFound
		}
		return repository.User{}, fmt.Errorf("select user by id: %w", err)
	}
	return u, nil
}
