package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MaruthamSatishReddy/easyToBuy/internal/rating/repository"
)

// код ошибки unique_violation в PostgreSQL
const uniqueViolationCode = "23505"

// Repository реализация хранилища оценок на PostgreSQL
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository создаёт репозиторий поверх пула соединений
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const ratingColumns = `id, product_id, user_id, user_name, stars, comment, helpful_count, created_at, updated_at`

func scanRating(row pgx.Row) (repository.Rating, error) {
	var r repository.Rating
	err := row.Scan(&r.ID, &r.ProductID, &r.UserID, &r.UserName, &r.Stars, &r.Comment, &r.HelpfulCount, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}

// Create сохраняет новую оценку.
// Гонку двух одновременных вставок закрывает уникальный индекс (product_id, user_id):
// проигравшая транзакция получает unique_violation и ErrAlreadyExists.
func (r *Repository) Create(ctx context.Context, rating repository.Rating) (repository.Rating, error) {
	const query = `
		INSERT INTO ratings (product_id, user_id, user_name, stars, comment, helpful_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + ratingColumns

	saved, err := scanRating(r.pool.QueryRow(ctx, query,
		rating.ProductID,
		rating.UserID,
		rating.UserName,
		rating.Stars,
		rating.Comment,
		rating.HelpfulCount,
		rating.CreatedAt,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return repository.Rating{}, repository.ErrAlreadyExists
		}
		return repository.Rating{}, fmt.Errorf("insert rating: %w", err)
	}
	return saved, nil
}

// Update обновляет stars, comment и updated_at
func (r *Repository) Update(ctx context.Context, rating repository.Rating) (repository.Rating, error) {
	const query = `
		UPDATE ratings
		SET stars = $2, comment = $3, updated_at = $4
		WHERE id = $1
		RETURNING ` + ratingColumns

	updated, err := scanRating(r.pool.QueryRow(ctx, query,
		rating.ID,
		rating.Stars,
		rating.Comment,
		rating.UpdatedAt,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.Rating{}, repository.ErrNotFound
		}
		return repository.Rating{}, fmt.Errorf("update rating: %w", err)
	}
	return updated, nil
}

// DeleteByID удаляет оценку
func (r *Repository) DeleteByID(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM ratings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete rating: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// FindByID возвращает оценку по идентификатору
func (r *Repository) FindByID(ctx context.Context, id int64) (repository.Rating, error) {
	const query = `SELECT ` + ratingColumns + ` FROM ratings WHERE id = $1`

	rating, err := scanRating(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.Rating{}, repository.ErrNotFound
		}
		return repository.Rating{}, fmt.Errorf("select rating by id: %w", err)
	}
	return rating, nil
}

// FindByProductAndUser возвращает оценку пользователя для товара
func (r *Repository) FindByProductAndUser(ctx context.Context, productID, userID string) (repository.Rating, error) {
	const query = `SELECT ` + ratingColumns + ` FROM ratings WHERE product_id = $1 AND user_id = $2`

	rating, err := scanRating(r.pool.QueryRow(ctx, query, productID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.Rating{}, repository.ErrNotFound
		}
		return repository.Rating{}, fmt.Errorf("select rating by product and user: %w", err)
	}
	return rating, nil
}

// FindByProduct возвращает оценки товара от новых к старым
func (r *Repository) FindByProduct(ctx context.Context, productID string) ([]repository.Rating, error) {
	const query = `SELECT ` + ratingColumns + ` FROM ratings WHERE product_id = $1 ORDER BY created_at DESC`
	return r.queryRatings(ctx, query, productID)
}

// FindByUser возвращает оценки пользователя от новых к старым
func (r *Repository) FindByUser(ctx context.Context, userID string) ([]repository.Rating, error) {
	const query = `SELECT ` + ratingColumns + ` FROM ratings WHERE user_id = $1 ORDER BY created_at DESC`
	return r.queryRatings(ctx, query, userID)
}

// CountByProductAndStars возвращает число оценок товара с данным числом звёзд
func (r *Repository) CountByProductAndStars(ctx context.Context, productID string, stars int32) (int64, error) {
	const query = `SELECT COUNT(*) FROM ratings WHERE product_id = $1 AND stars = $2`

	var count int64
	if err := r.pool.QueryRow(ctx, query, productID, stars).Scan(&count); err != nil {
		return 0, fmt.Errorf("count ratings: %w", err)
	}
	return count, nil
}

// IncrementHelpful атомарно увеличивает счётчик "полезно".
// Одиночный UPDATE сериализуется базой: параллельные отметки не теряются.
func (r *Repository) IncrementHelpful(ctx context.Context, id int64) (repository.Rating, error) {
	const query = `
		UPDATE ratings
		SET helpful_count = helpful_count + 1
		WHERE id = $1
		RETURNING ` + ratingColumns

	rating, err := scanRating(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.Rating{}, repository.ErrNotFound
		}
		return repository.Rating{}, fmt.Errorf("increment helpful count: %w", err)
	}
	return rating, nil
}

func (r *Repository) queryRatings(ctx context.Context, query string, args ...any) ([]repository.Rating, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select ratings: %w", err)
	}
	defer rows.Close()

	var out []repository.Rating
	for rows.Next() {
		var rating repository.Rating
		if err := rows.Scan(&rating.ID, &rating.ProductID, &rating.UserID, &rating.UserName, &rating.Stars,
			&rating.Comment, &rating.HelpfulCount, &rating.CreatedAt, &rating.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		out = append(out, rating)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ratings: %w", err)
	}
	return out, nil
}
