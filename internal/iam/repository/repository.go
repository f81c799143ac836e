package repository

import (
	"context"
	"errors"
	"time"
)

// User учётная запись пользователя
type User struct {
	// ID суррогатный идентификатор
	ID int64
	// Email адрес, уникален
	Email string
	// PasswordHash bcrypt-хеш пароля
	PasswordHash string
	// CreatedAt время регистрации
	CreatedAt time.Time
}

var (
	// ErrNotFound пользователь не найден
	ErrNotFound = errors.New("user not found")
	// ErrAlreadyExists email уже занят
	ErrAlreadyExists = errors.New("user already exists")
	// ErrSessionNotFound сессия не найдена или истекла
	ErrSessionNotFound = errors.New("session not found")
)

// UserRepository интерфейс хранилища пользователей
type UserRepository interface {
	// Create сохраняет нового пользователя. Возвращает ErrAlreadyExists,
	// если email уже занят.
	Create(ctx context.Context, user User) (User, error)
	// FindByEmail возвращает пользователя по email
	FindByEmail(ctx context.Context, email string) (User, error)
	// FindByID возвращает пользователя по идентификатору
	FindByID(ctx context.Context, id int64) (User, error)
}

// SessionRepository интерфейс хранилища сессий
type SessionRepository interface {
	// Save сохраняет сессию с TTL
	Save(ctx context.Context, sessionID string, userID int64, ttl time.Duration) error
	// Get возвращает userID по идентификатору сессии
	Get(ctx context.Context, sessionID string) (int64, error)
	// Delete удаляет сессию
	Delete(ctx context.Context, sessionID string) error
}
