package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/MaruthamSatishReddy/easyToBuy/internal/iam/repository"
	"github.com/MaruthamSatishReddy/easyToBuy/platform/observability"
)

// minPasswordLength минимальная длина пароля
const minPasswordLength = 8

var (
	// ErrInvalidEmail пустой или некорректный email
	ErrInvalidEmail = errors.New("email must not be empty")
	// ErrWeakPassword пароль короче минимальной длины
	ErrWeakPassword = errors.New("password is too short")
	// ErrEmailTaken email уже зарегистрирован
	ErrEmailTaken = errors.New("email is already registered")
	// ErrInvalidCredentials неверная пара email/пароль
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrSessionNotFound сессия не найдена или истекла
	ErrSessionNotFound = errors.New("session not found")
)

// Session активная сессия пользователя
type Session struct {
	// ID идентификатор сессии (значение заголовка x-session-id)
	ID string
	// UserID владелец сессии
	UserID int64
	// ExpiresAt время истечения
	ExpiresAt time.Time
}

// Service бизнес-логика аутентификации
type Service struct {
	users      repository.UserRepository
	sessions   repository.SessionRepository
	sessionTTL time.Duration
	logger     *zap.Logger
}

// New создаёт сервис аутентификации
func New(users repository.UserRepository, sessions repository.SessionRepository, sessionTTL time.Duration, logger *zap.Logger) *Service {
	return &Service{
		users:      users,
		sessions:   sessions,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

// Register регистрирует пользователя
func (s *Service) Register(ctx context.Context, email, password string) (repository.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return repository.User{}, ErrInvalidEmail
	}
	if len(password) < minPasswordLength {
		return repository.User{}, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return repository.User{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, repository.User{
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return repository.User{}, ErrEmailTaken
		}
		return repository.User{}, fmt.Errorf("create user: %w", err)
	}

	observability.L(ctx, s.logger).Info("user registered", zap.Int64("user_id", user.ID))
	return user, nil
}

// Login проверяет учётные данные и создаёт сессию.
// Несуществующий email и неверный пароль неразличимы в ответе.
func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return Session{}, ErrInvalidCredentials
	}

	session := Session{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		ExpiresAt: time.Now().UTC().Add(s.sessionTTL),
	}
	if err := s.sessions.Save(ctx, session.ID, session.UserID, s.sessionTTL); err != nil {
		return Session{}, fmt.Errorf("save session: %w", err)
	}

	observability.L(ctx, s.logger).Info("user logged in", zap.Int64("user_id", user.ID))
	return session, nil
}

// Logout завершает сессию. Завершение несуществующей сессии не ошибка.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Validate возвращает userID активной сессии
func (s *Service) Validate(ctx context.Context, sessionID string) (int64, error) {
	if sessionID == "" {
		return 0, ErrSessionNotFound
	}

	userID, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return 0, ErrSessionNotFound
		}
		return 0, fmt.Errorf("get session: %w", err)
	}
	return userID, nil
}
