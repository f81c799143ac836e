package memory

import (
	"context"
	"sync"
	"time"

	"github.com/MaruthamSatishReddy/easyToBuy/internal/iam/repository"
)

// UserRepository in-memory реализация хранилища пользователей
type UserRepository struct {
	mu     sync.Mutex
	users  map[int64]repository.User
	nextID int64
}

// NewUserRepository создаёт пустое хранилище пользователей
func NewUserRepository() *UserRepository {
	return &UserRepository{
		users:  make(map[int64]repository.User),
		nextID: 1,
	}
}

// Create сохраняет нового пользователя
func (r *UserRepository) Create(_ context.Context, user repository.User) (repository.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return repository.User{}, repository.ErrAlreadyExists
		}
	}

	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = user
	return user, nil
}

// FindByEmail возвращает пользователя по email
func (r *UserRepository) FindByEmail(_ context.Context, email string) (repository.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return repository.User{}, repository.ErrNotFound
}

// FindByID возвращает пользователя по идентификатору
func (r *UserRepository) FindByID(_ context.Context, id int64) (repository.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return repository.User{}, repository.ErrNotFound
	}
	return user, nil
}

// sessionEntry сессия с временем истечения
type sessionEntry struct {
	userID    int64
	expiresAt time.Time
}

// SessionRepository in-memory реализация хранилища сессий
type SessionRepository struct {
	mu       sync.Mutex
	sessions map[string]sessionEntry
	now      func() time.Time
}

// NewSessionRepository создаёт пустое хранилище сессий
func NewSessionRepository() *SessionRepository {
	return &SessionRepository{
		sessions: make(map[string]sessionEntry),
		now:      time.Now,
	}
}

// Save сохраняет сессию с TTL
func (r *SessionRepository) Save(_ context.Context, sessionID string, userID int64, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[sessionID] = sessionEntry{
		userID:    userID,
		expiresAt: r.now().Add(ttl),
	}
	return nil
}

// Get возвращает userID по идентификатору сессии
func (r *SessionRepository) Get(_ context.Context, sessionID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.sessions[sessionID]
	if !ok || r.now().After(entry.expiresAt) {
		delete(r.sessions, sessionID)
		return 0, repository.ErrSessionNotFound
	}
	return entry.userID, nil
}

// Delete удаляет сессию
func (r *SessionRepository) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, sessionID)
	return nil
}
