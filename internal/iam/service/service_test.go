package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/MaruthamSatishReddy/easyToBuy/internal/iam/repository/memory"
	"github.com/MaruthamSatishReddy/easyToBuy/internal/iam/service"
)

func newService() *service.Service {
	return service.New(memory.NewUserRepository(), memory.NewSessionRepository(), time.Hour, zap.NewNop())
}

func TestRegister(t *testing.T) {
	svc := newService()

	user, err := svc.Register(context.Background(), "User@Example.com", "strongpassword")

	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	// email нормализуется к нижнему регистру
	assert.Equal(t, "user@example.com", user.Email)
	// хеш не равен исходному паролю
	assert.NotEqual(t, "strongpassword", user.PasswordHash)
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "empty email", email: "", password: "strongpassword", wantErr: service.ErrInvalidEmail},
		{name: "no at sign", email: "user.example.com", password: "strongpassword", wantErr: service.ErrInvalidEmail},
		{name: "short password", email: "user@example.com", password: "short", wantErr: service.ErrWeakPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newService().Register(context.Background(), tt.email, tt.password)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRegister_EmailTaken(t *testing.T) {
	svc := newService()

	_, err := svc.Register(context.Background(), "user@example.com", "strongpassword")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "user@example.com", "otherpassword")

	assert.ErrorIs(t, err, service.ErrEmailTaken)
}

func TestLoginAndValidate(t *testing.T) {
	svc := newService()

	user, err := svc.Register(context.Background(), "user@example.com", "strongpassword")
	require.NoError(t, err)

	session, err := svc.Login(context.Background(), "user@example.com", "strongpassword")
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)

	userID, err := svc.Validate(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc := newService()

	_, err := svc.Register(context.Background(), "user@example.com", "strongpassword")
	require.NoError(t, err)

	// неверный пароль и несуществующий email дают одну и ту же ошибку
	_, err = svc.Login(context.Background(), "user@example.com", "wrongpassword")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "missing@example.com", "strongpassword")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestLogout(t *testing.T) {
	svc := newService()

	_, err := svc.Register(context.Background(), "user@example.com", "strongpassword")
	require.NoError(t, err)

	session, err := svc.Login(context.Background(), "user@example.com", "strongpassword")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), session.ID))

	_, err = svc.Validate(context.Background(), session.ID)
	assert.ErrorIs(t, err, service.ErrSessionNotFound)
}

func TestValidate_EmptySession(t *testing.T) {
	_, err := newService().Validate(context.Background(), "")
	assert.ErrorIs(t, err, service.ErrSessionNotFound)
}
