package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/MaruthamSatishReddy/easyToBuy/internal/notification/service"
	"github.com/MaruthamSatishReddy/easyToBuy/internal/notification/templates"
)

// recordingSender запоминает отправленные письма
type recordingSender struct {
	mu      sync.Mutex
	sent    []sentEmail
	failErr error
}

type sentEmail struct {
	to      string
	subject string
	body    string
}

func (s *recordingSender) Send(_ context.Context, to, subject, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return s.failErr
	}
	s.sent = append(s.sent, sentEmail{to: to, subject: subject, body: body})
	return nil
}

func newService(t *testing.T, sender *recordingSender) *service.Service {
	t.Helper()
	renderer, err := templates.NewRenderer()
	require.NoError(t, err)
	return service.New(sender, renderer, zap.NewNop())
}

func TestHandleOrderPlaced_SendsEmail(t *testing.T) {
	sender := &recordingSender{}
	svc := newService(t, sender)

	err := svc.HandleOrderPlaced(context.Background(), service.OrderPlacedEvent{
		OrderNumber: "ord-42",
		SkuCode:     "iphone_15",
		Price:       999.99,
		Quantity:    2,
		Email:       "buyer@example.com",
	})

	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "buyer@example.com", sender.sent[0].to)
	assert.Contains(t, sender.sent[0].subject, "ord-42")
	assert.Contains(t, sender.sent[0].body, "iphone_15")
}

func TestHandleOrderPlaced_NoEmail(t *testing.T) {
	sender := &recordingSender{}
	svc := newService(t, sender)

	err := svc.HandleOrderPlaced(context.Background(), service.OrderPlacedEvent{
		OrderNumber: "ord-1",
		SkuCode:     "sku",
	})

	require.NoError(t, err)
	assert.Empty(t, sender.sent)
}

func TestHandleOrderPlaced_SendFailureSwallowed(t *testing.T) {
	// одна попытка, ошибка отправки не возвращается наверх
	sender := &recordingSender{failErr: errors.New("smtp down")}
	svc := newService(t, sender)

	err := svc.HandleOrderPlaced(context.Background(), service.OrderPlacedEvent{
		OrderNumber: "ord-1",
		SkuCode:     "sku",
		Quantity:    1,
		Email:       "buyer@example.com",
	})

	assert.NoError(t, err)
}
