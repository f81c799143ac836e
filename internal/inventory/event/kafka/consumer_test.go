package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrderPlaced(t *testing.T) {
	value := []byte(`{
		"event_id": "11111111-1111-1111-1111-111111111111",
		"event_type": "OrderPlaced",
		"event_version": 1,
		"occurred_at": "2025-06-01T12:00:00Z",
		"payload": {
			"order_number": "ord-42",
			"sku_code": "iphone_15",
			"price": 999.99,
			"quantity": 3,
			"email": "buyer@example.com"
		}
	}`)

	event, err := parseOrderPlaced(value)

	require.NoError(t, err)
	assert.Equal(t, "ord-42", event.OrderNumber)
	assert.Equal(t, "iphone_15", event.SkuCode)
	assert.Equal(t, int64(3), event.Quantity)
}

func TestParseOrderPlaced_Errors(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		wantField string
	}{
		{
			name:      "not json",
			value:     `not json at all`,
			wantField: "envelope",
		},
		{
			name:      "missing event_type",
			value:     `{"payload": {}}`,
			wantField: "event_type",
		},
		{
			name:      "wrong event_type",
			value:     `{"event_type": "RatingChanged", "payload": {}}`,
			wantField: "event_type",
		},
		{
			name:      "missing payload",
			value:     `{"event_type": "OrderPlaced"}`,
			wantField: "payload",
		},
		{
			name:      "missing sku_code",
			value:     `{"event_type": "OrderPlaced", "payload": {"order_number": "o", "quantity": 1}}`,
			wantField: "sku_code",
		},
		{
			name:      "zero quantity",
			value:     `{"event_type": "OrderPlaced", "payload": {"order_number": "o", "sku_code": "s", "quantity": 0}}`,
			wantField: "quantity",
		},
		{
			name:      "fractional quantity",
			value:     `{"event_type": "OrderPlaced", "payload": {"order_number": "o", "sku_code": "s", "quantity": 1.5}}`,
			wantField: "quantity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseOrderPlaced([]byte(tt.value))

			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, tt.wantField, parseErr.Field)
		})
	}
}
