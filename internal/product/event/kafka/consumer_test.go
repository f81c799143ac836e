package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRatingChanged(t *testing.T) {
	value := []byte(`{
		"event_id": "22222222-2222-2222-2222-222222222222",
		"event_type": "RatingChanged",
		"event_version": 1,
		"occurred_at": "2025-06-01T12:00:00Z",
		"payload": {
			"product_id": "p1",
			"average_rating": 4.4,
			"total_ratings": 5,
			"event_type": "CREATED"
		}
	}`)

	event, err := parseRatingChanged(value)

	require.NoError(t, err)
	assert.Equal(t, "p1", event.ProductID)
	assert.Equal(t, 4.4, event.AverageRating)
	assert.Equal(t, int64(5), event.TotalRatings)
	assert.Equal(t, "CREATED", event.EventType)
}

func TestParseRatingChanged_Errors(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{name: "not json", value: `garbage`},
		{name: "wrong event_type", value: `{"event_type": "OrderPlaced", "payload": {}}`},
		{name: "missing payload", value: `{"event_type": "RatingChanged"}`},
		{
			name:  "missing product_id",
			value: `{"event_type": "RatingChanged", "payload": {"average_rating": 4, "total_ratings": 1, "event_type": "CREATED"}}`,
		},
		{
			name:  "negative total_ratings",
			value: `{"event_type": "RatingChanged", "payload": {"product_id": "p", "average_rating": 4, "total_ratings": -1, "event_type": "CREATED"}}`,
		},
		{
			name:  "unknown change type",
			value: `{"event_type": "RatingChanged", "payload": {"product_id": "p", "average_rating": 4, "total_ratings": 1, "event_type": "ARCHIVED"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseRatingChanged([]byte(tt.value))
			assert.Error(t, err)
		})
	}
}
