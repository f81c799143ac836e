package templates_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MaruthamSatishReddy/easyToBuy/internal/notification/templates"
)

func TestRenderer_OrderPlaced(t *testing.T) {
	renderer, err := templates.NewRenderer()
	require.NoError(t, err)

	body, err := renderer.OrderPlaced(templates.OrderPlacedData{
		OrderNumber: "ord-42",
		SkuCode:     "iphone_15",
		Quantity:    2,
		Price:       999.99,
	})

	require.NoError(t, err)
	assert.Contains(t, body, "ord-42")
	assert.Contains(t, body, "iphone_15")
	assert.Contains(t, body, "999.99")
}
