package redisclient

import (
	"context"
	"os"
	"testing"

	"fulfillment-pipeline/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderCacheRoundTrip(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("Integration test - requires Redis (set TEST_REDIS_ADDR)")
	}

	client, err := NewClient(addr, "", 0)
	require.NoError(t, err)
	defer client.Close()

	ctx := context.Background()
	order := &models.Order{
		ID:         7001,
		CustomerID: "customer123",
		Product:    "Laptop",
		Quantity:   2,
		Price:      1500.00,
		Status:     models.OrderStatusCreated,
	}
	require.NoError(t, client.SetOrder(ctx, order))

	cached, found, err := client.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, order, cached)

	_, found, err = client.GetOrder(ctx, 999999)
	require.NoError(t, err)
	assert.False(t, found)
}
