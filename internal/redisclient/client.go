package redisclient

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fulfillment-pipeline/internal/models"

	"github.com/go-redis/redis/v8"
)

const orderTTL = 24 * time.Hour

// Client caches orders in Redis so that reads can be served across service
// instances. The cache is best-effort: the store stays authoritative.
type Client struct {
	rdb *redis.Client
}

// NewClient creates a new Redis client and verifies connectivity
func NewClient(addr, password string, db int) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// SetOrder stores the serialized order under its id
func (c *Client) SetOrder(ctx context.Context, order *models.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("failed to marshal order: %w", err)
	}

	key := fmt.Sprintf("order:%d", order.ID)
	return c.rdb.Set(ctx, key, data, orderTTL).Err()
}

// GetOrder retrieves a cached order. A cache miss is reported through the
// bool, not as an error.
func (c *Client) GetOrder(ctx context.Context, orderID int64) (*models.Order, bool, error) {
	key := fmt.Sprintf("order:%d", orderID)

	data, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var order models.Order
	if err := json.Unmarshal(data, &order); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached order: %w", err)
	}

	return &order, true, nil
}
