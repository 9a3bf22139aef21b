package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"
)

// MemBus is an in-process message bus implementing Publisher. Delivery is
// synchronous in the caller's goroutine, which keeps end-to-end flows
// deterministic for the simulator and for tests. Like the Kafka consumer,
// a subscriber error is logged and the message considered consumed.
type MemBus struct {
	mu   sync.RWMutex
	subs map[string][]MessageHandler
}

// NewMemBus creates an empty bus
func NewMemBus() *MemBus {
	return &MemBus{subs: make(map[string][]MessageHandler)}
}

// Subscribe registers a handler for a topic. Handlers must not be
// registered after publishing begins.
func (b *MemBus) Subscribe(topic string, handler MessageHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[topic] = append(b.subs[topic], handler)
}

// Publish marshals the event and delivers it to every subscriber of the
// topic. A topic with no subscribers is not an error.
func (b *MemBus) Publish(ctx context.Context, topic, key string, event interface{}) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := Message{
		Topic: topic,
		Key:   []byte(key),
		Value: eventBytes,
		Time:  time.Now(),
	}

	b.mu.RLock()
	handlers := b.subs[topic]
	b.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(ctx, msg); err != nil {
			log.Printf("Error handling message on %s: %v", topic, err)
		}
	}

	return nil
}
