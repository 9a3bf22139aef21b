package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"fulfillment-pipeline/internal/util"

	"github.com/segmentio/kafka-go"
)

// Message is the broker-agnostic message shape handed to consumers. Both
// the Kafka consumer and the in-memory bus deliver it.
type Message struct {
	Topic string
	Key   []byte
	Value []byte
	Time  time.Time
}

// MessageHandler is a function type for handling messages
type MessageHandler func(ctx context.Context, msg Message) error

// Publisher publishes an event onto a named topic
type Publisher interface {
	Publish(ctx context.Context, topic, key string, event interface{}) error
}

type Producer struct {
	writer *kafka.Writer
}

// NewProducer creates a new Kafka producer. The topic is chosen per
// message, so one producer serves every topic a service publishes to.
func NewProducer(brokers []string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
		WriteTimeout: 10 * time.Second,
		ReadTimeout:  10 * time.Second,
	}

	return &Producer{writer: writer}
}

// Publish publishes an event to a Kafka topic
func (p *Producer) Publish(ctx context.Context, topic, key string, event interface{}) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: eventBytes,
		Time:  time.Now(),
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}

	util.EventsPublishedTotal.WithLabelValues(topic).Inc()
	log.Printf("Published event: topic=%s, key=%s, type=%T", topic, key, event)
	return nil
}

// Close closes the producer
func (p *Producer) Close() error {
	return p.writer.Close()
}

// Consumer represents a Kafka consumer for one topic and consumer group
type Consumer struct {
	reader      *kafka.Reader
	concurrency int
}

// NewConsumer creates a new Kafka consumer. concurrency is the number of
// handler goroutines sharing the reader within the group.
func NewConsumer(brokers []string, topic, groupID string, concurrency int) *Consumer {
	if concurrency < 1 {
		concurrency = 1
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
		StartOffset:    kafka.FirstOffset,
	})

	return &Consumer{reader: reader, concurrency: concurrency}
}

// StartConsuming runs the fetch/handle/commit loop on the configured number
// of goroutines until ctx is cancelled. A handler error is logged and the
// message committed anyway: delivery is at-most-once, best-effort.
func (c *Consumer) StartConsuming(ctx context.Context, handler MessageHandler) error {
	topic := c.reader.Config().Topic
	log.Printf("Starting Kafka consumer: topic=%s, workers=%d", topic, c.concurrency)

	var wg sync.WaitGroup
	for i := 0; i < c.concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.consumeLoop(ctx, topic, handler)
		}()
	}

	wg.Wait()
	return ctx.Err()
}

func (c *Consumer) consumeLoop(ctx context.Context, topic string, handler MessageHandler) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		kmsg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("Error fetching message: %v", err)
			time.Sleep(time.Second)
			continue
		}

		msg := Message{
			Topic: topic,
			Key:   kmsg.Key,
			Value: kmsg.Value,
			Time:  kmsg.Time,
		}

		util.EventsConsumedTotal.WithLabelValues(topic).Inc()

		if err := handler(ctx, msg); err != nil {
			// No retry and no dead-letter queue: the message is dropped.
			log.Printf("Error handling message on %s: %v", topic, err)
		}

		if err := c.reader.CommitMessages(ctx, kmsg); err != nil {
			log.Printf("Error committing message: %v", err)
		}
	}
}

// Close closes the consumer
func (c *Consumer) Close() error {
	return c.reader.Close()
}
