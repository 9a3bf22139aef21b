package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Kafka     KafkaConfig
	Topics    TopicsConfig
	Redis     RedisConfig
	Database  DatabaseConfig
	Observ    ObservabilityConfig
	Simulator SimulatorConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type KafkaConfig struct {
	Brokers     []string
	Concurrency int
}

// TopicsConfig names the pipeline channels. The same names must be used by
// every service in a deployment.
type TopicsConfig struct {
	Orders        string
	Payments      string
	Shipments     string
	Notifications string
}

// RedisConfig configures the optional order cache. Empty Addr disables it.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// DatabaseConfig configures the optional notification archive. Empty URL
// disables it.
type DatabaseConfig struct {
	URL string
}

type ObservabilityConfig struct {
	JaegerEndpoint string
}

type SimulatorConfig struct {
	Runs int
}

func Load() *Config {
	_ = godotenv.Load()

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	concurrency, _ := strconv.Atoi(getEnv("KAFKA_CONSUMER_CONCURRENCY", "3"))
	runs, _ := strconv.Atoi(getEnv("SIMULATOR_RUNS", "1"))

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Env:  getEnv("ENV", "development"),
		},
		Kafka: KafkaConfig{
			Brokers:     strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			Concurrency: concurrency,
		},
		Topics: TopicsConfig{
			Orders:        getEnv("KAFKA_TOPIC_ORDERS", "order-events"),
			Payments:      getEnv("KAFKA_TOPIC_PAYMENTS", "payment-events"),
			Shipments:     getEnv("KAFKA_TOPIC_SHIPMENTS", "shipping-events"),
			Notifications: getEnv("KAFKA_TOPIC_NOTIFICATIONS", "notification-events"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		Observ: ObservabilityConfig{
			JaegerEndpoint: getEnv("JAEGER_ENDPOINT", "http://localhost:14268/api/traces"),
		},
		Simulator: SimulatorConfig{
			Runs: runs,
		},
	}

	log.Printf("Config loaded: env=%s, port=%s", cfg.Server.Env, cfg.Server.Port)
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
