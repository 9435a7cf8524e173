package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all sender configuration loaded from environment variables.
type Config struct {
	MetricsPort int
	DB          DBConfig
	Kafka       KafkaConfig
	Topics      TopicsConfig
	Delivery    DeliveryConfig
	LogLevel    string
	LogFormat   string
}

type DBConfig struct {
	Enabled  bool
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

type KafkaConfig struct {
	Brokers        []string
	ConsumerGroup  string
	PublishTimeout time.Duration
}

type TopicsConfig struct {
	RejectionRequest string
	Outbound         string
	StatusEvent      string
}

// DeliveryConfig bounds the outbound retry loop.
type DeliveryConfig struct {
	MaxAttempts int
	Backoff     time.Duration
}

// Validate checks required configuration values.
func (c Config) Validate() {
	if c.DB.Enabled && c.DB.Password == "" {
		panic("DB_PASSWORD environment variable is required when DB_ENABLED is true")
	}
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	return Config{
		MetricsPort: getEnvInt("METRICS_PORT", 8081),
		DB: DBConfig{
			Enabled:  getEnvBool("DB_ENABLED", false),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "cpg"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "cpg_sender"),
			SSLMode:  getEnv("DB_SSLMODE", "require"),
			MaxConns: int32(getEnvInt("DB_MAX_CONNS", 10)),
			MinConns: int32(getEnvInt("DB_MIN_CONNS", 2)),
		},
		Kafka: KafkaConfig{
			Brokers:        []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			ConsumerGroup:  getEnv("KAFKA_CONSUMER_GROUP", "fast-sender"),
			PublishTimeout: getEnvDuration("KAFKA_PUBLISH_TIMEOUT", 5*time.Second),
		},
		Topics: TopicsConfig{
			RejectionRequest: getEnv("TOPIC_REJECTION_REQUEST", "pacs002-requests"),
			Outbound:         getEnv("TOPIC_OUTBOUND", "pacs002.outbound"),
			StatusEvent:      getEnv("TOPIC_STATUS_EVENT", "payment-events"),
		},
		Delivery: DeliveryConfig{
			MaxAttempts: getEnvInt("DELIVERY_MAX_ATTEMPTS", 5),
			Backoff:     getEnvDuration("DELIVERY_BACKOFF", time.Second),
		},
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
