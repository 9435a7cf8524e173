package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all router configuration loaded from environment variables.
type Config struct {
	MetricsPort int
	ChannelID   string
	DB          DBConfig
	Kafka       KafkaConfig
	Topics      TopicsConfig
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
	Inbound          string
	Valid            string
	Exception        string
	RejectionRequest string
	Notification     string
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
		MetricsPort: getEnvInt("METRICS_PORT", 8080),
		ChannelID:   getEnv("CHANNEL_ID", "G3I"),
		DB: DBConfig{
			Enabled:  getEnvBool("DB_ENABLED", false),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "cpg"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "cpg_router"),
			SSLMode:  getEnv("DB_SSLMODE", "require"),
			MaxConns: int32(getEnvInt("DB_MAX_CONNS", 20)),
			MinConns: int32(getEnvInt("DB_MIN_CONNS", 5)),
		},
		Kafka: KafkaConfig{
			Brokers:        []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			ConsumerGroup:  getEnv("KAFKA_CONSUMER_GROUP", "fast-router"),
			PublishTimeout: getEnvDuration("KAFKA_PUBLISH_TIMEOUT", 5*time.Second),
		},
		Topics: TopicsConfig{
			Inbound:          getEnv("TOPIC_INBOUND", "payment.inbound"),
			Valid:            getEnv("TOPIC_VALID", "payment-messages"),
			Exception:        getEnv("TOPIC_EXCEPTION", "exception-queue"),
			RejectionRequest: getEnv("TOPIC_REJECTION_REQUEST", "pacs002-requests"),
			Notification:     getEnv("TOPIC_NOTIFICATION", "payment-events"),
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
