package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	TransportNATS  = "nats"
	TransportKafka = "kafka"
)

// Config holds all configuration for the detection relay.
type Config struct {
	// Transport selection
	Transport string

	// NATS
	NatsURL string

	// Subjects for NATS, topics for Kafka
	InboundSubject  string
	AcceptedSubject string
	RejectedSubject string

	// Kafka
	KafkaBrokers []string
	KafkaGroupID string

	// Registry
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RegistryTTL   time.Duration

	// Processing
	Workers int

	// Service ports
	HealthPort string
	GRPCPort   string

	LogMode string
}

// Load reads configuration from a .env file, if one is found, and then
// from the environment.
func Load() (*Config, string, error) {
	envPaths := []string{
		".env",
		"../.env",
		"/app/.env", // Docker
	}

	loadedFrom := ""
	for _, path := range envPaths {
		if err := godotenv.Load(path); err == nil {
			loadedFrom = path
			break
		}
	}

	config := FromEnv()
	if err := config.Validate(); err != nil {
		return nil, loadedFrom, err
	}

	return config, loadedFrom, nil
}

// FromEnv builds a Config from environment variables, applying defaults.
func FromEnv() *Config {
	return &Config{
		Transport: strings.ToLower(getEnvOrDefault("RELAY_TRANSPORT", TransportNATS)),

		NatsURL: getEnvOrDefault("NATS_URL", "nats://localhost:4222"),

		InboundSubject:  getEnvOrDefault("RELAY_INBOUND_SUBJECT", "detections.inbound"),
		AcceptedSubject: getEnvOrDefault("RELAY_ACCEPTED_SUBJECT", "detections.accepted"),
		RejectedSubject: getEnvOrDefault("RELAY_REJECTED_SUBJECT", "detections.rejected"),

		KafkaBrokers: splitList(getEnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaGroupID: getEnvOrDefault("KAFKA_GROUP_ID", "detection-relay"),

		RedisAddr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       parseIntOrDefault("REDIS_DB", 0),
		RegistryTTL:   parseDurationOrDefault("REGISTRY_TTL", 24*time.Hour),

		Workers: parseIntOrDefault("RELAY_WORKERS", 4),

		HealthPort: getEnvOrDefault("HEALTH_PORT", "8080"),
		GRPCPort:   getEnvOrDefault("GRPC_PORT", "50051"),

		LogMode: getEnvOrDefault("LOG_MODE", "prod"),
	}
}

// Validate checks that required configuration is present and consistent.
func (c *Config) Validate() error {
	switch c.Transport {
	case TransportNATS:
		if c.NatsURL == "" {
			return fmt.Errorf("NATS_URL is required when RELAY_TRANSPORT is nats")
		}
	case TransportKafka:
		if len(c.KafkaBrokers) == 0 {
			return fmt.Errorf("KAFKA_BROKERS is required when RELAY_TRANSPORT is kafka")
		}
		if c.KafkaGroupID == "" {
			return fmt.Errorf("KAFKA_GROUP_ID is required when RELAY_TRANSPORT is kafka")
		}
	default:
		return fmt.Errorf("RELAY_TRANSPORT must be %q or %q, got %q", TransportNATS, TransportKafka, c.Transport)
	}

	if c.InboundSubject == "" {
		return fmt.Errorf("RELAY_INBOUND_SUBJECT is required")
	}
	if c.AcceptedSubject == "" {
		return fmt.Errorf("RELAY_ACCEPTED_SUBJECT is required")
	}
	if c.RejectedSubject == "" {
		return fmt.Errorf("RELAY_REJECTED_SUBJECT is required")
	}
	if c.InboundSubject == c.AcceptedSubject || c.InboundSubject == c.RejectedSubject {
		return fmt.Errorf("RELAY_INBOUND_SUBJECT must differ from the accepted and rejected subjects")
	}

	if c.Workers < 1 {
		return fmt.Errorf("RELAY_WORKERS must be at least 1")
	}
	if c.RegistryTTL <= 0 {
		return fmt.Errorf("REGISTRY_TTL must be positive")
	}
	if c.HealthPort == "" {
		return fmt.Errorf("HEALTH_PORT is required")
	}
	if c.GRPCPort == "" {
		return fmt.Errorf("GRPC_PORT is required")
	}

	return nil
}

// Helper functions
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if result, err := strconv.Atoi(value); err == nil {
			return result
		}
	}
	return defaultValue
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if result, err := time.ParseDuration(value); err == nil {
			return result
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
