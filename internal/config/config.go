package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Defaults used when the environment leaves a value unset.
const (
	DefaultTopic      = "unknown_topic"
	DefaultGroupID    = "default_group"
	DefaultHTTPPort   = 8080
	DefaultWindowSize = 50
)

// Config aggregates everything the consumer needs from the environment.
type Config struct {
	Topic      string
	GroupID    string
	Broker     string // empty means run against the built-in generator
	HTTPPort   int
	WindowSize int
}

// Load reads a .env file when present, then resolves the environment.
// Resolved values are logged, defaults included.
func Load(logger *slog.Logger) (Config, error) {
	if logger == nil {
		logger = slog.Default()
	}

	// Best effort: a missing .env file is not an error
	_ = godotenv.Load()

	port, err := parseIntEnv("HTTP_PORT", DefaultHTTPPort)
	if err != nil {
		return Config{}, err
	}

	windowSize, err := parseIntEnv("WINDOW_SIZE", DefaultWindowSize)
	if err != nil {
		return Config{}, err
	}
	if windowSize <= 0 {
		return Config{}, fmt.Errorf("WINDOW_SIZE must be positive, got %d", windowSize)
	}

	cfg := Config{
		Topic:      getEnvOrDefault("BUZZ_TOPIC", DefaultTopic),
		GroupID:    getEnvOrDefault("BUZZ_CONSUMER_GROUP_ID", DefaultGroupID),
		Broker:     strings.TrimSpace(os.Getenv("KAFKA_BROKER")),
		HTTPPort:   port,
		WindowSize: windowSize,
	}

	logger.Info("kafka topic", "topic", cfg.Topic)
	logger.Info("kafka consumer group id", "group_id", cfg.GroupID)
	if cfg.Broker == "" {
		logger.Info("no KAFKA_BROKER configured, using built-in buzz generator")
	} else {
		logger.Info("kafka broker", "broker", cfg.Broker)
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return value, nil
}
