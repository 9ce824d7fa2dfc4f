package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures process level configuration.
type Server struct {
	Addr            string
	DatabaseURL     string
	Redis           RedisConfig
	Kafka           KafkaConfig
	Admin           AdminConfig
	SeedFile        string
	LedgerTxTimeout time.Duration
	EventBuffer     int
	LogLevel        string
}

// RedisConfig configures the optional Redis port-state backend.
// An empty URL keeps port states in the primary store.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig configures the event sink. No brokers means events stay in memory.
type KafkaConfig struct {
	Brokers           []string
	TopicPrefix       string
	Partitions        int32
	ReplicationFactor int16
}

// AdminConfig fixes the administrator identity at start-up.
type AdminConfig struct {
	Identity string
	// TokenHash is a bcrypt hash of the static X-Admin-Token value.
	TokenHash string
	// JWTSigningKey validates HS256 bearer tokens whose subject is the actor.
	JWTSigningKey string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	cfg := Server{
		Addr:        getenv("SULFURWATCH_ADDR", ":8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		SeedFile:    os.Getenv("SEED_FILE"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
		Redis: RedisConfig{
			URL: os.Getenv("REDIS_URL"),
		},
		Kafka: KafkaConfig{
			TopicPrefix: getenv("KAFKA_TOPIC_PREFIX", "sulfurwatch"),
		},
		Admin: AdminConfig{
			Identity:  getenv("ADMIN_IDENTITY", "admin"),
			TokenHash: os.Getenv("ADMIN_TOKEN_HASH"),
			// Use a default for development - should be overridden in production
			JWTSigningKey: getenv("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		},
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.Kafka.Brokers = append(cfg.Kafka.Brokers, b)
			}
		}
	}

	var err error
	if cfg.LedgerTxTimeout, err = durationEnv("LEDGER_TX_TIMEOUT", 5*time.Second); err != nil {
		return Server{}, err
	}
	if cfg.EventBuffer, err = intEnv("EVENT_BUFFER", 1024); err != nil {
		return Server{}, err
	}
	if cfg.Redis.PoolSize, err = intEnv("REDIS_POOL_SIZE", 10); err != nil {
		return Server{}, err
	}
	if cfg.Redis.MinIdleConns, err = intEnv("REDIS_MIN_IDLE_CONNS", 2); err != nil {
		return Server{}, err
	}
	if cfg.Redis.DialTimeout, err = durationEnv("REDIS_DIAL_TIMEOUT", 5*time.Second); err != nil {
		return Server{}, err
	}
	if cfg.Redis.ReadTimeout, err = durationEnv("REDIS_READ_TIMEOUT", 3*time.Second); err != nil {
		return Server{}, err
	}
	if cfg.Redis.WriteTimeout, err = durationEnv("REDIS_WRITE_TIMEOUT", 3*time.Second); err != nil {
		return Server{}, err
	}
	partitions, err := intEnv("KAFKA_PARTITIONS", 3)
	if err != nil {
		return Server{}, err
	}
	replication, err := intEnv("KAFKA_REPLICATION_FACTOR", 1)
	if err != nil {
		return Server{}, err
	}
	cfg.Kafka.Partitions = int32(partitions)
	cfg.Kafka.ReplicationFactor = int16(replication)

	if cfg.Admin.Identity == "" {
		return Server{}, fmt.Errorf("ADMIN_IDENTITY must not be empty")
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return n, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return d, nil
}
