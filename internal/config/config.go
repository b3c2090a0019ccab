package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Difficulty      string
	Depth           int // 0 means the difficulty's depth
	TimeBudget      time.Duration
	Workers         int // 0 means GOMAXPROCS
	HumanFirst      bool
	LogLevel        zerolog.Level
	RedisURL        string
	RedisPassword   string
	RedisCacheTTL   time.Duration
	SessionMaxAge   time.Duration
	CleanupInterval time.Duration
}

var AppConfig *Config

func LoadConfig() *Config {
	level, err := zerolog.ParseLevel(strings.ToLower(GetEnv("LOG_LEVEL", "info")))
	if err != nil || level == zerolog.NoLevel {
		log.Warn().Str("key", "LOG_LEVEL").Msg("invalid log level, using info")
		level = zerolog.InfoLevel
	}

	cleanupInterval := GetEnvAsDuration("CLEANUP_INTERVAL", time.Hour)
	if cleanupInterval <= 0 {
		log.Warn().Str("key", "CLEANUP_INTERVAL").Dur("value", cleanupInterval).Msg("cleanup interval must be positive, using default")
		cleanupInterval = time.Hour
	}
	sessionMaxAge := GetEnvAsDuration("SESSION_MAX_AGE", 24*time.Hour)
	if sessionMaxAge <= 0 {
		log.Warn().Str("key", "SESSION_MAX_AGE").Dur("value", sessionMaxAge).Msg("session max age must be positive, using default")
		sessionMaxAge = 24 * time.Hour
	}

	AppConfig = &Config{
		Difficulty:      GetEnv("CONNECT4_DIFFICULTY", "medium"),
		Depth:           GetEnvAsInt("CONNECT4_DEPTH", 0),
		TimeBudget:      GetEnvAsDuration("CONNECT4_TIME_BUDGET", 0),
		Workers:         GetEnvAsInt("CONNECT4_WORKERS", 0),
		HumanFirst:      GetEnvAsBool("CONNECT4_HUMAN_FIRST", true),
		LogLevel:        level,
		RedisURL:        GetEnv("REDIS_URL", ""),
		RedisPassword:   GetEnv("REDIS_PASSWORD", ""),
		RedisCacheTTL:   GetEnvAsDuration("REDIS_CACHE_TTL", 24*time.Hour),
		SessionMaxAge:   sessionMaxAge,
		CleanupInterval: cleanupInterval,
	}

	return AppConfig
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Warn().Str("key", key).Str("value", valueStr).Int("default", defaultValue).Msg("invalid integer value, using default")
		return defaultValue
	}
	return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Warn().Str("key", key).Str("value", valueStr).Bool("default", defaultValue).Msg("invalid boolean value, using default")
		return defaultValue
	}
	return value
}

// GetEnvAsDuration accepts Go durations ("1h30m") and plain seconds.
func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	if seconds, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(seconds) * time.Second
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Warn().Str("key", key).Str("value", valueStr).Dur("default", defaultValue).Msg("invalid duration value, using default")
		return defaultValue
	}
	return value
}
