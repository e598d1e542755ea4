package config

import (
	"net/url"
	"os"
	"strconv"
	"time"

	"npofeed/pkg/errors"
)

// Config represents the application configuration
type Config struct {
	// Source site configuration
	SourceURL string
	StartURL  string
	UserAgent string

	// Artifact and cache paths
	FeedFile  string
	CacheFile string

	// Timing configuration
	CacheTTL       time.Duration
	UpdateInterval time.Duration

	// Feed server configuration
	ServerAddr string

	// Memcache configuration (empty means the file cache is used)
	MemcacheAddr string

	// Redis configuration (empty addr disables publishing)
	RedisAddr            string
	RedisDB              int
	RedisStream          string
	RedisStreamMaxLength int

	// Environment
	Environment string
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() Config {
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	streamMaxLength, _ := strconv.Atoi(getEnv("REDIS_STREAM_MAX_LENGTH", "100"))
	cacheTTL, _ := strconv.Atoi(getEnv("CACHE_TTL_SECONDS", "3600"))
	updateInterval, _ := strconv.Atoi(getEnv("UPDATE_INTERVAL_SECONDS", "3600"))

	return Config{
		SourceURL:            getEnv("NPO_URL", "https://npo.nl/"),
		StartURL:             getEnv("NPO_START_URL", "https://npo.nl/start"),
		UserAgent:            getEnv("USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"),
		FeedFile:             getEnv("FEED_FILE", "npo_new_programs.xml"),
		CacheFile:            getEnv("CACHE_FILE", "npo_programs_cache.json"),
		CacheTTL:             time.Duration(cacheTTL) * time.Second,
		UpdateInterval:       time.Duration(updateInterval) * time.Second,
		ServerAddr:           getEnv("SERVER_ADDR", ":8000"),
		MemcacheAddr:         getEnv("MEMCACHE_ADDR", ""),
		RedisAddr:            getEnv("REDIS_ADDR", ""),
		RedisDB:              redisDB,
		RedisStream:          getEnv("REDIS_STREAM", "npo_programs"),
		RedisStreamMaxLength: streamMaxLength,
		Environment:          getEnv("NPOFEED_ENVIRONMENT", "development"),
	}
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	for _, u := range []string{c.SourceURL, c.StartURL} {
		parsed, err := url.Parse(u)
		if err != nil {
			return errors.NewConfiguration("invalid URL: "+u, err)
		}
		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			return errors.NewConfiguration("URL must use http or https: "+u, nil)
		}
	}

	if c.FeedFile == "" {
		return errors.NewConfiguration("feed file path must not be empty", nil)
	}
	if c.CacheFile == "" {
		return errors.NewConfiguration("cache file path must not be empty", nil)
	}

	if c.CacheTTL <= 0 {
		return errors.NewConfiguration("cache TTL must be positive", nil)
	}
	if c.UpdateInterval <= 0 {
		return errors.NewConfiguration("update interval must be positive", nil)
	}

	if c.RedisAddr != "" && c.RedisStream == "" {
		return errors.NewConfiguration("redis stream name must not be empty when redis is enabled", nil)
	}

	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
