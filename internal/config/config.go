// Package config loads service configuration from the environment, an optional .env file and an
// optional YAML overlay named by PRICING_CONFIG_FILE.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds application configuration.
type Config struct {
	AppEnv   string
	LogLevel string

	SpannerDB string
	GRPCPort  string
	HTTPPort  string

	Redis    RedisConfig
	Location LocationConfig
	Exchange ExchangeConfig
}

// RedisConfig holds the location cache connection. An empty Addr selects the in-memory store.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LocationConfig holds the geolocation provider settings.
type LocationConfig struct {
	IPURL      string
	ReverseURL string
	CacheTTL   time.Duration
	Timeout    time.Duration
}

// ExchangeConfig holds the exchange-rate provider settings.
type ExchangeConfig struct {
	URL     string
	Timeout time.Duration
}

// IsDevelopment reports whether APP_ENV is "development".
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

var defaults = map[string]string{
	"APP_ENV":              "production",
	"LOG_LEVEL":            "info",
	"SPANNER_DATABASE":     "projects/test-project/instances/dev-instance/databases/pricing-db",
	"GRPC_PORT":            "9090",
	"HTTP_PORT":            "8080",
	"REDIS_ADDR":           "",
	"REDIS_PASSWORD":       "",
	"REDIS_DB":             "0",
	"LOCATION_IP_URL":      "https://ipapi.co",
	"LOCATION_REVERSE_URL": "https://api.bigdatacloud.net/data/reverse-geocode-client",
	"LOCATION_CACHE_TTL":   "24h",
	"LOCATION_TIMEOUT":     "5s",
	"EXCHANGE_URL":         "https://api.exchangerate-api.com/v4/latest/USD",
	"EXCHANGE_TIMEOUT":     "10s",
}

// Load reads configuration. Precedence: process environment, then .env, then the YAML overlay,
// then built-in defaults.
func Load() (*Config, error) {
	_ = godotenv.Load() // .env is optional

	overlay, err := readOverlay(os.Getenv("PRICING_CONFIG_FILE"))
	if err != nil {
		return nil, err
	}

	get := func(key string) string {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v
		}
		if v, ok := overlay[key]; ok {
			return v
		}
		return defaults[key]
	}
	return build(get)
}

// readOverlay parses a flat YAML document keyed by the environment variable names.
func readOverlay(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	out := make(map[string]string, len(doc))
	for k, v := range doc {
		if v == nil {
			continue
		}
		out[k] = fmt.Sprint(v)
	}
	return out, nil
}

func build(get func(string) string) (*Config, error) {
	redisDB, err := strconv.Atoi(get("REDIS_DB"))
	if err != nil || redisDB < 0 {
		return nil, fmt.Errorf("invalid REDIS_DB %q", get("REDIS_DB"))
	}

	durations := make(map[string]time.Duration)
	for _, key := range []string{"LOCATION_CACHE_TTL", "LOCATION_TIMEOUT", "EXCHANGE_TIMEOUT"} {
		d, err := time.ParseDuration(get(key))
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid %s %q: must be a positive duration", key, get(key))
		}
		durations[key] = d
	}

	for _, key := range []string{"GRPC_PORT", "HTTP_PORT"} {
		if p, err := strconv.Atoi(get(key)); err != nil || p <= 0 || p > 65535 {
			return nil, fmt.Errorf("invalid %s %q", key, get(key))
		}
	}

	return &Config{
		AppEnv:    get("APP_ENV"),
		LogLevel:  get("LOG_LEVEL"),
		SpannerDB: get("SPANNER_DATABASE"),
		GRPCPort:  get("GRPC_PORT"),
		HTTPPort:  get("HTTP_PORT"),
		Redis: RedisConfig{
			Addr:     get("REDIS_ADDR"),
			Password: get("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Location: LocationConfig{
			IPURL:      get("LOCATION_IP_URL"),
			ReverseURL: get("LOCATION_REVERSE_URL"),
			CacheTTL:   durations["LOCATION_CACHE_TTL"],
			Timeout:    durations["LOCATION_TIMEOUT"],
		},
		Exchange: ExchangeConfig{
			URL:     get("EXCHANGE_URL"),
			Timeout: durations["EXCHANGE_TIMEOUT"],
		},
	}, nil
}
