// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Cache backends
const (
	CacheBackendSQLite = "sqlite"
	CacheBackendValkey = "valkey"
)

// Config holds application configuration
type Config struct {
	DataDir      string // Base directory for the cache database (always absolute)
	LogLevel     string
	Port         int
	DevMode      bool
	RequiredRole string
	CORSOrigins  []string
	API          APIConfig
	Insights     InsightsConfig
	Cache        CacheConfig
}

// APIConfig configures the primary sales analytics API
type APIConfig struct {
	BaseURL     string
	Timeout     time.Duration
	BearerToken string // Used by the CLI when no identity token is supplied
}

// InsightsConfig configures the secondary insights API
type InsightsConfig struct {
	BaseURL      string
	ClientKey    string
	TokenPath    string
	DailyPath    string
	WeeklyPath   string
	TokenTTL     time.Duration
	RefreshDay   time.Weekday // Weekday on which weekly insights are regenerated
	FetchTimeout time.Duration
}

// CacheConfig configures the persisted insight cache
type CacheConfig struct {
	Backend         string
	Location        *time.Location
	CleanupSchedule string
	Valkey          ValkeyConfig
}

// ValkeyConfig holds the connection settings for the valkey backend
type ValkeyConfig struct {
	Address  string
	Password string
	DB       int
	Prefix   string
}

// Load reads .env (if present) and the environment.
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	dataDir := getEnv("DATA_DIR", "./data")

	// Always resolve to absolute path
	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}

	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	refreshDay, err := parseWeekday(getEnv("INSIGHTS_REFRESH_WEEKDAY", "saturday"))
	if err != nil {
		return nil, err
	}

	loc, err := loadLocation(getEnv("CACHE_TIMEZONE", "Local"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DataDir:      absDataDir,
		Port:         getEnvAsInt("GO_PORT", 8001),
		DevMode:      getEnvAsBool("DEV_MODE", false),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		RequiredRole: getEnv("REQUIRED_ROLE", "org:admin"),
		CORSOrigins:  getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		API: APIConfig{
			BaseURL:     strings.TrimRight(getEnv("API_BASE_URL", "https://www.gachara.store/api"), "/"),
			Timeout:     getEnvAsDuration("API_TIMEOUT", 30*time.Second),
			BearerToken: getEnv("API_BEARER_TOKEN", ""),
		},
		Insights: InsightsConfig{
			BaseURL:      strings.TrimRight(getEnv("INSIGHTS_BASE_URL", ""), "/"),
			ClientKey:    getEnv("INSIGHTS_CLIENT_KEY", ""),
			TokenPath:    getEnv("INSIGHTS_TOKEN_PATH", "/auth/token"),
			DailyPath:    getEnv("INSIGHTS_DAILY_PATH", "/insights/daily"),
			WeeklyPath:   getEnv("INSIGHTS_WEEKLY_PATH", "/insights/weekly"),
			TokenTTL:     getEnvAsDuration("INSIGHTS_TOKEN_TTL", time.Hour),
			RefreshDay:   refreshDay,
			FetchTimeout: getEnvAsDuration("INSIGHTS_TIMEOUT", 30*time.Second),
		},
		Cache: CacheConfig{
			Backend:         strings.ToLower(getEnv("CACHE_BACKEND", CacheBackendSQLite)),
			Location:        loc,
			CleanupSchedule: getEnv("CACHE_CLEANUP_SCHEDULE", "0 0 3 * * *"),
			Valkey: ValkeyConfig{
				Address:  getEnv("VALKEY_ADDRESS", "localhost:6379"),
				Password: getEnv("VALKEY_PASSWORD", ""),
				DB:       getEnvAsInt("VALKEY_DB", 0),
				Prefix:   getEnv("VALKEY_PREFIX", "salesboard"),
			},
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// InsightsEnabled reports whether the insights API is configured at all
func (c *Config) InsightsEnabled() bool {
	return c.Insights.BaseURL != ""
}

// ClientDataPath returns the path of the sqlite insight cache
func (c *Config) ClientDataPath() string {
	return filepath.Join(c.DataDir, "client_data.db")
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("API_BASE_URL is required")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("API_TIMEOUT must be positive, got %s", c.API.Timeout)
	}
	if c.Insights.TokenTTL <= 0 {
		return fmt.Errorf("INSIGHTS_TOKEN_TTL must be positive, got %s", c.Insights.TokenTTL)
	}
	if c.InsightsEnabled() && c.Insights.ClientKey == "" {
		return fmt.Errorf("INSIGHTS_CLIENT_KEY is required when INSIGHTS_BASE_URL is set")
	}
	switch c.Cache.Backend {
	case CacheBackendSQLite, CacheBackendValkey:
	default:
		return fmt.Errorf("unknown CACHE_BACKEND %q (want %s or %s)", c.Cache.Backend, CacheBackendSQLite, CacheBackendValkey)
	}
	if c.Cache.Backend == CacheBackendValkey && c.Cache.Valkey.Address == "" {
		return fmt.Errorf("VALKEY_ADDRESS is required for the valkey cache backend")
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

func parseWeekday(s string) (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.ToLower(d.String()) == name || strings.ToLower(d.String()[:3]) == name {
			return d, nil
		}
	}
	return time.Saturday, fmt.Errorf("invalid INSIGHTS_REFRESH_WEEKDAY %q", s)
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TIMEZONE %q: %w", name, err)
	}
	return loc, nil
}
