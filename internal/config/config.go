package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port           int
	APIKey         string // API key for authentication
	TrustedProxies []string

	// Logging
	LogLevel    string
	LogFormat   string
	LogDir      string
	ServiceName string
	Version     string
	Environment string

	// Database
	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration

	// Event publishing
	EventMaxRetries     int
	EventRetryDelay     time.Duration
	EventDeadLetterPath string

	// HTTP rate limiting per client IP
	RateLimitPerSecond float64
	RateLimitBurst     int

	// Result sources
	CryptoSourceURL        string
	ResultSourceRate       float64
	ResultSourceMaxRetries int
	ResultCacheSize        int
	ResultCacheTTL         time.Duration

	// Payment processor
	ProcessorURL        string
	ProcessorAPIKey     string
	ProcessorRate       float64
	ProcessorMaxRetries int
	ProcessorRetryWait  time.Duration

	// Payout reconciliation
	PayoutReconcileSpec  string
	PayoutReconcileGrace time.Duration

	// Background settlement
	SettlementSweepSpec string
	WorkerCount         int
	WorkerQueueSize     int
	ShutdownTimeout     time.Duration

	// Audit log and live feed
	EventLogCleanupSpec   string
	EventLogRetentionDays int
	EventStreamEnabled    bool
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		APIKey:         getEnv("API_KEY", ""),
		TrustedProxies: getEnvAsList("TRUSTED_PROXIES"),

		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", DefaultLogLevel)),
		LogFormat:   strings.ToLower(getEnv("LOG_FORMAT", DefaultLogFormat)),
		LogDir:      getEnv("LOG_DIR", DefaultLogDir),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		Version:     getEnv("VERSION", DefaultVersion),
		Environment: getEnv("ENVIRONMENT", DefaultEnvironment),

		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", "prizepool"),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", DefaultDBMaxConnIdleTime),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLifetime),

		EventMaxRetries:     getEnvAsInt("EVENT_MAX_RETRIES", DefaultEventMaxRetries),
		EventRetryDelay:     getEnvAsDuration("EVENT_RETRY_DELAY", DefaultEventRetryDelay),
		EventDeadLetterPath: getEnv("EVENT_DEADLETTER_PATH", DefaultEventDeadLetterPath),

		RateLimitPerSecond: getEnvAsFloat("RATE_LIMIT_PER_SECOND", DefaultRateLimitPerSecond),
		RateLimitBurst:     getEnvAsInt("RATE_LIMIT_BURST", DefaultRateLimitBurst),

		CryptoSourceURL:        getEnv("CRYPTO_SOURCE_URL", DefaultCryptoSourceURL),
		ResultSourceRate:       getEnvAsFloat("RESULT_SOURCE_RATE", DefaultResultSourceRate),
		ResultSourceMaxRetries: getEnvAsInt("RESULT_SOURCE_MAX_RETRIES", DefaultResultSourceMaxRetries),
		ResultCacheSize:        getEnvAsInt("RESULT_CACHE_SIZE", DefaultResultCacheSize),
		ResultCacheTTL:         getEnvAsDuration("RESULT_CACHE_TTL", DefaultResultCacheTTL),

		ProcessorURL:        getEnv("PAYMENT_PROCESSOR_URL", ""),
		ProcessorAPIKey:     getEnv("PAYMENT_PROCESSOR_API_KEY", ""),
		ProcessorRate:       getEnvAsFloat("PAYMENT_PROCESSOR_RATE", DefaultProcessorRate),
		ProcessorMaxRetries: getEnvAsInt("PAYMENT_PROCESSOR_MAX_RETRIES", DefaultProcessorMaxRetries),
		ProcessorRetryWait:  getEnvAsDuration("PAYMENT_PROCESSOR_RETRY_WAIT", DefaultProcessorRetryWait),

		PayoutReconcileSpec:  getEnv("PAYOUT_RECONCILE_SPEC", DefaultPayoutReconcileSpec),
		PayoutReconcileGrace: getEnvAsDuration("PAYOUT_RECONCILE_GRACE", DefaultPayoutReconcileGrace),

		SettlementSweepSpec: getEnv("SETTLEMENT_SWEEP_SPEC", DefaultSettlementSweepSpec),
		WorkerCount:         getEnvAsInt("WORKER_COUNT", DefaultWorkerCount),
		WorkerQueueSize:     getEnvAsInt("WORKER_QUEUE_SIZE", DefaultWorkerQueueSize),
		ShutdownTimeout:     getEnvAsDuration("SHUTDOWN_TIMEOUT", DefaultShutdownTimeout),

		EventLogCleanupSpec:   getEnv("EVENT_LOG_CLEANUP_SPEC", DefaultEventLogCleanupSpec),
		EventLogRetentionDays: getEnvAsInt("EVENT_LOG_RETENTION_DAYS", DefaultEventLogRetentionDays),
		EventStreamEnabled:    getEnvAsBool("EVENT_STREAM_ENABLED", DefaultEventStreamEnabled),
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	return cfg, nil
}

// LoadDatabase reads only the database settings. Tools that never serve the
// API use it so they do not need API_KEY.
func LoadDatabase() *Config {
	return &Config{
		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", "prizepool"),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", DefaultDBMaxConnIdleTime),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLifetime),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt parses an integer variable, falling back to the default when unset or invalid
func getEnvAsInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvAsBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

// getEnvAsDuration parses a Go duration string such as "30s" or "5m"
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

// getEnvAsList splits a comma separated variable, dropping empty entries
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// IsDevelopment reports whether source locations should be logged
func (c *Config) IsDevelopment() bool {
	return c.Environment == "dev" || c.Environment == "development"
}
