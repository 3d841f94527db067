package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration for the reconciliation service.
type Config struct {
	Port              int
	LogLevel          string
	MaxEntries        int
	MaxReports        int
	ReportTTL         time.Duration
	RetentionInterval time.Duration
	CurrencyPrefix    string
	DefaultParty      string
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
}

// Load reads configuration from environment variables, applies defaults,
// and validates values. It returns an error for any invalid value.
func Load() (*Config, error) {
	port, err := getInt("PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	logLevel := getStr("LOG_LEVEL", "info")
	if !isValidLogLevel(logLevel) {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %q, must be one of: debug, info, warn, error", logLevel)
	}

	maxEntries, err := getInt("MAX_ENTRIES", 10000)
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_ENTRIES: %w", err)
	}
	if maxEntries < 1 {
		return nil, fmt.Errorf("invalid MAX_ENTRIES: %d, must be >= 1", maxEntries)
	}

	maxReports, err := getInt("MAX_REPORTS", 1000)
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_REPORTS: %w", err)
	}
	if maxReports < 1 {
		return nil, fmt.Errorf("invalid MAX_REPORTS: %d, must be >= 1", maxReports)
	}

	reportTTL, err := getDuration("REPORT_TTL", 1*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("invalid REPORT_TTL: %w", err)
	}

	retentionInterval, err := getDuration("RETENTION_INTERVAL", 1*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("invalid RETENTION_INTERVAL: %w", err)
	}
	if retentionInterval <= 0 {
		return nil, fmt.Errorf("invalid RETENTION_INTERVAL: %v, must be positive", retentionInterval)
	}

	readTimeout, err := getDuration("READ_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := getDuration("WRITE_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid WRITE_TIMEOUT: %w", err)
	}

	idleTimeout, err := getDuration("IDLE_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid IDLE_TIMEOUT: %w", err)
	}

	shutdownTimeout, err := getDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
	}

	return &Config{
		Port:              port,
		LogLevel:          logLevel,
		MaxEntries:        maxEntries,
		MaxReports:        maxReports,
		ReportTTL:         reportTTL,
		RetentionInterval: retentionInterval,
		CurrencyPrefix:    getStr("CURRENCY_PREFIX", "₹"),
		DefaultParty:      getStr("DEFAULT_PARTY", "Unnamed Party"),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ShutdownTimeout:   shutdownTimeout,
	}, nil
}

func getStr(key, defaultVal string) string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v
}

func getInt(key string, defaultVal int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(v)
}

func getDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	return time.ParseDuration(v)
}

func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}
