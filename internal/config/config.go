package config

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Generation bounds accepted by the review form
const (
	MinTemperature = 0.0
	MaxTemperature = 1.5
	MinMaxTokens   = 128
	MaxMaxTokens   = 8192
)

// Transports understood by the LLM factory
const (
	TransportREST = "rest"
	TransportSDK  = "sdk"
)

// SupportedModels is the fixed set of Gemini models offered for review.
// The first entry is the default.
var SupportedModels = []string{
	"gemini-1.5-flash",
	"gemini-2.0-flash",
	"gemini-2.5-flash",
}

// DefaultModel returns the model used when none is configured
func DefaultModel() string {
	return SupportedModels[0]
}

// IsSupportedModel reports whether model is one of SupportedModels
func IsSupportedModel(model string) bool {
	return slices.Contains(SupportedModels, model)
}

// Config represents the complete application configuration
type Config struct {
	Gemini    GeminiConfig
	Review    ReviewConfig
	Logging   LoggingConfig
	configDir string // Internal: Directory where config was loaded from
}

// GeminiConfig holds Gemini API configuration
type GeminiConfig struct {
	// Authentication and connection
	APIKey     string // Gemini API key (optional, see Credentials)
	BaseURL    string // Gemini API base URL
	APIVersion string // API version (v1 or v1beta)
	Transport  string // rest or sdk

	// Model settings
	Model string

	// Request settings
	Timeout time.Duration // HTTP timeout, 0 leaves the call unbounded

	// Generation parameters
	MaxTokens   int
	Temperature float64

	// Rate limiting
	RequestsPerMinute int
	BurstLimit        int
}

// ReviewConfig holds prompt settings
type ReviewConfig struct {
	Language string // Fence language used when none can be detected
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level      string // debug, info, warn, error, none
	Format     string // text or json
	Output     string // stdout, stderr, or file path
	AddSource  bool   // Include source code position in logs
	TimeFormat string // Time format for logs (empty uses RFC3339)
}

// New returns a Config holding the built-in defaults
func New() *Config {
	return &Config{
		Gemini: GeminiConfig{
			BaseURL:     "https://generativelanguage.googleapis.com",
			APIVersion:  "v1beta",
			Transport:   TransportREST,
			Model:       DefaultModel(),
			MaxTokens:   800,
			Temperature: 0.0,
			BurstLimit:  1,
		},
		Review: ReviewConfig{
			Language: "python",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "text",
			Output:     "stderr",
			AddSource:  true,
			TimeFormat: time.RFC3339,
		},
	}
}

// ConfigDir returns the directory the configuration was loaded from
func (c *Config) ConfigDir() string {
	return c.configDir
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.validateGemini(); err != nil {
		return fmt.Errorf("Gemini config: %w", err)
	}

	if err := c.validateLogging(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	if strings.TrimSpace(c.Review.Language) == "" {
		c.Review.Language = "python"
	}

	return nil
}

// ParseLogLevel parses a log level string to a slog.Level
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "none":
		// Set to a very high level that won't be triggered
		return slog.Level(9999)
	default:
		return slog.LevelInfo
	}
}

func (c *Config) validateGemini() error {
	if c.Gemini.BaseURL == "" {
		return fmt.Errorf("base URL cannot be empty")
	}

	if c.Gemini.APIVersion != "v1" && c.Gemini.APIVersion != "v1beta" {
		return fmt.Errorf("invalid API version: %s (must be v1 or v1beta)", c.Gemini.APIVersion)
	}

	c.Gemini.Transport = strings.ToLower(c.Gemini.Transport)
	if c.Gemini.Transport == "" {
		c.Gemini.Transport = TransportREST
	}
	if c.Gemini.Transport != TransportREST && c.Gemini.Transport != TransportSDK {
		return fmt.Errorf("invalid transport: %s (must be %s or %s)", c.Gemini.Transport, TransportREST, TransportSDK)
	}

	if c.Gemini.Model == "" {
		c.Gemini.Model = DefaultModel()
	}
	if !IsSupportedModel(c.Gemini.Model) {
		return fmt.Errorf("unsupported model: %s (must be one of %s)", c.Gemini.Model, strings.Join(SupportedModels, ", "))
	}

	if err := ValidateTemperature(c.Gemini.Temperature); err != nil {
		return err
	}

	if err := ValidateMaxTokens(c.Gemini.MaxTokens); err != nil {
		return err
	}

	if c.Gemini.Timeout < 0 {
		return fmt.Errorf("timeout cannot be negative")
	}

	if c.Gemini.RequestsPerMinute < 0 {
		return fmt.Errorf("requests per minute cannot be negative")
	}

	if c.Gemini.BurstLimit <= 0 {
		c.Gemini.BurstLimit = 1
	}

	return nil
}

// ValidateTemperature checks t against [MinTemperature, MaxTemperature].
// NaN and infinities are rejected.
func ValidateTemperature(t float64) error {
	if math.IsNaN(t) || math.IsInf(t, 0) || t < MinTemperature || t > MaxTemperature {
		return fmt.Errorf("temperature %.2f out of range [%.1f, %.1f]", t, MinTemperature, MaxTemperature)
	}
	return nil
}

// ValidateMaxTokens checks n against [MinMaxTokens, MaxMaxTokens]
func ValidateMaxTokens(n int) error {
	if n < MinMaxTokens || n > MaxMaxTokens {
		return fmt.Errorf("max output tokens %d out of range [%d, %d]", n, MinMaxTokens, MaxMaxTokens)
	}
	return nil
}

func (c *Config) validateLogging() error {
	level := strings.ToLower(c.Logging.Level)
	if level != "debug" && level != "info" && level != "warn" && level != "error" && level != "none" {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	format := strings.ToLower(c.Logging.Format)
	if format != "text" && format != "json" {
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}

	return nil
}

// getEnvString returns a string from the environment variable
func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt returns an int from the environment variable
func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool returns a bool from the environment variable
func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvDuration returns a time.Duration from the environment variable
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getEnvFloat returns a float64 from the environment variable
func getEnvFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getTimeFormat converts a named time format to its actual format string
func getTimeFormat(name string) string {
	switch name {
	case "RFC3339":
		return time.RFC3339
	case "RFC3339Nano":
		return time.RFC3339Nano
	case "Kitchen":
		return time.Kitchen
	case "DateTime":
		return time.DateTime
	case "Stamp":
		return time.Stamp
	default:
		return name
	}
}

// defaultConfigDir returns ~/.pastereview
func defaultConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".pastereview"), nil
}
