package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// LoadFromEnv loads configuration from environment variables, after merging
// in a .env file. Variables already present in the process environment win
// over the file.
//
// configDir defaults to ~/.pastereview; configFilePath defaults to
// configDir/.env. ENV_FILE_PATH, when set, names the only file loaded.
func LoadFromEnv(configDir string, configFilePath string) (*Config, error) {
	if configDir == "" {
		dir, err := defaultConfigDir()
		if err != nil {
			return nil, err
		}
		configDir = dir
	}

	if configFilePath == "" {
		configFilePath = filepath.Join(configDir, ".env")
	}

	if envFilePath := getEnvString("ENV_FILE_PATH", ""); envFilePath != "" {
		if err := godotenv.Load(envFilePath); err != nil {
			return nil, fmt.Errorf("failed to load env file from %s: %w", envFilePath, err)
		}
	} else if err := godotenv.Load(configFilePath); err != nil {
		// Then try current directory as fallback
		_ = godotenv.Load()
	}

	defaults := New()
	cfg := &Config{configDir: configDir}

	cfg.Gemini = GeminiConfig{
		APIKey:            getEnvString("PASTEREVIEW_GEMINI_API_KEY", ""),
		BaseURL:           getEnvString("PASTEREVIEW_GEMINI_BASE_URL", defaults.Gemini.BaseURL),
		APIVersion:        getEnvString("PASTEREVIEW_GEMINI_API_VERSION", defaults.Gemini.APIVersion),
		Transport:         getEnvString("PASTEREVIEW_GEMINI_TRANSPORT", defaults.Gemini.Transport),
		Model:             getEnvString("PASTEREVIEW_GEMINI_MODEL", defaults.Gemini.Model),
		Timeout:           getEnvDuration("PASTEREVIEW_GEMINI_TIMEOUT", 0),
		MaxTokens:         getEnvInt("PASTEREVIEW_GEMINI_MAX_TOKENS", defaults.Gemini.MaxTokens),
		Temperature:       getEnvFloat("PASTEREVIEW_GEMINI_TEMPERATURE", defaults.Gemini.Temperature),
		RequestsPerMinute: getEnvInt("PASTEREVIEW_GEMINI_REQUESTS_PER_MINUTE", 0),
		BurstLimit:        getEnvInt("PASTEREVIEW_GEMINI_BURST_LIMIT", defaults.Gemini.BurstLimit),
	}

	cfg.Review = ReviewConfig{
		Language: getEnvString("PASTEREVIEW_REVIEW_LANGUAGE", defaults.Review.Language),
	}

	cfg.Logging = LoggingConfig{
		Level:      getEnvString("PASTEREVIEW_LOG_LEVEL", defaults.Logging.Level),
		Format:     getEnvString("PASTEREVIEW_LOG_FORMAT", defaults.Logging.Format),
		Output:     getEnvString("PASTEREVIEW_LOG_OUTPUT", filepath.Join(configDir, "pastereview.log")),
		AddSource:  getEnvBool("PASTEREVIEW_LOG_ADD_SOURCE", defaults.Logging.AddSource),
		TimeFormat: getTimeFormat(getEnvString("PASTEREVIEW_LOG_TIME_FORMAT", time.RFC3339)),
	}

	return cfg, cfg.Validate()
}

// lookupEnv is swapped in tests
var lookupEnv = os.LookupEnv
