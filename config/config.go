package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

const (
	DefaultAPIURL       = "https://router.huggingface.co/nebius/v1/chat/completions"
	DefaultModelID      = "google/gemma-3-27b-it-fast"
	DefaultModelLabel   = "AgriAssist_LLM"
	DefaultMaxNewTokens = 512
	DefaultHost         = "0.0.0.0"
	DefaultPort         = 7860
	DefaultDBDriver     = "sqlite"
	DefaultDBDSN        = "flagged.db"

	FlaggingNever  = "never"
	FlaggingManual = "manual"
)

var ErrMissingToken = errors.New("hugging face token not found, set the HF_TOKEN environment variable or secret")

var (
	flaggingModes = []string{FlaggingNever, FlaggingManual}
	dbDrivers     = []string{"sqlite", "postgres"}
)

// Config is built once at startup and shared read-only afterwards.
type Config struct {
	APIURL       string
	ModelID      string
	ModelLabel   string
	Token        string
	MaxNewTokens int
	// Temperature and TopP are nil unless set, and are then left out of the request body.
	Temperature *float64
	TopP        *float64
	Timeout     time.Duration

	Host string
	Port int

	FlaggingMode string
	DBDriver     string
	DBDSN        string

	TelegramToken string
}

// Init loads config/.env.<APP_ENV>.local and config/.env.<APP_ENV> into the
// process environment. Files that don't exist are skipped, variables that are
// already set are left alone.
func Init() error {
	exPath, err := os.Getwd()
	if err != nil {
		return err
	}
	return LoadEnvFiles(filepath.Join(exPath, "config"))
}

func LoadEnvFiles(dir string) error {
	appEnv, exists := os.LookupEnv("APP_ENV")
	if !exists {
		appEnv = "dev"
	}
	var files []string
	for _, name := range []string{".env." + appEnv + ".local", ".env." + appEnv} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			files = append(files, path)
		}
	}
	if len(files) == 0 {
		log.Printf("No env files found in %s, using process environment\n", dir)
		return nil
	}
	if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("loading env files: %w", err)
	}
	log.Printf("Loaded ENV variables from %v\n", files)
	return nil
}

// Load reads the configuration from the environment. A missing HF_TOKEN
// returns ErrMissingToken.
func Load() (*Config, error) {
	token := os.Getenv("HF_TOKEN")
	if token == "" {
		return nil, ErrMissingToken
	}
	c := &Config{
		APIURL:        getEnv("INFERENCE_API_URL", DefaultAPIURL),
		ModelID:       getEnv("MODEL_ID", DefaultModelID),
		ModelLabel:    getEnv("MODEL_LABEL", DefaultModelLabel),
		Token:         token,
		Host:          getEnv("HTTP_SERVER_HOST", DefaultHost),
		FlaggingMode:  getEnv("FLAGGING_MODE", FlaggingNever),
		DBDriver:      getEnv("DB_DRIVER", DefaultDBDriver),
		DBDSN:         getEnv("DB_DSN", DefaultDBDSN),
		TelegramToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
	}

	var err error
	if c.MaxNewTokens, err = getPositiveInt("MAX_NEW_TOKENS", DefaultMaxNewTokens); err != nil {
		return nil, err
	}
	if c.Port, err = getPositiveInt("HTTP_SERVER_PORT", DefaultPort); err != nil {
		return nil, err
	}
	if c.Temperature, err = getDecimal("TEMPERATURE", decimal.Zero, decimal.NewFromInt(2), true); err != nil {
		return nil, err
	}
	if c.TopP, err = getDecimal("TOP_P", decimal.Zero, decimal.NewFromInt(1), false); err != nil {
		return nil, err
	}
	if raw := os.Getenv("INFERENCE_TIMEOUT"); raw != "" {
		c.Timeout, err = time.ParseDuration(raw)
		if err != nil || c.Timeout < 0 {
			return nil, fmt.Errorf("INFERENCE_TIMEOUT must be a non-negative duration, got %q", raw)
		}
	}
	if !slices.Contains(flaggingModes, c.FlaggingMode) {
		return nil, fmt.Errorf("FLAGGING_MODE must be one of %v, got %q", flaggingModes, c.FlaggingMode)
	}
	if !slices.Contains(dbDrivers, c.DBDriver) {
		return nil, fmt.Errorf("DB_DRIVER must be one of %v, got %q", dbDrivers, c.DBDriver)
	}
	return c, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *Config) FlaggingEnabled() bool {
	return c.FlaggingMode == FlaggingManual
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getPositiveInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, raw)
	}
	return n, nil
}

// getDecimal parses key as a decimal in [min, max]. With inclusiveMin false
// the lower bound itself is rejected.
func getDecimal(key string, min, max decimal.Decimal, inclusiveMin bool) (*float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be a number, got %q", key, raw)
	}
	tooLow := d.LessThan(min) || (!inclusiveMin && d.Equal(min))
	if tooLow || d.GreaterThan(max) {
		return nil, fmt.Errorf("%s must be within %s..%s, got %s", key, min, max, d)
	}
	f, _ := d.Float64()
	return &f, nil
}
