package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/constants"
)

var (
	ErrMissingRequiredEnv = errors.New("missing required environment variable")
	ErrInvalidSecretKey   = errors.New("SECRET_KEY must be at least 32 bytes")
	ErrInvalidDuration    = errors.New("invalid duration")
	ErrInvalidNumber      = errors.New("invalid number")
)

type PantryConfig struct {
	HTTPPort            string
	DatabaseURL         string
	SessionSecret       string
	SessionTTL          time.Duration
	SessionCookieSecure bool
	RequestTimeout      time.Duration
	Recipe              RecipeAPIConfig
}

type RecipeAPIConfig struct {
	BaseURL                 string
	APIKey                  string
	Timeout                 time.Duration
	CircuitBreakerThreshold int32
	CircuitBreakerReset     time.Duration
}

func (c RecipeAPIConfig) Configured() bool {
	return c.APIKey != ""
}

func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	existing := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

func LoadPantryConfig() (PantryConfig, error) {
	secret, err := mustEnv("SECRET_KEY")
	if err != nil {
		return PantryConfig{}, err
	}

	if err := validateSessionSecret(secret); err != nil {
		return PantryConfig{}, err
	}

	databaseURL, err := mustEnv("DATABASE_URL")
	if err != nil {
		return PantryConfig{}, err
	}

	sessionTTL, err := positiveDurationEnv("SESSION_TTL", constants.DefaultSessionTTL)
	if err != nil {
		return PantryConfig{}, err
	}

	requestTimeout, err := positiveDurationEnv("PANTRY_REQUEST_TIMEOUT", constants.DefaultPantryRequestTimeout)
	if err != nil {
		return PantryConfig{}, err
	}

	recipeTimeout, err := positiveDurationEnv("RECIPE_API_TIMEOUT", constants.DefaultRecipeAPITimeout)
	if err != nil {
		return PantryConfig{}, err
	}

	breakerReset, err := positiveDurationEnv("RECIPE_API_CB_RESET", constants.DefaultCircuitBreakerReset)
	if err != nil {
		return PantryConfig{}, err
	}

	breakerThreshold, err := positiveIntEnv("RECIPE_API_CB_THRESHOLD", constants.DefaultCircuitBreakerThreshold)
	if err != nil {
		return PantryConfig{}, err
	}

	return PantryConfig{
		HTTPPort:            getEnv("PANTRY_HTTP_PORT", constants.DefaultPantryHTTPPort),
		DatabaseURL:         databaseURL,
		SessionSecret:       secret,
		SessionTTL:          sessionTTL,
		SessionCookieSecure: getBoolEnv("SESSION_COOKIE_SECURE", false),
		RequestTimeout:      requestTimeout,
		Recipe: RecipeAPIConfig{
			BaseURL:                 strings.TrimRight(getEnv("SPOONACULAR_BASE_URL", constants.DefaultRecipeAPIBaseURL), "/"),
			APIKey:                  strings.TrimSpace(os.Getenv("SPOONACULAR_API_KEY")),
			Timeout:                 clampRecipeTimeout(recipeTimeout),
			CircuitBreakerThreshold: int32(breakerThreshold),
			CircuitBreakerReset:     breakerReset,
		},
	}, nil
}

func clampRecipeTimeout(d time.Duration) time.Duration {
	if d < constants.RecipeAPIMinTimeout {
		return constants.RecipeAPIMinTimeout
	}
	if d > constants.RecipeAPIMaxTimeout {
		return constants.RecipeAPIMaxTimeout
	}
	return d
}

func validateSessionSecret(secret string) error {
	if len(secret) < constants.SessionSecretMinLength {
		return fmt.Errorf("%w: got %d bytes", ErrInvalidSecretKey, len(secret))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func mustEnv(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingRequiredEnv, key)
	}
	return v, nil
}

func positiveDurationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidDuration, key, v)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %s must be positive, got %q", ErrInvalidDuration, key, v)
	}
	return d, nil
}

func positiveIntEnv(key string, fallback int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil || i <= 0 || i > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %s must be a positive integer, got %q", ErrInvalidNumber, key, v)
	}
	return i, nil
}

func getBoolEnv(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
