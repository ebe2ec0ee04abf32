package constants

import "time"

const (
	AppName    = "Aunty Pantry"
	AppVersion = "1.0.0"

	EmailMaxLength          = 120
	NameMaxLength           = 100
	PasswordMinLength       = 6
	PasswordMaxLength       = 72
	SessionSecretMinLength  = 32
	IngredientNameMaxLength = 100

	BcryptCost = 12

	DefaultMaxRequestSize = 1 << 20

	SessionCookieName = "pantry_session"
	SessionCookiePath = "/"

	RecipeMaxQueryIngredients = 5
	RecipeResultCount         = 6
	RecipeRankingMaximizeUsed = 1
	RecipeAPIMinTimeout       = 5 * time.Second
	RecipeAPIMaxTimeout       = 10 * time.Second
	RecipeAPIMaxResponseSize  = 2 << 20
	DefaultRecipeAPIBaseURL   = "https://api.spoonacular.com"

	DBPoolMaxConns        = 25
	DBPoolMinConns        = 2
	DBPoolConnMaxLifetime = time.Hour
	DBPoolConnMaxIdleTime = 30 * time.Minute
	DBPoolHealthCheck     = 1 * time.Minute
	DBPoolConnectTimeout  = 5 * time.Second
	DBPoolMaxAttempts     = 10
	DBPoolRetryDelay      = 1 * time.Second
	DBPoolMaxRetryDelay   = 5 * time.Second
	DBPoolMetricsInterval = 30 * time.Second
	DBQueryTimeout        = 10 * time.Second
	DBMigrationTimeout    = 1 * time.Minute
	DBReadinessTimeout    = 2 * time.Second

	ServerReadHeaderTimeout = 10 * time.Second
	ServerReadTimeout       = 30 * time.Second
	ServerWriteTimeout      = 30 * time.Second
	ServerIdleTimeout       = 120 * time.Second

	ShutdownTimeout = 30 * time.Second
	DrainTimeout    = 10 * time.Second

	DefaultPantryHTTPPort       = "5000"
	DefaultPantryRequestTimeout = 15 * time.Second
	DefaultSessionTTL           = 30 * 24 * time.Hour
	DefaultRecipeAPITimeout     = 10 * time.Second

	DefaultCircuitBreakerThreshold = 5
	DefaultCircuitBreakerReset     = 30 * time.Second

	LoggerMaxSize    = 100
	LoggerMaxBackups = 3
	LoggerMaxAge     = 28
)

type TraceIDKeyType string

const TraceIDKey TraceIDKeyType = "trace_id"
