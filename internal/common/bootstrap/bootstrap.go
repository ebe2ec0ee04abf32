package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhttp "github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/auth/http"
	authrepo "github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/auth/repository"
	authservice "github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/auth/service"
	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/clock"
	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/config"
	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/constants"
	commoncrypto "github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/crypto"
	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/db"
	commonhttp "github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/http"
	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/jwtverify"
	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/logger"
	ingredienthttp "github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/ingredient/http"
	ingredientrepo "github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/ingredient/repository"
	ingredientservice "github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/ingredient/service"
	recipeclient "github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/recipe/client"
	recipehttp "github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/recipe/http"
	recipeservice "github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/recipe/service"
	userrepo "github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/user/repository"
)

type App struct {
	Log         *logger.Logger
	Config      config.PantryConfig
	Pool        *pgxpool.Pool
	Auth        *authservice.AuthService
	Ingredients *ingredientservice.IngredientService
	Recipes     *recipeservice.RecipeService
}

type Services struct {
	Auth        *authservice.AuthService
	Ingredients *ingredientservice.IngredientService
	Recipes     *recipeservice.RecipeService
	Ready       func(ctx context.Context) error
}

type Repositories struct {
	Users       userrepo.Repository
	Revocations authrepo.SessionRevocationRepository
	Ingredients ingredientrepo.Repository
}

func NewApp(ctx context.Context) (*App, error) {
	log, err := initializeLogger("pantry")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	cfg, err := config.LoadPantryConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	pool, err := db.NewPool(ctx, log, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	if err := db.MigratePool(ctx, log, pool); err != nil {
		pool.Close()
		return nil, err
	}

	db.StartPoolMetrics(ctx, pool, constants.DBPoolMetricsInterval)

	repos := Repositories{
		Users:       userrepo.NewPgRepository(pool),
		Revocations: authrepo.NewPgSessionRevocationRepository(pool),
		Ingredients: ingredientrepo.NewPgRepository(pool),
	}
	apiClient := recipeclient.NewSpoonacularClient(cfg.Recipe, log)
	svcs := NewServices(cfg, repos, apiClient, commoncrypto.NewBcryptHasher(), clock.NewRealClock(), log)

	if !cfg.Recipe.Configured() {
		log.Warn("SPOONACULAR_API_KEY is not set: recipe search is disabled and details are mocked")
	}

	return &App{
		Log:         log,
		Config:      cfg,
		Pool:        pool,
		Auth:        svcs.Auth,
		Ingredients: svcs.Ingredients,
		Recipes:     svcs.Recipes,
	}, nil
}

func NewServices(
	cfg config.PantryConfig,
	repos Repositories,
	apiClient recipeclient.Client,
	hasher commoncrypto.PasswordHasher,
	clk clock.Clock,
	log *logger.Logger,
) Services {
	auth := authservice.NewAuthService(
		authservice.AuthServiceDeps{
			Repo:        repos.Users,
			Revocations: repos.Revocations,
			Hasher:      hasher,
			IDGenerator: commoncrypto.NewUUIDGenerator(),
			Clock:       clk,
			Log:         log,
		},
		authservice.AuthServiceConfig{
			SessionSecret: cfg.SessionSecret,
			SessionTTL:    cfg.SessionTTL,
		},
	)
	ingredients := ingredientservice.NewIngredientService(repos.Ingredients, log)
	recipes := recipeservice.NewRecipeService(ingredients, apiClient, cfg.Recipe, log)

	return Services{
		Auth:        auth,
		Ingredients: ingredients,
		Recipes:     recipes,
	}
}

func (a *App) Services() Services {
	return Services{
		Auth:        a.Auth,
		Ingredients: a.Ingredients,
		Recipes:     a.Recipes,
		Ready: func(ctx context.Context) error {
			return db.Ping(ctx, a.Pool)
		},
	}
}

func NewRouter(cfg config.PantryConfig, svcs Services, log *logger.Logger) http.Handler {
	mux := http.NewServeMux()
	requireAuth := jwtverify.Middleware(svcs.Auth, log)

	mux.HandleFunc("GET /health", commonhttp.HealthHandler(log))
	if svcs.Ready != nil {
		mux.HandleFunc("GET /ready", commonhttp.ReadinessHandler(svcs.Ready, log))
	}
	mux.Handle("GET /metrics", promhttp.Handler())

	authhttp.NewHandler(svcs.Auth, authhttp.Config{
		CookieSecure:   cfg.SessionCookieSecure,
		RequestTimeout: cfg.RequestTimeout,
	}, log).Routes(mux)
	ingredienthttp.NewHandler(svcs.Ingredients, requireAuth, cfg.RequestTimeout, log).Routes(mux)
	recipehttp.NewHandler(svcs.Recipes, requireAuth, cfg.RequestTimeout, log).Routes(mux)

	return commonhttp.BuildBaseHandler(log, mux)
}

func initializeLogger(serviceName string) (*logger.Logger, error) {
	return logger.New(os.Getenv("LOG_DIR"), serviceName, os.Getenv("LOG_LEVEL"))
}
