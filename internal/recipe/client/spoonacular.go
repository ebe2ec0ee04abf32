package client

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/config"
	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/constants"
	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/logger"
	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/observability/metrics"
	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/recipe/domain"
)

var (
	ErrUnavailable = errors.New("recipe api unavailable")
	ErrBadResponse = errors.New("recipe api returned an unreadable response")
)

type Client interface {
	FindByIngredients(ctx context.Context, names []string) ([]domain.RecipeSummary, error)
	RecipeInformation(ctx context.Context, id int64) (domain.RecipeDetail, error)
}

type SpoonacularClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *logger.Logger
}

func NewSpoonacularClient(cfg config.RecipeAPIConfig, log *logger.Logger) *SpoonacularClient {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = constants.DefaultRecipeAPIBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = constants.DefaultRecipeAPITimeout
	}

	return &SpoonacularClient{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy:           http.ProxyFromEnvironment,
				TLSClientConfig: &tls.Config{MinVersion: tls.VersionTLS12},
			},
		},
		log: log,
	}
}

type namedIngredient struct {
	Name string `json:"name"`
}

type findByIngredientsItem struct {
	ID                    int64             `json:"id"`
	Title                 string            `json:"title"`
	Image                 string            `json:"image"`
	UsedIngredientCount   int               `json:"usedIngredientCount"`
	MissedIngredientCount int               `json:"missedIngredientCount"`
	MissedIngredients     []namedIngredient `json:"missedIngredients"`
	UsedIngredients       []namedIngredient `json:"usedIngredients"`
}

type extendedIngredient struct {
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
	Name   string  `json:"name"`
}

type recipeInformation struct {
	ID                  int64                `json:"id"`
	Title               string               `json:"title"`
	Image               string               `json:"image"`
	Servings            *int                 `json:"servings"`
	ReadyInMinutes      *int                 `json:"readyInMinutes"`
	SourceURL           *string              `json:"sourceUrl"`
	Instructions        *string              `json:"instructions"`
	ExtendedIngredients []extendedIngredient `json:"extendedIngredients"`
}

func (c *SpoonacularClient) FindByIngredients(ctx context.Context, names []string) ([]domain.RecipeSummary, error) {
	params := url.Values{}
	params.Set("ingredients", strings.Join(names, ","))
	params.Set("number", strconv.Itoa(constants.RecipeResultCount))
	params.Set("ranking", strconv.Itoa(constants.RecipeRankingMaximizeUsed))
	params.Set("ignorePantry", "true")
	params.Set("apiKey", c.apiKey)

	var items []findByIngredientsItem
	if err := c.get(ctx, "find_by_ingredients", "/recipes/findByIngredients", params, &items); err != nil {
		return nil, err
	}

	recipes := make([]domain.RecipeSummary, 0, len(items))
	for _, it := range items {
		recipes = append(recipes, domain.RecipeSummary{
			ID:                    it.ID,
			Title:                 it.Title,
			Image:                 it.Image,
			UsedIngredientCount:   it.UsedIngredientCount,
			MissedIngredientCount: it.MissedIngredientCount,
			MissedIngredients:     ingredientNames(it.MissedIngredients),
			UsedIngredients:       ingredientNames(it.UsedIngredients),
		})
	}
	return recipes, nil
}

func (c *SpoonacularClient) RecipeInformation(ctx context.Context, id int64) (domain.RecipeDetail, error) {
	params := url.Values{}
	params.Set("includeNutrition", "false")
	params.Set("apiKey", c.apiKey)

	var info recipeInformation
	path := fmt.Sprintf("/recipes/%d/information", id)
	if err := c.get(ctx, "recipe_information", path, params, &info); err != nil {
		return domain.RecipeDetail{}, err
	}

	detail := domain.RecipeDetail{
		ID:             info.ID,
		Title:          info.Title,
		Image:          info.Image,
		Servings:       domain.DefaultServings,
		ReadyInMinutes: domain.DefaultReadyInMinutes,
		SourceURL:      domain.DefaultSourceURL,
		Instructions:   domain.DefaultInstructions,
		Ingredients:    make([]string, 0, len(info.ExtendedIngredients)),
	}
	if info.Servings != nil {
		detail.Servings = *info.Servings
	}
	if info.ReadyInMinutes != nil {
		detail.ReadyInMinutes = *info.ReadyInMinutes
	}
	if info.SourceURL != nil && *info.SourceURL != "" {
		detail.SourceURL = *info.SourceURL
	}
	if info.Instructions != nil && *info.Instructions != "" {
		detail.Instructions = *info.Instructions
	}
	for _, ing := range info.ExtendedIngredients {
		detail.Ingredients = append(detail.Ingredients, ingredientLine(ing))
	}
	return detail, nil
}

func (c *SpoonacularClient) get(ctx context.Context, endpoint, path string, params url.Values, out any) error {
	endpointURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpointURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			metrics.RecipeAPIRequestDurationSeconds.WithLabelValues(endpoint, "canceled").Observe(time.Since(start).Seconds())
			return fmt.Errorf("%s request abandoned: %w", endpoint, ctxErr)
		}
		metrics.RecipeAPIRequestDurationSeconds.WithLabelValues(endpoint, "transport_error").Observe(time.Since(start).Seconds())
		c.log.WithFields(ctx, logger.Fields{
			"endpoint": endpoint,
			"action":   "recipe_api_transport_error",
		}).Warnf("recipe api request failed: %v", redact(err, c.apiKey))
		return fmt.Errorf("%w: %s: %v", ErrUnavailable, endpoint, redact(err, c.apiKey))
	}
	defer resp.Body.Close()

	metrics.RecipeAPIRequestDurationSeconds.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Observe(time.Since(start).Seconds())

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, constants.RecipeAPIMaxResponseSize))
		c.log.WithFields(ctx, logger.Fields{
			"endpoint": endpoint,
			"status":   resp.StatusCode,
			"action":   "recipe_api_bad_status",
		}).Warn("recipe api returned non-success status")
		return fmt.Errorf("%w: %s: status %d", ErrUnavailable, endpoint, resp.StatusCode)
	}

	body := io.LimitReader(resp.Body, constants.RecipeAPIMaxResponseSize)
	if err := json.NewDecoder(body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrBadResponse, endpoint, err)
	}
	return nil
}

func ingredientNames(items []namedIngredient) []string {
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.Name)
	}
	return names
}

func ingredientLine(ing extendedIngredient) string {
	return fmt.Sprintf("%s %s %s", strconv.FormatFloat(ing.Amount, 'f', -1, 64), ing.Unit, ing.Name)
}

func redact(err error, apiKey string) string {
	msg := err.Error()
	if apiKey == "" {
		return msg
	}
	return strings.ReplaceAll(msg, url.QueryEscape(apiKey), "REDACTED")
}
