package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/config"
	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/logger"
)

func newTestClient(t *testing.T, baseURL string) *SpoonacularClient {
	t.Helper()
	log, _ := logger.New("", "test", "error")
	return NewSpoonacularClient(config.RecipeAPIConfig{
		BaseURL: baseURL,
		APIKey:  "test-key",
		Timeout: 5 * time.Second,
	}, log)
}

func TestFindByIngredients_QueryAndMapping(t *testing.T) {
	var gotPath string
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		q := r.URL.Query()
		gotQuery = map[string]string{
			"ingredients":  q.Get("ingredients"),
			"number":       q.Get("number"),
			"ranking":      q.Get("ranking"),
			"ignorePantry": q.Get("ignorePantry"),
			"apiKey":       q.Get("apiKey"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{
			"id": 715538,
			"title": "Bruschetta",
			"image": "https://img.spoonacular.com/recipes/715538-312x231.jpg",
			"usedIngredientCount": 2,
			"missedIngredientCount": 1,
			"missedIngredients": [{"id": 1, "name": "bread", "amount": 1}],
			"usedIngredients": [{"name": "tomato"}, {"name": "basil"}],
			"likes": 10
		}]`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	recipes, err := c.FindByIngredients(context.Background(), []string{"tomato", "basil"})
	require.NoError(t, err)

	assert.Equal(t, "/recipes/findByIngredients", gotPath)
	assert.Equal(t, map[string]string{
		"ingredients":  "tomato,basil",
		"number":       "6",
		"ranking":      "1",
		"ignorePantry": "true",
		"apiKey":       "test-key",
	}, gotQuery)

	require.Len(t, recipes, 1)
	assert.Equal(t, int64(715538), recipes[0].ID)
	assert.Equal(t, "Bruschetta", recipes[0].Title)
	assert.Equal(t, []string{"bread"}, recipes[0].MissedIngredients)
	assert.Equal(t, []string{"tomato", "basil"}, recipes[0].UsedIngredients)
}

func TestFindByIngredients_NonSuccessStatusIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).FindByIngredients(context.Background(), []string{"egg"})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestFindByIngredients_TransportErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := newTestClient(t, url).FindByIngredients(context.Background(), []string{"egg"})
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.NotContains(t, err.Error(), "test-key")
}

func TestFindByIngredients_BadBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not": "a list"`))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).FindByIngredients(context.Background(), []string{"egg"})
	assert.ErrorIs(t, err, ErrBadResponse)
	assert.NotErrorIs(t, err, ErrUnavailable)
}

func TestRecipeInformation_MappingAndDefaults(t *testing.T) {
	var gotPath, gotNutrition string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotNutrition = r.URL.Query().Get("includeNutrition")
		_, _ = w.Write([]byte(`{
			"id": 9,
			"title": "Pancakes",
			"image": "https://img/9.jpg",
			"extendedIngredients": [
				{"amount": 2, "unit": "cups", "name": "flour"},
				{"amount": 0.5, "unit": "tsp", "name": "salt"}
			]
		}`))
	}))
	defer srv.Close()

	detail, err := newTestClient(t, srv.URL).RecipeInformation(context.Background(), 9)
	require.NoError(t, err)

	assert.Equal(t, "/recipes/9/information", gotPath)
	assert.Equal(t, "false", gotNutrition)
	assert.Equal(t, int64(9), detail.ID)
	assert.Equal(t, 1, detail.Servings)
	assert.Equal(t, 30, detail.ReadyInMinutes)
	assert.Equal(t, "#", detail.SourceURL)
	assert.Equal(t, "No instructions available.", detail.Instructions)
	assert.Equal(t, []string{"2 cups flour", "0.5 tsp salt"}, detail.Ingredients)
}

func TestRecipeInformation_ProvidedFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"id": 3, "title": "Soup", "image": "i",
			"servings": 6, "readyInMinutes": 45,
			"sourceUrl": "https://example.com/soup",
			"instructions": "Boil."
		}`))
	}))
	defer srv.Close()

	detail, err := newTestClient(t, srv.URL).RecipeInformation(context.Background(), 3)
	require.NoError(t, err)

	assert.Equal(t, 6, detail.Servings)
	assert.Equal(t, 45, detail.ReadyInMinutes)
	assert.Equal(t, "https://example.com/soup", detail.SourceURL)
	assert.Equal(t, "Boil.", detail.Instructions)
	assert.NotNil(t, detail.Ingredients)
}

func TestFindByIngredients_CallerCancellationIsNotUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(t, srv.URL).FindByIngredients(ctx, []string{"egg"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrUnavailable)

	expired, cancelExpired := context.WithTimeout(context.Background(), -time.Second)
	defer cancelExpired()

	_, err = newTestClient(t, srv.URL).RecipeInformation(expired, 1)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotErrorIs(t, err, ErrUnavailable)
}
