package domain

import (
	"fmt"
)

type RecipeSummary struct {
	ID                    int64    `json:"id"`
	Title                 string   `json:"title"`
	Image                 string   `json:"image"`
	UsedIngredientCount   int      `json:"usedIngredientCount"`
	MissedIngredientCount int      `json:"missedIngredientCount"`
	MissedIngredients     []string `json:"missedIngredients"`
	UsedIngredients       []string `json:"usedIngredients"`
}

type RecipeDetail struct {
	ID             int64    `json:"id"`
	Title          string   `json:"title"`
	Image          string   `json:"image"`
	Servings       int      `json:"servings"`
	ReadyInMinutes int      `json:"readyInMinutes"`
	SourceURL      string   `json:"sourceUrl"`
	Instructions   string   `json:"instructions"`
	Ingredients    []string `json:"ingredients"`
}

const (
	DefaultServings       = 1
	DefaultReadyInMinutes = 30
	DefaultSourceURL      = "#"
	DefaultInstructions   = "No instructions available."
)

// MockRecipes is served when the recipe API cannot be reached. The result
// depends only on names.
func MockRecipes(names []string) []RecipeSummary {
	first := func(fallback string) string {
		if len(names) > 0 {
			return names[0]
		}
		return fallback
	}

	return []RecipeSummary{
		{
			ID:                    1,
			Title:                 "Chicken with " + first("Vegetables"),
			Image:                 "https://spoonacular.com/recipeImages/1-312x231.jpg",
			UsedIngredientCount:   min(2, len(names)),
			MissedIngredientCount: 3,
			MissedIngredients:     []string{"olive oil", "garlic", "salt"},
			UsedIngredients:       head(names, 2),
		},
		{
			ID:                    2,
			Title:                 "Stir Fry with " + first("Ingredients"),
			Image:                 "https://spoonacular.com/recipeImages/2-312x231.jpg",
			UsedIngredientCount:   min(1, len(names)),
			MissedIngredientCount: 4,
			MissedIngredients:     []string{"soy sauce", "ginger", "onion", "sesame oil"},
			UsedIngredients:       head(names, 1),
		},
	}
}

func MockRecipeDetail(id int64) RecipeDetail {
	return RecipeDetail{
		ID:             id,
		Title:          fmt.Sprintf("Delicious Recipe #%d", id),
		Image:          fmt.Sprintf("https://spoonacular.com/recipeImages/%d-312x231.jpg", id),
		Servings:       4,
		ReadyInMinutes: 30,
		SourceURL:      fmt.Sprintf("https://spoonacular.com/recipe/%d", id),
		Instructions:   "1. Prepare all ingredients. 2. Cook according to your preference. 3. Serve hot and enjoy!",
		Ingredients: []string{
			"2 cups main ingredient",
			"1 tablespoon oil",
			"Salt and pepper to taste",
			"1 teaspoon herbs",
		},
	}
}

func head(names []string, n int) []string {
	if len(names) < n {
		n = len(names)
	}
	out := make([]string, n)
	copy(out, names[:n])
	return out
}
