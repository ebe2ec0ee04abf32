package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	IngredientsAdded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pantry_ingredients_added_total",
			Help: "Total number of ingredients added to pantries",
		},
	)

	IngredientsRemoved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pantry_ingredients_removed_total",
			Help: "Total number of ingredients removed from pantries",
		},
	)

	RecipeLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pantry_recipe_lookups_total",
			Help: "Total number of recipe lookups by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	RecipeAPIRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pantry_recipe_api_request_duration_seconds",
			Help:    "Duration of outbound recipe API requests in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"endpoint", "status"},
	)
)
