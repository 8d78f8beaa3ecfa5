package core

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	itemsRegistered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "craftcore_items_registered_total",
			Help: "Total number of items registered in the content registry",
		},
	)

	tilesRegistered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "craftcore_tiles_registered_total",
			Help: "Total number of crafting station tiles registered",
		},
	)

	recipesRegistered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "craftcore_recipes_registered_total",
			Help: "Total number of recipes accepted by the recipe registry",
		},
	)

	recipeRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "craftcore_recipe_rejections_total",
			Help: "Total number of recipe registrations rejected",
		},
		[]string{"reason"},
	)

	recipeViolations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "craftcore_recipe_violations_total",
			Help: "Total number of rule violations observed during registration",
		},
		[]string{"severity"},
	)
)

// Rejection reasons used as metric label values.
const (
	rejectBlocked = "blocked"
	rejectError   = "error"
)
