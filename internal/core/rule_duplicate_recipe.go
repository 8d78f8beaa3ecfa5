package core

import (
	"context"
	"fmt"

	"craftcore/pkg/domain"
)

// NewDuplicateRecipeRule builds the duplicate detection rule. It warns when a
// definition's result and ingredient multiset match an already registered
// recipe; display order differences do not matter.
func NewDuplicateRecipeRule() domain.Rule {
	return duplicateRecipeRule{}
}

type duplicateRecipeRule struct{}

func (duplicateRecipeRule) Name() string { return "duplicate_recipe" }

func (duplicateRecipeRule) Evaluate(_ context.Context, view domain.RecipeView, def domain.RecipeDefinition) (domain.Result, error) {
	var result domain.Result
	if def.Result == nil {
		return result, nil
	}
	for _, existing := range view.ByResult(def.Result.Item) {
		if existing.Definition.Result == nil || *existing.Definition.Result != *def.Result {
			continue
		}
		if !sameIngredientMultiset(existing.Definition.Ingredients, def.Ingredients) {
			continue
		}
		name, _ := view.LookupItem(def.Result.Item)
		result.Violations = append(result.Violations, domain.Violation{
			Rule:     "duplicate_recipe",
			Severity: domain.SeverityWarn,
			Message:  fmt.Sprintf("recipe duplicates %s (result %s)", existing.ID, name),
		})
	}
	return result, nil
}

// sameIngredientMultiset compares total consumption per item; stack shape and
// display order do not matter.
func sameIngredientMultiset(a, b []domain.ItemStack) bool {
	totals := make(map[domain.ItemID]int, len(a))
	for _, stack := range a {
		totals[stack.Item] += stack.Count
	}
	for _, stack := range b {
		totals[stack.Item] -= stack.Count
	}
	for _, total := range totals {
		if total != 0 {
			return false
		}
	}
	return true
}
