package core

import (
	"context"
	"fmt"

	"craftcore/pkg/domain"
)

// NewUnknownStationRule builds the station coverage rule. It warns when a
// required crafting station tile has no entry in the tile table, which
// usually means a mod referenced a tile id it never registered.
func NewUnknownStationRule() domain.Rule {
	return unknownStationRule{}
}

type unknownStationRule struct{}

func (unknownStationRule) Name() string { return "unknown_station" }

func (unknownStationRule) Evaluate(_ context.Context, view domain.RecipeView, def domain.RecipeDefinition) (domain.Result, error) {
	var result domain.Result
	for _, tile := range def.Stations {
		if _, ok := view.LookupTile(tile); ok {
			continue
		}
		result.Violations = append(result.Violations, domain.Violation{
			Rule:     "unknown_station",
			Severity: domain.SeverityWarn,
			Message:  fmt.Sprintf("required station tile %d is not registered", tile),
		})
	}
	return result, nil
}
