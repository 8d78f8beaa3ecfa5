// Package meteor implements the meteor reference content mod.
package meteor

import (
	"context"
	"fmt"

	"craftcore/pkg/domain"
	"craftcore/pkg/modapi"
)

// Maximum ore a single recipe should consume before the balance rule warns.
const oreStackWarnLimit = 30

// Mod registers the meteor content set: ore and bar items, a forge station,
// the AnyMeteorOre group, and the recipes tying them together.
type Mod struct{}

// New constructs a meteor mod instance.
func New() Mod {
	return Mod{}
}

// Name returns the mod identifier, which doubles as its content namespace.
func (Mod) Name() string { return "meteor" }

// Version returns the mod semantic version.
func (Mod) Version() string { return "0.1.0" }

// Register wires the meteor content and its balance rule.
func (Mod) Register(registry modapi.Registry) error {
	ctx := context.Background()

	ore, err := registry.RegisterItem("MeteorOre")
	if err != nil {
		return err
	}
	bar, err := registry.RegisterItem("MeteorBar")
	if err != nil {
		return err
	}
	hamaxe, err := registry.RegisterItem("MeteorHamaxe")
	if err != nil {
		return err
	}
	shard, err := registry.RegisterItem("FrozenShard")
	if err != nil {
		return err
	}
	forge, err := registry.RegisterTile("MeteorForge")
	if err != nil {
		return err
	}
	if _, err := registry.RegisterRecipeGroup("AnyMeteorOre", ore.ID); err != nil {
		return err
	}

	// Smelt three ore into a bar at the forge, near lava.
	if _, err := registry.NewRecipe().
		Result(modapi.ItemByHandle(bar)).
		AddIngredient(modapi.ItemByHandle(ore), 3).
		RequiresTiles(forge.ID).
		RequiresLava().
		Build(ctx); err != nil {
		return fmt.Errorf("registering meteor bar recipe: %w", err)
	}

	// The hamaxe resolves its ingredients by name to keep the recipe readable.
	if _, err := registry.NewRecipe().
		Result(modapi.ItemByHandle(hamaxe)).
		AddIngredient(modapi.ItemNamed("MeteorBar"), 5).
		AddRecipeGroup("AnyMeteorOre", 2).
		RequiresTiles(forge.ID).
		Build(ctx); err != nil {
		return fmt.Errorf("registering meteor hamaxe recipe: %w", err)
	}

	// Frozen shards condense from ore under water in a snow biome.
	if _, err := registry.NewRecipe().
		Result(modapi.ItemByHandle(shard), 2).
		AddIngredient(modapi.ItemByHandle(ore)).
		RequiresWater().
		RequiresSnowBiome().
		Build(ctx); err != nil {
		return fmt.Errorf("registering frozen shard recipe: %w", err)
	}

	registry.RegisterRule(oreBalanceRule{ore: ore.ID})
	return nil
}

// oreBalanceRule warns when a recipe consumes an unreasonably large stack of
// meteor ore.
type oreBalanceRule struct {
	ore domain.ItemID
}

func (oreBalanceRule) Name() string { return "meteor_ore_balance" }

func (r oreBalanceRule) Evaluate(_ context.Context, _ domain.RecipeView, def domain.RecipeDefinition) (domain.Result, error) {
	var result domain.Result
	total := 0
	for _, stack := range def.Ingredients {
		if stack.Item == r.ore {
			total += stack.Count
		}
	}
	if total > oreStackWarnLimit {
		result.Violations = append(result.Violations, domain.Violation{
			Rule:     "meteor_ore_balance",
			Severity: domain.SeverityWarn,
			Message:  fmt.Sprintf("recipe consumes %d meteor ore, above the %d balance limit", total, oreStackWarnLimit),
		})
	}
	return result, nil
}
