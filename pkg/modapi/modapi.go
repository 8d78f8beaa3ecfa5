// Package modapi is the stable API surface content mods build against. Mods
// receive a namespace-bound Registry during installation and contribute
// items, tiles, recipe groups, rules, and recipes through it.
package modapi

import (
	"context"

	"craftcore/pkg/domain"
)

// Version is the mod API contract version.
const Version = "v1"

// ItemHandle is a pre-resolved item identity.
type ItemHandle struct {
	Namespace string
	Name      string
	ID        domain.ItemID
}

// TileHandle is a pre-resolved tile identity.
type TileHandle struct {
	Namespace string
	Name      string
	ID        domain.TileID
}

// GroupHandle is a pre-resolved recipe group identity.
type GroupHandle struct {
	Name string
}

// ContentResolver resolves item and tile identities against the content
// registry. Resolution calls read the registry and never mutate it.
type ContentResolver interface {
	ResolveItem(id domain.ItemID) (ItemHandle, error)
	ResolveItemName(namespace, name string) (ItemHandle, error)
	ResolveTile(id domain.TileID) (TileHandle, error)
}

// GroupResolver resolves recipe group names.
type GroupResolver interface {
	ResolveGroup(name string) (GroupHandle, error)
}

// RecipeSink accepts finished recipe definitions for registration. The sink
// owns the definition once registration succeeds.
type RecipeSink interface {
	RegisterRecipe(ctx context.Context, def domain.RecipeDefinition) (domain.RecipeHandle, error)
}

// Registry accumulates a mod's contributions during installation. Every
// registration is scoped to the installing mod's namespace.
type Registry interface {
	// RegisterItem adds an item under the mod's namespace and returns its
	// resolved handle.
	RegisterItem(name string) (ItemHandle, error)
	// RegisterTile adds a crafting station tile under the mod's namespace.
	RegisterTile(name string) (TileHandle, error)
	// RegisterRecipeGroup adds a named set of interchangeable items. Group
	// names are process-wide.
	RegisterRecipeGroup(name string, members ...domain.ItemID) (GroupHandle, error)
	// RegisterRule wires a validation rule into the recipe registry.
	RegisterRule(rule domain.Rule)
	// NewRecipe starts a recipe builder bound to the mod's namespace.
	NewRecipe() *RecipeBuilder
}

// Mod describes a content module that contributes items, recipes, and rules.
type Mod interface {
	Name() string
	Version() string
	Register(Registry) error
}
