// Package domain defines the crafting value types, recipe definitions, and
// rule evaluation primitives used by craftcore.
package domain

import "sort"

// ItemID identifies an item in the content registry.
type ItemID int

// TileID identifies a tile usable as a crafting station.
type TileID int

// RecipeID is the stable identifier assigned to a recipe on registration.
type RecipeID string

// ItemStack pairs an item with a stack size. Non-positive counts are carried
// through unchanged; the registry treats them as meaningless rather than
// invalid.
type ItemStack struct {
	Item  ItemID
	Count int
}

// GroupStack pairs a recipe group name with a stack size. A group entry
// accepts any member of the group in place of a fixed ingredient.
type GroupStack struct {
	Group string
	Count int
}

// EnvironmentFlags is the set of environmental conditions a recipe requires
// beyond its ingredients and stations.
type EnvironmentFlags uint8

// Environmental requirements a recipe may declare. Setting a flag is
// idempotent.
const (
	// EnvLava requires the crafter to stand near lava.
	EnvLava EnvironmentFlags = 1 << iota
	// EnvHoney requires the crafter to stand near honey.
	EnvHoney
	// EnvWater requires the crafter to stand near water.
	EnvWater
	// EnvSnowBiome requires the crafter to be in a snow biome.
	EnvSnowBiome
)

// Has reports whether every flag in mask is set.
func (f EnvironmentFlags) Has(mask EnvironmentFlags) bool {
	return f&mask == mask
}

// String renders the flag set for logs and reports.
func (f EnvironmentFlags) String() string {
	if f == 0 {
		return "none"
	}
	names := []struct {
		flag EnvironmentFlags
		name string
	}{
		{EnvLava, "lava"},
		{EnvHoney, "honey"},
		{EnvWater, "water"},
		{EnvSnowBiome, "snow_biome"},
	}
	out := ""
	for _, n := range names {
		if !f.Has(n.flag) {
			continue
		}
		if out != "" {
			out += "|"
		}
		out += n.name
	}
	return out
}

// RecipeDefinition is a crafting recipe specification. It is mutable while a
// builder accumulates it and frozen once the recipe registry accepts it.
type RecipeDefinition struct {
	// Result is the produced item, nil until configured.
	Result *ItemStack
	// Ingredients preserve insertion order; the order affects display, not
	// matching.
	Ingredients []ItemStack
	// Groups are alternate acceptable ingredient sets, insertion ordered.
	Groups []GroupStack
	// Stations holds required crafting station tiles, sorted and unique.
	Stations []TileID
	// Environment holds the required environmental conditions.
	Environment EnvironmentFlags
}

// HasResult reports whether a result item has been configured.
func (d RecipeDefinition) HasResult() bool {
	return d.Result != nil
}

// Clone returns a deep copy of the definition.
func (d RecipeDefinition) Clone() RecipeDefinition {
	cp := d
	if d.Result != nil {
		result := *d.Result
		cp.Result = &result
	}
	cp.Ingredients = append([]ItemStack(nil), d.Ingredients...)
	cp.Groups = append([]GroupStack(nil), d.Groups...)
	cp.Stations = append([]TileID(nil), d.Stations...)
	return cp
}

// Equal reports whether two definitions describe the same recipe, including
// ingredient order.
func (d RecipeDefinition) Equal(other RecipeDefinition) bool {
	if (d.Result == nil) != (other.Result == nil) {
		return false
	}
	if d.Result != nil && *d.Result != *other.Result {
		return false
	}
	if len(d.Ingredients) != len(other.Ingredients) ||
		len(d.Groups) != len(other.Groups) ||
		len(d.Stations) != len(other.Stations) ||
		d.Environment != other.Environment {
		return false
	}
	for i, ing := range d.Ingredients {
		if other.Ingredients[i] != ing {
			return false
		}
	}
	for i, grp := range d.Groups {
		if other.Groups[i] != grp {
			return false
		}
	}
	for i, tile := range d.Stations {
		if other.Stations[i] != tile {
			return false
		}
	}
	return true
}

// NormalizeStations collapses duplicates and sorts the station set in place.
func (d *RecipeDefinition) NormalizeStations() {
	if len(d.Stations) == 0 {
		return
	}
	seen := make(map[TileID]struct{}, len(d.Stations))
	unique := d.Stations[:0]
	for _, tile := range d.Stations {
		if _, ok := seen[tile]; ok {
			continue
		}
		seen[tile] = struct{}{}
		unique = append(unique, tile)
	}
	d.Stations = unique
	sort.Slice(d.Stations, func(i, j int) bool { return d.Stations[i] < d.Stations[j] })
}

// RecipeHandle is the frozen, registry-owned view of a registered recipe.
// Mutating a handle has no effect on the registry.
type RecipeHandle struct {
	ID         RecipeID
	Index      int
	Definition RecipeDefinition
}
