package domain

import "testing"

func TestEnvironmentFlags(t *testing.T) {
	var env EnvironmentFlags
	env |= EnvWater
	env |= EnvWater
	if !env.Has(EnvWater) {
		t.Fatalf("expected water flag to be set")
	}
	if env.Has(EnvLava) {
		t.Fatalf("unexpected lava flag")
	}
	env |= EnvLava | EnvSnowBiome
	if got := env.String(); got != "lava|water|snow_biome" {
		t.Fatalf("unexpected flag rendering %q", got)
	}
	if got := EnvironmentFlags(0).String(); got != "none" {
		t.Fatalf("empty set should render as none, got %q", got)
	}
}

func TestDefinitionCloneIsDeep(t *testing.T) {
	def := RecipeDefinition{
		Result:      &ItemStack{Item: 1, Count: 2},
		Ingredients: []ItemStack{{Item: 3, Count: 4}},
		Groups:      []GroupStack{{Group: "AnyWood", Count: 1}},
		Stations:    []TileID{7},
		Environment: EnvHoney,
	}
	clone := def.Clone()
	clone.Result.Count = 99
	clone.Ingredients[0].Item = 99
	clone.Stations[0] = 99
	if def.Result.Count != 2 || def.Ingredients[0].Item != 3 || def.Stations[0] != 7 {
		t.Fatalf("clone mutation leaked into the original: %+v", def)
	}
}

func TestDefinitionEqual(t *testing.T) {
	base := RecipeDefinition{
		Result:      &ItemStack{Item: 5, Count: 1},
		Ingredients: []ItemStack{{Item: 2, Count: 3}, {Item: 4, Count: 1}},
		Stations:    []TileID{10},
		Environment: EnvWater,
	}
	if !base.Equal(base.Clone()) {
		t.Fatalf("definition should equal its clone")
	}

	reordered := base.Clone()
	reordered.Ingredients[0], reordered.Ingredients[1] = reordered.Ingredients[1], reordered.Ingredients[0]
	if base.Equal(reordered) {
		t.Fatalf("ingredient order is significant for equality")
	}

	noResult := base.Clone()
	noResult.Result = nil
	if base.Equal(noResult) || noResult.Equal(base) {
		t.Fatalf("result presence is significant for equality")
	}
}

func TestNormalizeStations(t *testing.T) {
	def := RecipeDefinition{Stations: []TileID{9, 4, 9, 4, 1}}
	def.NormalizeStations()
	want := []TileID{1, 4, 9}
	if len(def.Stations) != len(want) {
		t.Fatalf("expected stations %v, got %v", want, def.Stations)
	}
	for i, tile := range want {
		if def.Stations[i] != tile {
			t.Fatalf("expected stations %v, got %v", want, def.Stations)
		}
	}
}
