package modapi

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"craftcore/pkg/domain"
)

// fakeContent resolves any item id except those listed as missing, and only
// the names it was seeded with.
type fakeContent struct {
	missing map[domain.ItemID]bool
	names   map[string]ItemHandle
}

func newFakeContent() *fakeContent {
	return &fakeContent{
		missing: make(map[domain.ItemID]bool),
		names:   make(map[string]ItemHandle),
	}
}

func (f *fakeContent) addName(namespace, name string, id domain.ItemID) {
	f.names[namespace+"/"+name] = ItemHandle{Namespace: namespace, Name: name, ID: id}
}

func (f *fakeContent) ResolveItem(id domain.ItemID) (ItemHandle, error) {
	if f.missing[id] {
		return ItemHandle{}, domain.ItemNotFoundError{ID: id}
	}
	return ItemHandle{ID: id}, nil
}

func (f *fakeContent) ResolveItemName(namespace, name string) (ItemHandle, error) {
	handle, ok := f.names[namespace+"/"+name]
	if !ok {
		return ItemHandle{}, domain.ItemNotFoundError{Namespace: namespace, Name: name}
	}
	return handle, nil
}

func (f *fakeContent) ResolveTile(id domain.TileID) (TileHandle, error) {
	return TileHandle{ID: id}, nil
}

type fakeGroups struct {
	known map[string]struct{}
}

func newFakeGroups(names ...string) *fakeGroups {
	g := &fakeGroups{known: make(map[string]struct{})}
	for _, name := range names {
		g.known[name] = struct{}{}
	}
	return g
}

func (g *fakeGroups) ResolveGroup(name string) (GroupHandle, error) {
	if _, ok := g.known[name]; !ok {
		return GroupHandle{}, domain.RecipeGroupNotFoundError{Group: name}
	}
	return GroupHandle{Name: name}, nil
}

// recordingSink captures every definition the builder submits.
type recordingSink struct {
	defs []domain.RecipeDefinition
	err  error
}

func (s *recordingSink) RegisterRecipe(_ context.Context, def domain.RecipeDefinition) (domain.RecipeHandle, error) {
	if s.err != nil {
		return domain.RecipeHandle{}, s.err
	}
	s.defs = append(s.defs, def.Clone())
	return domain.RecipeHandle{
		ID:         domain.RecipeID(fmt.Sprintf("recipe-%d", len(s.defs))),
		Index:      len(s.defs) - 1,
		Definition: def,
	}, nil
}

func newTestBuilder(t *testing.T) (*RecipeBuilder, *recordingSink) {
	t.Helper()
	sink := &recordingSink{}
	content := newFakeContent()
	content.addName("testmod", "Widget", 7)
	content.addName("othermod", "Gadget", 8)
	builder := NewRecipeBuilder(content, newFakeGroups("AnyWood"), sink, "testmod")
	return builder, sink
}

func TestIngredientOrderPreserved(t *testing.T) {
	builder, sink := newTestBuilder(t)
	builder.Result(ItemByID(100))
	for i := 1; i <= 8; i++ {
		builder.AddIngredient(ItemByID(domain.ItemID(i)), i)
	}
	handle, err := builder.Build(context.Background())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if len(sink.defs) != 1 {
		t.Fatalf("expected one registration, got %d", len(sink.defs))
	}
	if len(handle.Definition.Ingredients) != 8 {
		t.Fatalf("expected 8 ingredients, got %d", len(handle.Definition.Ingredients))
	}
	for i, stack := range handle.Definition.Ingredients {
		want := domain.ItemStack{Item: domain.ItemID(i + 1), Count: i + 1}
		if stack != want {
			t.Fatalf("ingredient %d: got %+v want %+v", i, stack, want)
		}
	}
}

func TestRequiresTilesCollapsesDuplicates(t *testing.T) {
	builder, _ := newTestBuilder(t)
	handle, err := builder.
		Result(ItemByID(1)).
		RequiresTiles(4, 4, 2).
		RequiresTiles(4).
		Build(context.Background())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	want := []domain.TileID{2, 4}
	if len(handle.Definition.Stations) != len(want) {
		t.Fatalf("expected stations %v, got %v", want, handle.Definition.Stations)
	}
	for i, tile := range want {
		if handle.Definition.Stations[i] != tile {
			t.Fatalf("expected stations %v, got %v", want, handle.Definition.Stations)
		}
	}
}

func TestEnvironmentFlagsIdempotent(t *testing.T) {
	builder, _ := newTestBuilder(t)
	handle, err := builder.
		Result(ItemByID(1)).
		RequiresWater().
		RequiresWater().
		RequiresLava().
		RequiresHoney().
		RequiresSnowBiome().
		RequiresSnowBiome().
		Build(context.Background())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	env := handle.Definition.Environment
	want := domain.EnvLava | domain.EnvHoney | domain.EnvWater | domain.EnvSnowBiome
	if env != want {
		t.Fatalf("expected environment %v, got %v", want, env)
	}
}

func TestBuildWithoutResultFails(t *testing.T) {
	builder, sink := newTestBuilder(t)
	builder.AddIngredient(ItemByID(2), 3)
	_, err := builder.Build(context.Background())
	var missing domain.MissingResultError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingResultError, got %v", err)
	}
	if len(sink.defs) != 0 {
		t.Fatalf("registry must not receive a definition without a result")
	}
}

func TestBuildWithResultAndNoIngredients(t *testing.T) {
	builder, sink := newTestBuilder(t)
	if _, err := builder.Result(ItemByID(5)).Build(context.Background()); err != nil {
		t.Fatalf("result-only recipe should register: %v", err)
	}
	if len(sink.defs) != 1 {
		t.Fatalf("expected one registration, got %d", len(sink.defs))
	}
}

func TestUnresolvedNameFailsImmediately(t *testing.T) {
	builder, sink := newTestBuilder(t)
	builder.Result(ItemByID(1)).AddIngredient(ItemNamed("NonexistentItem"))

	var notFound domain.ItemNotFoundError
	if !errors.As(builder.Err(), &notFound) {
		t.Fatalf("expected ItemNotFoundError at the call site, got %v", builder.Err())
	}
	if notFound.Namespace != "testmod" {
		t.Fatalf("bare names must resolve in the owning namespace, got %q", notFound.Namespace)
	}

	// Later calls are no-ops and Build surfaces the same error.
	builder.AddIngredient(ItemByID(2), 3).RequiresWater()
	_, err := builder.Build(context.Background())
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ItemNotFoundError from Build, got %v", err)
	}
	if len(sink.defs) != 0 {
		t.Fatalf("failed resolution must not reach the registry")
	}
}

func TestNamespaceQualifiedResolution(t *testing.T) {
	builder, sink := newTestBuilder(t)
	handle, err := builder.
		Result(ItemNamed("Widget")).
		AddIngredient(ItemNamed("othermod/Gadget"), 2).
		Build(context.Background())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if handle.Definition.Result.Item != 7 {
		t.Fatalf("bare name should resolve in the owning namespace, got item %d", handle.Definition.Result.Item)
	}
	if sink.defs[0].Ingredients[0].Item != 8 {
		t.Fatalf("qualified name should resolve in the named namespace, got item %d", sink.defs[0].Ingredients[0].Item)
	}
}

func TestItemNotFoundMessageMentionsQualifiedForm(t *testing.T) {
	err := domain.ItemNotFoundError{Namespace: "testmod", Name: "Gadget"}
	msg := err.Error()
	if !strings.Contains(msg, "Mod/Item") {
		t.Fatalf("error message should point at the qualified form, got %q", msg)
	}
}

func TestEndToEndDefinition(t *testing.T) {
	sink := &recordingSink{}
	builder := NewRecipeFor(newFakeContent(), newFakeGroups(), sink, "testmod", ItemByID(5))
	_, err := builder.
		AddIngredient(ItemByID(2), 3).
		RequiresTiles(10).
		RequiresWater().
		Build(context.Background())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if len(sink.defs) != 1 {
		t.Fatalf("registry must receive exactly one registration, got %d", len(sink.defs))
	}
	want := domain.RecipeDefinition{
		Result:      &domain.ItemStack{Item: 5, Count: 1},
		Ingredients: []domain.ItemStack{{Item: 2, Count: 3}},
		Stations:    []domain.TileID{10},
		Environment: domain.EnvWater,
	}
	if !sink.defs[0].Equal(want) {
		t.Fatalf("registered definition mismatch:\n got %+v\nwant %+v", sink.defs[0], want)
	}
}

func TestBuildIsSingleUse(t *testing.T) {
	builder, sink := newTestBuilder(t)
	if _, err := builder.Result(ItemByID(1)).Build(context.Background()); err != nil {
		t.Fatalf("first build failed: %v", err)
	}
	_, err := builder.Build(context.Background())
	var committed domain.RecipeCommittedError
	if !errors.As(err, &committed) {
		t.Fatalf("expected RecipeCommittedError, got %v", err)
	}
	if len(sink.defs) != 1 {
		t.Fatalf("second build must not double-register, got %d registrations", len(sink.defs))
	}
}

func TestIndependentBuildersDoNotInterfere(t *testing.T) {
	sink := &recordingSink{}
	content := newFakeContent()
	groups := newFakeGroups()
	first := NewRecipeFor(content, groups, sink, "testmod", ItemByID(1)).AddIngredient(ItemByID(2))
	second := NewRecipeFor(content, groups, sink, "testmod", ItemByID(3)).RequiresHoney()

	if _, err := first.Build(context.Background()); err != nil {
		t.Fatalf("first build failed: %v", err)
	}
	if _, err := second.Build(context.Background()); err != nil {
		t.Fatalf("second build failed: %v", err)
	}
	if len(sink.defs) != 2 {
		t.Fatalf("expected two independent registrations, got %d", len(sink.defs))
	}
	if sink.defs[0].Result.Item != 1 || sink.defs[1].Result.Item != 3 {
		t.Fatalf("definitions crossed between builders: %+v", sink.defs)
	}
	if sink.defs[1].Environment != domain.EnvHoney || sink.defs[0].Environment != 0 {
		t.Fatalf("environment flags leaked between builders: %+v", sink.defs)
	}
}

func TestAddIngredientsVariants(t *testing.T) {
	builder, sink := newTestBuilder(t)
	_, err := builder.
		Result(ItemByID(9)).
		AddIngredients(domain.ItemStack{Item: 1, Count: 4}, domain.ItemStack{Item: 2, Count: 1}).
		AddIngredientIDs(3, 4).
		Build(context.Background())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	want := []domain.ItemStack{{Item: 1, Count: 4}, {Item: 2, Count: 1}, {Item: 3, Count: 1}, {Item: 4, Count: 1}}
	got := sink.defs[0].Ingredients
	if len(got) != len(want) {
		t.Fatalf("expected ingredients %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ingredient %d: got %+v want %+v", i, got[i], want[i])
		}
	}
}

func TestAddRecipeGroup(t *testing.T) {
	builder, sink := newTestBuilder(t)
	_, err := builder.
		Result(ItemByID(1)).
		AddRecipeGroup("AnyWood", 6).
		AddRecipeGroup("AnyWood").
		Build(context.Background())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	want := []domain.GroupStack{{Group: "AnyWood", Count: 6}, {Group: "AnyWood", Count: 1}}
	got := sink.defs[0].Groups
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("expected groups %v, got %v", want, got)
	}
}

func TestAddRecipeGroupUnknown(t *testing.T) {
	builder, sink := newTestBuilder(t)
	builder.Result(ItemByID(1)).AddRecipeGroup("AnyMetal")
	var notFound domain.RecipeGroupNotFoundError
	if !errors.As(builder.Err(), &notFound) {
		t.Fatalf("expected RecipeGroupNotFoundError, got %v", builder.Err())
	}
	if notFound.Group != "AnyMetal" {
		t.Fatalf("expected group name in error, got %q", notFound.Group)
	}
	if _, err := builder.Build(context.Background()); err == nil {
		t.Fatalf("build should surface the recorded group error")
	}
	if len(sink.defs) != 0 {
		t.Fatalf("failed group resolution must not reach the registry")
	}
}

func TestStackDefaultsAndPermissiveness(t *testing.T) {
	builder, sink := newTestBuilder(t)
	_, err := builder.
		Result(ItemByID(1)).
		AddIngredient(ItemByID(2)).
		AddIngredient(ItemByID(3), 0).
		AddIngredient(ItemByID(4), -2).
		Build(context.Background())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	got := sink.defs[0].Ingredients
	if got[0].Count != 1 {
		t.Fatalf("omitted stack should default to 1, got %d", got[0].Count)
	}
	if got[1].Count != 0 || got[2].Count != -2 {
		t.Fatalf("non-positive stacks must pass through unchanged, got %v", got)
	}
}

func TestSeededResultResolutionFailure(t *testing.T) {
	sink := &recordingSink{}
	content := newFakeContent()
	content.missing[42] = true
	builder := NewRecipeFor(content, newFakeGroups(), sink, "testmod", ItemByID(42))
	var notFound domain.ItemNotFoundError
	if !errors.As(builder.Err(), &notFound) {
		t.Fatalf("expected ItemNotFoundError from seeded construction, got %v", builder.Err())
	}
	if notFound.ID != 42 {
		t.Fatalf("expected failing id in error, got %d", notFound.ID)
	}
	if _, err := builder.Build(context.Background()); err == nil {
		t.Fatalf("build should fail after seeded resolution failure")
	}
	if len(sink.defs) != 0 {
		t.Fatalf("failed seed must not reach the registry")
	}
}

func TestSinkErrorLeavesBuilderUncommitted(t *testing.T) {
	builder, sink := newTestBuilder(t)
	sink.err = errors.New("registry unavailable")
	builder.Result(ItemByID(1))
	if _, err := builder.Build(context.Background()); err == nil {
		t.Fatalf("expected sink error to propagate")
	}

	sink.err = nil
	if _, err := builder.Build(context.Background()); err != nil {
		t.Fatalf("builder should remain usable after a sink failure: %v", err)
	}
	if len(sink.defs) != 1 {
		t.Fatalf("expected exactly one successful registration, got %d", len(sink.defs))
	}
}
