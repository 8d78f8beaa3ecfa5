package modapi

import (
	"context"

	"craftcore/pkg/domain"
)

// RecipeBuilder accumulates a crafting recipe and submits it to the recipe
// registry exactly once. Every method returns the same builder so calls can
// be chained.
//
// Item references are resolved at the point of each call; a failed resolution
// records the error immediately, leaves the in-progress definition untouched,
// and turns the remaining calls into no-ops. The first error is observable
// through Err and returned by Build. The optional stack parameter defaults to
// 1 when omitted; explicit non-positive values pass through unchanged.
//
// A builder is not safe for concurrent use. Once Build succeeds the builder
// is consumed and must not be reused.
type RecipeBuilder struct {
	content   ContentResolver
	groups    GroupResolver
	sink      RecipeSink
	namespace string

	result      *domain.ItemStack
	ingredients []domain.ItemStack
	groupSubs   []domain.GroupStack
	stations    map[domain.TileID]struct{}
	environment domain.EnvironmentFlags

	err       error
	committed bool
	recipe    domain.RecipeID
}

// NewRecipeBuilder starts an empty builder. The result must be configured
// through Result before Build.
func NewRecipeBuilder(content ContentResolver, groups GroupResolver, sink RecipeSink, namespace string) *RecipeBuilder {
	return &RecipeBuilder{
		content:   content,
		groups:    groups,
		sink:      sink,
		namespace: namespace,
		stations:  make(map[domain.TileID]struct{}),
	}
}

// NewRecipeFor starts a builder seeded with a result item. An unresolvable
// reference is recorded immediately.
func NewRecipeFor(content ContentResolver, groups GroupResolver, sink RecipeSink, namespace string, result ItemRef, stack ...int) *RecipeBuilder {
	return NewRecipeBuilder(content, groups, sink, namespace).Result(result, stack...)
}

func (b *RecipeBuilder) fail(err error) *RecipeBuilder {
	if b.err == nil {
		b.err = err
	}
	return b
}

func (b *RecipeBuilder) resolve(ref ItemRef) (ItemHandle, error) {
	switch ref.kind {
	case refByHandle:
		return ref.handle, nil
	case refByName:
		namespace, name := splitQualified(ref.name, b.namespace)
		return b.content.ResolveItemName(namespace, name)
	default:
		return b.content.ResolveItem(ref.id)
	}
}

func stackOf(stack []int) int {
	if len(stack) == 0 {
		return 1
	}
	return stack[0]
}

// Result configures the produced item. Calling it again replaces the result.
func (b *RecipeBuilder) Result(ref ItemRef, stack ...int) *RecipeBuilder {
	if b.err != nil {
		return b
	}
	handle, err := b.resolve(ref)
	if err != nil {
		return b.fail(err)
	}
	b.result = &domain.ItemStack{Item: handle.ID, Count: stackOf(stack)}
	return b
}

// AddIngredient appends one ingredient, preserving call order.
func (b *RecipeBuilder) AddIngredient(ref ItemRef, stack ...int) *RecipeBuilder {
	if b.err != nil {
		return b
	}
	handle, err := b.resolve(ref)
	if err != nil {
		return b.fail(err)
	}
	b.ingredients = append(b.ingredients, domain.ItemStack{Item: handle.ID, Count: stackOf(stack)})
	return b
}

// AddIngredients appends each stack in order; equivalent to repeated
// AddIngredient calls.
func (b *RecipeBuilder) AddIngredients(stacks ...domain.ItemStack) *RecipeBuilder {
	for _, s := range stacks {
		b.AddIngredient(ItemByID(s.Item), s.Count)
	}
	return b
}

// AddIngredientIDs appends each item with a stack of 1.
func (b *RecipeBuilder) AddIngredientIDs(ids ...domain.ItemID) *RecipeBuilder {
	for _, id := range ids {
		b.AddIngredient(ItemByID(id))
	}
	return b
}

// AddRecipeGroup appends a recipe group substitution. Unknown group names
// are recorded as errors immediately.
func (b *RecipeBuilder) AddRecipeGroup(name string, stack ...int) *RecipeBuilder {
	if b.err != nil {
		return b
	}
	group, err := b.groups.ResolveGroup(name)
	if err != nil {
		return b.fail(err)
	}
	b.groupSubs = append(b.groupSubs, domain.GroupStack{Group: group.Name, Count: stackOf(stack)})
	return b
}

// RequiresTiles adds required crafting stations. Duplicates collapse and
// order does not matter.
func (b *RecipeBuilder) RequiresTiles(tiles ...domain.TileID) *RecipeBuilder {
	if b.err != nil {
		return b
	}
	for _, tile := range tiles {
		b.stations[tile] = struct{}{}
	}
	return b
}

// RequiresLava marks the recipe as craftable only near lava. Idempotent.
func (b *RecipeBuilder) RequiresLava() *RecipeBuilder {
	return b.requires(domain.EnvLava)
}

// RequiresHoney marks the recipe as craftable only near honey. Idempotent.
func (b *RecipeBuilder) RequiresHoney() *RecipeBuilder {
	return b.requires(domain.EnvHoney)
}

// RequiresWater marks the recipe as craftable only near water. Idempotent.
func (b *RecipeBuilder) RequiresWater() *RecipeBuilder {
	return b.requires(domain.EnvWater)
}

// RequiresSnowBiome marks the recipe as craftable only in a snow biome.
// Idempotent.
func (b *RecipeBuilder) RequiresSnowBiome() *RecipeBuilder {
	return b.requires(domain.EnvSnowBiome)
}

func (b *RecipeBuilder) requires(flag domain.EnvironmentFlags) *RecipeBuilder {
	if b.err != nil {
		return b
	}
	b.environment |= flag
	return b
}

// Err returns the first resolution error recorded by the builder, if any.
func (b *RecipeBuilder) Err() error {
	return b.err
}

// Build freezes the accumulated definition and submits it to the recipe
// registry. It fails with the first recorded resolution error, with
// MissingResultError when no result was configured, or with
// RecipeCommittedError when the builder was already consumed. Ingredients
// are optional; a result alone is a valid recipe.
func (b *RecipeBuilder) Build(ctx context.Context) (domain.RecipeHandle, error) {
	if b.err != nil {
		return domain.RecipeHandle{}, b.err
	}
	if b.committed {
		return domain.RecipeHandle{}, domain.RecipeCommittedError{Recipe: b.recipe}
	}
	if b.result == nil {
		return domain.RecipeHandle{}, domain.MissingResultError{}
	}

	def := domain.RecipeDefinition{
		Result:      &domain.ItemStack{Item: b.result.Item, Count: b.result.Count},
		Ingredients: append([]domain.ItemStack(nil), b.ingredients...),
		Groups:      append([]domain.GroupStack(nil), b.groupSubs...),
		Environment: b.environment,
	}
	for tile := range b.stations {
		def.Stations = append(def.Stations, tile)
	}
	def.NormalizeStations()

	handle, err := b.sink.RegisterRecipe(ctx, def)
	if err != nil {
		return domain.RecipeHandle{}, err
	}
	b.committed = true
	b.recipe = handle.ID
	return handle, nil
}
