package core

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"craftcore/pkg/domain"
)

// RecipeRegistry is the append-only, process-wide recipe store. Every
// definition submitted through RegisterRecipe is evaluated by the rules
// engine before it is accepted; blocking violations abort the registration.
// It implements modapi.RecipeSink and domain.RecipeView.
type RecipeRegistry struct {
	content *ContentRegistry
	engine  *domain.RulesEngine
	audit   AuditLogger
	logger  *slog.Logger

	mu         sync.RWMutex
	recipes    []domain.RecipeHandle
	byResult   map[domain.ItemID][]int
	violations []domain.Violation
}

// NewRecipeRegistry constructs a recipe registry backed by the given content
// table and rules engine.
func NewRecipeRegistry(content *ContentRegistry, engine *domain.RulesEngine, audit AuditLogger, logger *slog.Logger) *RecipeRegistry {
	if engine == nil {
		engine = domain.NewRulesEngine()
	}
	if audit == nil {
		audit = noopAudit{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RecipeRegistry{
		content:  content,
		engine:   engine,
		audit:    audit,
		logger:   logger,
		byResult: make(map[domain.ItemID][]int),
	}
}

// Engine returns the rules engine recipes are validated against.
func (r *RecipeRegistry) Engine() *domain.RulesEngine {
	return r.engine
}

// RegisterRecipe validates and stores a frozen copy of the definition. The
// registry owns the definition once registration succeeds. Warn and log
// severity violations are recorded and do not abort registration.
func (r *RecipeRegistry) RegisterRecipe(ctx context.Context, def domain.RecipeDefinition) (domain.RecipeHandle, error) {
	def = def.Clone()
	def.NormalizeStations()

	r.mu.Lock()
	defer r.mu.Unlock()

	res, err := r.engine.Evaluate(ctx, lockedView{r}, def)
	if err != nil {
		recipeRejections.WithLabelValues(rejectError).Inc()
		return domain.RecipeHandle{}, fmt.Errorf("evaluating recipe rules: %w", err)
	}
	for _, v := range res.Violations {
		recipeViolations.WithLabelValues(string(v.Severity)).Inc()
	}
	if res.HasBlocking() {
		recipeRejections.WithLabelValues(rejectBlocked).Inc()
		return domain.RecipeHandle{}, domain.RuleViolationError{Result: res}
	}

	handle := domain.RecipeHandle{
		ID:         domain.RecipeID(uuid.NewString()),
		Index:      len(r.recipes),
		Definition: def,
	}
	r.recipes = append(r.recipes, handle)
	if def.Result != nil {
		r.byResult[def.Result.Item] = append(r.byResult[def.Result.Item], handle.Index)
	}

	for i := range res.Violations {
		res.Violations[i].Recipe = handle.ID
	}
	r.violations = append(r.violations, res.Violations...)
	for _, v := range res.Violations {
		r.logger.Warn("recipe rule violation",
			slog.String("rule", v.Rule),
			slog.String("severity", string(v.Severity)),
			slog.String("recipe", string(v.Recipe)),
			slog.String("message", v.Message))
	}

	recipesRegistered.Inc()
	r.audit.Record(ctx, AuditEntry{
		Action:  ActionRegisterRecipe,
		Subject: string(handle.ID),
		Detail: map[string]any{
			"index":       handle.Index,
			"ingredients": len(def.Ingredients),
			"stations":    len(def.Stations),
			"environment": def.Environment.String(),
		},
	})
	return handle, nil
}

// Recipes returns a copy of all registered recipes in registration order.
func (r *RecipeRegistry) Recipes() []domain.RecipeHandle {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.copyRecipes()
}

// ByResult returns the recipes producing the given item.
func (r *RecipeRegistry) ByResult(item domain.ItemID) []domain.RecipeHandle {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.copyByResult(item)
}

// LookupItem resolves an item id to its qualified name.
func (r *RecipeRegistry) LookupItem(id domain.ItemID) (string, bool) {
	return r.content.LookupItem(id)
}

// LookupTile resolves a tile id to its qualified name.
func (r *RecipeRegistry) LookupTile(id domain.TileID) (string, bool) {
	return r.content.LookupTile(id)
}

// Len returns the number of registered recipes.
func (r *RecipeRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.recipes)
}

// Violations returns every non-blocking violation observed at registration
// time, in registration order.
func (r *RecipeRegistry) Violations() []domain.Violation {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Violation, len(r.violations))
	copy(out, r.violations)
	return out
}

func (r *RecipeRegistry) copyRecipes() []domain.RecipeHandle {
	out := make([]domain.RecipeHandle, len(r.recipes))
	for i, handle := range r.recipes {
		handle.Definition = handle.Definition.Clone()
		out[i] = handle
	}
	return out
}

func (r *RecipeRegistry) copyByResult(item domain.ItemID) []domain.RecipeHandle {
	indices := r.byResult[item]
	out := make([]domain.RecipeHandle, 0, len(indices))
	for _, idx := range indices {
		handle := r.recipes[idx]
		handle.Definition = handle.Definition.Clone()
		out = append(out, handle)
	}
	return out
}

// lockedView adapts the registry to domain.RecipeView for rule evaluation
// running under the registry write lock.
type lockedView struct {
	reg *RecipeRegistry
}

func (v lockedView) Recipes() []domain.RecipeHandle {
	return v.reg.copyRecipes()
}

func (v lockedView) ByResult(item domain.ItemID) []domain.RecipeHandle {
	return v.reg.copyByResult(item)
}

func (v lockedView) LookupItem(id domain.ItemID) (string, bool) {
	return v.reg.content.LookupItem(id)
}

func (v lockedView) LookupTile(id domain.TileID) (string, bool) {
	return v.reg.content.LookupTile(id)
}
