package core

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"craftcore/pkg/domain"
	"craftcore/pkg/modapi"
)

// ModMetadata stores metadata describing an installed mod.
type ModMetadata struct {
	Name        string
	Version     string
	Items       int
	Tiles       int
	Groups      int
	Recipes     int
	Rules       int
	InstalledAt time.Time
}

// Service owns the content, group, and recipe registries and installs mods
// into them.
type Service struct {
	content *ContentRegistry
	groups  *GroupRegistry
	recipes *RecipeRegistry
	logger  *slog.Logger
	audit   AuditLogger

	mu    sync.RWMutex
	mods  map[string]ModMetadata
	order []string
}

// ServiceOption customizes service construction.
type ServiceOption func(*serviceConfig)

type serviceConfig struct {
	logger *slog.Logger
	audit  AuditLogger
	rules  []domain.Rule
}

// WithLogger sets the structured logger used by the registries.
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(c *serviceConfig) {
		c.logger = logger
	}
}

// WithAuditLogger sets the audit trail sink.
func WithAuditLogger(audit AuditLogger) ServiceOption {
	return func(c *serviceConfig) {
		c.audit = audit
	}
}

// WithRules replaces the built-in rule set.
func WithRules(rules ...domain.Rule) ServiceOption {
	return func(c *serviceConfig) {
		c.rules = rules
	}
}

// NewService constructs a service with fresh registries. Unless overridden
// through WithRules, the recipe registry validates with the built-in
// duplicate and station coverage rules.
func NewService(opts ...ServiceOption) *Service {
	cfg := serviceConfig{
		logger: slog.Default(),
		audit:  noopAudit{},
		rules:  []domain.Rule{NewDuplicateRecipeRule(), NewUnknownStationRule()},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	engine := domain.NewRulesEngine()
	for _, rule := range cfg.rules {
		engine.Register(rule)
	}

	content := NewContentRegistry()
	return &Service{
		content: content,
		groups:  NewGroupRegistry(),
		recipes: NewRecipeRegistry(content, engine, cfg.audit, cfg.logger),
		logger:  cfg.logger,
		audit:   cfg.audit,
		mods:    make(map[string]ModMetadata),
	}
}

// Content returns the item and tile table.
func (s *Service) Content() *ContentRegistry {
	return s.content
}

// Groups returns the recipe group registry.
func (s *Service) Groups() *GroupRegistry {
	return s.groups
}

// Recipes returns the recipe registry.
func (s *Service) Recipes() *RecipeRegistry {
	return s.recipes
}

// InstallMod registers a mod's content under its own namespace, wiring any
// contributed rules into the recipe registry. Duplicate mod names are
// rejected.
func (s *Service) InstallMod(ctx context.Context, mod modapi.Mod) (ModMetadata, error) {
	if mod == nil {
		return ModMetadata{}, fmt.Errorf("mod cannot be nil")
	}
	name := mod.Name()
	if name == "" {
		return ModMetadata{}, fmt.Errorf("mod name cannot be empty")
	}

	s.mu.Lock()
	if _, exists := s.mods[name]; exists {
		s.mu.Unlock()
		return ModMetadata{}, fmt.Errorf("mod %s already installed", name)
	}
	s.mu.Unlock()

	meta := ModMetadata{Name: name, Version: mod.Version()}
	adapter := &modRegistry{service: s, namespace: name, meta: &meta}
	if err := mod.Register(adapter); err != nil {
		return ModMetadata{}, fmt.Errorf("installing mod %s: %w", name, err)
	}
	meta.InstalledAt = time.Now().UTC()

	s.mu.Lock()
	s.mods[name] = meta
	s.order = append(s.order, name)
	s.mu.Unlock()

	s.audit.Record(ctx, AuditEntry{
		Action:  ActionInstallMod,
		Subject: name,
		Detail: map[string]any{
			"version": meta.Version,
			"items":   meta.Items,
			"recipes": meta.Recipes,
		},
	})
	s.logger.Info("mod installed",
		slog.String("mod", name),
		slog.String("version", meta.Version),
		slog.Int("items", meta.Items),
		slog.Int("tiles", meta.Tiles),
		slog.Int("groups", meta.Groups),
		slog.Int("recipes", meta.Recipes),
		slog.Int("rules", meta.Rules))
	return meta, nil
}

// RegisteredMods returns metadata for installed mods in installation order.
func (s *Service) RegisteredMods() []ModMetadata {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ModMetadata, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.mods[name])
	}
	return out
}

// modRegistry implements modapi.Registry bound to one mod's namespace.
type modRegistry struct {
	service   *Service
	namespace string
	meta      *ModMetadata
}

func (r *modRegistry) RegisterItem(name string) (modapi.ItemHandle, error) {
	handle, err := r.service.content.RegisterItem(r.namespace, name)
	if err != nil {
		return modapi.ItemHandle{}, err
	}
	r.meta.Items++
	return handle, nil
}

func (r *modRegistry) RegisterTile(name string) (modapi.TileHandle, error) {
	handle, err := r.service.content.RegisterTile(r.namespace, name)
	if err != nil {
		return modapi.TileHandle{}, err
	}
	r.meta.Tiles++
	return handle, nil
}

func (r *modRegistry) RegisterRecipeGroup(name string, members ...domain.ItemID) (modapi.GroupHandle, error) {
	handle, err := r.service.groups.RegisterGroup(name, members...)
	if err != nil {
		return modapi.GroupHandle{}, err
	}
	r.meta.Groups++
	return handle, nil
}

func (r *modRegistry) RegisterRule(rule domain.Rule) {
	if rule == nil {
		return
	}
	r.service.recipes.Engine().Register(rule)
	r.meta.Rules++
}

func (r *modRegistry) NewRecipe() *modapi.RecipeBuilder {
	return modapi.NewRecipeBuilder(r.service.content, r.service.groups, countingSink{r}, r.namespace)
}

// countingSink forwards registrations to the recipe registry and attributes
// successes to the installing mod.
type countingSink struct {
	reg *modRegistry
}

func (s countingSink) RegisterRecipe(ctx context.Context, def domain.RecipeDefinition) (domain.RecipeHandle, error) {
	handle, err := s.reg.service.recipes.RegisterRecipe(ctx, def)
	if err != nil {
		return domain.RecipeHandle{}, err
	}
	s.reg.meta.Recipes++
	return handle, nil
}
