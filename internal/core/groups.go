package core

import (
	"fmt"
	"sort"
	"sync"

	"craftcore/pkg/domain"
	"craftcore/pkg/modapi"
)

// GroupRegistry stores named sets of interchangeable items. Group names are
// process-wide. It implements modapi.GroupResolver.
type GroupRegistry struct {
	mu     sync.RWMutex
	groups map[string]map[domain.ItemID]struct{}
}

// NewGroupRegistry constructs an empty group registry.
func NewGroupRegistry() *GroupRegistry {
	return &GroupRegistry{groups: make(map[string]map[domain.ItemID]struct{})}
}

// RegisterGroup adds a recipe group. Registering an existing name fails;
// duplicate members collapse.
func (r *GroupRegistry) RegisterGroup(name string, members ...domain.ItemID) (modapi.GroupHandle, error) {
	if name == "" {
		return modapi.GroupHandle{}, fmt.Errorf("recipe group name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.groups[name]; exists {
		return modapi.GroupHandle{}, fmt.Errorf("recipe group %q already registered", name)
	}
	set := make(map[domain.ItemID]struct{}, len(members))
	for _, member := range members {
		set[member] = struct{}{}
	}
	r.groups[name] = set
	return modapi.GroupHandle{Name: name}, nil
}

// ResolveGroup resolves a group by name.
func (r *GroupRegistry) ResolveGroup(name string) (modapi.GroupHandle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.groups[name]; !ok {
		return modapi.GroupHandle{}, domain.RecipeGroupNotFoundError{Group: name}
	}
	return modapi.GroupHandle{Name: name}, nil
}

// Members returns the sorted member items of a group.
func (r *GroupRegistry) Members(name string) []domain.ItemID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	set, ok := r.groups[name]
	if !ok {
		return nil
	}
	out := make([]domain.ItemID, 0, len(set))
	for member := range set {
		out = append(out, member)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Count returns the number of registered groups.
func (r *GroupRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.groups)
}
