package core

import (
	"fmt"
	"sync"

	"craftcore/pkg/domain"
	"craftcore/pkg/modapi"
)

type contentEntry struct {
	namespace string
	name      string
}

func (e contentEntry) qualified() string {
	return e.namespace + "/" + e.name
}

// ContentRegistry is the process-wide item and tile table. Identifiers are
// assigned sequentially at registration and stay stable for the lifetime of
// the process. It implements modapi.ContentResolver.
type ContentRegistry struct {
	mu        sync.RWMutex
	nextItem  domain.ItemID
	nextTile  domain.TileID
	items     map[domain.ItemID]contentEntry
	itemNames map[string]domain.ItemID
	tiles     map[domain.TileID]contentEntry
	tileNames map[string]domain.TileID
}

// NewContentRegistry constructs an empty content registry.
func NewContentRegistry() *ContentRegistry {
	return &ContentRegistry{
		items:     make(map[domain.ItemID]contentEntry),
		itemNames: make(map[string]domain.ItemID),
		tiles:     make(map[domain.TileID]contentEntry),
		tileNames: make(map[string]domain.TileID),
	}
}

// RegisterItem adds an item under the given namespace and returns its handle.
// Duplicate (namespace, name) pairs are rejected.
func (r *ContentRegistry) RegisterItem(namespace, name string) (modapi.ItemHandle, error) {
	if namespace == "" || name == "" {
		return modapi.ItemHandle{}, fmt.Errorf("item namespace and name cannot be empty")
	}
	entry := contentEntry{namespace: namespace, name: name}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.itemNames[entry.qualified()]; exists {
		return modapi.ItemHandle{}, fmt.Errorf("item %s already registered", entry.qualified())
	}
	r.nextItem++
	id := r.nextItem
	r.items[id] = entry
	r.itemNames[entry.qualified()] = id
	itemsRegistered.Inc()
	return modapi.ItemHandle{Namespace: namespace, Name: name, ID: id}, nil
}

// RegisterTile adds a crafting station tile under the given namespace.
func (r *ContentRegistry) RegisterTile(namespace, name string) (modapi.TileHandle, error) {
	if namespace == "" || name == "" {
		return modapi.TileHandle{}, fmt.Errorf("tile namespace and name cannot be empty")
	}
	entry := contentEntry{namespace: namespace, name: name}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tileNames[entry.qualified()]; exists {
		return modapi.TileHandle{}, fmt.Errorf("tile %s already registered", entry.qualified())
	}
	r.nextTile++
	id := r.nextTile
	r.tiles[id] = entry
	r.tileNames[entry.qualified()] = id
	tilesRegistered.Inc()
	return modapi.TileHandle{Namespace: namespace, Name: name, ID: id}, nil
}

// ResolveItem resolves an item by id.
func (r *ContentRegistry) ResolveItem(id domain.ItemID) (modapi.ItemHandle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.items[id]
	if !ok {
		return modapi.ItemHandle{}, domain.ItemNotFoundError{ID: id}
	}
	return modapi.ItemHandle{Namespace: entry.namespace, Name: entry.name, ID: id}, nil
}

// ResolveItemName resolves an item by namespace and name.
func (r *ContentRegistry) ResolveItemName(namespace, name string) (modapi.ItemHandle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.itemNames[namespace+"/"+name]
	if !ok {
		return modapi.ItemHandle{}, domain.ItemNotFoundError{Namespace: namespace, Name: name}
	}
	return modapi.ItemHandle{Namespace: namespace, Name: name, ID: id}, nil
}

// ResolveTile resolves a tile by id.
func (r *ContentRegistry) ResolveTile(id domain.TileID) (modapi.TileHandle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.tiles[id]
	if !ok {
		return modapi.TileHandle{}, domain.TileNotFoundError{ID: id}
	}
	return modapi.TileHandle{Namespace: entry.namespace, Name: entry.name, ID: id}, nil
}

// LookupItem returns the qualified name for an item id.
func (r *ContentRegistry) LookupItem(id domain.ItemID) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.items[id]
	if !ok {
		return "", false
	}
	return entry.qualified(), true
}

// LookupTile returns the qualified name for a tile id.
func (r *ContentRegistry) LookupTile(id domain.TileID) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.tiles[id]
	if !ok {
		return "", false
	}
	return entry.qualified(), true
}

// ItemCount returns the number of registered items.
func (r *ContentRegistry) ItemCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// TileCount returns the number of registered tiles.
func (r *ContentRegistry) TileCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tiles)
}
