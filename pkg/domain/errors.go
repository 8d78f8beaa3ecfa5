package domain

import "fmt"

// ItemNotFoundError reports an item reference that did not resolve against
// the content registry.
type ItemNotFoundError struct {
	Namespace string
	Name      string
	ID        ItemID
}

func (e ItemNotFoundError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("item id %d is not registered", e.ID)
	}
	return fmt.Sprintf("item %q not found in namespace %q; items owned by another mod must use the qualified \"Mod/Item\" form", e.Name, e.Namespace)
}

// TileNotFoundError reports a tile id with no entry in the tile table.
type TileNotFoundError struct {
	ID TileID
}

func (e TileNotFoundError) Error() string {
	return fmt.Sprintf("tile id %d is not registered", e.ID)
}

// RecipeGroupNotFoundError reports a recipe group name unknown to the group
// registry.
type RecipeGroupNotFoundError struct {
	Group string
}

func (e RecipeGroupNotFoundError) Error() string {
	return fmt.Sprintf("recipe group %q is not registered", e.Group)
}

// MissingResultError is returned by Build when no result item was ever
// configured.
type MissingResultError struct{}

func (MissingResultError) Error() string {
	return "recipe has no result item"
}

// RecipeCommittedError is returned when Build is called on a builder whose
// recipe was already registered.
type RecipeCommittedError struct {
	Recipe RecipeID
}

func (e RecipeCommittedError) Error() string {
	return fmt.Sprintf("recipe %s already registered; builders are single use", e.Recipe)
}
