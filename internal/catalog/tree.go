package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/01moynul/stockroom-golang/internal/models"
)

// Tree is an in-memory view of the category hierarchy keyed by id.
type Tree struct {
	nodes    map[uint]models.Category
	children map[uint][]uint
	roots    []uint
}

// NewTree indexes a flat category list. Parents that are not in the list
// are treated as missing.
func NewTree(categories []models.Category) *Tree {
	t := &Tree{
		nodes:    make(map[uint]models.Category, len(categories)),
		children: make(map[uint][]uint),
	}
	for _, c := range categories {
		t.nodes[c.ID] = c
	}
	for _, c := range categories {
		if c.ParentID == nil {
			t.roots = append(t.roots, c.ID)
			continue
		}
		t.children[*c.ParentID] = append(t.children[*c.ParentID], c.ID)
	}
	return t
}

// Get returns one category.
func (t *Tree) Get(id uint) (models.Category, bool) {
	c, ok := t.nodes[id]
	return c, ok
}

// Ancestors returns the chain of parents of id, outermost first, excluding
// the category itself.
func (t *Tree) Ancestors(id uint) ([]models.Category, error) {
	node, ok := t.nodes[id]
	if !ok {
		return nil, fmt.Errorf("category %d: %w", id, models.ErrNotFound)
	}

	visited := map[uint]bool{id: true}
	var chain []models.Category
	for node.ParentID != nil {
		parentID := *node.ParentID
		if visited[parentID] {
			return nil, fmt.Errorf("category %d: cycle at %d: %w", id, parentID, models.ErrInvalidHierarchy)
		}
		visited[parentID] = true

		parent, ok := t.nodes[parentID]
		if !ok {
			return nil, fmt.Errorf("category %d: parent %d: %w", id, parentID, models.ErrNotFound)
		}
		chain = append(chain, parent)
		node = parent
	}

	// Reverse to outermost first.
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, nil
}

// DisplayPath renders "Root :: Mid :: Leaf" using sep.
func (t *Tree) DisplayPath(id uint, sep string) (string, error) {
	chain, err := t.Ancestors(id)
	if err != nil {
		return "", err
	}
	names := make([]string, 0, len(chain)+1)
	for _, c := range chain {
		names = append(names, c.Name)
	}
	names = append(names, t.nodes[id].Name)
	return strings.Join(names, sep), nil
}

// ValidateParent checks that giving id the parent parentID keeps the tree
// cycle-free. id may be zero for a category that has not been saved yet.
func (t *Tree) ValidateParent(id uint, parentID *uint) error {
	if parentID == nil {
		return nil
	}
	if id != 0 && *parentID == id {
		return fmt.Errorf("category %d cannot be its own parent: %w", id, models.ErrInvalidHierarchy)
	}

	visited := make(map[uint]bool)
	current := *parentID
	for {
		if id != 0 && current == id {
			return fmt.Errorf("category %d would become its own ancestor: %w", id, models.ErrInvalidHierarchy)
		}
		if visited[current] {
			return fmt.Errorf("existing cycle at category %d: %w", current, models.ErrInvalidHierarchy)
		}
		visited[current] = true

		node, ok := t.nodes[current]
		if !ok {
			return fmt.Errorf("parent category %d: %w", current, models.ErrNotFound)
		}
		if node.ParentID == nil {
			return nil
		}
		current = *node.ParentID
	}
}

// Children returns the direct children of id ordered by name.
func (t *Tree) Children(id uint) []models.Category {
	return t.sorted(t.children[id])
}

// Roots returns the categories without a parent ordered by name.
func (t *Tree) Roots() []models.Category {
	return t.sorted(t.roots)
}

func (t *Tree) sorted(ids []uint) []models.Category {
	out := make([]models.Category, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.nodes[id])
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].ID < out[j].ID
		}
		return out[i].Name < out[j].Name
	})
	return out
}
