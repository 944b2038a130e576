package catalog

import (
	"testing"

	"github.com/01moynul/stockroom-golang/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uintPtr(v uint) *uint { return &v }

func sampleTree() *Tree {
	return NewTree([]models.Category{
		{ID: 1, Name: "Root"},
		{ID: 2, Name: "Mid", ParentID: uintPtr(1)},
		{ID: 3, Name: "Leaf", ParentID: uintPtr(2)},
		{ID: 4, Name: "Another", ParentID: uintPtr(1)},
	})
}

func TestAncestors(t *testing.T) {
	tree := sampleTree()

	chain, err := tree.Ancestors(3)
	require.NoError(t, err)
	require.Len(t, chain, 2)
	assert.Equal(t, "Root", chain[0].Name)
	assert.Equal(t, "Mid", chain[1].Name)

	chain, err = tree.Ancestors(1)
	require.NoError(t, err)
	assert.Empty(t, chain)

	_, err = tree.Ancestors(99)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestAncestorsDetectsCycle(t *testing.T) {
	tree := NewTree([]models.Category{
		{ID: 1, Name: "A", ParentID: uintPtr(2)},
		{ID: 2, Name: "B", ParentID: uintPtr(1)},
	})
	_, err := tree.Ancestors(1)
	assert.ErrorIs(t, err, models.ErrInvalidHierarchy)
}

func TestDisplayPath(t *testing.T) {
	tree := sampleTree()

	path, err := tree.DisplayPath(3, " :: ")
	require.NoError(t, err)
	assert.Equal(t, "Root :: Mid :: Leaf", path)

	path, err = tree.DisplayPath(1, " :: ")
	require.NoError(t, err)
	assert.Equal(t, "Root", path)
}

func TestValidateParent(t *testing.T) {
	tree := sampleTree()

	assert.NoError(t, tree.ValidateParent(3, nil))
	assert.NoError(t, tree.ValidateParent(4, uintPtr(2)))
	assert.NoError(t, tree.ValidateParent(0, uintPtr(3)))

	assert.ErrorIs(t, tree.ValidateParent(1, uintPtr(1)), models.ErrInvalidHierarchy)
	assert.ErrorIs(t, tree.ValidateParent(1, uintPtr(3)), models.ErrInvalidHierarchy)
	assert.ErrorIs(t, tree.ValidateParent(2, uintPtr(99)), models.ErrNotFound)
}

func TestChildrenAndRoots(t *testing.T) {
	tree := sampleTree()

	roots := tree.Roots()
	require.Len(t, roots, 1)
	assert.Equal(t, uint(1), roots[0].ID)

	children := tree.Children(1)
	require.Len(t, children, 2)
	assert.Equal(t, "Another", children[0].Name)
	assert.Equal(t, "Mid", children[1].Name)

	assert.Empty(t, tree.Children(3))
}
