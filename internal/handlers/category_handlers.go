package handlers

import (
	"context"
	"net/http"

	"github.com/01moynul/stockroom-golang/internal/cache"
	"github.com/01moynul/stockroom-golang/internal/catalog"
	"github.com/01moynul/stockroom-golang/internal/models"
	"github.com/01moynul/stockroom-golang/internal/shaper"
	"github.com/gin-gonic/gin"
)

// --- Public Category Handlers ---

// GetAllCategories is the handler for GET /v1/categories.
// It returns the active categories as a nested tree.
func (h *Handlers) GetAllCategories(c *gin.Context) {
	nodes, err := cache.GetOrLoad(c.Request.Context(), h.Cache, "categories",
		func(ctx context.Context) ([]shaper.CategoryNode, error) {
			tree, err := h.Catalog.CategoryTree(ctx, true)
			if err != nil {
				return nil, err
			}
			return h.Shaper.ShapeTree(tree), nil
		})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": nodes})
}

// CategoryResponse is the body of GET /v1/categories/:slug.
type CategoryResponse struct {
	Category shaper.CategoryDTO  `json:"category"`
	Products []shaper.ProductDTO `json:"products"`
}

// GetCategory is the handler for GET /v1/categories/:slug.
// It returns the category, its place in the tree and its products.
func (h *Handlers) GetCategory(c *gin.Context) {
	slug := c.Param("slug")
	resp, err := cache.GetOrLoad(c.Request.Context(), h.Cache, "category:"+slug,
		func(ctx context.Context) (CategoryResponse, error) {
			// 1. --- Find the category ---
			cat, err := h.Catalog.GetCategoryBySlug(ctx, slug)
			if err != nil {
				return CategoryResponse{}, err
			}

			// 2. --- Place it in the tree ---
			tree, err := h.Catalog.CategoryTree(ctx, false)
			if err != nil {
				return CategoryResponse{}, err
			}
			dto, err := h.Shaper.ShapeCategory(*cat, tree)
			if err != nil {
				return CategoryResponse{}, err
			}

			// 3. --- Its products ---
			products, err := h.Catalog.ListProducts(ctx, catalog.ProductFilter{CategoryID: &cat.ID})
			if err != nil {
				return CategoryResponse{}, err
			}
			return CategoryResponse{Category: dto, Products: h.Shaper.ShapeMany(products)}, nil
		})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// --- Admin Category Handlers ---

// CategoryInput is the JSON body for creating or updating a category.
type CategoryInput struct {
	Name     string `json:"name" binding:"required,max=120"`
	ParentID *uint  `json:"parentId"`
	Active   *bool  `json:"active"`
}

// ListCategoriesAdmin is the handler for GET /v1/admin/categories.
// Unlike the public tree it includes inactive categories and display paths.
func (h *Handlers) ListCategoriesAdmin(c *gin.Context) {
	ctx := c.Request.Context()
	tree, err := h.Catalog.CategoryTree(ctx, false)
	if err != nil {
		respondError(c, err)
		return
	}
	cats, err := h.Catalog.ListCategories(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	type row struct {
		models.Category
		Path string `json:"path"`
	}
	rows := make([]row, 0, len(cats))
	for _, cat := range cats {
		path, err := tree.DisplayPath(cat.ID, h.Config.CategorySeparator)
		if err != nil {
			path = cat.Name
		}
		rows = append(rows, row{Category: cat, Path: path})
	}
	c.JSON(http.StatusOK, gin.H{"categories": rows})
}

// CreateCategory is the handler for POST /v1/admin/categories.
func (h *Handlers) CreateCategory(c *gin.Context) {
	var input CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cat := models.Category{Name: input.Name, ParentID: input.ParentID, Active: true}
	if input.Active != nil {
		cat.Active = *input.Active
	}
	if err := h.Catalog.SaveCategory(c.Request.Context(), &cat); err != nil {
		respondError(c, err)
		return
	}

	h.invalidate(c)
	c.JSON(http.StatusCreated, gin.H{"message": "Category created", "category": cat})
}

// UpdateCategory is the handler for PUT /v1/admin/categories/:id.
func (h *Handlers) UpdateCategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cat, err := h.Catalog.GetCategory(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	cat.Name = input.Name
	cat.ParentID = input.ParentID
	if input.Active != nil {
		cat.Active = *input.Active
	}
	if err := h.Catalog.SaveCategory(c.Request.Context(), cat); err != nil {
		respondError(c, err)
		return
	}

	h.invalidate(c)
	c.JSON(http.StatusOK, gin.H{"message": "Category updated", "category": cat})
}

// DeleteCategory is the handler for DELETE /v1/admin/categories/:id.
func (h *Handlers) DeleteCategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Catalog.DeleteCategory(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	h.invalidate(c)
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}
