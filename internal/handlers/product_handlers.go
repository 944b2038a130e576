package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/01moynul/stockroom-golang/internal/cache"
	"github.com/01moynul/stockroom-golang/internal/catalog"
	"github.com/01moynul/stockroom-golang/internal/models"
	"github.com/01moynul/stockroom-golang/internal/shaper"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// --- Public Product Handlers ---

// ListProducts is the handler for GET /v1/products.
// Query: category (slug), brand (id), q (search), limit, offset.
func (h *Handlers) ListProducts(c *gin.Context) {
	ctx := c.Request.Context()

	// 1. --- Parse filters ---
	var filter catalog.ProductFilter
	if slug := c.Query("category"); slug != "" {
		cat, err := h.Catalog.GetCategoryBySlug(ctx, slug)
		if err != nil {
			// An unknown category simply has no products.
			c.JSON(http.StatusOK, gin.H{"products": []shaper.ProductDTO{}})
			return
		}
		filter.CategoryID = &cat.ID
	}
	if raw := c.Query("brand"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid brand"})
			return
		}
		brandID := uint(id)
		filter.BrandID = &brandID
	}
	filter.Query = strings.TrimSpace(c.Query("q"))
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "0"))
	filter.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	// 2. --- Load (through the cache) ---
	key := "products:" + c.Request.URL.Query().Encode()
	products, err := cache.GetOrLoad(ctx, h.Cache, key, func(ctx context.Context) ([]shaper.ProductDTO, error) {
		list, err := h.Catalog.ListProducts(ctx, filter)
		if err != nil {
			return nil, err
		}
		return h.Shaper.ShapeMany(list), nil
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// GetProduct is the handler for GET /v1/products/:id.
func (h *Handlers) GetProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	dto, err := cache.GetOrLoad(c.Request.Context(), h.Cache, fmt.Sprintf("product:%d", id),
		func(ctx context.Context) (shaper.ProductDTO, error) {
			p, err := h.Catalog.GetProduct(ctx, id)
			if err != nil {
				return shaper.ProductDTO{}, err
			}
			return h.Shaper.ShapeOne(p), nil
		})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": dto})
}

// GetProductStock is the handler for GET /v1/products/:id/stock.
// It lists every variant, for sale or not.
func (h *Handlers) GetProductStock(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	items, err := h.Catalog.ListStockItems(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stock": h.Shaper.ShapeInventory(items), "facets": shaper.FacetsOf(items)})
}

// GetProductInventory is the handler for GET /v1/products/:id/inventory.
// It lists only the variants that are for sale.
func (h *Handlers) GetProductInventory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	items, err := h.Catalog.ListInventory(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"inventory": h.Shaper.ShapeInventory(items), "facets": shaper.FacetsOf(items)})
}

// GetProductGalleries is the handler for GET /v1/products/:id/galleries?color=.
func (h *Handlers) GetProductGalleries(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var colorID *uint
	if raw := c.Query("color"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid color"})
			return
		}
		cid := uint(v)
		colorID = &cid
	}

	galleries, err := h.Catalog.ListGalleries(c.Request.Context(), id, colorID)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]shaper.GalleryDTO, 0, len(galleries))
	for i := range galleries {
		out = append(out, h.Shaper.ShapeGallery(&galleries[i]))
	}
	c.JSON(http.StatusOK, gin.H{"galleries": out})
}

// --- Admin Product Handlers ---

// ProductInput is the JSON body for creating or updating a product.
// A null or missing price means "no base price".
type ProductInput struct {
	CategoryID  *uint               `json:"categoryId"`
	BrandID     uint                `json:"brandId" binding:"required"`
	Title       string              `json:"title" binding:"required,max=120"`
	Description string              `json:"description"`
	SKU         *string             `json:"sku" binding:"omitempty,max=30"`
	Price       decimal.NullDecimal `json:"price"`
	OnSale      bool                `json:"onSale"`
}

func (in ProductInput) apply(p *models.Product) {
	p.CategoryID = in.CategoryID
	p.BrandID = in.BrandID
	p.Title = in.Title
	p.Description = in.Description
	p.SKU = in.SKU
	if p.SKU != nil && strings.TrimSpace(*p.SKU) == "" {
		p.SKU = nil
	}
	p.Price = in.Price
	p.OnSale = in.OnSale
}

// CreateProduct is the handler for POST /v1/admin/products.
func (h *Handlers) CreateProduct(c *gin.Context) {
	var input ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Price.Valid && input.Price.Decimal.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price must not be negative"})
		return
	}

	var p models.Product
	input.apply(&p)
	if err := h.Catalog.CreateProduct(c.Request.Context(), &p); err != nil {
		respondError(c, err)
		return
	}

	h.invalidate(c)
	c.JSON(http.StatusCreated, gin.H{"message": "Product created", "product": p})
}

// UpdateProduct is the handler for PUT /v1/admin/products/:id.
// A changed price is recorded in the product's price history.
func (h *Handlers) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Price.Valid && input.Price.Decimal.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price must not be negative"})
		return
	}

	p, err := h.Catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	input.apply(p)
	if err := h.Catalog.SaveProduct(c.Request.Context(), p); err != nil {
		respondError(c, err)
		return
	}

	h.invalidate(c)

	// Reload so the response reflects the new category and brand.
	if fresh, err := h.Catalog.GetProduct(c.Request.Context(), id); err == nil {
		p = fresh
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product updated", "product": h.Shaper.ShapeOne(p)})
}

// DeleteProduct is the handler for DELETE /v1/admin/products/:id.
func (h *Handlers) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Catalog.DeleteProduct(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	h.invalidate(c)
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

// GetProductPrices is the handler for GET /v1/admin/products/:id/prices.
func (h *Handlers) GetProductPrices(c *gin.Context) {
	h.priceHistory(c, models.PriceSubjectProduct)
}

func (h *Handlers) priceHistory(c *gin.Context, subject string) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	rows, err := h.Catalog.PriceHistory(c.Request.Context(), subject, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"prices": rows})
}

// TagsInput replaces a product's tags.
type TagsInput struct {
	Tags []string `json:"tags"`
}

// SetProductTags is the handler for PUT /v1/admin/products/:id/tags.
func (h *Handlers) SetProductTags(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input TagsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tags, err := h.Catalog.SetTags(c.Request.Context(), id, input.Tags)
	if err != nil {
		respondError(c, err)
		return
	}
	if tags == nil {
		tags = []models.Tag{}
	}
	h.invalidate(c)
	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

// RelationshipInput links a product to a related one.
type RelationshipInput struct {
	ProductID   uint   `json:"productId" binding:"required"`
	Description string `json:"description" binding:"max=140"`
}

// RelateProduct is the handler for POST /v1/admin/products/:id/related.
func (h *Handlers) RelateProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input RelationshipInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rel, err := h.Catalog.Relate(c.Request.Context(), id, input.ProductID, input.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	h.invalidate(c)
	c.JSON(http.StatusCreated, gin.H{"relationship": rel})
}

// UnrelateProduct is the handler for DELETE /v1/admin/products/:id/related/:relId.
func (h *Handlers) UnrelateProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	relID, ok := parseID(c, "relId")
	if !ok {
		return
	}
	if err := h.Catalog.Unrelate(c.Request.Context(), id, relID); err != nil {
		respondError(c, err)
		return
	}
	h.invalidate(c)
	c.JSON(http.StatusOK, gin.H{"message": "Relationship deleted"})
}
