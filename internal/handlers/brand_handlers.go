package handlers

import (
	"net/http"

	"github.com/01moynul/stockroom-golang/internal/models"
	"github.com/gin-gonic/gin"
)

// --- Manufacturers ---

// ManufacturerInput is the JSON body for a manufacturer.
type ManufacturerInput struct {
	Name    string  `json:"name" binding:"required,max=120"`
	Website *string `json:"website" binding:"omitempty,url"`
}

// GetAllManufacturers is the handler for GET /v1/admin/manufacturers.
func (h *Handlers) GetAllManufacturers(c *gin.Context) {
	rows, err := h.Catalog.ListManufacturers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"manufacturers": rows})
}

// CreateManufacturer is the handler for POST /v1/admin/manufacturers.
func (h *Handlers) CreateManufacturer(c *gin.Context) {
	var input ManufacturerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	m := models.Manufacturer{Name: input.Name, Website: input.Website}
	if err := h.Catalog.CreateManufacturer(c.Request.Context(), &m); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Manufacturer created", "manufacturer": m})
}

// UpdateManufacturer is the handler for PUT /v1/admin/manufacturers/:id.
func (h *Handlers) UpdateManufacturer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input ManufacturerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	m := models.Manufacturer{ID: id, Name: input.Name, Website: input.Website}
	if err := h.Catalog.SaveManufacturer(c.Request.Context(), &m); err != nil {
		respondError(c, err)
		return
	}
	h.invalidate(c)
	c.JSON(http.StatusOK, gin.H{"message": "Manufacturer updated", "manufacturer": m})
}

// DeleteManufacturer is the handler for DELETE /v1/admin/manufacturers/:id.
func (h *Handlers) DeleteManufacturer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Catalog.DeleteManufacturer(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Manufacturer deleted"})
}

// --- Brands ---

// BrandInput is the JSON body for a brand. Logo is a media path.
type BrandInput struct {
	Name           string  `json:"name" binding:"required,max=120"`
	Description    *string `json:"description"`
	ManufacturerID uint    `json:"manufacturerId" binding:"required"`
	Logo           string  `json:"logo"`
}

// GetAllBrands is the handler for GET /v1/brands.
func (h *Handlers) GetAllBrands(c *gin.Context) {
	rows, err := h.Catalog.ListBrands(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"brands": rows})
}

// CreateBrand is the handler for POST /v1/admin/brands.
func (h *Handlers) CreateBrand(c *gin.Context) {
	var input BrandInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	b := models.Brand{
		Name:           input.Name,
		Description:    input.Description,
		ManufacturerID: input.ManufacturerID,
		Logo:           input.Logo,
	}
	if err := h.Catalog.CreateBrand(c.Request.Context(), &b); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Brand created", "brand": b})
}

// UpdateBrand is the handler for PUT /v1/admin/brands/:id.
func (h *Handlers) UpdateBrand(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input BrandInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	b := models.Brand{
		ID:             id,
		Name:           input.Name,
		Description:    input.Description,
		ManufacturerID: input.ManufacturerID,
		Logo:           input.Logo,
	}
	if err := h.Catalog.SaveBrand(c.Request.Context(), &b); err != nil {
		respondError(c, err)
		return
	}
	h.invalidate(c)
	c.JSON(http.StatusOK, gin.H{"message": "Brand updated", "brand": b})
}

// DeleteBrand is the handler for DELETE /v1/admin/brands/:id.
func (h *Handlers) DeleteBrand(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Catalog.DeleteBrand(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Brand deleted"})
}
