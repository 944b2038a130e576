package handlers

import (
	"net/http"

	"github.com/01moynul/stockroom-golang/internal/models"
	"github.com/gin-gonic/gin"
)

// --- Colors ---

// ColorInput is the JSON body for a color. Swatch is a media path.
type ColorInput struct {
	Name   string `json:"name" binding:"required,max=30"`
	Red    int    `json:"red" binding:"gte=0,lte=255"`
	Green  int    `json:"green" binding:"gte=0,lte=255"`
	Blue   int    `json:"blue" binding:"gte=0,lte=255"`
	Swatch string `json:"swatch"`
}

func (in ColorInput) model(id uint) models.Color {
	return models.Color{ID: id, Name: in.Name, Red: in.Red, Green: in.Green, Blue: in.Blue, Swatch: in.Swatch}
}

// GetAllColors is the handler for GET /v1/admin/colors.
func (h *Handlers) GetAllColors(c *gin.Context) {
	rows, err := h.Catalog.ListColors(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"colors": rows})
}

// CreateColor is the handler for POST /v1/admin/colors.
func (h *Handlers) CreateColor(c *gin.Context) {
	var input ColorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	color := input.model(0)
	if err := h.Catalog.CreateColor(c.Request.Context(), &color); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Color created", "color": color})
}

// UpdateColor is the handler for PUT /v1/admin/colors/:id.
func (h *Handlers) UpdateColor(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input ColorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	color := input.model(id)
	if err := h.Catalog.SaveColor(c.Request.Context(), &color); err != nil {
		respondError(c, err)
		return
	}
	h.invalidate(c)
	c.JSON(http.StatusOK, gin.H{"message": "Color updated", "color": color})
}

// DeleteColor is the handler for DELETE /v1/admin/colors/:id.
func (h *Handlers) DeleteColor(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Catalog.DeleteColor(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	h.invalidate(c)
	c.JSON(http.StatusOK, gin.H{"message": "Color deleted"})
}

// --- Measurement units ---

// UnitInput is the JSON body for a measurement unit.
type UnitInput struct {
	Name         string  `json:"name" binding:"required,max=20"`
	Abbreviation *string `json:"abbreviation" binding:"omitempty,max=8"`
	PluralName   *string `json:"pluralName" binding:"omitempty,max=10"`
}

// GetAllUnits is the handler for GET /v1/admin/units.
func (h *Handlers) GetAllUnits(c *gin.Context) {
	rows, err := h.Catalog.ListUnits(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"units": rows})
}

// CreateUnit is the handler for POST /v1/admin/units.
func (h *Handlers) CreateUnit(c *gin.Context) {
	var input UnitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	unit := models.MeasurementUnit{Name: input.Name, Abbreviation: input.Abbreviation, PluralName: input.PluralName}
	if err := h.Catalog.CreateUnit(c.Request.Context(), &unit); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Unit created", "unit": unit})
}

// DeleteUnit is the handler for DELETE /v1/admin/units/:id.
func (h *Handlers) DeleteUnit(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Catalog.DeleteUnit(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Unit deleted"})
}

// --- Measurements ---

// MeasurementInput is the JSON body for a size such as "12" ounces.
type MeasurementInput struct {
	Value  string `json:"value" binding:"required,max=8"`
	UnitID uint   `json:"unitId" binding:"required"`
}

// GetAllMeasurements is the handler for GET /v1/admin/measurements.
func (h *Handlers) GetAllMeasurements(c *gin.Context) {
	rows, err := h.Catalog.ListMeasurements(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"measurements": rows})
}

// CreateMeasurement is the handler for POST /v1/admin/measurements.
func (h *Handlers) CreateMeasurement(c *gin.Context) {
	var input MeasurementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	m := models.Measurement{Value: input.Value, UnitID: input.UnitID}
	if err := h.Catalog.CreateMeasurement(c.Request.Context(), &m); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Measurement created", "measurement": m})
}

// DeleteMeasurement is the handler for DELETE /v1/admin/measurements/:id.
func (h *Handlers) DeleteMeasurement(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Catalog.DeleteMeasurement(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Measurement deleted"})
}
