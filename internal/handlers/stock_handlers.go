package handlers

import (
	"net/http"

	"github.com/01moynul/stockroom-golang/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// StockItemInput is the JSON body for creating or updating a variant.
// ForSale defaults to true when omitted.
type StockItemInput struct {
	ProductID     uint                `json:"productId" binding:"required"`
	MeasurementID *uint               `json:"measurementId"`
	ColorID       *uint               `json:"colorId"`
	Attributes    datatypes.JSONMap   `json:"attributes"`
	PackageCount  int                 `json:"packageCount" binding:"gte=0"`
	Price         decimal.NullDecimal `json:"price"`
	OnSale        bool                `json:"onSale"`
	Quantity      int                 `json:"quantity" binding:"gte=0"`
	ForSale       *bool               `json:"forSale"`
	DisableSaleAt *int                `json:"disableSaleAt" binding:"omitempty,gte=0"`
	OrderThrottle *int                `json:"orderThrottle" binding:"omitempty,gte=1"`
}

func (in StockItemInput) apply(item *models.StockItem) {
	item.ProductID = in.ProductID
	item.MeasurementID = in.MeasurementID
	item.ColorID = in.ColorID
	item.Attributes = in.Attributes
	item.PackageCount = in.PackageCount
	item.Price = in.Price
	item.OnSale = in.OnSale
	item.Quantity = in.Quantity
	item.ForSale = in.ForSale == nil || *in.ForSale
	item.DisableSaleAt = in.DisableSaleAt
	item.OrderThrottle = in.OrderThrottle
}

func bindStockInput(c *gin.Context) (StockItemInput, bool) {
	var input StockItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return input, false
	}
	if input.Price.Valid && input.Price.Decimal.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price must not be negative"})
		return input, false
	}
	return input, true
}

// CreateStockItem is the handler for POST /v1/admin/stock.
func (h *Handlers) CreateStockItem(c *gin.Context) {
	input, ok := bindStockInput(c)
	if !ok {
		return
	}

	var item models.StockItem
	input.apply(&item)
	if err := h.Catalog.CreateStockItem(c.Request.Context(), &item); err != nil {
		respondError(c, err)
		return
	}

	h.invalidate(c)
	c.JSON(http.StatusCreated, gin.H{"message": "Stock item created", "stockItem": item})
}

// GetStockItem is the handler for GET /v1/admin/stock/:id.
func (h *Handlers) GetStockItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	item, err := h.Catalog.GetStockItem(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stockItem": item})
}

// UpdateStockItem is the handler for PUT /v1/admin/stock/:id.
// A changed price override is recorded in the item's price history.
func (h *Handlers) UpdateStockItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	input, ok := bindStockInput(c)
	if !ok {
		return
	}

	item := models.StockItem{ID: id}
	input.apply(&item)
	if err := h.Catalog.SaveStockItem(c.Request.Context(), &item); err != nil {
		respondError(c, err)
		return
	}

	h.invalidate(c)
	c.JSON(http.StatusOK, gin.H{"message": "Stock item updated", "stockItem": item})
}

// DeleteStockItem is the handler for DELETE /v1/admin/stock/:id.
func (h *Handlers) DeleteStockItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Catalog.DeleteStockItem(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	h.invalidate(c)
	c.JSON(http.StatusOK, gin.H{"message": "Stock item deleted"})
}

// GetStockPrices is the handler for GET /v1/admin/stock/:id/prices.
func (h *Handlers) GetStockPrices(c *gin.Context) {
	h.priceHistory(c, models.PriceSubjectStockItem)
}
