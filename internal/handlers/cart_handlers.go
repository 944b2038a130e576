package handlers

import (
	"errors"
	"net/http"

	"github.com/01moynul/stockroom-golang/internal/cart"
	"github.com/01moynul/stockroom-golang/internal/middleware"
	"github.com/01moynul/stockroom-golang/internal/models"
	"github.com/01moynul/stockroom-golang/internal/pricing"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

//
// --- Cart Handlers (session) ---
//

// resolveCart finds the visitor's open cart or creates one.
func (h *Handlers) resolveCart(c *gin.Context) (*cart.Cart, bool) {
	sess := middleware.CurrentSession(c)
	crt, err := h.Carts.Resolve(c.Request.Context(), sess)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return crt, true
}

// respondCart writes the shaped cart.
func (h *Handlers) respondCart(c *gin.Context, status int, crt *cart.Cart) {
	lines, err := crt.Items(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(status, gin.H{"cart": h.Shaper.ShapeCart(crt.Record(), lines)})
}

// quote checks that qty units of a stock item can be ordered and returns
// the price to record on the cart line.
func (h *Handlers) quote(c *gin.Context, stockItemID uint, qty int) (decimal.NullDecimal, bool) {
	item, err := h.Catalog.GetStockItem(c.Request.Context(), stockItemID)
	if err != nil {
		respondError(c, err)
		return decimal.NullDecimal{}, false
	}
	if !pricing.CanOrder(item, qty) {
		c.JSON(http.StatusConflict, gin.H{
			"error":     "Insufficient stock",
			"available": pricing.Available(item),
		})
		return decimal.NullDecimal{}, false
	}
	price, err := pricing.EffectivePrice(item)
	if err != nil {
		respondError(c, err)
		return decimal.NullDecimal{}, false
	}
	return decimal.NewNullDecimal(price), true
}

// GetCart is the handler for GET /v1/cart.
func (h *Handlers) GetCart(c *gin.Context) {
	crt, ok := h.resolveCart(c)
	if !ok {
		return
	}
	h.respondCart(c, http.StatusOK, crt)
}

// GetCartItem is the handler for GET /v1/cart/items/:id.
func (h *Handlers) GetCartItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	crt, ok := h.resolveCart(c)
	if !ok {
		return
	}
	line, err := crt.Item(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	shaped := h.Shaper.ShapeCart(crt.Record(), []models.CartItem{*line})
	c.JSON(http.StatusOK, gin.H{"item": shaped.Items[0]})
}

// AddToCartInput defines the JSON for adding an item to the cart.
type AddToCartInput struct {
	StockItemID uint `json:"stock_item_id" binding:"required"`
	Quantity    int  `json:"quantity" binding:"required,gt=0"`
}

// AddToCart is the handler for POST /v1/cart/items.
// Adding an item already in the cart replaces its quantity.
func (h *Handlers) AddToCart(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	var input AddToCartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	// 2. --- Find the cart ---
	crt, ok := h.resolveCart(c)
	if !ok {
		return
	}

	// 3. --- Stock check and price quote ---
	price, ok := h.quote(c, input.StockItemID, input.Quantity)
	if !ok {
		return
	}

	// 4. --- Upsert the line ---
	if _, err := crt.Add(c.Request.Context(), input.StockItemID, price, input.Quantity); err != nil {
		respondError(c, err)
		return
	}
	h.respondCart(c, http.StatusCreated, crt)
}

// UpdateCartInput sets the quantities of several lines at once.
// A quantity of zero removes the line.
type UpdateCartInput struct {
	Items []struct {
		StockItemID uint `json:"stock_item_id" binding:"required"`
		Quantity    int  `json:"quantity" binding:"gte=0"`
	} `json:"items" binding:"required,dive"`
}

// UpdateCart is the handler for PUT /v1/cart.
func (h *Handlers) UpdateCart(c *gin.Context) {
	var input UpdateCartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	crt, ok := h.resolveCart(c)
	if !ok {
		return
	}

	for _, it := range input.Items {
		if it.Quantity == 0 {
			if err := crt.Discard(c.Request.Context(), it.StockItemID); err != nil {
				respondError(c, err)
				return
			}
			continue
		}
		price, ok := h.quote(c, it.StockItemID, it.Quantity)
		if !ok {
			return
		}
		if _, err := crt.Update(c.Request.Context(), it.StockItemID, price, it.Quantity); err != nil {
			respondError(c, err)
			return
		}
	}
	h.respondCart(c, http.StatusOK, crt)
}

// DeleteCartItem is the handler for DELETE /v1/cart/items/:id.
func (h *Handlers) DeleteCartItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	crt, ok := h.resolveCart(c)
	if !ok {
		return
	}
	if err := crt.Remove(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	h.respondCart(c, http.StatusOK, crt)
}

// ClearCart is the handler for DELETE /v1/cart.
func (h *Handlers) ClearCart(c *gin.Context) {
	crt, ok := h.resolveCart(c)
	if !ok {
		return
	}
	if err := crt.Clear(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	h.respondCart(c, http.StatusOK, crt)
}

// Checkout is the handler for POST /v1/cart/checkout.
// The cart is closed; the visitor's next request starts a new one.
func (h *Handlers) Checkout(c *gin.Context) {
	ctx := c.Request.Context()

	// 1. --- Find the cart ---
	crt, ok := h.resolveCart(c)
	if !ok {
		return
	}

	// 2. --- Validate the contents ---
	lines, err := crt.Items(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	if len(lines) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
		return
	}
	for _, line := range lines {
		if line.StockItem == nil || !pricing.CanOrder(line.StockItem, line.Quantity) {
			c.JSON(http.StatusConflict, gin.H{"error": "Insufficient stock", "stockItemId": line.StockItemID})
			return
		}
	}
	if _, err := cart.Subtotal(lines); err != nil {
		respondError(c, err)
		return
	}

	// 3. --- Close it ---
	if err := crt.Checkout(ctx); err != nil {
		if errors.Is(err, models.ErrCheckedOut) {
			c.JSON(http.StatusConflict, gin.H{"error": "Cart already checked out"})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout complete",
		"cart":    h.Shaper.ShapeCart(crt.Record(), lines),
	})
}
