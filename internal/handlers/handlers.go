package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/01moynul/stockroom-golang/internal/auth"
	"github.com/01moynul/stockroom-golang/internal/cache"
	"github.com/01moynul/stockroom-golang/internal/cart"
	"github.com/01moynul/stockroom-golang/internal/catalog"
	"github.com/01moynul/stockroom-golang/internal/config"
	"github.com/01moynul/stockroom-golang/internal/models"
	"github.com/01moynul/stockroom-golang/internal/shaper"
	"github.com/gin-gonic/gin"
)

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	Catalog *catalog.Service
	Carts   *cart.Manager
	Shaper  *shaper.Shaper
	Cache   *cache.Cache // nil when Redis is not configured
	Tokens  *auth.Tokens
	Config  *config.Config
}

// parseID reads a numeric path parameter, answering 400 when it is not one.
func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + param})
		return 0, false
	}
	return uint(id), true
}

// respondError maps service errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrInvalidHierarchy),
		errors.Is(err, models.ErrInvalidQuantity),
		errors.Is(err, models.ErrInvalidName):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrAlreadyExists),
		errors.Is(err, models.ErrInUse),
		errors.Is(err, models.ErrNoPriceSet),
		errors.Is(err, models.ErrGalleryFull),
		errors.Is(err, models.ErrCheckedOut):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// invalidate drops cached catalog responses after an admin write.
func (h *Handlers) invalidate(c *gin.Context) {
	h.Cache.Invalidate(c.Request.Context())
}
