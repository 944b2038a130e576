package handlers

import (
	"crypto/subtle"
	"net/http"

	"github.com/01moynul/stockroom-golang/internal/auth"
	"github.com/gin-gonic/gin"
)

//
// --- Admin Session Handlers ---
//

// LoginInput is the JSON body of POST /v1/admin/login.
type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AdminLogin is the handler for POST /v1/admin/login.
// It checks the configured admin credentials and issues a JWT.
func (h *Handlers) AdminLogin(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 2. --- Check Username ---
	if subtle.ConstantTimeCompare([]byte(input.Username), []byte(h.Config.AdminUsername)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	// 3. --- Check Password ---
	// With no ADMIN_PASSWORD_HASH configured nobody can log in.
	password := auth.Password{Hash: h.Config.AdminPasswordHash}
	match, err := password.Matches(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check password"})
		return
	}
	if !match {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	// 4. --- Generate JWT ---
	token, err := h.Tokens.GenerateToken(input.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	// 5. --- Send Success Response ---
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
	})
}

// GetCacheStats is the handler for GET /v1/admin/cache/stats.
func (h *Handlers) GetCacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"enabled": h.Cache != nil,
		"stats":   h.Cache.GetStats(),
	})
}

// FlushCache is the handler for DELETE /v1/admin/cache.
func (h *Handlers) FlushCache(c *gin.Context) {
	h.invalidate(c)
	c.JSON(http.StatusOK, gin.H{"message": "Cache flushed"})
}
