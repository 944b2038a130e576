package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/01moynul/stockroom-golang/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// allowedImageExts are the upload extensions accepted for gallery images.
var allowedImageExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true}

// GalleryInput creates a gallery for a product, optionally for one color.
type GalleryInput struct {
	ProductID uint  `json:"productId" binding:"required"`
	ColorID   *uint `json:"colorId"`
}

// CreateGallery is the handler for POST /v1/admin/galleries.
func (h *Handlers) CreateGallery(c *gin.Context) {
	var input GalleryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	g := models.ProductGallery{ProductID: input.ProductID, ColorID: input.ColorID}
	if err := h.Catalog.CreateGallery(c.Request.Context(), &g); err != nil {
		respondError(c, err)
		return
	}
	h.invalidate(c)
	c.JSON(http.StatusCreated, gin.H{"message": "Gallery created", "gallery": g})
}

// UploadGalleryImage handles POST /v1/admin/galleries/:id/images.
// It saves the file under the media root and appends it to the gallery.
func (h *Handlers) UploadGalleryImage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	// 1. Get the file from the request
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported image type"})
		return
	}

	// 2. Check the gallery before writing anything to disk
	g, err := h.Catalog.GetGallery(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if g.ImagesAvailable <= 0 {
		respondError(c, fmt.Errorf("gallery %d: %w", id, models.ErrGalleryFull))
		return
	}

	// 3. Create the product's media directory if it doesn't exist
	relDir := path.Join("products", fmt.Sprint(g.ProductID))
	if err := os.MkdirAll(filepath.Join(h.Config.MediaRoot, filepath.FromSlash(relDir)), 0755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to prepare media directory"})
		return
	}

	// 4. Save the file under a safe unique name (uuid + extension)
	relPath := path.Join(relDir, uuid.NewString()+ext)
	savePath := filepath.Join(h.Config.MediaRoot, filepath.FromSlash(relPath))
	if err := c.SaveUploadedFile(file, savePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
		return
	}

	// 5. Record it; the gallery may have filled up meanwhile
	var caption *string
	if v := strings.TrimSpace(c.PostForm("caption")); v != "" {
		caption = &v
	}
	img, err := h.Catalog.AddImage(c.Request.Context(), id, relPath, caption)
	if err != nil {
		_ = os.Remove(savePath)
		respondError(c, err)
		return
	}

	h.invalidate(c)
	c.JSON(http.StatusCreated, gin.H{
		"image": img,
		"url":   h.Shaper.URL(img.Path),
	})
}

// DeleteGalleryImage is the handler for DELETE /v1/admin/galleries/:id/images/:imageId.
// The stored file is kept; only the record is removed.
func (h *Handlers) DeleteGalleryImage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	imageID, ok := parseID(c, "imageId")
	if !ok {
		return
	}
	if err := h.Catalog.DeleteImage(c.Request.Context(), id, imageID); err != nil {
		respondError(c, err)
		return
	}
	h.invalidate(c)
	c.JSON(http.StatusOK, gin.H{"message": "Image deleted"})
}
