package catalog

import (
	"context"
	"fmt"

	"github.com/01moynul/stockroom-golang/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateGallery adds an empty gallery to a product. Its capacity is the
// configured gallery limit.
func (s *Service) CreateGallery(ctx context.Context, g *models.ProductGallery) error {
	g.ImagesAvailable = s.galleryLimit
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists[models.Product](tx, g.ProductID, "product"); err != nil {
			return err
		}
		if g.ColorID != nil {
			if err := exists[models.Color](tx, *g.ColorID, "color"); err != nil {
				return err
			}
		}
		return translate(tx.Omit(clause.Associations).Create(g).Error, "creating gallery")
	})
}

// GetGallery loads a gallery with its color and ordered images.
func (s *Service) GetGallery(ctx context.Context, id uint) (*models.ProductGallery, error) {
	var g models.ProductGallery
	err := s.db.WithContext(ctx).
		Preload("Color").
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&g, id).Error
	if err != nil {
		return nil, translate(err, fmt.Sprintf("gallery %d", id))
	}
	return &g, nil
}

// ListGalleries returns a product's galleries, optionally only those of one color.
func (s *Service) ListGalleries(ctx context.Context, productID uint, colorID *uint) ([]models.ProductGallery, error) {
	q := s.db.WithContext(ctx).
		Preload("Color").
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Where("product_id = ?", productID)
	if colorID != nil {
		q = q.Where("color_id = ?", *colorID)
	}
	var galleries []models.ProductGallery
	if err := q.Order("id").Find(&galleries).Error; err != nil {
		return nil, translate(err, "listing galleries")
	}
	return galleries, nil
}

// AddImage appends an image to a gallery. It fails with ErrGalleryFull once
// the gallery's capacity is used up. The first image added to any gallery of
// a product becomes the product's listing image.
func (s *Service) AddImage(ctx context.Context, galleryID uint, path string, caption *string) (*models.ProductImage, error) {
	var img models.ProductImage
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. --- Lock the gallery and check capacity ---
		var g models.ProductGallery
		if err := forUpdate(tx).First(&g, galleryID).Error; err != nil {
			return translate(err, fmt.Sprintf("gallery %d", galleryID))
		}
		if g.ImagesAvailable <= 0 {
			return fmt.Errorf("gallery %d: %w", galleryID, models.ErrGalleryFull)
		}

		// 2. --- Append at the end ---
		var count int64
		if err := tx.Model(&models.ProductImage{}).Where("gallery_id = ?", galleryID).Count(&count).Error; err != nil {
			return translate(err, "counting images")
		}
		img = models.ProductImage{GalleryID: galleryID, Path: path, Caption: caption, Position: int(count)}
		if err := tx.Create(&img).Error; err != nil {
			return translate(err, "creating image")
		}

		// 3. --- Decrement capacity ---
		if err := tx.Model(&g).Update("images_available", gorm.Expr("images_available - 1")).Error; err != nil {
			return translate(err, "updating gallery capacity")
		}

		// 4. --- Cache the first image on the product ---
		err := tx.Model(&models.Product{}).
			Where("id = ? AND (first_image = '' OR first_image IS NULL)", g.ProductID).
			Update("first_image", path).Error
		return translate(err, "updating product image")
	})
	if err != nil {
		return nil, err
	}
	return &img, nil
}

// DeleteImage removes an image and gives the slot back to its gallery.
func (s *Service) DeleteImage(ctx context.Context, galleryID, imageID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var g models.ProductGallery
		if err := forUpdate(tx).First(&g, galleryID).Error; err != nil {
			return translate(err, fmt.Sprintf("gallery %d", galleryID))
		}
		res := tx.Where("id = ? AND gallery_id = ?", imageID, galleryID).Delete(&models.ProductImage{})
		if res.Error != nil {
			return translate(res.Error, "deleting image")
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("image %d: %w", imageID, models.ErrNotFound)
		}
		err := tx.Model(&g).Update("images_available", gorm.Expr("images_available + 1")).Error
		return translate(err, "updating gallery capacity")
	})
}
