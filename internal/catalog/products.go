package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/01moynul/stockroom-golang/internal/models"
	"github.com/01moynul/stockroom-golang/internal/pricing"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductFilter narrows ListProducts. Zero values mean "no filter".
type ProductFilter struct {
	CategoryID *uint
	BrandID    *uint
	Query      string
	Limit      int
	Offset     int
}

// CreateProduct inserts a new product. The initial price is not recorded in
// the price history; only changes are.
func (s *Service) CreateProduct(ctx context.Context, p *models.Product) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.checkProductRefs(tx, p); err != nil {
			return err
		}
		return translate(tx.Omit(clause.Associations).Create(p).Error, "creating product")
	})
}

// SaveProduct updates a product. When the base price changes, the replaced
// price is appended to the history in the same transaction.
func (s *Service) SaveProduct(ctx context.Context, p *models.Product) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. --- Re-read the stored row under lock ---
		var stored models.Product
		if err := forUpdate(tx).First(&stored, p.ID).Error; err != nil {
			return translate(err, fmt.Sprintf("product %d", p.ID))
		}

		if err := s.checkProductRefs(tx, p); err != nil {
			return err
		}

		// 2. --- Record the price change ---
		if err := pricing.Record(tx, models.PriceSubjectProduct, p.ID, stored.Price, p.Price, stored.OnSale); err != nil {
			return err
		}

		// 3. --- Write ---
		p.CreatedAt = stored.CreatedAt
		return translate(tx.Omit(clause.Associations).Save(p).Error, "saving product")
	})
}

func (s *Service) checkProductRefs(tx *gorm.DB, p *models.Product) error {
	if err := exists[models.Brand](tx, p.BrandID, "brand"); err != nil {
		return err
	}
	if p.CategoryID != nil {
		if err := exists[models.Category](tx, *p.CategoryID, "category"); err != nil {
			return err
		}
	}
	return nil
}

// GetProduct loads a product with everything the detail view renders.
func (s *Service) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var p models.Product
	err := s.db.WithContext(ctx).
		Preload("Category").
		Preload("Brand.Manufacturer").
		Preload("Tags").
		Preload("Galleries", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Galleries.Color").
		Preload("Galleries.Images", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Stock", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Stock.Measurement.Unit").
		Preload("Stock.Color").
		Preload("Relationships.ToProduct").
		First(&p, id).Error
	if err != nil {
		return nil, translate(err, fmt.Sprintf("product %d", id))
	}
	return &p, nil
}

// ListProducts returns products matching the filter, newest first.
func (s *Service) ListProducts(ctx context.Context, f ProductFilter) ([]models.Product, error) {
	q := s.db.WithContext(ctx).
		Preload("Category").
		Preload("Brand.Manufacturer").
		Preload("Tags").
		Preload("Stock.Measurement.Unit").
		Preload("Stock.Color")

	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.BrandID != nil {
		q = q.Where("brand_id = ?", *f.BrandID)
	}
	if term := strings.TrimSpace(f.Query); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}

	var products []models.Product
	if err := q.Order("created_at DESC").Order("id DESC").Find(&products).Error; err != nil {
		return nil, translate(err, "listing products")
	}
	return products, nil
}

// DeleteProduct removes a product together with its stock items, galleries,
// images, relationships and tag links.
func (s *Service) DeleteProduct(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p := models.Product{ID: id}
		if err := exists[models.Product](tx, id, "product"); err != nil {
			return err
		}
		var stockIDs []uint
		if err := tx.Model(&models.StockItem{}).Where("product_id = ?", id).Pluck("id", &stockIDs).Error; err != nil {
			return translate(err, "loading stock items")
		}
		if err := releaseStock(tx, stockIDs); err != nil {
			return err
		}
		if err := tx.Model(&p).Association("Tags").Clear(); err != nil {
			return translate(err, "clearing tags")
		}
		galleryIDs := tx.Model(&models.ProductGallery{}).Select("id").Where("product_id = ?", id)
		steps := []struct {
			model any
			where string
			args  []any
		}{
			{&models.ProductImage{}, "gallery_id IN (?)", []any{galleryIDs}},
			{&models.ProductGallery{}, "product_id = ?", []any{id}},
			{&models.StockItem{}, "product_id = ?", []any{id}},
			{&models.ProductRelationship{}, "from_product_id = ? OR to_product_id = ?", []any{id, id}},
		}
		for _, step := range steps {
			if err := tx.Where(step.where, step.args...).Delete(step.model).Error; err != nil {
				return translate(err, "deleting product children")
			}
		}
		return translate(tx.Delete(&p).Error, "deleting product")
	})
}

// SetTags replaces the product's tags, creating unknown tags by slug.
func (s *Service) SetTags(ctx context.Context, productID uint, names []string) ([]models.Tag, error) {
	var tags []models.Tag
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists[models.Product](tx, productID, "product"); err != nil {
			return err
		}

		seen := make(map[string]bool)
		for _, name := range names {
			name = strings.TrimSpace(name)
			slug := Slugify(name)
			if slug == "" || seen[slug] {
				continue
			}
			seen[slug] = true

			tag := models.Tag{Name: name, Slug: slug}
			if err := tx.Where(models.Tag{Slug: slug}).FirstOrCreate(&tag).Error; err != nil {
				return translate(err, "saving tag "+slug)
			}
			tags = append(tags, tag)
		}

		product := models.Product{ID: productID}
		if err := tx.Model(&product).Association("Tags").Replace(tags); err != nil {
			return translate(err, "replacing tags")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tags, nil
}

// Relate adds a directed "related product" edge from one product to another.
func (s *Service) Relate(ctx context.Context, fromID, toID uint, description string) (*models.ProductRelationship, error) {
	rel := models.ProductRelationship{FromProductID: fromID, ToProductID: toID, Description: description}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists[models.Product](tx, fromID, "product"); err != nil {
			return err
		}
		if err := exists[models.Product](tx, toID, "related product"); err != nil {
			return err
		}
		return translate(tx.Omit(clause.Associations).Create(&rel).Error, "creating relationship")
	})
	if err != nil {
		return nil, err
	}
	return &rel, nil
}

// Unrelate removes one relationship of a product.
func (s *Service) Unrelate(ctx context.Context, productID, relationshipID uint) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND from_product_id = ?", relationshipID, productID).
		Delete(&models.ProductRelationship{})
	if res.Error != nil {
		return translate(res.Error, "deleting relationship")
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("relationship %d: %w", relationshipID, models.ErrNotFound)
	}
	return nil
}

// PriceHistory lists the base price changes of a product, newest first.
func (s *Service) PriceHistory(ctx context.Context, subject string, id uint) ([]models.PriceHistory, error) {
	return pricing.History(ctx, s.db, subject, id)
}
