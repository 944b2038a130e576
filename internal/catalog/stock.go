package catalog

import (
	"context"
	"fmt"

	"github.com/01moynul/stockroom-golang/internal/models"
	"github.com/01moynul/stockroom-golang/internal/pricing"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func preloadStock(db *gorm.DB) *gorm.DB {
	return db.Preload("Product").Preload("Measurement.Unit").Preload("Color")
}

// CreateStockItem adds a variant to an existing product.
func (s *Service) CreateStockItem(ctx context.Context, item *models.StockItem) error {
	if item.PackageCount < 1 {
		item.PackageCount = 1
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.checkStockRefs(tx, item); err != nil {
			return err
		}
		return translate(tx.Omit(clause.Associations).Create(item).Error, "creating stock item")
	})
}

// SaveStockItem updates a variant. A changed price override is appended to
// the history in the same transaction.
func (s *Service) SaveStockItem(ctx context.Context, item *models.StockItem) error {
	if item.PackageCount < 1 {
		item.PackageCount = 1
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var stored models.StockItem
		if err := forUpdate(tx).First(&stored, item.ID).Error; err != nil {
			return translate(err, fmt.Sprintf("stock item %d", item.ID))
		}
		if err := s.checkStockRefs(tx, item); err != nil {
			return err
		}
		if err := pricing.Record(tx, models.PriceSubjectStockItem, item.ID, stored.Price, item.Price, stored.OnSale); err != nil {
			return err
		}
		item.CreatedAt = stored.CreatedAt
		return translate(tx.Omit(clause.Associations).Save(item).Error, "saving stock item")
	})
}

func (s *Service) checkStockRefs(tx *gorm.DB, item *models.StockItem) error {
	if err := exists[models.Product](tx, item.ProductID, "product"); err != nil {
		return err
	}
	if item.MeasurementID != nil {
		if err := exists[models.Measurement](tx, *item.MeasurementID, "measurement"); err != nil {
			return err
		}
	}
	if item.ColorID != nil {
		if err := exists[models.Color](tx, *item.ColorID, "color"); err != nil {
			return err
		}
	}
	return nil
}

// GetStockItem loads a variant with its product, size and color.
func (s *Service) GetStockItem(ctx context.Context, id uint) (*models.StockItem, error) {
	var item models.StockItem
	if err := preloadStock(s.db.WithContext(ctx)).First(&item, id).Error; err != nil {
		return nil, translate(err, fmt.Sprintf("stock item %d", id))
	}
	return &item, nil
}

// ListStockItems returns every variant of a product.
func (s *Service) ListStockItems(ctx context.Context, productID uint) ([]models.StockItem, error) {
	return s.listStock(ctx, productID, false)
}

// ListInventory returns the variants of a product that are for sale.
func (s *Service) ListInventory(ctx context.Context, productID uint) ([]models.StockItem, error) {
	return s.listStock(ctx, productID, true)
}

func (s *Service) listStock(ctx context.Context, productID uint, forSaleOnly bool) ([]models.StockItem, error) {
	if err := exists[models.Product](s.db.WithContext(ctx), productID, "product"); err != nil {
		return nil, err
	}
	q := preloadStock(s.db.WithContext(ctx)).Where("product_id = ?", productID)
	if forSaleOnly {
		q = q.Where("for_sale = ?", true)
	}
	var items []models.StockItem
	if err := q.Order("id").Find(&items).Error; err != nil {
		return nil, translate(err, "listing stock items")
	}
	return items, nil
}

// DeleteStockItem removes a variant.
func (s *Service) DeleteStockItem(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists[models.StockItem](tx, id, "stock item"); err != nil {
			return err
		}
		if err := releaseStock(tx, []uint{id}); err != nil {
			return err
		}
		return translate(tx.Delete(&models.StockItem{}, id).Error, "deleting stock item")
	})
}
