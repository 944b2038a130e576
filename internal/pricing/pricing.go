// Package pricing resolves what a stock item costs and how many units of it
// can be sold, and keeps the append-only price history.
package pricing

import (
	"context"
	"fmt"

	"github.com/01moynul/stockroom-golang/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// EffectivePrice returns the item's own price when set, else the base price
// of its product. item.Product must be loaded.
func EffectivePrice(item *models.StockItem) (decimal.Decimal, error) {
	if item.Price.Valid {
		return item.Price.Decimal, nil
	}
	if item.Product != nil && item.Product.Price.Valid {
		return item.Product.Price.Decimal, nil
	}
	return decimal.Zero, fmt.Errorf("stock item %d: %w", item.ID, models.ErrNoPriceSet)
}

// Available is the number of units that may still be sold.
// Units at or below DisableSaleAt are held back.
func Available(item *models.StockItem) int {
	if !item.ForSale {
		return 0
	}
	available := item.Quantity
	if item.DisableSaleAt != nil {
		available -= *item.DisableSaleAt
	}
	if available < 0 {
		return 0
	}
	return available
}

// CanOrder reports whether qty units fit both the available stock and the
// per-order throttle.
func CanOrder(item *models.StockItem, qty int) bool {
	if qty < 1 || qty > Available(item) {
		return false
	}
	if item.OrderThrottle != nil && qty > *item.OrderThrottle {
		return false
	}
	return true
}

// Changed reports whether a price write actually changes the stored value.
// Two NULLs are equal; NULL and a value are not.
func Changed(prev, next decimal.NullDecimal) bool {
	if prev.Valid != next.Valid {
		return true
	}
	if !prev.Valid {
		return false
	}
	return !prev.Decimal.Equal(next.Decimal)
}

// Record appends a history row when the price changed. It must run inside
// the transaction that writes the new price.
func Record(tx *gorm.DB, subject string, subjectID uint, prev, next decimal.NullDecimal, onSale bool) error {
	if !Changed(prev, next) {
		return nil
	}

	entry := models.PriceHistory{
		SubjectType: subject,
		SubjectID:   subjectID,
		Price:       prev,
		NewPrice:    next,
		OnSale:      onSale,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return fmt.Errorf("recording %s %d price history: %w", subject, subjectID, err)
	}
	return nil
}

// History lists the recorded price changes of one subject, newest first.
func History(ctx context.Context, db *gorm.DB, subject string, subjectID uint) ([]models.PriceHistory, error) {
	var rows []models.PriceHistory
	err := db.WithContext(ctx).
		Where("subject_type = ? AND subject_id = ?", subject, subjectID).
		Order("created_at DESC").Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("loading %s %d price history: %w", subject, subjectID, err)
	}
	return rows, nil
}
