package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Subjects a PriceHistory row can refer to.
const (
	PriceSubjectProduct   = "product"
	PriceSubjectStockItem = "stock_item"
)

// PriceHistory is the model for the append-only 'price_histories' table.
// Price holds the value that was replaced; NewPrice the value written.
type PriceHistory struct {
	ID          uint                `json:"id" gorm:"primaryKey"`
	SubjectType string              `json:"subjectType" gorm:"size:20;not null;index:idx_price_subject"`
	SubjectID   uint                `json:"subjectId" gorm:"not null;index:idx_price_subject"`
	Price       decimal.NullDecimal `json:"price" gorm:"type:decimal(10,2)"`
	NewPrice    decimal.NullDecimal `json:"newPrice" gorm:"type:decimal(10,2)"`
	OnSale      bool                `json:"onSale" gorm:"not null"`
	CreatedAt   time.Time           `json:"createdAt"`
}
