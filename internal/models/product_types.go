package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the model for the 'products' table.
// Price is the base price; it stays NULL until a price has been set.
type Product struct {
	ID          uint                `json:"id" gorm:"primaryKey"`
	CategoryID  *uint               `json:"categoryId,omitempty" gorm:"index"`
	Category    *Category           `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	BrandID     uint                `json:"brandId" gorm:"index;not null"`
	Brand       Brand               `json:"brand" gorm:"foreignKey:BrandID"`
	Title       string              `json:"title" gorm:"size:120;not null"`
	Description string              `json:"description" gorm:"type:text"`
	SKU         *string             `json:"sku,omitempty" gorm:"column:sku;size:30;uniqueIndex"`
	Price       decimal.NullDecimal `json:"price" gorm:"type:decimal(10,2)"`
	OnSale      bool                `json:"onSale" gorm:"not null"`

	// FirstImage caches the path of the first image added to any of the
	// product's galleries so listings can render a thumbnail without a join.
	FirstImage string `json:"firstImage,omitempty" gorm:"size:255"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Associations (populated with Preload)
	Tags          []Tag                 `json:"tags,omitempty" gorm:"many2many:product_tags"`
	Stock         []StockItem           `json:"stock,omitempty" gorm:"foreignKey:ProductID"`
	Galleries     []ProductGallery      `json:"galleries,omitempty" gorm:"foreignKey:ProductID"`
	Relationships []ProductRelationship `json:"relationships,omitempty" gorm:"foreignKey:FromProductID"`
}

// ProductRelationship is a directed "related product" edge.
// A -> B does not imply B -> A.
type ProductRelationship struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	FromProductID uint      `json:"fromProductId" gorm:"index;not null"`
	ToProductID   uint      `json:"toProductId" gorm:"index;not null"`
	ToProduct     *Product  `json:"toProduct,omitempty" gorm:"foreignKey:ToProductID"`
	Description   string    `json:"description" gorm:"size:140;not null"`
	CreatedAt     time.Time `json:"createdAt"`
}
