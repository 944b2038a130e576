package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart defines the struct for the 'carts' table.
// A cart is never deleted; CheckedOut is terminal.
type Cart struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	CheckedOut bool       `json:"checkedOut" gorm:"not null"`
	Items      []CartItem `json:"items,omitempty" gorm:"foreignKey:CartID"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// CartItem defines the struct for the 'cart_items' table.
// (CartID, StockItemID) is kept unique by the cart manager, not by an index.
type CartItem struct {
	ID          uint                `json:"id" gorm:"primaryKey"`
	CartID      uint                `json:"cartId" gorm:"index;not null"`
	StockItemID uint                `json:"stockItemId" gorm:"index;not null"`
	StockItem   *StockItem          `json:"stockItem,omitempty" gorm:"foreignKey:StockItemID"`
	Quantity    int                 `json:"quantity" gorm:"not null"`
	UnitPrice   decimal.NullDecimal `json:"unitPrice" gorm:"type:decimal(10,2)"` // Price quoted when the line was written
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}
