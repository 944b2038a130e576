package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// MeasurementUnit is the unit a Measurement is expressed in (e.g. "Ounce", "oz").
type MeasurementUnit struct {
	ID           uint    `json:"id" gorm:"primaryKey"`
	Name         string  `json:"name" gorm:"size:20;not null"`
	Abbreviation *string `json:"abbreviation,omitempty" gorm:"size:8"`
	PluralName   *string `json:"pluralName,omitempty" gorm:"size:10"`
}

// Label returns the abbreviation when set, else the name.
func (u MeasurementUnit) Label() string {
	if u.Abbreviation != nil && *u.Abbreviation != "" {
		return *u.Abbreviation
	}
	return u.Name
}

// Measurement is the "size" of a stock item.
type Measurement struct {
	ID     uint            `json:"id" gorm:"primaryKey"`
	Value  string          `json:"value" gorm:"size:8;not null"`
	UnitID uint            `json:"unitId" gorm:"index;not null"`
	Unit   MeasurementUnit `json:"unit" gorm:"foreignKey:UnitID"`
}

// Label renders the measurement as "12 oz".
func (m Measurement) Label() string {
	return m.Value + " " + m.Unit.Label()
}

// Color defines the struct for the 'colors' table
type Color struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	Name   string `json:"name" gorm:"size:30;not null"`
	Red    int    `json:"red"`
	Green  int    `json:"green"`
	Blue   int    `json:"blue"`
	Swatch string `json:"swatch,omitempty" gorm:"size:255"`
}

// StockItem is a sellable variant of a Product.
type StockItem struct {
	ID            uint              `json:"id" gorm:"primaryKey"`
	ProductID     uint              `json:"productId" gorm:"index;not null"`
	Product       *Product          `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	MeasurementID *uint             `json:"measurementId,omitempty" gorm:"index"`
	Measurement   *Measurement      `json:"measurement,omitempty" gorm:"foreignKey:MeasurementID"`
	ColorID       *uint             `json:"colorId,omitempty" gorm:"index"`
	Color         *Color            `json:"color,omitempty" gorm:"foreignKey:ColorID"`
	Attributes    datatypes.JSONMap `json:"attributes,omitempty"`
	PackageCount  int               `json:"packageCount" gorm:"not null;default:1"`

	// Price overrides the product's base price when set.
	Price  decimal.NullDecimal `json:"price" gorm:"type:decimal(10,2)"`
	OnSale bool                `json:"onSale" gorm:"not null"`

	// --- Inventory ---
	Quantity      int  `json:"quantity" gorm:"not null"`
	ForSale       bool `json:"forSale" gorm:"not null"`
	DisableSaleAt *int `json:"disableSaleAt,omitempty"`
	OrderThrottle *int `json:"orderThrottle,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
