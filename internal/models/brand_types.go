package models

import "time"

// Manufacturer defines the struct for the 'manufacturers' table
type Manufacturer struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:120;not null"`
	Website   *string   `json:"website,omitempty" gorm:"size:200"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Brand defines the struct for the 'brands' table.
// Every brand belongs to exactly one manufacturer.
type Brand struct {
	ID             uint         `json:"id" gorm:"primaryKey"`
	Name           string       `json:"name" gorm:"size:120;not null"`
	Description    *string      `json:"description,omitempty" gorm:"type:text"`
	ManufacturerID uint         `json:"manufacturerId" gorm:"index;not null"`
	Manufacturer   Manufacturer `json:"manufacturer" gorm:"foreignKey:ManufacturerID"`
	Logo           string       `json:"logo,omitempty" gorm:"size:255"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}
