package models

import "time"

// Category defines the struct for the 'categories' table.
// Categories form a tree through ParentID; the tree must stay cycle-free.
type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:120;not null"`
	Slug      string    `json:"slug" gorm:"size:50;uniqueIndex"`
	ParentID  *uint     `json:"parentId,omitempty" gorm:"index"` // Use pointer for NULL
	Active    bool      `json:"active" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Tag is a free-form label attached to products.
type Tag struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:100;not null"`
	Slug string `json:"slug" gorm:"size:100;uniqueIndex"`
}
