package models

import "time"

// DefaultGalleryLimit is the number of images a new gallery accepts.
const DefaultGalleryLimit = 8

// ProductGallery groups the images of a product, optionally for one color.
type ProductGallery struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	ProductID       uint           `json:"productId" gorm:"index;not null"`
	ColorID         *uint          `json:"colorId,omitempty" gorm:"index"`
	Color           *Color         `json:"color,omitempty" gorm:"foreignKey:ColorID"`
	ImagesAvailable int            `json:"imagesAvailable" gorm:"not null"`
	Images          []ProductImage `json:"images,omitempty" gorm:"foreignKey:GalleryID"`
	CreatedAt       time.Time      `json:"createdAt"`
}

// ProductImage is one image of a gallery. Path is relative to the media root.
type ProductImage struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	GalleryID uint      `json:"galleryId" gorm:"index;not null"`
	Path      string    `json:"path" gorm:"size:255;not null"`
	Caption   *string   `json:"caption,omitempty" gorm:"type:text"`
	Position  int       `json:"position" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
}
