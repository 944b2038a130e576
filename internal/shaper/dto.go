package shaper

// ProductDTO is the public representation of a product.
type ProductDTO struct {
	ID          uint             `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	SKU         *string          `json:"sku,omitempty"`
	Price       *string          `json:"price"`
	OnSale      bool             `json:"onSale"`
	Thumbnail   string           `json:"thumbnail,omitempty"`
	Tags        []string         `json:"tags"`
	Category    *CategorySummary `json:"category,omitempty"`
	Brand       *BrandSummary    `json:"brand,omitempty"`
	Galleries   []GalleryDTO     `json:"galleries,omitempty"`
	Inventory   []StockEntry     `json:"inventory"`
	Facets      Facets           `json:"facets"`
	Related     []RelatedDTO     `json:"related,omitempty"`
}

type CategorySummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CategoryDTO is a category with its position in the tree.
type CategoryDTO struct {
	ID        uint              `json:"id"`
	Name      string            `json:"name"`
	Slug      string            `json:"slug"`
	ParentID  *uint             `json:"parentId,omitempty"`
	Path      string            `json:"path"`
	Ancestors []CategorySummary `json:"ancestors"`
	Children  []CategorySummary `json:"children"`
}

type ManufacturerSummary struct {
	ID      uint    `json:"id"`
	Name    string  `json:"name"`
	Website *string `json:"website,omitempty"`
}

type BrandSummary struct {
	ID           uint                `json:"id"`
	Name         string              `json:"name"`
	Logo         string              `json:"logo,omitempty"`
	Manufacturer ManufacturerSummary `json:"manufacturer"`
}

type ColorDTO struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Hex    string `json:"hex"`
	Swatch string `json:"swatch,omitempty"`
}

type ImageDTO struct {
	ID         uint              `json:"id"`
	URL        string            `json:"url"`
	Caption    *string           `json:"caption,omitempty"`
	Position   int               `json:"position"`
	Thumbnails map[string]string `json:"thumbnails,omitempty"`
}

type GalleryDTO struct {
	ID              uint       `json:"id"`
	Color           *ColorDTO  `json:"color,omitempty"`
	ImagesAvailable int        `json:"imagesAvailable"`
	Images          []ImageDTO `json:"images"`
}

// StockEntry is one purchasable variant.
type StockEntry struct {
	ID             uint           `json:"id"`
	Size           string         `json:"size,omitempty"`
	Color          *ColorDTO      `json:"color,omitempty"`
	PackageCount   int            `json:"packageCount"`
	Price          *string        `json:"price"`
	EffectivePrice *string        `json:"effectivePrice"`
	OnSale         bool           `json:"onSale"`
	Available      int            `json:"available"`
	Attributes     map[string]any `json:"attributes,omitempty"`
}

// Facets counts the variants per distinct size and color.
type Facets struct {
	Sizes  map[string]int `json:"sizes"`
	Colors map[string]int `json:"colors"`
}

type RelatedDTO struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail,omitempty"`
}

type CartLineDTO struct {
	ID             uint    `json:"id"`
	StockItemID    uint    `json:"stockItemId"`
	ProductID      uint    `json:"productId"`
	Title          string  `json:"title"`
	Size           string  `json:"size,omitempty"`
	Color          string  `json:"color,omitempty"`
	Quantity       int     `json:"quantity"`
	UnitPrice      *string `json:"unitPrice"`
	EffectivePrice *string `json:"effectivePrice"`
	LineTotal      *string `json:"lineTotal"`
}

type CartDTO struct {
	ID            uint          `json:"id"`
	CheckedOut    bool          `json:"checkedOut"`
	Items         []CartLineDTO `json:"items"`
	TotalQuantity int           `json:"totalQuantity"`
	Subtotal      *string       `json:"subtotal"` // nil when a line has no price
}

// CategoryNode is one entry of the nested category tree.
type CategoryNode struct {
	ID       uint           `json:"id"`
	Name     string         `json:"name"`
	Slug     string         `json:"slug"`
	Children []CategoryNode `json:"children"`
}
