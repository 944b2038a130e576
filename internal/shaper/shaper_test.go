package shaper

import (
	"testing"

	"github.com/01moynul/stockroom-golang/internal/catalog"
	"github.com/01moynul/stockroom-golang/internal/config"
	"github.com/01moynul/stockroom-golang/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func strPtr(s string) *string { return &s }

func uintPtr(v uint) *uint { return &v }

func testShaper() *Shaper {
	return &Shaper{
		MediaURL:   "http://cdn.test/media/",
		Thumbnails: []config.ThumbnailSize{{Width: 100, Height: 100}, {Width: 300, Height: 200}},
		Separator:  " :: ",
	}
}

func TestThumbnailPath(t *testing.T) {
	size := config.ThumbnailSize{Width: 100, Height: 100}
	assert.Equal(t, "products/shoe.100x100.jpg", ThumbnailPath("products/shoe.jpg", size))
	assert.Equal(t, "products/shoe.front.100x100.png", ThumbnailPath("products/shoe.front.png", size))
	assert.Equal(t, "products/shoe.100x100", ThumbnailPath("products/shoe", size))
	assert.Equal(t, "dir.v2/shoe.100x100", ThumbnailPath("dir.v2/shoe", size))
}

func TestURL(t *testing.T) {
	s := testShaper()
	assert.Equal(t, "http://cdn.test/media/a/b.jpg", s.URL("a/b.jpg"))
	assert.Equal(t, "http://cdn.test/media/a/b.jpg", s.URL("/a/b.jpg"))
	assert.Equal(t, "https://elsewhere/x.jpg", s.URL("https://elsewhere/x.jpg"))
	assert.Empty(t, s.URL(""))
}

func TestFacetsOf(t *testing.T) {
	small := &models.Measurement{Value: "12", Unit: models.MeasurementUnit{Name: "Ounce", Abbreviation: strPtr("oz")}}
	large := &models.Measurement{Value: "1", Unit: models.MeasurementUnit{Name: "Gallon"}}
	red := &models.Color{Name: "Red"}
	blue := &models.Color{Name: "Blue"}

	f := FacetsOf([]models.StockItem{
		{Measurement: small, Color: red},
		{Measurement: small, Color: blue},
		{Measurement: large, Color: red},
		{},
	})
	assert.Equal(t, map[string]int{"12 oz": 2, "1 Gallon": 1}, f.Sizes)
	assert.Equal(t, map[string]int{"Red": 2, "Blue": 1}, f.Colors)

	empty := FacetsOf(nil)
	assert.Empty(t, empty.Sizes)
	assert.NotNil(t, empty.Colors)
}

func TestShapeOne(t *testing.T) {
	s := testShaper()
	red := &models.Color{ID: 3, Name: "Red", Red: 255}
	p := &models.Product{
		ID:          1,
		Title:       "Widget",
		Description: "A widget",
		Price:       price("10"),
		FirstImage:  "products/widget.jpg",
		Category:    &models.Category{ID: 2, Name: "Tools", Slug: "tools"},
		Brand: models.Brand{
			ID:           4,
			Name:         "Acme",
			Manufacturer: models.Manufacturer{ID: 5, Name: "Acme Corp"},
		},
		Tags: []models.Tag{{Name: "blue"}},
		Stock: []models.StockItem{
			{ID: 10, PackageCount: 1, Quantity: 4, ForSale: true, Color: red},
			{ID: 11, PackageCount: 2, Quantity: 4, ForSale: true, Price: price("8.5")},
		},
		Galleries: []models.ProductGallery{{
			ID:              6,
			Color:           red,
			ImagesAvailable: 7,
			Images:          []models.ProductImage{{ID: 9, Path: "products/widget.jpg", Caption: strPtr("front")}},
		}},
		Relationships: []models.ProductRelationship{{
			Description: "Fits",
			ToProduct:   &models.Product{ID: 12, Title: "Case"},
		}},
	}

	dto := s.ShapeOne(p)

	require.NotNil(t, dto.Price)
	assert.Equal(t, "10.00", *dto.Price)
	assert.Equal(t, "http://cdn.test/media/products/widget.100x100.jpg", dto.Thumbnail)
	assert.Equal(t, []string{"blue"}, dto.Tags)
	require.NotNil(t, dto.Category)
	assert.Equal(t, "tools", dto.Category.Slug)
	require.NotNil(t, dto.Brand)
	assert.Equal(t, "Acme Corp", dto.Brand.Manufacturer.Name)

	require.Len(t, dto.Inventory, 2)
	assert.Nil(t, dto.Inventory[0].Price)
	require.NotNil(t, dto.Inventory[0].EffectivePrice)
	assert.Equal(t, "10.00", *dto.Inventory[0].EffectivePrice)
	assert.Equal(t, "#ff0000", dto.Inventory[0].Color.Hex)
	assert.Equal(t, "8.50", *dto.Inventory[1].EffectivePrice)
	assert.Equal(t, 4, dto.Inventory[1].Available)

	require.Len(t, dto.Galleries, 1)
	img := dto.Galleries[0].Images[0]
	assert.Equal(t, "http://cdn.test/media/products/widget.jpg", img.URL)
	assert.Equal(t, "http://cdn.test/media/products/widget.300x200.jpg", img.Thumbnails["300x200"])

	assert.Equal(t, map[string]int{"Red": 1}, dto.Facets.Colors)
	require.Len(t, dto.Related, 1)
	assert.Equal(t, "Case", dto.Related[0].Title)

	// The source product is not modified.
	assert.Nil(t, p.Stock[0].Product)
}

func TestShapeManyEmpty(t *testing.T) {
	out := testShaper().ShapeMany(nil)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestShapeCategory(t *testing.T) {
	s := testShaper()
	cats := []models.Category{
		{ID: 1, Name: "Root", Slug: "root", Active: true},
		{ID: 2, Name: "Mid", Slug: "mid", ParentID: uintPtr(1), Active: true},
		{ID: 3, Name: "Leaf", Slug: "leaf", ParentID: uintPtr(2), Active: true},
		{ID: 4, Name: "Hidden", Slug: "hidden", ParentID: uintPtr(2)},
	}
	tree := catalog.NewTree(cats)

	dto, err := s.ShapeCategory(cats[1], tree)
	require.NoError(t, err)
	assert.Equal(t, "Root :: Mid", dto.Path)
	require.Len(t, dto.Ancestors, 1)
	assert.Equal(t, "root", dto.Ancestors[0].Slug)
	require.Len(t, dto.Children, 1)
	assert.Equal(t, "leaf", dto.Children[0].Slug)
}

func TestShapeCart(t *testing.T) {
	s := testShaper()
	product := &models.Product{ID: 1, Title: "Widget", Price: price("10.00")}
	lines := []models.CartItem{
		{ID: 1, StockItemID: 10, Quantity: 2, StockItem: &models.StockItem{ID: 10, ProductID: 1, Product: product}},
		{ID: 2, StockItemID: 11, Quantity: 3, StockItem: &models.StockItem{ID: 11, ProductID: 1, Product: product, Price: price("8.50")}},
	}

	dto := s.ShapeCart(models.Cart{ID: 7}, lines)
	assert.Equal(t, 5, dto.TotalQuantity)
	require.NotNil(t, dto.Subtotal)
	assert.Equal(t, "45.50", *dto.Subtotal)
	assert.Equal(t, "25.50", *dto.Items[1].LineTotal)

	unpriced := append(lines, models.CartItem{
		ID: 3, StockItemID: 12, Quantity: 1,
		StockItem: &models.StockItem{ID: 12, Product: &models.Product{ID: 2}},
	})
	dto = s.ShapeCart(models.Cart{ID: 7}, unpriced)
	assert.Nil(t, dto.Subtotal)
	assert.Equal(t, 6, dto.TotalQuantity)

	empty := s.ShapeCart(models.Cart{ID: 8}, nil)
	require.NotNil(t, empty.Subtotal)
	assert.Equal(t, "0.00", *empty.Subtotal)
	assert.NotNil(t, empty.Items)
}

func TestShapeTree(t *testing.T) {
	tree := catalog.NewTree([]models.Category{
		{ID: 1, Name: "Root", Slug: "root"},
		{ID: 2, Name: "Mid", Slug: "mid", ParentID: uintPtr(1)},
		{ID: 3, Name: "Other", Slug: "other"},
	})

	nodes := testShaper().ShapeTree(tree)
	require.Len(t, nodes, 2)
	assert.Equal(t, "Other", nodes[0].Name)
	assert.Empty(t, nodes[0].Children)
	require.Len(t, nodes[1].Children, 1)
	assert.Equal(t, "mid", nodes[1].Children[0].Slug)
}
