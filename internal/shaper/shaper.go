// Package shaper turns catalog models into the JSON documents the API serves.
package shaper

import (
	"fmt"
	"path"
	"strings"

	"github.com/01moynul/stockroom-golang/internal/catalog"
	"github.com/01moynul/stockroom-golang/internal/config"
	"github.com/01moynul/stockroom-golang/internal/models"
	"github.com/01moynul/stockroom-golang/internal/pricing"
	"github.com/shopspring/decimal"
)

// Shaper builds DTOs. MediaURL prefixes stored image paths.
type Shaper struct {
	MediaURL   string
	Thumbnails []config.ThumbnailSize
	Separator  string
}

// New creates a shaper from the service configuration.
func New(cfg *config.Config) *Shaper {
	return &Shaper{
		MediaURL:   cfg.MediaURL,
		Thumbnails: cfg.ThumbnailSizes,
		Separator:  cfg.CategorySeparator,
	}
}

// ShapeOne renders a product with whatever associations are loaded.
func (s *Shaper) ShapeOne(p *models.Product) ProductDTO {
	dto := ProductDTO{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		SKU:         p.SKU,
		Price:       money(p.Price),
		OnSale:      p.OnSale,
		Thumbnail:   s.listingImage(p.FirstImage),
		Tags:        make([]string, 0, len(p.Tags)),
	}

	for _, t := range p.Tags {
		dto.Tags = append(dto.Tags, t.Name)
	}
	if p.Category != nil {
		dto.Category = &CategorySummary{ID: p.Category.ID, Name: p.Category.Name, Slug: p.Category.Slug}
	}
	if p.Brand.ID != 0 {
		dto.Brand = s.brand(&p.Brand)
	}
	for i := range p.Galleries {
		dto.Galleries = append(dto.Galleries, s.ShapeGallery(&p.Galleries[i]))
	}

	// Stock items loaded through the product do not carry it back.
	stock := make([]models.StockItem, len(p.Stock))
	for i := range p.Stock {
		stock[i] = p.Stock[i]
		stock[i].Product = p
	}
	dto.Inventory = s.ShapeInventory(stock)
	dto.Facets = FacetsOf(stock)

	for _, rel := range p.Relationships {
		if rel.ToProduct == nil {
			continue
		}
		dto.Related = append(dto.Related, RelatedDTO{
			ID:          rel.ToProduct.ID,
			Title:       rel.ToProduct.Title,
			Description: rel.Description,
			Thumbnail:   s.listingImage(rel.ToProduct.FirstImage),
		})
	}
	return dto
}

// ShapeMany renders a product list.
func (s *Shaper) ShapeMany(products []models.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(products))
	for i := range products {
		out = append(out, s.ShapeOne(&products[i]))
	}
	return out
}

// ShapeCategory renders a category with its ancestors and active children.
func (s *Shaper) ShapeCategory(cat models.Category, tree *catalog.Tree) (CategoryDTO, error) {
	dto := CategoryDTO{
		ID:        cat.ID,
		Name:      cat.Name,
		Slug:      cat.Slug,
		ParentID:  cat.ParentID,
		Ancestors: []CategorySummary{},
		Children:  []CategorySummary{},
	}

	ancestors, err := tree.Ancestors(cat.ID)
	if err != nil {
		return CategoryDTO{}, err
	}
	names := make([]string, 0, len(ancestors)+1)
	for _, a := range ancestors {
		dto.Ancestors = append(dto.Ancestors, CategorySummary{ID: a.ID, Name: a.Name, Slug: a.Slug})
		names = append(names, a.Name)
	}
	dto.Path = strings.Join(append(names, cat.Name), s.Separator)

	for _, c := range tree.Children(cat.ID) {
		if !c.Active {
			continue
		}
		dto.Children = append(dto.Children, CategorySummary{ID: c.ID, Name: c.Name, Slug: c.Slug})
	}
	return dto, nil
}

// ShapeTree renders the hierarchy as nested nodes, roots first.
func (s *Shaper) ShapeTree(tree *catalog.Tree) []CategoryNode {
	return s.nodes(tree, tree.Roots())
}

func (s *Shaper) nodes(tree *catalog.Tree, cats []models.Category) []CategoryNode {
	out := make([]CategoryNode, 0, len(cats))
	for _, c := range cats {
		out = append(out, CategoryNode{
			ID:       c.ID,
			Name:     c.Name,
			Slug:     c.Slug,
			Children: s.nodes(tree, tree.Children(c.ID)),
		})
	}
	return out
}

// ShapeInventory renders stock items. Each item's Product must be loaded for
// the effective price to resolve.
func (s *Shaper) ShapeInventory(items []models.StockItem) []StockEntry {
	out := make([]StockEntry, 0, len(items))
	for i := range items {
		item := &items[i]
		entry := StockEntry{
			ID:           item.ID,
			PackageCount: item.PackageCount,
			Price:        money(item.Price),
			OnSale:       item.OnSale,
			Available:    pricing.Available(item),
			Attributes:   item.Attributes,
		}
		if item.Measurement != nil {
			entry.Size = item.Measurement.Label()
		}
		if item.Color != nil {
			entry.Color = s.color(item.Color)
		}
		if eff, err := pricing.EffectivePrice(item); err == nil {
			entry.EffectivePrice = fixed(eff)
		}
		out = append(out, entry)
	}
	return out
}

// FacetsOf counts variants per size label and per color name.
func FacetsOf(items []models.StockItem) Facets {
	f := Facets{Sizes: map[string]int{}, Colors: map[string]int{}}
	for _, item := range items {
		if item.Measurement != nil {
			f.Sizes[item.Measurement.Label()]++
		}
		if item.Color != nil {
			f.Colors[item.Color.Name]++
		}
	}
	return f
}

// ShapeGallery renders a gallery and its images.
func (s *Shaper) ShapeGallery(g *models.ProductGallery) GalleryDTO {
	dto := GalleryDTO{
		ID:              g.ID,
		ImagesAvailable: g.ImagesAvailable,
		Images:          make([]ImageDTO, 0, len(g.Images)),
	}
	if g.Color != nil {
		dto.Color = s.color(g.Color)
	}
	for _, img := range g.Images {
		dto.Images = append(dto.Images, s.image(img))
	}
	return dto
}

// ShapeCart renders a cart. Lines must have StockItem.Product loaded.
func (s *Shaper) ShapeCart(c models.Cart, lines []models.CartItem) CartDTO {
	dto := CartDTO{
		ID:         c.ID,
		CheckedOut: c.CheckedOut,
		Items:      make([]CartLineDTO, 0, len(lines)),
	}

	subtotal := decimal.Zero
	priced := true
	for _, line := range lines {
		dto.TotalQuantity += line.Quantity
		out := CartLineDTO{
			ID:          line.ID,
			StockItemID: line.StockItemID,
			Quantity:    line.Quantity,
			UnitPrice:   money(line.UnitPrice),
		}

		item := line.StockItem
		if item == nil {
			priced = false
			dto.Items = append(dto.Items, out)
			continue
		}
		out.ProductID = item.ProductID
		if item.Product != nil {
			out.Title = item.Product.Title
		}
		if item.Measurement != nil {
			out.Size = item.Measurement.Label()
		}
		if item.Color != nil {
			out.Color = item.Color.Name
		}

		eff, err := pricing.EffectivePrice(item)
		if err != nil {
			priced = false
		} else {
			total := eff.Mul(decimal.NewFromInt(int64(line.Quantity)))
			out.EffectivePrice = fixed(eff)
			out.LineTotal = fixed(total)
			subtotal = subtotal.Add(total)
		}
		dto.Items = append(dto.Items, out)
	}

	if priced {
		dto.Subtotal = fixed(subtotal)
	}
	return dto
}

// --- helpers ---

func (s *Shaper) brand(b *models.Brand) *BrandSummary {
	return &BrandSummary{
		ID:   b.ID,
		Name: b.Name,
		Logo: s.URL(b.Logo),
		Manufacturer: ManufacturerSummary{
			ID:      b.Manufacturer.ID,
			Name:    b.Manufacturer.Name,
			Website: b.Manufacturer.Website,
		},
	}
}

func (s *Shaper) color(c *models.Color) *ColorDTO {
	return &ColorDTO{
		ID:     c.ID,
		Name:   c.Name,
		Hex:    fmt.Sprintf("#%02x%02x%02x", clamp(c.Red), clamp(c.Green), clamp(c.Blue)),
		Swatch: s.URL(c.Swatch),
	}
}

func (s *Shaper) image(img models.ProductImage) ImageDTO {
	dto := ImageDTO{
		ID:       img.ID,
		URL:      s.URL(img.Path),
		Caption:  img.Caption,
		Position: img.Position,
	}
	if len(s.Thumbnails) > 0 {
		dto.Thumbnails = make(map[string]string, len(s.Thumbnails))
		for _, size := range s.Thumbnails {
			dto.Thumbnails[size.String()] = s.URL(ThumbnailPath(img.Path, size))
		}
	}
	return dto
}

// listingImage is the smallest configured rendition of an image, or the
// image itself when no thumbnail sizes are configured.
func (s *Shaper) listingImage(p string) string {
	if p == "" {
		return ""
	}
	if len(s.Thumbnails) == 0 {
		return s.URL(p)
	}
	return s.URL(ThumbnailPath(p, s.Thumbnails[0]))
}

// URL turns a stored media path into an absolute URL. Absolute URLs pass through.
func (s *Shaper) URL(p string) string {
	if p == "" {
		return ""
	}
	if strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
		return p
	}
	return strings.TrimRight(s.MediaURL, "/") + "/" + strings.TrimLeft(p, "/")
}

// ThumbnailPath derives the path of a resized rendition:
// "dir/name.jpg" becomes "dir/name.100x100.jpg".
func ThumbnailPath(p string, size config.ThumbnailSize) string {
	ext := path.Ext(p)
	return strings.TrimSuffix(p, ext) + "." + size.String() + ext
}

func money(d decimal.NullDecimal) *string {
	if !d.Valid {
		return nil
	}
	return fixed(d.Decimal)
}

func fixed(d decimal.Decimal) *string {
	s := d.StringFixed(2)
	return &s
}

func clamp(v int) int {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return v
	}
}
