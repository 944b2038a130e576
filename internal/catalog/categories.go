package catalog

import (
	"context"
	"fmt"

	"github.com/01moynul/stockroom-golang/internal/models"
	"gorm.io/gorm"
)

// SaveCategory creates or updates a category. The slug is recomputed from the
// name and the new parent is checked against the stored tree first; a
// category that would become its own ancestor is not written.
func (s *Service) SaveCategory(ctx context.Context, cat *models.Category) error {
	cat.Slug = Slugify(cat.Name)
	if cat.Slug == "" {
		return fmt.Errorf("category %q: %w", cat.Name, models.ErrInvalidName)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var all []models.Category
		if err := tx.Find(&all).Error; err != nil {
			return translate(err, "loading categories")
		}
		tree := NewTree(all)

		if cat.ID != 0 {
			if _, ok := tree.Get(cat.ID); !ok {
				return fmt.Errorf("category %d: %w", cat.ID, models.ErrNotFound)
			}
		}
		if err := tree.ValidateParent(cat.ID, cat.ParentID); err != nil {
			return err
		}

		if cat.ID == 0 {
			return translate(tx.Create(cat).Error, "creating category")
		}
		return translate(tx.Save(cat).Error, "saving category")
	})
}

// GetCategory loads a category by id.
func (s *Service) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	return getRow[models.Category](ctx, s.db, id, "category")
}

// GetCategoryBySlug loads an active category by slug.
func (s *Service) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var cat models.Category
	err := s.db.WithContext(ctx).Where("slug = ? AND active = ?", slug, true).First(&cat).Error
	if err != nil {
		return nil, translate(err, "category "+slug)
	}
	return &cat, nil
}

// ListCategories returns every category ordered by name.
func (s *Service) ListCategories(ctx context.Context) ([]models.Category, error) {
	return listRows[models.Category](ctx, s.db, "name")
}

// CategoryTree loads the whole hierarchy. With activeOnly, inactive
// categories are left out.
func (s *Service) CategoryTree(ctx context.Context, activeOnly bool) (*Tree, error) {
	q := s.db.WithContext(ctx)
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	var all []models.Category
	if err := q.Find(&all).Error; err != nil {
		return nil, translate(err, "loading categories")
	}
	return NewTree(all), nil
}

// DeleteCategory removes a category. Its children become roots and its
// products become uncategorized.
func (s *Service) DeleteCategory(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists[models.Category](tx, id, "category"); err != nil {
			return err
		}
		if err := tx.Model(&models.Category{}).Where("parent_id = ?", id).Update("parent_id", nil).Error; err != nil {
			return translate(err, "detaching child categories")
		}
		if err := tx.Model(&models.Product{}).Where("category_id = ?", id).Update("category_id", nil).Error; err != nil {
			return translate(err, "detaching products")
		}
		return translate(tx.Delete(&models.Category{}, id).Error, "deleting category")
	})
}
