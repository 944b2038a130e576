// Package catalog maintains categories, brands, products, stock items and
// galleries on top of GORM.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/01moynul/stockroom-golang/internal/models"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// maxSlugLength matches the size of the slug columns.
const maxSlugLength = 50

// Service is the catalog's data access layer.
type Service struct {
	db           *gorm.DB
	galleryLimit int
}

// NewService creates a catalog service. galleryLimit is the number of images
// a new gallery accepts; values below one fall back to the default.
func NewService(db *gorm.DB, galleryLimit int) *Service {
	if galleryLimit < 1 {
		galleryLimit = models.DefaultGalleryLimit
	}
	return &Service{db: db, galleryLimit: galleryLimit}
}

// Slugify derives a URL slug from a display name.
func Slugify(name string) string {
	s := slug.Make(name)
	if len(s) > maxSlugLength {
		s = strings.TrimRight(s[:maxSlugLength], "-")
	}
	return s
}

// translate maps GORM errors onto the shared sentinel errors.
func translate(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", what, models.ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", what, models.ErrAlreadyExists)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%s: %w", what, models.ErrInUse)
	default:
		return fmt.Errorf("%s: %w", what, err)
	}
}

// forUpdate adds a row lock to the next query. SQLite has no row locks and
// serializes writers anyway.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// exists returns ErrNotFound unless a row of T with the given id exists.
func exists[T any](tx *gorm.DB, id uint, what string) error {
	var count int64
	if err := tx.Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
		return translate(err, what)
	}
	if count == 0 {
		return fmt.Errorf("%s %d: %w", what, id, models.ErrNotFound)
	}
	return nil
}

// --- Generic helpers for the small lookup entities ---

func createRow[T any](ctx context.Context, db *gorm.DB, row *T, what string) error {
	return translate(db.WithContext(ctx).Omit(clause.Associations).Create(row).Error, "creating "+what)
}

func saveRow[T any](ctx context.Context, db *gorm.DB, id uint, row *T, what string) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists[T](tx, id, what); err != nil {
			return err
		}
		err := tx.Model(row).Select("*").Omit(clause.Associations, "id", "created_at").Updates(row).Error
		return translate(err, "saving "+what)
	})
}

func getRow[T any](ctx context.Context, db *gorm.DB, id uint, what string, preloads ...string) (*T, error) {
	q := db.WithContext(ctx)
	for _, p := range preloads {
		q = q.Preload(p)
	}
	row := new(T)
	if err := q.First(row, id).Error; err != nil {
		return nil, translate(err, fmt.Sprintf("%s %d", what, id))
	}
	return row, nil
}

func listRows[T any](ctx context.Context, db *gorm.DB, order string, preloads ...string) ([]T, error) {
	q := db.WithContext(ctx).Order(order)
	for _, p := range preloads {
		q = q.Preload(p)
	}
	var rows []T
	if err := q.Find(&rows).Error; err != nil {
		return nil, translate(err, "listing")
	}
	return rows, nil
}

// ref is a column of another table that points at the row being deleted.
type ref struct {
	model  any
	column string
	what   string
}

// deleteRow deletes one row of T. It fails with ErrInUse while any of refs
// still points at it, so drivers without enforced foreign keys behave the
// same as those with them.
func deleteRow[T any](ctx context.Context, db *gorm.DB, id uint, what string, refs ...ref) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, r := range refs {
			var count int64
			if err := tx.Model(r.model).Where(r.column+" = ?", id).Count(&count).Error; err != nil {
				return translate(err, "checking "+r.what)
			}
			if count > 0 {
				return fmt.Errorf("%s %d is used by %d %s: %w", what, id, count, r.what, models.ErrInUse)
			}
		}
		res := tx.Delete(new(T), id)
		if res.Error != nil {
			return translate(res.Error, "deleting "+what)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%s %d: %w", what, id, models.ErrNotFound)
		}
		return nil
	})
}

// releaseStock removes the cart lines that hold any of the given stock items
// so the items can be deleted. Lines of checked-out carts are never touched;
// while one exists the stock item is ErrInUse.
func releaseStock(tx *gorm.DB, stockItemIDs []uint) error {
	if len(stockItemIDs) == 0 {
		return nil
	}
	var sold int64
	err := tx.Model(&models.CartItem{}).
		Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("cart_items.stock_item_id IN ? AND carts.checked_out = ?", stockItemIDs, true).
		Count(&sold).Error
	if err != nil {
		return translate(err, "checking checked-out carts")
	}
	if sold > 0 {
		return fmt.Errorf("stock is held by %d checked-out cart lines: %w", sold, models.ErrInUse)
	}
	err = tx.Where("stock_item_id IN ?", stockItemIDs).Delete(&models.CartItem{}).Error
	return translate(err, "removing cart lines")
}
