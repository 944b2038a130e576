package catalog

import (
	"context"

	"github.com/01moynul/stockroom-golang/internal/models"
	"gorm.io/gorm"
)

// --- Manufacturers ---

func (s *Service) CreateManufacturer(ctx context.Context, m *models.Manufacturer) error {
	return createRow(ctx, s.db, m, "manufacturer")
}

func (s *Service) SaveManufacturer(ctx context.Context, m *models.Manufacturer) error {
	return saveRow(ctx, s.db, m.ID, m, "manufacturer")
}

func (s *Service) ListManufacturers(ctx context.Context) ([]models.Manufacturer, error) {
	return listRows[models.Manufacturer](ctx, s.db, "name")
}

func (s *Service) DeleteManufacturer(ctx context.Context, id uint) error {
	return deleteRow[models.Manufacturer](ctx, s.db, id, "manufacturer",
		ref{&models.Brand{}, "manufacturer_id", "brands"})
}

// --- Brands ---

// CreateBrand adds a brand to an existing manufacturer.
func (s *Service) CreateBrand(ctx context.Context, b *models.Brand) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists[models.Manufacturer](tx, b.ManufacturerID, "manufacturer"); err != nil {
			return err
		}
		return createRow(ctx, tx, b, "brand")
	})
}

func (s *Service) SaveBrand(ctx context.Context, b *models.Brand) error {
	if err := exists[models.Manufacturer](s.db.WithContext(ctx), b.ManufacturerID, "manufacturer"); err != nil {
		return err
	}
	return saveRow(ctx, s.db, b.ID, b, "brand")
}

func (s *Service) GetBrand(ctx context.Context, id uint) (*models.Brand, error) {
	return getRow[models.Brand](ctx, s.db, id, "brand", "Manufacturer")
}

func (s *Service) ListBrands(ctx context.Context) ([]models.Brand, error) {
	return listRows[models.Brand](ctx, s.db, "name", "Manufacturer")
}

func (s *Service) DeleteBrand(ctx context.Context, id uint) error {
	return deleteRow[models.Brand](ctx, s.db, id, "brand",
		ref{&models.Product{}, "brand_id", "products"})
}

// --- Colors ---

func (s *Service) CreateColor(ctx context.Context, c *models.Color) error {
	return createRow(ctx, s.db, c, "color")
}

func (s *Service) SaveColor(ctx context.Context, c *models.Color) error {
	return saveRow(ctx, s.db, c.ID, c, "color")
}

func (s *Service) ListColors(ctx context.Context) ([]models.Color, error) {
	return listRows[models.Color](ctx, s.db, "name")
}

func (s *Service) DeleteColor(ctx context.Context, id uint) error {
	return deleteRow[models.Color](ctx, s.db, id, "color",
		ref{&models.StockItem{}, "color_id", "stock items"},
		ref{&models.ProductGallery{}, "color_id", "galleries"})
}

// --- Measurement units and measurements ---

func (s *Service) CreateUnit(ctx context.Context, u *models.MeasurementUnit) error {
	return createRow(ctx, s.db, u, "measurement unit")
}

func (s *Service) ListUnits(ctx context.Context) ([]models.MeasurementUnit, error) {
	return listRows[models.MeasurementUnit](ctx, s.db, "name")
}

func (s *Service) DeleteUnit(ctx context.Context, id uint) error {
	return deleteRow[models.MeasurementUnit](ctx, s.db, id, "measurement unit",
		ref{&models.Measurement{}, "unit_id", "measurements"})
}

// CreateMeasurement adds a size in an existing unit.
func (s *Service) CreateMeasurement(ctx context.Context, m *models.Measurement) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists[models.MeasurementUnit](tx, m.UnitID, "measurement unit"); err != nil {
			return err
		}
		return createRow(ctx, tx, m, "measurement")
	})
}

func (s *Service) ListMeasurements(ctx context.Context) ([]models.Measurement, error) {
	return listRows[models.Measurement](ctx, s.db, "id", "Unit")
}

func (s *Service) DeleteMeasurement(ctx context.Context, id uint) error {
	return deleteRow[models.Measurement](ctx, s.db, id, "measurement",
		ref{&models.StockItem{}, "measurement_id", "stock items"})
}
