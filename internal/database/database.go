package database

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/01moynul/stockroom-golang/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Supported values for DB_DRIVER.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// OpenDB initializes the primary connection pool for the configured driver
// and migrates the catalog schema.
func OpenDB(driver, dsn, logLevel string) (*gorm.DB, error) {
	db, err := OpenDBWithDSN(driver, dsn, logLevel)
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Println("Database schema migrated successfully")
	return db, nil
}

// OpenDBWithDSN creates and configures a connection pool for any DSN.
func OpenDBWithDSN(driver, dsn, logLevel string) (*gorm.DB, error) {
	// 1. Pick the dialector
	dialector, err := dialectorFor(driver, dsn)
	if err != nil {
		return nil, err
	}

	// 2. Open the pool
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(parseLogLevel(logLevel)),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// 3. Configure the connection pool settings.
	configurePool(sqlDB, driver)

	// 4. Ping the database to verify the connection.
	if err := sqlDB.Ping(); err != nil {
		log.Printf("Error connecting to %s database: %v", driver, err)
		return nil, err
	}

	log.Printf("Database connection pool established successfully (%s)", driver)
	return db, nil
}

// Migrate creates or updates every table the service uses.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Category{},
		&models.Tag{},
		&models.Manufacturer{},
		&models.Brand{},
		&models.Product{},
		&models.ProductRelationship{},
		&models.MeasurementUnit{},
		&models.Measurement{},
		&models.Color{},
		&models.StockItem{},
		&models.PriceHistory{},
		&models.ProductGallery{},
		&models.ProductImage{},
		&models.Cart{},
		&models.CartItem{},
	)
}

// Close releases the underlying pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func dialectorFor(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case DriverMySQL:
		normalized, err := normalizeMySQLDSN(dsn)
		if err != nil {
			return nil, err
		}
		return mysql.Open(normalized), nil
	case DriverPostgres:
		return postgres.Open(dsn), nil
	case DriverSQLite:
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}

// normalizeMySQLDSN forces parseTime so DATETIME columns scan into time.Time.
func normalizeMySQLDSN(dsn string) (string, error) {
	cfg, err := mysqldriver.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("invalid mysql DSN: %w", err)
	}
	cfg.ParseTime = true
	if cfg.Loc == nil {
		cfg.Loc = time.UTC
	}
	return cfg.FormatDSN(), nil
}

func configurePool(sqlDB *sql.DB, driver string) {
	if driver == DriverSQLite {
		// SQLite allows a single writer; keep the pool small.
		sqlDB.SetMaxOpenConns(1)
		return
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
