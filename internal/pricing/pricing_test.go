package pricing

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/01moynul/stockroom-golang/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func price(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func intPtr(v int) *int { return &v }

func TestEffectivePrice(t *testing.T) {
	product := &models.Product{ID: 1, Price: price("10.00")}

	t.Run("override wins", func(t *testing.T) {
		item := &models.StockItem{Product: product, Price: price("8.50")}
		got, err := EffectivePrice(item)
		require.NoError(t, err)
		assert.Equal(t, "8.50", got.StringFixed(2))
	})

	t.Run("falls back to base price", func(t *testing.T) {
		item := &models.StockItem{Product: product}
		got, err := EffectivePrice(item)
		require.NoError(t, err)
		assert.Equal(t, "10.00", got.StringFixed(2))
	})

	t.Run("no price anywhere", func(t *testing.T) {
		item := &models.StockItem{ID: 7, Product: &models.Product{ID: 2}}
		_, err := EffectivePrice(item)
		assert.ErrorIs(t, err, models.ErrNoPriceSet)
	})
}

func TestAvailableAndCanOrder(t *testing.T) {
	item := &models.StockItem{Quantity: 10, ForSale: true}
	assert.Equal(t, 10, Available(item))
	assert.True(t, CanOrder(item, 10))
	assert.False(t, CanOrder(item, 11))
	assert.False(t, CanOrder(item, 0))

	item.DisableSaleAt = intPtr(4)
	assert.Equal(t, 6, Available(item))

	item.DisableSaleAt = intPtr(20)
	assert.Equal(t, 0, Available(item))

	item.DisableSaleAt = nil
	item.OrderThrottle = intPtr(3)
	assert.True(t, CanOrder(item, 3))
	assert.False(t, CanOrder(item, 4))

	item.ForSale = false
	assert.Equal(t, 0, Available(item))
	assert.False(t, CanOrder(item, 1))
}

func TestChanged(t *testing.T) {
	assert.False(t, Changed(decimal.NullDecimal{}, decimal.NullDecimal{}))
	assert.True(t, Changed(decimal.NullDecimal{}, price("1.00")))
	assert.True(t, Changed(price("1.00"), decimal.NullDecimal{}))
	assert.False(t, Changed(price("1.0"), price("1.00")))
	assert.True(t, Changed(price("1.00"), price("1.01")))
}

func TestRecordAndHistory(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.PriceHistory{}))

	require.NoError(t, Record(db, models.PriceSubjectProduct, 1, price("10.00"), price("10.00"), false))
	require.NoError(t, Record(db, models.PriceSubjectProduct, 1, price("10.00"), price("12.00"), false))
	require.NoError(t, Record(db, models.PriceSubjectProduct, 1, price("12.00"), price("9.00"), true))
	require.NoError(t, Record(db, models.PriceSubjectStockItem, 1, price("1.00"), price("2.00"), false))

	rows, err := History(context.Background(), db, models.PriceSubjectProduct, 1)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "12.00", rows[0].Price.Decimal.StringFixed(2))
	assert.True(t, rows[0].OnSale)
	assert.Equal(t, "10.00", rows[1].Price.Decimal.StringFixed(2))
	assert.Equal(t, "12.00", rows[1].NewPrice.Decimal.StringFixed(2))
}
