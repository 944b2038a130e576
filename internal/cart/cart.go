// Package cart implements the session-bound shopping cart.
package cart

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/01moynul/stockroom-golang/internal/models"
	"github.com/01moynul/stockroom-golang/internal/pricing"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SessionKey is the session entry that holds the id of the visitor's cart.
const SessionKey = "CART-ID"

// Session is the part of a visitor session the cart manager needs.
type Session interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

// Manager finds and creates carts.
type Manager struct {
	db *gorm.DB
}

// NewManager creates a cart manager backed by db.
func NewManager(db *gorm.DB) *Manager {
	return &Manager{db: db}
}

// FindActive returns the open cart recorded in the session. It returns
// ErrNotFound when the session has no cart, the id is stale, or the cart
// has been checked out.
func (m *Manager) FindActive(ctx context.Context, s Session) (*Cart, error) {
	raw, ok := s.Get(SessionKey)
	if !ok || raw == "" {
		return nil, fmt.Errorf("session cart: %w", models.ErrNotFound)
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("session cart %q: %w", raw, models.ErrNotFound)
	}

	var record models.Cart
	err = m.db.WithContext(ctx).Where("id = ? AND checked_out = ?", id, false).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("cart %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading cart %d: %w", id, err)
	}
	return &Cart{db: m.db, record: record}, nil
}

// Create opens a new cart and records it in the session.
func (m *Manager) Create(ctx context.Context, s Session) (*Cart, error) {
	record := models.Cart{}
	if err := m.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, fmt.Errorf("creating cart: %w", err)
	}
	s.Set(SessionKey, strconv.FormatUint(uint64(record.ID), 10))
	return &Cart{db: m.db, record: record}, nil
}

// Resolve returns the session's open cart, creating one when there is none.
// Repeated calls with the same session return the same cart until it is
// checked out.
func (m *Manager) Resolve(ctx context.Context, s Session) (*Cart, error) {
	c, err := m.FindActive(ctx, s)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}
	return m.Create(ctx, s)
}

// Open loads any cart by id, checked out or not.
func (m *Manager) Open(ctx context.Context, id uint) (*Cart, error) {
	var record models.Cart
	err := m.db.WithContext(ctx).First(&record, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("cart %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading cart %d: %w", id, err)
	}
	return &Cart{db: m.db, record: record}, nil
}

// Cart is a handle on one stored cart.
type Cart struct {
	db     *gorm.DB
	record models.Cart
}

// ID returns the cart's id.
func (c *Cart) ID() uint { return c.record.ID }

// Record returns a copy of the stored cart row.
func (c *Cart) Record() models.Cart { return c.record }

// CheckedOut reports whether the cart has been checked out.
func (c *Cart) CheckedOut() bool { return c.record.CheckedOut }

func (c *Cart) writable() error {
	if c.record.CheckedOut {
		return fmt.Errorf("cart %d: %w", c.record.ID, models.ErrCheckedOut)
	}
	return nil
}

// Add puts quantity units of a stock item in the cart. If the cart already
// has a line for the item, its quantity and unit price are replaced.
func (c *Cart) Add(ctx context.Context, stockItemID uint, unitPrice decimal.NullDecimal, quantity int) (*models.CartItem, error) {
	if err := c.writable(); err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, models.ErrInvalidQuantity
	}

	var line models.CartItem
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := c.lockOpen(tx); err != nil {
			return err
		}

		// 1. --- The stock item must exist ---
		var count int64
		if err := tx.Model(&models.StockItem{}).Where("id = ?", stockItemID).Count(&count).Error; err != nil {
			return fmt.Errorf("checking stock item %d: %w", stockItemID, err)
		}
		if count == 0 {
			return fmt.Errorf("stock item %d: %w", stockItemID, models.ErrNotFound)
		}

		// 2. --- Replace the existing line, if any ---
		err := tx.Where("cart_id = ? AND stock_item_id = ?", c.record.ID, stockItemID).First(&line).Error
		switch {
		case err == nil:
			line.Quantity = quantity
			line.UnitPrice = unitPrice
			if err := tx.Save(&line).Error; err != nil {
				return fmt.Errorf("updating cart line: %w", err)
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			line = models.CartItem{
				CartID:      c.record.ID,
				StockItemID: stockItemID,
				Quantity:    quantity,
				UnitPrice:   unitPrice,
			}
			if err := tx.Create(&line).Error; err != nil {
				return fmt.Errorf("creating cart line: %w", err)
			}
		default:
			return fmt.Errorf("loading cart line: %w", err)
		}

		// 3. --- Touch the cart ---
		return c.touch(tx)
	})
	if err != nil {
		return nil, err
	}
	return &line, nil
}

// Update sets the quantity and unit price of a stock item in the cart,
// adding a line when there is none.
func (c *Cart) Update(ctx context.Context, stockItemID uint, unitPrice decimal.NullDecimal, quantity int) (*models.CartItem, error) {
	return c.Add(ctx, stockItemID, unitPrice, quantity)
}

// Remove deletes one line of this cart. A line id that belongs to another
// cart, or to no cart, yields ErrNotFound and leaves the cart unchanged.
func (c *Cart) Remove(ctx context.Context, cartItemID uint) error {
	if err := c.writable(); err != nil {
		return err
	}
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := c.lockOpen(tx); err != nil {
			return err
		}
		res := tx.Where("id = ? AND cart_id = ?", cartItemID, c.record.ID).Delete(&models.CartItem{})
		if res.Error != nil {
			return fmt.Errorf("removing cart line %d: %w", cartItemID, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("cart line %d: %w", cartItemID, models.ErrNotFound)
		}
		return c.touch(tx)
	})
}

// Discard deletes the line for a stock item if the cart has one.
func (c *Cart) Discard(ctx context.Context, stockItemID uint) error {
	if err := c.writable(); err != nil {
		return err
	}
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := c.lockOpen(tx); err != nil {
			return err
		}
		res := tx.Where("cart_id = ? AND stock_item_id = ?", c.record.ID, stockItemID).Delete(&models.CartItem{})
		if res.Error != nil {
			return fmt.Errorf("discarding stock item %d: %w", stockItemID, res.Error)
		}
		if res.RowsAffected == 0 {
			return nil
		}
		return c.touch(tx)
	})
}

// Clear removes every line.
func (c *Cart) Clear(ctx context.Context) error {
	if err := c.writable(); err != nil {
		return err
	}
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := c.lockOpen(tx); err != nil {
			return err
		}
		if err := tx.Where("cart_id = ?", c.record.ID).Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("clearing cart %d: %w", c.record.ID, err)
		}
		return c.touch(tx)
	})
}

func preloadLines(db *gorm.DB) *gorm.DB {
	return db.
		Preload("StockItem.Product").
		Preload("StockItem.Measurement.Unit").
		Preload("StockItem.Color")
}

// Item returns one line of this cart.
func (c *Cart) Item(ctx context.Context, cartItemID uint) (*models.CartItem, error) {
	var line models.CartItem
	err := preloadLines(c.db.WithContext(ctx)).
		Where("id = ? AND cart_id = ?", cartItemID, c.record.ID).
		First(&line).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("cart line %d: %w", cartItemID, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading cart line %d: %w", cartItemID, err)
	}
	return &line, nil
}

// Items returns the cart's lines in the order they were added.
func (c *Cart) Items(ctx context.Context) ([]models.CartItem, error) {
	var lines []models.CartItem
	err := preloadLines(c.db.WithContext(ctx)).
		Where("cart_id = ?", c.record.ID).
		Order("id").
		Find(&lines).Error
	if err != nil {
		return nil, fmt.Errorf("loading cart %d lines: %w", c.record.ID, err)
	}
	return lines, nil
}

// QuantityOf returns how many units of a stock item are in the cart.
func (c *Cart) QuantityOf(ctx context.Context, stockItemID uint) (int, error) {
	var lines []models.CartItem
	err := c.db.WithContext(ctx).
		Where("cart_id = ? AND stock_item_id = ?", c.record.ID, stockItemID).
		Find(&lines).Error
	if err != nil {
		return 0, fmt.Errorf("loading cart line: %w", err)
	}
	total := 0
	for _, line := range lines {
		total += line.Quantity
	}
	return total, nil
}

// TotalQuantity returns the number of units across all lines.
func (c *Cart) TotalQuantity(ctx context.Context) (int, error) {
	var total int64
	err := c.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("cart_id = ?", c.record.ID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("summing cart %d: %w", c.record.ID, err)
	}
	return int(total), nil
}

// Subtotal is the sum of quantity times effective price over all lines,
// using the current catalog prices.
func (c *Cart) Subtotal(ctx context.Context) (decimal.Decimal, error) {
	lines, err := c.Items(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return Subtotal(lines)
}

// Subtotal sums already loaded lines. Each line's StockItem.Product must be loaded.
func Subtotal(lines []models.CartItem) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, line := range lines {
		if line.StockItem == nil {
			return decimal.Zero, fmt.Errorf("cart line %d: %w", line.ID, models.ErrNotFound)
		}
		unit, err := pricing.EffectivePrice(line.StockItem)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(unit.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total, nil
}

// Checkout closes the cart. A checked-out cart is never reopened.
func (c *Cart) Checkout(ctx context.Context) error {
	if err := c.writable(); err != nil {
		return err
	}
	res := c.db.WithContext(ctx).
		Model(&models.Cart{}).
		Where("id = ? AND checked_out = ?", c.record.ID, false).
		Update("checked_out", true)
	if res.Error != nil {
		return fmt.Errorf("checking out cart %d: %w", c.record.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart %d: %w", c.record.ID, models.ErrCheckedOut)
	}
	c.record.CheckedOut = true
	return nil
}

// lockOpen re-reads the cart row inside a write transaction, locking it where
// the database supports row locks. It fails with ErrCheckedOut when the cart
// was checked out through any handle, which rolls back the caller's write.
func (c *Cart) lockOpen(tx *gorm.DB) error {
	q := tx
	if tx.Dialector.Name() != "sqlite" {
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var stored models.Cart
	if err := q.First(&stored, c.record.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("cart %d: %w", c.record.ID, models.ErrNotFound)
		}
		return fmt.Errorf("locking cart %d: %w", c.record.ID, err)
	}
	if stored.CheckedOut {
		c.record.CheckedOut = true
		return fmt.Errorf("cart %d: %w", c.record.ID, models.ErrCheckedOut)
	}
	return nil
}

func (c *Cart) touch(tx *gorm.DB) error {
	if err := tx.Model(&c.record).Update("updated_at", time.Now()).Error; err != nil {
		return fmt.Errorf("touching cart %d: %w", c.record.ID, err)
	}
	return nil
}
