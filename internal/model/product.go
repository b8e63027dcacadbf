package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock status labels derived from quantity. Never stored — computed on the way
// out so a threshold change never requires a data migration.
const (
	StockStatusOut = "out_of_stock"
	StockStatusLow = "low_stock"
	StockStatusIn  = "in_stock"
)

// Product is an inventory item. Quantity is only ever written through the
// stock reconciliation path (adjust / set-quantity), which also maintains the
// cumulative StockIn/StockOut counters and appends to the movement ledger in
// the same transaction.
type Product struct {
	ID          int    `gorm:"primaryKey;autoIncrement"`
	SKU         string `gorm:"uniqueIndex;not null"`
	Name        string `gorm:"index;not null"`
	Description *string
	Category    string          `gorm:"index;not null"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	// Quantity is never persisted negative — decrements clamp at 0.
	Quantity int `gorm:"not null;default:0"`
	// StockIn / StockOut accumulate all inward / outward movement over the
	// product's lifetime.
	StockIn   int `gorm:"not null;default:0"`
	StockOut  int `gorm:"not null;default:0"`
	ImageURL  *string
	Active    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StockStatus derives the display label from the current quantity.
// A product at exactly 0 is out of stock, not low stock.
func (p *Product) StockStatus(lowThreshold int) string {
	switch {
	case p.Quantity == 0:
		return StockStatusOut
	case p.Quantity <= lowThreshold:
		return StockStatusLow
	default:
		return StockStatusIn
	}
}
