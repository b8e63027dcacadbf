package model

import "time"

// Movement reasons.
const (
	MovementReasonAdjust = "adjust" // click-driven ±N delta
	MovementReasonSet    = "set"    // explicit absolute quantity save
	MovementReasonSeed   = "seed"   // initial quantity at product creation
)

// StockMovement is one record of the append-only stock ledger. A movement is
// immutable once created; corrections are new movements, never edits.
//
// Product name, SKU, category and image are denormalized at mutation time so
// history keeps rendering correctly after the product is renamed or
// deactivated.
//
// The autoincrement ID doubles as the insertion-order key: listing ORDER BY id
// DESC is strictly most-recent-first even when two movements share a
// timestamp.
type StockMovement struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	ProductID   int    `gorm:"not null;index"`
	ProductName string `gorm:"not null"`
	SKU         string `gorm:"not null;index"`
	Category    string
	Image       *string
	// Change is the signed delta: Change == Quantity - previous quantity.
	// Zero only for explicit saves that confirmed the current quantity.
	Change int `gorm:"not null"`
	// Quantity is the absolute quantity after the mutation.
	Quantity  int    `gorm:"not null"`
	Reason    string `gorm:"not null"`
	CreatedAt time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}

// TableName overrides GORM's default pluralization.
func (StockMovement) TableName() string { return "stock_movements" }
