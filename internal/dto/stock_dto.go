package dto

// ─── Mutation requests ───────────────────────────────────────────────────────

// AdjustStockRequest carries a signed delta. The applied delta is clamped so
// the quantity never goes below zero; a fully clamped-away decrement is a
// no-op and records nothing. validator's "required" also rejects change=0 —
// a zero delta is only meaningful as an explicit save (SetQuantityRequest).
type AdjustStockRequest struct {
	Change int `json:"change" validate:"required"`
}

// SetQuantityRequest sets the absolute quantity from the numeric-entry save.
// A save that confirms the current quantity still appends a zero-delta
// movement — it is a deliberate user action, not a blocked one.
type SetQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required,min=0"`
}

// ─── Ledger ──────────────────────────────────────────────────────────────────

type StockMovementResponse struct {
	ID          int64   `json:"id"`
	ProductID   int     `json:"product_id"`
	ProductName string  `json:"product_name"`
	SKU         string  `json:"sku"`
	Category    string  `json:"category"`
	Image       *string `json:"image"`
	Change      int     `json:"change"`
	Quantity    int     `json:"quantity"`
	Reason      string  `json:"reason"`
	Date        string  `json:"date"`
}

// MutationResponse is returned by adjust and set-quantity. Movement is nil
// when the operation was a no-op (clamped decrement at zero).
type MutationResponse struct {
	Product  ProductResponse        `json:"product"`
	Movement *StockMovementResponse `json:"movement"`
}

type MovementFilter struct {
	ProductID int    `form:"product_id"`
	Search    string `form:"search"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=500"`
}

type MovementListResponse struct {
	Data  []StockMovementResponse `json:"data"`
	Total int64                   `json:"total"`
	Page  int                     `json:"page"`
	Limit int                     `json:"limit"`
}

// ─── Weekly aggregation ──────────────────────────────────────────────────────

// WeeklyBucket is one bar of the stock movement chart. Exactly seven buckets
// are always returned, Monday first, zero-valued when no movement fell on
// that weekday.
type WeeklyBucket struct {
	Day      string `json:"day"`
	StockIn  int    `json:"stockIn"`
	StockOut int    `json:"stockOut"`
}
