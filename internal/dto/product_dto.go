package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	SKU         string          `json:"sku"         validate:"required,min=2,max=64"`
	Name        string          `json:"name"        validate:"required,min=2,max=120"`
	Description *string         `json:"description"`
	Category    string          `json:"category"    validate:"required"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"    validate:"min=0"`
	ImageURL    *string         `json:"image_url"   validate:"omitempty,url"`
}

// UpdateProductRequest covers catalog metadata only. Quantity is deliberately
// absent — stock changes go through the adjust / set-quantity operations so
// every change lands in the ledger.
type UpdateProductRequest struct {
	Name        *string          `json:"name"        validate:"omitempty,min=2,max=120"`
	Description *string          `json:"description"`
	Category    *string          `json:"category"`
	Price       *decimal.Decimal `json:"price"`
	ImageURL    *string          `json:"image_url"   validate:"omitempty,url"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ProductFilter struct {
	// Search matches name, SKU and category, case-insensitive substring.
	Search   string `form:"search"`
	Category string `form:"category"`
	// Active filter: "false" = inactive, "all" = everything, default active only.
	Active string `form:"active"`
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID          int             `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	StockIn     int             `json:"stock_in"`
	StockOut    int             `json:"stock_out"`
	StockStatus string          `json:"stock_status"`
	ImageURL    *string         `json:"image_url"`
	Active      bool            `json:"active"`
	UpdatedAt   string          `json:"updated_at"`
}

type ProductListResponse struct {
	Data       []ProductResponse `json:"data"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}
