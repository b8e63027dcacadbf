package dto

import "github.com/shopspring/decimal"

// CategoryStock is one entry of the "top categories by stock" ranking.
type CategoryStock struct {
	Category string `json:"category"`
	Stock    int    `json:"stock"`
}

// SummaryResponse backs the dashboard status cards.
type SummaryResponse struct {
	TotalProducts     int             `json:"total_products"`
	TotalStock        int             `json:"total_stock"`
	LowStockItems     int             `json:"low_stock_items"`
	OutOfStockItems   int             `json:"out_of_stock_items"`
	InventoryValue    decimal.Decimal `json:"inventory_value"`
	AverageDailySales float64         `json:"average_daily_sales"`
	TopCategories     []CategoryStock `json:"top_categories"`
}

// ─── AI assistant ────────────────────────────────────────────────────────────

type AskRequest struct {
	Query string `json:"query" validate:"required,max=500"`
}

// AskResponse is the union of the four assistant answer shapes. QueryType is
// "general_inventory", "item", "category" or "trend"; the frontend switches
// on it to pick the card to render.
type AskResponse struct {
	QueryType string `json:"query_type"`

	// general_inventory fields
	TotalProducts     int             `json:"total_products,omitempty"`
	TotalStock        int             `json:"total_stock,omitempty"`
	AverageDailySales float64         `json:"average_daily_sales,omitempty"`
	LowStockItems     int             `json:"low_stock_items,omitempty"`
	OutOfStockItems   int             `json:"out_of_stock_items,omitempty"`
	TopCategories     []CategoryStock `json:"top_categories,omitempty"`
	RestockNeeded     bool            `json:"restock_needed,omitempty"`
	Summary           string          `json:"summary,omitempty"`

	// item fields
	Item         string `json:"item,omitempty"`
	CurrentStock *int   `json:"current_stock,omitempty"`
	StockStatus  string `json:"stock_status,omitempty"`

	// category fields (total_stock and average_daily_sales are shared with
	// the general shape)
	Category         string   `json:"category,omitempty"`
	ProductCount     int      `json:"product_count,omitempty"`
	LowStockProducts []string `json:"low_stock_products,omitempty"`

	// trend fields
	Season             string            `json:"season,omitempty"`
	PredictedTrends    []TrendPrediction `json:"predicted_trends,omitempty"`
	RestockSuggestions []string          `json:"restock_suggestions,omitempty"`
	OverallPrediction  string            `json:"overall_prediction,omitempty"`

	Recommendation string `json:"recommendation"`
}

// ─── Trend predictor ─────────────────────────────────────────────────────────

// TrendPrediction is one ranked keyword from the rule-based predictor.
type TrendPrediction struct {
	Keyword    string  `json:"keyword"`
	HotScore   float64 `json:"hot_score"`
	Suggestion string  `json:"suggestion"`
}

// TrendSignalRequest records one demand signal for a season.
type TrendSignalRequest struct {
	Season  string  `json:"season" validate:"required,oneof=winter spring summer autumn"`
	Keyword string  `json:"keyword" validate:"required,max=120"`
	Source  string  `json:"source" validate:"omitempty,max=60"`
	Score   float64 `json:"score" validate:"omitempty,gte=0"`
}

// TrendPredictionsResponse backs GET /v1/trends/predictions.
type TrendPredictionsResponse struct {
	Season      string            `json:"season"`
	Predictions []TrendPrediction `json:"predictions"`
}
