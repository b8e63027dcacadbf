package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/juanmiguelzamora/StockWise/internal/dto"
	"github.com/juanmiguelzamora/StockWise/internal/model"
	"github.com/juanmiguelzamora/StockWise/internal/repository"
)

// AssistantService answers inventory questions with keyword routing over live
// inventory data. Four answer shapes, checked in order: overall inventory
// phrasing, trend/forecast phrasing, a query naming a known product, a query
// naming a known category. Anything else gets the overall inventory status.
// No language model is involved — the response shapes match what the chat
// panel renders.
type AssistantService interface {
	Ask(ctx context.Context, query string) (*dto.AskResponse, error)
}

type assistantService struct {
	products     repository.ProductRepository
	movements    repository.StockMovementRepository
	dashboard    DashboardService
	trends       TrendService
	lowThreshold int
}

func NewAssistantService(
	products repository.ProductRepository,
	movements repository.StockMovementRepository,
	dashboard DashboardService,
	trends TrendService,
	lowThreshold int,
) AssistantService {
	return &assistantService{
		products:     products,
		movements:    movements,
		dashboard:    dashboard,
		trends:       trends,
		lowThreshold: lowThreshold,
	}
}

// Intent vocabularies. A trend query is a strong trend word, or a season word
// without stock-question phrasing ("how much stock for winter jackets" is an
// item question, not a forecast request).
var (
	generalStockPhrases = []string{"total stock", "all stock", "overall stock", "entire inventory", "whole inventory", "all inventory"}
	trendIntents        = []string{"predict", "trend", "forecast", "prediction"}
	seasonIntents       = []string{"season", "holiday", "christmas", "winter", "summer", "spring", "fall", "autumn"}
	stockQuestionHints  = []string{"stock for", "inventory for", "how much", "how many"}
	categoryIntents     = []string{"category", "all in", "total", "group"}
)

// itemQueryRe captures a product phrase from item-style questions, e.g.
// "how much stock of wireless headphones" or "stock for usb cable".
var itemQueryRe = regexp.MustCompile(`(?i)(?:stock|inventory|units|quantity)\s+(?:of|for)\s+(.+?)\s*\??$`)

func (s *assistantService) Ask(ctx context.Context, query string) (*dto.AskResponse, error) {
	q := strings.ToLower(query)

	if containsAny(q, generalStockPhrases) {
		return s.generalAnswer(ctx)
	}
	if isTrendQuery(q) {
		return s.trendAnswer(ctx, q)
	}

	products, err := s.products.AllActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	category := matchCategory(products, q)
	categoryQuery := category != "" && containsAny(q, categoryIntents)

	if p := matchProduct(products, query); p != nil && !categoryQuery {
		return s.itemAnswer(p), nil
	}
	if categoryQuery {
		return s.categoryAnswer(ctx, products, category)
	}
	if m := itemQueryRe.FindStringSubmatch(query); m != nil {
		// Item-style phrasing but no matching product. The panel keys its
		// "not found" card off this recommendation text.
		return &dto.AskResponse{
			QueryType:      "item",
			Item:           strings.TrimSpace(m[1]),
			Recommendation: "Item not found in inventory. Please verify the product name.",
		}, nil
	}
	return s.generalAnswer(ctx)
}

func containsAny(q string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(q, p) {
			return true
		}
	}
	return false
}

func isTrendQuery(q string) bool {
	if containsAny(q, trendIntents) {
		return true
	}
	return containsAny(q, seasonIntents) && !containsAny(q, stockQuestionHints)
}

// seasonFromQuery pins the forecast to a season named in the query. Christmas
// and holiday read as winter, fall as autumn. Empty means "use the calendar".
func seasonFromQuery(q string) string {
	for _, season := range []string{model.SeasonWinter, model.SeasonSpring, model.SeasonSummer, model.SeasonAutumn} {
		if strings.Contains(q, season) {
			return season
		}
	}
	switch {
	case strings.Contains(q, "christmas"), strings.Contains(q, "holiday"):
		return model.SeasonWinter
	case strings.Contains(q, "fall"):
		return model.SeasonAutumn
	}
	return ""
}

// matchProduct returns the product whose name appears in the query,
// preferring the longest name so "usb cable adapter" beats "usb cable".
func matchProduct(products []model.Product, query string) *model.Product {
	q := strings.ToLower(query)
	var best *model.Product
	for i := range products {
		name := strings.ToLower(products[i].Name)
		if name == "" || !strings.Contains(q, name) {
			continue
		}
		if best == nil || len(products[i].Name) > len(best.Name) {
			best = &products[i]
		}
	}
	return best
}

// matchCategory returns the longest known category name appearing in the
// query, preserving the stored casing.
func matchCategory(products []model.Product, q string) string {
	var best string
	for i := range products {
		cat := products[i].Category
		if cat == "" || !strings.Contains(q, strings.ToLower(cat)) {
			continue
		}
		if len(cat) > len(best) {
			best = cat
		}
	}
	return best
}

func (s *assistantService) itemAnswer(p *model.Product) *dto.AskResponse {
	stock := p.Quantity
	resp := &dto.AskResponse{
		QueryType:    "item",
		Item:         p.Name,
		CurrentStock: &stock,
		StockStatus:  p.StockStatus(s.lowThreshold),
	}
	switch resp.StockStatus {
	case model.StockStatusOut:
		resp.Recommendation = fmt.Sprintf("%s is out of stock — restock immediately.", p.Name)
	case model.StockStatusLow:
		resp.Recommendation = fmt.Sprintf("Only %d unit(s) of %s left — consider restocking soon.", p.Quantity, p.Name)
	default:
		resp.Recommendation = fmt.Sprintf("%s has %d units in stock — levels look healthy.", p.Name, p.Quantity)
	}
	return resp
}

func (s *assistantService) categoryAnswer(ctx context.Context, products []model.Product, category string) (*dto.AskResponse, error) {
	resp := &dto.AskResponse{
		QueryType: "category",
		Category:  category,
	}
	for i := range products {
		p := &products[i]
		if !strings.EqualFold(p.Category, category) {
			continue
		}
		resp.ProductCount++
		resp.TotalStock += p.Quantity
		if p.Quantity <= s.lowThreshold {
			resp.LowStockProducts = append(resp.LowStockProducts, p.Name)
		}
	}

	// Average daily sales for the category over the last 30 days, from the
	// ledger's denormalized category snapshots.
	since := time.Now().UTC().AddDate(0, 0, -30)
	movements, err := s.movements.ListSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	unitsOut := 0
	for _, m := range movements {
		if m.Change < 0 && strings.EqualFold(m.Category, category) {
			unitsOut += -m.Change
		}
	}
	resp.AverageDailySales = float64(unitsOut) / 30.0

	resp.RestockNeeded = len(resp.LowStockProducts) > 0
	if resp.RestockNeeded {
		resp.Recommendation = fmt.Sprintf(
			"%d of %d products in %s are low or out of stock — prioritize restocking them.",
			len(resp.LowStockProducts), resp.ProductCount, category,
		)
	} else {
		resp.Recommendation = fmt.Sprintf("%s holds %d units across %d products — levels look healthy.",
			category, resp.TotalStock, resp.ProductCount)
	}
	return resp, nil
}

func (s *assistantService) trendAnswer(ctx context.Context, q string) (*dto.AskResponse, error) {
	season := seasonFromQuery(q)
	if season == "" {
		season = s.trends.CurrentSeason(time.Now().UTC())
	}

	predictions, err := s.trends.Predict(ctx, season, 5)
	if err != nil {
		return nil, err
	}

	resp := &dto.AskResponse{
		QueryType:       "trend",
		Season:          season,
		PredictedTrends: predictions,
	}
	if len(predictions) == 0 {
		resp.OverallPrediction = "No specific trend data available. Monitor market for emerging patterns."
		resp.Recommendation = "Record trend signals to enable seasonal forecasts."
		return resp, nil
	}

	for i, p := range predictions {
		if i == 3 {
			break
		}
		resp.RestockSuggestions = append(resp.RestockSuggestions, fmt.Sprintf("Consider stocking %s", p.Keyword))
	}
	resp.OverallPrediction = fmt.Sprintf("Strong %s demand expected, led by %s.", season, predictions[0].Keyword)
	resp.Recommendation = fmt.Sprintf("Align purchasing with the top %d %s keywords before demand peaks.",
		len(predictions), season)
	return resp, nil
}

func (s *assistantService) generalAnswer(ctx context.Context) (*dto.AskResponse, error) {
	summary, err := s.dashboard.Summary(ctx)
	if err != nil {
		return nil, err
	}

	needsRestock := summary.LowStockItems+summary.OutOfStockItems > 0
	resp := &dto.AskResponse{
		QueryType:         "general_inventory",
		TotalProducts:     summary.TotalProducts,
		TotalStock:        summary.TotalStock,
		AverageDailySales: summary.AverageDailySales,
		LowStockItems:     summary.LowStockItems,
		OutOfStockItems:   summary.OutOfStockItems,
		TopCategories:     summary.TopCategories,
		RestockNeeded:     needsRestock,
	}

	resp.Summary = fmt.Sprintf(
		"Tracking %d products with %d units in stock.",
		summary.TotalProducts, summary.TotalStock,
	)
	if needsRestock {
		resp.Recommendation = fmt.Sprintf(
			"%d product(s) are low and %d out of stock — review the inventory page and restock.",
			summary.LowStockItems, summary.OutOfStockItems,
		)
	} else {
		resp.Recommendation = "All products are adequately stocked."
	}
	return resp, nil
}
