package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/juanmiguelzamora/StockWise/internal/dto"
	"github.com/juanmiguelzamora/StockWise/internal/model"
	"github.com/juanmiguelzamora/StockWise/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// Weekday labels in bucket order. Monday-first regardless of locale.
var weekdayLabels = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

const (
	summaryCacheKey = "dashboard:summary"
	summaryCacheTTL = 30 * time.Second

	// Trailing window for the average daily sales figure.
	salesWindowDays = 30
)

// DashboardService derives the dashboard read models. The weekly chart is
// computed from the movement ledger, the one source that records every
// mutation exactly once.
type DashboardService interface {
	Summary(ctx context.Context) (*dto.SummaryResponse, error)
	// WeeklyActivity buckets movement by weekday. days bounds the window;
	// days <= 0 aggregates the whole ledger.
	WeeklyActivity(ctx context.Context, days int) ([]dto.WeeklyBucket, error)
}

type dashboardService struct {
	products     repository.ProductRepository
	movements    repository.StockMovementRepository
	rdb          *redis.Client
	lowThreshold int
}

func NewDashboardService(
	products repository.ProductRepository,
	movements repository.StockMovementRepository,
	rdb *redis.Client,
	lowThreshold int,
) DashboardService {
	return &dashboardService{
		products:     products,
		movements:    movements,
		rdb:          rdb,
		lowThreshold: lowThreshold,
	}
}

func (s *dashboardService) Summary(ctx context.Context) (*dto.SummaryResponse, error) {
	if cached := s.cachedSummary(ctx); cached != nil {
		return cached, nil
	}

	products, err := s.products.AllActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	resp := &dto.SummaryResponse{
		TotalProducts:  len(products),
		InventoryValue: decimal.Zero,
		TopCategories:  []dto.CategoryStock{},
	}
	byCategory := make(map[string]int)
	for _, p := range products {
		resp.TotalStock += p.Quantity
		resp.InventoryValue = resp.InventoryValue.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Quantity))))
		byCategory[p.Category] += p.Quantity

		switch p.StockStatus(s.lowThreshold) {
		case model.StockStatusOut:
			resp.OutOfStockItems++
		case model.StockStatusLow:
			resp.LowStockItems++
		}
	}

	resp.TopCategories = topCategories(byCategory, 5)

	avg, err := s.averageDailySales(ctx)
	if err != nil {
		return nil, err
	}
	resp.AverageDailySales = avg

	s.cacheSummary(ctx, resp)
	return resp, nil
}

func (s *dashboardService) WeeklyActivity(ctx context.Context, days int) ([]dto.WeeklyBucket, error) {
	var since time.Time
	if days > 0 {
		since = time.Now().UTC().AddDate(0, 0, -days)
	}
	movements, err := s.movements.ListSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	return AggregateWeekly(movements), nil
}

// AggregateWeekly folds movements into the seven weekday buckets, Monday
// first. Positive change adds to stockIn, negative adds its magnitude to
// stockOut, zero contributes nothing. The weekday comes from the movement's
// own timestamp, so the result is fully determined by its input.
func AggregateWeekly(movements []model.StockMovement) []dto.WeeklyBucket {
	buckets := make([]dto.WeeklyBucket, 7)
	for i := range buckets {
		buckets[i] = dto.WeeklyBucket{Day: weekdayLabels[i]}
	}
	for i := range movements {
		m := &movements[i]
		idx := mondayIndex(m.CreatedAt.Weekday())
		switch {
		case m.Change > 0:
			buckets[idx].StockIn += m.Change
		case m.Change < 0:
			buckets[idx].StockOut += -m.Change
		}
	}
	return buckets
}

// mondayIndex maps time.Weekday (Sunday=0) onto the Monday-first bucket order.
func mondayIndex(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

// averageDailySales is outward movement over the trailing window, per day.
func (s *dashboardService) averageDailySales(ctx context.Context) (float64, error) {
	since := time.Now().UTC().AddDate(0, 0, -salesWindowDays)
	movements, err := s.movements.ListSince(ctx, since)
	if err != nil {
		return 0, fmt.Errorf("list movements: %w", err)
	}
	out := 0
	for i := range movements {
		if movements[i].Change < 0 {
			out += -movements[i].Change
		}
	}
	return float64(out) / float64(salesWindowDays), nil
}

func topCategories(byCategory map[string]int, n int) []dto.CategoryStock {
	ranked := make([]dto.CategoryStock, 0, len(byCategory))
	for category, stock := range byCategory {
		ranked = append(ranked, dto.CategoryStock{Category: category, Stock: stock})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Stock != ranked[j].Stock {
			return ranked[i].Stock > ranked[j].Stock
		}
		return ranked[i].Category < ranked[j].Category
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// ── Summary cache ────────────────────────────────────────────────────────────
// Best-effort read-through cache; a cold or unreachable Redis only costs the
// recomputation.

func (s *dashboardService) cachedSummary(ctx context.Context) *dto.SummaryResponse {
	if s.rdb == nil {
		return nil
	}
	raw, err := s.rdb.Get(ctx, summaryCacheKey).Bytes()
	if err != nil {
		return nil
	}
	var resp dto.SummaryResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil
	}
	return &resp
}

func (s *dashboardService) cacheSummary(ctx context.Context, resp *dto.SummaryResponse) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	s.rdb.Set(ctx, summaryCacheKey, raw, summaryCacheTTL)
}
