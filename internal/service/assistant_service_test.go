package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/juanmiguelzamora/StockWise/internal/model"
	"github.com/juanmiguelzamora/StockWise/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAssistant(products *stubProductRepo, movements *stubMovementRepo, trends *stubTrendRepo) service.AssistantService {
	dashboard := service.NewDashboardService(products, movements, nil, testLowThreshold)
	trendSvc := service.NewTrendService(trends)
	return service.NewAssistantService(products, movements, dashboard, trendSvc, testLowThreshold)
}

func TestAskItemQuery(t *testing.T) {
	products := newStubProductRepo()
	svc := newAssistant(products, newStubMovementRepo(), newStubTrendRepo())
	seedProduct(products, "Wireless Headphones", "WH-001", "Electronics", 3)

	resp, err := svc.Ask(context.Background(), "How much stock of wireless headphones do we have?")
	require.NoError(t, err)

	assert.Equal(t, "item", resp.QueryType)
	assert.Equal(t, "Wireless Headphones", resp.Item)
	require.NotNil(t, resp.CurrentStock)
	assert.Equal(t, 3, *resp.CurrentStock)
	assert.Equal(t, "low_stock", resp.StockStatus)
	assert.Contains(t, resp.Recommendation, "restocking")
}

func TestAskItemOutOfStock(t *testing.T) {
	products := newStubProductRepo()
	svc := newAssistant(products, newStubMovementRepo(), newStubTrendRepo())
	seedProduct(products, "USB Cable", "UC-002", "Accessories", 0)

	resp, err := svc.Ask(context.Background(), "usb cable inventory?")
	require.NoError(t, err)

	assert.Equal(t, "item", resp.QueryType)
	assert.Equal(t, "out_of_stock", resp.StockStatus)
	assert.Contains(t, resp.Recommendation, "restock immediately")
}

func TestAskItemNotFound(t *testing.T) {
	products := newStubProductRepo()
	svc := newAssistant(products, newStubMovementRepo(), newStubTrendRepo())
	seedProduct(products, "USB Cable", "UC-002", "Accessories", 10)

	resp, err := svc.Ask(context.Background(), "how many units of flux capacitor?")
	require.NoError(t, err)

	assert.Equal(t, "item", resp.QueryType)
	assert.Equal(t, "flux capacitor", resp.Item)
	assert.Nil(t, resp.CurrentStock)
	assert.Equal(t, "Item not found in inventory. Please verify the product name.", resp.Recommendation)
}

func TestAskPrefersLongestProductMatch(t *testing.T) {
	products := newStubProductRepo()
	svc := newAssistant(products, newStubMovementRepo(), newStubTrendRepo())
	seedProduct(products, "USB Cable", "UC-002", "Accessories", 10)
	seedProduct(products, "USB Cable Adapter", "UC-003", "Accessories", 2)

	resp, err := svc.Ask(context.Background(), "stock of usb cable adapter")
	require.NoError(t, err)

	assert.Equal(t, "USB Cable Adapter", resp.Item)
	require.NotNil(t, resp.CurrentStock)
	assert.Equal(t, 2, *resp.CurrentStock)
}

func TestAskGeneralInventory(t *testing.T) {
	products := newStubProductRepo()
	svc := newAssistant(products, newStubMovementRepo(), newStubTrendRepo())
	seedProduct(products, "Wireless Headphones", "WH-001", "Electronics", 10)
	seedProduct(products, "USB Cable", "UC-002", "Accessories", 0)

	resp, err := svc.Ask(context.Background(), "How is my inventory doing overall?")
	require.NoError(t, err)

	assert.Equal(t, "general_inventory", resp.QueryType)
	assert.Equal(t, 2, resp.TotalProducts)
	assert.Equal(t, 10, resp.TotalStock)
	assert.Equal(t, 1, resp.OutOfStockItems)
	assert.True(t, resp.RestockNeeded)
	assert.NotEmpty(t, resp.Summary)
	assert.NotEmpty(t, resp.Recommendation)
}

func TestAskGeneralAllHealthy(t *testing.T) {
	products := newStubProductRepo()
	svc := newAssistant(products, newStubMovementRepo(), newStubTrendRepo())
	seedProduct(products, "Wireless Headphones", "WH-001", "Electronics", 50)

	resp, err := svc.Ask(context.Background(), "give me a status report")
	require.NoError(t, err)

	assert.Equal(t, "general_inventory", resp.QueryType)
	assert.False(t, resp.RestockNeeded)
	assert.Equal(t, "All products are adequately stocked.", resp.Recommendation)
}

func TestAskTrendQuery(t *testing.T) {
	products := newStubProductRepo()
	trends := newStubTrendRepo()
	svc := newAssistant(products, newStubMovementRepo(), trends)
	seedTrend(trends, model.SeasonWinter, "wool coat")
	seedTrend(trends, model.SeasonWinter, "wool coat")
	seedTrend(trends, model.SeasonWinter, "umbrella")

	resp, err := svc.Ask(context.Background(), "predict winter fashion trends")
	require.NoError(t, err)

	assert.Equal(t, "trend", resp.QueryType)
	assert.Equal(t, model.SeasonWinter, resp.Season)
	require.Len(t, resp.PredictedTrends, 2)
	assert.Equal(t, "wool coat", resp.PredictedTrends[0].Keyword)
	assert.Contains(t, resp.OverallPrediction, "wool coat")
	require.NotEmpty(t, resp.RestockSuggestions)
	assert.Contains(t, resp.RestockSuggestions[0], "wool coat")
}

func TestAskTrendChristmasMapsToWinter(t *testing.T) {
	products := newStubProductRepo()
	trends := newStubTrendRepo()
	svc := newAssistant(products, newStubMovementRepo(), trends)
	seedTrend(trends, model.SeasonWinter, "festive sweater")
	seedTrend(trends, model.SeasonSummer, "swimwear")

	resp, err := svc.Ask(context.Background(), "what will sell well for christmas?")
	require.NoError(t, err)

	assert.Equal(t, "trend", resp.QueryType)
	assert.Equal(t, model.SeasonWinter, resp.Season)
	require.Len(t, resp.PredictedTrends, 1)
	assert.Equal(t, "festive sweater", resp.PredictedTrends[0].Keyword)
}

func TestAskTrendNoData(t *testing.T) {
	products := newStubProductRepo()
	svc := newAssistant(products, newStubMovementRepo(), newStubTrendRepo())

	resp, err := svc.Ask(context.Background(), "forecast demand for summer")
	require.NoError(t, err)

	assert.Equal(t, "trend", resp.QueryType)
	assert.Empty(t, resp.PredictedTrends)
	assert.Equal(t, "No specific trend data available. Monitor market for emerging patterns.", resp.OverallPrediction)
}

func TestAskSeasonWordWithStockPhrasingIsItemQuery(t *testing.T) {
	products := newStubProductRepo()
	svc := newAssistant(products, newStubMovementRepo(), newStubTrendRepo())
	seedProduct(products, "Winter Jacket", "WJ-010", "Apparel", 4)

	resp, err := svc.Ask(context.Background(), "how much stock for winter jacket?")
	require.NoError(t, err)

	assert.Equal(t, "item", resp.QueryType)
	assert.Equal(t, "Winter Jacket", resp.Item)
}

func TestAskCategoryQuery(t *testing.T) {
	products := newStubProductRepo()
	movements := newStubMovementRepo()
	svc := newAssistant(products, movements, newStubTrendRepo())
	seedProduct(products, "Wireless Headphones", "WH-001", "Electronics", 40)
	seedProduct(products, "Bluetooth Speaker", "BS-002", "Electronics", 2)
	seedProduct(products, "Desk Lamp", "DL-003", "Home", 15)
	require.NoError(t, movements.Create(context.Background(), &model.StockMovement{
		ProductID: 1, ProductName: "Wireless Headphones", SKU: "WH-001",
		Category: "Electronics", Change: -30, Quantity: 40,
		Reason: model.MovementReasonAdjust, CreatedAt: time.Now().UTC(),
	}))

	resp, err := svc.Ask(context.Background(), "how is the electronics category doing?")
	require.NoError(t, err)

	assert.Equal(t, "category", resp.QueryType)
	assert.Equal(t, "Electronics", resp.Category)
	assert.Equal(t, 2, resp.ProductCount)
	assert.Equal(t, 42, resp.TotalStock)
	assert.Equal(t, []string{"Bluetooth Speaker"}, resp.LowStockProducts)
	assert.True(t, resp.RestockNeeded)
	assert.InDelta(t, 1.0, resp.AverageDailySales, 0.001)
}

func TestAskGeneralStockPhraseBeatsCategory(t *testing.T) {
	products := newStubProductRepo()
	svc := newAssistant(products, newStubMovementRepo(), newStubTrendRepo())
	seedProduct(products, "Wireless Headphones", "WH-001", "Electronics", 40)

	resp, err := svc.Ask(context.Background(), "what is the total stock in electronics?")
	require.NoError(t, err)

	assert.Equal(t, "general_inventory", resp.QueryType)
}

func TestAskCategoryWithoutIntentFallsBackToGeneral(t *testing.T) {
	products := newStubProductRepo()
	svc := newAssistant(products, newStubMovementRepo(), newStubTrendRepo())
	seedProduct(products, "Wireless Headphones", "WH-001", "Electronics", 40)

	resp, err := svc.Ask(context.Background(), "is electronics doing ok?")
	require.NoError(t, err)

	assert.Equal(t, "general_inventory", resp.QueryType)
}
