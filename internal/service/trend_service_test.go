package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/juanmiguelzamora/StockWise/internal/dto"
	"github.com/juanmiguelzamora/StockWise/internal/model"
	"github.com/juanmiguelzamora/StockWise/internal/repository"
	"github.com/juanmiguelzamora/StockWise/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── In-memory TrendItemRepository stub ───────────────────────────────────────

type stubTrendRepo struct {
	items  []*model.TrendItem
	nextID int
}

func newStubTrendRepo() *stubTrendRepo {
	return &stubTrendRepo{nextID: 1}
}

func (r *stubTrendRepo) Create(_ context.Context, item *model.TrendItem) error {
	if item.ID == 0 {
		item.ID = r.nextID
		r.nextID++
	}
	r.items = append(r.items, item)
	return nil
}

func (r *stubTrendRepo) BySeason(_ context.Context, season string) ([]model.TrendItem, error) {
	var result []model.TrendItem
	for _, it := range r.items {
		if season != "" && it.Season != season {
			continue
		}
		result = append(result, *it)
	}
	return result, nil
}

var _ repository.TrendItemRepository = (*stubTrendRepo)(nil)

func seedTrend(repo *stubTrendRepo, season, keyword string) {
	repo.items = append(repo.items, &model.TrendItem{
		ID:      repo.nextID,
		Season:  season,
		Keyword: keyword,
		Source:  "manual",
	})
	repo.nextID++
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestCurrentSeasonByMonth(t *testing.T) {
	svc := service.NewTrendService(newStubTrendRepo())
	cases := []struct {
		month time.Month
		want  string
	}{
		{time.January, model.SeasonWinter},
		{time.February, model.SeasonWinter},
		{time.March, model.SeasonSpring},
		{time.May, model.SeasonSpring},
		{time.June, model.SeasonSummer},
		{time.August, model.SeasonSummer},
		{time.September, model.SeasonAutumn},
		{time.November, model.SeasonAutumn},
		{time.December, model.SeasonWinter},
	}
	for _, tc := range cases {
		now := time.Date(2026, tc.month, 15, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, tc.want, svc.CurrentSeason(now), "month %s", tc.month)
	}
}

func TestPredictRanksByFrequency(t *testing.T) {
	repo := newStubTrendRepo()
	svc := service.NewTrendService(repo)
	seedTrend(repo, model.SeasonAutumn, "umbrella")
	seedTrend(repo, model.SeasonAutumn, "umbrella")
	seedTrend(repo, model.SeasonAutumn, "umbrella")
	seedTrend(repo, model.SeasonAutumn, "backpack")

	predictions, err := svc.Predict(context.Background(), model.SeasonAutumn, 5)
	require.NoError(t, err)

	require.Len(t, predictions, 2)
	assert.Equal(t, "umbrella", predictions[0].Keyword)
	assert.Equal(t, 3.0, predictions[0].HotScore)
	assert.Equal(t, "backpack", predictions[1].Keyword)
	assert.Equal(t, 1.0, predictions[1].HotScore)
}

func TestPredictSeasonalKeywordBoost(t *testing.T) {
	repo := newStubTrendRepo()
	svc := service.NewTrendService(repo)
	seedTrend(repo, model.SeasonWinter, "wool coat")
	seedTrend(repo, model.SeasonWinter, "wool coat")
	seedTrend(repo, model.SeasonWinter, "umbrella")
	seedTrend(repo, model.SeasonWinter, "umbrella")

	predictions, err := svc.Predict(context.Background(), model.SeasonWinter, 5)
	require.NoError(t, err)

	// Same frequency, but "wool coat" contains a winter keyword and gets the
	// 1.5x bonus.
	require.Len(t, predictions, 2)
	assert.Equal(t, "wool coat", predictions[0].Keyword)
	assert.Equal(t, 3.0, predictions[0].HotScore)
	assert.Equal(t, 2.0, predictions[1].HotScore)
}

func TestPredictKeywordsAreCaseInsensitive(t *testing.T) {
	repo := newStubTrendRepo()
	svc := service.NewTrendService(repo)
	seedTrend(repo, model.SeasonSummer, "Swimwear")
	seedTrend(repo, model.SeasonSummer, "swimwear")

	predictions, err := svc.Predict(context.Background(), model.SeasonSummer, 5)
	require.NoError(t, err)

	require.Len(t, predictions, 1)
	assert.Equal(t, "swimwear", predictions[0].Keyword)
	assert.Equal(t, 3.0, predictions[0].HotScore) // 2 * 1.5 seasonal bonus
}

func TestPredictHonorsTopN(t *testing.T) {
	repo := newStubTrendRepo()
	svc := service.NewTrendService(repo)
	for _, kw := range []string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf"} {
		seedTrend(repo, model.SeasonSpring, kw)
	}

	predictions, err := svc.Predict(context.Background(), model.SeasonSpring, 5)
	require.NoError(t, err)
	assert.Len(t, predictions, 5)
}

func TestPredictTiesBreakAlphabetically(t *testing.T) {
	repo := newStubTrendRepo()
	svc := service.NewTrendService(repo)
	seedTrend(repo, model.SeasonSpring, "notebook")
	seedTrend(repo, model.SeasonSpring, "backpack")

	predictions, err := svc.Predict(context.Background(), model.SeasonSpring, 5)
	require.NoError(t, err)

	require.Len(t, predictions, 2)
	assert.Equal(t, "backpack", predictions[0].Keyword)
	assert.Equal(t, "notebook", predictions[1].Keyword)
}

func TestPredictWithoutDataReturnsEmpty(t *testing.T) {
	svc := service.NewTrendService(newStubTrendRepo())

	predictions, err := svc.Predict(context.Background(), model.SeasonWinter, 5)
	require.NoError(t, err)
	assert.Empty(t, predictions)
}

func TestPredictFiltersBySeason(t *testing.T) {
	repo := newStubTrendRepo()
	svc := service.NewTrendService(repo)
	seedTrend(repo, model.SeasonWinter, "wool coat")
	seedTrend(repo, model.SeasonSummer, "swimwear")

	predictions, err := svc.Predict(context.Background(), model.SeasonSummer, 5)
	require.NoError(t, err)

	require.Len(t, predictions, 1)
	assert.Equal(t, "swimwear", predictions[0].Keyword)
}

func TestRecordDefaultsSourceToManual(t *testing.T) {
	repo := newStubTrendRepo()
	svc := service.NewTrendService(repo)

	item, err := svc.Record(context.Background(), dto.TrendSignalRequest{
		Season:  model.SeasonAutumn,
		Keyword: "  hoodie  ",
	})
	require.NoError(t, err)

	assert.Equal(t, "hoodie", item.Keyword)
	assert.Equal(t, "manual", item.Source)
	require.Len(t, repo.items, 1)
}
