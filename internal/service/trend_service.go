package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/juanmiguelzamora/StockWise/internal/dto"
	"github.com/juanmiguelzamora/StockWise/internal/model"
	"github.com/juanmiguelzamora/StockWise/internal/repository"
)

// seasonKeywords weight the predictor: a recorded keyword containing one of
// its season's words gets a 1.5x score bonus.
var seasonKeywords = map[string][]string{
	model.SeasonSummer: {"shirt", "shorts", "sunglasses", "swimwear", "tank"},
	model.SeasonWinter: {"coat", "jacket", "sweater", "boots", "scarf"},
	model.SeasonSpring: {"dress", "skirt", "cardigan", "light jacket"},
	model.SeasonAutumn: {"hoodie", "jeans", "boots", "sweater"},
}

const seasonalWeight = 1.5

// TrendService ranks recorded demand signals into seasonal predictions.
// Scoring is rule-based: keyword frequency with a seasonal bonus, no model.
type TrendService interface {
	CurrentSeason(now time.Time) string
	Record(ctx context.Context, req dto.TrendSignalRequest) (*model.TrendItem, error)
	// Predict returns the top-N keywords for a season, highest score first.
	Predict(ctx context.Context, season string, topN int) ([]dto.TrendPrediction, error)
}

type trendService struct {
	trends repository.TrendItemRepository
}

func NewTrendService(trends repository.TrendItemRepository) TrendService {
	return &trendService{trends: trends}
}

// CurrentSeason maps the month to a season: Dec-Feb winter, Mar-May spring,
// Jun-Aug summer, Sep-Nov autumn.
func (s *trendService) CurrentSeason(now time.Time) string {
	switch now.Month() {
	case time.December, time.January, time.February:
		return model.SeasonWinter
	case time.March, time.April, time.May:
		return model.SeasonSpring
	case time.June, time.July, time.August:
		return model.SeasonSummer
	default:
		return model.SeasonAutumn
	}
}

func (s *trendService) Record(ctx context.Context, req dto.TrendSignalRequest) (*model.TrendItem, error) {
	item := &model.TrendItem{
		Season:  req.Season,
		Keyword: strings.TrimSpace(req.Keyword),
		Source:  req.Source,
		Score:   req.Score,
	}
	if item.Source == "" {
		item.Source = "manual"
	}
	if err := s.trends.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("record trend signal: %w", err)
	}
	return item, nil
}

func (s *trendService) Predict(ctx context.Context, season string, topN int) ([]dto.TrendPrediction, error) {
	items, err := s.trends.BySeason(ctx, season)
	if err != nil {
		return nil, fmt.Errorf("list trend signals: %w", err)
	}
	if len(items) == 0 {
		return nil, nil
	}
	if topN < 1 {
		topN = 5
	}

	freq := make(map[string]int, len(items))
	for _, it := range items {
		freq[strings.ToLower(it.Keyword)]++
	}

	weighted := seasonKeywords[season]
	predictions := make([]dto.TrendPrediction, 0, len(freq))
	for keyword, count := range freq {
		score := float64(count)
		for _, kw := range weighted {
			if strings.Contains(keyword, kw) {
				score *= seasonalWeight
				break
			}
		}
		predictions = append(predictions, dto.TrendPrediction{
			Keyword:    keyword,
			HotScore:   score,
			Suggestion: fmt.Sprintf("Stock items related to %s", keyword),
		})
	}

	// Score descending, keyword ascending on ties, so equal inputs always
	// rank the same way.
	sort.Slice(predictions, func(i, j int) bool {
		if predictions[i].HotScore != predictions[j].HotScore {
			return predictions[i].HotScore > predictions[j].HotScore
		}
		return predictions[i].Keyword < predictions[j].Keyword
	})

	if len(predictions) > topN {
		predictions = predictions[:topN]
	}
	return predictions, nil
}
