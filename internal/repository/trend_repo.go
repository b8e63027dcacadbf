package repository

import (
	"context"

	"github.com/juanmiguelzamora/StockWise/internal/model"

	"gorm.io/gorm"
)

// TrendItemRepository stores recorded demand signals for the trend predictor.
type TrendItemRepository interface {
	Create(ctx context.Context, item *model.TrendItem) error
	// BySeason returns all signals for a season; an empty season means the
	// whole table.
	BySeason(ctx context.Context, season string) ([]model.TrendItem, error)
}

type trendRepo struct{ db *gorm.DB }

func NewTrendItemRepository(db *gorm.DB) TrendItemRepository {
	return &trendRepo{db: db}
}

func (r *trendRepo) Create(ctx context.Context, item *model.TrendItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *trendRepo) BySeason(ctx context.Context, season string) ([]model.TrendItem, error) {
	q := r.db.WithContext(ctx).Model(&model.TrendItem{})
	if season != "" {
		q = q.Where("season = ?", season)
	}
	var items []model.TrendItem
	err := q.Order("id").Find(&items).Error
	return items, err
}
