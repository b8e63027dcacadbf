package repository

import (
	"context"
	"time"

	"github.com/juanmiguelzamora/StockWise/internal/dto"
	"github.com/juanmiguelzamora/StockWise/internal/model"

	"gorm.io/gorm"
)

// StockMovementRepository is the append-only ledger store. Movements are only
// ever created — there is no update or delete.
type StockMovementRepository interface {
	Create(ctx context.Context, m *model.StockMovement) error
	CreateTx(tx *gorm.DB, m *model.StockMovement) error
	// List returns movements most-recent-first (descending insertion order).
	List(ctx context.Context, filter dto.MovementFilter) ([]model.StockMovement, int64, error)
	// ListSince returns all movements at or after since, unpaginated, for
	// aggregation. A zero since means the whole ledger.
	ListSince(ctx context.Context, since time.Time) ([]model.StockMovement, error)
}

type movementRepo struct{ db *gorm.DB }

func NewStockMovementRepository(db *gorm.DB) StockMovementRepository {
	return &movementRepo{db: db}
}

func (r *movementRepo) Create(ctx context.Context, m *model.StockMovement) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *movementRepo) CreateTx(tx *gorm.DB, m *model.StockMovement) error {
	return tx.Create(m).Error
}

func (r *movementRepo) List(ctx context.Context, filter dto.MovementFilter) ([]model.StockMovement, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.StockMovement{})

	if filter.ProductID != 0 {
		q = q.Where("product_id = ?", filter.ProductID)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("product_name ILIKE ? OR sku ILIKE ? OR category ILIKE ?", like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	limit := filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 500 {
		limit = 50
	}
	offset := (page - 1) * limit

	var movements []model.StockMovement
	err := q.Order("id DESC").Offset(offset).Limit(limit).Find(&movements).Error
	return movements, total, err
}

func (r *movementRepo) ListSince(ctx context.Context, since time.Time) ([]model.StockMovement, error) {
	q := r.db.WithContext(ctx).Model(&model.StockMovement{})
	if !since.IsZero() {
		q = q.Where("created_at >= ?", since)
	}
	var movements []model.StockMovement
	err := q.Order("id ASC").Find(&movements).Error
	return movements, err
}
