package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/juanmiguelzamora/StockWise/internal/dto"
	"github.com/juanmiguelzamora/StockWise/internal/model"
	"github.com/juanmiguelzamora/StockWise/internal/repository"
	"github.com/juanmiguelzamora/StockWise/internal/worker"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrProductInactive = errors.New("product is inactive")
	ErrSKUTaken        = errors.New("a product with this SKU already exists")
)

// InventoryService is the single canonical path for every stock change. All
// mutations — click-driven deltas and explicit saves — run through one
// reconcile step that updates the product, maintains the cumulative counters
// and appends to the movement ledger inside one transaction, so the stored
// quantity and the ledger can never diverge.
type InventoryService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	Get(ctx context.Context, id int) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	Update(ctx context.Context, id int, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Deactivate(ctx context.Context, id int) error
	Reactivate(ctx context.Context, id int) error

	// AdjustStock applies a signed delta, clamped so quantity never drops
	// below zero. A fully clamped-away decrement is a no-op: no write, no
	// ledger record, Movement nil in the response.
	AdjustStock(ctx context.Context, id int, change int) (*dto.MutationResponse, error)
	// SetQuantity applies an absolute quantity from the explicit save. A save
	// confirming the current quantity still appends a zero-delta record.
	SetQuantity(ctx context.Context, id int, quantity int) (*dto.MutationResponse, error)

	History(ctx context.Context, filter dto.MovementFilter) (*dto.MovementListResponse, error)
}

type inventoryService struct {
	products     repository.ProductRepository
	movements    repository.StockMovementRepository
	dispatcher   *worker.Dispatcher
	lowThreshold int
}

func NewInventoryService(
	products repository.ProductRepository,
	movements repository.StockMovementRepository,
	dispatcher *worker.Dispatcher,
	lowThreshold int,
) InventoryService {
	return &inventoryService{
		products:     products,
		movements:    movements,
		dispatcher:   dispatcher,
		lowThreshold: lowThreshold,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── Catalog ──────────────────────────────────────────────────────────────────

func (s *inventoryService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if _, err := s.products.FindBySKU(ctx, req.SKU); err == nil {
		return nil, ErrSKUTaken
	}

	p := &model.Product{
		SKU:         req.SKU,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Quantity:    req.Quantity,
		ImageURL:    req.ImageURL,
		Active:      true,
	}
	if req.Quantity > 0 {
		p.StockIn = req.Quantity
	}

	err := runTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		if err := s.createProduct(ctx, tx, p); err != nil {
			return fmt.Errorf("create product: %w", err)
		}
		if req.Quantity == 0 {
			return nil
		}
		// Initial quantity enters the ledger too, so aggregates over the
		// ledger account for seeded stock.
		return s.createMovement(ctx, tx, movementFor(p, req.Quantity, req.Quantity, model.MovementReasonSeed))
	})
	if err != nil {
		return nil, err
	}
	resp := productToResponse(p, s.lowThreshold)
	return &resp, nil
}

func (s *inventoryService) Get(ctx context.Context, id int) (*dto.ProductResponse, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, ErrProductNotFound
	}
	resp := productToResponse(p, s.lowThreshold)
	return &resp, nil
}

func (s *inventoryService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	products, total, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	data := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		data = append(data, productToResponse(&products[i], s.lowThreshold))
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &dto.ProductListResponse{
		Data:       data,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

func (s *inventoryService) Update(ctx context.Context, id int, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, ErrProductNotFound
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = req.Description
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.ImageURL != nil {
		p.ImageURL = req.ImageURL
	}

	if err := s.products.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	resp := productToResponse(p, s.lowThreshold)
	return &resp, nil
}

func (s *inventoryService) Deactivate(ctx context.Context, id int) error {
	if _, err := s.products.FindByID(ctx, id); err != nil {
		return ErrProductNotFound
	}
	return s.products.SoftDelete(ctx, id)
}

func (s *inventoryService) Reactivate(ctx context.Context, id int) error {
	if _, err := s.products.FindByID(ctx, id); err != nil {
		return ErrProductNotFound
	}
	return s.products.Reactivate(ctx, id)
}

// ── Stock mutations ──────────────────────────────────────────────────────────

func (s *inventoryService) AdjustStock(ctx context.Context, id int, change int) (*dto.MutationResponse, error) {
	resp, err := s.mutate(ctx, id, func(current int) (int, bool) {
		applied := change
		if applied < -current {
			applied = -current // never below zero
		}
		// A decrement swallowed entirely by the clamp is a blocked operation,
		// not a confirmed one — nothing is written and nothing is recorded.
		return applied, applied != 0
	}, model.MovementReasonAdjust)
	if err != nil {
		return nil, err
	}
	s.maybeAlert(ctx, resp)
	return resp, nil
}

func (s *inventoryService) SetQuantity(ctx context.Context, id int, quantity int) (*dto.MutationResponse, error) {
	if quantity < 0 {
		return nil, errors.New("quantity must not be negative")
	}
	resp, err := s.mutate(ctx, id, func(current int) (int, bool) {
		// Explicit saves always record, even at zero delta: the user confirmed
		// this quantity, which is audit-relevant in a way a blocked click is not.
		return quantity - current, true
	}, model.MovementReasonSet)
	if err != nil {
		return nil, err
	}
	s.maybeAlert(ctx, resp)
	return resp, nil
}

// mutate is the single reconcile step shared by both mutation operations.
// deltaFn receives the current quantity and returns the applied delta plus
// whether the mutation should be recorded at all.
func (s *inventoryService) mutate(ctx context.Context, id int, deltaFn func(current int) (int, bool), reason string) (*dto.MutationResponse, error) {
	var resp dto.MutationResponse

	err := runTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		p, err := s.findForUpdate(ctx, tx, id)
		if err != nil {
			return ErrProductNotFound
		}
		if !p.Active {
			return ErrProductInactive
		}

		delta, record := deltaFn(p.Quantity)
		if !record {
			resp = dto.MutationResponse{Product: productToResponse(p, s.lowThreshold)}
			return nil
		}

		newQuantity := p.Quantity + delta
		if delta != 0 {
			if err := s.applyStock(ctx, tx, p.ID, delta); err != nil {
				return fmt.Errorf("apply stock change: %w", err)
			}
		}

		m := movementFor(p, delta, newQuantity, reason)
		if err := s.createMovement(ctx, tx, m); err != nil {
			return fmt.Errorf("append movement: %w", err)
		}

		// Mirror the SQL-side update on the in-memory copy for the response.
		p.Quantity = newQuantity
		if delta > 0 {
			p.StockIn += delta
		} else if delta < 0 {
			p.StockOut += -delta
		}
		if delta != 0 {
			// The UPDATE also touched the row's updated_at; reflect that in
			// the response instead of the pre-update read.
			p.UpdatedAt = time.Now().UTC()
		}

		mr := movementToResponse(m)
		resp = dto.MutationResponse{
			Product:  productToResponse(p, s.lowThreshold),
			Movement: &mr,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *inventoryService) History(ctx context.Context, filter dto.MovementFilter) (*dto.MovementListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 500 {
		filter.Limit = 50
	}

	movements, total, err := s.movements.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}

	data := make([]dto.StockMovementResponse, 0, len(movements))
	for i := range movements {
		data = append(data, movementToResponse(&movements[i]))
	}
	return &dto.MovementListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// ── Internals ────────────────────────────────────────────────────────────────

// findForUpdate reads the product inside the transaction (with a row lock on
// the SQL path) or falls back to a plain read in unit test mode.
func (s *inventoryService) findForUpdate(ctx context.Context, tx *gorm.DB, id int) (*model.Product, error) {
	if tx == nil {
		return s.products.FindByID(ctx, id)
	}
	return s.products.FindByIDTx(tx, id)
}

func (s *inventoryService) applyStock(ctx context.Context, tx *gorm.DB, id, delta int) error {
	if tx == nil {
		// Unit test mode: stubs implement the tx variant against their map.
		return s.products.ApplyStockTx(nil, id, delta)
	}
	return s.products.ApplyStockTx(tx, id, delta)
}

func (s *inventoryService) createProduct(ctx context.Context, tx *gorm.DB, p *model.Product) error {
	if tx == nil {
		return s.products.Create(ctx, p)
	}
	return tx.Create(p).Error
}

func (s *inventoryService) createMovement(ctx context.Context, tx *gorm.DB, m *model.StockMovement) error {
	if tx == nil {
		return s.movements.Create(ctx, m)
	}
	return s.movements.CreateTx(tx, m)
}

// maybeAlert enqueues a low-stock alert when the mutation left the product at
// or below the threshold. Failures are logged, never surfaced — alerting must
// not fail a committed mutation.
func (s *inventoryService) maybeAlert(ctx context.Context, resp *dto.MutationResponse) {
	if s.dispatcher == nil || resp.Movement == nil {
		return
	}
	p := resp.Product
	if p.Quantity > s.lowThreshold {
		return
	}
	err := s.dispatcher.EnqueueLowStockAlert(ctx, worker.LowStockAlertPayload{
		ProductID:   p.ID,
		ProductName: p.Name,
		SKU:         p.SKU,
		Quantity:    p.Quantity,
	})
	if err != nil {
		log.Error().Err(err).Int("product_id", p.ID).Msg("failed to enqueue low-stock alert")
	}
}

// movementFor denormalizes the product into a ledger record at mutation time,
// so history keeps rendering after renames or deactivation.
func movementFor(p *model.Product, change, newQuantity int, reason string) *model.StockMovement {
	return &model.StockMovement{
		ProductID:   p.ID,
		ProductName: p.Name,
		SKU:         p.SKU,
		Category:    p.Category,
		Image:       p.ImageURL,
		Change:      change,
		Quantity:    newQuantity,
		Reason:      reason,
		CreatedAt:   time.Now().UTC(),
	}
}

func productToResponse(p *model.Product, lowThreshold int) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		Quantity:    p.Quantity,
		StockIn:     p.StockIn,
		StockOut:    p.StockOut,
		StockStatus: p.StockStatus(lowThreshold),
		ImageURL:    p.ImageURL,
		Active:      p.Active,
		UpdatedAt:   p.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func movementToResponse(m *model.StockMovement) dto.StockMovementResponse {
	return dto.StockMovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		SKU:         m.SKU,
		Category:    m.Category,
		Image:       m.Image,
		Change:      m.Change,
		Quantity:    m.Quantity,
		Reason:      m.Reason,
		Date:        m.CreatedAt.UTC().Format(time.RFC3339),
	}
}
