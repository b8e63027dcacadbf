package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/juanmiguelzamora/StockWise/internal/apierror"
	"github.com/juanmiguelzamora/StockWise/internal/dto"
	"github.com/juanmiguelzamora/StockWise/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type InventoryHandler struct{ svc service.InventoryService }

func NewInventoryHandler(svc service.InventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

func productID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid product id"))
		return 0, false
	}
	return id, true
}

func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.Is(err, service.ErrProductInactive), errors.Is(err, service.ErrSKUTaken):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	default:
		// Anything unrecognized is an infrastructure failure. Log the real
		// error, never echo it to the client.
		log.Error().Err(err).Str("path", c.FullPath()).Msg("inventory operation failed")
		c.JSON(http.StatusInternalServerError, apierror.New("Internal server error"))
	}
}

func (h *InventoryHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *InventoryHandler) List(c *gin.Context) {
	var filter dto.ProductFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list inventory"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InventoryHandler) Get(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Product not found"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InventoryHandler) Update(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}
	var req dto.UpdateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InventoryHandler) Deactivate(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}
	if err := h.svc.Deactivate(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *InventoryHandler) Reactivate(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}
	if err := h.svc.Reactivate(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AdjustStock applies a signed delta to the product's quantity.
func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}
	var req dto.AdjustStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AdjustStock(c.Request.Context(), id, req.Change)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SetQuantity saves an absolute quantity from explicit numeric entry.
func (h *InventoryHandler) SetQuantity(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}
	var req dto.SetQuantityRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.SetQuantity(c.Request.Context(), id, *req.Quantity)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// History lists the movement ledger, most recent first.
func (h *InventoryHandler) History(c *gin.Context) {
	var filter dto.MovementFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.History(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list stock history"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
