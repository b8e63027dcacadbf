package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/juanmiguelzamora/StockWise/internal/apierror"
	"github.com/juanmiguelzamora/StockWise/internal/infra"
	"github.com/juanmiguelzamora/StockWise/internal/repository"

	"github.com/gin-gonic/gin"
)

type ReportsHandler struct {
	products     repository.ProductRepository
	lowThreshold int
}

func NewReportsHandler(products repository.ProductRepository, lowThreshold int) *ReportsHandler {
	return &ReportsHandler{products: products, lowThreshold: lowThreshold}
}

// Inventory streams the current stock list as a PDF download.
func (h *ReportsHandler) Inventory(c *gin.Context) {
	products, err := h.products.AllActive(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to load inventory"))
		return
	}
	pdf, err := infra.BuildInventoryReport(products, h.lowThreshold)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to render report"))
		return
	}
	filename := fmt.Sprintf("inventory-%s.pdf", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
