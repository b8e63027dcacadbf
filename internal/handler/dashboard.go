package handler

import (
	"net/http"
	"strconv"

	"github.com/juanmiguelzamora/StockWise/internal/apierror"
	"github.com/juanmiguelzamora/StockWise/internal/dto"
	"github.com/juanmiguelzamora/StockWise/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct{ svc service.DashboardService }

func NewDashboardHandler(svc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

func (h *DashboardHandler) Summary(c *gin.Context) {
	resp, err := h.svc.Summary(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to build summary"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Weekly returns the Mon–Sun movement buckets. ?days=N bounds the window;
// omitted or 0 aggregates the whole ledger.
func (h *DashboardHandler) Weekly(c *gin.Context) {
	days := 0
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, apierror.New("days must be a non-negative integer"))
			return
		}
		days = parsed
	}
	buckets, err := h.svc.WeeklyActivity(c.Request.Context(), days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to aggregate weekly activity"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": buckets})
}

type AssistantHandler struct{ svc service.AssistantService }

func NewAssistantHandler(svc service.AssistantService) *AssistantHandler {
	return &AssistantHandler{svc: svc}
}

func (h *AssistantHandler) Ask(c *gin.Context) {
	var req dto.AskRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Ask(c.Request.Context(), req.Query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to answer query"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"response": resp})
}
