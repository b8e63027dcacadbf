package handler

import (
	"net/http"
	"time"

	"github.com/juanmiguelzamora/StockWise/internal/apierror"
	"github.com/juanmiguelzamora/StockWise/internal/dto"
	"github.com/juanmiguelzamora/StockWise/internal/model"
	"github.com/juanmiguelzamora/StockWise/internal/service"

	"github.com/gin-gonic/gin"
)

type TrendHandler struct{ svc service.TrendService }

func NewTrendHandler(svc service.TrendService) *TrendHandler {
	return &TrendHandler{svc: svc}
}

// Record stores one demand signal for the predictor.
func (h *TrendHandler) Record(c *gin.Context) {
	var req dto.TrendSignalRequest
	if !bindAndValidate(c, &req) {
		return
	}
	item, err := h.svc.Record(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to record trend signal"))
		return
	}
	c.JSON(http.StatusCreated, item)
}

// Predictions returns the ranked keywords for ?season, defaulting to the
// current calendar season.
func (h *TrendHandler) Predictions(c *gin.Context) {
	season := c.Query("season")
	switch season {
	case "":
		season = h.svc.CurrentSeason(time.Now().UTC())
	case model.SeasonWinter, model.SeasonSpring, model.SeasonSummer, model.SeasonAutumn:
	default:
		c.JSON(http.StatusBadRequest, apierror.New("season must be one of winter, spring, summer, autumn"))
		return
	}

	predictions, err := h.svc.Predict(c.Request.Context(), season, 5)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to predict trends"))
		return
	}
	c.JSON(http.StatusOK, dto.TrendPredictionsResponse{Season: season, Predictions: predictions})
}
