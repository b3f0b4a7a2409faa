package controllerImp

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"agrilink/pkg/market"
)

type PriceCtrl struct {
	quotes     market.QuoteProvider
	forecaster *market.Forecaster
}

func New(quotes market.QuoteProvider, forecaster *market.Forecaster) *PriceCtrl {
	return &PriceCtrl{quotes: quotes, forecaster: forecaster}
}

// Current returns today's mandi price for ?crop=&state=.
func (h *PriceCtrl) Current(c echo.Context) error {
	crop := c.QueryParam("crop")
	if crop == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "crop is required"})
	}
	state := c.QueryParam("state")
	if state == "" {
		state = "Karnataka"
	}

	quote, err := h.quotes.Current(c.Request().Context(), crop, state)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"quote": quote})
}

// Forecast predicts the price at ?harvest_date= (YYYY-MM-DD).
func (h *PriceCtrl) Forecast(c echo.Context) error {
	crop := c.QueryParam("crop")
	if crop == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "crop is required"})
	}
	state := c.QueryParam("state")
	if state == "" {
		state = "Karnataka"
	}
	harvestDate, err := time.Parse("2006-01-02", c.QueryParam("harvest_date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "harvest_date must be YYYY-MM-DD"})
	}

	p := h.forecaster.Predict(c.Request().Context(), crop, harvestDate, state)
	return c.JSON(http.StatusOK, map[string]any{"prediction": p})
}

// Trends returns a synthesized daily price series for charts.
func (h *PriceCtrl) Trends(c echo.Context) error {
	crop := c.QueryParam("crop")
	if crop == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "crop is required"})
	}
	state := c.QueryParam("state")
	if state == "" {
		state = "Karnataka"
	}
	days, _ := strconv.Atoi(c.QueryParam("days"))
	if days <= 0 {
		days = 30
	}

	trends := h.forecaster.HistoricalTrends(crop, days, state)
	return c.JSON(http.StatusOK, map[string]any{
		"crop":   crop,
		"state":  state,
		"period": strconv.Itoa(days) + " days",
		"trends": trends,
	})
}
