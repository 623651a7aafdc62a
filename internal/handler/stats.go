package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nashcab/car-rental-service/internal/service"
)

// StatsHandler serves the admin dashboard summary.
type StatsHandler struct {
	Stats *service.Stats
}

func NewStatsHandler(stats *service.Stats) *StatsHandler {
	return &StatsHandler{Stats: stats}
}

// Overview returns account, fleet, booking and revenue figures in one
// payload.
func (h *StatsHandler) Overview(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	sum, err := h.Stats.Overview(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lookup failed"})
	}
	return c.JSON(http.StatusOK, sum)
}
