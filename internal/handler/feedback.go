package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nashcab/car-rental-service/internal/form"
	"github.com/nashcab/car-rental-service/internal/middleware"
	"github.com/nashcab/car-rental-service/internal/model"
	"github.com/nashcab/car-rental-service/internal/repository"
)

// FeedbackHandler records and lists customer feedback.
type FeedbackHandler struct {
	Feedback  *repository.FeedbackRepo
	Customers *repository.AccountRepo
}

func NewFeedbackHandler(feedback *repository.FeedbackRepo, customers *repository.AccountRepo) *FeedbackHandler {
	return &FeedbackHandler{Feedback: feedback, Customers: customers}
}

// Create stores feedback from the signed-in customer.  Name and email
// come from the account, not the request.
func (h *FeedbackHandler) Create(c echo.Context) error {
	var req form.Feedback
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.Validate(); err != nil {
		return validationJSON(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	acc, err := h.Customers.GetByID(ctx, middleware.UserID(c))
	if errors.Is(err, sql.ErrNoRows) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lookup failed"})
	}

	fb := model.Feedback{
		UserID:   acc.UserID,
		Name:     acc.FullName(),
		Email:    acc.Email,
		Rating:   req.Rating,
		Comments: req.Comments,
		Date:     time.Now().UTC().Format("2006-01-02"),
	}
	if err := h.Feedback.Create(ctx, &fb); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, fb)
}

// List returns all feedback for the admin dashboard.
func (h *FeedbackHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	entries, err := h.Feedback.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lookup failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"feedback": entries})
}
