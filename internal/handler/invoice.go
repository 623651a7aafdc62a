package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nashcab/car-rental-service/internal/middleware"
	"github.com/nashcab/car-rental-service/internal/model"
	"github.com/nashcab/car-rental-service/internal/service"
)

// InvoiceHandler serves the assembled trip record, as JSON or PDF.
type InvoiceHandler struct {
	Invoices *service.Invoices
}

func NewInvoiceHandler(invoices *service.Invoices) *InvoiceHandler {
	return &InvoiceHandler{Invoices: invoices}
}

func (h *InvoiceHandler) assemble(c echo.Context) (service.Invoice, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return service.Invoice{}, echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	inv, err := h.Invoices.Assemble(ctx, id)
	if err != nil {
		return service.Invoice{}, err
	}
	// Customers only see their own invoices; admins see any.
	if role, _ := c.Get("role").(string); role != model.RoleAdmin && inv.Booking.CustomerID != middleware.UserID(c) {
		return service.Invoice{}, echo.NewHTTPError(http.StatusForbidden, "forbidden")
	}
	return inv, nil
}

// Get returns the invoice as JSON.
func (h *InvoiceHandler) Get(c echo.Context) error {
	inv, err := h.assemble(c)
	if err != nil {
		if he, ok := err.(*echo.HTTPError); ok {
			return he
		}
		return domainJSON(c, err)
	}
	return c.JSON(http.StatusOK, inv)
}

// GetPDF returns the printable invoice.
func (h *InvoiceHandler) GetPDF(c echo.Context) error {
	inv, err := h.assemble(c)
	if err != nil {
		if he, ok := err.(*echo.HTTPError); ok {
			return he
		}
		return domainJSON(c, err)
	}
	pdf, err := h.Invoices.RenderPDF(inv)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "pdf render failed"})
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="invoice-%d.pdf"`, inv.Booking.ID))
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}
