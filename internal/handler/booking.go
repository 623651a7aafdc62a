package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nashcab/car-rental-service/internal/form"
	"github.com/nashcab/car-rental-service/internal/middleware"
	"github.com/nashcab/car-rental-service/internal/rental"
	"github.com/nashcab/car-rental-service/internal/repository"
	"github.com/nashcab/car-rental-service/internal/service"
)

// BookingHandler exposes the reservation flow.
type BookingHandler struct {
	Allocator *service.Allocator
	Bookings  *repository.BookingRepo
}

func NewBookingHandler(allocator *service.Allocator, bookings *repository.BookingRepo) *BookingHandler {
	return &BookingHandler{Allocator: allocator, Bookings: bookings}
}

// Create books a cab for the signed-in customer.  A fully booked fleet
// is reported as a conflict, not a server fault.
func (h *BookingHandler) Create(c echo.Context) error {
	var req form.Booking
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.Validate(); err != nil {
		return validationJSON(c, err)
	}

	cabType, _ := rental.CabTypeFromBookingForm(req.CabType)
	route, _ := rental.RouteFromIndex(req.Route)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	result, err := h.Allocator.Allocate(ctx, service.BookingRequest{
		CustomerID: middleware.UserID(c),
		CabType:    cabType,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		PickupTime: req.PickupTime,
		Pickup:     req.Pickup,
		Dropoff:    req.Dropoff,
		Route:      route,
	})
	if err != nil {
		return domainJSON(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"booking": result.Booking,
		"car":     result.Car,
		"driver":  result.Driver,
	})
}

// MyBookings lists the signed-in customer's bookings.
func (h *BookingHandler) MyBookings(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	bookings, err := h.Bookings.ListByCustomer(ctx, middleware.UserID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lookup failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": bookings})
}

// ListAll lists every booking for the admin dashboard.
func (h *BookingHandler) ListAll(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	bookings, err := h.Bookings.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lookup failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": bookings})
}

// Release returns a booking's vehicle and driver to the pool once the
// trip is over.  Admin only.
func (h *BookingHandler) Release(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Allocator.Release(ctx, id); err != nil {
		return domainJSON(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "vehicle and driver released"})
}
