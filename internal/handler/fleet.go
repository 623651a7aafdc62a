package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nashcab/car-rental-service/internal/form"
	"github.com/nashcab/car-rental-service/internal/model"
	"github.com/nashcab/car-rental-service/internal/rental"
	"github.com/nashcab/car-rental-service/internal/repository"
	"github.com/nashcab/car-rental-service/internal/service"
)

// FleetHandler covers the admin roster endpoints for vehicles and
// drivers.
type FleetHandler struct {
	Fleet   *service.Fleet
	Cars    *repository.CarRepo
	Drivers *repository.DriverRepo
}

func NewFleetHandler(fleet *service.Fleet, cars *repository.CarRepo, drivers *repository.DriverRepo) *FleetHandler {
	return &FleetHandler{Fleet: fleet, Cars: cars, Drivers: drivers}
}

// AddCar registers a vehicle in the fleet.
func (h *FleetHandler) AddCar(c echo.Context) error {
	var req form.Car
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.Validate(); err != nil {
		return validationJSON(c, err)
	}
	cabType, _ := rental.CabTypeFromFleetForm(req.CabType)

	car := model.Car{
		ID:           req.ID,
		Model:        req.Model,
		Registration: req.Registration,
		Seating:      req.Seating,
		Type:         cabType,
		PricePerKm:   req.PricePerKm,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Fleet.AddCar(ctx, &car); err != nil {
		return domainJSON(c, err)
	}
	return c.JSON(http.StatusCreated, car)
}

// DeleteCar removes a vehicle from the roster.
func (h *FleetHandler) DeleteCar(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Fleet.DeleteCar(ctx, c.Param("id")); err != nil {
		return domainJSON(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListCars returns the whole fleet.
func (h *FleetHandler) ListCars(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cars, err := h.Cars.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lookup failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"cars": cars})
}

type statusReq struct {
	Status string `json:"status"`
}

// SetCarStatus overrides a vehicle's availability, for maintenance or
// manual correction.
func (h *FleetHandler) SetCarStatus(c echo.Context) error {
	var req statusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	status := model.CarStatus(req.Status)
	if status != model.CarAvailable && status != model.CarBooked {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be Available or Booked"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Fleet.SetCarStatus(ctx, c.Param("id"), status); err != nil {
		return domainJSON(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "status updated"})
}

// AddDriver registers a driver on the roster.
func (h *FleetHandler) AddDriver(c echo.Context) error {
	var req form.Driver
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.Validate(); err != nil {
		return validationJSON(c, err)
	}

	driver := model.Driver{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		License:   req.License,
		Age:       req.Age,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Fleet.AddDriver(ctx, &driver); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, driver)
}

// DeleteDriver removes a driver and their bookings.
func (h *FleetHandler) DeleteDriver(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid driver id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Fleet.DeleteDriver(ctx, id); err != nil {
		return domainJSON(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListDrivers returns the driver roster.
func (h *FleetHandler) ListDrivers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	drivers, err := h.Drivers.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lookup failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"drivers": drivers})
}

// SetDriverStatus overrides a driver's availability.
func (h *FleetHandler) SetDriverStatus(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid driver id"})
	}
	var req statusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	status := model.DriverStatus(req.Status)
	if status != model.DriverAvailable && status != model.DriverBooked {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be Available or Booked"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Fleet.SetDriverStatus(ctx, id, status); err != nil {
		return domainJSON(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "status updated"})
}
