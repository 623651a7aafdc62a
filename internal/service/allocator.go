// Package service holds the transactional business flows of the rental
// service.  Repositories do single statements; services own the
// transaction boundaries around them.
package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/nashcab/car-rental-service/internal/model"
	"github.com/nashcab/car-rental-service/internal/rental"
	"github.com/nashcab/car-rental-service/internal/repository"
)

// Allocator assigns one vehicle and one driver to a booking atomically.
type Allocator struct {
	DB        *sql.DB
	Cars      *repository.CarRepo
	Drivers   *repository.DriverRepo
	Bookings  *repository.BookingRepo
	Customers *repository.AccountRepo
}

func NewAllocator(db *sql.DB, cars *repository.CarRepo, drivers *repository.DriverRepo, bookings *repository.BookingRepo, customers *repository.AccountRepo) *Allocator {
	return &Allocator{DB: db, Cars: cars, Drivers: drivers, Bookings: bookings, Customers: customers}
}

// BookingRequest is a validated reservation request with canonical
// values: CabType is the stored enum and Route the canonical route name.
type BookingRequest struct {
	CustomerID string
	CabType    model.CabType
	StartDate  string
	EndDate    string
	PickupTime string
	Pickup     string
	Dropoff    string
	Route      string
}

// BookingResult carries the created booking with the assigned vehicle
// and driver for the confirmation payload.
type BookingResult struct {
	Booking model.Booking
	Car     model.Car
	Driver  model.Driver
}

// Allocate claims the lowest-id Available vehicle of the requested type
// and the lowest-id Available driver, flips both to Booked and records
// the booking, all in one transaction.  Row locks on the selected rows
// serialize concurrent requests, so the same pair is never handed out
// twice.  On any failure the whole allocation rolls back; there is no
// state where a vehicle is claimed without a booking row.
func (s *Allocator) Allocate(ctx context.Context, req BookingRequest) (BookingResult, error) {
	if _, err := s.Customers.GetByID(ctx, req.CustomerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return BookingResult{}, rental.NotFoundError{Entity: "customer", Err: err}
		}
		return BookingResult{}, err
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return BookingResult{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	car, err := s.Cars.SelectAvailableForUpdateTx(ctx, tx, req.CabType)
	if errors.Is(err, sql.ErrNoRows) {
		return BookingResult{}, rental.ErrNoCarsAvailable
	}
	if err != nil {
		return BookingResult{}, err
	}

	driver, err := s.Drivers.SelectAvailableForUpdateTx(ctx, tx)
	if errors.Is(err, sql.ErrNoRows) {
		return BookingResult{}, rental.ErrNoDriversAvailable
	}
	if err != nil {
		return BookingResult{}, err
	}

	if err := s.Cars.UpdateStatusTx(ctx, tx, car.ID, model.CarBooked); err != nil {
		return BookingResult{}, err
	}
	if err := s.Drivers.UpdateStatusTx(ctx, tx, driver.ID, model.DriverBooked); err != nil {
		return BookingResult{}, err
	}

	booking := model.Booking{
		CustomerID:      req.CustomerID,
		CabType:         req.CabType.String(),
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		PickupTime:      req.PickupTime,
		PickupLocation:  req.Pickup,
		DropoffLocation: req.Dropoff,
		DriverID:        driver.ID,
		CarID:           car.ID,
		Route:           req.Route,
	}
	if err := s.Bookings.CreateTx(ctx, tx, &booking); err != nil {
		return BookingResult{}, err
	}

	if err := tx.Commit(); err != nil {
		return BookingResult{}, err
	}
	committed = true

	car.Status = model.CarBooked
	driver.Status = model.DriverBooked
	return BookingResult{Booking: booking, Car: car, Driver: driver}, nil
}

// Release returns a booking's vehicle and driver to the Available pool.
// The booking row itself stays as history.
func (s *Allocator) Release(ctx context.Context, bookingID uint64) error {
	booking, err := s.Bookings.GetByID(ctx, bookingID)
	if errors.Is(err, sql.ErrNoRows) {
		return rental.NotFoundError{Entity: "booking", Err: err}
	}
	if err != nil {
		return err
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := s.Cars.UpdateStatusTx(ctx, tx, booking.CarID, model.CarAvailable); err != nil {
		return err
	}
	if err := s.Drivers.UpdateStatusTx(ctx, tx, booking.DriverID, model.DriverAvailable); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
