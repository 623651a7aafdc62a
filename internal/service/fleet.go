package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/nashcab/car-rental-service/internal/model"
	"github.com/nashcab/car-rental-service/internal/rental"
	"github.com/nashcab/car-rental-service/internal/repository"
)

// Fleet covers the admin-side vehicle and driver roster operations.
type Fleet struct {
	DB       *sql.DB
	Cars     *repository.CarRepo
	Drivers  *repository.DriverRepo
	Bookings *repository.BookingRepo
}

func NewFleet(db *sql.DB, cars *repository.CarRepo, drivers *repository.DriverRepo, bookings *repository.BookingRepo) *Fleet {
	return &Fleet{DB: db, Cars: cars, Drivers: drivers, Bookings: bookings}
}

// AddCar registers a vehicle.  A duplicate id or registration plate is
// a conflict.
func (s *Fleet) AddCar(ctx context.Context, car *model.Car) error {
	err := s.Cars.Create(ctx, car)
	if errors.Is(err, repository.ErrCarIDExists) {
		return rental.ConflictError{Resource: "car", Msg: "car already exists"}
	}
	if err != nil {
		return err
	}
	car.Status = model.CarAvailable
	return nil
}

// DeleteCar removes a vehicle.  Bookings that reference it stay as
// history; only the roster entry goes.
func (s *Fleet) DeleteCar(ctx context.Context, id string) error {
	ok, err := s.Cars.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return rental.NotFoundError{Entity: "car"}
	}
	return nil
}

// AddDriver registers a driver.
func (s *Fleet) AddDriver(ctx context.Context, d *model.Driver) error {
	if err := s.Drivers.Create(ctx, d); err != nil {
		return err
	}
	d.Status = model.DriverAvailable
	return nil
}

// DeleteDriver removes a driver and every booking assigned to them in
// one transaction.  Vehicle deletion keeps booking history but driver
// deletion does not; the two roster exits behave differently on purpose.
func (s *Fleet) DeleteDriver(ctx context.Context, id uint64) error {
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

	if _, err := s.Bookings.DeleteByDriverTx(ctx, tx, id); err != nil {
		return err
	}
	ok, err := s.Drivers.DeleteTx(ctx, tx, id)
	if err != nil {
		return err
	}
	if !ok {
		return rental.NotFoundError{Entity: "driver"}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// SetCarStatus overrides a vehicle's availability.
func (s *Fleet) SetCarStatus(ctx context.Context, id string, status model.CarStatus) error {
	ok, err := s.Cars.UpdateStatus(ctx, id, status)
	if err != nil {
		return err
	}
	if !ok {
		return rental.NotFoundError{Entity: "car"}
	}
	return nil
}

// SetDriverStatus overrides a driver's availability.
func (s *Fleet) SetDriverStatus(ctx context.Context, id uint64, status model.DriverStatus) error {
	ok, err := s.Drivers.UpdateStatus(ctx, id, status)
	if err != nil {
		return err
	}
	if !ok {
		return rental.NotFoundError{Entity: "driver"}
	}
	return nil
}
