package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/nashcab/car-rental-service/internal/model"
	"github.com/nashcab/car-rental-service/internal/rental"
	"github.com/nashcab/car-rental-service/internal/repository"
)

// Payments settles bookings.  A booking can be paid at most once; the
// database enforces that, this service only translates the violation.
type Payments struct {
	DB       *sql.DB
	Bookings *repository.BookingRepo
	Cars     *repository.CarRepo
	Payments *repository.PaymentRepo
}

func NewPayments(db *sql.DB, bookings *repository.BookingRepo, cars *repository.CarRepo, payments *repository.PaymentRepo) *Payments {
	return &Payments{DB: db, Bookings: bookings, Cars: cars, Payments: payments}
}

// PaymentRequest identifies the booking being settled by its context
// triple.  The checkout page carries the vehicle and driver it was
// rendered with, and the most recent booking for that combination is the
// one being paid.
type PaymentRequest struct {
	CustomerID string
	CarID      string
	DriverID   uint64
	Type       model.PaymentType
	// Settled matters only for net banking, where the transfer may
	// still be pending. Card payments always settle immediately.
	Settled bool
}

// Record computes the fare for the booking's fixed route and writes the
// payment row.  Returns rental.ErrBookingContextLost when no booking
// matches the triple and rental.ErrDuplicatePayment when the booking is
// already settled.
func (s *Payments) Record(ctx context.Context, req PaymentRequest) (model.Payment, error) {
	booking, err := s.Bookings.LatestByContext(ctx, req.CustomerID, req.CarID, req.DriverID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Payment{}, rental.ErrBookingContextLost
	}
	if err != nil {
		return model.Payment{}, err
	}

	car, err := s.Cars.GetByID(ctx, booking.CarID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Payment{}, rental.IncompleteRecordError{Entity: "car"}
	}
	if err != nil {
		return model.Payment{}, err
	}

	amount, ok := rental.Fare(booking.Route, car.PricePerKm)
	if !ok {
		return model.Payment{}, rental.IncompleteRecordError{Entity: "route"}
	}

	status := model.PaymentPaid
	if req.Type == model.PayNetBanking && !req.Settled {
		status = model.PaymentNotPaid
	}

	payment := model.Payment{
		BookingID:   booking.ID,
		Reference:   uuid.NewString(),
		Type:        req.Type,
		Status:      status,
		TotalAmount: amount,
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return model.Payment{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := s.Payments.CreateTx(ctx, tx, &payment); err != nil {
		return model.Payment{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Payment{}, err
	}
	committed = true
	return payment, nil
}
