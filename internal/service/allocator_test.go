package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/nashcab/car-rental-service/internal/model"
	"github.com/nashcab/car-rental-service/internal/rental"
	"github.com/nashcab/car-rental-service/internal/repository"
)

func newAllocator(t *testing.T) (*Allocator, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewAllocator(db, repository.NewCarRepo(db), repository.NewDriverRepo(db),
		repository.NewBookingRepo(db), repository.NewCustomerRepo(db)), mock
}

var carRows = []string{"id", "model", "registration", "seating", "cab_type", "price_per_km", "status"}
var driverRows = []string{"id", "first_name", "last_name", "phone", "license", "age", "status"}
var accountRows = []string{"user_id", "first_name", "last_name", "email", "phone",
	"registered_on", "password_hash", "reset_question", "reset_answer"}

func expectCustomerLookup(mock sqlmock.Sqlmock, userID string) {
	mock.ExpectQuery("SELECT (.+) FROM customers WHERE user_id=\\?").
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows(accountRows).
			AddRow(userID, "Ravi", "Kulkarni", "ravi@example.com", "9876543210",
				"01-03-2024", "$2a$10$hash", 2, "enc"))
}

func sedanReq() BookingRequest {
	return BookingRequest{
		CustomerID: "ravi_k",
		CabType:    model.CabSedan,
		StartDate:  "2026-09-10",
		EndDate:    "2026-09-12",
		PickupTime: "08:30",
		Pickup:     "College Road, Nashik",
		Dropoff:    "Dadar, Mumbai",
		Route:      "Nashik-Mumbai",
	}
}

func TestAllocateAssignsLowestIDPair(t *testing.T) {
	svc, mock := newAllocator(t)

	expectCustomerLookup(mock, "ravi_k")
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM cars WHERE cab_type=\\? AND status=\\? ORDER BY id ASC LIMIT 1 FOR UPDATE").
		WithArgs(model.CabSedan, model.CarAvailable).
		WillReturnRows(sqlmock.NewRows(carRows).
			AddRow("MH15-A1", "Swift Dzire", "MH-15-AB-1234", 4, int(model.CabSedan), 15, "Available"))
	mock.ExpectQuery("SELECT (.+) FROM drivers WHERE status=\\? ORDER BY id ASC LIMIT 1 FOR UPDATE").
		WithArgs(model.DriverAvailable).
		WillReturnRows(sqlmock.NewRows(driverRows).
			AddRow(3, "Sunil", "Pawar", "9123456780", "MH15-2019000123", 35, "Available"))
	mock.ExpectExec("UPDATE cars SET status=\\?").
		WithArgs(model.CarBooked, "MH15-A1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE drivers SET status=\\?").
		WithArgs(model.DriverBooked, uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectCommit()

	result, err := svc.Allocate(context.Background(), sedanReq())
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}
	if result.Booking.ID != 7 {
		t.Errorf("booking id = %d, want 7", result.Booking.ID)
	}
	if result.Car.ID != "MH15-A1" || result.Driver.ID != 3 {
		t.Errorf("assigned %s/%d, want MH15-A1/3", result.Car.ID, result.Driver.ID)
	}
	if result.Car.Status != model.CarBooked || result.Driver.Status != model.DriverBooked {
		t.Error("returned pair must reflect the Booked status")
	}
	if result.Booking.CabType != "Sedan" || result.Booking.Route != "Nashik-Mumbai" {
		t.Errorf("booking stored %q/%q", result.Booking.CabType, result.Booking.Route)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAllocateUnknownCustomer(t *testing.T) {
	svc, mock := newAllocator(t)

	mock.ExpectQuery("SELECT (.+) FROM customers WHERE user_id=\\?").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(accountRows))

	req := sedanReq()
	req.CustomerID = "ghost"
	_, err := svc.Allocate(context.Background(), req)
	if !rental.IsNotFound(err) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAllocateNoCarRollsBack(t *testing.T) {
	svc, mock := newAllocator(t)

	expectCustomerLookup(mock, "ravi_k")
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM cars WHERE cab_type=\\?").
		WillReturnRows(sqlmock.NewRows(carRows))
	mock.ExpectRollback()

	_, err := svc.Allocate(context.Background(), sedanReq())
	if !errors.Is(err, rental.ErrNoCarsAvailable) {
		t.Fatalf("err = %v, want ErrNoCarsAvailable", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAllocateNoDriverReleasesCar(t *testing.T) {
	svc, mock := newAllocator(t)

	// The vehicle row is locked but never flipped; rollback releases it.
	expectCustomerLookup(mock, "ravi_k")
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM cars WHERE cab_type=\\?").
		WillReturnRows(sqlmock.NewRows(carRows).
			AddRow("MH15-A1", "Swift Dzire", "MH-15-AB-1234", 4, int(model.CabSedan), 15, "Available"))
	mock.ExpectQuery("SELECT (.+) FROM drivers WHERE status=\\?").
		WillReturnRows(sqlmock.NewRows(driverRows))
	mock.ExpectRollback()

	_, err := svc.Allocate(context.Background(), sedanReq())
	if !errors.Is(err, rental.ErrNoDriversAvailable) {
		t.Fatalf("err = %v, want ErrNoDriversAvailable", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAllocateContentionYieldsSingleBooking(t *testing.T) {
	svc, mock := newAllocator(t)

	// Two requests compete for one Available sedan.  Row locks serialize
	// them, so the ordered expectations model the loser running only
	// after the winner commits: it sees an empty pool, touches nothing
	// and rolls back.  One car means exactly one booking.
	expectCustomerLookup(mock, "ravi_k")
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM cars WHERE cab_type=\\? AND status=\\? ORDER BY id ASC LIMIT 1 FOR UPDATE").
		WillReturnRows(sqlmock.NewRows(carRows).
			AddRow("MH15-A1", "Swift Dzire", "MH-15-AB-1234", 4, int(model.CabSedan), 15, "Available"))
	mock.ExpectQuery("SELECT (.+) FROM drivers WHERE status=\\? ORDER BY id ASC LIMIT 1 FOR UPDATE").
		WillReturnRows(sqlmock.NewRows(driverRows).
			AddRow(3, "Sunil", "Pawar", "9123456780", "MH15-2019000123", 35, "Available"))
	mock.ExpectExec("UPDATE cars SET status=\\?").
		WithArgs(model.CarBooked, "MH15-A1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE drivers SET status=\\?").
		WithArgs(model.DriverBooked, uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectCommit()

	expectCustomerLookup(mock, "sneha_p")
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM cars WHERE cab_type=\\? AND status=\\? ORDER BY id ASC LIMIT 1 FOR UPDATE").
		WillReturnRows(sqlmock.NewRows(carRows))
	mock.ExpectRollback()

	winner, err := svc.Allocate(context.Background(), sedanReq())
	if err != nil {
		t.Fatalf("first allocate: %v", err)
	}
	if winner.Booking.ID != 7 || winner.Car.ID != "MH15-A1" {
		t.Errorf("winner got booking %d car %s", winner.Booking.ID, winner.Car.ID)
	}

	loserReq := sedanReq()
	loserReq.CustomerID = "sneha_p"
	if _, err := svc.Allocate(context.Background(), loserReq); !errors.Is(err, rental.ErrNoCarsAvailable) {
		t.Fatalf("second allocate err = %v, want ErrNoCarsAvailable", err)
	}

	// The ordered mock proves both selects and both status flips of the
	// winning request ran inside its own Begin/Commit window, and that
	// the losing request issued no writes at all.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAllocateInsertFailureRollsBackEverything(t *testing.T) {
	svc, mock := newAllocator(t)

	expectCustomerLookup(mock, "ravi_k")
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM cars WHERE cab_type=\\?").
		WillReturnRows(sqlmock.NewRows(carRows).
			AddRow("MH15-A1", "Swift Dzire", "MH-15-AB-1234", 4, int(model.CabSedan), 15, "Available"))
	mock.ExpectQuery("SELECT (.+) FROM drivers WHERE status=\\?").
		WillReturnRows(sqlmock.NewRows(driverRows).
			AddRow(3, "Sunil", "Pawar", "9123456780", "MH15-2019000123", 35, "Available"))
	mock.ExpectExec("UPDATE cars SET status=\\?").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE drivers SET status=\\?").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	if _, err := svc.Allocate(context.Background(), sedanReq()); err == nil {
		t.Fatal("want error when booking insert fails")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestReleaseRestoresAvailability(t *testing.T) {
	svc, mock := newAllocator(t)

	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id=\\?").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "customer_id", "cab_type", "start_date", "end_date", "pickup_time",
			"pickup_location", "dropoff_location", "driver_id", "car_id", "route", "created_at",
		}).AddRow(7, "ravi_k", "Sedan", "2026-09-10", "2026-09-12", "08:30",
			"College Road, Nashik", "Dadar, Mumbai", 3, "MH15-A1", "Nashik-Mumbai", time.Now()))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE cars SET status=\\?").
		WithArgs(model.CarAvailable, "MH15-A1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE drivers SET status=\\?").
		WithArgs(model.DriverAvailable, uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := svc.Release(context.Background(), 7); err != nil {
		t.Fatalf("release: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestReleaseUnknownBooking(t *testing.T) {
	svc, mock := newAllocator(t)

	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id=\\?").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	err := svc.Release(context.Background(), 99)
	if !rental.IsNotFound(err) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}
