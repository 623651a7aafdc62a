package service

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/nashcab/car-rental-service/internal/repository"
)

func newStats(t *testing.T) (*Stats, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewStats(
		repository.NewCustomerRepo(db),
		repository.NewCarRepo(db),
		repository.NewDriverRepo(db),
		repository.NewBookingRepo(db),
		repository.NewPaymentRepo(db),
	), mock
}

func countRow(n int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(n)
}

func TestOverview(t *testing.T) {
	svc, mock := newStats(t)
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM customers").WillReturnRows(countRow(12))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM cars").WillReturnRows(countRow(5))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM drivers").WillReturnRows(countRow(4))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM bookings").WillReturnRows(countRow(20))
	mock.ExpectQuery("SELECT route, COUNT\\(\\*\\)").
		WillReturnRows(sqlmock.NewRows([]string{"route", "c"}).AddRow("Nashik-Mumbai", 9))
	mock.ExpectQuery("SELECT SUM\\(total_amount\\) FROM payments").
		WillReturnRows(sqlmock.NewRows([]string{"SUM(total_amount)"}).AddRow(41250))

	sum, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if sum.Customers != 12 || sum.Cars != 5 || sum.Drivers != 4 || sum.Bookings != 20 {
		t.Errorf("counts = %+v", sum)
	}
	if sum.MostUsedRoute != "Nashik-Mumbai" || sum.RouteBookings != 9 {
		t.Errorf("route = %q (%d)", sum.MostUsedRoute, sum.RouteBookings)
	}
	if sum.RevenueSettled != 41250 {
		t.Errorf("revenue = %d, want 41250", sum.RevenueSettled)
	}
}

func TestOverviewNoBookingsYet(t *testing.T) {
	svc, mock := newStats(t)
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM customers").WillReturnRows(countRow(1))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM cars").WillReturnRows(countRow(0))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM drivers").WillReturnRows(countRow(0))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM bookings").WillReturnRows(countRow(0))
	mock.ExpectQuery("SELECT route, COUNT\\(\\*\\)").
		WillReturnRows(sqlmock.NewRows([]string{"route", "c"}))
	// SUM over zero rows is NULL.
	mock.ExpectQuery("SELECT SUM\\(total_amount\\) FROM payments").
		WillReturnRows(sqlmock.NewRows([]string{"SUM(total_amount)"}).AddRow(nil))

	sum, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if sum.MostUsedRoute != "" || sum.RevenueSettled != 0 {
		t.Errorf("empty-state summary = %+v", sum)
	}
}
