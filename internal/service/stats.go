package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/nashcab/car-rental-service/internal/repository"
)

// Stats aggregates the admin dashboard numbers.
type Stats struct {
	Customers *repository.AccountRepo
	Cars      *repository.CarRepo
	Drivers   *repository.DriverRepo
	Bookings  *repository.BookingRepo
	Payments  *repository.PaymentRepo
}

func NewStats(customers *repository.AccountRepo, cars *repository.CarRepo, drivers *repository.DriverRepo, bookings *repository.BookingRepo, payments *repository.PaymentRepo) *Stats {
	return &Stats{Customers: customers, Cars: cars, Drivers: drivers, Bookings: bookings, Payments: payments}
}

// Summary is the dashboard snapshot.  MostUsedRoute is empty when no
// bookings exist yet.
type Summary struct {
	Customers      int    `json:"customers"`
	Cars           int    `json:"cars"`
	Drivers        int    `json:"drivers"`
	Bookings       int    `json:"bookings"`
	MostUsedRoute  string `json:"most_used_route,omitempty"`
	RouteBookings  int    `json:"route_bookings,omitempty"`
	RevenueSettled int64  `json:"revenue_settled"`
}

// Overview collects every dashboard figure in one call.
func (s *Stats) Overview(ctx context.Context) (Summary, error) {
	var sum Summary
	var err error

	if sum.Customers, err = s.Customers.Count(ctx); err != nil {
		return Summary{}, err
	}
	if sum.Cars, err = s.Cars.Count(ctx); err != nil {
		return Summary{}, err
	}
	if sum.Drivers, err = s.Drivers.Count(ctx); err != nil {
		return Summary{}, err
	}
	if sum.Bookings, err = s.Bookings.Count(ctx); err != nil {
		return Summary{}, err
	}

	route, n, err := s.Bookings.MostUsedRoute(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return Summary{}, err
	}
	if err == nil {
		sum.MostUsedRoute = route
		sum.RouteBookings = n
	}

	if sum.RevenueSettled, err = s.Payments.RevenueTotal(ctx); err != nil {
		return Summary{}, err
	}
	return sum, nil
}
