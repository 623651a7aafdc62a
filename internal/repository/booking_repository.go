package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/nashcab/car-rental-service/internal/model"
)

// BookingRepo provides access to the bookings table.
type BookingRepo struct{ DB *sql.DB }

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{DB: db} }

const bookingColumns = "id, customer_id, cab_type, start_date, end_date, pickup_time, pickup_location, dropoff_location, driver_id, car_id, route, created_at"

func scanBooking(row interface{ Scan(...any) error }) (model.Booking, error) {
	var b model.Booking
	err := row.Scan(&b.ID, &b.CustomerID, &b.CabType, &b.StartDate, &b.EndDate,
		&b.PickupTime, &b.PickupLocation, &b.DropoffLocation, &b.DriverID, &b.CarID, &b.Route, &b.CreatedAt)
	return b, err
}

// CreateTx inserts a booking inside the caller's transaction and
// populates the generated id and creation time.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	b.CreatedAt = time.Now().UTC().Truncate(time.Second)
	res, err := tx.ExecContext(ctx,
		`INSERT INTO bookings (customer_id, cab_type, start_date, end_date, pickup_time,
			pickup_location, dropoff_location, driver_id, car_id, route, created_at)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		b.CustomerID, b.CabType, b.StartDate, b.EndDate, b.PickupTime,
		b.PickupLocation, b.DropoffLocation, b.DriverID, b.CarID, b.Route, b.CreatedAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return nil
}

// LatestByContext returns the most recent booking for the given customer,
// vehicle and driver.  The checkout flow identifies the booking being
// paid for by this triple; the newest row wins when the same combination
// occurred before.
func (r *BookingRepo) LatestByContext(ctx context.Context, customerID, carID string, driverID uint64) (model.Booking, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE customer_id=? AND car_id=? AND driver_id=? ORDER BY id DESC LIMIT 1",
		customerID, carID, driverID)
	return scanBooking(row)
}

// GetByID fetches one booking.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (model.Booking, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE id=? LIMIT 1", id)
	return scanBooking(row)
}

// ListByCustomer returns a customer's bookings, newest first.
func (r *BookingRepo) ListByCustomer(ctx context.Context, customerID string) ([]model.Booking, error) {
	return r.list(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE customer_id=? ORDER BY id DESC", customerID)
}

// ListAll returns every booking, newest first.
func (r *BookingRepo) ListAll(ctx context.Context) ([]model.Booking, error) {
	return r.list(ctx, "SELECT "+bookingColumns+" FROM bookings ORDER BY id DESC")
}

func (r *BookingRepo) list(ctx context.Context, query string, args ...any) ([]model.Booking, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// DeleteByDriverTx removes every booking assigned to a driver inside the
// caller's transaction.  Used when a driver leaves the roster.
func (r *BookingRepo) DeleteByDriverTx(ctx context.Context, tx *sql.Tx, driverID uint64) (int64, error) {
	res, err := tx.ExecContext(ctx, "DELETE FROM bookings WHERE driver_id=?", driverID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Count returns the total number of bookings ever made.
func (r *BookingRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM bookings").Scan(&n)
	return n, err
}

// MostUsedRoute returns the route appearing on the most bookings.
// sql.ErrNoRows means there are no bookings yet.
func (r *BookingRepo) MostUsedRoute(ctx context.Context) (string, int, error) {
	var route string
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT route, COUNT(*) AS c FROM bookings GROUP BY route ORDER BY c DESC, route ASC LIMIT 1").
		Scan(&route, &n)
	return route, n, err
}
