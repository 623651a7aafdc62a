package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/nashcab/car-rental-service/internal/model"
	"github.com/nashcab/car-rental-service/internal/rental"
)

// PaymentRepo provides access to the payments table.
type PaymentRepo struct{ DB *sql.DB }

func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{DB: db} }

const paymentColumns = "id, booking_id, reference, pay_type, status, total_amount, created_at"

// CreateTx inserts a payment inside the caller's transaction.  The
// UNIQUE key on booking_id turns a second payment for the same booking
// into rental.ErrDuplicatePayment regardless of interleaving.
func (r *PaymentRepo) CreateTx(ctx context.Context, tx *sql.Tx, p *model.Payment) error {
	p.CreatedAt = time.Now().UTC().Truncate(time.Second)
	res, err := tx.ExecContext(ctx,
		"INSERT INTO payments (booking_id, reference, pay_type, status, total_amount, created_at) VALUES (?,?,?,?,?,?)",
		p.BookingID, p.Reference, p.Type, p.Status, p.TotalAmount, p.CreatedAt)
	if err != nil {
		if isDuplicateKey(err) {
			return rental.ErrDuplicatePayment
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

// GetByBookingID fetches the payment recorded for a booking.
func (r *PaymentRepo) GetByBookingID(ctx context.Context, bookingID uint64) (model.Payment, error) {
	var p model.Payment
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+paymentColumns+" FROM payments WHERE booking_id=? LIMIT 1", bookingID).
		Scan(&p.ID, &p.BookingID, &p.Reference, &p.Type, &p.Status, &p.TotalAmount, &p.CreatedAt)
	return p, err
}

// RevenueTotal sums the amounts of every settled payment.
func (r *PaymentRepo) RevenueTotal(ctx context.Context) (int64, error) {
	var total sql.NullInt64
	err := r.DB.QueryRowContext(ctx,
		"SELECT SUM(total_amount) FROM payments WHERE status=?", model.PaymentPaid).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total.Int64, nil
}
