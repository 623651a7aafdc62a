package model

import "time"

// PaymentType enumerates the three accepted payment instruments.
type PaymentType string

const (
	PayCreditCard PaymentType = "Credit Card"
	PayDebitCard  PaymentType = "Debit Card"
	PayNetBanking PaymentType = "Net Banking"
)

// PaymentStatus is Paid for card payments; net-banking payments carry the
// status the caller reported.
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "Paid"
	PaymentNotPaid PaymentStatus = "Not Paid"
)

// Payment mirrors a row of the `payments` table.  The table carries a
// UNIQUE constraint on booking_id so a booking can never be charged
// twice; a second insert surfaces as a conflict.
//
// Fields:
//	ID          – auto-increment primary key.
//	BookingID   – booking being paid for (unique).
//	Reference   – opaque receipt reference handed to the customer.
//	Type        – Credit Card / Debit Card / Net Banking.
//	Status      – Paid or Not Paid.
//	TotalAmount – route distance × car price-per-km, fixed at creation.
//	CreatedAt   – insertion timestamp (UTC).
type Payment struct {
	ID          uint64        `json:"id"`           // payments.id
	BookingID   uint64        `json:"booking_id"`   // payments.booking_id
	Reference   string        `json:"reference"`    // payments.reference
	Type        PaymentType   `json:"type"`         // payments.pay_type
	Status      PaymentStatus `json:"status"`       // payments.status
	TotalAmount int           `json:"total_amount"` // payments.total_amount
	CreatedAt   time.Time     `json:"created_at"`   // payments.created_at
}
