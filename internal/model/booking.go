package model

import "time"

// Booking records the binding of one car and one driver to a customer
// trip.  Rows are immutable once inserted: there is no update or cancel
// path, only the driver-deletion cascade removes them.
//
// Fields:
//	ID             – auto-increment primary key, generated on insert.
//	CustomerID     – account that booked the trip.
//	CabType        – vehicle category requested (label, e.g. "SUV").
//	StartDate      – first day of the rental (YYYY-MM-DD).
//	EndDate        – last day of the rental (YYYY-MM-DD).
//	PickupTime     – 24-hour HH:MM pickup time.
//	PickupLocation – free-text pickup address.
//	DropoffLocation – free-text drop-off address.
//	DriverID       – driver bound by the allocator.
//	CarID          – car bound by the allocator.
//	Route          – one of the five fixed corridors (e.g. "Nashik-Pune").
//	CreatedAt      – insertion timestamp (UTC).
type Booking struct {
	ID              uint64    `json:"id"`               // bookings.id
	CustomerID      string    `json:"customer_id"`      // bookings.customer_id
	CabType         string    `json:"cab_type"`         // bookings.cab_type
	StartDate       string    `json:"start_date"`       // bookings.start_date
	EndDate         string    `json:"end_date"`         // bookings.end_date
	PickupTime      string    `json:"pickup_time"`      // bookings.pickup_time
	PickupLocation  string    `json:"pickup_location"`  // bookings.pickup_location
	DropoffLocation string    `json:"dropoff_location"` // bookings.dropoff_location
	DriverID        uint64    `json:"driver_id"`        // bookings.driver_id
	CarID           string    `json:"car_id"`           // bookings.car_id
	Route           string    `json:"route"`            // bookings.route
	CreatedAt       time.Time `json:"created_at"`       // bookings.created_at
}
