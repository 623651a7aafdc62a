// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedEvent is published when a vehicle and driver have been
// assigned to a booking.  It carries enough for downstream consumers to
// log or notify without querying the primary database.
type BookingConfirmedEvent struct {
	BookingID     uint64 `json:"booking_id"`
	CustomerID    string `json:"customer_id"`
	CustomerEmail string `json:"customer_email"`
	Route         string `json:"route"`
	CabType       string `json:"cab_type"`
	CarID         string `json:"car_id"`
	CarModel      string `json:"car_model"`
	DriverName    string `json:"driver_name"`
	DriverPhone   string `json:"driver_phone"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	PickupTime    string `json:"pickup_time"`
	ConfirmedAt   string `json:"confirmed_at"`
}

// CustomerRegisteredEvent is published after a successful sign-up so a
// welcome message can go out without blocking the request.
type CustomerRegisteredEvent struct {
	UserID       string `json:"user_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	RegisteredOn string `json:"registered_on"`
}
