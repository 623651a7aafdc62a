package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/nashcab/car-rental-service/internal/model"
	"github.com/nashcab/car-rental-service/internal/notifier"
	"github.com/nashcab/car-rental-service/internal/queue"
	"github.com/nashcab/car-rental-service/internal/rental"
	"github.com/nashcab/car-rental-service/internal/repository"
)

// Invoices assembles the full trip record for a settled booking.
type Invoices struct {
	Bookings  *repository.BookingRepo
	Payments  *repository.PaymentRepo
	Cars      *repository.CarRepo
	Drivers   *repository.DriverRepo
	Customers *repository.AccountRepo

	// Notify sends the booking confirmation after a successful
	// assembly.  Failures are logged, never surfaced to the caller.
	Notify func(ctx context.Context, ev queue.BookingConfirmedEvent) error
}

func NewInvoices(bookings *repository.BookingRepo, payments *repository.PaymentRepo, cars *repository.CarRepo, drivers *repository.DriverRepo, customers *repository.AccountRepo) *Invoices {
	return &Invoices{
		Bookings:  bookings,
		Payments:  payments,
		Cars:      cars,
		Drivers:   drivers,
		Customers: customers,
		Notify:    notifier.PublishBookingConfirmed,
	}
}

// Invoice is the assembled trip record shown to the customer after
// payment.
type Invoice struct {
	Booking      model.Booking `json:"booking"`
	Payment      model.Payment `json:"payment"`
	CustomerName string        `json:"customer_name"`
	DriverName   string        `json:"driver_name"`
	DriverPhone  string        `json:"driver_phone"`
	CarModel     string        `json:"car_model"`
	Registration string        `json:"car_registration"`
	DistanceKm   int           `json:"distance_km"`
	PricePerKm   int           `json:"price_per_km"`
}

// Assemble joins the booking with its payment, customer, vehicle and
// driver.  An unknown booking id is a NotFoundError; any missing joined
// record surfaces as IncompleteRecordError rather than a partial
// invoice.  On success the booking confirmation goes out best effort.
func (s *Invoices) Assemble(ctx context.Context, bookingID uint64) (Invoice, error) {
	booking, err := s.Bookings.GetByID(ctx, bookingID)
	if errors.Is(err, sql.ErrNoRows) {
		return Invoice{}, rental.NotFoundError{Entity: "booking", Err: err}
	}
	if err != nil {
		return Invoice{}, err
	}

	payment, err := s.Payments.GetByBookingID(ctx, bookingID)
	if errors.Is(err, sql.ErrNoRows) {
		return Invoice{}, rental.IncompleteRecordError{Entity: "payment"}
	}
	if err != nil {
		return Invoice{}, err
	}

	customer, err := s.Customers.GetByID(ctx, booking.CustomerID)
	if errors.Is(err, sql.ErrNoRows) {
		return Invoice{}, rental.IncompleteRecordError{Entity: "customer"}
	}
	if err != nil {
		return Invoice{}, err
	}

	car, err := s.Cars.GetByID(ctx, booking.CarID)
	if errors.Is(err, sql.ErrNoRows) {
		return Invoice{}, rental.IncompleteRecordError{Entity: "car"}
	}
	if err != nil {
		return Invoice{}, err
	}

	driver, err := s.Drivers.GetByID(ctx, booking.DriverID)
	if errors.Is(err, sql.ErrNoRows) {
		return Invoice{}, rental.IncompleteRecordError{Entity: "driver"}
	}
	if err != nil {
		return Invoice{}, err
	}

	km, ok := rental.DistanceKm(booking.Route)
	if !ok {
		return Invoice{}, rental.IncompleteRecordError{Entity: "route"}
	}

	inv := Invoice{
		Booking:      booking,
		Payment:      payment,
		CustomerName: customer.FullName(),
		DriverName:   driver.FullName(),
		DriverPhone:  driver.Phone,
		CarModel:     car.Model,
		Registration: car.Registration,
		DistanceKm:   km,
		PricePerKm:   car.PricePerKm,
	}

	if s.Notify != nil {
		if err := s.Notify(ctx, queue.BookingConfirmedEvent{
			BookingID:     booking.ID,
			CustomerID:    booking.CustomerID,
			CustomerEmail: customer.Email,
			Route:         booking.Route,
			CabType:       booking.CabType,
			CarID:         car.ID,
			CarModel:      car.Model,
			DriverName:    driver.FullName(),
			DriverPhone:   driver.Phone,
			StartDate:     booking.StartDate,
			EndDate:       booking.EndDate,
			PickupTime:    booking.PickupTime,
			ConfirmedAt:   time.Now().UTC().Format(time.RFC3339),
		}); err != nil {
			log.Printf("invoice: booking confirmation failed for %d: %v", booking.ID, err)
		}
	}

	return inv, nil
}

// RenderPDF produces the printable invoice.
func (s *Invoices) RenderPDF(inv Invoice) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 12, "NashCab Trip Invoice")
	pdf.Ln(16)

	pdf.SetFont("Arial", "", 11)
	line := func(label, value string) {
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(55, 8, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(0, 8, value, "", 1, "L", false, 0, "")
	}

	line("Invoice Reference", inv.Payment.Reference)
	line("Booking ID", fmt.Sprintf("%d", inv.Booking.ID))
	line("Customer", inv.CustomerName)
	line("Route", inv.Booking.Route)
	line("Travel Dates", inv.Booking.StartDate+" to "+inv.Booking.EndDate)
	line("Pickup", inv.Booking.PickupLocation+" at "+inv.Booking.PickupTime)
	line("Dropoff", inv.Booking.DropoffLocation)
	line("Vehicle", fmt.Sprintf("%s (%s, %s)", inv.CarModel, inv.Booking.CabType, inv.Registration))
	line("Driver", fmt.Sprintf("%s, %s", inv.DriverName, inv.DriverPhone))
	line("Distance", fmt.Sprintf("%d km", inv.DistanceKm))
	line("Rate", fmt.Sprintf("Rs. %d per km", inv.PricePerKm))
	line("Payment Mode", string(inv.Payment.Type))
	line("Payment Status", string(inv.Payment.Status))

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(55, 10, "Total", "T", 0, "L", false, 0, "")
	pdf.CellFormat(0, 10, fmt.Sprintf("Rs. %d", inv.Payment.TotalAmount), "T", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
