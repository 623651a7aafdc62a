package model

// CarStatus enumerates the two states a fleet vehicle can be in.  A car
// is Available until the allocator binds it to a booking, after which it
// stays Booked until an administrator overrides the status.
type CarStatus string

const (
	CarAvailable CarStatus = "Available"
	CarBooked    CarStatus = "Booked"
)

// CabType is the canonical vehicle-category enumeration.  The numeric
// order (Sedan=0, Hatchback=1, SUV=2) matches the fleet-admin form that
// wrote every stored Car row; the booking form historically used a
// different order and is translated at that boundary.
type CabType int

const (
	CabSedan CabType = iota
	CabHatchback
	CabSUV
)

// String returns the display label for a cab category.
func (t CabType) String() string {
	switch t {
	case CabSedan:
		return "Sedan"
	case CabHatchback:
		return "Hatchback"
	case CabSUV:
		return "SUV"
	}
	return ""
}

// CabTypeFromLabel maps a stored label back to the canonical enum.  The
// boolean is false for unknown labels.
func CabTypeFromLabel(s string) (CabType, bool) {
	switch s {
	case "Sedan":
		return CabSedan, true
	case "Hatchback":
		return CabHatchback, true
	case "SUV":
		return CabSUV, true
	}
	return 0, false
}

// Car mirrors a row of the `cars` table.
//
// Fields:
//	ID         – fleet identifier chosen by the admin (≤16 chars, [A-Za-z0-9_-]).
//	Model      – human readable model name.
//	Registration – vehicle registration plate, unique.
//	Seating    – seating capacity (2–6).
//	Type       – cab category (Sedan/Hatchback/SUV).
//	PricePerKm – fare rate in whole rupees per kilometre (1–1000).
//	Status     – Available or Booked.
type Car struct {
	ID           string    `json:"id"`           // cars.id
	Model        string    `json:"model"`        // cars.model
	Registration string    `json:"registration"` // cars.registration
	Seating      int       `json:"seating"`      // cars.seating
	Type         CabType   `json:"cab_type"`     // cars.cab_type
	PricePerKm   int       `json:"price_per_km"` // cars.price_per_km
	Status       CarStatus `json:"status"`       // cars.status
}
