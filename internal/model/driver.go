package model

// DriverStatus mirrors CarStatus for chauffeurs.  Status transitions are
// the allocator's Available→Booked flip plus the administrative override.
type DriverStatus string

const (
	DriverAvailable DriverStatus = "Available"
	DriverBooked    DriverStatus = "Booked"
)

// Driver mirrors a row of the `drivers` table.
//
// Fields:
//	ID        – auto-increment primary key.
//	FirstName – letters only.
//	LastName  – letters only.
//	Phone     – exactly 10 digits.
//	License   – licence number, 5–20 alphanumerics/dashes.
//	Age       – 18–70.
//	Status    – Available or Booked.
type Driver struct {
	ID        uint64       `json:"id"`         // drivers.id
	FirstName string       `json:"first_name"` // drivers.first_name
	LastName  string       `json:"last_name"`  // drivers.last_name
	Phone     string       `json:"phone"`      // drivers.phone
	License   string       `json:"license"`    // drivers.license
	Age       int          `json:"age"`        // drivers.age
	Status    DriverStatus `json:"status"`     // drivers.status
}

// FullName joins first and last name with a single space, the format the
// invoice view presents.
func (d Driver) FullName() string { return d.FirstName + " " + d.LastName }
