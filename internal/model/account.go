package model

// Account roles as stored in the JWT "role" claim.
const (
	RoleCustomer = "CUSTOMER"
	RoleAdmin    = "ADMIN"
)

// Account mirrors a row of the `customers` or `admins` table; both share
// the same shape.  Passwords are bcrypt hashes.  The security answer is
// stored encrypted by the answer cipher and may be in either the legacy
// or the current wire format.
type Account struct {
	UserID         string `json:"user_id"` // chosen at registration (primary key)
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	RegisteredOn   string `json:"registered_on"` // DD-MM-YYYY, as the legacy system recorded it
	PasswordHash   string `json:"-"`
	ResetQuestion  int    `json:"-"` // security question number, 1-4
	ResetAnswerEnc string `json:"-"` // base64 blob, legacy or current cipher format
}

// FullName joins first and last name with a single space.
func (a Account) FullName() string { return a.FirstName + " " + a.LastName }

// LoginRecord is an audit row written on every successful sign-in.
type LoginRecord struct {
	ID     uint64 `json:"id"`
	Role   string `json:"role"` // "Customer" or "Admin"
	UserID string `json:"user_id"`
	Date   string `json:"date"` // YYYY-MM-DD
	Time   string `json:"time"` // HH:MM:SS
}

// Feedback is a customer service-quality report.
type Feedback struct {
	ID       uint64 `json:"id"`
	UserID   string `json:"user_id"`
	Name     string `json:"name"` // customer full name snapshot
	Email    string `json:"email"`
	Rating   string `json:"rating"` // Excellent / Good / Neutral / Poor
	Comments string `json:"comments"`
	Date     string `json:"date"` // YYYY-MM-DD
}
