// Package form validates the request payloads of the public API.  Each
// form type mirrors one submission surface and returns the full list of
// problems at once so a client can show every broken field in one round
// trip.
package form

import (
	"regexp"
	"strings"
	"time"

	"github.com/nashcab/car-rental-service/internal/rental"
)

var (
	reUserID   = regexp.MustCompile(`^[A-Za-z0-9_]{4,32}$`)
	reName     = regexp.MustCompile(`^[A-Za-z]+$`)
	rePhone    = regexp.MustCompile(`^[0-9]{10}$`)
	reEmail    = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reCarID    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,16}$`)
	reModel    = regexp.MustCompile(`^[A-Za-z0-9 ]{2,50}$`)
	reCarReg   = regexp.MustCompile(`^[A-Za-z0-9-]{4,20}$`)
	reLicense  = regexp.MustCompile(`^[A-Za-z0-9-]{5,20}$`)
	reTime     = regexp.MustCompile(`^(?:[01]\d|2[0-3]):[0-5]\d$`)
	reLocation = regexp.MustCompile(`^[A-Za-z0-9 ,.-]{2,100}$`)
	reCardName = regexp.MustCompile(`^[A-Za-z ]{2,50}$`)
	reCardNum  = regexp.MustCompile(`^(?:\d{16}|\d{4}-\d{4}-\d{4}-\d{4})$`)
)

const dateLayout = "2006-01-02"

// validPassword enforces the account password policy: 8 to 64 characters
// with at least one upper, one lower, one digit and one special character.
func validPassword(p string) bool {
	if len(p) < 8 || len(p) > 64 {
		return false
	}
	var upper, lower, digit, special bool
	for _, r := range p {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			special = true
		}
	}
	return upper && lower && digit && special
}

func parseDate(s string) (time.Time, bool) {
	t, err := time.Parse(dateLayout, s)
	return t, err == nil
}

func finish(msgs []string) error {
	if len(msgs) == 0 {
		return nil
	}
	return rental.ValidationError{Messages: msgs}
}

// Registration is the customer sign-up payload.
type Registration struct {
	UserID    string `json:"user_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
	Question  int    `json:"security_question"`
	Answer    string `json:"security_answer"`
}

func (f *Registration) Validate() error {
	var msgs []string
	if !reUserID.MatchString(f.UserID) {
		msgs = append(msgs, "user id must be 4-32 letters, digits or underscores")
	}
	if !reName.MatchString(f.FirstName) {
		msgs = append(msgs, "first name must contain letters only")
	}
	if !reName.MatchString(f.LastName) {
		msgs = append(msgs, "last name must contain letters only")
	}
	if !reEmail.MatchString(f.Email) {
		msgs = append(msgs, "invalid email address")
	}
	if !rePhone.MatchString(f.Phone) {
		msgs = append(msgs, "phone must be exactly 10 digits")
	}
	if !validPassword(f.Password) {
		msgs = append(msgs, "password must be 8-64 characters with upper, lower, digit and special characters")
	}
	if !rental.SecurityQuestionValid(f.Question) {
		msgs = append(msgs, "unknown security question")
	}
	if f.Answer == "" || len(f.Answer) > 64 {
		msgs = append(msgs, "security answer must be 1-64 characters")
	}
	return finish(msgs)
}

// Login covers both customer and admin sign-in.
type Login struct {
	UserID   string `json:"user_id"`
	Password string `json:"password"`
}

func (f *Login) Validate() error {
	var msgs []string
	if !reUserID.MatchString(f.UserID) {
		msgs = append(msgs, "user id must be 4-32 letters, digits or underscores")
	}
	if f.Password == "" {
		msgs = append(msgs, "password required")
	}
	return finish(msgs)
}

// PasswordReset carries the security-answer challenge response.
type PasswordReset struct {
	UserID      string `json:"user_id"`
	Question    int    `json:"security_question"`
	Answer      string `json:"security_answer"`
	NewPassword string `json:"new_password"`
}

func (f *PasswordReset) Validate() error {
	var msgs []string
	if !reUserID.MatchString(f.UserID) {
		msgs = append(msgs, "user id must be 4-32 letters, digits or underscores")
	}
	if !rental.SecurityQuestionValid(f.Question) {
		msgs = append(msgs, "unknown security question")
	}
	if f.Answer == "" || len(f.Answer) > 64 {
		msgs = append(msgs, "security answer must be 1-64 characters")
	}
	if !validPassword(f.NewPassword) {
		msgs = append(msgs, "password must be 8-64 characters with upper, lower, digit and special characters")
	}
	return finish(msgs)
}

// Booking is the reservation request as submitted by the booking form.
// CabType and Route are form indexes, not canonical values; the handler
// maps them through the rental package once validation passes.
type Booking struct {
	CabType    int    `json:"cab_type"`
	Route      int    `json:"route"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	PickupTime string `json:"pickup_time"`
	Pickup     string `json:"pickup_location"`
	Dropoff    string `json:"dropoff_location"`
}

func (f *Booking) Validate() error {
	var msgs []string
	if _, ok := rental.CabTypeFromBookingForm(f.CabType); !ok {
		msgs = append(msgs, "unknown cab type")
	}
	if _, ok := rental.RouteFromIndex(f.Route); !ok {
		msgs = append(msgs, "unknown route")
	}
	start, okStart := parseDate(f.StartDate)
	if !okStart {
		msgs = append(msgs, "start date must be YYYY-MM-DD")
	}
	end, okEnd := parseDate(f.EndDate)
	if !okEnd {
		msgs = append(msgs, "end date must be YYYY-MM-DD")
	}
	if okStart && okEnd && end.Before(start) {
		msgs = append(msgs, "end date must not precede start date")
	}
	if !reTime.MatchString(f.PickupTime) {
		msgs = append(msgs, "pickup time must be HH:MM")
	}
	if !reLocation.MatchString(f.Pickup) {
		msgs = append(msgs, "invalid pickup location")
	}
	if !reLocation.MatchString(f.Dropoff) {
		msgs = append(msgs, "invalid dropoff location")
	}
	return finish(msgs)
}

// Car is the fleet-admin payload for adding a vehicle.
type Car struct {
	ID           string `json:"id"`
	Model        string `json:"model"`
	Registration string `json:"registration"`
	Seating      int    `json:"seating"`
	CabType      int    `json:"cab_type"`
	PricePerKm   int    `json:"price_per_km"`
}

func (f *Car) Validate() error {
	var msgs []string
	if !reCarID.MatchString(f.ID) {
		msgs = append(msgs, "car id must be 1-16 letters, digits, dashes or underscores")
	}
	if !reModel.MatchString(f.Model) {
		msgs = append(msgs, "model must be 2-50 letters, digits or spaces")
	}
	if !reCarReg.MatchString(f.Registration) {
		msgs = append(msgs, "registration must be 4-20 letters, digits or dashes")
	}
	if f.Seating < 2 || f.Seating > 6 {
		msgs = append(msgs, "seating must be between 2 and 6")
	}
	if _, ok := rental.CabTypeFromFleetForm(f.CabType); !ok {
		msgs = append(msgs, "unknown cab type")
	}
	if f.PricePerKm < 1 || f.PricePerKm > 1000 {
		msgs = append(msgs, "price per km must be between 1 and 1000")
	}
	return finish(msgs)
}

// Driver is the fleet-admin payload for adding a driver.
type Driver struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	License   string `json:"license"`
	Age       int    `json:"age"`
}

func (f *Driver) Validate() error {
	var msgs []string
	if !reName.MatchString(f.FirstName) {
		msgs = append(msgs, "first name must contain letters only")
	}
	if !reName.MatchString(f.LastName) {
		msgs = append(msgs, "last name must contain letters only")
	}
	if !rePhone.MatchString(f.Phone) {
		msgs = append(msgs, "phone must be exactly 10 digits")
	}
	if !reLicense.MatchString(f.License) {
		msgs = append(msgs, "license must be 5-20 letters, digits or dashes")
	}
	if f.Age < 18 || f.Age > 70 {
		msgs = append(msgs, "driver age must be between 18 and 70")
	}
	return finish(msgs)
}

// CardPayment is the card checkout payload.  The card number is accepted
// with or without dash separators and never stored.
type CardPayment struct {
	Number     string `json:"card_number"`
	NameOnCard string `json:"name_on_card"`
}

func (f *CardPayment) Validate() error {
	var msgs []string
	if !reCardNum.MatchString(f.Number) {
		msgs = append(msgs, "card number must be 16 digits")
	}
	if !reCardName.MatchString(f.NameOnCard) {
		msgs = append(msgs, "name on card must be 2-50 letters and spaces")
	}
	return finish(msgs)
}

// NetBanking is the net-banking checkout payload.  Paid reports whether
// the transfer already completed; the original radio encoded 0 as paid
// and 1 as not paid.
type NetBanking struct {
	Flag int `json:"paid_flag"`
}

func (f *NetBanking) Validate() error {
	if f.Flag != 0 && f.Flag != 1 {
		return finish([]string{"paid flag must be 0 or 1"})
	}
	return nil
}

// Paid reports the payment status the flag encodes.
func (f *NetBanking) Paid() bool { return f.Flag == 0 }

// Feedback is the customer feedback payload.
type Feedback struct {
	Rating   string `json:"rating"`
	Comments string `json:"comments"`
}

func (f *Feedback) Validate() error {
	var msgs []string
	valid := false
	for _, r := range rental.FeedbackRatings {
		if f.Rating == r {
			valid = true
			break
		}
	}
	if !valid {
		msgs = append(msgs, "rating must be one of "+strings.Join(rental.FeedbackRatings, ", "))
	}
	if len(f.Comments) > 500 {
		msgs = append(msgs, "comments must be at most 500 characters")
	}
	return finish(msgs)
}
