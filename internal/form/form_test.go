package form

import (
	"errors"
	"strings"
	"testing"

	"github.com/nashcab/car-rental-service/internal/rental"
)

func validRegistration() Registration {
	return Registration{
		UserID:    "ravi_k",
		FirstName: "Ravi",
		LastName:  "Kulkarni",
		Email:     "ravi@example.com",
		Phone:     "9876543210",
		Password:  "Sunset@2024",
		Question:  2,
		Answer:    "pune",
	}
}

func TestRegistrationValid(t *testing.T) {
	f := validRegistration()
	if err := f.Validate(); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
}

func TestRegistrationCollectsAllProblems(t *testing.T) {
	f := Registration{UserID: "ab", FirstName: "R2", Phone: "12345", Password: "weak", Question: 9}
	err := f.Validate()
	var verr rental.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("want validation error, got %v", err)
	}
	if len(verr.Messages) < 6 {
		t.Fatalf("want every field reported, got %d: %v", len(verr.Messages), verr.Messages)
	}
}

func TestPasswordPolicy(t *testing.T) {
	cases := map[string]bool{
		"Sunset@2024":  true,
		"short1!A":     true,
		"alllower1!":   false, // no upper
		"ALLUPPER1!":   false, // no lower
		"NoDigits!!aB": false,
		"NoSpecial12a": false,
		"Ab1!":         false, // too short
	}
	for pw, want := range cases {
		if got := validPassword(pw); got != want {
			t.Errorf("validPassword(%q) = %v, want %v", pw, got, want)
		}
	}
	long := "Aa1!" + strings.Repeat("x", 61)
	if validPassword(long) {
		t.Error("accepted password over 64 characters")
	}
}

func TestBookingDates(t *testing.T) {
	f := Booking{
		CabType:    0,
		Route:      1,
		StartDate:  "2026-09-10",
		EndDate:    "2026-09-12",
		PickupTime: "08:30",
		Pickup:     "College Road, Nashik",
		Dropoff:    "Dadar, Mumbai",
	}
	if err := f.Validate(); err != nil {
		t.Fatalf("unexpected: %v", err)
	}

	f.EndDate = "2026-09-09"
	if err := f.Validate(); err == nil {
		t.Fatal("accepted end date before start date")
	}

	f.EndDate = f.StartDate // same-day rental is allowed
	if err := f.Validate(); err != nil {
		t.Fatalf("rejected same-day rental: %v", err)
	}

	f.PickupTime = "24:00"
	if err := f.Validate(); err == nil {
		t.Fatal("accepted pickup time 24:00")
	}
}

func TestCarBounds(t *testing.T) {
	f := Car{ID: "MH15-CAB-7", Model: "Swift Dzire", Registration: "MH-15-AB-1234", Seating: 4, CabType: 0, PricePerKm: 12}
	if err := f.Validate(); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	for _, bad := range []Car{
		{ID: "MH15", Model: "Swift Dzire", Registration: "MH-15-AB-1234", Seating: 1, CabType: 0, PricePerKm: 12},
		{ID: "MH15", Model: "Swift Dzire", Registration: "MH-15-AB-1234", Seating: 7, CabType: 0, PricePerKm: 12},
		{ID: "MH15", Model: "Swift Dzire", Registration: "MH-15-AB-1234", Seating: 4, CabType: 0, PricePerKm: 0},
		{ID: "MH15", Model: "Swift Dzire", Registration: "MH-15-AB-1234", Seating: 4, CabType: 0, PricePerKm: 1001},
		{ID: "MH15", Model: "Swift Dzire", Registration: "abc", Seating: 4, CabType: 0, PricePerKm: 12},
	} {
		if err := bad.Validate(); err == nil {
			t.Errorf("accepted %+v", bad)
		}
	}
}

func TestDriverAge(t *testing.T) {
	f := Driver{FirstName: "Sunil", LastName: "Pawar", Phone: "9123456780", License: "MH15-20190001234", Age: 35}
	if err := f.Validate(); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	for _, age := range []int{17, 71} {
		f.Age = age
		if err := f.Validate(); err == nil {
			t.Errorf("accepted age %d", age)
		}
	}
}

func TestCardNumberFormats(t *testing.T) {
	ok := []string{"4111111111111111", "4111-1111-1111-1111"}
	for _, n := range ok {
		f := CardPayment{Number: n, NameOnCard: "Ravi Kulkarni"}
		if err := f.Validate(); err != nil {
			t.Errorf("rejected %q: %v", n, err)
		}
	}
	bad := []string{"4111", "4111 1111 1111 1111", "4111-1111-1111-111a", "41111111111111112"}
	for _, n := range bad {
		f := CardPayment{Number: n, NameOnCard: "Ravi Kulkarni"}
		if err := f.Validate(); err == nil {
			t.Errorf("accepted %q", n)
		}
	}
}

func TestNetBankingFlag(t *testing.T) {
	paid := NetBanking{Flag: 0}
	if err := paid.Validate(); err != nil || !paid.Paid() {
		t.Fatal("flag 0 must validate as paid")
	}
	unpaid := NetBanking{Flag: 1}
	if err := unpaid.Validate(); err != nil || unpaid.Paid() {
		t.Fatal("flag 1 must validate as not paid")
	}
	if err := (&NetBanking{Flag: 2}).Validate(); err == nil {
		t.Fatal("accepted flag 2")
	}
}

func TestFeedbackRating(t *testing.T) {
	for _, r := range rental.FeedbackRatings {
		f := Feedback{Rating: r, Comments: "smooth ride"}
		if err := f.Validate(); err != nil {
			t.Errorf("rejected rating %q: %v", r, err)
		}
	}
	if err := (&Feedback{Rating: "Great"}).Validate(); err == nil {
		t.Fatal("accepted unknown rating")
	}
}
