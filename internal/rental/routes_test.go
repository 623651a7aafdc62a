package rental

import (
	"testing"

	"github.com/nashcab/car-rental-service/internal/model"
)

func TestRouteDistances(t *testing.T) {
	want := map[string]int{
		"Nashik-Pune":       211,
		"Nashik-Mumbai":     165,
		"Nashik-Nagpur":     680,
		"Nashik-Dhule":      144,
		"Nashik-Aurangabad": 160,
	}
	for route, km := range want {
		got, ok := DistanceKm(route)
		if !ok || got != km {
			t.Errorf("DistanceKm(%q) = %d,%v want %d", route, got, ok, km)
		}
	}
	if _, ok := DistanceKm("Nashik-Goa"); ok {
		t.Error("unknown route must not resolve")
	}
}

func TestRouteFromIndex(t *testing.T) {
	if r, ok := RouteFromIndex(0); !ok || r != "Nashik-Pune" {
		t.Errorf("index 0 = %q", r)
	}
	if r, ok := RouteFromIndex(4); !ok || r != "Nashik-Aurangabad" {
		t.Errorf("index 4 = %q", r)
	}
	for _, i := range []int{-1, 5} {
		if _, ok := RouteFromIndex(i); ok {
			t.Errorf("index %d must not resolve", i)
		}
	}
}

func TestFareIsDistanceTimesRate(t *testing.T) {
	if fare, ok := Fare("Nashik-Pune", 10); !ok || fare != 2110 {
		t.Errorf("Fare(Nashik-Pune, 10) = %d, want 2110", fare)
	}
	if fare, ok := Fare("Nashik-Mumbai", 15); !ok || fare != 2475 {
		t.Errorf("Fare(Nashik-Mumbai, 15) = %d, want 2475", fare)
	}
	if _, ok := Fare("Nashik-Goa", 10); ok {
		t.Error("unknown route must not produce a fare")
	}
}

func TestBookingFormCabOrderDiffersFromCanonical(t *testing.T) {
	// The booking form lists Hatchback first; the stored enum puts Sedan
	// at zero.
	wantBooking := []model.CabType{model.CabHatchback, model.CabSedan, model.CabSUV}
	for i, want := range wantBooking {
		got, ok := CabTypeFromBookingForm(i)
		if !ok || got != want {
			t.Errorf("CabTypeFromBookingForm(%d) = %v, want %v", i, got, want)
		}
	}
	if got, ok := CabTypeFromFleetForm(0); !ok || got != model.CabSedan {
		t.Errorf("CabTypeFromFleetForm(0) = %v, want Sedan", got)
	}
	if _, ok := CabTypeFromBookingForm(3); ok {
		t.Error("index 3 must not resolve")
	}
}

func TestSecurityQuestionDomain(t *testing.T) {
	for q := 1; q <= 4; q++ {
		if !SecurityQuestionValid(q) {
			t.Errorf("question %d must be valid", q)
		}
	}
	for _, q := range []int{0, 5, -1} {
		if SecurityQuestionValid(q) {
			t.Errorf("question %d must be invalid", q)
		}
	}
}
