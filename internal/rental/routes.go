// Package rental holds the fixed domain tables and error taxonomy shared
// by the booking, payment and invoice components.
package rental

import "github.com/nashcab/car-rental-service/internal/model"

// Route names in booking-form index order.  Index positions are part of
// the external form contract and must not be reordered.
var Routes = []string{
	"Nashik-Pune",
	"Nashik-Mumbai",
	"Nashik-Nagpur",
	"Nashik-Dhule",
	"Nashik-Aurangabad",
}

// routeDistanceKm is the fixed corridor-distance table fares are
// computed from.
var routeDistanceKm = map[string]int{
	"Nashik-Pune":       211,
	"Nashik-Mumbai":     165,
	"Nashik-Nagpur":     680,
	"Nashik-Dhule":      144,
	"Nashik-Aurangabad": 160,
}

// RouteFromIndex resolves a booking-form route selection (0–4) to its
// corridor name.  ok is false for out-of-range indices.
func RouteFromIndex(i int) (string, bool) {
	if i < 0 || i >= len(Routes) {
		return "", false
	}
	return Routes[i], true
}

// DistanceKm returns the fixed distance for a corridor name.
func DistanceKm(route string) (int, bool) {
	km, ok := routeDistanceKm[route]
	return km, ok
}

// Fare computes the trip charge: corridor distance times the car's
// per-km rate, in whole rupees.  ok is false for an unknown route.
func Fare(route string, pricePerKm int) (int, bool) {
	km, ok := routeDistanceKm[route]
	if !ok {
		return 0, false
	}
	return km * pricePerKm, true
}

// bookingFormCabOrder is the historical select-box order of the booking
// form, which differs from the canonical enum used by the fleet-admin
// form.  Stored Car rows follow the canonical order; this table only
// translates incoming booking requests.
var bookingFormCabOrder = []model.CabType{
	model.CabHatchback,
	model.CabSedan,
	model.CabSUV,
}

// CabTypeFromBookingForm maps a booking-form cab selection (0–2) to the
// canonical enum.
func CabTypeFromBookingForm(i int) (model.CabType, bool) {
	if i < 0 || i >= len(bookingFormCabOrder) {
		return 0, false
	}
	return bookingFormCabOrder[i], true
}

// CabTypeFromFleetForm maps a fleet-admin form selection (0–2), which is
// already in canonical order.
func CabTypeFromFleetForm(i int) (model.CabType, bool) {
	if i < 0 || i > int(model.CabSUV) {
		return 0, false
	}
	return model.CabType(i), true
}

// SecurityQuestionValid reports whether a security-question selection is
// in the accepted 1–4 domain.  Zero is the "unselected" placeholder.
func SecurityQuestionValid(q int) bool { return q >= 1 && q <= 4 }

// FeedbackRatings in form index order.
var FeedbackRatings = []string{"Excellent", "Good", "Neutral", "Poor"}
