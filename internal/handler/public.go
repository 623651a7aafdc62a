package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nashcab/car-rental-service/internal/rental"
)

// Health is a liveness endpoint for load balancers and monitoring.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// BookingOptions returns the static data the booking form needs: the
// fixed routes with distances, cab types in form order and the feedback
// rating scale.  No authentication required so the form can render
// before sign-in.
func BookingOptions(c echo.Context) error {
	routes := make([]echo.Map, 0, len(rental.Routes))
	for i, r := range rental.Routes {
		km, _ := rental.DistanceKm(r)
		routes = append(routes, echo.Map{"index": i, "name": r, "distance_km": km})
	}
	var cabs []echo.Map
	for i := 0; ; i++ {
		t, ok := rental.CabTypeFromBookingForm(i)
		if !ok {
			break
		}
		cabs = append(cabs, echo.Map{"index": i, "name": t.String()})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"routes":    routes,
		"cab_types": cabs,
		"ratings":   rental.FeedbackRatings,
	})
}
