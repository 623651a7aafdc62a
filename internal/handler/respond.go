package handler // HTTP handlers for the rental API

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nashcab/car-rental-service/internal/rental"
)

// validationJSON renders a form validation failure with every message.
func validationJSON(c echo.Context, err error) error {
	var verr rental.ValidationError
	if errors.As(err, &verr) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "details": verr.Messages})
	}
	return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
}

// domainJSON maps the error taxonomy of the service layer onto HTTP
// statuses.  Anything unrecognized is a 500 with a generic message so
// internals never leak.
func domainJSON(c echo.Context, err error) error {
	var nf rental.NotFoundError
	var inc rental.IncompleteRecordError
	var conflict rental.ConflictError
	switch {
	case errors.Is(err, rental.ErrNoCarsAvailable),
		errors.Is(err, rental.ErrNoDriversAvailable):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, rental.ErrDuplicatePayment):
		return c.JSON(http.StatusConflict, echo.Map{"error": "booking already paid"})
	case errors.Is(err, rental.ErrBookingContextLost):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no booking matches this checkout"})
	case errors.As(err, &nf):
		return c.JSON(http.StatusNotFound, echo.Map{"error": nf.Error()})
	case errors.As(err, &conflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": conflict.Error()})
	case errors.As(err, &inc):
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": inc.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
