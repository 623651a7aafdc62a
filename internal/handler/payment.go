package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nashcab/car-rental-service/internal/form"
	"github.com/nashcab/car-rental-service/internal/middleware"
	"github.com/nashcab/car-rental-service/internal/model"
	"github.com/nashcab/car-rental-service/internal/service"
)

// PaymentHandler exposes the checkout endpoints.  The checkout page is
// rendered with the vehicle and driver of the confirmed booking, and the
// client sends that pair back to identify which booking it is paying.
type PaymentHandler struct {
	Payments *service.Payments
}

func NewPaymentHandler(payments *service.Payments) *PaymentHandler {
	return &PaymentHandler{Payments: payments}
}

type cardPaymentReq struct {
	form.CardPayment
	CarID    string `json:"car_id"`
	DriverID uint64 `json:"driver_id"`
	// "credit" or "debit"
	CardKind string `json:"card_kind"`
}

// PayCard settles a booking by card.  Card details are validated and
// discarded; only the payment record is stored.
func (h *PaymentHandler) PayCard(c echo.Context) error {
	var req cardPaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.CardPayment.Validate(); err != nil {
		return validationJSON(c, err)
	}
	var payType model.PaymentType
	switch req.CardKind {
	case "credit":
		payType = model.PayCreditCard
	case "debit":
		payType = model.PayDebitCard
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "card kind must be credit or debit"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	payment, err := h.Payments.Record(ctx, service.PaymentRequest{
		CustomerID: middleware.UserID(c),
		CarID:      req.CarID,
		DriverID:   req.DriverID,
		Type:       payType,
		Settled:    true,
	})
	if err != nil {
		return domainJSON(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"payment": payment})
}

type netBankingReq struct {
	form.NetBanking
	CarID    string `json:"car_id"`
	DriverID uint64 `json:"driver_id"`
}

// PayNetBanking settles a booking by bank transfer.  The transfer may
// still be pending, in which case the payment is recorded as Not Paid.
func (h *PaymentHandler) PayNetBanking(c echo.Context) error {
	var req netBankingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.NetBanking.Validate(); err != nil {
		return validationJSON(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	payment, err := h.Payments.Record(ctx, service.PaymentRequest{
		CustomerID: middleware.UserID(c),
		CarID:      req.CarID,
		DriverID:   req.DriverID,
		Type:       model.PayNetBanking,
		Settled:    req.NetBanking.Paid(),
	})
	if err != nil {
		return domainJSON(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"payment": payment})
}
