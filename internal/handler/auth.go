package handler

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nashcab/car-rental-service/internal/config"
	"github.com/nashcab/car-rental-service/internal/form"
	"github.com/nashcab/car-rental-service/internal/middleware"
	"github.com/nashcab/car-rental-service/internal/model"
	"github.com/nashcab/car-rental-service/internal/notifier"
	"github.com/nashcab/car-rental-service/internal/queue"
	"github.com/nashcab/car-rental-service/internal/repository"
	"github.com/nashcab/car-rental-service/internal/utils"
)

// AuthHandler bundles dependencies for account endpoints.
type AuthHandler struct {
	Cfg       config.Config
	Customers *repository.AccountRepo
	Admins    *repository.AccountRepo
	History   *repository.LoginHistoryRepo
}

func NewAuthHandler(cfg config.Config, customers, admins *repository.AccountRepo, history *repository.LoginHistoryRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Customers: customers, Admins: admins, History: history}
}

type accountPart struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

type authResp struct {
	Account accountPart       `json:"account"`
	Access  utils.AccessToken `json:"access"`
}

// Register creates a customer account and signs it in immediately.
func (h *AuthHandler) Register(c echo.Context) error {
	var req form.Registration
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.Validate(); err != nil {
		return validationJSON(c, err)
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hash failed"})
	}
	encAnswer, err := utils.EncryptAnswer(strings.ToLower(strings.TrimSpace(req.Answer)), []byte(h.Cfg.AnswerKey))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "encrypt failed"})
	}

	acc := model.Account{
		UserID:         req.UserID,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		RegisteredOn:   time.Now().UTC().Format("02-01-2006"),
		PasswordHash:   hash,
		ResetQuestion:  req.Question,
		ResetAnswerEnc: encAnswer,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Customers.Create(ctx, &acc); err != nil {
		if errors.Is(err, repository.ErrUserIDExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "user id already taken"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}

	// Welcome message goes out of band; registration never waits on the
	// broker.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := notifier.PublishCustomerRegistered(ctx, queue.CustomerRegisteredEvent{
			UserID:       acc.UserID,
			Name:         acc.FullName(),
			Email:        acc.Email,
			RegisteredOn: acc.RegisteredOn,
		}); err != nil {
			log.Printf("auth: welcome event failed: %v", err)
		}
	}()

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, acc.UserID, model.RoleCustomer, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token issue failed"})
	}
	return c.JSON(http.StatusCreated, authResp{
		Account: accountPart{UserID: acc.UserID, Name: acc.FullName(), Email: acc.Email, Role: model.RoleCustomer},
		Access:  access,
	})
}

// Login authenticates a customer.
func (h *AuthHandler) Login(c echo.Context) error {
	return h.login(c, h.Customers, model.RoleCustomer, "Customer")
}

// AdminLogin authenticates an admin.
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	return h.login(c, h.Admins, model.RoleAdmin, "Admin")
}

func (h *AuthHandler) login(c echo.Context, accounts *repository.AccountRepo, role, historyRole string) error {
	var req form.Login
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.Validate(); err != nil {
		return validationJSON(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	acc, err := accounts.GetByID(ctx, req.UserID)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && !utils.VerifyPassword(acc.PasswordHash, req.Password)) {
		// Same answer for unknown id and wrong password.
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lookup failed"})
	}

	now := time.Now().UTC()
	rec := model.LoginRecord{Role: historyRole, UserID: acc.UserID, Date: now.Format("2006-01-02"), Time: now.Format("15:04:05")}
	if err := h.History.Record(ctx, &rec); err != nil {
		log.Printf("auth: login history write failed: %v", err)
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, acc.UserID, role, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token issue failed"})
	}
	return c.JSON(http.StatusOK, authResp{
		Account: accountPart{UserID: acc.UserID, Name: acc.FullName(), Email: acc.Email, Role: role},
		Access:  access,
	})
}

// ResetPassword sets a new password after the security-answer challenge.
// Both account tables are checked, customers first, matching how the
// reset page serves both audiences.
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req form.PasswordReset
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.Validate(); err != nil {
		return validationJSON(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	accounts := h.Customers
	acc, err := accounts.GetByID(ctx, req.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		accounts = h.Admins
		acc, err = accounts.GetByID(ctx, req.UserID)
	}
	if errors.Is(err, sql.ErrNoRows) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "reset challenge failed"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lookup failed"})
	}

	stored, ok := utils.DecryptAnswer(acc.ResetAnswerEnc, []byte(h.Cfg.AnswerKey))
	answer := strings.ToLower(strings.TrimSpace(req.Answer))
	if !ok || acc.ResetQuestion != req.Question || !strings.EqualFold(stored, answer) {
		// One message for every failure mode so the endpoint leaks
		// nothing about which part was wrong.
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "reset challenge failed"})
	}

	hash, err := utils.HashPassword(req.NewPassword, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hash failed"})
	}
	if _, err := accounts.UpdatePassword(ctx, acc.UserID, hash); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "password updated"})
}

type adminCreateReq struct {
	form.Registration
	MasterPassword string `json:"master_password"`
}

// CreateAdmin registers a new admin account.  The caller must be an
// admin and present the master password.
func (h *AuthHandler) CreateAdmin(c echo.Context) error {
	var req adminCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.MasterPassword != h.Cfg.MasterPassword {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "incorrect master password"})
	}
	if err := req.Registration.Validate(); err != nil {
		return validationJSON(c, err)
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hash failed"})
	}
	encAnswer, err := utils.EncryptAnswer(strings.ToLower(strings.TrimSpace(req.Answer)), []byte(h.Cfg.AnswerKey))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "encrypt failed"})
	}

	acc := model.Account{
		UserID:         req.UserID,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		RegisteredOn:   time.Now().UTC().Format("02-01-2006"),
		PasswordHash:   hash,
		ResetQuestion:  req.Question,
		ResetAnswerEnc: encAnswer,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Admins.Create(ctx, &acc); err != nil {
		if errors.Is(err, repository.ErrUserIDExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "user id already taken"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, accountPart{UserID: acc.UserID, Name: acc.FullName(), Email: acc.Email, Role: model.RoleAdmin})
}

type masterPasswordReq struct {
	MasterPassword string `json:"master_password"`
}

// DeleteAdmin removes an admin account.  Requires the master password
// and refuses to let an admin delete their own session account.
func (h *AuthHandler) DeleteAdmin(c echo.Context) error {
	var req masterPasswordReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.MasterPassword != h.Cfg.MasterPassword {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "incorrect master password"})
	}
	target := c.Param("id")
	if target == middleware.UserID(c) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "cannot delete the signed-in admin"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ok, err := h.Admins.Delete(ctx, target)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "admin not found"})
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteCustomer removes a customer account.  Booking history survives
// the account.
func (h *AuthHandler) DeleteCustomer(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ok, err := h.Customers.Delete(ctx, c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
	}
	return c.NoContent(http.StatusNoContent)
}

// LoginHistory returns the signed-in user's sign-in records.
func (h *AuthHandler) LoginHistory(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	records, err := h.History.ListByUser(ctx, middleware.UserID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lookup failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"logins": records})
}
