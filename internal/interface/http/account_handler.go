package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/shopgrid/accounts-api/internal/application"
	"github.com/shopgrid/accounts-api/internal/interface/middleware"
	"github.com/shopgrid/accounts-api/pkg/response"
)

// AccountHandler exposes registration, login and the current-account lookup.
type AccountHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAccountHandler(svc *application.AuthService, logger *logrus.Logger) *AccountHandler {
	return &AccountHandler{Svc: svc, Logger: logger}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type verifyConfirmRequest struct {
	Token string `json:"token"`
}

// Register POST /api/auth/register
func (h *AccountHandler) Register(c *gin.Context) {
	var in application.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", nil)
		return
	}
	_, err := h.Svc.Register(c.Request.Context(), in)
	if err != nil {
		if ve, ok := application.AsValidationError(err); ok {
			response.Error[any](c, http.StatusBadRequest, "invalid input", ve.Fields)
			return
		}
		if errors.Is(err, application.ErrEmailTaken) {
			response.Error[any](c, http.StatusConflict, err.Error(), nil)
			return
		}
		h.internal(c, "registration failed", err)
		return
	}
	// Acknowledgment only; no account data leaves this endpoint.
	response.Success[any](c, http.StatusCreated, nil, "signup successful")
}

// Login POST /api/auth/login
func (h *AccountHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusUnauthorized, application.ErrMissingCredentials.Error(), nil)
		return
	}
	view, token, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrMissingCredentials):
			response.Error[any](c, http.StatusUnauthorized, err.Error(), nil)
		case errors.Is(err, application.ErrUnknownAccount):
			response.Error[any](c, http.StatusUnauthorized, err.Error(), nil)
		case errors.Is(err, application.ErrInvalidPassword):
			response.Error[any](c, http.StatusForbidden, err.Error(), nil)
		case errors.Is(err, application.ErrAccountNotActive):
			response.Error[any](c, http.StatusUnauthorized, err.Error(), nil)
		default:
			h.internal(c, "login failed", err)
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"account": view, "token": token}, "login successful")
}

// Me GET /api/auth/me
func (h *AccountHandler) Me(c *gin.Context) {
	email := c.GetString(middleware.CtxAccountEmail)
	acct, err := h.Svc.GetCurrentAccount(c.Request.Context(), email)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrNoIdentity):
			response.Error[any](c, http.StatusUnauthorized, "unauthorized", nil)
		case errors.Is(err, application.ErrUnknownAccount):
			response.Error[any](c, http.StatusNotFound, "account not found", nil)
		default:
			h.internal(c, "account lookup failed", err)
		}
		return
	}
	response.Success(c, http.StatusOK, application.NewAccountView(acct), "current account")
}

// VerifyConfirm POST /api/auth/verify/confirm
func (h *AccountHandler) VerifyConfirm(c *gin.Context) {
	var req verifyConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Token == "" {
		response.Error[any](c, http.StatusBadRequest, "token is required", nil)
		return
	}
	if err := h.Svc.ConfirmVerification(c.Request.Context(), req.Token); err != nil {
		if errors.Is(err, application.ErrInvalidVerifyToken) {
			response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
			return
		}
		h.internal(c, "verification failed", err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"verified": true}, "email verified")
}

// internal logs the cause and answers with a generic failure so internal
// diagnostics never leak to the caller.
func (h *AccountHandler) internal(c *gin.Context, msg string, err error) {
	if h.Logger != nil {
		h.Logger.WithError(err).WithField("request_id", c.GetString("request_id")).Error(msg)
	}
	response.Error[any](c, http.StatusInternalServerError, "something went wrong", nil)
}
