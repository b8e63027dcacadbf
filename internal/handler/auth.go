package handler

import (
	"errors"
	"net/http"

	"github.com/juanmiguelzamora/StockWise/internal/apierror"
	"github.com/juanmiguelzamora/StockWise/internal/dto"
	"github.com/juanmiguelzamora/StockWise/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Invalid username or password"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindAndValidate(c, &req) {
		return
	}
	user, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrUserTaken) {
			c.JSON(http.StatusConflict, apierror.New("Username or email already in use"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to register user"))
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Invalid or expired refresh token"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RequestReset always answers 202 so the endpoint cannot be used to probe
// which emails are registered.
func (h *AuthHandler) RequestReset(c *gin.Context) {
	var req dto.ResetRequestRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to process reset request"))
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"detail": "If the email is registered, a reset link has been sent"})
}

func (h *AuthHandler) ConfirmReset(c *gin.Context) {
	var req dto.ResetConfirmRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.ConfirmPasswordReset(c.Request.Context(), req); err != nil {
		if errors.Is(err, service.ErrResetTokenInvalid) {
			c.JSON(http.StatusBadRequest, apierror.New("Reset token is invalid or expired"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to reset password"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Password updated"})
}
