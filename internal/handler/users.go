package handler

import (
	"errors"
	"net/http"

	"github.com/juanmiguelzamora/StockWise/internal/apierror"
	"github.com/juanmiguelzamora/StockWise/internal/dto"
	"github.com/juanmiguelzamora/StockWise/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UserHandler struct{ svc service.AuthService }

func NewUserHandler(svc service.AuthService) *UserHandler {
	return &UserHandler{svc: svc}
}

func userID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid user id"))
		return uuid.Nil, false
	}
	return id, true
}

// Create provisions a user with an explicit role, so an admin can create
// another admin in one step.
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if !bindAndValidate(c, &req) {
		return
	}
	user, err := h.svc.CreateUser(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrUserTaken) {
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to create user"))
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) List(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true"
	users, err := h.svc.ListUsers(c.Request.Context(), includeInactive)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list users"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": users})
}

func (h *UserHandler) UpdateRole(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	var req dto.UpdateRoleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	user, err := h.svc.UpdateRole(c.Request.Context(), id, req.Role)
	if err != nil {
		writeUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Deactivate(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	if err := h.svc.DeactivateUser(c.Request.Context(), id); err != nil {
		writeUserError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) Reactivate(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	if err := h.svc.ReactivateUser(c.Request.Context(), id); err != nil {
		writeUserError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func writeUserError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, apierror.New("User not found"))
		return
	}
	c.JSON(http.StatusInternalServerError, apierror.New("Failed to update user"))
}
