package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/glum-catalog/backend/internal/model"
	"github.com/glum-catalog/backend/internal/service"
)

type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// Create godoc
// @Summary Create user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CreateUserRequest true "New account"
// @Success 201 {object} model.UserPublic
// @Failure 400 {object} model.ErrorResponse
// @Failure 409 {object} model.ErrorResponse
// @Router /api/v1/users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req model.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		writeUserError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user.Public())
}

// List godoc
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param offset query int false "Offset"
// @Param limit query int false "Limit (max 100)"
// @Success 200 {array} model.UserPublic
// @Router /api/v1/users [get]
func (h *UserHandler) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	users, err := h.svc.List(c.Request.Context(), offset, limit)
	if err != nil {
		writeUserError(c, err)
		return
	}

	out := make([]model.UserPublic, 0, len(users))
	for i := range users {
		out = append(out, users[i].Public())
	}
	c.JSON(http.StatusOK, out)
}

// GetByID godoc
// @Summary Get user by id
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} model.UserPublic
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/users/id/{id} [get]
func (h *UserHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	user, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		writeUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, user.Public())
}

// GetByEmail godoc
// @Summary Get user by email
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param email path string true "Email"
// @Success 200 {object} model.UserPublic
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/users/email/{email} [get]
func (h *UserHandler) GetByEmail(c *gin.Context) {
	user, err := h.svc.GetByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		writeUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, user.Public())
}

// GetByPhone godoc
// @Summary Get user by phone number
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param phone path string true "Phone number"
// @Success 200 {object} model.UserPublic
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/users/phone/{phone} [get]
func (h *UserHandler) GetByPhone(c *gin.Context) {
	user, err := h.svc.GetByPhone(c.Request.Context(), c.Param("phone"))
	if err != nil {
		writeUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, user.Public())
}

// Update godoc
// @Summary Update user
// @Description Applies only the supplied fields.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body model.UserPatch true "Fields to change"
// @Success 200 {object} model.UserPublic
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/users/id/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var patch model.UserPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, err := h.svc.Update(c.Request.Context(), id, patch)
	if err != nil {
		writeUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, user.Public())
}

// VerifyEmail godoc
// @Summary Confirm an email address
// @Tags users
// @Produce html
// @Param email path string true "Email"
// @Success 200 {string} string "Confirmation page"
// @Failure 404 {string} string "Not found page"
// @Router /api/v1/users/verify-email/{email} [get]
func (h *UserHandler) VerifyEmail(c *gin.Context) {
	err := h.svc.VerifyEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			c.Data(http.StatusNotFound, "text/html; charset=utf-8", []byte(verifyFailedPage))
			return
		}
		log.Printf("[Users] Email verification failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(verifiedPage))
}

func writeUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "username already registered"})
	case errors.Is(err, model.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
	default:
		log.Printf("[Users] Request failed unexpectedly: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
	}
}

const verifiedPage = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Email verified</title></head>
<body style="background:#1B2627;color:white;display:flex;align-items:center;justify-content:center;height:100vh;font-family:sans-serif;">
  <div style="text-align:center;">
    <h1>Email verified</h1>
    <p>Your account is active. You can now log in.</p>
  </div>
</body>
</html>`

const verifyFailedPage = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Verification failed</title></head>
<body style="background:#1B2627;color:white;display:flex;align-items:center;justify-content:center;height:100vh;font-family:sans-serif;">
  <h2>The email address could not be verified.</h2>
</body>
</html>`
