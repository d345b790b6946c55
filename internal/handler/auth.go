package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/glum-catalog/backend/internal/auth"
	"github.com/glum-catalog/backend/internal/model"
)

type AuthHandler struct {
	svc *auth.Service
}

func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Login godoc
// @Summary Login
// @Description Authenticates a user. APP_USER logins additionally require
// @Description an application bearer token in the Authorization header.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Username, password and requested role"
// @Success 200 {object} model.LoginResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 403 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	cred := auth.Credential{Username: req.Username, Password: req.Password, Role: req.Role}
	token, principal, err := h.svc.Login(c.Request.Context(), cred, bearerToken(c))
	if err != nil {
		writeLoginError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.LoginResponse{
		Message:     "user authenticated successfully",
		AccessToken: token,
		TokenType:   "bearer",
		User: model.PrincipalOut{
			Username: principal.Username,
			Role:     principal.Role,
		},
	})
}

// writeLoginError maps login outcomes to responses. A missing account, a
// wrong password and a locked account all get the same body so an
// unauthenticated caller cannot enumerate or probe accounts.
func writeLoginError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrAccountNotFound), errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrAccountLocked):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case errors.Is(err, auth.ErrAccountInactive):
		c.JSON(http.StatusForbidden, gin.H{"error": "account inactive or blocked"})
	case errors.Is(err, auth.ErrEmailUnverified):
		c.JSON(http.StatusAccepted, gin.H{"error": "please verify your email to continue"})
	case errors.Is(err, auth.ErrAppTokenRequired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "application token required"})
	case errors.Is(err, auth.ErrAppTokenInvalid):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid application token"})
	case errors.Is(err, auth.ErrRoleMismatch):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		log.Printf("[Auth] Login failed unexpectedly: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
	}
}
