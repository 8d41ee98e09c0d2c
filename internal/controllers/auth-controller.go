package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/franciscosanchezn/pizzeria-console/internal/auth"
	"github.com/franciscosanchezn/pizzeria-console/internal/models"
	"github.com/franciscosanchezn/pizzeria-console/internal/services"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// AuthController handles login, logout and token validation
type AuthController interface {
	// Login authenticates a user and issues a bearer token
	Login(c *gin.Context)
	// Logout revokes the presented token
	Logout(c *gin.Context)
	// Validate reports whether the presented token is still good
	Validate(c *gin.Context)
}

type authController struct {
	users  services.UserService
	issuer *auth.Issuer
}

// NewAuthController creates a new instance of AuthController
func NewAuthController(users services.UserService, issuer *auth.Issuer) AuthController {
	return &authController{users: users, issuer: issuer}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (a *authController) Login(ctx *gin.Context) {
	var req loginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.LoginResponse{
			Success: false,
			Message: "username and password are required",
		})
		return
	}

	user, err := a.users.Authenticate(req.Username, req.Password)
	if err != nil {
		// A rejected login is a normal outcome, not a server failure
		if errors.Is(err, services.ErrBadCredentials) {
			ctx.JSON(http.StatusUnauthorized, models.LoginResponse{
				Success: false,
				Message: "Invalid username or password",
			})
			return
		}
		log.WithError(err).Error("Login failed")
		ctx.JSON(http.StatusInternalServerError, models.LoginResponse{
			Success: false,
			Message: "Login failed",
		})
		return
	}

	token, expiresAt, err := a.issuer.Issue(user)
	if err != nil {
		log.WithError(err).Error("Token issuance failed")
		ctx.JSON(http.StatusInternalServerError, models.LoginResponse{
			Success: false,
			Message: "Login failed",
		})
		return
	}

	log.WithFields(log.Fields{"username": user.Username, "role": user.Role}).Info("User logged in")
	ctx.JSON(http.StatusOK, models.LoginResponse{
		Success:   true,
		Message:   "Login successful",
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		Token:     token,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
	})
}

func (a *authController) Logout(ctx *gin.Context) {
	tokenID, exists := ctx.Get("tokenID")
	if !exists {
		ctx.JSON(http.StatusUnauthorized, models.APIResponse{
			Success: false,
			Message: "User not authenticated",
		})
		return
	}

	if err := a.issuer.Revoke(tokenID.(string)); err != nil {
		log.WithError(err).Error("Token revocation failed")
		ctx.JSON(http.StatusInternalServerError, models.APIResponse{
			Success: false,
			Message: "Logout failed",
		})
		return
	}

	ctx.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Message: "Logged out",
	})
}

// Validate deliberately answers 200 with valid=false for bad tokens instead
// of 401: the console uses it at startup to decide whether a persisted
// session is still usable.
func (a *authController) Validate(ctx *gin.Context) {
	header := ctx.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		ctx.JSON(http.StatusOK, models.ValidateResponse{Valid: false})
		return
	}

	claims, err := a.issuer.Validate(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		ctx.JSON(http.StatusOK, models.ValidateResponse{Valid: false})
		return
	}

	ctx.JSON(http.StatusOK, models.ValidateResponse{
		Valid:    true,
		UserID:   claims.UserID,
		Username: claims.Username,
		Role:     claims.Role,
	})
}
