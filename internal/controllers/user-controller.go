package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/franciscosanchezn/pizzeria-console/internal/services"
	"github.com/gin-gonic/gin"
)

// UserController handles HTTP requests related to user management (admin only)
type UserController interface {
	GetAllUsers(c *gin.Context)
	GetUserByID(c *gin.Context)
	CreateUser(c *gin.Context)
	UpdateUser(c *gin.Context)
	DeleteUser(c *gin.Context)
}

type userController struct {
	service services.UserService
}

// NewUserController creates a new instance of UserController
func NewUserController(service services.UserService) UserController {
	return &userController{service: service}
}

type userRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Role     string `json:"role" binding:"required"`
	Active   *bool  `json:"active"`
}

func (u *userController) GetAllUsers(ctx *gin.Context) {
	users, err := u.service.GetAllUsers()
	if err != nil {
		respondError(ctx, http.StatusInternalServerError, "Failed to retrieve users")
		return
	}
	respondData(ctx, http.StatusOK, users)
}

func (u *userController) GetUserByID(ctx *gin.Context) {
	id, ok := userPathID(ctx)
	if !ok {
		return
	}

	user, err := u.service.GetUserByID(id)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			respondError(ctx, http.StatusNotFound, "User not found")
			return
		}
		respondError(ctx, http.StatusInternalServerError, "Failed to retrieve user")
		return
	}
	respondData(ctx, http.StatusOK, user)
}

func (u *userController) CreateUser(ctx *gin.Context) {
	var req userRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := u.service.CreateUser(req.Username, req.Password, req.Email, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserExists):
			respondError(ctx, http.StatusConflict, "User already exists")
		case errors.Is(err, services.ErrInvalidUser):
			respondError(ctx, http.StatusBadRequest, err.Error())
		default:
			respondError(ctx, http.StatusInternalServerError, "Failed to create user")
		}
		return
	}
	respondData(ctx, http.StatusCreated, user)
}

func (u *userController) UpdateUser(ctx *gin.Context) {
	id, ok := userPathID(ctx)
	if !ok {
		return
	}

	existing, err := u.service.GetUserByID(id)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			respondError(ctx, http.StatusNotFound, "User not found")
			return
		}
		respondError(ctx, http.StatusInternalServerError, "Failed to retrieve user")
		return
	}

	var req userRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	existing.Username = req.Username
	existing.Email = req.Email
	existing.Role = req.Role
	if req.Active != nil {
		existing.Active = *req.Active
	}

	if err := u.service.UpdateUser(existing); err != nil {
		if errors.Is(err, services.ErrInvalidUser) {
			respondError(ctx, http.StatusBadRequest, err.Error())
			return
		}
		respondError(ctx, http.StatusInternalServerError, "Failed to update user")
		return
	}
	respondData(ctx, http.StatusOK, existing)
}

func (u *userController) DeleteUser(ctx *gin.Context) {
	id, ok := userPathID(ctx)
	if !ok {
		return
	}

	if err := u.service.DeleteUser(id); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			respondError(ctx, http.StatusNotFound, "User not found")
			return
		}
		respondError(ctx, http.StatusInternalServerError, "Failed to delete user")
		return
	}
	respondData(ctx, http.StatusOK, nil)
}

// userPathID parses the :id parameter as an unsigned user ID.
func userPathID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		respondError(ctx, http.StatusBadRequest, "Invalid ID format")
		return 0, false
	}
	return uint(id), true
}
