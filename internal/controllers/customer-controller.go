package controllers

import (
	"errors"
	"net/http"

	"github.com/franciscosanchezn/pizzeria-console/internal/models"
	"github.com/franciscosanchezn/pizzeria-console/internal/services"
	"github.com/gin-gonic/gin"
)

// CustomerController handles HTTP requests related to customers
type CustomerController interface {
	GetAllCustomers(c *gin.Context)
	GetCustomerByID(c *gin.Context)
	CreateCustomer(c *gin.Context)
	UpdateCustomer(c *gin.Context)
	DeleteCustomer(c *gin.Context)
}

type customerController struct {
	service services.CustomerService
}

// NewCustomerController creates a new instance of CustomerController
func NewCustomerController(service services.CustomerService) CustomerController {
	return &customerController{service: service}
}

type customerRequest struct {
	Cedula string `json:"cedula" binding:"required"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
}

func (cc *customerController) GetAllCustomers(ctx *gin.Context) {
	customers, err := cc.service.GetAllCustomers()
	if err != nil {
		respondError(ctx, http.StatusInternalServerError, "Failed to retrieve customers")
		return
	}
	respondData(ctx, http.StatusOK, customers)
}

func (cc *customerController) GetCustomerByID(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	customer, err := cc.service.GetCustomerByID(id)
	if err != nil {
		if errors.Is(err, services.ErrCustomerNotFound) {
			respondError(ctx, http.StatusNotFound, "Customer not found")
			return
		}
		respondError(ctx, http.StatusInternalServerError, "Failed to retrieve customer")
		return
	}
	respondData(ctx, http.StatusOK, customer)
}

func (cc *customerController) CreateCustomer(ctx *gin.Context) {
	var req customerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	customer := &models.Customer{
		Cedula: req.Cedula,
		Email:  req.Email,
		Phone:  req.Phone,
	}
	if err := cc.service.CreateCustomer(customer); err != nil {
		respondError(ctx, http.StatusInternalServerError, "Failed to create customer")
		return
	}
	respondData(ctx, http.StatusCreated, customer)
}

func (cc *customerController) UpdateCustomer(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	existing, err := cc.service.GetCustomerByID(id)
	if err != nil {
		if errors.Is(err, services.ErrCustomerNotFound) {
			respondError(ctx, http.StatusNotFound, "Customer not found")
			return
		}
		respondError(ctx, http.StatusInternalServerError, "Failed to retrieve customer")
		return
	}

	var req customerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	existing.Cedula = req.Cedula
	existing.Email = req.Email
	existing.Phone = req.Phone
	if err := cc.service.UpdateCustomer(existing); err != nil {
		respondError(ctx, http.StatusInternalServerError, "Failed to update customer")
		return
	}
	respondData(ctx, http.StatusOK, existing)
}

func (cc *customerController) DeleteCustomer(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	if err := cc.service.DeleteCustomer(id); err != nil {
		if errors.Is(err, services.ErrCustomerNotFound) {
			respondError(ctx, http.StatusNotFound, "Customer not found")
			return
		}
		respondError(ctx, http.StatusInternalServerError, "Failed to delete customer")
		return
	}
	respondData(ctx, http.StatusOK, nil)
}
