package controllers

import (
	"errors"
	"net/http"

	"github.com/franciscosanchezn/pizzeria-console/internal/services"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// OrderController handles HTTP requests related to orders
type OrderController interface {
	GetAllOrders(c *gin.Context)
	GetPendingOrders(c *gin.Context)
	GetOrdersByStatus(c *gin.Context)
	GetOrderByID(c *gin.Context)
	CreateOrder(c *gin.Context)
	UpdateOrderStatus(c *gin.Context)
	DeleteOrder(c *gin.Context)
}

type orderController struct {
	service services.OrderService
}

// NewOrderController creates a new instance of OrderController
func NewOrderController(service services.OrderService) OrderController {
	return &orderController{service: service}
}

type orderRequest struct {
	PizzaID       int    `json:"pizzaId" binding:"required"`
	Quantity      int    `json:"quantity" binding:"required"`
	CustomerName  string `json:"customerName" binding:"required"`
	CustomerPhone string `json:"customerPhone" binding:"required"`
	Notes         string `json:"notes"`
}

type statusRequest struct {
	Estado string `json:"estado" binding:"required"`
}

func (o *orderController) GetAllOrders(ctx *gin.Context) {
	orders, err := o.service.GetAllOrders()
	if err != nil {
		respondError(ctx, http.StatusInternalServerError, "Failed to retrieve orders")
		return
	}
	respondData(ctx, http.StatusOK, orders)
}

func (o *orderController) GetPendingOrders(ctx *gin.Context) {
	orders, err := o.service.GetPendingOrders()
	if err != nil {
		respondError(ctx, http.StatusInternalServerError, "Failed to retrieve orders")
		return
	}
	respondData(ctx, http.StatusOK, orders)
}

func (o *orderController) GetOrdersByStatus(ctx *gin.Context) {
	orders, err := o.service.GetOrdersByStatus(ctx.Param("estado"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidOrder) {
			respondError(ctx, http.StatusBadRequest, err.Error())
			return
		}
		respondError(ctx, http.StatusInternalServerError, "Failed to retrieve orders")
		return
	}
	respondData(ctx, http.StatusOK, orders)
}

func (o *orderController) GetOrderByID(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	order, err := o.service.GetOrderByID(id)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			respondError(ctx, http.StatusNotFound, "Order not found")
			return
		}
		respondError(ctx, http.StatusInternalServerError, "Failed to retrieve order")
		return
	}
	respondData(ctx, http.StatusOK, order)
}

func (o *orderController) CreateOrder(ctx *gin.Context) {
	var req orderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	// The creating user comes from the token, never from the payload
	username := ctx.GetString("username")

	order, err := o.service.PlaceOrder(services.PlaceOrderInput{
		PizzaID:       req.PizzaID,
		Quantity:      req.Quantity,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Notes:         req.Notes,
		CreatedBy:     username,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidOrder) {
			respondError(ctx, http.StatusBadRequest, err.Error())
			return
		}
		log.WithError(err).Error("Order creation failed")
		respondError(ctx, http.StatusInternalServerError, "Failed to create order")
		return
	}

	log.WithFields(log.Fields{
		"order_id": order.ID,
		"pizza_id": order.PizzaID,
		"total":    order.Total.String(),
		"by":       username,
	}).Info("Order placed")
	respondData(ctx, http.StatusCreated, order)
}

func (o *orderController) UpdateOrderStatus(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req statusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := o.service.UpdateStatus(id, req.Estado)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			respondError(ctx, http.StatusNotFound, "Order not found")
		case errors.Is(err, services.ErrOrderDelivered), errors.Is(err, services.ErrInvalidTransition):
			respondError(ctx, http.StatusConflict, err.Error())
		default:
			respondError(ctx, http.StatusInternalServerError, "Failed to update order")
		}
		return
	}

	log.WithFields(log.Fields{"order_id": order.ID, "status": order.Status}).Info("Order status updated")
	respondData(ctx, http.StatusOK, order)
}

func (o *orderController) DeleteOrder(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	if err := o.service.DeleteOrder(id); err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			respondError(ctx, http.StatusNotFound, "Order not found")
			return
		}
		respondError(ctx, http.StatusInternalServerError, "Failed to delete order")
		return
	}
	respondData(ctx, http.StatusOK, nil)
}
