package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/franciscosanchezn/pizzeria-console/internal/models"
	"github.com/franciscosanchezn/pizzeria-console/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// PizzaController handles HTTP requests related to the catalog
type PizzaController interface {
	// GetAllPizzas retrieves all pizzas
	GetAllPizzas(c *gin.Context)
	// GetAvailablePizzas retrieves only pizzas flagged as available
	GetAvailablePizzas(c *gin.Context)
	// GetPizzaByID retrieves a pizza by its ID
	GetPizzaByID(c *gin.Context)
	// CreatePizza creates a new pizza
	CreatePizza(c *gin.Context)
	// UpdatePizza updates an existing pizza
	UpdatePizza(c *gin.Context)
	// DeletePizza deletes a pizza by its ID
	DeletePizza(c *gin.Context)
}

type pizzaController struct {
	service services.PizzaService
}

// NewPizzaController creates a new instance of PizzaController
func NewPizzaController(service services.PizzaService) PizzaController {
	return &pizzaController{service: service}
}

type pizzaRequest struct {
	Name        string          `json:"name" binding:"required"`
	Ingredients string          `json:"ingredients"`
	Price       decimal.Decimal `json:"price"`
	Available   *bool           `json:"available"`
}

func (p *pizzaController) GetAllPizzas(ctx *gin.Context) {
	pizzas, err := p.service.GetAllPizzas()
	if err != nil {
		respondError(ctx, http.StatusInternalServerError, "Failed to retrieve pizzas")
		return
	}
	respondData(ctx, http.StatusOK, pizzas)
}

func (p *pizzaController) GetAvailablePizzas(ctx *gin.Context) {
	pizzas, err := p.service.GetAvailablePizzas()
	if err != nil {
		respondError(ctx, http.StatusInternalServerError, "Failed to retrieve pizzas")
		return
	}
	respondData(ctx, http.StatusOK, pizzas)
}

func (p *pizzaController) GetPizzaByID(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	pizza, err := p.service.GetPizzaByID(id)
	if err != nil {
		if errors.Is(err, services.ErrPizzaNotFound) {
			respondError(ctx, http.StatusNotFound, "Pizza not found")
			return
		}
		respondError(ctx, http.StatusInternalServerError, "Failed to retrieve pizza")
		return
	}
	respondData(ctx, http.StatusOK, pizza)
}

func (p *pizzaController) CreatePizza(ctx *gin.Context) {
	var req pizzaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	created, err := p.service.CreatePizza(models.Pizza{
		Name:        req.Name,
		Ingredients: req.Ingredients,
		Price:       req.Price,
		Available:   available,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidPizza) {
			respondError(ctx, http.StatusBadRequest, err.Error())
			return
		}
		respondError(ctx, http.StatusInternalServerError, "Failed to create pizza")
		return
	}
	respondData(ctx, http.StatusCreated, created)
}

func (p *pizzaController) UpdatePizza(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	existing, err := p.service.GetPizzaByID(id)
	if err != nil {
		if errors.Is(err, services.ErrPizzaNotFound) {
			respondError(ctx, http.StatusNotFound, "Pizza not found")
			return
		}
		respondError(ctx, http.StatusInternalServerError, "Failed to retrieve pizza")
		return
	}

	var req pizzaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	existing.Name = req.Name
	existing.Ingredients = req.Ingredients
	existing.Price = req.Price
	if req.Available != nil {
		existing.Available = *req.Available
	}

	updated, err := p.service.UpdatePizza(existing)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPizza) {
			respondError(ctx, http.StatusBadRequest, err.Error())
			return
		}
		respondError(ctx, http.StatusInternalServerError, "Failed to update pizza")
		return
	}
	respondData(ctx, http.StatusOK, updated)
}

func (p *pizzaController) DeletePizza(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	if err := p.service.DeletePizza(id); err != nil {
		if errors.Is(err, services.ErrPizzaNotFound) {
			respondError(ctx, http.StatusNotFound, "Pizza not found")
			return
		}
		respondError(ctx, http.StatusInternalServerError, "Failed to delete pizza")
		return
	}
	respondData(ctx, http.StatusOK, nil)
}

// pathID parses the :id path parameter, answering 400 itself on failure.
func pathID(ctx *gin.Context) (int, bool) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondError(ctx, http.StatusBadRequest, "Invalid ID format")
		return 0, false
	}
	return id, true
}

func respondData(ctx *gin.Context, status int, data interface{}) {
	ctx.JSON(status, models.APIResponse{
		Success: true,
		Message: "OK",
		Data:    data,
	})
}

func respondError(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, models.APIResponse{
		Success: false,
		Message: message,
	})
}
