package services

import (
	"errors"
	"testing"

	"github.com/franciscosanchezn/pizzeria-console/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePizzaValidation(t *testing.T) {
	db := setupTestDB(t)
	pizzas := NewPizzaService(db)

	tests := []struct {
		name  string
		pizza models.Pizza
	}{
		{name: "empty name", pizza: models.Pizza{Name: "  ", Price: decimal.RequireFromString("9.50")}},
		{name: "zero price", pizza: models.Pizza{Name: "Margherita", Price: decimal.Zero}},
		{name: "negative price", pizza: models.Pizza{Name: "Margherita", Price: decimal.RequireFromString("-1.00")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := pizzas.CreatePizza(tt.pizza)
			assert.True(t, errors.Is(err, ErrInvalidPizza), "err = %v", err)

			var count int64
			db.Model(&models.Pizza{}).Count(&count)
			assert.Equal(t, int64(0), count)
		})
	}
}

func TestPizzaCRUD(t *testing.T) {
	db := setupTestDB(t)
	pizzas := NewPizzaService(db)

	created, err := pizzas.CreatePizza(models.Pizza{
		Name:        "Vegetarian",
		Ingredients: "Tomato Sauce, Mozzarella, Bell Peppers, Olives",
		Price:       decimal.RequireFromString("11.99"),
		Available:   true,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	fetched, err := pizzas.GetPizzaByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Vegetarian", fetched.Name)
	assert.True(t, fetched.Price.Equal(decimal.RequireFromString("11.99")))

	fetched.Available = false
	updated, err := pizzas.UpdatePizza(fetched)
	require.NoError(t, err)
	assert.False(t, updated.Available)

	available, err := pizzas.GetAvailablePizzas()
	require.NoError(t, err)
	assert.Empty(t, available)

	all, err := pizzas.GetAllPizzas()
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, pizzas.DeletePizza(created.ID))
	_, err = pizzas.GetPizzaByID(created.ID)
	assert.True(t, errors.Is(err, ErrPizzaNotFound))
	assert.True(t, errors.Is(pizzas.DeletePizza(created.ID), ErrPizzaNotFound))
}

func TestUpdatePizzaUnknownID(t *testing.T) {
	db := setupTestDB(t)
	pizzas := NewPizzaService(db)

	_, err := pizzas.UpdatePizza(models.Pizza{
		ID:    404,
		Name:  "Ghost",
		Price: decimal.RequireFromString("5.00"),
	})
	assert.True(t, errors.Is(err, ErrPizzaNotFound))
}
