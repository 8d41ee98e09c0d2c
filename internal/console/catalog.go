package console

import (
	"errors"
	"fmt"
	"strings"

	"github.com/franciscosanchezn/pizzeria-console/internal/console/api"
	"github.com/franciscosanchezn/pizzeria-console/internal/models"
	"github.com/shopspring/decimal"
)

// ErrValidation marks input rejected locally, before any remote call.
var ErrValidation = errors.New("validation failed")

// pizzaAPI is the slice of the sync adapter the catalog needs.
type pizzaAPI interface {
	Pizzas() ([]models.Pizza, error)
	CreatePizza(draft api.PizzaDraft) (models.Pizza, error)
	UpdatePizza(id int, draft api.PizzaDraft) (models.Pizza, error)
	DeletePizza(id int) error
}

// Catalog is the in-memory registry of pizza offerings, kept in sync with
// the backend. Mutations go remote first; local state changes only after the
// server confirms.
type Catalog struct {
	api    pizzaAPI
	pizzas []models.Pizza
}

// NewCatalog creates an empty registry over the given adapter.
func NewCatalog(a pizzaAPI) *Catalog {
	return &Catalog{api: a}
}

// List returns a snapshot of the current entries, stable across calls until
// the next mutation or refresh.
func (c *Catalog) List() []models.Pizza {
	out := make([]models.Pizza, len(c.pizzas))
	copy(out, c.pizzas)
	return out
}

// Find returns the entry with the given id, if present.
func (c *Catalog) Find(id int) (models.Pizza, bool) {
	for _, pizza := range c.pizzas {
		if pizza.ID == id {
			return pizza, true
		}
	}
	return models.Pizza{}, false
}

// Refresh replaces the local registry with the server's catalog.
func (c *Catalog) Refresh() error {
	pizzas, err := c.api.Pizzas()
	if err != nil {
		return fmt.Errorf("refresh catalog: %w", err)
	}
	c.pizzas = pizzas
	return nil
}

// Register creates a new catalog entry. Empty names and non-positive prices
// are rejected here, without a remote call; on success the server-returned
// entry (with its assigned id and timestamp) is appended.
func (c *Catalog) Register(name, ingredients string, price decimal.Decimal) (models.Pizza, error) {
	if strings.TrimSpace(name) == "" {
		return models.Pizza{}, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if !price.IsPositive() {
		return models.Pizza{}, fmt.Errorf("%w: price must be positive, got %s", ErrValidation, price)
	}

	created, err := c.api.CreatePizza(api.PizzaDraft{
		Name:        name,
		Ingredients: ingredients,
		Price:       price,
	})
	if err != nil {
		return models.Pizza{}, fmt.Errorf("register pizza: %w", err)
	}

	c.pizzas = append(c.pizzas, created)
	return created, nil
}

// Amend updates an existing entry. The remote call goes first; the local
// entry is replaced only with the server's confirmed representation.
func (c *Catalog) Amend(id int, draft api.PizzaDraft) (models.Pizza, error) {
	if _, ok := c.Find(id); !ok {
		return models.Pizza{}, fmt.Errorf("%w: pizza %d not in catalog", ErrValidation, id)
	}

	updated, err := c.api.UpdatePizza(id, draft)
	if err != nil {
		return models.Pizza{}, fmt.Errorf("amend pizza: %w", err)
	}

	for i := range c.pizzas {
		if c.pizzas[i].ID == id {
			c.pizzas[i] = updated
			break
		}
	}
	return updated, nil
}

// Retire removes an entry, remote first.
func (c *Catalog) Retire(id int) error {
	if _, ok := c.Find(id); !ok {
		return fmt.Errorf("%w: pizza %d not in catalog", ErrValidation, id)
	}

	if err := c.api.DeletePizza(id); err != nil {
		return fmt.Errorf("retire pizza: %w", err)
	}

	for i := range c.pizzas {
		if c.pizzas[i].ID == id {
			c.pizzas = append(c.pizzas[:i], c.pizzas[i+1:]...)
			break
		}
	}
	return nil
}
