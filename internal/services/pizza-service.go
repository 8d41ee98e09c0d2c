package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/franciscosanchezn/pizzeria-console/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrPizzaNotFound is returned when no pizza exists with the given ID.
	ErrPizzaNotFound = errors.New("pizza not found")
	// ErrInvalidPizza is returned for catalog data that fails validation.
	ErrInvalidPizza = errors.New("invalid pizza data")
)

// PizzaService provides methods to interact with the pizza catalog
type PizzaService interface {
	// GetAllPizzas retrieves all pizzas from the database
	GetAllPizzas() ([]models.Pizza, error)
	// GetAvailablePizzas retrieves only the pizzas flagged as available
	GetAvailablePizzas() ([]models.Pizza, error)
	// GetPizzaByID retrieves a pizza by its ID
	GetPizzaByID(id int) (models.Pizza, error)
	// CreatePizza creates a new pizza in the database
	CreatePizza(pizza models.Pizza) (models.Pizza, error)
	// UpdatePizza updates an existing pizza in the database
	UpdatePizza(pizza models.Pizza) (models.Pizza, error)
	// DeletePizza deletes a pizza from the database by its ID
	DeletePizza(id int) error
}

// pizzaService is the implementation of the PizzaService interface
type pizzaService struct {
	db *gorm.DB
}

// NewPizzaService creates a new instance of PizzaService
func NewPizzaService(db *gorm.DB) PizzaService {
	return &pizzaService{db: db}
}

func (s *pizzaService) GetAllPizzas() ([]models.Pizza, error) {
	var pizzas []models.Pizza
	if err := s.db.Find(&pizzas).Error; err != nil {
		return nil, err
	}
	return pizzas, nil
}

func (s *pizzaService) GetAvailablePizzas() ([]models.Pizza, error) {
	var pizzas []models.Pizza
	if err := s.db.Where("available = ?", true).Find(&pizzas).Error; err != nil {
		return nil, err
	}
	return pizzas, nil
}

func (s *pizzaService) GetPizzaByID(id int) (models.Pizza, error) {
	var pizza models.Pizza
	if err := s.db.First(&pizza, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Pizza{}, ErrPizzaNotFound
		}
		return models.Pizza{}, err
	}
	return pizza, nil
}

func (s *pizzaService) CreatePizza(pizza models.Pizza) (models.Pizza, error) {
	if err := validatePizza(pizza); err != nil {
		return models.Pizza{}, err
	}
	if err := s.db.Create(&pizza).Error; err != nil {
		return models.Pizza{}, err
	}
	return pizza, nil
}

func (s *pizzaService) UpdatePizza(pizza models.Pizza) (models.Pizza, error) {
	if err := validatePizza(pizza); err != nil {
		return models.Pizza{}, err
	}
	if _, err := s.GetPizzaByID(pizza.ID); err != nil {
		return models.Pizza{}, err
	}
	if err := s.db.Save(&pizza).Error; err != nil {
		return models.Pizza{}, err
	}
	return pizza, nil
}

func (s *pizzaService) DeletePizza(id int) error {
	result := s.db.Delete(&models.Pizza{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPizzaNotFound
	}
	return nil
}

func validatePizza(pizza models.Pizza) error {
	if strings.TrimSpace(pizza.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidPizza)
	}
	if !pizza.Price.IsPositive() {
		return fmt.Errorf("%w: price must be positive, got %s", ErrInvalidPizza, pizza.Price)
	}
	return nil
}
