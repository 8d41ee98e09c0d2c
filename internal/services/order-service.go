package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/franciscosanchezn/pizzeria-console/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	// ErrOrderNotFound is returned when no order exists with the given ID.
	ErrOrderNotFound = errors.New("order not found")
	// ErrInvalidOrder is returned for order data that fails validation.
	ErrInvalidOrder = errors.New("invalid order data")
	// ErrOrderDelivered is returned for transitions on a delivered order:
	// Entregado is terminal.
	ErrOrderDelivered = errors.New("order already delivered")
	// ErrInvalidTransition is returned for any transition other than
	// Pendiente -> Entregado.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// PlaceOrderInput carries the caller-supplied fields of a new order. The
// total and the initial status are never supplied by the caller.
type PlaceOrderInput struct {
	PizzaID       int
	Quantity      int
	CustomerName  string
	CustomerPhone string
	Notes         string
	CreatedBy     string
}

// OrderService provides methods to manage the order lifecycle
type OrderService interface {
	// GetAllOrders retrieves all orders
	GetAllOrders() ([]models.Order, error)
	// GetPendingOrders retrieves orders still waiting to be delivered
	GetPendingOrders() ([]models.Order, error)
	// GetOrdersByStatus retrieves orders with the given status
	GetOrdersByStatus(status string) ([]models.Order, error)
	// GetOrderByID retrieves an order by its ID
	GetOrderByID(id int) (models.Order, error)
	// PlaceOrder validates the input, fixes the total from the current
	// unit price and creates the order with status Pendiente
	PlaceOrder(in PlaceOrderInput) (models.Order, error)
	// UpdateStatus applies the Pendiente -> Entregado transition
	UpdateStatus(id int, status string) (models.Order, error)
	// DeleteOrder deletes an order by its ID
	DeleteOrder(id int) error
}

type orderService struct {
	db *gorm.DB
}

// NewOrderService creates a new instance of OrderService
func NewOrderService(db *gorm.DB) OrderService {
	return &orderService{db: db}
}

func (s *orderService) GetAllOrders() ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.Order("created_at asc").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *orderService) GetPendingOrders() ([]models.Order, error) {
	return s.GetOrdersByStatus(models.StatusPending)
}

func (s *orderService) GetOrdersByStatus(status string) ([]models.Order, error) {
	if !models.ValidStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidOrder, status)
	}
	var orders []models.Order
	if err := s.db.Where("status = ?", status).Order("created_at asc").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *orderService) GetOrderByID(id int) (models.Order, error) {
	var order models.Order
	if err := s.db.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, ErrOrderNotFound
		}
		return models.Order{}, err
	}
	return order, nil
}

func (s *orderService) PlaceOrder(in PlaceOrderInput) (models.Order, error) {
	if in.Quantity < 1 {
		return models.Order{}, fmt.Errorf("%w: quantity must be at least 1, got %d", ErrInvalidOrder, in.Quantity)
	}
	if strings.TrimSpace(in.CustomerName) == "" {
		return models.Order{}, fmt.Errorf("%w: customer name is required", ErrInvalidOrder)
	}
	if strings.TrimSpace(in.CustomerPhone) == "" {
		return models.Order{}, fmt.Errorf("%w: customer phone is required", ErrInvalidOrder)
	}

	var pizza models.Pizza
	if err := s.db.First(&pizza, in.PizzaID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, fmt.Errorf("%w: pizza %d does not exist", ErrInvalidOrder, in.PizzaID)
		}
		return models.Order{}, err
	}

	// The total is fixed here. Catalog price edits after this point do not
	// reach already-placed orders.
	order := models.Order{
		PizzaID:       pizza.ID,
		Quantity:      in.Quantity,
		CustomerName:  in.CustomerName,
		CustomerPhone: in.CustomerPhone,
		Notes:         in.Notes,
		Total:         pizza.Price.Mul(decimal.NewFromInt(int64(in.Quantity))),
		Status:        models.StatusPending,
		CreatedBy:     in.CreatedBy,
	}
	if err := s.db.Create(&order).Error; err != nil {
		return models.Order{}, err
	}
	return order, nil
}

func (s *orderService) UpdateStatus(id int, status string) (models.Order, error) {
	if !models.ValidStatus(status) {
		return models.Order{}, fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, status)
	}

	order, err := s.GetOrderByID(id)
	if err != nil {
		return models.Order{}, err
	}

	if order.Status == models.StatusDelivered {
		return models.Order{}, ErrOrderDelivered
	}
	if order.Status != models.StatusPending || status != models.StatusDelivered {
		return models.Order{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, status)
	}

	order.Status = status
	if err := s.db.Save(&order).Error; err != nil {
		return models.Order{}, err
	}
	return order, nil
}

func (s *orderService) DeleteOrder(id int) error {
	result := s.db.Delete(&models.Order{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}
