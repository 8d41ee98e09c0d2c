package services

import (
	"errors"

	"github.com/franciscosanchezn/pizzeria-console/internal/models"
	"gorm.io/gorm"
)

// ErrCustomerNotFound is returned when no customer exists with the given ID.
var ErrCustomerNotFound = errors.New("customer not found")

type CustomerService interface {
	GetAllCustomers() ([]models.Customer, error)
	GetCustomerByID(id int) (*models.Customer, error)
	CreateCustomer(customer *models.Customer) error
	UpdateCustomer(customer *models.Customer) error
	DeleteCustomer(id int) error
}

type customerService struct {
	db *gorm.DB
}

func NewCustomerService(db *gorm.DB) CustomerService {
	return &customerService{db: db}
}

func (s *customerService) GetAllCustomers() ([]models.Customer, error) {
	var customers []models.Customer
	if err := s.db.Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

func (s *customerService) GetCustomerByID(id int) (*models.Customer, error) {
	var customer models.Customer
	if err := s.db.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return &customer, nil
}

func (s *customerService) CreateCustomer(customer *models.Customer) error {
	return s.db.Create(customer).Error
}

func (s *customerService) UpdateCustomer(customer *models.Customer) error {
	if _, err := s.GetCustomerByID(customer.ID); err != nil {
		return err
	}
	return s.db.Save(customer).Error
}

func (s *customerService) DeleteCustomer(id int) error {
	result := s.db.Delete(&models.Customer{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCustomerNotFound
	}
	return nil
}
