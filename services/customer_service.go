package services

import (
	"errors"

	"crediario/models"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// CreateCustomerDTO representa os dados de cadastro de um cliente
type CreateCustomerDTO struct {
	Name    string `json:"name" validate:"required,min=2,max=180"`
	Phone   string `json:"phone" validate:"omitempty,max=20"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address" validate:"omitempty,max=255"`
}

// UpdateCustomerDTO representa os dados de atualização de um cliente
type UpdateCustomerDTO struct {
	Name    string `json:"name" validate:"omitempty,min=2,max=180"`
	Phone   string `json:"phone" validate:"omitempty,max=20"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address" validate:"omitempty,max=255"`
}

// CustomerService fornece métodos para o cadastro de clientes
type CustomerService struct {
	db        *gorm.DB
	validator *validator.Validate
}

// NewCustomerService cria uma nova instância de CustomerService
func NewCustomerService(db *gorm.DB) *CustomerService {
	return &CustomerService{
		db:        db,
		validator: validator.New(),
	}
}

// Create cadastra um novo cliente
func (s *CustomerService) Create(dto CreateCustomerDTO) (*models.Customer, error) {
	if err := s.validator.Struct(dto); err != nil {
		return nil, translateValidationErrors(err)
	}

	customer := &models.Customer{
		Name:    dto.Name,
		Phone:   dto.Phone,
		Email:   dto.Email,
		Address: dto.Address,
	}
	if err := s.db.Create(customer).Error; err != nil {
		return nil, errors.New("erro ao criar cliente")
	}
	return customer, nil
}

// GetByID retorna um cliente por ID
func (s *CustomerService) GetByID(id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := s.db.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// List retorna todos os clientes
func (s *CustomerService) List() ([]models.Customer, error) {
	var customers []models.Customer
	if err := s.db.Order("name ASC").Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

// Update atualiza o cadastro de um cliente. Credores existentes mantêm a
// cópia desnormalizada do nome feita na criação.
func (s *CustomerService) Update(id uint, dto UpdateCustomerDTO) (*models.Customer, error) {
	if err := s.validator.Struct(dto); err != nil {
		return nil, translateValidationErrors(err)
	}

	customer, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if dto.Name != "" {
		customer.Name = dto.Name
	}
	if dto.Phone != "" {
		customer.Phone = dto.Phone
	}
	if dto.Email != "" {
		customer.Email = dto.Email
	}
	if dto.Address != "" {
		customer.Address = dto.Address
	}

	if err := s.db.Save(customer).Error; err != nil {
		return nil, errors.New("erro ao atualizar cliente")
	}
	return customer, nil
}

// Delete remove um cliente sem credores abertos
func (s *CustomerService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}

	var open int64
	if err := s.db.Model(&models.Creditor{}).
		Where("customer_id = ? AND status <> ?", id, models.CreditorStatusPaid).
		Count(&open).Error; err != nil {
		return err
	}
	if open > 0 {
		return NewValidationError("cliente possui crediário em aberto")
	}

	return s.db.Delete(&models.Customer{}, id).Error
}
