package services

import (
	"errors"

	"crediario/models"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// CreateProductDTO representa os dados de cadastro de um produto
type CreateProductDTO struct {
	Name  string  `json:"name" validate:"required,min=2,max=200"`
	Code  string  `json:"code" validate:"required,min=1,max=64"`
	Price float64 `json:"price" validate:"required,gt=0"`
	Stock int     `json:"stock" validate:"gte=0"`
}

// UpdateProductDTO representa os dados de atualização de um produto
type UpdateProductDTO struct {
	Name  string   `json:"name" validate:"omitempty,min=2,max=200"`
	Price *float64 `json:"price" validate:"omitempty,gt=0"`
	Stock *int     `json:"stock" validate:"omitempty,gte=0"`
}

// ProductService fornece métodos para o catálogo de produtos
type ProductService struct {
	db        *gorm.DB
	validator *validator.Validate
}

// NewProductService cria uma nova instância de ProductService
func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{
		db:        db,
		validator: validator.New(),
	}
}

// Create cadastra um novo produto
func (s *ProductService) Create(dto CreateProductDTO) (*models.Product, error) {
	if err := s.validator.Struct(dto); err != nil {
		return nil, translateValidationErrors(err)
	}

	var existing models.Product
	if err := s.db.Where("code = ?", dto.Code).First(&existing).Error; err == nil {
		return nil, NewValidationError("já existe um produto com este código")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	product := &models.Product{
		Name:  dto.Name,
		Code:  dto.Code,
		Price: dto.Price,
		Stock: dto.Stock,
	}
	if err := s.db.Create(product).Error; err != nil {
		return nil, errors.New("erro ao criar produto")
	}
	return product, nil
}

// GetByID retorna um produto por ID
func (s *ProductService) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

// List retorna todos os produtos
func (s *ProductService) List() ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Order("name ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Update atualiza um produto
func (s *ProductService) Update(id uint, dto UpdateProductDTO) (*models.Product, error) {
	if err := s.validator.Struct(dto); err != nil {
		return nil, translateValidationErrors(err)
	}

	product, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if dto.Name != "" {
		product.Name = dto.Name
	}
	if dto.Price != nil {
		product.Price = *dto.Price
	}
	if dto.Stock != nil {
		product.Stock = *dto.Stock
	}

	if err := s.db.Save(product).Error; err != nil {
		return nil, errors.New("erro ao atualizar produto")
	}
	return product, nil
}

// Delete remove um produto do catálogo
func (s *ProductService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.db.Delete(&models.Product{}, id).Error
}
