package services

import (
	"errors"
	"time"

	"crediario/models"
	"crediario/utils"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// SaleItemDTO representa um item de venda
type SaleItemDTO struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,gt=0"`
}

// CreateSaleDTO representa os dados para registro de uma venda
type CreateSaleDTO struct {
	CustomerID       uint                 `json:"customer_id" validate:"required"`
	PaymentMethod    models.PaymentMethod `json:"payment_method" validate:"required,oneof=DINHEIRO CARTAO CREDIARIO"`
	Items            []SaleItemDTO        `json:"items" validate:"required,min=1,dive"`
	Description      string               `json:"description" validate:"omitempty,max=255"`
	DueDate          *time.Time           `json:"due_date,omitempty"`
	InstallmentCount int                  `json:"installment_count" validate:"omitempty,gte=1,lte=36"`
}

// SaleService fornece métodos para vendas do PDV
type SaleService struct {
	db        *gorm.DB
	validator *validator.Validate
	now       func() time.Time
}

// NewSaleService cria uma nova instância de SaleService
func NewSaleService(db *gorm.DB) *SaleService {
	return &SaleService{
		db:        db,
		validator: validator.New(),
		now:       time.Now,
	}
}

// Create registra uma venda. Vendas no crediário abrem o credor na mesma
// transação em que o estoque é baixado e os itens são gravados.
func (s *SaleService) Create(dto CreateSaleDTO) (*models.Sale, error) {
	if err := s.validator.Struct(dto); err != nil {
		return nil, translateValidationErrors(err)
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, errors.New("erro ao iniciar transação")
	}

	var customer models.Customer
	if err := tx.First(&customer, dto.CustomerID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, errors.New("erro ao buscar cliente")
	}

	// Baixa o estoque e monta o snapshot dos itens
	var total float64
	items := make([]models.SaleItem, len(dto.Items))
	for i, item := range dto.Items {
		var product models.Product
		if err := tx.First(&product, item.ProductID).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProductNotFound
			}
			return nil, errors.New("erro ao buscar produto")
		}

		if product.Stock < item.Quantity {
			tx.Rollback()
			return nil, NewValidationError("estoque insuficiente para o produto " + product.Name)
		}

		product.Stock -= item.Quantity
		if err := tx.Save(&product).Error; err != nil {
			tx.Rollback()
			return nil, errors.New("erro ao atualizar estoque")
		}

		lineTotal := round2(product.Price * float64(item.Quantity))
		total = round2(total + lineTotal)
		items[i] = models.SaleItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    item.Quantity,
			UnitPrice:   product.Price,
			LineTotal:   lineTotal,
		}
	}

	sale := &models.Sale{
		CustomerID:    customer.ID,
		Total:         total,
		PaymentMethod: dto.PaymentMethod,
	}
	if err := tx.Create(sale).Error; err != nil {
		tx.Rollback()
		return nil, errors.New("erro ao criar venda")
	}

	for i := range items {
		items[i].SaleID = sale.ID
		if err := tx.Create(&items[i]).Error; err != nil {
			tx.Rollback()
			return nil, errors.New("erro ao criar item da venda")
		}
	}
	sale.Items = items

	// Venda no crediário abre o credor
	if dto.PaymentMethod == models.PaymentMethodCrediario {
		dueDate := s.now().AddDate(0, 1, 0)
		if dto.DueDate != nil {
			dueDate = *dto.DueDate
		}
		creditor := &models.Creditor{
			CustomerID:       customer.ID,
			CustomerName:     customer.Name,
			TotalDebt:        total,
			PaidAmount:       0,
			RemainingAmount:  total,
			DueDate:          dueDate,
			Description:      dto.Description,
			InstallmentCount: dto.InstallmentCount,
			Status:           models.CreditorStatusPending,
		}
		if err := tx.Create(creditor).Error; err != nil {
			tx.Rollback()
			return nil, errors.New("erro ao abrir credor")
		}
		sale.CreditorID = &creditor.ID
		if err := tx.Save(sale).Error; err != nil {
			tx.Rollback()
			return nil, errors.New("erro ao vincular credor à venda")
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, errors.New("erro ao confirmar transação")
	}

	utils.GetMetrics().RecordLedgerOperation("sale_create", nil)
	return sale, nil
}

// GetByID retorna uma venda com seus itens
func (s *SaleService) GetByID(id uint) (*models.Sale, error) {
	var sale models.Sale
	if err := s.db.Preload("Items").First(&sale, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// ListByCustomer retorna as vendas de um cliente
func (s *SaleService) ListByCustomer(customerID uint) ([]models.Sale, error) {
	var sales []models.Sale
	if err := s.db.Where("customer_id = ?", customerID).
		Preload("Items").
		Order("created_at DESC").
		Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}
