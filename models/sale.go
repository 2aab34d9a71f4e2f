package models

import (
	"time"
)

// PaymentMethod representa a forma de pagamento de uma venda
type PaymentMethod string

const (
	PaymentMethodCash      PaymentMethod = "DINHEIRO"
	PaymentMethodCard      PaymentMethod = "CARTAO"
	PaymentMethodCrediario PaymentMethod = "CREDIARIO"
)

// Sale representa uma venda registrada no PDV
type Sale struct {
	ID            uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID    uint          `gorm:"column:customer_id;not null;index" json:"customer_id"`
	CreditorID    *uint         `gorm:"column:creditor_id;index" json:"creditor_id,omitempty"` // preenchido quando a venda é no crediário
	Total         float64       `gorm:"column:total;not null" json:"total"`
	PaymentMethod PaymentMethod `gorm:"type:varchar(20);not null" json:"payment_method"`
	Items         []SaleItem    `gorm:"foreignKey:SaleID" json:"items"`
	CreatedAt     time.Time     `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName retorna o nome da tabela para o modelo Sale
func (Sale) TableName() string {
	return "sales"
}

// SaleItem representa um item da venda (snapshot do produto no momento da venda)
type SaleItem struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	SaleID      uint    `gorm:"column:sale_id;not null;index" json:"sale_id"`
	ProductID   uint    `gorm:"column:product_id;not null" json:"product_id"`
	ProductName string  `gorm:"column:product_name;not null;size:200" json:"product_name"`
	Quantity    int     `gorm:"column:quantity;not null" json:"quantity"`
	UnitPrice   float64 `gorm:"column:unit_price;not null" json:"unit_price"`
	LineTotal   float64 `gorm:"column:line_total;not null" json:"line_total"`
}

// TableName retorna o nome da tabela para o modelo SaleItem
func (SaleItem) TableName() string {
	return "sale_items"
}
