package models

import (
	"time"
)

// CreditorStatus representa o status de um credor
type CreditorStatus string

const (
	CreditorStatusPending CreditorStatus = "pendente"
	CreditorStatusPaid    CreditorStatus = "pago"
	CreditorStatusOverdue CreditorStatus = "atrasado"
)

// Creditor representa um credor do crediário
type Creditor struct {
	ID               uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID       uint           `gorm:"column:customer_id;not null;index" json:"customer_id"`
	CustomerName     string         `gorm:"column:customer_name;not null;size:180" json:"customer_name"` // cópia desnormalizada no momento da criação
	TotalDebt        float64        `gorm:"column:total_debt;not null" json:"total_debt"`
	PaidAmount       float64        `gorm:"column:paid_amount;not null;default:0" json:"paid_amount"`
	RemainingAmount  float64        `gorm:"column:remaining_amount;not null" json:"remaining_amount"`
	DueDate          time.Time      `gorm:"column:due_date;not null" json:"due_date"`
	Description      string         `gorm:"column:description;size:255" json:"description"`
	InstallmentCount int            `gorm:"column:installment_count;not null;default:0" json:"installment_count"`
	Status           CreditorStatus `gorm:"type:varchar(20);not null;default:'pendente'" json:"status"`
	CarneVersion     int            `gorm:"column:carne_version;not null;default:0" json:"carne_version"`
	CreatedAt        time.Time      `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"column:updated_at;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName retorna o nome da tabela para o modelo Creditor
func (Creditor) TableName() string {
	return "creditors"
}
