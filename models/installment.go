package models

import (
	"time"
)

// Installment representa uma parcela do carnê
type Installment struct {
	ID                uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	CreditorID        uint       `gorm:"column:creditor_id;not null;index" json:"creditor_id"`
	BatchVersion      int        `gorm:"column:batch_version;not null;default:1" json:"batch_version"` // versão do carnê que gerou a parcela
	InstallmentNumber int        `gorm:"column:installment_number;not null" json:"installment_number"`
	DueDate           time.Time  `gorm:"column:due_date;not null;index" json:"due_date"`
	Amount            float64    `gorm:"column:amount;not null" json:"amount"`
	Paid              bool       `gorm:"column:paid;not null;default:false" json:"paid"`
	PaidAt            *time.Time `gorm:"column:paid_at" json:"paid_at,omitempty"` // data do pagamento real
	Canceled          bool       `gorm:"column:canceled;not null;default:false" json:"canceled"`
	CreatedAt         time.Time  `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName retorna o nome da tabela para o modelo Installment
func (Installment) TableName() string {
	return "installments"
}
