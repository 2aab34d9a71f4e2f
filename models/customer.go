package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Customer representa um cliente da loja
type Customer struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:name;not null;size:180;index" json:"name"`
	Phone     string    `gorm:"column:phone;size:20" json:"phone"`
	Email     string    `gorm:"column:email;size:100" json:"email"`
	Address   string    `gorm:"column:address;size:255" json:"address"`
	CreatedAt time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName retorna o nome da tabela para o modelo Customer
func (Customer) TableName() string {
	return "customers"
}

// BeforeCreate hook de validação antes da criação
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if len(c.Name) < 2 || len(c.Name) > 180 {
		return errors.New("nome deve ter entre 2 e 180 caracteres")
	}
	return nil
}
