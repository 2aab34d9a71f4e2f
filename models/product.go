package models

import (
	"time"
)

// Product representa um produto do catálogo
type Product struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:name;not null;size:200" json:"name"`
	Code      string    `gorm:"column:code;not null;size:64;uniqueIndex" json:"code"`
	Price     float64   `gorm:"column:price;not null" json:"price"`
	Stock     int       `gorm:"column:stock;not null;default:0" json:"stock"`
	CreatedAt time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName retorna o nome da tabela para o modelo Product
func (Product) TableName() string {
	return "products"
}
