package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/stockroom-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Customer represents a buyer
type Customer struct {
	ID           uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	Name         string            `gorm:"size:255;not null" json:"name"`
	Email        *string           `gorm:"size:255" json:"email,omitempty"`
	Phone        *string           `gorm:"size:50" json:"phone,omitempty"`
	Address      *string           `gorm:"type:text" json:"address,omitempty"`
	CustomerType enum.CustomerType `gorm:"size:20;not null;default:'RETAIL'" json:"customer_type"`
	CreditLimit  decimal.Decimal   `gorm:"type:numeric(15,2);not null;default:0" json:"credit_limit"`
	IsActive     bool              `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
