package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/stockroom-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Return is goods brought back by a customer
type Return struct {
	ID           uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	ReturnDate   time.Time         `gorm:"type:date;not null" json:"return_date"`
	CustomerID   *uuid.UUID        `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	ProductID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity     int               `gorm:"not null" json:"quantity"`
	Reason       *string           `gorm:"type:text" json:"reason,omitempty"`
	RefundAmount decimal.Decimal   `gorm:"type:numeric(15,2);not null;default:0" json:"refund_amount"`
	Status       enum.ReturnStatus `gorm:"size:20;not null;default:'Pending'" json:"status"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`

	// Relationships
	Customer *Customer `gorm:"foreignKey:CustomerID;constraint:OnDelete:RESTRICT" json:"customer,omitempty"`
	Product  *Product  `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new return
func (r *Return) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Return model
func (Return) TableName() string {
	return "returns"
}
