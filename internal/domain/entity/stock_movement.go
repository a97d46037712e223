package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/stockroom-api/internal/domain/enum"
	"gorm.io/gorm"
)

// StockMovement is an append-only ledger entry. Quantity is a signed delta.
type StockMovement struct {
	ID           uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	ProductID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"product_id"`
	BatchID      *uuid.UUID        `gorm:"type:uuid;index" json:"batch_id,omitempty"`
	MovementType enum.MovementType `gorm:"size:20;not null;index" json:"movement_type"`
	Quantity     int               `gorm:"not null" json:"quantity"`
	Reference    *string           `gorm:"size:100" json:"reference,omitempty"`
	Note         *string           `gorm:"type:text" json:"note,omitempty"`
	MovementDate time.Time         `gorm:"not null;index" json:"movement_date"`
	CreatedBy    *uuid.UUID        `gorm:"type:uuid" json:"created_by,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`

	// Relationships
	Product *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT" json:"product,omitempty"`
	Batch   *Batch   `gorm:"foreignKey:BatchID;constraint:OnDelete:RESTRICT" json:"batch,omitempty"`
}

// BeforeCreate generates a UUID and stamps the movement date
func (m *StockMovement) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.MovementDate.IsZero() {
		m.MovementDate = time.Now()
	}
	return nil
}

// TableName returns the table name for the StockMovement model
func (StockMovement) TableName() string {
	return "stock_movements"
}
