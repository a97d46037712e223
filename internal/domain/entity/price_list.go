package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PriceListEntry is the selling price of a product
type PriceListEntry struct {
	ID         uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	ProductID  uuid.UUID        `gorm:"type:uuid;not null;index" json:"product_id"`
	Price      decimal.Decimal  `gorm:"type:numeric(15,2);not null" json:"price"`
	OldPrice   *decimal.Decimal `gorm:"type:numeric(15,2)" json:"old_price,omitempty"`
	BatchPrice *decimal.Decimal `gorm:"type:numeric(15,2)" json:"batch_price,omitempty"`
	IsActive   bool             `gorm:"default:true;index" json:"is_active"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`

	// Relationships
	Product *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new price list entry
func (p *PriceListEntry) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PriceListEntry model
func (PriceListEntry) TableName() string {
	return "price_lists"
}

// Margin returns price minus batch price, or zero when the batch price is unknown
func (p *PriceListEntry) Margin() decimal.Decimal {
	if p.BatchPrice == nil {
		return decimal.Zero
	}
	return p.Price.Sub(*p.BatchPrice)
}
