package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/stockroom-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PurchaseRequest is an internal request to buy stock
type PurchaseRequest struct {
	ID          uuid.UUID                  `gorm:"type:uuid;primary_key" json:"id"`
	PRNumber    string                     `gorm:"size:50;uniqueIndex;not null" json:"pr_number"`
	RequesterID uuid.UUID                  `gorm:"type:uuid;not null;index" json:"requester_id"`
	Status      enum.PurchaseRequestStatus `gorm:"size:20;not null;default:'draft';index" json:"status"`
	Note        *string                    `gorm:"type:text" json:"note,omitempty"`
	ReviewedBy  *uuid.UUID                 `gorm:"type:uuid" json:"reviewed_by,omitempty"`
	ReviewedAt  *time.Time                 `json:"reviewed_at,omitempty"`
	CreatedAt   time.Time                  `json:"created_at"`
	UpdatedAt   time.Time                  `json:"updated_at"`

	// Relationships
	Requester *User                 `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	Items     []PurchaseRequestItem `gorm:"foreignKey:PurchaseRequestID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new purchase request
func (p *PurchaseRequest) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PurchaseRequest model
func (PurchaseRequest) TableName() string {
	return "purchase_requests"
}

// EstimatedTotal returns Σ requested_qty × estimated_price
func (p *PurchaseRequest) EstimatedTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range p.Items {
		total = total.Add(it.EstimatedPrice.Mul(decimal.NewFromInt(int64(it.RequestedQty))))
	}
	return total
}

// PurchaseRequestItem is one requested product line
type PurchaseRequestItem struct {
	ID                uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	PurchaseRequestID uuid.UUID       `gorm:"type:uuid;not null;index" json:"purchase_request_id"`
	ProductID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	SupplierID        *uuid.UUID      `gorm:"type:uuid;index" json:"supplier_id,omitempty"`
	LineNo            int             `gorm:"not null" json:"line_no"`
	RequestedQty      int             `gorm:"not null" json:"requested_qty"`
	EstimatedPrice    decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0" json:"estimated_price"`

	// Relationships
	Product  *Product  `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT" json:"product,omitempty"`
	Supplier *Supplier `gorm:"foreignKey:SupplierID;constraint:OnDelete:RESTRICT" json:"supplier,omitempty"`
}

// BeforeCreate generates a UUID before creating a new purchase request item
func (i *PurchaseRequestItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PurchaseRequestItem model
func (PurchaseRequestItem) TableName() string {
	return "purchase_request_items"
}
