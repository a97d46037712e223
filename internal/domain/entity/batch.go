package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Batch is one stock receipt from a supplier
type Batch struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	SupplierID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"supplier_id"`
	InvoiceNumber string     `gorm:"size:100" json:"invoice_number"`
	PurchaseDate  time.Time  `gorm:"type:date;not null;index" json:"purchase_date"`
	Note          *string    `gorm:"type:text" json:"note,omitempty"`
	CreatedBy     *uuid.UUID `gorm:"type:uuid" json:"created_by,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// Relationships
	Supplier *Supplier   `gorm:"foreignKey:SupplierID;constraint:OnDelete:RESTRICT" json:"supplier,omitempty"`
	Items    []BatchItem `gorm:"foreignKey:BatchID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new batch
func (b *Batch) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Batch model
func (Batch) TableName() string {
	return "batches"
}

// TotalCost returns Σ quantity × unit_cost over the batch lines
func (b *Batch) TotalCost() decimal.Decimal {
	total := decimal.Zero
	for _, it := range b.Items {
		total = total.Add(it.LineCost())
	}
	return total
}

// HasProduct reports whether the batch has a line for productID
func (b *Batch) HasProduct(productID uuid.UUID) bool {
	for _, it := range b.Items {
		if it.ProductID == productID {
			return true
		}
	}
	return false
}

// BatchItem is a single received product line of a batch
type BatchItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	BatchID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"batch_id"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	LineNo    int             `gorm:"not null" json:"line_no"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitCost  decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0" json:"unit_cost"`
	CreatedAt time.Time       `json:"created_at"`

	// Relationships
	Product *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new batch item
func (i *BatchItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the BatchItem model
func (BatchItem) TableName() string {
	return "batch_items"
}

// LineCost returns quantity × unit_cost
func (i BatchItem) LineCost() decimal.Decimal {
	return i.UnitCost.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
