package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/stockroom-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Sale represents a sales invoice
type Sale struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceNumber string             `gorm:"size:50;uniqueIndex;not null" json:"invoice_number"`
	CustomerID    *uuid.UUID         `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	CashierID     uuid.UUID          `gorm:"type:uuid;not null;index" json:"cashier_id"`
	OrderStatus   enum.OrderStatus   `gorm:"size:30;not null;default:'draft';index" json:"order_status"`
	PaymentStatus enum.PaymentStatus `gorm:"size:20;not null;default:'unpaid';index" json:"payment_status"`
	GrandTotal    decimal.Decimal    `gorm:"type:numeric(15,2);not null;default:0" json:"grand_total"`
	PaidAmount    decimal.Decimal    `gorm:"type:numeric(15,2);not null;default:0" json:"paid_amount"`
	Outstanding   decimal.Decimal    `gorm:"type:numeric(15,2);not null;default:0" json:"outstanding"`
	SaleDate      time.Time          `gorm:"not null;index" json:"sale_date"`
	Note          *string            `gorm:"type:text" json:"note,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`

	// Relationships
	Customer *Customer  `gorm:"foreignKey:CustomerID;constraint:OnDelete:RESTRICT" json:"customer,omitempty"`
	Cashier  *User      `gorm:"foreignKey:CashierID" json:"cashier,omitempty"`
	Items    []SaleItem `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	Payments []Payment  `gorm:"foreignKey:SaleID;constraint:OnDelete:RESTRICT" json:"payments,omitempty"`
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// ApplyPayments re-derives paid amount, outstanding and payment status from
// the total of all payments recorded against the sale.
func (s *Sale) ApplyPayments(paid decimal.Decimal) {
	s.PaidAmount = paid
	s.Outstanding = decimal.Max(s.GrandTotal.Sub(paid), decimal.Zero)
	switch {
	case paid.IsZero():
		s.PaymentStatus = enum.PaymentStatusUnpaid
	case paid.LessThan(s.GrandTotal):
		s.PaymentStatus = enum.PaymentStatusPartial
	default:
		s.PaymentStatus = enum.PaymentStatusPaid
	}
}

// SaleItem is one product line of a sale
type SaleItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	SaleID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(15,2);not null" json:"unit_price"`
	LineTotal decimal.Decimal `gorm:"type:numeric(15,2);not null" json:"line_total"`

	// Relationships
	Product *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new sale item
func (i *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleItem model
func (SaleItem) TableName() string {
	return "sale_items"
}

// Payment is money received against a sale
type Payment struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	SaleID        uuid.UUID          `gorm:"type:uuid;not null;index" json:"sale_id"`
	Amount        decimal.Decimal    `gorm:"type:numeric(15,2);not null" json:"amount"`
	PaymentMethod enum.PaymentMethod `gorm:"size:20;not null" json:"payment_method"`
	Reference     *string            `gorm:"size:100" json:"reference,omitempty"`
	PaidAt        time.Time          `gorm:"not null" json:"paid_at"`
	CreatedAt     time.Time          `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.PaidAt.IsZero() {
		p.PaidAt = time.Now()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
