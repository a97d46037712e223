package request

import (
	"github.com/google/uuid"
	"github.com/sangkips/stockroom-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// SaleItemRequest is one line of a sale
type SaleItemRequest struct {
	ProductID uuid.UUID        `json:"product_id" binding:"required"`
	Quantity  int              `json:"quantity" binding:"required,gt=0"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// CreateSaleRequest represents a sale creation request
type CreateSaleRequest struct {
	CustomerID *uuid.UUID        `json:"customer_id"`
	SaleDate   string            `json:"sale_date" binding:"omitempty,datetime=2006-01-02"`
	Note       *string           `json:"note"`
	Status     enum.OrderStatus  `json:"status"`
	Items      []SaleItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateSaleStatusRequest represents a sale status change
type UpdateSaleStatusRequest struct {
	Status enum.OrderStatus `json:"status" binding:"required"`
}

// SaleFilterRequest represents sale filter parameters
type SaleFilterRequest struct {
	OrderStatus   string `form:"status" binding:"omitempty,oneof=draft pending_inventory submitted completed"`
	PaymentStatus string `form:"payment_status" binding:"omitempty,oneof=unpaid partial paid"`
	CustomerID    string `form:"customer_id" binding:"omitempty,uuid"`
	From          string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To            string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	Page          int    `form:"page"`
	PerPage       int    `form:"per_page"`
}

// RecordPaymentRequest represents a payment against a sale
type RecordPaymentRequest struct {
	Amount        *decimal.Decimal   `json:"amount" binding:"required"`
	PaymentMethod enum.PaymentMethod `json:"payment_method" binding:"required"`
	Reference     *string            `json:"reference" binding:"omitempty,max=100"`
}

// PurchaseRequestItemRequest is one requested line
type PurchaseRequestItemRequest struct {
	ProductID      uuid.UUID       `json:"product_id" binding:"required"`
	SupplierID     *uuid.UUID      `json:"supplier_id"`
	RequestedQty   int             `json:"requested_qty" binding:"required,gt=0"`
	EstimatedPrice decimal.Decimal `json:"estimated_price"`
}

// PurchaseRequestRequest represents a purchase request create or update
type PurchaseRequestRequest struct {
	Note  *string                      `json:"note"`
	Items []PurchaseRequestItemRequest `json:"items" binding:"required,min=1,dive"`
}

// PurchaseRequestFilterRequest represents purchase request filter parameters
type PurchaseRequestFilterRequest struct {
	Status string `form:"status" binding:"omitempty,oneof=draft submitted approved rejected"`
	Mine   bool   `form:"mine"`
}
