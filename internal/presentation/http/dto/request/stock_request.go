package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BatchItemRequest is one received product line
type BatchItemRequest struct {
	ProductID uuid.UUID        `json:"product_id" binding:"required"`
	Quantity  int              `json:"quantity" binding:"required,gt=0"`
	UnitCost  *decimal.Decimal `json:"unit_cost" binding:"required"`
}

// CreateBatchRequest represents a stock receipt
type CreateBatchRequest struct {
	SupplierID    uuid.UUID          `json:"supplier_id" binding:"required"`
	InvoiceNumber string             `json:"invoice_number" binding:"max=100"`
	PurchaseDate  string             `json:"purchase_date" binding:"required,datetime=2006-01-02"`
	Note          *string            `json:"note"`
	Items         []BatchItemRequest `json:"items" binding:"required,min=1,dive"`
}

// BatchFilterRequest represents batch filter parameters
type BatchFilterRequest struct {
	SupplierID string `form:"supplier_id" binding:"omitempty,uuid"`
	From       string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To         string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

// CreateAdjustmentRequest represents a manual stock correction
type CreateAdjustmentRequest struct {
	BatchID   *uuid.UUID `json:"batch_id" binding:"required"`
	ProductID uuid.UUID  `json:"product_id" binding:"required"`
	Quantity  int        `json:"quantity" binding:"required,ne=0"`
	Reference *string    `json:"reference" binding:"omitempty,max=100"`
	Note      *string    `json:"note"`
}

// MovementFilterRequest represents ledger filter parameters
type MovementFilterRequest struct {
	ProductID    string `form:"product_id" binding:"omitempty,uuid"`
	BatchID      string `form:"batch_id" binding:"omitempty,uuid"`
	MovementType string `form:"movement_type" binding:"omitempty,oneof=in out adjust"`
}

// PriceListRequest represents a price list create or update request
type PriceListRequest struct {
	ProductID  uuid.UUID        `json:"product_id" binding:"required"`
	Price      *decimal.Decimal `json:"price" binding:"required"`
	BatchPrice *decimal.Decimal `json:"batch_price"`
	IsActive   *bool            `json:"is_active"`
}

// PriceListFilterRequest represents price list filter parameters
type PriceListFilterRequest struct {
	ProductID  string `form:"product_id" binding:"omitempty,uuid"`
	ActiveOnly bool   `form:"active_only"`
}

// ReturnRequest represents a return create or update request
type ReturnRequest struct {
	ReturnDate   string          `json:"return_date" binding:"omitempty,datetime=2006-01-02"`
	CustomerID   *uuid.UUID      `json:"customer_id"`
	ProductID    uuid.UUID       `json:"product_id" binding:"required"`
	Quantity     int             `json:"quantity" binding:"required,gt=0"`
	Reason       *string         `json:"reason"`
	RefundAmount decimal.Decimal `json:"refund_amount"`
}

// ReturnFilterRequest represents return filter parameters
type ReturnFilterRequest struct {
	Status     string `form:"status" binding:"omitempty,oneof=Pending Approved Rejected"`
	CustomerID string `form:"customer_id" binding:"omitempty,uuid"`
	ProductID  string `form:"product_id" binding:"omitempty,uuid"`
}

// StockReportRequest represents stock report filter parameters
type StockReportRequest struct {
	CategoryID string `form:"category_id" binding:"omitempty,uuid"`
	SupplierID string `form:"supplier_id" binding:"omitempty,uuid"`
	ProductID  string `form:"product_id" binding:"omitempty,uuid"`
	From       string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To         string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	Format     string `form:"format" binding:"omitempty,oneof=csv xlsx"`
}
