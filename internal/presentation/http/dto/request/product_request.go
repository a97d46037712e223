package request

import (
	"github.com/google/uuid"
	"github.com/sangkips/stockroom-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// CategoryRequest represents a category create or update request
type CategoryRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Description *string `json:"description"`
}

// SupplierRequest represents a supplier create or update request
type SupplierRequest struct {
	Name          string  `json:"name" binding:"required,max=255"`
	ContactPerson *string `json:"contact_person" binding:"omitempty,max=255"`
	Phone         *string `json:"phone" binding:"omitempty,max=50"`
	Email         *string `json:"email" binding:"omitempty,email"`
	Address       *string `json:"address"`
}

// ProductRequest represents a product create or update request
type ProductRequest struct {
	Name        string     `json:"name" binding:"required,max=255"`
	Barcode     *string    `json:"barcode" binding:"omitempty,max=100"`
	Unit        string     `json:"unit" binding:"omitempty,max=50"`
	Description *string    `json:"description"`
	IsAvailable *bool      `json:"is_available"`
	CategoryID  *uuid.UUID `json:"category_id"`
	SupplierID  *uuid.UUID `json:"supplier_id"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search      string `form:"search"`
	CategoryID  string `form:"category_id" binding:"omitempty,uuid"`
	SupplierID  string `form:"supplier_id" binding:"omitempty,uuid"`
	IsAvailable *bool  `form:"is_available"`
}

// CustomerRequest represents a customer create or update request
type CustomerRequest struct {
	Name         string            `json:"name" binding:"required,max=255"`
	Email        *string           `json:"email" binding:"omitempty,email"`
	Phone        *string           `json:"phone" binding:"omitempty,max=50"`
	Address      *string           `json:"address"`
	CustomerType enum.CustomerType `json:"customer_type"`
	CreditLimit  decimal.Decimal   `json:"credit_limit"`
	IsActive     *bool             `json:"is_active"`
}

// CustomerFilterRequest represents customer filter parameters
type CustomerFilterRequest struct {
	Search       string `form:"search"`
	CustomerType string `form:"customer_type" binding:"omitempty,oneof=RETAIL WHOLESALE retail wholesale"`
	ActiveOnly   bool   `form:"active_only"`
}
