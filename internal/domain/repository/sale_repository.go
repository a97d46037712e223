package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/stockroom-api/internal/domain/entity"
	"github.com/sangkips/stockroom-api/internal/domain/enum"
	"github.com/sangkips/stockroom-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// SaleRepository defines the interface for sales and their payments
type SaleRepository interface {
	// Create inserts the sale together with its items
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	// GetForUpdate loads the sale with a row lock. Must run inside a transaction.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	// UpdateTotals persists status, paid amount and outstanding fields
	UpdateTotals(ctx context.Context, sale *entity.Sale) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, int64, error)

	CreatePayment(ctx context.Context, payment *entity.Payment) error
	GetPayment(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	DeletePayment(ctx context.Context, id uuid.UUID) error
	ListPayments(ctx context.Context, saleID uuid.UUID) ([]entity.Payment, error)
	SumPayments(ctx context.Context, saleID uuid.UUID) (decimal.Decimal, error)
}

// SaleFilterParams contains filtering parameters for sale queries
type SaleFilterParams struct {
	Pagination    *pagination.PaginationParams
	OrderStatus   enum.OrderStatus
	PaymentStatus enum.PaymentStatus
	CustomerID    *uuid.UUID
	From          *time.Time
	To            *time.Time
}

// PurchaseRequestRepository defines the interface for purchase requests
type PurchaseRequestRepository interface {
	Create(ctx context.Context, pr *entity.PurchaseRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.PurchaseRequest, error)
	// UpdateIfStatus saves the header fields while the stored status is still
	// from and reports false otherwise
	UpdateIfStatus(ctx context.Context, pr *entity.PurchaseRequest, from enum.PurchaseRequestStatus) (bool, error)
	// ReplaceItems deletes the current lines and inserts items in their place
	ReplaceItems(ctx context.Context, prID uuid.UUID, items []entity.PurchaseRequestItem) error
	// DeleteIfStatus locks the request, then removes it with its lines while
	// the stored status is still from. Call it inside a transaction.
	DeleteIfStatus(ctx context.Context, id uuid.UUID, from enum.PurchaseRequestStatus) (bool, error)
	List(ctx context.Context, params *PurchaseRequestFilterParams) ([]entity.PurchaseRequest, error)
}

// PurchaseRequestFilterParams contains filtering parameters for purchase request queries
type PurchaseRequestFilterParams struct {
	Status      enum.PurchaseRequestStatus
	RequesterID *uuid.UUID
}
