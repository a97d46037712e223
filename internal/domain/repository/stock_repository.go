package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/stockroom-api/internal/domain/entity"
	"github.com/sangkips/stockroom-api/internal/domain/enum"
)

// BatchRepository defines the interface for stock receipts
type BatchRepository interface {
	// Create inserts the batch together with its items
	Create(ctx context.Context, batch *entity.Batch) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Batch, error)
	List(ctx context.Context, params *BatchFilterParams) ([]entity.Batch, error)
	// Delete removes the batch and its items
	Delete(ctx context.Context, id uuid.UUID) error
	// LatestItemForProduct returns the line of the most recently purchased
	// batch containing the product, or nil when it was never received.
	LatestItemForProduct(ctx context.Context, productID uuid.UUID) (*entity.BatchItem, error)
}

// BatchFilterParams contains filtering parameters for batch queries
type BatchFilterParams struct {
	SupplierID *uuid.UUID
	From       *time.Time
	To         *time.Time
}

// StockMovementRepository is the append-only stock ledger.
// Entries are never updated or deleted.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	CreateMany(ctx context.Context, movements []entity.StockMovement) error
	List(ctx context.Context, params *MovementFilterParams) ([]entity.StockMovement, error)
	CountByBatch(ctx context.Context, batchID uuid.UUID) (int64, error)
}

// MovementFilterParams contains filtering parameters for ledger queries
type MovementFilterParams struct {
	ProductID    *uuid.UUID
	BatchID      *uuid.UUID
	MovementType enum.MovementType
}

// PriceListRepository defines the interface for selling prices
type PriceListRepository interface {
	Create(ctx context.Context, entry *entity.PriceListEntry) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.PriceListEntry, error)
	// GetActiveByProduct returns the active entry for a product, if any
	GetActiveByProduct(ctx context.Context, productID uuid.UUID) (*entity.PriceListEntry, error)
	GetActiveByProducts(ctx context.Context, productIDs []uuid.UUID) ([]entity.PriceListEntry, error)
	Update(ctx context.Context, entry *entity.PriceListEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *PriceListFilterParams) ([]entity.PriceListEntry, error)
}

// PriceListFilterParams contains filtering parameters for price list queries
type PriceListFilterParams struct {
	ProductID  *uuid.UUID
	ActiveOnly bool
}

// ReturnRepository defines the interface for customer returns
type ReturnRepository interface {
	Create(ctx context.Context, ret *entity.Return) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Return, error)
	// UpdatePending writes the editable fields of a pending return and reports
	// false when the row is no longer pending. Status is never written.
	UpdatePending(ctx context.Context, ret *entity.Return) (bool, error)
	// TransitionStatus moves a return from one status to another and reports
	// false when the row was not in status from
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to enum.ReturnStatus) (bool, error)
	// DeletePending removes a pending return and reports false when the row
	// is no longer pending
	DeletePending(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context, params *ReturnFilterParams) ([]entity.Return, error)
}

// ReturnFilterParams contains filtering parameters for return queries
type ReturnFilterParams struct {
	Status     enum.ReturnStatus
	CustomerID *uuid.UUID
	ProductID  *uuid.UUID
}
