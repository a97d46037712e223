package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/stockroom-api/internal/domain/entity"
)

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	// GetByIDs retrieves multiple products by their IDs in a single query
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error)
	GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, error)
	// LockByIDs takes row locks on the given products until the surrounding
	// transaction ends. Must be called inside TxManager.RunInTransaction.
	LockByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error)
}

// ProductFilterParams contains filtering parameters for product queries
type ProductFilterParams struct {
	Search      string
	CategoryID  *uuid.UUID
	SupplierID  *uuid.UUID
	IsAvailable *bool
}

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, search string) ([]entity.Category, error)
}

// ReferenceRepository counts rows that still point at a record, so deletes
// can be refused while the record is in use.
type ReferenceRepository interface {
	CategoryReferences(ctx context.Context, id uuid.UUID) (int64, error)
	SupplierReferences(ctx context.Context, id uuid.UUID) (int64, error)
	ProductReferences(ctx context.Context, id uuid.UUID) (int64, error)
	CustomerReferences(ctx context.Context, id uuid.UUID) (int64, error)
}
