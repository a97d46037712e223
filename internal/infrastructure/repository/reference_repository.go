package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/stockroom-api/internal/domain/entity"
	domainRepo "github.com/sangkips/stockroom-api/internal/domain/repository"
	"gorm.io/gorm"
)

type referenceRepository struct {
	db *gorm.DB
}

// NewReferenceRepository creates a repository that counts incoming references
func NewReferenceRepository(db *gorm.DB) domainRepo.ReferenceRepository {
	return &referenceRepository{db: db}
}

type refSource struct {
	model  interface{}
	column string
}

func (r *referenceRepository) count(ctx context.Context, id uuid.UUID, sources ...refSource) (int64, error) {
	var total int64
	for _, src := range sources {
		var n int64
		if err := conn(ctx, r.db).Model(src.model).Where(src.column+" = ?", id).Count(&n).Error; err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

func (r *referenceRepository) CategoryReferences(ctx context.Context, id uuid.UUID) (int64, error) {
	return r.count(ctx, id, refSource{&entity.Product{}, "category_id"})
}

func (r *referenceRepository) SupplierReferences(ctx context.Context, id uuid.UUID) (int64, error) {
	return r.count(ctx, id,
		refSource{&entity.Product{}, "supplier_id"},
		refSource{&entity.Batch{}, "supplier_id"},
		refSource{&entity.PurchaseRequestItem{}, "supplier_id"},
	)
}

func (r *referenceRepository) ProductReferences(ctx context.Context, id uuid.UUID) (int64, error) {
	return r.count(ctx, id,
		refSource{&entity.BatchItem{}, "product_id"},
		refSource{&entity.StockMovement{}, "product_id"},
		refSource{&entity.PriceListEntry{}, "product_id"},
		refSource{&entity.SaleItem{}, "product_id"},
		refSource{&entity.PurchaseRequestItem{}, "product_id"},
		refSource{&entity.Return{}, "product_id"},
	)
}

func (r *referenceRepository) CustomerReferences(ctx context.Context, id uuid.UUID) (int64, error) {
	return r.count(ctx, id,
		refSource{&entity.Sale{}, "customer_id"},
		refSource{&entity.Return{}, "customer_id"},
	)
}
