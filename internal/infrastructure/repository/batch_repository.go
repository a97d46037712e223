package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/stockroom-api/internal/domain/entity"
	domainRepo "github.com/sangkips/stockroom-api/internal/domain/repository"
	"gorm.io/gorm"
)

type batchRepository struct {
	db *gorm.DB
}

// NewBatchRepository creates a new batch repository
func NewBatchRepository(db *gorm.DB) domainRepo.BatchRepository {
	return &batchRepository{db: db}
}

func (r *batchRepository) Create(ctx context.Context, batch *entity.Batch) error {
	return translateError(conn(ctx, r.db).Omit("Supplier", "Items.Product").Create(batch).Error)
}

func (r *batchRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Batch, error) {
	var batch entity.Batch
	err := conn(ctx, r.db).
		Preload("Supplier").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("line_no ASC") }).
		Preload("Items.Product").
		First(&batch, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &batch, err
}

func (r *batchRepository) List(ctx context.Context, params *domainRepo.BatchFilterParams) ([]entity.Batch, error) {
	var batches []entity.Batch

	query := conn(ctx, r.db).Model(&entity.Batch{})
	if params != nil {
		if params.SupplierID != nil {
			query = query.Where("supplier_id = ?", *params.SupplierID)
		}
		if params.From != nil {
			query = query.Where("purchase_date >= ?", *params.From)
		}
		if params.To != nil {
			query = query.Where("purchase_date <= ?", *params.To)
		}
	}

	err := query.
		Preload("Supplier").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("line_no ASC") }).
		Order("purchase_date DESC").Order("created_at DESC").
		Find(&batches).Error
	return batches, err
}

func (r *batchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := conn(ctx, r.db)
	if err := db.Where("batch_id = ?", id).Delete(&entity.BatchItem{}).Error; err != nil {
		return translateError(err)
	}
	return translateError(db.Delete(&entity.Batch{}, "id = ?", id).Error)
}

func (r *batchRepository) LatestItemForProduct(ctx context.Context, productID uuid.UUID) (*entity.BatchItem, error) {
	var item entity.BatchItem
	err := conn(ctx, r.db).
		Joins("JOIN batches ON batches.id = batch_items.batch_id").
		Where("batch_items.product_id = ?", productID).
		Order("batches.purchase_date DESC").
		Order("batches.created_at DESC").
		Order("batch_items.line_no ASC").
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}
