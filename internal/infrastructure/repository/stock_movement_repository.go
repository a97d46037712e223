package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/stockroom-api/internal/domain/entity"
	domainRepo "github.com/sangkips/stockroom-api/internal/domain/repository"
	"gorm.io/gorm"
)

type stockMovementRepository struct {
	db *gorm.DB
}

// NewStockMovementRepository creates a new ledger repository
func NewStockMovementRepository(db *gorm.DB) domainRepo.StockMovementRepository {
	return &stockMovementRepository{db: db}
}

func (r *stockMovementRepository) Create(ctx context.Context, movement *entity.StockMovement) error {
	return translateError(conn(ctx, r.db).Omit("Product", "Batch").Create(movement).Error)
}

func (r *stockMovementRepository) CreateMany(ctx context.Context, movements []entity.StockMovement) error {
	if len(movements) == 0 {
		return nil
	}
	return translateError(conn(ctx, r.db).Omit("Product", "Batch").Create(&movements).Error)
}

func (r *stockMovementRepository) List(ctx context.Context, params *domainRepo.MovementFilterParams) ([]entity.StockMovement, error) {
	var movements []entity.StockMovement

	query := conn(ctx, r.db).Model(&entity.StockMovement{})
	if params != nil {
		if params.ProductID != nil {
			query = query.Where("product_id = ?", *params.ProductID)
		}
		if params.BatchID != nil {
			query = query.Where("batch_id = ?", *params.BatchID)
		}
		if params.MovementType != "" {
			query = query.Where("movement_type = ?", params.MovementType)
		}
	}

	err := query.
		Preload("Product").
		Order("movement_date DESC").Order("created_at DESC").
		Find(&movements).Error
	return movements, err
}

func (r *stockMovementRepository) CountByBatch(ctx context.Context, batchID uuid.UUID) (int64, error) {
	var n int64
	err := conn(ctx, r.db).Model(&entity.StockMovement{}).Where("batch_id = ?", batchID).Count(&n).Error
	return n, err
}
