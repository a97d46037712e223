package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/stockroom-api/internal/domain/entity"
	"github.com/sangkips/stockroom-api/internal/domain/enum"
	domainRepo "github.com/sangkips/stockroom-api/internal/domain/repository"
	"gorm.io/gorm"
)

type returnRepository struct {
	db *gorm.DB
}

// NewReturnRepository creates a new return repository
func NewReturnRepository(db *gorm.DB) domainRepo.ReturnRepository {
	return &returnRepository{db: db}
}

func (r *returnRepository) Create(ctx context.Context, ret *entity.Return) error {
	return translateError(conn(ctx, r.db).Omit("Customer", "Product").Create(ret).Error)
}

func (r *returnRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Return, error) {
	var ret entity.Return
	err := conn(ctx, r.db).
		Preload("Customer").Preload("Product").
		First(&ret, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ret, err
}

// returnEditableColumns are the columns UpdatePending may write
var returnEditableColumns = []string{
	"return_date", "customer_id", "product_id", "quantity", "reason", "refund_amount", "updated_at",
}

func (r *returnRepository) UpdatePending(ctx context.Context, ret *entity.Return) (bool, error) {
	res := conn(ctx, r.db).Model(ret).
		Select(returnEditableColumns).
		Where("status = ?", enum.ReturnStatusPending).
		Updates(ret)
	if res.Error != nil {
		return false, translateError(res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *returnRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to enum.ReturnStatus) (bool, error) {
	res := conn(ctx, r.db).Model(&entity.Return{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *returnRepository) DeletePending(ctx context.Context, id uuid.UUID) (bool, error) {
	res := conn(ctx, r.db).
		Where("id = ? AND status = ?", id, enum.ReturnStatusPending).
		Delete(&entity.Return{})
	if res.Error != nil {
		return false, translateError(res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *returnRepository) List(ctx context.Context, params *domainRepo.ReturnFilterParams) ([]entity.Return, error) {
	var returns []entity.Return

	query := conn(ctx, r.db).Model(&entity.Return{})
	if params != nil {
		if params.Status != "" {
			query = query.Where("status = ?", params.Status)
		}
		if params.CustomerID != nil {
			query = query.Where("customer_id = ?", *params.CustomerID)
		}
		if params.ProductID != nil {
			query = query.Where("product_id = ?", *params.ProductID)
		}
	}

	err := query.
		Preload("Customer").Preload("Product").
		Order("return_date DESC").Order("created_at DESC").
		Find(&returns).Error
	return returns, err
}
