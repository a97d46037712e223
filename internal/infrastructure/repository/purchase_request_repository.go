package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/stockroom-api/internal/domain/entity"
	"github.com/sangkips/stockroom-api/internal/domain/enum"
	domainRepo "github.com/sangkips/stockroom-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type purchaseRequestRepository struct {
	db *gorm.DB
}

// NewPurchaseRequestRepository creates a new purchase request repository
func NewPurchaseRequestRepository(db *gorm.DB) domainRepo.PurchaseRequestRepository {
	return &purchaseRequestRepository{db: db}
}

func (r *purchaseRequestRepository) Create(ctx context.Context, pr *entity.PurchaseRequest) error {
	return translateError(conn(ctx, r.db).
		Omit("Requester", "Items.Product", "Items.Supplier").
		Create(pr).Error)
}

func (r *purchaseRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.PurchaseRequest, error) {
	var pr entity.PurchaseRequest
	err := conn(ctx, r.db).
		Preload("Requester").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("line_no ASC") }).
		Preload("Items.Product").Preload("Items.Supplier").
		First(&pr, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &pr, err
}

// UpdateIfStatus saves the header fields only; lines go through ReplaceItems
func (r *purchaseRequestRepository) UpdateIfStatus(ctx context.Context, pr *entity.PurchaseRequest, from enum.PurchaseRequestStatus) (bool, error) {
	res := conn(ctx, r.db).Model(&entity.PurchaseRequest{}).
		Where("id = ? AND status = ?", pr.ID, from).
		Updates(map[string]interface{}{
			"status":      pr.Status,
			"note":        pr.Note,
			"reviewed_by": pr.ReviewedBy,
			"reviewed_at": pr.ReviewedAt,
		})
	if res.Error != nil {
		return false, translateError(res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *purchaseRequestRepository) ReplaceItems(ctx context.Context, prID uuid.UUID, items []entity.PurchaseRequestItem) error {
	db := conn(ctx, r.db)
	if err := db.Where("purchase_request_id = ?", prID).Delete(&entity.PurchaseRequestItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].PurchaseRequestID = prID
	}
	return translateError(db.Omit("Product", "Supplier").Create(&items).Error)
}

func (r *purchaseRequestRepository) DeleteIfStatus(ctx context.Context, id uuid.UUID, from enum.PurchaseRequestStatus) (bool, error) {
	db := conn(ctx, r.db)

	var locked []entity.PurchaseRequest
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND status = ?", id, from).
		Limit(1).
		Find(&locked).Error
	if err != nil || len(locked) == 0 {
		return false, err
	}

	if err := db.Where("purchase_request_id = ?", id).Delete(&entity.PurchaseRequestItem{}).Error; err != nil {
		return false, err
	}
	if err := db.Delete(&entity.PurchaseRequest{}, "id = ?", id).Error; err != nil {
		return false, translateError(err)
	}
	return true, nil
}

func (r *purchaseRequestRepository) List(ctx context.Context, params *domainRepo.PurchaseRequestFilterParams) ([]entity.PurchaseRequest, error) {
	var prs []entity.PurchaseRequest

	query := conn(ctx, r.db).Model(&entity.PurchaseRequest{})
	if params != nil {
		if params.Status != "" {
			query = query.Where("status = ?", params.Status)
		}
		if params.RequesterID != nil {
			query = query.Where("requester_id = ?", *params.RequesterID)
		}
	}

	err := query.
		Preload("Requester").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("line_no ASC") }).
		Order("created_at DESC").
		Find(&prs).Error
	return prs, err
}
