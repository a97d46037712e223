package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/stockroom-api/internal/domain/entity"
	domainRepo "github.com/sangkips/stockroom-api/internal/domain/repository"
	"gorm.io/gorm"
)

type priceListRepository struct {
	db *gorm.DB
}

// NewPriceListRepository creates a new price list repository
func NewPriceListRepository(db *gorm.DB) domainRepo.PriceListRepository {
	return &priceListRepository{db: db}
}

func (r *priceListRepository) Create(ctx context.Context, entry *entity.PriceListEntry) error {
	return translateError(conn(ctx, r.db).Omit("Product").Create(entry).Error)
}

func (r *priceListRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.PriceListEntry, error) {
	var entry entity.PriceListEntry
	err := conn(ctx, r.db).Preload("Product").First(&entry, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &entry, err
}

func (r *priceListRepository) GetActiveByProduct(ctx context.Context, productID uuid.UUID) (*entity.PriceListEntry, error) {
	var entry entity.PriceListEntry
	err := conn(ctx, r.db).
		Where("product_id = ? AND is_active = ?", productID, true).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &entry, err
}

func (r *priceListRepository) GetActiveByProducts(ctx context.Context, productIDs []uuid.UUID) ([]entity.PriceListEntry, error) {
	if len(productIDs) == 0 {
		return []entity.PriceListEntry{}, nil
	}
	var entries []entity.PriceListEntry
	err := conn(ctx, r.db).
		Where("product_id IN ? AND is_active = ?", productIDs, true).
		Find(&entries).Error
	return entries, err
}

func (r *priceListRepository) Update(ctx context.Context, entry *entity.PriceListEntry) error {
	return translateError(conn(ctx, r.db).Omit("Product").Save(entry).Error)
}

func (r *priceListRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return translateError(conn(ctx, r.db).Delete(&entity.PriceListEntry{}, "id = ?", id).Error)
}

func (r *priceListRepository) List(ctx context.Context, params *domainRepo.PriceListFilterParams) ([]entity.PriceListEntry, error) {
	var entries []entity.PriceListEntry

	query := conn(ctx, r.db).Model(&entity.PriceListEntry{})
	if params != nil {
		if params.ProductID != nil {
			query = query.Where("product_id = ?", *params.ProductID)
		}
		if params.ActiveOnly {
			query = query.Where("is_active = ?", true)
		}
	}

	err := query.Preload("Product").Order("updated_at DESC").Find(&entries).Error
	return entries, err
}
