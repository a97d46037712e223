package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/stockroom-api/internal/domain/entity"
	"github.com/sangkips/stockroom-api/internal/domain/repository"
	"github.com/sangkips/stockroom-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// PriceListService handles selling prices
type PriceListService struct {
	txManager     repository.TxManager
	priceListRepo repository.PriceListRepository
	productRepo   repository.ProductRepository
	batchRepo     repository.BatchRepository
}

// NewPriceListService creates a new price list service
func NewPriceListService(
	txManager repository.TxManager,
	priceListRepo repository.PriceListRepository,
	productRepo repository.ProductRepository,
	batchRepo repository.BatchRepository,
) *PriceListService {
	return &PriceListService{
		txManager:     txManager,
		priceListRepo: priceListRepo,
		productRepo:   productRepo,
		batchRepo:     batchRepo,
	}
}

// PriceListInput represents the editable fields of a price list entry.
// A nil BatchPrice is filled from the latest batch cost of the product.
type PriceListInput struct {
	ProductID  uuid.UUID
	Price      decimal.Decimal
	BatchPrice *decimal.Decimal
	IsActive   *bool
}

func (s *PriceListService) validate(ctx context.Context, input *PriceListInput) error {
	var c fieldCheck
	c.requireID(input.ProductID, "product_id")
	c.check(!input.Price.IsNegative(), "price", "price must not be negative")
	c.check(input.BatchPrice == nil || !input.BatchPrice.IsNegative(), "batch_price", "batch_price must not be negative")
	if err := c.err(); err != nil {
		return err
	}

	product, err := s.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewFieldError("product_id", "product_id does not exist")
	}
	return nil
}

// ensureSingleActive rejects a second active entry for the same product. It
// must run inside a transaction: the product row stays locked until commit so
// concurrent writers for one product are serialized.
func (s *PriceListService) ensureSingleActive(ctx context.Context, productID, selfID uuid.UUID) error {
	if _, err := s.productRepo.LockByIDs(ctx, []uuid.UUID{productID}); err != nil {
		return err
	}
	active, err := s.priceListRepo.GetActiveByProduct(ctx, productID)
	if err != nil {
		return err
	}
	if active != nil && active.ID != selfID {
		return apperror.NewConflictError("Product already has an active price list entry")
	}
	return nil
}

func (s *PriceListService) resolveBatchPrice(ctx context.Context, input *PriceListInput) (*decimal.Decimal, error) {
	if input.BatchPrice != nil {
		return input.BatchPrice, nil
	}
	latest, err := latestBatchPrice(ctx, s.batchRepo, input.ProductID)
	if err != nil {
		return nil, err
	}
	return latest.UnitCost, nil
}

// CreatePriceListEntry creates a new price list entry
func (s *PriceListService) CreatePriceListEntry(ctx context.Context, input *PriceListInput) (*entity.PriceListEntry, error) {
	if err := s.validate(ctx, input); err != nil {
		return nil, err
	}

	entry := &entity.PriceListEntry{
		ProductID: input.ProductID,
		Price:     input.Price,
		IsActive:  input.IsActive == nil || *input.IsActive,
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if entry.IsActive {
			if err := s.ensureSingleActive(ctx, entry.ProductID, uuid.Nil); err != nil {
				return err
			}
		}
		batchPrice, err := s.resolveBatchPrice(ctx, input)
		if err != nil {
			return err
		}
		entry.BatchPrice = batchPrice
		return s.priceListRepo.Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	return s.GetPriceListEntry(ctx, entry.ID)
}

// GetPriceListEntry retrieves a price list entry by ID
func (s *PriceListService) GetPriceListEntry(ctx context.Context, id uuid.UUID) (*entity.PriceListEntry, error) {
	entry, err := s.priceListRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, apperror.NewNotFoundError("Price list entry")
	}
	return entry, nil
}

// ListPriceList lists price list entries with their product
func (s *PriceListService) ListPriceList(ctx context.Context, params *repository.PriceListFilterParams) ([]entity.PriceListEntry, error) {
	return s.priceListRepo.List(ctx, params)
}

// UpdatePriceListEntry replaces the editable fields. When the price changes
// the previous price is kept in OldPrice.
func (s *PriceListService) UpdatePriceListEntry(ctx context.Context, id uuid.UUID, input *PriceListInput) (*entity.PriceListEntry, error) {
	if err := s.validate(ctx, input); err != nil {
		return nil, err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		entry, err := s.GetPriceListEntry(ctx, id)
		if err != nil {
			return err
		}

		active := input.IsActive == nil || *input.IsActive
		if active {
			if err := s.ensureSingleActive(ctx, input.ProductID, entry.ID); err != nil {
				return err
			}
		}

		if !entry.Price.Equal(input.Price) {
			previous := entry.Price
			entry.OldPrice = &previous
		}
		batchPrice, err := s.resolveBatchPrice(ctx, input)
		if err != nil {
			return err
		}

		entry.ProductID = input.ProductID
		entry.Price = input.Price
		entry.BatchPrice = batchPrice
		entry.IsActive = active
		entry.Product = nil

		return s.priceListRepo.Update(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	return s.GetPriceListEntry(ctx, id)
}

// DeletePriceListEntry deletes a price list entry
func (s *PriceListService) DeletePriceListEntry(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetPriceListEntry(ctx, id); err != nil {
		return err
	}
	return s.priceListRepo.Delete(ctx, id)
}
