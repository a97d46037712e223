package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/stockroom-api/internal/domain/entity"
	"github.com/sangkips/stockroom-api/internal/domain/enum"
	"github.com/sangkips/stockroom-api/internal/domain/repository"
	"github.com/sangkips/stockroom-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// StockService owns the stock ledger: batches, adjustments and on-hand math
type StockService struct {
	txManager    repository.TxManager
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
	batchRepo    repository.BatchRepository
	movementRepo repository.StockMovementRepository
	stockQuery   repository.StockQueryRepository
}

// NewStockService creates a new stock service
func NewStockService(
	txManager repository.TxManager,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	batchRepo repository.BatchRepository,
	movementRepo repository.StockMovementRepository,
	stockQuery repository.StockQueryRepository,
) *StockService {
	return &StockService{
		txManager:    txManager,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		batchRepo:    batchRepo,
		movementRepo: movementRepo,
		stockQuery:   stockQuery,
	}
}

// BatchItemInput is one received product line
type BatchItemInput struct {
	ProductID uuid.UUID
	Quantity  int
	UnitCost  decimal.Decimal
}

// CreateBatchInput represents a stock receipt
type CreateBatchInput struct {
	SupplierID    uuid.UUID
	InvoiceNumber string
	PurchaseDate  time.Time
	Note          *string
	CreatedBy     *uuid.UUID
	Items         []BatchItemInput
}

// CreateBatch records a stock receipt. The batch and all its lines are
// written in one transaction.
func (s *StockService) CreateBatch(ctx context.Context, input *CreateBatchInput) (*entity.Batch, error) {
	var c fieldCheck
	c.requireID(input.SupplierID, "supplier_id")
	c.check(!input.PurchaseDate.IsZero(), "purchase_date", "purchase_date is required")
	c.check(len(input.Items) > 0, "items", "items must not be empty")

	productIDs := make([]uuid.UUID, 0, len(input.Items))
	for i, it := range input.Items {
		field := fmt.Sprintf("items[%d]", i)
		c.requireID(it.ProductID, field+".product_id")
		c.check(it.Quantity > 0, field+".quantity", field+".quantity must be greater than 0")
		c.check(!it.UnitCost.IsNegative(), field+".unit_cost", field+".unit_cost must not be negative")
		productIDs = append(productIDs, it.ProductID)
	}
	if err := c.err(); err != nil {
		return nil, err
	}

	supplier, err := s.supplierRepo.GetByID(ctx, input.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		c.add("supplier_id", "supplier_id does not exist")
	}
	if err := s.checkProductsExist(ctx, productIDs, "items", &c); err != nil {
		return nil, err
	}
	if err := c.err(); err != nil {
		return nil, err
	}

	batch := &entity.Batch{
		SupplierID:    input.SupplierID,
		InvoiceNumber: strings.TrimSpace(input.InvoiceNumber),
		PurchaseDate:  input.PurchaseDate,
		Note:          input.Note,
		CreatedBy:     input.CreatedBy,
		Items:         make([]entity.BatchItem, 0, len(input.Items)),
	}
	for i, it := range input.Items {
		batch.Items = append(batch.Items, entity.BatchItem{
			ProductID: it.ProductID,
			LineNo:    i + 1,
			Quantity:  it.Quantity,
			UnitCost:  it.UnitCost,
		})
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.batchRepo.Create(ctx, batch)
	})
	if err != nil {
		return nil, err
	}

	return s.GetBatch(ctx, batch.ID)
}

// checkProductsExist adds a field error for every id that has no product
func (s *StockService) checkProductsExist(ctx context.Context, ids []uuid.UUID, field string, c *fieldCheck) error {
	products, err := s.productRepo.GetByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return err
	}
	found := make(map[uuid.UUID]bool, len(products))
	for _, p := range products {
		found[p.ID] = true
	}
	for i, id := range ids {
		if id != uuid.Nil && !found[id] {
			c.add(fmt.Sprintf("%s[%d].product_id", field, i), fmt.Sprintf("%s[%d].product_id does not exist", field, i))
		}
	}
	return nil
}

// GetBatch retrieves a batch with its lines
func (s *StockService) GetBatch(ctx context.Context, id uuid.UUID) (*entity.Batch, error) {
	batch, err := s.batchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, apperror.NewNotFoundError("Batch")
	}
	return batch, nil
}

// ListBatches lists batches with their supplier
func (s *StockService) ListBatches(ctx context.Context, params *repository.BatchFilterParams) ([]entity.Batch, error) {
	return s.batchRepo.List(ctx, params)
}

// DeleteBatch removes a batch that no ledger movement references
func (s *StockService) DeleteBatch(ctx context.Context, id uuid.UUID) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.GetBatch(ctx, id); err != nil {
			return err
		}

		n, err := s.movementRepo.CountByBatch(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return apperror.NewConflictError("Batch has stock adjustments and cannot be deleted")
		}

		return s.batchRepo.Delete(ctx, id)
	})
}

// CreateAdjustmentInput represents a manual stock correction against a batch
type CreateAdjustmentInput struct {
	BatchID   *uuid.UUID
	ProductID uuid.UUID
	Quantity  int
	Reference *string
	Note      *string
	CreatedBy *uuid.UUID
}

// CreateAdjustment appends a signed adjust movement for a product of a batch
func (s *StockService) CreateAdjustment(ctx context.Context, input *CreateAdjustmentInput) (*entity.StockMovement, error) {
	var c fieldCheck
	c.check(input.BatchID != nil && *input.BatchID != uuid.Nil, "batch_id", "batch_id is required")
	c.requireID(input.ProductID, "product_id")
	c.check(input.Quantity != 0, "quantity", "quantity must not be zero")
	if err := c.err(); err != nil {
		return nil, err
	}

	batch, err := s.GetBatch(ctx, *input.BatchID)
	if err != nil {
		return nil, err
	}
	if !batch.HasProduct(input.ProductID) {
		return nil, apperror.NewFieldError("product_id", "product_id is not a line of the given batch")
	}

	movement := &entity.StockMovement{
		ProductID:    input.ProductID,
		BatchID:      input.BatchID,
		MovementType: enum.MovementTypeAdjust,
		Quantity:     input.Quantity,
		Reference:    input.Reference,
		Note:         input.Note,
		MovementDate: time.Now(),
		CreatedBy:    input.CreatedBy,
	}

	if err := s.movementRepo.Create(ctx, movement); err != nil {
		return nil, err
	}

	return movement, nil
}

// RecordMovements appends ledger entries. Callers that change other rows
// alongside should pass a transactional ctx.
func (s *StockService) RecordMovements(ctx context.Context, movements []entity.StockMovement) error {
	for i, m := range movements {
		if m.Quantity == 0 || !m.MovementType.IsValid() {
			return fmt.Errorf("invalid stock movement at %d: type=%q quantity=%d", i, m.MovementType, m.Quantity)
		}
	}
	return s.movementRepo.CreateMany(ctx, movements)
}

// ListMovements lists ledger entries
func (s *StockService) ListMovements(ctx context.Context, params *repository.MovementFilterParams) ([]entity.StockMovement, error) {
	return s.movementRepo.List(ctx, params)
}

// ProductStock breaks the current quantity of a product into its sources
type ProductStock struct {
	ProductID       uuid.UUID `json:"product_id"`
	Received        int64     `json:"received"`
	MovementDelta   int64     `json:"movement_delta"`
	CurrentQuantity int64     `json:"current_quantity"`
}

// CurrentQuantity returns Σ batch item quantities plus Σ movement deltas.
// It is recomputed on every call.
func (s *StockService) CurrentQuantity(ctx context.Context, productID uuid.UUID) (*ProductStock, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	onHand, err := s.stockTotals(ctx, []uuid.UUID{productID})
	if err != nil {
		return nil, err
	}
	return onHand[productID], nil
}

// OnHand returns the current quantity of every given product
func (s *StockService) OnHand(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	totals, err := s.stockTotals(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]int64, len(totals))
	for id, st := range totals {
		out[id] = st.CurrentQuantity
	}
	return out, nil
}

func (s *StockService) stockTotals(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]*ProductStock, error) {
	ids := uniqueIDs(productIDs)
	received, err := s.stockQuery.ReceivedTotals(ctx, ids)
	if err != nil {
		return nil, err
	}
	moved, err := s.stockQuery.MovementTotals(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make(map[uuid.UUID]*ProductStock, len(ids))
	for _, id := range ids {
		out[id] = &ProductStock{
			ProductID:       id,
			Received:        received[id],
			MovementDelta:   moved[id],
			CurrentQuantity: received[id] + moved[id],
		}
	}
	return out, nil
}

// BatchPrice is the unit cost of the most recent receipt of a product
type BatchPrice struct {
	ProductID   uuid.UUID        `json:"product_id"`
	UnitCost    *decimal.Decimal `json:"unit_cost"`
	BatchID     *uuid.UUID       `json:"batch_id,omitempty"`
	BatchItemID *uuid.UUID       `json:"batch_item_id,omitempty"`
}

// LatestBatchPrice returns the unit cost from the batch with the most recent
// purchase date containing the product. UnitCost is nil when the product was
// never received.
func (s *StockService) LatestBatchPrice(ctx context.Context, productID uuid.UUID) (*BatchPrice, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	return latestBatchPrice(ctx, s.batchRepo, productID)
}

func latestBatchPrice(ctx context.Context, batchRepo repository.BatchRepository, productID uuid.UUID) (*BatchPrice, error) {
	item, err := batchRepo.LatestItemForProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	price := &BatchPrice{ProductID: productID}
	if item != nil {
		cost := item.UnitCost
		price.UnitCost = &cost
		price.BatchID = &item.BatchID
		price.BatchItemID = &item.ID
	}
	return price, nil
}
