package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/stockroom-api/internal/domain/entity"
	"github.com/sangkips/stockroom-api/internal/domain/enum"
	"github.com/sangkips/stockroom-api/internal/domain/repository"
	"github.com/sangkips/stockroom-api/pkg/apperror"
	"github.com/sangkips/stockroom-api/pkg/utils"
	"github.com/shopspring/decimal"
)

// PurchaseRequestService handles internal requests to buy stock
type PurchaseRequestService struct {
	txManager    repository.TxManager
	prRepo       repository.PurchaseRequestRepository
	supplierRepo repository.SupplierRepository
	stock        *StockService
}

// NewPurchaseRequestService creates a new purchase request service
func NewPurchaseRequestService(
	txManager repository.TxManager,
	prRepo repository.PurchaseRequestRepository,
	supplierRepo repository.SupplierRepository,
	stock *StockService,
) *PurchaseRequestService {
	return &PurchaseRequestService{
		txManager:    txManager,
		prRepo:       prRepo,
		supplierRepo: supplierRepo,
		stock:        stock,
	}
}

// PurchaseRequestItemInput represents one requested line
type PurchaseRequestItemInput struct {
	ProductID      uuid.UUID
	SupplierID     *uuid.UUID
	RequestedQty   int
	EstimatedPrice decimal.Decimal
}

// PurchaseRequestInput represents the editable fields of a purchase request
type PurchaseRequestInput struct {
	RequesterID uuid.UUID
	Note        *string
	Items       []PurchaseRequestItemInput
}

func (s *PurchaseRequestService) buildItems(ctx context.Context, input *PurchaseRequestInput) ([]entity.PurchaseRequestItem, error) {
	var c fieldCheck
	c.check(len(input.Items) > 0, "items", "items must not be empty")

	productIDs := make([]uuid.UUID, 0, len(input.Items))
	for i, it := range input.Items {
		field := fmt.Sprintf("items[%d]", i)
		c.requireID(it.ProductID, field+".product_id")
		c.check(it.RequestedQty > 0, field+".requested_qty", field+".requested_qty must be greater than 0")
		c.check(!it.EstimatedPrice.IsNegative(), field+".estimated_price", field+".estimated_price must not be negative")
		productIDs = append(productIDs, it.ProductID)
	}
	if err := c.err(); err != nil {
		return nil, err
	}

	if err := s.stock.checkProductsExist(ctx, productIDs, "items", &c); err != nil {
		return nil, err
	}
	for i, it := range input.Items {
		if it.SupplierID == nil {
			continue
		}
		supplier, err := s.supplierRepo.GetByID(ctx, *it.SupplierID)
		if err != nil {
			return nil, err
		}
		field := fmt.Sprintf("items[%d].supplier_id", i)
		c.check(supplier != nil, field, field+" does not exist")
	}
	if err := c.err(); err != nil {
		return nil, err
	}

	items := make([]entity.PurchaseRequestItem, 0, len(input.Items))
	for i, it := range input.Items {
		items = append(items, entity.PurchaseRequestItem{
			ProductID:      it.ProductID,
			SupplierID:     it.SupplierID,
			LineNo:         i + 1,
			RequestedQty:   it.RequestedQty,
			EstimatedPrice: it.EstimatedPrice,
		})
	}
	return items, nil
}

// CreatePurchaseRequest stores a draft request with its lines
func (s *PurchaseRequestService) CreatePurchaseRequest(ctx context.Context, input *PurchaseRequestInput) (*entity.PurchaseRequest, error) {
	items, err := s.buildItems(ctx, input)
	if err != nil {
		return nil, err
	}

	pr := &entity.PurchaseRequest{
		PRNumber:    utils.GeneratePRNumber(time.Now()),
		RequesterID: input.RequesterID,
		Status:      enum.PurchaseRequestDraft,
		Note:        input.Note,
		Items:       items,
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.prRepo.Create(ctx, pr)
	})
	if err != nil {
		return nil, err
	}

	return s.GetPurchaseRequest(ctx, pr.ID)
}

// GetPurchaseRequest retrieves a purchase request with its lines
func (s *PurchaseRequestService) GetPurchaseRequest(ctx context.Context, id uuid.UUID) (*entity.PurchaseRequest, error) {
	pr, err := s.prRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pr == nil {
		return nil, apperror.NewNotFoundError("Purchase request")
	}
	return pr, nil
}

// ListPurchaseRequests lists purchase requests
func (s *PurchaseRequestService) ListPurchaseRequests(ctx context.Context, params *repository.PurchaseRequestFilterParams) ([]entity.PurchaseRequest, error) {
	return s.prRepo.List(ctx, params)
}

// UpdatePurchaseRequest replaces the note and every line of a draft request
func (s *PurchaseRequestService) UpdatePurchaseRequest(ctx context.Context, id uuid.UUID, input *PurchaseRequestInput) (*entity.PurchaseRequest, error) {
	items, err := s.buildItems(ctx, input)
	if err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		pr, err := s.GetPurchaseRequest(ctx, id)
		if err != nil {
			return err
		}
		if pr.Status != enum.PurchaseRequestDraft {
			return apperror.NewConflictError("Only draft purchase requests can be edited")
		}

		pr.Note = input.Note
		pr.Items = nil
		pr.Requester = nil
		ok, err := s.prRepo.UpdateIfStatus(ctx, pr, enum.PurchaseRequestDraft)
		if err != nil {
			return err
		}
		if !ok {
			return apperror.NewConflictError("Only draft purchase requests can be edited")
		}
		return s.prRepo.ReplaceItems(ctx, id, items)
	})
	if err != nil {
		return nil, err
	}

	return s.GetPurchaseRequest(ctx, id)
}

// DeletePurchaseRequest deletes a draft request
func (s *PurchaseRequestService) DeletePurchaseRequest(ctx context.Context, id uuid.UUID) error {
	pr, err := s.GetPurchaseRequest(ctx, id)
	if err != nil {
		return err
	}
	if pr.Status != enum.PurchaseRequestDraft {
		return apperror.NewConflictError("Only draft purchase requests can be deleted")
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		ok, err := s.prRepo.DeleteIfStatus(ctx, id, enum.PurchaseRequestDraft)
		if err != nil {
			return err
		}
		if !ok {
			return apperror.NewConflictError("Only draft purchase requests can be deleted")
		}
		return nil
	})
}

// SubmitPurchaseRequest sends a draft for review
func (s *PurchaseRequestService) SubmitPurchaseRequest(ctx context.Context, id uuid.UUID) (*entity.PurchaseRequest, error) {
	return s.transition(ctx, id, enum.PurchaseRequestDraft, enum.PurchaseRequestSubmitted, nil)
}

// ApprovePurchaseRequest approves a submitted request
func (s *PurchaseRequestService) ApprovePurchaseRequest(ctx context.Context, id, reviewerID uuid.UUID) (*entity.PurchaseRequest, error) {
	return s.transition(ctx, id, enum.PurchaseRequestSubmitted, enum.PurchaseRequestApproved, &reviewerID)
}

// RejectPurchaseRequest rejects a submitted request
func (s *PurchaseRequestService) RejectPurchaseRequest(ctx context.Context, id, reviewerID uuid.UUID) (*entity.PurchaseRequest, error) {
	return s.transition(ctx, id, enum.PurchaseRequestSubmitted, enum.PurchaseRequestRejected, &reviewerID)
}

func (s *PurchaseRequestService) transition(ctx context.Context, id uuid.UUID, from, to enum.PurchaseRequestStatus, reviewerID *uuid.UUID) (*entity.PurchaseRequest, error) {
	pr, err := s.GetPurchaseRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if pr.Status != from {
		return nil, apperror.NewConflictError(fmt.Sprintf("Purchase request is %s, expected %s", pr.Status, from))
	}

	pr.Status = to
	if reviewerID != nil {
		now := time.Now()
		pr.ReviewedBy = reviewerID
		pr.ReviewedAt = &now
	}
	pr.Items = nil
	pr.Requester = nil
	ok, err := s.prRepo.UpdateIfStatus(ctx, pr, from)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.NewConflictError(fmt.Sprintf("Purchase request is no longer %s", from))
	}

	return s.GetPurchaseRequest(ctx, id)
}
