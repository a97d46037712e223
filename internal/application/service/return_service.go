package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/stockroom-api/internal/domain/entity"
	"github.com/sangkips/stockroom-api/internal/domain/enum"
	"github.com/sangkips/stockroom-api/internal/domain/repository"
	"github.com/sangkips/stockroom-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// ReturnService handles customer returns
type ReturnService struct {
	txManager    repository.TxManager
	returnRepo   repository.ReturnRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	stock        *StockService
}

// NewReturnService creates a new return service
func NewReturnService(
	txManager repository.TxManager,
	returnRepo repository.ReturnRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	stock *StockService,
) *ReturnService {
	return &ReturnService{
		txManager:    txManager,
		returnRepo:   returnRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		stock:        stock,
	}
}

// ReturnInput represents the editable fields of a return
type ReturnInput struct {
	ReturnDate   time.Time
	CustomerID   *uuid.UUID
	ProductID    uuid.UUID
	Quantity     int
	Reason       *string
	RefundAmount decimal.Decimal
}

func (s *ReturnService) validate(ctx context.Context, input *ReturnInput) error {
	var c fieldCheck
	c.requireID(input.ProductID, "product_id")
	c.check(input.Quantity > 0, "quantity", "quantity must be greater than 0")
	c.check(!input.RefundAmount.IsNegative(), "refund_amount", "refund_amount must not be negative")
	if err := c.err(); err != nil {
		return err
	}

	product, err := s.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return err
	}
	c.check(product != nil, "product_id", "product_id does not exist")

	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return err
		}
		c.check(customer != nil, "customer_id", "customer_id does not exist")
	}
	return c.err()
}

func (in *ReturnInput) apply(ret *entity.Return) {
	ret.ReturnDate = in.ReturnDate
	if ret.ReturnDate.IsZero() {
		ret.ReturnDate = time.Now()
	}
	ret.CustomerID = in.CustomerID
	ret.ProductID = in.ProductID
	ret.Quantity = in.Quantity
	ret.Reason = in.Reason
	ret.RefundAmount = in.RefundAmount
}

// CreateReturn records a pending return
func (s *ReturnService) CreateReturn(ctx context.Context, input *ReturnInput) (*entity.Return, error) {
	if err := s.validate(ctx, input); err != nil {
		return nil, err
	}

	ret := &entity.Return{Status: enum.ReturnStatusPending}
	input.apply(ret)

	if err := s.returnRepo.Create(ctx, ret); err != nil {
		return nil, err
	}

	return s.GetReturn(ctx, ret.ID)
}

// GetReturn retrieves a return by ID
func (s *ReturnService) GetReturn(ctx context.Context, id uuid.UUID) (*entity.Return, error) {
	ret, err := s.returnRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return nil, apperror.NewNotFoundError("Return")
	}
	return ret, nil
}

// ListReturns lists returns
func (s *ReturnService) ListReturns(ctx context.Context, params *repository.ReturnFilterParams) ([]entity.Return, error) {
	return s.returnRepo.List(ctx, params)
}

// UpdateReturn replaces the editable fields of a pending return
func (s *ReturnService) UpdateReturn(ctx context.Context, id uuid.UUID, input *ReturnInput) (*entity.Return, error) {
	if err := s.validate(ctx, input); err != nil {
		return nil, err
	}

	ret, err := s.GetReturn(ctx, id)
	if err != nil {
		return nil, err
	}
	if ret.Status != enum.ReturnStatusPending {
		return nil, apperror.NewConflictError("Only pending returns can be edited")
	}

	input.apply(ret)
	ret.Customer = nil
	ret.Product = nil

	ok, err := s.returnRepo.UpdatePending(ctx, ret)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.NewConflictError("Only pending returns can be edited")
	}

	return s.GetReturn(ctx, id)
}

// DeleteReturn deletes a pending return
func (s *ReturnService) DeleteReturn(ctx context.Context, id uuid.UUID) error {
	ret, err := s.GetReturn(ctx, id)
	if err != nil {
		return err
	}
	if ret.Status != enum.ReturnStatusPending {
		return apperror.NewConflictError("Reviewed returns cannot be deleted")
	}

	ok, err := s.returnRepo.DeletePending(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.NewConflictError("Reviewed returns cannot be deleted")
	}
	return nil
}

// ApproveReturn accepts the goods back into stock
func (s *ReturnService) ApproveReturn(ctx context.Context, id uuid.UUID, reviewerID *uuid.UUID) (*entity.Return, error) {
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		ret, err := s.GetReturn(ctx, id)
		if err != nil {
			return err
		}

		ok, err := s.returnRepo.TransitionStatus(ctx, id, enum.ReturnStatusPending, enum.ReturnStatusApproved)
		if err != nil {
			return err
		}
		if !ok {
			return apperror.NewConflictError("Only pending returns can be approved")
		}

		reference := "RETURN-" + ret.ID.String()[:8]
		return s.stock.RecordMovements(ctx, []entity.StockMovement{{
			ProductID:    ret.ProductID,
			MovementType: enum.MovementTypeIn,
			Quantity:     ret.Quantity,
			Reference:    &reference,
			Note:         ret.Reason,
			MovementDate: time.Now(),
			CreatedBy:    reviewerID,
		}})
	})
	if err != nil {
		return nil, err
	}

	return s.GetReturn(ctx, id)
}

// RejectReturn closes a return without touching stock
func (s *ReturnService) RejectReturn(ctx context.Context, id uuid.UUID) (*entity.Return, error) {
	if _, err := s.GetReturn(ctx, id); err != nil {
		return nil, err
	}

	ok, err := s.returnRepo.TransitionStatus(ctx, id, enum.ReturnStatusPending, enum.ReturnStatusRejected)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.NewConflictError("Only pending returns can be rejected")
	}

	return s.GetReturn(ctx, id)
}
