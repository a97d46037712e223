package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/stockroom-api/internal/domain/entity"
	"github.com/sangkips/stockroom-api/internal/domain/enum"
	"github.com/sangkips/stockroom-api/internal/domain/repository"
	"github.com/sangkips/stockroom-api/pkg/apperror"
	"github.com/sangkips/stockroom-api/pkg/pagination"
	"github.com/sangkips/stockroom-api/pkg/utils"
	"github.com/shopspring/decimal"
)

// SaleService handles sales, their completion against stock and payments
type SaleService struct {
	txManager     repository.TxManager
	saleRepo      repository.SaleRepository
	productRepo   repository.ProductRepository
	customerRepo  repository.CustomerRepository
	priceListRepo repository.PriceListRepository
	stock         *StockService
}

// NewSaleService creates a new sale service
func NewSaleService(
	txManager repository.TxManager,
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	priceListRepo repository.PriceListRepository,
	stock *StockService,
) *SaleService {
	return &SaleService{
		txManager:     txManager,
		saleRepo:      saleRepo,
		productRepo:   productRepo,
		customerRepo:  customerRepo,
		priceListRepo: priceListRepo,
		stock:         stock,
	}
}

// SaleItemInput represents a line of a sale. A nil UnitPrice takes the
// product's active price list price.
type SaleItemInput struct {
	ProductID uuid.UUID
	Quantity  int
	UnitPrice *decimal.Decimal
}

// CreateSaleInput represents the create sale input
type CreateSaleInput struct {
	CashierID  uuid.UUID
	CustomerID *uuid.UUID
	SaleDate   time.Time
	Note       *string
	Status     enum.OrderStatus
	Items      []SaleItemInput
}

// CreateSale stores a sale and its lines in one transaction. Stock is only
// taken when the sale is completed.
func (s *SaleService) CreateSale(ctx context.Context, input *CreateSaleInput) (*entity.Sale, error) {
	var c fieldCheck
	c.check(len(input.Items) > 0, "items", "items must not be empty")
	status := input.Status
	if status == "" {
		status = enum.OrderStatusDraft
	}
	c.check(status != enum.OrderStatusCompleted, "status", "status cannot be completed on create")
	c.check(status.IsValid(), "status", "status is invalid")

	productIDs := make([]uuid.UUID, 0, len(input.Items))
	for i, it := range input.Items {
		field := fmt.Sprintf("items[%d]", i)
		c.requireID(it.ProductID, field+".product_id")
		c.check(it.Quantity > 0, field+".quantity", field+".quantity must be greater than 0")
		c.check(it.UnitPrice == nil || !it.UnitPrice.IsNegative(), field+".unit_price", field+".unit_price must not be negative")
		productIDs = append(productIDs, it.ProductID)
	}
	if err := c.err(); err != nil {
		return nil, err
	}

	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		c.check(customer != nil, "customer_id", "customer_id does not exist")
	}
	if err := s.stock.checkProductsExist(ctx, productIDs, "items", &c); err != nil {
		return nil, err
	}
	if err := c.err(); err != nil {
		return nil, err
	}

	prices, err := s.activePrices(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	saleDate := input.SaleDate
	if saleDate.IsZero() {
		saleDate = time.Now()
	}

	sale := &entity.Sale{
		InvoiceNumber: utils.GenerateInvoiceNo(saleDate),
		CustomerID:    input.CustomerID,
		CashierID:     input.CashierID,
		OrderStatus:   status,
		SaleDate:      saleDate,
		Note:          input.Note,
		Items:         make([]entity.SaleItem, 0, len(input.Items)),
	}

	total := decimal.Zero
	for i, it := range input.Items {
		var price decimal.Decimal
		switch {
		case it.UnitPrice != nil:
			price = *it.UnitPrice
		default:
			p, ok := prices[it.ProductID]
			if !ok {
				field := fmt.Sprintf("items[%d].unit_price", i)
				c.add(field, field+" is required when the product has no active price")
				continue
			}
			price = p
		}
		line := price.Mul(decimal.NewFromInt(int64(it.Quantity)))
		total = total.Add(line)
		sale.Items = append(sale.Items, entity.SaleItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: price,
			LineTotal: line,
		})
	}
	if err := c.err(); err != nil {
		return nil, err
	}

	sale.GrandTotal = total
	sale.ApplyPayments(decimal.Zero)

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.saleRepo.Create(ctx, sale)
	})
	if err != nil {
		return nil, err
	}

	return s.GetSale(ctx, sale.ID)
}

func (s *SaleService) activePrices(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error) {
	entries, err := s.priceListRepo.GetActiveByProducts(ctx, uniqueIDs(productIDs))
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]decimal.Decimal, len(entries))
	for _, e := range entries {
		out[e.ProductID] = e.Price
	}
	return out, nil
}

// GetSale retrieves a sale with its lines and payments
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// ListSales lists sales with filtering and pagination
func (s *SaleService) ListSales(ctx context.Context, params *repository.SaleFilterParams) (*pagination.PaginatedResult[entity.Sale], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	sales, total, err := s.saleRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(sales, pag), nil
}

// UpdateSaleStatus moves a sale forward. Completing a sale locks the product
// rows, checks the ledger for enough stock and appends out movements.
func (s *SaleService) UpdateSaleStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus, actorID *uuid.UUID) (*entity.Sale, error) {
	if !status.IsValid() {
		return nil, apperror.NewFieldError("status", "status is invalid")
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		sale, err := s.saleRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if sale == nil {
			return apperror.NewNotFoundError("Sale")
		}
		if !sale.OrderStatus.CanTransitionTo(status) {
			return apperror.NewConflictError(fmt.Sprintf("Sale cannot move from %s to %s", sale.OrderStatus, status))
		}

		if status == enum.OrderStatusCompleted {
			if err := s.takeStock(ctx, sale, actorID); err != nil {
				return err
			}
		}

		sale.OrderStatus = status
		return s.saleRepo.UpdateTotals(ctx, sale)
	})
	if err != nil {
		return nil, err
	}

	return s.GetSale(ctx, id)
}

func (s *SaleService) takeStock(ctx context.Context, sale *entity.Sale, actorID *uuid.UUID) error {
	wanted := make(map[uuid.UUID]int64, len(sale.Items))
	for _, it := range sale.Items {
		wanted[it.ProductID] += int64(it.Quantity)
	}
	ids := make([]uuid.UUID, 0, len(wanted))
	for id := range wanted {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

	products, err := s.productRepo.LockByIDs(ctx, ids)
	if err != nil {
		return err
	}
	names := make(map[uuid.UUID]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}

	onHand, err := s.stock.OnHand(ctx, ids)
	if err != nil {
		return err
	}

	var short []string
	for _, id := range ids {
		if onHand[id] < wanted[id] {
			short = append(short, fmt.Sprintf("%s (on hand %d, needed %d)", names[id], onHand[id], wanted[id]))
		}
	}
	if len(short) > 0 {
		return apperror.NewConflictError("Insufficient stock for: " + strings.Join(short, ", "))
	}

	reference := sale.InvoiceNumber
	movements := make([]entity.StockMovement, 0, len(sale.Items))
	for _, it := range sale.Items {
		movements = append(movements, entity.StockMovement{
			ProductID:    it.ProductID,
			MovementType: enum.MovementTypeOut,
			Quantity:     -it.Quantity,
			Reference:    &reference,
			MovementDate: time.Now(),
			CreatedBy:    actorID,
		})
	}
	return s.stock.RecordMovements(ctx, movements)
}

// DeleteSale deletes a draft sale that has no payments
func (s *SaleService) DeleteSale(ctx context.Context, id uuid.UUID) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		sale, err := s.saleRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if sale == nil {
			return apperror.NewNotFoundError("Sale")
		}
		if sale.OrderStatus != enum.OrderStatusDraft {
			return apperror.NewConflictError("Only draft sales can be deleted")
		}

		paid, err := s.saleRepo.SumPayments(ctx, id)
		if err != nil {
			return err
		}
		if !paid.IsZero() {
			return apperror.NewConflictError("Sale has payments and cannot be deleted")
		}

		return s.saleRepo.Delete(ctx, id)
	})
}

// RecordPaymentInput represents money received against a sale
type RecordPaymentInput struct {
	Amount        decimal.Decimal
	PaymentMethod enum.PaymentMethod
	Reference     *string
	PaidAt        time.Time
}

// RecordPayment adds a payment and re-derives the payment fields of the sale
// from the sum of its payments. The sale row stays locked until commit.
func (s *SaleService) RecordPayment(ctx context.Context, saleID uuid.UUID, input *RecordPaymentInput) (*entity.Payment, error) {
	var c fieldCheck
	c.check(input.Amount.IsPositive(), "amount", "amount must be greater than 0")
	c.check(input.PaymentMethod.IsValid(), "payment_method", "payment_method is invalid")
	if err := c.err(); err != nil {
		return nil, err
	}

	payment := &entity.Payment{
		SaleID:        saleID,
		Amount:        input.Amount,
		PaymentMethod: input.PaymentMethod,
		Reference:     input.Reference,
		PaidAt:        input.PaidAt,
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		sale, err := s.saleRepo.GetForUpdate(ctx, saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return apperror.NewNotFoundError("Sale")
		}

		paid, err := s.saleRepo.SumPayments(ctx, saleID)
		if err != nil {
			return err
		}
		paid = paid.Add(input.Amount)
		if paid.GreaterThan(sale.GrandTotal) {
			return apperror.NewFieldError("amount", fmt.Sprintf("amount exceeds the outstanding balance of %s", sale.Outstanding.StringFixed(2)))
		}

		if err := s.saleRepo.CreatePayment(ctx, payment); err != nil {
			return err
		}

		sale.ApplyPayments(paid)
		return s.saleRepo.UpdateTotals(ctx, sale)
	})
	if err != nil {
		return nil, err
	}

	return payment, nil
}

// DeletePayment removes a payment and re-derives the sale's payment fields
func (s *SaleService) DeletePayment(ctx context.Context, paymentID uuid.UUID) error {
	payment, err := s.saleRepo.GetPayment(ctx, paymentID)
	if err != nil {
		return err
	}
	if payment == nil {
		return apperror.NewNotFoundError("Payment")
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		sale, err := s.saleRepo.GetForUpdate(ctx, payment.SaleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return apperror.NewNotFoundError("Sale")
		}

		if err := s.saleRepo.DeletePayment(ctx, paymentID); err != nil {
			return err
		}

		paid, err := s.saleRepo.SumPayments(ctx, sale.ID)
		if err != nil {
			return err
		}
		sale.ApplyPayments(paid)
		return s.saleRepo.UpdateTotals(ctx, sale)
	})
}

// ListPayments lists the payments of a sale
func (s *SaleService) ListPayments(ctx context.Context, saleID uuid.UUID) ([]entity.Payment, error) {
	if _, err := s.GetSale(ctx, saleID); err != nil {
		return nil, err
	}
	return s.saleRepo.ListPayments(ctx, saleID)
}
