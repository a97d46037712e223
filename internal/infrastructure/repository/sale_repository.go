package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/stockroom-api/internal/domain/entity"
	domainRepo "github.com/sangkips/stockroom-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) Create(ctx context.Context, sale *entity.Sale) error {
	return translateError(conn(ctx, r.db).
		Omit("Customer", "Cashier", "Payments", "Items.Product").
		Create(sale).Error)
}

func (r *saleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := conn(ctx, r.db).
		Preload("Customer").
		Preload("Items").Preload("Items.Product").
		Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("paid_at ASC") }).
		First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := conn(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var items []entity.SaleItem
	if err := conn(ctx, r.db).Where("sale_id = ?", id).Find(&items).Error; err != nil {
		return nil, err
	}
	sale.Items = items
	return &sale, nil
}

func (r *saleRepository) UpdateTotals(ctx context.Context, sale *entity.Sale) error {
	return conn(ctx, r.db).Model(&entity.Sale{}).
		Where("id = ?", sale.ID).
		Updates(map[string]interface{}{
			"order_status":   sale.OrderStatus,
			"payment_status": sale.PaymentStatus,
			"paid_amount":    sale.PaidAmount,
			"outstanding":    sale.Outstanding,
		}).Error
}

func (r *saleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := conn(ctx, r.db)
	if err := db.Where("sale_id = ?", id).Delete(&entity.SaleItem{}).Error; err != nil {
		return translateError(err)
	}
	return translateError(db.Delete(&entity.Sale{}, "id = ?", id).Error)
}

func (r *saleRepository) List(ctx context.Context, params *domainRepo.SaleFilterParams) ([]entity.Sale, int64, error) {
	var sales []entity.Sale
	var total int64

	query := conn(ctx, r.db).Model(&entity.Sale{})
	if params.OrderStatus != "" {
		query = query.Where("order_status = ?", params.OrderStatus)
	}
	if params.PaymentStatus != "" {
		query = query.Where("payment_status = ?", params.PaymentStatus)
	}
	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}
	if params.From != nil {
		query = query.Where("sale_date >= ?", *params.From)
	}
	if params.To != nil {
		query = query.Where("sale_date <= ?", *params.To)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Customer").
		Order("sale_date DESC").Order("created_at DESC").
		Find(&sales).Error

	return sales, total, err
}

func (r *saleRepository) CreatePayment(ctx context.Context, payment *entity.Payment) error {
	return translateError(conn(ctx, r.db).Create(payment).Error)
}

func (r *saleRepository) GetPayment(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	var payment entity.Payment
	err := conn(ctx, r.db).First(&payment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &payment, err
}

func (r *saleRepository) DeletePayment(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Delete(&entity.Payment{}, "id = ?", id).Error
}

func (r *saleRepository) ListPayments(ctx context.Context, saleID uuid.UUID) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := conn(ctx, r.db).Where("sale_id = ?", saleID).Order("paid_at ASC").Find(&payments).Error
	return payments, err
}

func (r *saleRepository) SumPayments(ctx context.Context, saleID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := conn(ctx, r.db).Model(&entity.Payment{}).
		Select("SUM(amount)").
		Where("sale_id = ?", saleID).
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}
