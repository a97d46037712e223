package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/stockroom-api/internal/domain/entity"
	domainRepo "github.com/sangkips/stockroom-api/internal/domain/repository"
	"gorm.io/gorm"
)

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) domainRepo.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	return translateError(conn(ctx, r.db).Create(customer).Error)
}

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	var customer entity.Customer
	err := conn(ctx, r.db).First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	return translateError(conn(ctx, r.db).Save(customer).Error)
}

func (r *customerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return translateError(conn(ctx, r.db).Delete(&entity.Customer{}, "id = ?", id).Error)
}

func (r *customerRepository) List(ctx context.Context, params *domainRepo.CustomerFilterParams) ([]entity.Customer, error) {
	var customers []entity.Customer

	query := conn(ctx, r.db).Model(&entity.Customer{})
	if params != nil {
		if params.Search != "" {
			query = query.Where("name ILIKE ? OR email ILIKE ? OR phone ILIKE ?",
				"%"+params.Search+"%", "%"+params.Search+"%", "%"+params.Search+"%")
		}
		if params.CustomerType != "" {
			query = query.Where("customer_type = ?", params.CustomerType)
		}
		if params.ActiveOnly {
			query = query.Where("is_active = ?", true)
		}
	}

	err := query.Order("name ASC").Find(&customers).Error
	return customers, err
}

type supplierRepository struct {
	db *gorm.DB
}

// NewSupplierRepository creates a new supplier repository
func NewSupplierRepository(db *gorm.DB) domainRepo.SupplierRepository {
	return &supplierRepository{db: db}
}

func (r *supplierRepository) Create(ctx context.Context, supplier *entity.Supplier) error {
	return translateError(conn(ctx, r.db).Create(supplier).Error)
}

func (r *supplierRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Supplier, error) {
	var supplier entity.Supplier
	err := conn(ctx, r.db).First(&supplier, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &supplier, err
}

func (r *supplierRepository) Update(ctx context.Context, supplier *entity.Supplier) error {
	return translateError(conn(ctx, r.db).Save(supplier).Error)
}

func (r *supplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return translateError(conn(ctx, r.db).Delete(&entity.Supplier{}, "id = ?", id).Error)
}

func (r *supplierRepository) List(ctx context.Context, search string) ([]entity.Supplier, error) {
	var suppliers []entity.Supplier

	query := conn(ctx, r.db).Model(&entity.Supplier{})
	if search != "" {
		query = query.Where("name ILIKE ? OR contact_person ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	err := query.Order("name ASC").Find(&suppliers).Error
	return suppliers, err
}
