package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/stockroom-api/internal/domain/entity"
	"github.com/sangkips/stockroom-api/internal/domain/enum"
	"github.com/sangkips/stockroom-api/internal/domain/repository"
	"github.com/sangkips/stockroom-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// CustomerService handles customer-related operations
type CustomerService struct {
	customerRepo repository.CustomerRepository
	refRepo      repository.ReferenceRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository, refRepo repository.ReferenceRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo, refRepo: refRepo}
}

// CustomerInput represents the editable fields of a customer
type CustomerInput struct {
	Name         string
	Email        *string
	Phone        *string
	Address      *string
	CustomerType enum.CustomerType
	CreditLimit  decimal.Decimal
	IsActive     *bool
}

func (in *CustomerInput) validate() error {
	var c fieldCheck
	c.check(strings.TrimSpace(in.Name) != "", "name", "name is required")
	c.check(in.CustomerType == "" || in.CustomerType.IsValid(), "customer_type", "customer_type must be RETAIL or WHOLESALE")
	c.check(!in.CreditLimit.IsNegative(), "credit_limit", "credit_limit must not be negative")
	return c.err()
}

func (in *CustomerInput) apply(customer *entity.Customer) {
	customer.Name = strings.TrimSpace(in.Name)
	customer.Email = in.Email
	customer.Phone = in.Phone
	customer.Address = in.Address
	customer.CustomerType = in.CustomerType
	if customer.CustomerType == "" {
		customer.CustomerType = enum.CustomerTypeRetail
	}
	customer.CreditLimit = in.CreditLimit
	customer.IsActive = in.IsActive == nil || *in.IsActive
}

// CreateCustomer creates a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CustomerInput) (*entity.Customer, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	customer := &entity.Customer{}
	input.apply(customer)

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// ListCustomers lists customers
func (s *CustomerService) ListCustomers(ctx context.Context, params *repository.CustomerFilterParams) ([]entity.Customer, error) {
	return s.customerRepo.List(ctx, params)
}

// UpdateCustomer replaces the editable fields of a customer
func (s *CustomerService) UpdateCustomer(ctx context.Context, id uuid.UUID, input *CustomerInput) (*entity.Customer, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	input.apply(customer)

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// DeleteCustomer deletes a customer without sales or returns
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetCustomer(ctx, id); err != nil {
		return err
	}

	refs, err := s.refRepo.CustomerReferences(ctx, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return apperror.NewConflictError("Customer has sales or returns and cannot be deleted")
	}

	return s.customerRepo.Delete(ctx, id)
}

// SupplierService handles supplier-related operations
type SupplierService struct {
	supplierRepo repository.SupplierRepository
	refRepo      repository.ReferenceRepository
}

// NewSupplierService creates a new supplier service
func NewSupplierService(supplierRepo repository.SupplierRepository, refRepo repository.ReferenceRepository) *SupplierService {
	return &SupplierService{supplierRepo: supplierRepo, refRepo: refRepo}
}

// SupplierInput represents the editable fields of a supplier
type SupplierInput struct {
	Name          string
	ContactPerson *string
	Phone         *string
	Email         *string
	Address       *string
}

func (in *SupplierInput) validate() error {
	var c fieldCheck
	c.check(strings.TrimSpace(in.Name) != "", "name", "name is required")
	return c.err()
}

func (in *SupplierInput) apply(supplier *entity.Supplier) {
	supplier.Name = strings.TrimSpace(in.Name)
	supplier.ContactPerson = in.ContactPerson
	supplier.Phone = in.Phone
	supplier.Email = in.Email
	supplier.Address = in.Address
}

// CreateSupplier creates a new supplier
func (s *SupplierService) CreateSupplier(ctx context.Context, input *SupplierInput) (*entity.Supplier, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	supplier := &entity.Supplier{}
	input.apply(supplier)

	if err := s.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, err
	}

	return supplier, nil
}

// GetSupplier retrieves a supplier by ID
func (s *SupplierService) GetSupplier(ctx context.Context, id uuid.UUID) (*entity.Supplier, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}
	return supplier, nil
}

// ListSuppliers lists suppliers matching search
func (s *SupplierService) ListSuppliers(ctx context.Context, search string) ([]entity.Supplier, error) {
	return s.supplierRepo.List(ctx, strings.TrimSpace(search))
}

// UpdateSupplier replaces the editable fields of a supplier
func (s *SupplierService) UpdateSupplier(ctx context.Context, id uuid.UUID, input *SupplierInput) (*entity.Supplier, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	supplier, err := s.GetSupplier(ctx, id)
	if err != nil {
		return nil, err
	}

	input.apply(supplier)

	if err := s.supplierRepo.Update(ctx, supplier); err != nil {
		return nil, err
	}

	return supplier, nil
}

// DeleteSupplier deletes a supplier that no product or batch references
func (s *SupplierService) DeleteSupplier(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetSupplier(ctx, id); err != nil {
		return err
	}

	refs, err := s.refRepo.SupplierReferences(ctx, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return apperror.NewConflictError("Supplier is referenced by products or batches")
	}

	return s.supplierRepo.Delete(ctx, id)
}
