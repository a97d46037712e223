package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/stockroom-api/internal/domain/entity"
	"github.com/sangkips/stockroom-api/internal/domain/repository"
	"github.com/sangkips/stockroom-api/pkg/apperror"
)

// ProductService handles product-related operations
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	supplierRepo repository.SupplierRepository
	refRepo      repository.ReferenceRepository
}

// NewProductService creates a new product service
func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	supplierRepo repository.SupplierRepository,
	refRepo repository.ReferenceRepository,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		supplierRepo: supplierRepo,
		refRepo:      refRepo,
	}
}

// ProductInput represents the editable fields of a product
type ProductInput struct {
	Name        string
	Barcode     *string
	Unit        string
	Description *string
	IsAvailable *bool
	CategoryID  *uuid.UUID
	SupplierID  *uuid.UUID
}

func (in *ProductInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Unit = strings.TrimSpace(in.Unit)
	if in.Barcode != nil {
		code := strings.TrimSpace(*in.Barcode)
		if code == "" {
			in.Barcode = nil
		} else {
			in.Barcode = &code
		}
	}
}

// validate checks required fields and that referenced rows exist
func (s *ProductService) validate(ctx context.Context, input *ProductInput) error {
	var c fieldCheck
	c.check(input.Name != "", "name", "name is required")

	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return err
		}
		c.check(category != nil, "category_id", "category_id does not exist")
	}
	if input.SupplierID != nil {
		supplier, err := s.supplierRepo.GetByID(ctx, *input.SupplierID)
		if err != nil {
			return err
		}
		c.check(supplier != nil, "supplier_id", "supplier_id does not exist")
	}
	return c.err()
}

func (s *ProductService) ensureBarcodeFree(ctx context.Context, barcode *string, selfID uuid.UUID) error {
	if barcode == nil {
		return nil
	}
	existing, err := s.productRepo.GetByBarcode(ctx, *barcode)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return apperror.NewConflictError("Product barcode already exists")
	}
	return nil
}

func (in *ProductInput) apply(product *entity.Product) {
	product.Name = in.Name
	product.Barcode = in.Barcode
	product.Unit = in.Unit
	product.Description = in.Description
	product.IsAvailable = in.IsAvailable == nil || *in.IsAvailable
	product.CategoryID = in.CategoryID
	product.SupplierID = in.SupplierID
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(ctx context.Context, input *ProductInput) (*entity.Product, error) {
	input.normalize()
	if err := s.validate(ctx, input); err != nil {
		return nil, err
	}
	if err := s.ensureBarcodeFree(ctx, input.Barcode, uuid.Nil); err != nil {
		return nil, err
	}

	product := &entity.Product{}
	input.apply(product)

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return s.GetProduct(ctx, product.ID)
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists products with their category and supplier
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) ([]entity.Product, error) {
	return s.productRepo.List(ctx, params)
}

// UpdateProduct replaces the editable fields of a product
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, input *ProductInput) (*entity.Product, error) {
	input.normalize()
	if err := s.validate(ctx, input); err != nil {
		return nil, err
	}

	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureBarcodeFree(ctx, input.Barcode, product.ID); err != nil {
		return nil, err
	}

	input.apply(product)
	product.Category = nil
	product.Supplier = nil

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return s.GetProduct(ctx, id)
}

// DeleteProduct deletes a product that has no stock, price or sales history
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return err
	}

	refs, err := s.refRepo.ProductReferences(ctx, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return apperror.NewConflictError("Product has stock, price or sales history and cannot be deleted")
	}

	return s.productRepo.Delete(ctx, id)
}
