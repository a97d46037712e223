package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/stockroom-api/internal/application/service"
	"github.com/sangkips/stockroom-api/internal/domain/repository"
	"github.com/sangkips/stockroom-api/internal/presentation/http/dto/request"
	"github.com/sangkips/stockroom-api/internal/presentation/http/dto/response"
)

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	productService *service.ProductService
	stockService   *service.StockService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService, stockService *service.StockService) *ProductHandler {
	return &ProductHandler{productService: productService, stockService: stockService}
}

func productInput(req *request.ProductRequest) *service.ProductInput {
	return &service.ProductInput{
		Name:        req.Name,
		Barcode:     req.Barcode,
		Unit:        req.Unit,
		Description: req.Description,
		IsAvailable: req.IsAvailable,
		CategoryID:  req.CategoryID,
		SupplierID:  req.SupplierID,
	}
}

// List handles listing products
func (h *ProductHandler) List(c *gin.Context) {
	var filter request.ProductFilterRequest
	if !bindQuery(c, &filter) {
		return
	}

	products, err := h.productService.ListProducts(c.Request.Context(), &repository.ProductFilterParams{
		Search:      filter.Search,
		CategoryID:  optionalID(filter.CategoryID),
		SupplierID:  optionalID(filter.SupplierID),
		IsAvailable: filter.IsAvailable,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Products retrieved successfully", products)
}

// Get handles getting a product by ID
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}

// Create handles creating a product
func (h *ProductHandler) Create(c *gin.Context) {
	var req request.ProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), productInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created successfully", product)
}

// Update handles updating a product
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req request.ProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), id, productInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product updated successfully", product)
}

// Delete handles deleting a product
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Deleted(c, "Product deleted successfully")
}

// Stock returns the ledger quantity of a product
func (h *ProductHandler) Stock(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	stock, err := h.stockService.CurrentQuantity(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product stock retrieved successfully", stock)
}

// LatestBatchPrice returns the unit cost from the most recent batch
func (h *ProductHandler) LatestBatchPrice(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	price, err := h.stockService.LatestBatchPrice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Latest batch price retrieved successfully", price)
}
