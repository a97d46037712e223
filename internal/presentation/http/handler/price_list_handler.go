package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/stockroom-api/internal/application/service"
	"github.com/sangkips/stockroom-api/internal/domain/repository"
	"github.com/sangkips/stockroom-api/internal/presentation/http/dto/request"
	"github.com/sangkips/stockroom-api/internal/presentation/http/dto/response"
)

// PriceListHandler handles price list HTTP requests
type PriceListHandler struct {
	priceListService *service.PriceListService
}

// NewPriceListHandler creates a new price list handler
func NewPriceListHandler(priceListService *service.PriceListService) *PriceListHandler {
	return &PriceListHandler{priceListService: priceListService}
}

func priceListInput(req *request.PriceListRequest) *service.PriceListInput {
	return &service.PriceListInput{
		ProductID:  req.ProductID,
		Price:      *req.Price,
		BatchPrice: req.BatchPrice,
		IsActive:   req.IsActive,
	}
}

// List handles listing price list entries
func (h *PriceListHandler) List(c *gin.Context) {
	var filter request.PriceListFilterRequest
	if !bindQuery(c, &filter) {
		return
	}

	entries, err := h.priceListService.ListPriceList(c.Request.Context(), &repository.PriceListFilterParams{
		ProductID:  optionalID(filter.ProductID),
		ActiveOnly: filter.ActiveOnly,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Price list retrieved successfully", entries)
}

// Get handles getting a price list entry by ID
func (h *PriceListHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	entry, err := h.priceListService.GetPriceListEntry(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Price list entry retrieved successfully", entry)
}

// Create handles creating a price list entry
func (h *PriceListHandler) Create(c *gin.Context) {
	var req request.PriceListRequest
	if !bindJSON(c, &req) {
		return
	}

	entry, err := h.priceListService.CreatePriceListEntry(c.Request.Context(), priceListInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Price list entry created successfully", entry)
}

// Update handles updating a price list entry
func (h *PriceListHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req request.PriceListRequest
	if !bindJSON(c, &req) {
		return
	}

	entry, err := h.priceListService.UpdatePriceListEntry(c.Request.Context(), id, priceListInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Price list entry updated successfully", entry)
}

// Delete handles deleting a price list entry
func (h *PriceListHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.priceListService.DeletePriceListEntry(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Deleted(c, "Price list entry deleted successfully")
}
