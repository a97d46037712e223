package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/stockroom-api/internal/application/service"
	"github.com/sangkips/stockroom-api/internal/domain/enum"
	"github.com/sangkips/stockroom-api/internal/domain/repository"
	"github.com/sangkips/stockroom-api/internal/presentation/http/dto/request"
	"github.com/sangkips/stockroom-api/internal/presentation/http/dto/response"
)

// StockHandler handles batch receipts and the stock ledger
type StockHandler struct {
	stockService *service.StockService
}

// NewStockHandler creates a new stock handler
func NewStockHandler(stockService *service.StockService) *StockHandler {
	return &StockHandler{stockService: stockService}
}

// ListBatches handles listing received batches
func (h *StockHandler) ListBatches(c *gin.Context) {
	var filter request.BatchFilterRequest
	if !bindQuery(c, &filter) {
		return
	}
	from, ok := parseDate(c, "from", filter.From)
	if !ok {
		return
	}
	to, ok := parseDate(c, "to", filter.To)
	if !ok {
		return
	}

	batches, err := h.stockService.ListBatches(c.Request.Context(), &repository.BatchFilterParams{
		SupplierID: optionalID(filter.SupplierID),
		From:       from,
		To:         to,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Batches retrieved successfully", batches)
}

// GetBatch handles getting a batch with its items
func (h *StockHandler) GetBatch(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	batch, err := h.stockService.GetBatch(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Batch retrieved successfully", batch)
}

// CreateBatch handles receiving a stock batch
func (h *StockHandler) CreateBatch(c *gin.Context) {
	var req request.CreateBatchRequest
	if !bindJSON(c, &req) {
		return
	}
	purchaseDate, ok := parseDate(c, "purchase_date", req.PurchaseDate)
	if !ok {
		return
	}

	items := make([]service.BatchItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.BatchItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitCost:  *item.UnitCost,
		}
	}

	batch, err := h.stockService.CreateBatch(c.Request.Context(), &service.CreateBatchInput{
		SupplierID:    req.SupplierID,
		InvoiceNumber: req.InvoiceNumber,
		PurchaseDate:  *purchaseDate,
		Note:          req.Note,
		CreatedBy:     GetUserID(c),
		Items:         items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Batch created successfully", batch)
}

// DeleteBatch handles deleting a batch that has no ledger movements
func (h *StockHandler) DeleteBatch(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.stockService.DeleteBatch(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Deleted(c, "Batch deleted successfully")
}

// ListMovements handles listing stock ledger entries
func (h *StockHandler) ListMovements(c *gin.Context) {
	h.listMovements(c, "")
}

// ListAdjustments handles listing manual corrections only
func (h *StockHandler) ListAdjustments(c *gin.Context) {
	h.listMovements(c, enum.MovementTypeAdjust)
}

func (h *StockHandler) listMovements(c *gin.Context, only enum.MovementType) {
	var filter request.MovementFilterRequest
	if !bindQuery(c, &filter) {
		return
	}

	params := &repository.MovementFilterParams{
		ProductID:    optionalID(filter.ProductID),
		BatchID:      optionalID(filter.BatchID),
		MovementType: enum.MovementType(filter.MovementType),
	}
	if only != "" {
		params.MovementType = only
	}

	movements, err := h.stockService.ListMovements(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock movements retrieved successfully", movements)
}

// CreateAdjustment handles a manual stock correction
func (h *StockHandler) CreateAdjustment(c *gin.Context) {
	var req request.CreateAdjustmentRequest
	if !bindJSON(c, &req) {
		return
	}

	movement, err := h.stockService.CreateAdjustment(c.Request.Context(), &service.CreateAdjustmentInput{
		BatchID:   req.BatchID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Reference: req.Reference,
		Note:      req.Note,
		CreatedBy: GetUserID(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Stock adjustment recorded successfully", movement)
}
