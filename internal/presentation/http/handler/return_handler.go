package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/stockroom-api/internal/application/service"
	"github.com/sangkips/stockroom-api/internal/domain/enum"
	"github.com/sangkips/stockroom-api/internal/domain/repository"
	"github.com/sangkips/stockroom-api/internal/presentation/http/dto/request"
	"github.com/sangkips/stockroom-api/internal/presentation/http/dto/response"
)

// ReturnHandler handles customer return HTTP requests
type ReturnHandler struct {
	returnService *service.ReturnService
}

// NewReturnHandler creates a new return handler
func NewReturnHandler(returnService *service.ReturnService) *ReturnHandler {
	return &ReturnHandler{returnService: returnService}
}

func (h *ReturnHandler) input(c *gin.Context) (*service.ReturnInput, bool) {
	var req request.ReturnRequest
	if !bindJSON(c, &req) {
		return nil, false
	}

	returnDate, ok := parseDate(c, "return_date", req.ReturnDate)
	if !ok {
		return nil, false
	}
	input := &service.ReturnInput{
		ReturnDate:   time.Now(),
		CustomerID:   req.CustomerID,
		ProductID:    req.ProductID,
		Quantity:     req.Quantity,
		Reason:       req.Reason,
		RefundAmount: req.RefundAmount,
	}
	if returnDate != nil {
		input.ReturnDate = *returnDate
	}
	return input, true
}

// List handles listing returns
func (h *ReturnHandler) List(c *gin.Context) {
	var filter request.ReturnFilterRequest
	if !bindQuery(c, &filter) {
		return
	}

	returns, err := h.returnService.ListReturns(c.Request.Context(), &repository.ReturnFilterParams{
		Status:     enum.ReturnStatus(filter.Status),
		CustomerID: optionalID(filter.CustomerID),
		ProductID:  optionalID(filter.ProductID),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Returns retrieved successfully", returns)
}

// Get handles getting a return by ID
func (h *ReturnHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ret, err := h.returnService.GetReturn(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Return retrieved successfully", ret)
}

// Create handles recording a return
func (h *ReturnHandler) Create(c *gin.Context) {
	input, ok := h.input(c)
	if !ok {
		return
	}

	ret, err := h.returnService.CreateReturn(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Return created successfully", ret)
}

// Update handles updating a pending return
func (h *ReturnHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	input, ok := h.input(c)
	if !ok {
		return
	}

	ret, err := h.returnService.UpdateReturn(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Return updated successfully", ret)
}

// Delete handles deleting a pending return
func (h *ReturnHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.returnService.DeleteReturn(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Deleted(c, "Return deleted successfully")
}

// Approve puts the returned goods back into stock
func (h *ReturnHandler) Approve(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ret, err := h.returnService.ApproveReturn(c.Request.Context(), id, GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Return approved successfully", ret)
}

// Reject closes a return without touching stock
func (h *ReturnHandler) Reject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ret, err := h.returnService.RejectReturn(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Return rejected successfully", ret)
}
