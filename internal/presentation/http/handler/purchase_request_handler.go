package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/stockroom-api/internal/application/service"
	"github.com/sangkips/stockroom-api/internal/domain/enum"
	"github.com/sangkips/stockroom-api/internal/domain/repository"
	"github.com/sangkips/stockroom-api/internal/presentation/http/dto/request"
	"github.com/sangkips/stockroom-api/internal/presentation/http/dto/response"
)

// PurchaseRequestHandler handles purchase request HTTP requests
type PurchaseRequestHandler struct {
	prService *service.PurchaseRequestService
}

// NewPurchaseRequestHandler creates a new purchase request handler
func NewPurchaseRequestHandler(prService *service.PurchaseRequestService) *PurchaseRequestHandler {
	return &PurchaseRequestHandler{prService: prService}
}

func (h *PurchaseRequestHandler) input(c *gin.Context) (*service.PurchaseRequestInput, bool) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return nil, false
	}

	var req request.PurchaseRequestRequest
	if !bindJSON(c, &req) {
		return nil, false
	}

	items := make([]service.PurchaseRequestItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.PurchaseRequestItemInput{
			ProductID:      item.ProductID,
			SupplierID:     item.SupplierID,
			RequestedQty:   item.RequestedQty,
			EstimatedPrice: item.EstimatedPrice,
		}
	}
	return &service.PurchaseRequestInput{
		RequesterID: *userID,
		Note:        req.Note,
		Items:       items,
	}, true
}

// List handles listing purchase requests
func (h *PurchaseRequestHandler) List(c *gin.Context) {
	var filter request.PurchaseRequestFilterRequest
	if !bindQuery(c, &filter) {
		return
	}

	params := &repository.PurchaseRequestFilterParams{
		Status: enum.PurchaseRequestStatus(filter.Status),
	}
	if filter.Mine {
		params.RequesterID = GetUserID(c)
	}

	prs, err := h.prService.ListPurchaseRequests(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase requests retrieved successfully", prs)
}

// Get handles getting a purchase request by ID
func (h *PurchaseRequestHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	pr, err := h.prService.GetPurchaseRequest(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase request retrieved successfully", pr)
}

// Create handles creating a draft purchase request
func (h *PurchaseRequestHandler) Create(c *gin.Context) {
	input, ok := h.input(c)
	if !ok {
		return
	}

	pr, err := h.prService.CreatePurchaseRequest(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Purchase request created successfully", pr)
}

// Update handles replacing a draft purchase request
func (h *PurchaseRequestHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	input, ok := h.input(c)
	if !ok {
		return
	}

	pr, err := h.prService.UpdatePurchaseRequest(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase request updated successfully", pr)
}

// Delete handles deleting a draft purchase request
func (h *PurchaseRequestHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.prService.DeletePurchaseRequest(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Deleted(c, "Purchase request deleted successfully")
}

// Submit sends a draft for review
func (h *PurchaseRequestHandler) Submit(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	pr, err := h.prService.SubmitPurchaseRequest(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase request submitted successfully", pr)
}

// Approve handles approving a submitted purchase request
func (h *PurchaseRequestHandler) Approve(c *gin.Context) {
	h.review(c, true)
}

// Reject handles rejecting a submitted purchase request
func (h *PurchaseRequestHandler) Reject(c *gin.Context) {
	h.review(c, false)
}

func (h *PurchaseRequestHandler) review(c *gin.Context, approve bool) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	reviewerID := GetUserID(c)
	if reviewerID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	review, message := h.prService.RejectPurchaseRequest, "Purchase request rejected successfully"
	if approve {
		review, message = h.prService.ApprovePurchaseRequest, "Purchase request approved successfully"
	}

	pr, err := review(c.Request.Context(), id, *reviewerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, message, pr)
}
