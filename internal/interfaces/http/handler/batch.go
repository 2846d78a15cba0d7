package handler

import (
	"github.com/bizsuite/backend/internal/application/production"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BatchHandler handles production batch endpoints
type BatchHandler struct {
	BaseHandler
	service *production.BatchService
}

// NewBatchHandler creates a new BatchHandler
func NewBatchHandler(service *production.BatchService, logger *zap.Logger) *BatchHandler {
	return &BatchHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// Create handles POST /api/v1/production-batches
func (h *BatchHandler) Create(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req production.CreateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	batch, err := h.service.CreateBatch(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, batch)
}

// Get handles GET /api/v1/production-batches/:id
func (h *BatchHandler) Get(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	batch, err := h.service.GetBatchByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, batch)
}

// List handles GET /api/v1/production-batches
func (h *BatchHandler) List(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var filter production.BatchListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	batches, total, err := h.service.ListBatches(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, batches, total, filter.Page, filter.PageSize)
}

// Complete handles POST /api/v1/production-batches/:id/complete.
// Completion adds the batch quantity to the product's stock atomically.
func (h *BatchHandler) Complete(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	batch, err := h.service.CompleteBatch(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, batch)
}

// Cancel handles POST /api/v1/production-batches/:id/cancel
func (h *BatchHandler) Cancel(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	batch, err := h.service.CancelBatch(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, batch)
}
