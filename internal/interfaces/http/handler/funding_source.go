package handler

import (
	"github.com/bizsuite/backend/internal/application/funding"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FundingSourceHandler handles funding source endpoints
type FundingSourceHandler struct {
	BaseHandler
	service *funding.FundingSourceService
}

// NewFundingSourceHandler creates a new FundingSourceHandler
func NewFundingSourceHandler(service *funding.FundingSourceService, logger *zap.Logger) *FundingSourceHandler {
	return &FundingSourceHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// Create handles POST /api/v1/funding-sources
func (h *FundingSourceHandler) Create(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req funding.CreateFundingSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	source, err := h.service.CreateFundingSource(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, source)
}

// Get handles GET /api/v1/funding-sources/:id
func (h *FundingSourceHandler) Get(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	source, err := h.service.GetFundingSourceByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, source)
}

// List handles GET /api/v1/funding-sources
func (h *FundingSourceHandler) List(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var filter funding.FundingSourceListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	sources, total, err := h.service.ListFundingSources(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, sources, total, filter.Page, filter.PageSize)
}

// Update handles PUT /api/v1/funding-sources/:id
func (h *FundingSourceHandler) Update(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req funding.UpdateFundingSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	source, err := h.service.UpdateFundingSource(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, source)
}

// Delete handles DELETE /api/v1/funding-sources/:id
func (h *FundingSourceHandler) Delete(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteFundingSource(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
