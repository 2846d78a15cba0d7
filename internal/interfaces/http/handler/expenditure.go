package handler

import (
	"github.com/bizsuite/backend/internal/application/ledger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ExpenditureHandler handles expenditure endpoints
type ExpenditureHandler struct {
	BaseHandler
	service *ledger.ExpenditureService
}

// NewExpenditureHandler creates a new ExpenditureHandler
func NewExpenditureHandler(service *ledger.ExpenditureService, logger *zap.Logger) *ExpenditureHandler {
	return &ExpenditureHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// Create handles POST /api/v1/expenditures
func (h *ExpenditureHandler) Create(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req ledger.CreateExpenditureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	expenditure, err := h.service.CreateExpenditure(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, expenditure)
}

// Get handles GET /api/v1/expenditures/:id
func (h *ExpenditureHandler) Get(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	expenditure, err := h.service.GetExpenditureByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, expenditure)
}

// List handles GET /api/v1/expenditures
func (h *ExpenditureHandler) List(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var filter ledger.ExpenditureListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	expenditures, total, err := h.service.ListExpenditures(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, expenditures, total, filter.Page, filter.PageSize)
}

// Update handles PUT /api/v1/expenditures/:id
func (h *ExpenditureHandler) Update(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req ledger.UpdateExpenditureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	expenditure, err := h.service.UpdateExpenditure(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, expenditure)
}

// Delete handles DELETE /api/v1/expenditures/:id
func (h *ExpenditureHandler) Delete(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteExpenditure(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
