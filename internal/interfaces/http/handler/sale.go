package handler

import (
	"github.com/bizsuite/backend/internal/application/trade"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SaleHandler handles point-of-sale endpoints. Sales are immutable once
// recorded; there are no update or delete routes.
type SaleHandler struct {
	BaseHandler
	service *trade.SaleService
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(service *trade.SaleService, logger *zap.Logger) *SaleHandler {
	return &SaleHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// Create handles POST /api/v1/sales
func (h *SaleHandler) Create(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req trade.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	sale, err := h.service.CreateSale(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, sale)
}

// Get handles GET /api/v1/sales/:id
func (h *SaleHandler) Get(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	sale, err := h.service.GetSaleByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}

// List handles GET /api/v1/sales
func (h *SaleHandler) List(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var filter trade.SaleListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	sales, total, err := h.service.ListSales(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, sales, total, filter.Page, filter.PageSize)
}
