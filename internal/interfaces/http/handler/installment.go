package handler

import (
	"github.com/bizsuite/backend/internal/application/installment"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// InstallmentHandler handles installment plan and payment endpoints
type InstallmentHandler struct {
	BaseHandler
	service *installment.InstallmentService
}

// NewInstallmentHandler creates a new InstallmentHandler
func NewInstallmentHandler(service *installment.InstallmentService, logger *zap.Logger) *InstallmentHandler {
	return &InstallmentHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// CreatePlan handles POST /api/v1/installment-plans
func (h *InstallmentHandler) CreatePlan(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req installment.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	plan, err := h.service.CreatePlan(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, plan)
}

// GetPlan handles GET /api/v1/installment-plans/:id
func (h *InstallmentHandler) GetPlan(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	plan, err := h.service.GetPlanByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, plan)
}

// ListPlans handles GET /api/v1/installment-plans
func (h *InstallmentHandler) ListPlans(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var filter installment.PlanListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	plans, total, err := h.service.ListPlans(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, plans, total, filter.Page, filter.PageSize)
}

// UpdatePlan handles PUT /api/v1/installment-plans/:id
func (h *InstallmentHandler) UpdatePlan(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req installment.UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	plan, err := h.service.UpdatePlan(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, plan)
}

// DeletePlan handles DELETE /api/v1/installment-plans/:id
func (h *InstallmentHandler) DeletePlan(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.service.DeletePlan(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// AddPayment handles POST /api/v1/installment-plans/:id/payments
func (h *InstallmentHandler) AddPayment(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	planID, ok := h.pathID(c)
	if !ok {
		return
	}
	var req installment.AddPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	plan, err := h.service.AddPayment(c.Request.Context(), tenantID, planID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, plan)
}

// UpdatePayment handles PUT /api/v1/installment-payments/:id
func (h *InstallmentHandler) UpdatePayment(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	paymentID, ok := h.pathID(c)
	if !ok {
		return
	}
	var req installment.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	plan, err := h.service.UpdatePayment(c.Request.Context(), tenantID, paymentID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, plan)
}

// DeletePayment handles DELETE /api/v1/installment-payments/:id
func (h *InstallmentHandler) DeletePayment(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	paymentID, ok := h.pathID(c)
	if !ok {
		return
	}

	plan, err := h.service.DeletePayment(c.Request.Context(), tenantID, paymentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, plan)
}
