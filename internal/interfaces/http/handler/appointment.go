package handler

import (
	"github.com/bizsuite/backend/internal/application/scheduling"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AppointmentHandler handles appointment endpoints
type AppointmentHandler struct {
	BaseHandler
	service *scheduling.AppointmentService
}

// NewAppointmentHandler creates a new AppointmentHandler
func NewAppointmentHandler(service *scheduling.AppointmentService, logger *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// Create handles POST /api/v1/appointments
func (h *AppointmentHandler) Create(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req scheduling.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	appointment, err := h.service.CreateAppointment(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, appointment)
}

// Get handles GET /api/v1/appointments/:id
func (h *AppointmentHandler) Get(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	appointment, err := h.service.GetAppointmentByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, appointment)
}

// List handles GET /api/v1/appointments
func (h *AppointmentHandler) List(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var filter scheduling.AppointmentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	appointments, total, err := h.service.ListAppointments(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, appointments, total, filter.Page, filter.PageSize)
}

// Update handles PUT /api/v1/appointments/:id
func (h *AppointmentHandler) Update(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req scheduling.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	appointment, err := h.service.UpdateAppointment(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, appointment)
}

// Delete handles DELETE /api/v1/appointments/:id
func (h *AppointmentHandler) Delete(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteAppointment(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
