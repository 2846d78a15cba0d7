package handler

import (
	"github.com/bizsuite/backend/internal/application/ledger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TransactionHandler handles the read-only ledger transaction endpoints.
// Transactions are written as mirrors of expenditures and sales; clients
// only query them.
type TransactionHandler struct {
	BaseHandler
	service *ledger.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(service *ledger.TransactionService, logger *zap.Logger) *TransactionHandler {
	return &TransactionHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// List handles GET /api/v1/ledger/transactions
func (h *TransactionHandler) List(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var filter ledger.TransactionListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	transactions, total, err := h.service.ListTransactions(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, transactions, total, filter.Page, filter.PageSize)
}
