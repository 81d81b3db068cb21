package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/shopdesk/internal/domain/models"
	salesvc "github.com/mamadbah2/shopdesk/internal/service/sale"
)

// SaleHandler handles sale HTTP endpoints.
type SaleHandler struct {
	svc    *salesvc.Service
	logger *zap.Logger
}

// NewSaleHandler constructs the HTTP handler adapter.
func NewSaleHandler(svc *salesvc.Service, logger *zap.Logger) *SaleHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SaleHandler{svc: svc, logger: logger}
}

// Create records a sale against a stock item.
func (h *SaleHandler) Create(c *gin.Context) {
	var req models.RecordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid sale payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	record, err := h.svc.RecordSale(c.Request.Context(), req.ProductID, req.Quantity)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, record)
}

// List returns every sale record.
func (h *SaleHandler) List(c *gin.Context) {
	records, err := h.svc.ListSales(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, records)
}
