package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/shopdesk/internal/domain/models"
	stocksvc "github.com/mamadbah2/shopdesk/internal/service/stock"
)

// StockHandler handles stock HTTP endpoints.
type StockHandler struct {
	svc    *stocksvc.Service
	logger *zap.Logger
}

// NewStockHandler constructs the HTTP handler adapter.
func NewStockHandler(svc *stocksvc.Service, logger *zap.Logger) *StockHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StockHandler{svc: svc, logger: logger}
}

// Create adds a new stock item.
func (h *StockHandler) Create(c *gin.Context) {
	var req models.NewStockItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid stock payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item, err := h.svc.AddStockItem(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// List returns every stock item.
func (h *StockHandler) List(c *gin.Context) {
	items, err := h.svc.ListStock(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// ListAvailable returns stock items with quantity above zero.
func (h *StockHandler) ListAvailable(c *gin.Context) {
	items, err := h.svc.ListAvailableStock(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, items)
}
