package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	exportsvc "github.com/mamadbah2/shopdesk/internal/service/export"
)

// ExportHandler handles CSV import/export HTTP endpoints.
type ExportHandler struct {
	svc    *exportsvc.Service
	logger *zap.Logger
}

// NewExportHandler constructs the HTTP handler adapter.
func NewExportHandler(svc *exportsvc.Service, logger *zap.Logger) *ExportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportHandler{svc: svc, logger: logger}
}

// ExportStock streams the stock table as a CSV download.
func (h *ExportHandler) ExportStock(c *gin.Context) {
	data, err := h.svc.ExportStockCSV(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	serveCSV(c, "stock_data", data)
}

// ExportSales streams the sales table as a CSV download.
func (h *ExportHandler) ExportSales(c *gin.Context) {
	data, err := h.svc.ExportSalesCSV(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	serveCSV(c, "sales_data", data)
}

// ImportStock replaces the stock table with the uploaded CSV body.
func (h *ExportHandler) ImportStock(c *gin.Context) {
	count, err := h.svc.ImportStockCSV(c.Request.Context(), c.Request.Body)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": count})
}

// ImportSales replaces the sales table with the uploaded CSV body.
func (h *ExportHandler) ImportSales(c *gin.Context) {
	count, err := h.svc.ImportSalesCSV(c.Request.Context(), c.Request.Body)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": count})
}

func serveCSV(c *gin.Context, prefix string, data []byte) {
	filename := fmt.Sprintf("%s_%s.csv", prefix, time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/csv", data)
}
