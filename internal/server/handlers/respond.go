package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/shopdesk/internal/domain/models"
	"github.com/mamadbah2/shopdesk/internal/service/export"
)

// respondError maps the domain error taxonomy onto HTTP statuses. Anything
// unrecognized is a 500 with a generic body; the cause stays in the logs.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var backendErr *models.BackendError
	var partialErr *models.PartialSaleError

	switch {
	case errors.Is(err, models.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
	case errors.Is(err, models.ErrInsufficientStock):
		c.JSON(http.StatusConflict, gin.H{"error": "insufficient stock"})
	case errors.Is(err, export.ErrImportUnsupported):
		c.JSON(http.StatusNotImplemented, gin.H{"error": err.Error()})
	case errors.As(err, &partialErr):
		logger.Error("partial sale", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":      "sale partially applied, manual reconciliation required",
			"product_id": partialErr.ProductID,
			"quantity":   partialErr.Quantity,
		})
	case errors.As(err, &backendErr):
		logger.Error("backend failure", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "persistence backend unavailable"})
	default:
		logger.Error("unhandled error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
