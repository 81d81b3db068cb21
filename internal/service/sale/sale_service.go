package sale

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/shopdesk/internal/domain/models"
	"github.com/mamadbah2/shopdesk/internal/repository"
	"github.com/mamadbah2/shopdesk/pkg/clients/notify"
)

// Service records sales against stock. The decrement-then-append sequence is
// effectively atomic per product: a failed decrement records nothing, and a
// failed append after a successful decrement surfaces as PartialSaleError
// instead of being rolled back.
type Service struct {
	store     repository.Store
	notifier  notify.Client
	threshold int
	logger    *zap.Logger
	now       func() time.Time
}

// NewService wires a new sale service instance. notifier may be nil when
// alerting is not configured; threshold is the remaining quantity at or below
// which an alert fires.
func NewService(store repository.Store, notifier notify.Client, threshold int, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:     store,
		notifier:  notifier,
		threshold: threshold,
		logger:    logger,
		now:       time.Now,
	}
}

// RecordSale validates the requested quantity against the current stock row,
// prices the sale at the item's current selling price, decrements stock and
// appends the sale record.
func (s *Service) RecordSale(ctx context.Context, productID string, quantity int) (models.SaleRecord, error) {
	item, err := s.store.FindStock(ctx, productID)
	if err != nil {
		return models.SaleRecord{}, err
	}

	if quantity <= 0 || quantity > item.Quantity {
		if quantity > 0 {
			return models.SaleRecord{}, models.ErrInsufficientStock
		}
		return models.SaleRecord{}, models.ErrInvalidQuantity
	}

	record := models.SaleRecord{
		ProductID:    productID,
		DateOfSale:   s.now(),
		QuantitySold: quantity,
		TotalPrice:   float64(quantity) * item.SellingPrice,
	}

	if err := s.store.DecrementStockQuantity(ctx, productID, quantity); err != nil {
		// Raced to zero or backend failure; nothing was recorded.
		return models.SaleRecord{}, err
	}

	if err := s.store.AddSale(ctx, record); err != nil {
		s.logger.Error("sale record append failed after stock decrement",
			zap.String("product_id", productID),
			zap.Int("quantity", quantity),
			zap.Error(err))
		return models.SaleRecord{}, &models.PartialSaleError{
			ProductID: productID,
			Quantity:  quantity,
			Err:       err,
		}
	}

	s.logger.Info("sale recorded",
		zap.String("product_id", productID),
		zap.Int("quantity_sold", quantity),
		zap.Float64("total_price", record.TotalPrice))

	s.maybeAlertLowStock(ctx, item, quantity)

	return record, nil
}

// ListSales returns every sale record in insertion order.
func (s *Service) ListSales(ctx context.Context) ([]models.SaleRecord, error) {
	return s.store.ListSales(ctx)
}

func (s *Service) maybeAlertLowStock(ctx context.Context, item models.StockItem, sold int) {
	if s.notifier == nil {
		return
	}

	remaining := item.Quantity - sold
	if remaining > s.threshold {
		return
	}

	alert := models.LowStockAlert{
		ProductID:   item.ProductID,
		ProductName: item.ProductName,
		Remaining:   remaining,
		Threshold:   s.threshold,
	}

	// Best effort; a failed alert never fails the sale.
	if err := s.notifier.SendLowStockAlert(ctx, alert); err != nil {
		s.logger.Warn("low stock alert failed",
			zap.String("product_id", item.ProductID),
			zap.Error(err))
		return
	}

	s.logger.Info("low stock alert sent",
		zap.String("product_id", item.ProductID),
		zap.Int("remaining", remaining))
}
