package stock

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/shopdesk/internal/domain/models"
	"github.com/mamadbah2/shopdesk/internal/repository"
)

// Service exposes stock operations to the HTTP layer.
type Service struct {
	store  repository.Store
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a new stock service instance.
func NewService(store repository.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger, now: time.Now}
}

// AddStockItem constructs a stock item with the current timestamp and
// delegates to the store, which assigns the product id.
func (s *Service) AddStockItem(ctx context.Context, req models.NewStockItemRequest) (models.StockItem, error) {
	item := models.StockItem{
		ProductName:   req.ProductName,
		DateAdded:     s.now(),
		PurchasePrice: req.PurchasePrice,
		SellingPrice:  req.SellingPrice,
		Supplier:      req.Supplier,
		Quantity:      req.Quantity,
	}

	productID, err := s.store.AddStock(ctx, item)
	if err != nil {
		return models.StockItem{}, err
	}
	item.ProductID = productID

	s.logger.Info("stock item added",
		zap.String("product_id", item.ProductID),
		zap.String("product_name", item.ProductName),
		zap.Int("quantity", item.Quantity))

	return item, nil
}

// ListStock returns every stock item in insertion order.
func (s *Service) ListStock(ctx context.Context) ([]models.StockItem, error) {
	return s.store.ListStock(ctx)
}

// ListAvailableStock returns stock items with quantity above zero, in
// insertion order.
func (s *Service) ListAvailableStock(ctx context.Context) ([]models.StockItem, error) {
	items, err := s.store.ListStock(ctx)
	if err != nil {
		return nil, err
	}

	available := make([]models.StockItem, 0, len(items))
	for _, item := range items {
		if item.Quantity > 0 {
			available = append(available, item)
		}
	}
	return available, nil
}
