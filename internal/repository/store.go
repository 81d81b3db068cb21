package repository

import (
	"context"

	"github.com/mamadbah2/shopdesk/internal/domain/models"
)

// Store is the persistence port shared by every backend. Implementations must
// keep both tables in insertion order and guarantee that
// DecrementStockQuantity is a single logical operation: no caller may observe
// a quantity that has been read but not yet written.
type Store interface {
	ListStock(ctx context.Context) ([]models.StockItem, error)
	ListSales(ctx context.Context) ([]models.SaleRecord, error)
	// AddStock validates the item, assigns a fresh product id when absent and
	// appends it, returning the id.
	AddStock(ctx context.Context, item models.StockItem) (string, error)
	FindStock(ctx context.Context, productID string) (models.StockItem, error)
	// DecrementStockQuantity subtracts amount from the item's quantity. It
	// returns models.ErrNotFound when the id is unknown and
	// models.ErrInsufficientStock when amount exceeds the current quantity;
	// quantity never goes below zero.
	DecrementStockQuantity(ctx context.Context, productID string, amount int) error
	AddSale(ctx context.Context, record models.SaleRecord) error
}

// BulkLoader is the optional port used by CSV import to replace a whole table
// at once. Only the in-memory backend implements it.
type BulkLoader interface {
	ReplaceStock(ctx context.Context, items []models.StockItem) error
	ReplaceSales(ctx context.Context, records []models.SaleRecord) error
}
