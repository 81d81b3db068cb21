package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mamadbah2/shopdesk/internal/domain/models"
)

// Store keeps the stock and sales tables in process memory. A single mutex
// serializes every access so the read-modify-write of a quantity decrement
// can never interleave with another caller.
type Store struct {
	mu    sync.Mutex
	stock []models.StockItem
	sales []models.SaleRecord
	index map[string]int // product id -> position in stock

	now   func() time.Time
	newID func() string
}

// NewStore builds an empty in-memory store.
func NewStore() *Store {
	return &Store{
		index: make(map[string]int),
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// ListStock returns a copy of the stock table in insertion order.
func (s *Store) ListStock(ctx context.Context) ([]models.StockItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.StockItem, len(s.stock))
	copy(out, s.stock)
	return out, nil
}

// ListSales returns a copy of the sales table in insertion order.
func (s *Store) ListSales(ctx context.Context) ([]models.SaleRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.SaleRecord, len(s.sales))
	copy(out, s.sales)
	return out, nil
}

// AddStock validates and appends the item, assigning a UUID product id and
// creation timestamp when absent.
func (s *Store) AddStock(ctx context.Context, item models.StockItem) (string, error) {
	if err := item.Validate(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if item.ProductID == "" {
		item.ProductID = s.newID()
	}
	if item.DateAdded.IsZero() {
		item.DateAdded = s.now()
	}

	s.index[item.ProductID] = len(s.stock)
	s.stock = append(s.stock, item)
	return item.ProductID, nil
}

// FindStock looks up a stock item by product id.
func (s *Store) FindStock(ctx context.Context, productID string) (models.StockItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.index[productID]
	if !ok {
		return models.StockItem{}, models.ErrNotFound
	}
	return s.stock[idx], nil
}

// DecrementStockQuantity atomically subtracts amount from the item's
// quantity. The stored quantity never goes below zero.
func (s *Store) DecrementStockQuantity(ctx context.Context, productID string, amount int) error {
	if amount <= 0 {
		return models.ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.index[productID]
	if !ok {
		return models.ErrNotFound
	}
	if amount > s.stock[idx].Quantity {
		return models.ErrInsufficientStock
	}

	s.stock[idx].Quantity -= amount
	return nil
}

// AddSale validates and appends a sale record.
func (s *Store) AddSale(ctx context.Context, record models.SaleRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if record.DateOfSale.IsZero() {
		record.DateOfSale = s.now()
	}
	s.sales = append(s.sales, record)
	return nil
}

// ReplaceStock swaps the whole stock table, as CSV import does. Imported rows
// keep their original ids and timestamps, and may carry quantity zero when
// the product sold out before the export.
func (s *Store) ReplaceStock(ctx context.Context, items []models.StockItem) error {
	for _, item := range items {
		if item.ProductID == "" {
			return models.ErrProductIDRequired
		}
		if item.Quantity < 0 {
			return models.ErrInvalidQuantity
		}
		if item.PurchasePrice < 0 || item.SellingPrice < 0 {
			return models.ErrNegativePrice
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.stock = make([]models.StockItem, len(items))
	copy(s.stock, items)
	s.index = make(map[string]int, len(items))
	for i, item := range s.stock {
		s.index[item.ProductID] = i
	}
	return nil
}

// ReplaceSales swaps the whole sales table.
func (s *Store) ReplaceSales(ctx context.Context, records []models.SaleRecord) error {
	for _, record := range records {
		if err := record.Validate(); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sales = make([]models.SaleRecord, len(records))
	copy(s.sales, records)
	return nil
}
