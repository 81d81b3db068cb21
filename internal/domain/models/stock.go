package models

import "time"

// StockItem is one row of the stock table. ProductID and DateAdded are set by
// the store at creation and never change afterwards; Quantity is the only
// mutable field and is decremented by recorded sales.
type StockItem struct {
	ProductID     string    `json:"product_id"`
	ProductName   string    `json:"product_name"`
	DateAdded     time.Time `json:"date_added"`
	PurchasePrice float64   `json:"purchase_price"`
	SellingPrice  float64   `json:"selling_price"`
	Supplier      string    `json:"supplier"`
	Quantity      int       `json:"quantity"`
}

// NewStockItemRequest carries the user-supplied fields for a stock addition.
type NewStockItemRequest struct {
	ProductName   string  `json:"product_name" binding:"required"`
	PurchasePrice float64 `json:"purchase_price"`
	SellingPrice  float64 `json:"selling_price"`
	Supplier      string  `json:"supplier" binding:"required"`
	Quantity      int     `json:"quantity" binding:"required"`
}

// Validate applies the creation invariants shared by every backend.
func (i StockItem) Validate() error {
	switch {
	case i.ProductName == "":
		return ErrProductNameRequired
	case i.Supplier == "":
		return ErrSupplierRequired
	case i.PurchasePrice < 0 || i.SellingPrice < 0:
		return ErrNegativePrice
	case i.Quantity < 1:
		return ErrInvalidQuantity
	}
	return nil
}
