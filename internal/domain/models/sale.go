package models

import "time"

// SaleRecord is one row of the sales table. Records are immutable once
// appended; TotalPrice captures quantity times the selling price as it was at
// the moment of sale, independent of later price changes.
type SaleRecord struct {
	ProductID    string    `json:"product_id"`
	DateOfSale   time.Time `json:"date_of_sale"`
	QuantitySold int       `json:"quantity_sold"`
	TotalPrice   float64   `json:"total_price"`
}

// RecordSaleRequest carries the user-supplied fields for a sale.
type RecordSaleRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

// Validate applies the append invariants shared by every backend.
func (r SaleRecord) Validate() error {
	switch {
	case r.ProductID == "":
		return ErrProductIDRequired
	case r.QuantitySold <= 0:
		return ErrInvalidQuantity
	case r.TotalPrice < 0:
		return ErrNegativePrice
	}
	return nil
}
