package models

import "time"

// EnrichedSale is a sale record joined with the current stock row of its
// product. Sales whose product no longer exists keep ProductName "N/A" and
// zero prices.
type EnrichedSale struct {
	SaleRecord
	ProductName   string  `json:"product_name"`
	SellingPrice  float64 `json:"selling_price"`
	PurchasePrice float64 `json:"purchase_price"`
	Profit        float64 `json:"profit"`
}

// Summary aggregates a set of enriched sales.
type Summary struct {
	TotalSales         float64 `json:"total_sales"`
	TotalProfit        float64 `json:"total_profit"`
	Count              int     `json:"count"`
	UniqueProductCount int     `json:"unique_product_count"`
}

// DailyTotal is one bar of the daily sales chart, keyed by calendar date.
type DailyTotal struct {
	Date        string  `json:"date"`
	TotalSales  float64 `json:"total_sales"`
	TotalProfit float64 `json:"total_profit"`
}

// ProductTotal aggregates sales and profit per product name for top-N views.
type ProductTotal struct {
	ProductName string  `json:"product_name"`
	TotalSales  float64 `json:"total_sales"`
	TotalProfit float64 `json:"total_profit"`
}

// DailySnapshot is the archived end-of-day report persisted to MongoDB.
type DailySnapshot struct {
	Date               time.Time `bson:"date" json:"date"`
	TotalSales         float64   `bson:"total_sales" json:"total_sales"`
	TotalProfit        float64   `bson:"total_profit" json:"total_profit"`
	SaleCount          int       `bson:"sale_count" json:"sale_count"`
	UniqueProductCount int       `bson:"unique_product_count" json:"unique_product_count"`
	CreatedAt          time.Time `bson:"created_at" json:"created_at"`
}

// LowStockAlert is posted to the configured webhook when a sale drains a
// product at or below the alert threshold.
type LowStockAlert struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Remaining   int    `json:"remaining"`
	Threshold   int    `json:"threshold"`
}
