package reporting

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/shopdesk/internal/domain/models"
	"github.com/mamadbah2/shopdesk/internal/repository"
)

const dateLayout = "2006-01-02"

// Metric selects the ranking column for top-N views.
type Metric string

const (
	MetricSales  Metric = "sales"
	MetricProfit Metric = "profit"
)

// ParseMetric validates a user-supplied metric name.
func ParseMetric(value string) (Metric, error) {
	switch Metric(value) {
	case MetricSales, MetricProfit:
		return Metric(value), nil
	default:
		return "", fmt.Errorf("%w: metric must be %q or %q", models.ErrValidation, MetricSales, MetricProfit)
	}
}

// Service derives sales history views from the store.
//
// Sale totals capture the selling price at sale time, while per-record profit
// uses the product's *current* prices. Reported profit therefore drifts from
// the transaction economics when prices change after a sale; that matches the
// historical behavior of the dashboard and is deliberate.
type Service struct {
	store  repository.Store
	logger *zap.Logger
}

// NewService wires a new reporting service instance.
func NewService(store repository.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// SalesInRange returns the sale records whose date falls inside the inclusive
// [start, end] window, preserving insertion order.
func (s *Service) SalesInRange(ctx context.Context, start, end time.Time) ([]models.SaleRecord, error) {
	records, err := s.store.ListSales(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]models.SaleRecord, 0, len(records))
	for _, record := range records {
		if record.DateOfSale.Before(start) || record.DateOfSale.After(end) {
			continue
		}
		filtered = append(filtered, record)
	}
	return filtered, nil
}

// EnrichWithProduct left-joins the sales against the current stock table.
// Sales whose product no longer exists keep product name "N/A" and zero
// prices, which also zeroes their profit.
func (s *Service) EnrichWithProduct(ctx context.Context, sales []models.SaleRecord) ([]models.EnrichedSale, error) {
	items, err := s.store.ListStock(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]models.StockItem, len(items))
	for _, item := range items {
		byID[item.ProductID] = item
	}

	enriched := make([]models.EnrichedSale, 0, len(sales))
	for _, record := range sales {
		row := models.EnrichedSale{SaleRecord: record, ProductName: "N/A"}
		if item, ok := byID[record.ProductID]; ok {
			row.ProductName = item.ProductName
			row.SellingPrice = item.SellingPrice
			row.PurchasePrice = item.PurchasePrice
		} else {
			s.logger.Debug("sale references unknown product", zap.String("product_id", record.ProductID))
		}
		row.Profit = ComputeProfit(row)
		enriched = append(enriched, row)
	}
	return enriched, nil
}

// ComputeProfit derives the margin of one enriched sale from the current
// stock prices, not the price at sale time.
func ComputeProfit(record models.EnrichedSale) float64 {
	return (record.SellingPrice - record.PurchasePrice) * float64(record.QuantitySold)
}

// Summarize totals the enriched records.
func (s *Service) Summarize(records []models.EnrichedSale) models.Summary {
	summary := models.Summary{Count: len(records)}

	seen := make(map[string]struct{}, len(records))
	for _, record := range records {
		summary.TotalSales += record.TotalPrice
		summary.TotalProfit += record.Profit
		seen[record.ProductID] = struct{}{}
	}
	summary.UniqueProductCount = len(seen)
	return summary
}

// DailyTotals groups the records by calendar date of sale, ascending, with no
// duplicate dates.
func (s *Service) DailyTotals(records []models.EnrichedSale) []models.DailyTotal {
	byDate := make(map[string]*models.DailyTotal)
	for _, record := range records {
		date := record.DateOfSale.Format(dateLayout)
		total, ok := byDate[date]
		if !ok {
			total = &models.DailyTotal{Date: date}
			byDate[date] = total
		}
		total.TotalSales += record.TotalPrice
		total.TotalProfit += record.Profit
	}

	totals := make([]models.DailyTotal, 0, len(byDate))
	for _, total := range byDate {
		totals = append(totals, *total)
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].Date < totals[j].Date })
	return totals
}

// TopByMetric groups the records by product name, sums both metrics and
// returns the first n groups ordered descending by the requested metric. Ties
// keep the first-encountered group first.
func (s *Service) TopByMetric(records []models.EnrichedSale, metric Metric, n int) []models.ProductTotal {
	byName := make(map[string]int)
	totals := make([]models.ProductTotal, 0)

	for _, record := range records {
		idx, ok := byName[record.ProductName]
		if !ok {
			idx = len(totals)
			byName[record.ProductName] = idx
			totals = append(totals, models.ProductTotal{ProductName: record.ProductName})
		}
		totals[idx].TotalSales += record.TotalPrice
		totals[idx].TotalProfit += record.Profit
	}

	sort.SliceStable(totals, func(i, j int) bool {
		if metric == MetricProfit {
			return totals[i].TotalProfit > totals[j].TotalProfit
		}
		return totals[i].TotalSales > totals[j].TotalSales
	})

	if n >= 0 && len(totals) > n {
		totals = totals[:n]
	}
	return totals
}

// SnapshotDay builds the archived end-of-day report for the calendar day
// containing the given instant.
func (s *Service) SnapshotDay(ctx context.Context, day time.Time) (models.DailySnapshot, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1).Add(-time.Nanosecond)

	records, err := s.SalesInRange(ctx, start, end)
	if err != nil {
		return models.DailySnapshot{}, err
	}

	enriched, err := s.EnrichWithProduct(ctx, records)
	if err != nil {
		return models.DailySnapshot{}, err
	}

	summary := s.Summarize(enriched)
	return models.DailySnapshot{
		Date:               start,
		TotalSales:         summary.TotalSales,
		TotalProfit:        summary.TotalProfit,
		SaleCount:          summary.Count,
		UniqueProductCount: summary.UniqueProductCount,
		CreatedAt:          time.Now(),
	}, nil
}
