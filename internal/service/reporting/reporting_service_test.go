package reporting

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/mamadbah2/shopdesk/internal/domain/models"
	"github.com/mamadbah2/shopdesk/internal/repository/memory"
)

func day(d int, hour int) time.Time {
	return time.Date(2026, 8, d, hour, 0, 0, 0, time.UTC)
}

// seed loads three products and five sales spread over three days. The
// "ghost" sale references a product that was never stocked.
func seed(t *testing.T, store *memory.Store) (widgetID, gadgetID string) {
	t.Helper()
	ctx := context.Background()

	widgetID, _ = store.AddStock(ctx, models.StockItem{ProductName: "Widget", PurchasePrice: 2, SellingPrice: 5, Supplier: "Acme", Quantity: 100})
	gadgetID, _ = store.AddStock(ctx, models.StockItem{ProductName: "Gadget", PurchasePrice: 4, SellingPrice: 10, Supplier: "Acme", Quantity: 100})

	sales := []models.SaleRecord{
		{ProductID: widgetID, DateOfSale: day(1, 9), QuantitySold: 2, TotalPrice: 10},
		{ProductID: gadgetID, DateOfSale: day(1, 15), QuantitySold: 1, TotalPrice: 10},
		{ProductID: widgetID, DateOfSale: day(2, 11), QuantitySold: 4, TotalPrice: 20},
		{ProductID: "ghost", DateOfSale: day(3, 8), QuantitySold: 3, TotalPrice: 9},
		{ProductID: gadgetID, DateOfSale: day(3, 18), QuantitySold: 2, TotalPrice: 20},
	}
	for _, record := range sales {
		if err := store.AddSale(ctx, record); err != nil {
			t.Fatalf("seed sale: %v", err)
		}
	}
	return widgetID, gadgetID
}

func enrichedFixture(t *testing.T) (*Service, []models.EnrichedSale) {
	t.Helper()
	store := memory.NewStore()
	seed(t, store)
	svc := NewService(store, nil)

	records, err := svc.SalesInRange(context.Background(), day(1, 0), day(3, 23))
	if err != nil {
		t.Fatalf("SalesInRange: %v", err)
	}
	enriched, err := svc.EnrichWithProduct(context.Background(), records)
	if err != nil {
		t.Fatalf("EnrichWithProduct: %v", err)
	}
	return svc, enriched
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSalesInRangeInclusiveBounds(t *testing.T) {
	store := memory.NewStore()
	seed(t, store)
	svc := NewService(store, nil)
	ctx := context.Background()

	records, err := svc.SalesInRange(ctx, day(1, 9), day(2, 11))
	if err != nil {
		t.Fatalf("SalesInRange: %v", err)
	}
	// Both boundary instants are included.
	if len(records) != 3 {
		t.Fatalf("records = %d, want 3", len(records))
	}

	records, _ = svc.SalesInRange(ctx, day(4, 0), day(5, 0))
	if len(records) != 0 {
		t.Errorf("records outside window = %d, want 0", len(records))
	}
}

func TestEnrichWithProduct(t *testing.T) {
	_, enriched := enrichedFixture(t)

	if len(enriched) != 5 {
		t.Fatalf("enriched length = %d, want 5", len(enriched))
	}

	first := enriched[0]
	if first.ProductName != "Widget" || first.SellingPrice != 5 || first.PurchasePrice != 2 {
		t.Errorf("widget join = %+v", first)
	}
	// Profit uses current stock prices: (5-2)*2.
	if !almostEqual(first.Profit, 6) {
		t.Errorf("widget profit = %.2f, want 6.00", first.Profit)
	}

	ghost := enriched[3]
	if ghost.ProductName != "N/A" {
		t.Errorf("ghost product name = %q, want N/A", ghost.ProductName)
	}
	if ghost.SellingPrice != 0 || ghost.PurchasePrice != 0 || ghost.Profit != 0 {
		t.Errorf("ghost join leaked prices: %+v", ghost)
	}
}

func TestSummarize(t *testing.T) {
	svc, enriched := enrichedFixture(t)
	summary := svc.Summarize(enriched)

	if !almostEqual(summary.TotalSales, 69) {
		t.Errorf("total sales = %.2f, want 69.00", summary.TotalSales)
	}
	// Widget (5-2)*(2+4)=18, Gadget (10-4)*(1+2)=18, ghost 0.
	if !almostEqual(summary.TotalProfit, 36) {
		t.Errorf("total profit = %.2f, want 36.00", summary.TotalProfit)
	}
	if summary.Count != 5 {
		t.Errorf("count = %d, want 5", summary.Count)
	}
	if summary.UniqueProductCount != 3 {
		t.Errorf("unique products = %d, want 3", summary.UniqueProductCount)
	}
}

func TestDailyTotals(t *testing.T) {
	svc, enriched := enrichedFixture(t)
	totals := svc.DailyTotals(enriched)

	if len(totals) != 3 {
		t.Fatalf("daily totals = %d, want 3", len(totals))
	}

	var sum float64
	for i, total := range totals {
		sum += total.TotalSales
		if i > 0 && totals[i-1].Date >= total.Date {
			t.Errorf("dates not strictly ascending: %q then %q", totals[i-1].Date, total.Date)
		}
	}

	// Daily totals partition the summary.
	if summary := svc.Summarize(enriched); !almostEqual(sum, summary.TotalSales) {
		t.Errorf("sum of daily totals = %.2f, want %.2f", sum, summary.TotalSales)
	}

	if totals[0].Date != "2026-08-01" || !almostEqual(totals[0].TotalSales, 20) {
		t.Errorf("first day = %+v, want 2026-08-01 with 20.00", totals[0])
	}
}

func TestTopByMetric(t *testing.T) {
	svc, enriched := enrichedFixture(t)

	bySales := svc.TopByMetric(enriched, MetricSales, 10)
	if len(bySales) != 3 {
		t.Fatalf("groups = %d, want 3", len(bySales))
	}
	// Widget and Gadget tie at 30; Widget was encountered first.
	if bySales[0].ProductName != "Widget" || bySales[1].ProductName != "Gadget" {
		t.Errorf("sales order = %s, %s; want Widget, Gadget (stable tie)", bySales[0].ProductName, bySales[1].ProductName)
	}
	for i := 1; i < len(bySales); i++ {
		if bySales[i-1].TotalSales < bySales[i].TotalSales {
			t.Errorf("sales not descending at %d", i)
		}
	}

	byProfit := svc.TopByMetric(enriched, MetricProfit, 2)
	if len(byProfit) != 2 {
		t.Fatalf("truncated groups = %d, want 2", len(byProfit))
	}

	top1 := svc.TopByMetric(enriched, MetricSales, 1)
	if len(top1) != 1 || top1[0].ProductName != "Widget" {
		t.Errorf("top 1 = %+v, want single Widget entry", top1)
	}
}

func TestParseMetric(t *testing.T) {
	if _, err := ParseMetric("sales"); err != nil {
		t.Errorf("ParseMetric(sales): %v", err)
	}
	if _, err := ParseMetric("profit"); err != nil {
		t.Errorf("ParseMetric(profit): %v", err)
	}
	if _, err := ParseMetric("revenue"); err == nil {
		t.Error("ParseMetric(revenue) succeeded, want error")
	}
}

func TestSnapshotDay(t *testing.T) {
	store := memory.NewStore()
	seed(t, store)
	svc := NewService(store, nil)

	snapshot, err := svc.SnapshotDay(context.Background(), day(1, 17))
	if err != nil {
		t.Fatalf("SnapshotDay: %v", err)
	}
	if !snapshot.Date.Equal(day(1, 0)) {
		t.Errorf("snapshot date = %v, want midnight of day 1", snapshot.Date)
	}
	if !almostEqual(snapshot.TotalSales, 20) {
		t.Errorf("snapshot total sales = %.2f, want 20.00", snapshot.TotalSales)
	}
	if snapshot.SaleCount != 2 {
		t.Errorf("snapshot sale count = %d, want 2", snapshot.SaleCount)
	}
	if snapshot.UniqueProductCount != 2 {
		t.Errorf("snapshot unique products = %d, want 2", snapshot.UniqueProductCount)
	}
}
