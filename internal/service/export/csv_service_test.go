package export

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mamadbah2/shopdesk/internal/domain/models"
	"github.com/mamadbah2/shopdesk/internal/repository/memory"
)

func TestStockCSVRoundTrip(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store, store, nil)
	ctx := context.Background()

	added := time.Date(2026, 8, 15, 10, 30, 45, 0, time.FixedZone("WAT", 3600))
	original := models.StockItem{
		ProductID:     "p-1",
		ProductName:   "Widget, deluxe",
		DateAdded:     added,
		PurchasePrice: 2.5,
		SellingPrice:  5.99,
		Supplier:      "Acme \"Intl\"",
		Quantity:      7,
	}
	if err := store.ReplaceStock(ctx, []models.StockItem{original}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	data, err := svc.ExportStockCSV(ctx)
	if err != nil {
		t.Fatalf("ExportStockCSV: %v", err)
	}
	if !strings.HasPrefix(string(data), "product_id,product_name,date_added,") {
		t.Errorf("unexpected header: %s", strings.SplitN(string(data), "\n", 2)[0])
	}

	// Wipe and re-import the export.
	if err := store.ReplaceStock(ctx, nil); err != nil {
		t.Fatalf("wipe: %v", err)
	}
	count, err := svc.ImportStockCSV(ctx, bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ImportStockCSV: %v", err)
	}
	if count != 1 {
		t.Fatalf("imported = %d, want 1", count)
	}

	item, err := store.FindStock(ctx, "p-1")
	if err != nil {
		t.Fatalf("FindStock: %v", err)
	}
	if item.ProductName != original.ProductName || item.Supplier != original.Supplier {
		t.Errorf("strings did not round-trip: %+v", item)
	}
	if item.PurchasePrice != 2.5 || item.SellingPrice != 5.99 || item.Quantity != 7 {
		t.Errorf("numbers did not round-trip: %+v", item)
	}
	if !item.DateAdded.Equal(added) {
		t.Errorf("date_added = %v, want same instant as %v", item.DateAdded, added)
	}
}

func TestSalesCSVRoundTrip(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store, store, nil)
	ctx := context.Background()

	soldAt := time.Date(2026, 8, 20, 18, 5, 0, 0, time.UTC)
	original := models.SaleRecord{
		ProductID:    "p-1",
		DateOfSale:   soldAt,
		QuantitySold: 3,
		TotalPrice:   17.97,
	}
	if err := store.ReplaceSales(ctx, []models.SaleRecord{original}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	data, err := svc.ExportSalesCSV(ctx)
	if err != nil {
		t.Fatalf("ExportSalesCSV: %v", err)
	}

	if err := store.ReplaceSales(ctx, nil); err != nil {
		t.Fatalf("wipe: %v", err)
	}
	count, err := svc.ImportSalesCSV(ctx, bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ImportSalesCSV: %v", err)
	}
	if count != 1 {
		t.Fatalf("imported = %d, want 1", count)
	}

	records, _ := store.ListSales(ctx)
	if len(records) != 1 {
		t.Fatalf("sales length = %d, want 1", len(records))
	}
	record := records[0]
	if record.ProductID != "p-1" || record.QuantitySold != 3 || record.TotalPrice != 17.97 {
		t.Errorf("record did not round-trip: %+v", record)
	}
	if !record.DateOfSale.Equal(soldAt) {
		t.Errorf("date_of_sale = %v, want %v", record.DateOfSale, soldAt)
	}
}

func TestImportRejectsBadHeader(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store, store, nil)

	input := "product_name,product_id,date_added,purchase_price,selling_price,supplier,quantity\n"
	if _, err := svc.ImportStockCSV(context.Background(), strings.NewReader(input)); err == nil {
		t.Error("swapped header accepted, want error")
	}

	if _, err := svc.ImportSalesCSV(context.Background(), strings.NewReader("")); err == nil {
		t.Error("empty input accepted, want error")
	}
}

func TestImportRejectsBadRows(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store, store, nil)

	input := "product_id,date_of_sale,quantity_sold,total_price\np-1,not-a-date,3,9.99\n"
	if _, err := svc.ImportSalesCSV(context.Background(), strings.NewReader(input)); err == nil {
		t.Error("malformed date accepted, want error")
	}
}

func TestImportUnsupportedWithoutLoader(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store, nil, nil)

	_, err := svc.ImportStockCSV(context.Background(), strings.NewReader("x"))
	if !errors.Is(err, ErrImportUnsupported) {
		t.Errorf("error = %v, want ErrImportUnsupported", err)
	}
}
