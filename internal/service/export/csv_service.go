package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/shopdesk/internal/domain/models"
	"github.com/mamadbah2/shopdesk/internal/repository"
)

// ErrImportUnsupported is returned when the configured backend cannot replace
// a whole table at once.
var ErrImportUnsupported = errors.New("bulk import is not supported by the configured backend")

var stockHeader = []string{"product_id", "product_name", "date_added", "purchase_price", "selling_price", "supplier", "quantity"}

var salesHeader = []string{"product_id", "date_of_sale", "quantity_sold", "total_price"}

// Service round-trips both tables through CSV. All fields survive the trip
// unchanged except timestamps, which serialize as RFC 3339 strings and parse
// back to the same instant.
type Service struct {
	store  repository.Store
	loader repository.BulkLoader
	logger *zap.Logger
}

// NewService wires a CSV service. loader may be nil when the backend cannot
// bulk-replace tables; import calls then fail with ErrImportUnsupported.
func NewService(store repository.Store, loader repository.BulkLoader, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, loader: loader, logger: logger}
}

// ExportStockCSV renders the whole stock table.
func (s *Service) ExportStockCSV(ctx context.Context) ([]byte, error) {
	items, err := s.store.ListStock(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(stockHeader); err != nil {
		return nil, fmt.Errorf("write stock header: %w", err)
	}

	for _, item := range items {
		row := []string{
			item.ProductID,
			item.ProductName,
			item.DateAdded.Format(time.RFC3339),
			strconv.FormatFloat(item.PurchasePrice, 'f', -1, 64),
			strconv.FormatFloat(item.SellingPrice, 'f', -1, 64),
			item.Supplier,
			strconv.Itoa(item.Quantity),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write stock row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush stock csv: %w", err)
	}

	s.logger.Debug("stock exported", zap.Int("rows", len(items)))
	return buf.Bytes(), nil
}

// ExportSalesCSV renders the whole sales table.
func (s *Service) ExportSalesCSV(ctx context.Context) ([]byte, error) {
	records, err := s.store.ListSales(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(salesHeader); err != nil {
		return nil, fmt.Errorf("write sales header: %w", err)
	}

	for _, record := range records {
		row := []string{
			record.ProductID,
			record.DateOfSale.Format(time.RFC3339),
			strconv.Itoa(record.QuantitySold),
			strconv.FormatFloat(record.TotalPrice, 'f', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write sales row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush sales csv: %w", err)
	}

	s.logger.Debug("sales exported", zap.Int("rows", len(records)))
	return buf.Bytes(), nil
}

// ImportStockCSV parses the upload and replaces the stock table wholesale,
// returning the number of imported rows.
func (s *Service) ImportStockCSV(ctx context.Context, r io.Reader) (int, error) {
	if s.loader == nil {
		return 0, ErrImportUnsupported
	}

	rows, err := readRows(r, stockHeader)
	if err != nil {
		return 0, err
	}

	items := make([]models.StockItem, 0, len(rows))
	for i, row := range rows {
		item, err := parseStockRow(row)
		if err != nil {
			return 0, fmt.Errorf("stock row %d: %w", i+2, err)
		}
		items = append(items, item)
	}

	if err := s.loader.ReplaceStock(ctx, items); err != nil {
		return 0, err
	}

	s.logger.Info("stock imported", zap.Int("rows", len(items)))
	return len(items), nil
}

// ImportSalesCSV parses the upload and replaces the sales table wholesale,
// returning the number of imported rows.
func (s *Service) ImportSalesCSV(ctx context.Context, r io.Reader) (int, error) {
	if s.loader == nil {
		return 0, ErrImportUnsupported
	}

	rows, err := readRows(r, salesHeader)
	if err != nil {
		return 0, err
	}

	records := make([]models.SaleRecord, 0, len(rows))
	for i, row := range rows {
		record, err := parseSaleRow(row)
		if err != nil {
			return 0, fmt.Errorf("sales row %d: %w", i+2, err)
		}
		records = append(records, record)
	}

	if err := s.loader.ReplaceSales(ctx, records); err != nil {
		return 0, err
	}

	s.logger.Info("sales imported", zap.Int("rows", len(records)))
	return len(records), nil
}

func readRows(r io.Reader, header []string) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(header)

	first, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty csv input")
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	for i, name := range header {
		if first[i] != name {
			return nil, fmt.Errorf("unexpected column %q at position %d, want %q", first[i], i, name)
		}
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv rows: %w", err)
	}
	return rows, nil
}

func parseStockRow(row []string) (models.StockItem, error) {
	dateAdded, err := time.Parse(time.RFC3339, row[2])
	if err != nil {
		return models.StockItem{}, fmt.Errorf("date_added: %w", err)
	}
	purchase, err := strconv.ParseFloat(row[3], 64)
	if err != nil {
		return models.StockItem{}, fmt.Errorf("purchase_price: %w", err)
	}
	selling, err := strconv.ParseFloat(row[4], 64)
	if err != nil {
		return models.StockItem{}, fmt.Errorf("selling_price: %w", err)
	}
	quantity, err := strconv.Atoi(row[6])
	if err != nil {
		return models.StockItem{}, fmt.Errorf("quantity: %w", err)
	}

	return models.StockItem{
		ProductID:     row[0],
		ProductName:   row[1],
		DateAdded:     dateAdded,
		PurchasePrice: purchase,
		SellingPrice:  selling,
		Supplier:      row[5],
		Quantity:      quantity,
	}, nil
}

func parseSaleRow(row []string) (models.SaleRecord, error) {
	dateOfSale, err := time.Parse(time.RFC3339, row[1])
	if err != nil {
		return models.SaleRecord{}, fmt.Errorf("date_of_sale: %w", err)
	}
	quantity, err := strconv.Atoi(row[2])
	if err != nil {
		return models.SaleRecord{}, fmt.Errorf("quantity_sold: %w", err)
	}
	total, err := strconv.ParseFloat(row[3], 64)
	if err != nil {
		return models.SaleRecord{}, fmt.Errorf("total_price: %w", err)
	}

	return models.SaleRecord{
		ProductID:    row[0],
		DateOfSale:   dateOfSale,
		QuantitySold: quantity,
		TotalPrice:   total,
	}, nil
}
