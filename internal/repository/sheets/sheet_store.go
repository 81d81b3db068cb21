package sheets

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/shopdesk/internal/config"
	"github.com/mamadbah2/shopdesk/internal/domain/models"
)

const (
	stockRange = "Stock!A2:G"
	salesRange = "Sales!A2:D"

	// Column F holds the quantity inside the Stock sheet.
	stockQuantityColumn = "F"
	// Data starts at row 2; row 1 carries the headers.
	firstDataRow = 2

	dateAddedLayout  = "2006-01-02"
	dateOfSaleLayout = "2006-01-02 15:04:05"
)

// SheetStore persists both tables to a Google Spreadsheet with one worksheet
// per table. Stock columns are Product Name, Date Added, Purchase Price,
// Selling Price, Supplier, Quantity, Product ID; sales columns are Product
// ID, Date of Sale, Quantity Sold, Total Price.
//
// The Sheets API offers no transactional update, so the find-row-then-update
// sequence behind DecrementStockQuantity is serialized by a process-local
// mutex. That upholds the atomicity contract for a single process; multiple
// processes against the same spreadsheet are out of scope.
type SheetStore struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger

	mu  sync.Mutex
	now func() time.Time
}

// NewSheetStore builds a Google Sheets backed store instance.
func NewSheetStore(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*SheetStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &SheetStore{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
		now:           time.Now,
	}, nil
}

// ListStock reads the whole Stock sheet in row order.
func (s *SheetStore) ListStock(ctx context.Context) ([]models.StockItem, error) {
	rows, err := s.readRange(ctx, stockRange)
	if err != nil {
		return nil, models.NewBackendError("list stock", err)
	}

	items := make([]models.StockItem, 0, len(rows))
	for i, row := range rows {
		item, err := s.parseStockRow(row)
		if err != nil {
			s.logger.Debug("skip malformed stock row", zap.Int("row", i+firstDataRow), zap.Error(err))
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// ListSales reads the whole Sales sheet in row order.
func (s *SheetStore) ListSales(ctx context.Context) ([]models.SaleRecord, error) {
	rows, err := s.readRange(ctx, salesRange)
	if err != nil {
		return nil, models.NewBackendError("list sales", err)
	}

	records := make([]models.SaleRecord, 0, len(rows))
	for i, row := range rows {
		record, err := s.parseSaleRow(row)
		if err != nil {
			s.logger.Debug("skip malformed sales row", zap.Int("row", i+firstDataRow), zap.Error(err))
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

// AddStock validates and appends a stock row. Row ids follow the workbook's
// historical P<timestamp> convention.
func (s *SheetStore) AddStock(ctx context.Context, item models.StockItem) (string, error) {
	if err := item.Validate(); err != nil {
		return "", err
	}

	if item.ProductID == "" {
		item.ProductID = "P" + s.now().Format("20060102150405")
	}
	if item.DateAdded.IsZero() {
		item.DateAdded = s.now()
	}

	values := []interface{}{
		item.ProductName,
		item.DateAdded.Format(dateAddedLayout),
		item.PurchasePrice,
		item.SellingPrice,
		item.Supplier,
		item.Quantity,
		item.ProductID,
	}

	if err := s.appendRow(ctx, stockRange, values); err != nil {
		return "", models.NewBackendError("add stock", err)
	}

	s.logger.Debug("stock row appended", zap.String("product_id", item.ProductID))
	return item.ProductID, nil
}

// FindStock scans the Stock sheet for the given product id.
func (s *SheetStore) FindStock(ctx context.Context, productID string) (models.StockItem, error) {
	items, err := s.ListStock(ctx)
	if err != nil {
		return models.StockItem{}, err
	}

	for _, item := range items {
		if item.ProductID == productID {
			return item, nil
		}
	}
	return models.StockItem{}, models.ErrNotFound
}

// DecrementStockQuantity locates the product row and rewrites its quantity
// cell. The whole read-check-write sequence holds the store mutex.
func (s *SheetStore) DecrementStockQuantity(ctx context.Context, productID string, amount int) error {
	if amount <= 0 {
		return models.ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.readRange(ctx, stockRange)
	if err != nil {
		return models.NewBackendError("decrement stock", err)
	}

	rowNumber := 0
	current := 0
	for i, row := range rows {
		item, err := s.parseStockRow(row)
		if err != nil {
			continue
		}
		if item.ProductID == productID {
			rowNumber = i + firstDataRow
			current = item.Quantity
			break
		}
	}

	if rowNumber == 0 {
		return models.ErrNotFound
	}
	if amount > current {
		return models.ErrInsufficientStock
	}

	cell := fmt.Sprintf("Stock!%s%d", stockQuantityColumn, rowNumber)
	payload := &sheetsapi.ValueRange{Values: [][]interface{}{{strconv.Itoa(current - amount)}}}

	call := s.service.Spreadsheets.Values.Update(s.spreadsheetID, cell, payload).
		ValueInputOption("USER_ENTERED").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return models.NewBackendError("decrement stock", fmt.Errorf("update cell %s: %w", cell, err))
	}

	s.logger.Debug("stock quantity updated",
		zap.String("product_id", productID),
		zap.Int("previous", current),
		zap.Int("new", current-amount))
	return nil
}

// AddSale validates and appends a sales row.
func (s *SheetStore) AddSale(ctx context.Context, record models.SaleRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	if record.DateOfSale.IsZero() {
		record.DateOfSale = s.now()
	}

	values := []interface{}{
		record.ProductID,
		record.DateOfSale.Format(dateOfSaleLayout),
		strconv.Itoa(record.QuantitySold),
		strconv.FormatFloat(record.TotalPrice, 'f', 2, 64),
	}

	if err := s.appendRow(ctx, salesRange, values); err != nil {
		return models.NewBackendError("add sale", err)
	}
	return nil
}

func (s *SheetStore) appendRow(ctx context.Context, sheetRange string, values []interface{}) error {
	payload := &sheetsapi.ValueRange{Values: [][]interface{}{values}}

	call := s.service.Spreadsheets.Values.Append(s.spreadsheetID, sheetRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append row into range %s: %w", sheetRange, err)
	}
	return nil
}

func (s *SheetStore) readRange(ctx context.Context, sheetRange string) ([][]interface{}, error) {
	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, sheetRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read range %s: %w", sheetRange, err)
	}
	return resp.Values, nil
}

func (s *SheetStore) parseStockRow(row []interface{}) (models.StockItem, error) {
	if len(row) < 7 {
		return models.StockItem{}, fmt.Errorf("expected 7 columns, got %d", len(row))
	}

	dateAdded, err := parseDate(row[1], dateAddedLayout)
	if err != nil {
		return models.StockItem{}, fmt.Errorf("date_added: %w", err)
	}
	purchase, err := parseFloat(row[2])
	if err != nil {
		return models.StockItem{}, fmt.Errorf("purchase_price: %w", err)
	}
	selling, err := parseFloat(row[3])
	if err != nil {
		return models.StockItem{}, fmt.Errorf("selling_price: %w", err)
	}
	quantity, err := parseInt(row[5])
	if err != nil {
		return models.StockItem{}, fmt.Errorf("quantity: %w", err)
	}

	return models.StockItem{
		ProductName:   fmt.Sprint(row[0]),
		DateAdded:     dateAdded,
		PurchasePrice: purchase,
		SellingPrice:  selling,
		Supplier:      fmt.Sprint(row[4]),
		Quantity:      quantity,
		ProductID:     fmt.Sprint(row[6]),
	}, nil
}

func (s *SheetStore) parseSaleRow(row []interface{}) (models.SaleRecord, error) {
	if len(row) < 4 {
		return models.SaleRecord{}, fmt.Errorf("expected 4 columns, got %d", len(row))
	}

	dateOfSale, err := parseDate(row[1], dateOfSaleLayout)
	if err != nil {
		return models.SaleRecord{}, fmt.Errorf("date_of_sale: %w", err)
	}
	quantity, err := parseInt(row[2])
	if err != nil {
		return models.SaleRecord{}, fmt.Errorf("quantity_sold: %w", err)
	}
	total, err := parseFloat(row[3])
	if err != nil {
		return models.SaleRecord{}, fmt.Errorf("total_price: %w", err)
	}

	return models.SaleRecord{
		ProductID:    fmt.Sprint(row[0]),
		DateOfSale:   dateOfSale,
		QuantitySold: quantity,
		TotalPrice:   total,
	}, nil
}

func parseDate(value interface{}, layout string) (time.Time, error) {
	str := fmt.Sprint(value)
	if str == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if len(str) > len(layout) {
		str = str[:len(layout)]
	}
	return time.Parse(layout, str)
}

func parseInt(value interface{}) (int, error) {
	str := fmt.Sprint(value)
	if str == "" {
		return 0, fmt.Errorf("empty numeric value")
	}
	return strconv.Atoi(str)
}

func parseFloat(value interface{}) (float64, error) {
	str := fmt.Sprint(value)
	if str == "" {
		return 0, fmt.Errorf("empty numeric value")
	}
	return strconv.ParseFloat(str, 64)
}
