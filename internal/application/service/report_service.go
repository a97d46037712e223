package service

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/stockroom-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ReportService aggregates batch lines into per-product stock totals
type ReportService struct {
	stockQuery repository.StockQueryRepository
}

// NewReportService creates a new report service
func NewReportService(stockQuery repository.StockQueryRepository) *ReportService {
	return &ReportService{stockQuery: stockQuery}
}

// StockReportLine is one contributing batch line
type StockReportLine struct {
	BatchID       uuid.UUID       `json:"batch_id"`
	BatchItemID   uuid.UUID       `json:"batch_item_id"`
	InvoiceNumber string          `json:"invoice_number"`
	Quantity      int64           `json:"quantity"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	PurchaseDate  time.Time       `json:"purchase_date"`
}

// StockReportRow is the aggregate for one product
type StockReportRow struct {
	ProductID      uuid.UUID         `json:"product_id"`
	ProductName    string            `json:"product_name"`
	Barcode        *string           `json:"barcode"`
	Unit           string            `json:"unit"`
	TotalQuantity  int64             `json:"total_quantity"`
	MovementDelta  int64             `json:"movement_delta"`
	OnHandQuantity int64             `json:"on_hand_quantity"`
	StockValue     decimal.Decimal   `json:"stock_value"`
	Batches        []StockReportLine `json:"batches"`
}

// StockReport returns one row per product with batch lines matching filter.
// TotalQuantity covers only the matching lines; OnHandQuantity is the full
// ledger balance of the product.
func (s *ReportService) StockReport(ctx context.Context, filter *repository.StockReportFilter) ([]StockReportRow, error) {
	lines, err := s.stockQuery.StockLines(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return []StockReportRow{}, nil
	}

	ids := make([]uuid.UUID, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ProductID)
	}
	ids = uniqueIDs(ids)

	received, err := s.stockQuery.ReceivedTotals(ctx, ids)
	if err != nil {
		return nil, err
	}
	moved, err := s.stockQuery.MovementTotals(ctx, ids)
	if err != nil {
		return nil, err
	}

	return AggregateStock(lines, received, moved), nil
}

// AggregateStock groups lines per product. Rows are ordered by product name
// then id; lines inside a row by purchase date then batch item id.
func AggregateStock(lines []repository.StockLine, received, moved map[uuid.UUID]int64) []StockReportRow {
	byProduct := make(map[uuid.UUID]*StockReportRow)
	order := make([]uuid.UUID, 0)

	for _, l := range lines {
		row, ok := byProduct[l.ProductID]
		if !ok {
			row = &StockReportRow{
				ProductID:   l.ProductID,
				ProductName: l.ProductName,
				Barcode:     l.Barcode,
				Unit:        l.Unit,
				StockValue:  decimal.Zero,
				Batches:     []StockReportLine{},
			}
			byProduct[l.ProductID] = row
			order = append(order, l.ProductID)
		}
		row.TotalQuantity += l.Quantity
		row.StockValue = row.StockValue.Add(l.UnitCost.Mul(decimal.NewFromInt(l.Quantity)))
		row.Batches = append(row.Batches, StockReportLine{
			BatchID:       l.BatchID,
			BatchItemID:   l.BatchItemID,
			InvoiceNumber: l.InvoiceNumber,
			Quantity:      l.Quantity,
			UnitCost:      l.UnitCost,
			PurchaseDate:  l.PurchaseDate,
		})
	}

	rows := make([]StockReportRow, 0, len(order))
	for _, id := range order {
		row := byProduct[id]
		row.MovementDelta = moved[id]
		row.OnHandQuantity = received[id] + moved[id]
		sort.SliceStable(row.Batches, func(i, j int) bool {
			a, b := row.Batches[i], row.Batches[j]
			if !a.PurchaseDate.Equal(b.PurchaseDate) {
				return a.PurchaseDate.Before(b.PurchaseDate)
			}
			return a.BatchItemID.String() < b.BatchItemID.String()
		})
		rows = append(rows, *row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].ProductName != rows[j].ProductName {
			return rows[i].ProductName < rows[j].ProductName
		}
		return rows[i].ProductID.String() < rows[j].ProductID.String()
	})
	return rows
}

// StockExportHeader is the column order of CSV and XLSX exports
var StockExportHeader = []string{"product_id", "product_name", "barcode", "unit", "total_quantity", "on_hand_quantity"}

func exportRecord(row StockReportRow) []string {
	barcode := ""
	if row.Barcode != nil {
		barcode = *row.Barcode
	}
	return []string{
		row.ProductID.String(),
		row.ProductName,
		barcode,
		row.Unit,
		strconv.FormatInt(row.TotalQuantity, 10),
		strconv.FormatInt(row.OnHandQuantity, 10),
	}
}

// WriteStockCSV writes rows as comma separated values. The product name is
// always quoted; other fields are quoted only when they need it.
func WriteStockCSV(w io.Writer, rows []StockReportRow) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(strings.Join(StockExportHeader, ",") + "\n"); err != nil {
		return err
	}
	for _, row := range rows {
		rec := exportRecord(row)
		for i, field := range rec {
			if i > 0 {
				if err := bw.WriteByte(','); err != nil {
					return err
				}
			}
			if _, err := bw.WriteString(csvField(field, i == 1)); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func csvField(value string, forceQuote bool) string {
	if forceQuote || strings.ContainsAny(value, ",\"\r\n") {
		return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
	}
	return value
}

// WriteStockXLSX writes rows to a single-sheet workbook
func WriteStockXLSX(w io.Writer, rows []StockReportRow) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Stock"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	header := make([]interface{}, len(StockExportHeader))
	for i, h := range StockExportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
		return err
	}

	for i, row := range rows {
		barcode := ""
		if row.Barcode != nil {
			barcode = *row.Barcode
		}
		values := []interface{}{
			row.ProductID.String(),
			row.ProductName,
			barcode,
			row.Unit,
			row.TotalQuantity,
			row.OnHandQuantity,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(sheet, "A", "A", 38); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "B", "B", 32); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
