package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockReportFilter narrows the batch lines that feed the stock report
type StockReportFilter struct {
	CategoryID *uuid.UUID
	SupplierID *uuid.UUID
	ProductID  *uuid.UUID
	From       *time.Time
	To         *time.Time
}

// StockLine is one batch item joined with its batch and product
type StockLine struct {
	ProductID     uuid.UUID
	ProductName   string
	Barcode       *string
	Unit          string
	CategoryID    *uuid.UUID
	SupplierID    uuid.UUID
	BatchID       uuid.UUID
	BatchItemID   uuid.UUID
	InvoiceNumber string
	Quantity      int64
	UnitCost      decimal.Decimal
	PurchaseDate  time.Time
}

// StockQueryRepository runs the aggregate queries behind the ledger and report
type StockQueryRepository interface {
	// StockLines returns batch lines matching the filter
	StockLines(ctx context.Context, filter *StockReportFilter) ([]StockLine, error)
	// ReceivedTotals returns Σ batch_items.quantity per product.
	// An empty productIDs means every product.
	ReceivedTotals(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	// MovementTotals returns Σ stock_movements.quantity per product.
	// An empty productIDs means every product.
	MovementTotals(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]int64, error)
}

// TopProductResult represents a product's sales performance
type TopProductResult struct {
	ProductID    uuid.UUID
	ProductName  string
	QuantitySold int64
	Revenue      decimal.Decimal
}

// DailySalesResult represents sales data for a single day
type DailySalesResult struct {
	Date    time.Time
	Revenue decimal.Decimal
}

// SalesTotals summarises completed sales and open receivables
type SalesTotals struct {
	CompletedCount int64
	Revenue        decimal.Decimal
	Outstanding    decimal.Decimal
}

// EntityCounts holds simple row counts for the dashboard
type EntityCounts struct {
	Products  int64
	Customers int64
	Suppliers int64
}

// AnalyticsRepository defines interface for dashboard aggregation queries
type AnalyticsRepository interface {
	Counts(ctx context.Context) (*EntityCounts, error)
	SalesTotals(ctx context.Context) (*SalesTotals, error)
	// GetTopProducts returns top selling products by revenue
	GetTopProducts(ctx context.Context, limit int) ([]TopProductResult, error)
	// GetDailySales returns completed sales revenue for the last N days
	GetDailySales(ctx context.Context, days int) ([]DailySalesResult, error)
}
