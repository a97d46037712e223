package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/stockroom-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	dashboardTopProducts = 5
	dashboardSalesDays   = 7
)

// DashboardService provides dashboard statistics
type DashboardService struct {
	analyticsRepo     repository.AnalyticsRepository
	reports           *ReportService
	lowStockThreshold int64
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(analyticsRepo repository.AnalyticsRepository, reports *ReportService, lowStockThreshold int) *DashboardService {
	return &DashboardService{
		analyticsRepo:     analyticsRepo,
		reports:           reports,
		lowStockThreshold: int64(lowStockThreshold),
	}
}

// DashboardStats represents dashboard statistics
type DashboardStats struct {
	TotalProducts     int64             `json:"total_products"`
	TotalCustomers    int64             `json:"total_customers"`
	TotalSuppliers    int64             `json:"total_suppliers"`
	CompletedSales    int64             `json:"completed_sales"`
	Revenue           decimal.Decimal   `json:"revenue"`
	Outstanding       decimal.Decimal   `json:"outstanding"`
	StockUnits        int64             `json:"stock_units"`
	StockValue        decimal.Decimal   `json:"stock_value"`
	LowStockThreshold int64             `json:"low_stock_threshold"`
	LowStock          []LowStockItem    `json:"low_stock"`
	TopProducts       []TopProductPoint `json:"top_products"`
	DailySales        []DailySalesPoint `json:"daily_sales"`
}

// LowStockItem is a product whose on-hand quantity is at or below the threshold
type LowStockItem struct {
	ProductID      uuid.UUID `json:"product_id"`
	ProductName    string    `json:"product_name"`
	OnHandQuantity int64     `json:"on_hand_quantity"`
}

// TopProductPoint represents a best selling product
type TopProductPoint struct {
	ProductID    uuid.UUID       `json:"product_id"`
	ProductName  string          `json:"product_name"`
	QuantitySold int64           `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// DailySalesPoint represents a daily sales data point
type DailySalesPoint struct {
	Date    string          `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
}

// GetDashboardStats runs the independent dashboard queries concurrently
func (s *DashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	var (
		counts *repository.EntityCounts
		totals *repository.SalesTotals
		top    []repository.TopProductResult
		daily  []repository.DailySalesResult
		rows   []StockReportRow
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		counts, err = s.analyticsRepo.Counts(gctx)
		return err
	})
	g.Go(func() (err error) {
		totals, err = s.analyticsRepo.SalesTotals(gctx)
		return err
	})
	g.Go(func() (err error) {
		top, err = s.analyticsRepo.GetTopProducts(gctx, dashboardTopProducts)
		return err
	})
	g.Go(func() (err error) {
		daily, err = s.analyticsRepo.GetDailySales(gctx, dashboardSalesDays)
		return err
	})
	g.Go(func() (err error) {
		rows, err = s.reports.StockReport(gctx, &repository.StockReportFilter{})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TotalProducts:     counts.Products,
		TotalCustomers:    counts.Customers,
		TotalSuppliers:    counts.Suppliers,
		CompletedSales:    totals.CompletedCount,
		Revenue:           totals.Revenue,
		Outstanding:       totals.Outstanding,
		StockValue:        decimal.Zero,
		LowStockThreshold: s.lowStockThreshold,
		LowStock:          []LowStockItem{},
		TopProducts:       make([]TopProductPoint, 0, len(top)),
		DailySales:        make([]DailySalesPoint, 0, len(daily)),
	}

	for _, row := range rows {
		stats.StockUnits += row.OnHandQuantity
		stats.StockValue = stats.StockValue.Add(row.StockValue)
		if row.OnHandQuantity <= s.lowStockThreshold {
			stats.LowStock = append(stats.LowStock, LowStockItem{
				ProductID:      row.ProductID,
				ProductName:    row.ProductName,
				OnHandQuantity: row.OnHandQuantity,
			})
		}
	}
	for _, t := range top {
		stats.TopProducts = append(stats.TopProducts, TopProductPoint(t))
	}
	for _, d := range daily {
		stats.DailySales = append(stats.DailySales, DailySalesPoint{
			Date:    d.Date.Format("2006-01-02"),
			Revenue: d.Revenue,
		})
	}

	return stats, nil
}
