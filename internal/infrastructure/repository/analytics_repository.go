package repository

import (
	"context"
	"time"

	"github.com/sangkips/stockroom-api/internal/domain/enum"
	domainRepo "github.com/sangkips/stockroom-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) Counts(ctx context.Context) (*domainRepo.EntityCounts, error) {
	var counts domainRepo.EntityCounts
	err := conn(ctx, r.db).Raw(`
		SELECT
			(SELECT COUNT(*) FROM products)  AS products,
			(SELECT COUNT(*) FROM customers) AS customers,
			(SELECT COUNT(*) FROM suppliers) AS suppliers
	`).Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return &counts, nil
}

func (r *analyticsRepository) SalesTotals(ctx context.Context) (*domainRepo.SalesTotals, error) {
	var totals domainRepo.SalesTotals
	err := conn(ctx, r.db).Raw(`
		SELECT
			COUNT(*) FILTER (WHERE order_status = ?)                   AS completed_count,
			COALESCE(SUM(grand_total) FILTER (WHERE order_status = ?), 0) AS revenue,
			COALESCE(SUM(outstanding), 0)                              AS outstanding
		FROM sales
	`, enum.OrderStatusCompleted, enum.OrderStatusCompleted).Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return &totals, nil
}

func (r *analyticsRepository) GetTopProducts(ctx context.Context, limit int) ([]domainRepo.TopProductResult, error) {
	var results []domainRepo.TopProductResult

	err := conn(ctx, r.db).Raw(`
		SELECT
			p.id AS product_id,
			p.name AS product_name,
			COALESCE(SUM(si.quantity), 0) AS quantity_sold,
			COALESCE(SUM(si.line_total), 0) AS revenue
		FROM sale_items si
		JOIN products p ON p.id = si.product_id
		JOIN sales s ON s.id = si.sale_id
		WHERE s.order_status = ?
		GROUP BY p.id, p.name
		ORDER BY revenue DESC, p.name ASC
		LIMIT ?
	`, enum.OrderStatusCompleted, limit).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}

type dailyRevenueRow struct {
	Day     time.Time
	Revenue decimal.Decimal
}

func (r *analyticsRepository) GetDailySales(ctx context.Context, days int) ([]domainRepo.DailySalesResult, error) {
	if days < 1 {
		return []domainRepo.DailySalesResult{}, nil
	}
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -(days - 1))

	var rows []dailyRevenueRow
	err := conn(ctx, r.db).Raw(`
		SELECT date_trunc('day', sale_date) AS day, COALESCE(SUM(grand_total), 0) AS revenue
		FROM sales
		WHERE order_status = ? AND sale_date >= ?
		GROUP BY 1
		ORDER BY 1
	`, enum.OrderStatusCompleted, start).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return fillDailySeries(rows, start, days), nil
}

// fillDailySeries returns one point per day starting at start, with zero
// revenue on days without sales
func fillDailySeries(rows []dailyRevenueRow, start time.Time, days int) []domainRepo.DailySalesResult {
	byDay := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		byDay[row.Day.Format("2006-01-02")] = row.Revenue
	}

	results := make([]domainRepo.DailySalesResult, 0, days)
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		rev, ok := byDay[day.Format("2006-01-02")]
		if !ok {
			rev = decimal.Zero
		}
		results = append(results, domainRepo.DailySalesResult{Date: day, Revenue: rev})
	}
	return results
}
