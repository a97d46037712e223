package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	domainRepo "github.com/sangkips/stockroom-api/internal/domain/repository"
	"gorm.io/gorm"
)

// stockQueryRepository builds the ledger and report aggregates with squirrel.
// Queries use '?' placeholders because gorm rebinds them for the dialect.
type stockQueryRepository struct {
	db      *gorm.DB
	builder squirrel.StatementBuilderType
}

// NewStockQueryRepository creates the repository behind the stock report
func NewStockQueryRepository(db *gorm.DB) domainRepo.StockQueryRepository {
	return &stockQueryRepository{
		db:      db,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

// stockLinesQuery returns the SELECT for batch lines matching filter
func (r *stockQueryRepository) stockLinesQuery(filter *domainRepo.StockReportFilter) squirrel.SelectBuilder {
	q := r.builder.
		Select(
			"p.id AS product_id",
			"p.name AS product_name",
			"p.barcode AS barcode",
			"COALESCE(p.unit, '') AS unit",
			"p.category_id AS category_id",
			"b.supplier_id AS supplier_id",
			"b.id AS batch_id",
			"bi.id AS batch_item_id",
			"COALESCE(b.invoice_number, '') AS invoice_number",
			"bi.quantity AS quantity",
			"bi.unit_cost AS unit_cost",
			"b.purchase_date AS purchase_date",
		).
		From("batch_items bi").
		Join("batches b ON b.id = bi.batch_id").
		Join("products p ON p.id = bi.product_id").
		OrderBy("p.name ASC", "p.id ASC", "b.purchase_date ASC", "bi.line_no ASC")

	if filter == nil {
		return q
	}
	if filter.CategoryID != nil {
		q = q.Where(squirrel.Eq{"p.category_id": *filter.CategoryID})
	}
	if filter.SupplierID != nil {
		q = q.Where(squirrel.Eq{"b.supplier_id": *filter.SupplierID})
	}
	if filter.ProductID != nil {
		q = q.Where(squirrel.Eq{"p.id": *filter.ProductID})
	}
	if filter.From != nil {
		q = q.Where(squirrel.GtOrEq{"b.purchase_date": *filter.From})
	}
	if filter.To != nil {
		q = q.Where(squirrel.LtOrEq{"b.purchase_date": *filter.To})
	}
	return q
}

func (r *stockQueryRepository) StockLines(ctx context.Context, filter *domainRepo.StockReportFilter) ([]domainRepo.StockLine, error) {
	query, args, err := r.stockLinesQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build stock lines query: %w", err)
	}

	var lines []domainRepo.StockLine
	if err := conn(ctx, r.db).Raw(query, args...).Scan(&lines).Error; err != nil {
		return nil, fmt.Errorf("stock lines: %w", err)
	}
	return lines, nil
}

type productTotal struct {
	ProductID uuid.UUID
	Total     int64
}

func (r *stockQueryRepository) totals(ctx context.Context, table string, productIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	q := r.builder.
		Select("product_id", "COALESCE(SUM(quantity), 0) AS total").
		From(table).
		GroupBy("product_id")
	if len(productIDs) > 0 {
		q = q.Where(squirrel.Eq{"product_id": productIDs})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s totals query: %w", table, err)
	}

	var rows []productTotal
	if err := conn(ctx, r.db).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("%s totals: %w", table, err)
	}

	out := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		out[row.ProductID] = row.Total
	}
	return out, nil
}

func (r *stockQueryRepository) ReceivedTotals(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	return r.totals(ctx, "batch_items", productIDs)
}

func (r *stockQueryRepository) MovementTotals(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	return r.totals(ctx, "stock_movements", productIDs)
}
