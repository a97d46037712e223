package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/stockroom-api/internal/application/service"
	"github.com/sangkips/stockroom-api/internal/domain/repository"
	"github.com/sangkips/stockroom-api/internal/presentation/http/dto/request"
	"github.com/sangkips/stockroom-api/internal/presentation/http/dto/response"
	"github.com/sangkips/stockroom-api/pkg/apperror"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler handles stock report HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) rows(c *gin.Context) ([]service.StockReportRow, *request.StockReportRequest, bool) {
	var filter request.StockReportRequest
	if !bindQuery(c, &filter) {
		return nil, nil, false
	}
	from, ok := parseDate(c, "from", filter.From)
	if !ok {
		return nil, nil, false
	}
	to, ok := parseDate(c, "to", filter.To)
	if !ok {
		return nil, nil, false
	}

	rows, err := h.reportService.StockReport(c.Request.Context(), &repository.StockReportFilter{
		CategoryID: optionalID(filter.CategoryID),
		SupplierID: optionalID(filter.SupplierID),
		ProductID:  optionalID(filter.ProductID),
		From:       from,
		To:         to,
	})
	if err != nil {
		response.Error(c, err)
		return nil, nil, false
	}
	return rows, &filter, true
}

// Stock returns per-product stock totals with their batch lines
func (h *ReportHandler) Stock(c *gin.Context) {
	rows, _, ok := h.rows(c)
	if !ok {
		return
	}

	response.OK(c, "Stock report retrieved successfully", rows)
}

// ExportStock streams the stock report as CSV or XLSX
func (h *ReportHandler) ExportStock(c *gin.Context) {
	rows, filter, ok := h.rows(c)
	if !ok {
		return
	}

	format := filter.Format
	if format == "" {
		format = "csv"
	}

	var (
		buf         bytes.Buffer
		err         error
		contentType string
	)
	switch format {
	case "xlsx":
		err = service.WriteStockXLSX(&buf, rows)
		contentType = xlsxContentType
	default:
		err = service.WriteStockCSV(&buf, rows)
		contentType = "text/csv; charset=utf-8"
	}
	if err != nil {
		response.Error(c, apperror.NewUpstreamError(err))
		return
	}

	filename := fmt.Sprintf("stock-report-%s.%s", time.Now().Format("20060102"), format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
