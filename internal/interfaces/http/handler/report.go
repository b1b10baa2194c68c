package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	reportapp "github.com/potterypos/backend/internal/application/report"
)

// ReportHandler handles reporting endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// SalesByDay returns daily sales totals over a date range
func (h *ReportHandler) SalesByDay(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant ID")
		return
	}
	from, to, err := parseDateRange(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	rows, err := h.reportService.SalesByDay(c.Request.Context(), tenantID, from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rows)
}

// InventoryByCategory returns stock counts and value per category
func (h *ReportHandler) InventoryByCategory(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant ID")
		return
	}

	var threshold int64
	if raw := c.Query("low_stock_threshold"); raw != "" {
		threshold, err = strconv.ParseInt(raw, 10, 64)
		if err != nil || threshold < 0 {
			h.BadRequest(c, "invalid low_stock_threshold")
			return
		}
	}

	rows, err := h.reportService.InventoryByCategory(c.Request.Context(), tenantID, threshold)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rows)
}

// TopCustomers returns the highest-spending customers over a date range
func (h *ReportHandler) TopCustomers(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant ID")
		return
	}
	from, to, err := parseDateRange(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	rows, err := h.reportService.TopCustomers(c.Request.Context(), tenantID, from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rows)
}

// ExpensesByCategory returns expense totals per category over a date range
func (h *ReportHandler) ExpensesByCategory(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant ID")
		return
	}
	from, to, err := parseDateRange(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	rows, err := h.reportService.ExpensesByCategory(c.Request.Context(), tenantID, from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rows)
}

// ProfitAndLoss returns revenue, cost of goods, expenses, and net profit
// over a date range
func (h *ReportHandler) ProfitAndLoss(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant ID")
		return
	}
	from, to, err := parseDateRange(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	pnl, err := h.reportService.ProfitAndLoss(c.Request.Context(), tenantID, from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, pnl)
}

// Dashboard returns today's sales snapshot and the low-stock list
func (h *ReportHandler) Dashboard(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant ID")
		return
	}

	summary, err := h.reportService.Dashboard(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}
