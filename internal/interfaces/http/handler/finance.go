package handler

import (
	"bytes"
	"fmt"
	"net/http"

	financeapp "github.com/codops/backend/internal/application/finance"
	"github.com/codops/backend/internal/infrastructure/export"
	"github.com/codops/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
)

// FinanceHandler serves current spend, daily delivered and period remits
type FinanceHandler struct {
	BaseHandler
	spend      *financeapp.SpendService
	delivered  *financeapp.DeliveredService
	remittance *financeapp.RemittanceService
}

// NewFinanceHandler creates a new FinanceHandler
func NewFinanceHandler(
	spend *financeapp.SpendService,
	delivered *financeapp.DeliveredService,
	remittance *financeapp.RemittanceService,
) *FinanceHandler {
	return &FinanceHandler{
		spend:      spend,
		delivered:  delivered,
		remittance: remittance,
	}
}

// SpendRoutes returns the /spend route group
func (h *FinanceHandler) SpendRoutes() *router.DomainGroup {
	return router.NewDomainGroup("spend", "/spend").
		POST("/current", h.UpsertSpend).
		DELETE("/current/:id", h.DeleteSpend)
}

// DeliveredRoutes returns the /delivered route group
func (h *FinanceHandler) DeliveredRoutes() *router.DomainGroup {
	return router.NewDomainGroup("delivered", "/delivered").
		GET("", h.ListDelivered).
		POST("", h.UpsertDelivered)
}

// RemitRoutes returns the /remits route group
func (h *FinanceHandler) RemitRoutes() *router.DomainGroup {
	return router.NewDomainGroup("remits", "/remits").
		GET("", h.RemitReport).
		POST("", h.UpsertRemit).
		GET("/export", h.ExportRemits)
}

// UpsertSpend sets the current daily spend of a SKU on a platform in a country
func (h *FinanceHandler) UpsertSpend(c *gin.Context) {
	var req financeapp.UpsertSpendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	spend, err := h.spend.Upsert(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, spend)
}

// DeleteSpend removes a current spend row
func (h *FinanceHandler) DeleteSpend(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.spend.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// UpsertDelivered sets the delivered count of a country on one day
func (h *FinanceHandler) UpsertDelivered(c *gin.Context) {
	var req financeapp.UpsertDeliveredRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	row, err := h.delivered.Upsert(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, row)
}

// ListDelivered returns delivered rows in the from/to range, newest first
func (h *FinanceHandler) ListDelivered(c *gin.Context) {
	var filter financeapp.DeliveredFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	list, err := h.delivered.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, list)
}

// UpsertRemit stores the figures of one period and deducts the pieces
// from stock
func (h *FinanceHandler) UpsertRemit(c *gin.Context) {
	var req financeapp.UpsertRemitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.remittance.UpsertPeriodRemit(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if result.Replaced {
		h.Success(c, result)
		return
	}
	h.Created(c, result)
}

// RemitReport returns the filtered report with totals
func (h *FinanceHandler) RemitReport(c *gin.Context) {
	var filter financeapp.RemitReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	report, err := h.remittance.Report(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, report, int64(len(report.Rows)), 0)
}

// ExportRemits sends the filtered report as an .xlsx attachment
func (h *FinanceHandler) ExportRemits(c *gin.Context) {
	var filter financeapp.RemitReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := h.remittance.ExportReport(c.Request.Context(), filter, &buf); err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, remitExportName(filter)))
	c.Data(http.StatusOK, export.XLSXContentType, buf.Bytes())
}

func remitExportName(filter financeapp.RemitReportFilter) string {
	name := "remits"
	for _, part := range []string{filter.CountryCode, filter.StartFrom, filter.EndTo} {
		if part != "" {
			name += "-" + part
		}
	}
	return name + ".xlsx"
}
