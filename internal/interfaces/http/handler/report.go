package handler

import (
	reportapp "github.com/codops/backend/internal/application/report"
	"github.com/codops/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
)

// ReportHandler serves the dashboard
type ReportHandler struct {
	BaseHandler
	dashboard *reportapp.DashboardService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(dashboard *reportapp.DashboardService) *ReportHandler {
	return &ReportHandler{dashboard: dashboard}
}

// Routes returns the dashboard route group
func (h *ReportHandler) Routes() *router.DomainGroup {
	return router.NewDomainGroup("dashboard", "/dashboard").GET("", h.Dashboard)
}

// Dashboard returns counts, the country band, in-transit shipments, daily
// delivered rows and, when rs and re are given, the remit report
func (h *ReportHandler) Dashboard(c *gin.Context) {
	var filter reportapp.DashboardFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	dashboard, err := h.dashboard.Dashboard(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dashboard)
}
