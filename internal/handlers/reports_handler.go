package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"salespipe/internal/middleware"
	"salespipe/internal/pdf"
	"salespipe/internal/services"
)

type ReportHandler struct {
	dashboard *services.DashboardService
	renderer  *pdf.ReportRenderer
}

func NewReportHandler(dashboard *services.DashboardService, renderer *pdf.ReportRenderer) *ReportHandler {
	return &ReportHandler{dashboard: dashboard, renderer: renderer}
}

// @Summary  Pipeline summary as PDF
// @Tags     Reports
// @Produce  application/pdf
// @Success  200
// @Router   /reports/pipeline.pdf [get]
func (h *ReportHandler) PipelinePDF(c *gin.Context) {
	u, ok := middleware.Requester(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no requester in context"})
		return
	}
	sum, err := h.dashboard.Summary(u)
	if err != nil {
		fail(c, err)
		return
	}
	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `attachment; filename="pipeline_summary.pdf"`)
	if err := h.renderer.RenderSummary(c.Writer, sum, time.Now()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// @Summary  Pipeline export as XLSX
// @Description  One row per visible opportunity with home-converted value and performance score
// @Tags     Reports
// @Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success  200
// @Router   /reports/pipeline.xlsx [get]
func (h *ReportHandler) PipelineXLSX(c *gin.Context) {
	u, ok := middleware.Requester(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no requester in context"})
		return
	}
	rows, settings, err := h.dashboard.Rows(u)
	if err != nil {
		fail(c, err)
		return
	}

	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Pipeline"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"ID", "Name", "Stage", "Status", "Probability %", "Score", "Overdue",
		"Amount", "Currency", fmt.Sprintf("Value (%s)", settings.HomeCurrency), "Owner ID", "Last Activity"}
	for i, hd := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, hd)
	}

	for i, row := range rows {
		o := row.Opportunity
		home := "unavailable"
		if !row.Presentation.Home.Unavailable {
			home = row.Presentation.Home.Amount.StringFixed(2)
		}
		values := []interface{}{
			o.ID, o.Name, o.Stage.String(), o.Status, o.Probability, row.Score, row.Overdue,
			o.Amount.StringFixed(2), o.Currency, home, o.OwnerID,
			o.LastActivityAt.Format("2006-01-02"),
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="pipeline.xlsx"`)
	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
