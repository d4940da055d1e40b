package pdf

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"salespipe/internal/services"
)

// ReportRenderer writes the scoped pipeline summary as a PDF.
type ReportRenderer struct {
	FontPath string // optional TTF; empty falls back to the built-in Helvetica
	fontName string
}

func NewReportRenderer(fontPath string) *ReportRenderer {
	return &ReportRenderer{FontPath: fontPath, fontName: "Helvetica"}
}

func (r *ReportRenderer) setupFont(doc *gofpdf.Fpdf) string {
	if r.FontPath == "" {
		return r.fontName
	}
	doc.AddUTF8Font("custom", "", r.FontPath)
	return "custom"
}

// RenderSummary writes the dashboard rollup for one requester's scope.
func (r *ReportRenderer) RenderSummary(w io.Writer, sum *services.Summary, generatedAt time.Time) error {
	doc := gofpdf.New("P", "mm", "A4", "")
	font := r.setupFont(doc)
	doc.AddPage()

	doc.SetFont(font, "", 16)
	doc.Cell(0, 10, "Pipeline Summary")
	doc.Ln(12)

	doc.SetFont(font, "", 10)
	doc.Cell(0, 6, fmt.Sprintf("Scope: %s    Generated: %s", sum.ScopeLabel, generatedAt.Format("2006-01-02 15:04")))
	doc.Ln(8)
	doc.Cell(0, 6, fmt.Sprintf("Opportunities: %d", sum.TotalCount))
	doc.Ln(6)
	doc.Cell(0, 6, fmt.Sprintf("Total value: %s %s", sum.TotalValueHome.StringFixed(2), sum.HomeCurrency))
	doc.Ln(6)
	doc.Cell(0, 6, fmt.Sprintf("Weighted pipeline: %s %s", sum.WeightedPipelineHome.StringFixed(2), sum.HomeCurrency))
	doc.Ln(6)
	if sum.UnconvertedCount > 0 {
		doc.Cell(0, 6, fmt.Sprintf("Amounts without a usable rate: %d (excluded from totals)", sum.UnconvertedCount))
		doc.Ln(6)
	}
	doc.Ln(4)

	doc.SetFont(font, "", 11)
	doc.Cell(0, 8, "By stage")
	doc.Ln(9)
	doc.SetFont(font, "", 10)
	for _, b := range sum.CountByStage {
		doc.Cell(70, 6, b.Stage)
		doc.Cell(30, 6, fmt.Sprintf("%d", b.Count))
		doc.Cell(30, 6, fmt.Sprintf("%.1f%%", b.Percent))
		doc.Ln(6)
	}

	if len(sum.RecentActivity) > 0 {
		doc.Ln(4)
		doc.SetFont(font, "", 11)
		doc.Cell(0, 8, "Recent activity")
		doc.Ln(9)
		doc.SetFont(font, "", 9)
		for _, a := range sum.RecentActivity {
			doc.Cell(0, 5, fmt.Sprintf("%s  %s: %s", a.CreatedAt.Format("2006-01-02"), a.Subject, a.Description))
			doc.Ln(5)
		}
	}

	return doc.Output(w)
}
