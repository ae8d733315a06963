package export

import (
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"taskman/internal/model"
)

// ReportStats is the summary line printed at the top of a PDF report.
type ReportStats struct {
	Total          int64
	Completed      int64
	Overdue        int64
	CompletionRate float64
}

// WritePDF renders tasks as a paginated A4 table report. Overdue
// incomplete rows are shown in red, priorities in their usual colors.
func WritePDF(tasks []model.Task, stats ReportStats, path string, now time.Time) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "Task Report", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, "Exported: "+now.Format(timeLayout), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Total: %d | Completed: %d | Overdue: %d | Completion rate: %.1f%%",
		stats.Total, stats.Completed, stats.Overdue, stats.CompletionRate), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	widths := []float64{50, 20, 20, 32, 22, 26}
	headers := []string{"Title", "Category", "Priority", "Due", "Status", "Description"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(240, 240, 240)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, t := range tasks {
		if t.Overdue(now) {
			pdf.SetTextColor(200, 0, 0)
		} else {
			pdf.SetTextColor(0, 0, 0)
		}
		pdf.CellFormat(widths[0], 7, clip(t.Title, 32), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 7, string(t.Category), "1", 0, "L", false, 0, "")

		r, g, b := priorityColor(t.Priority)
		pdf.SetTextColor(r, g, b)
		pdf.CellFormat(widths[2], 7, string(t.Priority), "1", 0, "L", false, 0, "")

		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(widths[3], 7, t.DueTime.Format("2006-01-02 15:04"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[4], 7, t.Status.Label(), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[5], 7, clip(t.Description, 16), "1", 1, "L", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func priorityColor(p model.Priority) (int, int, int) {
	switch p {
	case model.PriorityHigh:
		return 200, 0, 0
	case model.PriorityMedium:
		return 220, 130, 0
	case model.PriorityLow:
		return 0, 140, 0
	}
	return 0, 0, 0
}

func clip(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "..."
}
