package stats

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// RankingsPDF renders the full filtered ranking as a printable report.
func (s *Service) RankingsPDF(ctx context.Context, filter Filter) ([]byte, error) {
	page, err := s.Rankings(ctx, filter, 0, 0)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "KPI Rankings")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 10)
	if filter.Month > 0 && filter.Year > 0 {
		pdf.Cell(0, 6, fmt.Sprintf("Period: %02d/%d", filter.Month, filter.Year))
		pdf.Ln(8)
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(15, 7, "Rank", "1", 0, "C", false, 0, "")
	pdf.CellFormat(60, 7, "Employee", "1", 0, "L", false, 0, "")
	pdf.CellFormat(45, 7, "Role", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 7, "Score", "1", 0, "R", false, 0, "")
	pdf.CellFormat(25, 7, "Max", "1", 0, "R", false, 0, "")
	pdf.CellFormat(20, 7, "%", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, r := range page.Rankings {
		name := r.EmployeeName
		if name == "" {
			name = r.EmployeeID
		}
		pdf.CellFormat(15, 7, fmt.Sprintf("%d", r.Rank), "1", 0, "C", false, 0, "")
		pdf.CellFormat(60, 7, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(45, 7, r.Role, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprintf("%.2f", r.TotalScore), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprintf("%.2f", r.MaxPossible), "1", 0, "R", false, 0, "")
		pdf.CellFormat(20, 7, fmt.Sprintf("%.2f", r.Percentage), "1", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
