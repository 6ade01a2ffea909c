package export

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/internal/domain"
	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/internal/ports"
)

// Sheet names of the exported workbook. Summary is always present; the
// other sheets are added only when the report has the matching section.
const (
	SheetSummary    = "Summary"
	SheetResults    = "Results"
	SheetStandings  = "Standings"
	SheetPerformers = "Performers"
	SheetStats      = "Stats"
	SheetGaps       = "Gaps"
	SheetRadar      = "Radar"
)

const defaultSheet = "Sheet1"

var _ ports.ReportWriter = (*XLSXWriter)(nil)

// XLSXWriter renders a report as an Excel workbook with one sheet per
// report section.
type XLSXWriter struct {
	w io.Writer
}

// NewXLSXWriter returns a writer that streams the workbook to w.
func NewXLSXWriter(w io.Writer) *XLSXWriter {
	return &XLSXWriter{w: w}
}

type sheet struct {
	name   string
	header []any
	rows   [][]any
}

// Write builds the workbook and writes it to the underlying writer.
func (xw *XLSXWriter) Write(ctx context.Context, report domain.Report) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close workbook: %w", cerr)
		}
	}()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	if err := f.SetSheetName(defaultSheet, SheetSummary); err != nil {
		return fmt.Errorf("rename default sheet: %w", err)
	}

	for i, s := range reportSheets(report) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if i > 0 {
			if _, err := f.NewSheet(s.name); err != nil {
				return fmt.Errorf("create sheet %s: %w", s.name, err)
			}
		}
		if err := writeSheet(f, s, bold); err != nil {
			return fmt.Errorf("write sheet %s: %w", s.name, err)
		}
	}

	f.SetActiveSheet(0)
	if err := f.Write(xw.w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, s sheet, headerStyle int) error {
	if err := f.SetSheetRow(s.name, "A1", &s.header); err != nil {
		return err
	}
	if err := f.SetRowStyle(s.name, 1, 1, headerStyle); err != nil {
		return err
	}
	for i, row := range s.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(s.name, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// reportSheets lays out the report sections. The summary sheet comes
// first.
func reportSheets(r domain.Report) []sheet {
	sheets := []sheet{{
		name:   SheetSummary,
		header: []any{"Field", "Value"},
		rows: [][]any{
			{"Report ID", r.ID},
			{"Plan", r.Plan},
			{"Generated at", r.GeneratedAt.UTC().Format(time.RFC3339)},
			{"Students", len(r.StudentResults)},
			{"At risk", len(r.AtRisk)},
		},
	}}

	if len(r.StudentResults) > 0 {
		sheets = append(sheets, resultsSheet(r.StudentResults))
	}

	if len(r.Standings) > 0 {
		s := sheet{name: SheetStandings, header: []any{"Rank", "Student ID", "Percentage", "Percentile"}}
		for _, st := range r.Standings {
			s.rows = append(s.rows, []any{st.Rank, st.StudentID, st.Percentage, st.Percentile})
		}
		sheets = append(sheets, s)
	}

	if len(r.Top)+len(r.Bottom)+len(r.AtRisk) > 0 {
		s := sheet{name: SheetPerformers, header: []any{"List", "Student ID", "Name", "Class", "Percentage"}}
		for _, group := range []struct {
			label string
			refs  []domain.StudentRef
		}{{"top", r.Top}, {"bottom", r.Bottom}, {"at_risk", r.AtRisk}} {
			for _, ref := range group.refs {
				s.rows = append(s.rows, []any{group.label, ref.StudentID, ref.Name, ref.ClassID, ref.Percentage})
			}
		}
		sheets = append(sheets, s)
	}

	if len(r.CohortStats) > 0 {
		s := sheet{name: SheetStats, header: []any{
			"Scope", "Class", "Count", "Mean", "StdDev", "Q1", "Median", "Q3",
			"Min", "Max", "Lower fence", "Upper fence", "Outliers",
		}}
		for _, ss := range r.CohortStats {
			c := ss.Stats
			s.rows = append(s.rows, []any{
				ss.Scope, ss.ClassID, c.Count, c.Mean, c.StdDev,
				c.Quartiles.Q1, c.Quartiles.Median, c.Quartiles.Q3,
				c.Min, c.Max, c.LowerFence, c.UpperFence, joinFloats(c.Outliers),
			})
		}
		sheets = append(sheets, s)
	}

	if len(r.Gaps) > 0 {
		s := sheet{name: SheetGaps, header: []any{"Subject", "Sub-topic ID", "Sub-topic", "Average %", "Priority"}}
		for _, g := range r.Gaps {
			s.rows = append(s.rows, []any{g.SubjectCode, g.SubTopicID, g.SubTopicName, g.AveragePercentage, g.Priority.String()})
		}
		sheets = append(sheets, s)
	}

	if len(r.Radar) > 0 {
		s := sheet{name: SheetRadar, header: []any{"Subject", "Focus", "Cohort"}}
		for _, p := range r.Radar {
			s.rows = append(s.rows, []any{p.SubjectCode, p.SeriesA, p.SeriesB})
		}
		sheets = append(sheets, s)
	}
	return sheets
}

// resultsSheet has one row per student with a percentage column per subject
// code, in the order the codes first appear.
func resultsSheet(results []domain.StudentResult) sheet {
	var codes []string
	seen := make(map[string]bool)
	for _, res := range results {
		for _, subj := range res.Subjects {
			if !seen[subj.Code] {
				seen[subj.Code] = true
				codes = append(codes, subj.Code)
			}
		}
	}

	s := sheet{name: SheetResults, header: []any{"Student ID", "Name", "Class"}}
	for _, code := range codes {
		s.header = append(s.header, code+" %")
	}
	s.header = append(s.header, "Total", "Max", "Total %")

	for _, res := range results {
		byCode := make(map[string]float64, len(res.Subjects))
		for _, subj := range res.Subjects {
			byCode[subj.Code] = subj.Percentage
		}
		row := []any{res.StudentID, res.Name, res.ClassID}
		for _, code := range codes {
			row = append(row, byCode[code])
		}
		row = append(row, res.Total.Score, res.Total.MaxScore, res.Total.Percentage)
		s.rows = append(s.rows, row)
	}
	return s
}

func joinFloats(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%g", v)
	}
	return strings.Join(parts, ", ")
}
