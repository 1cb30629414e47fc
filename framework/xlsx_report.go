package framework

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	reportSheetName   = "Results"
	summarySheetName  = "Summary"
	defaultSheetName  = "Sheet1"
	reportColumnWidth = 40

	failedFillColor  = "FFC7CE"
	warningFillColor = "FFEB9C"
	skippedFillColor = "D9D9D9"
)

var reportHeaders = []interface{}{"Test", "Status", "Failures", "Cleanup warnings", "Skip reason"}

// WriteSpreadsheetReport saves the results of a test run as an .xlsx workbook with one row per
// test, so a run against a shared environment can be attached to a ticket or compared later.
func WriteSpreadsheetReport(path string, results Results, duration time.Duration) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if _, err := f.NewSheet(reportSheetName); err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	if err := f.SetColWidth(reportSheetName, "A", "E", reportColumnWidth); err != nil {
		return err
	}
	if err := f.SetSheetRow(reportSheetName, "A1", &reportHeaders); err != nil {
		return err
	}

	styles := make(map[string]int)
	for status, fillColor := range map[string]string{
		"FAILED":  failedFillColor,
		"WARNING": warningFillColor,
		"SKIPPED": skippedFillColor,
	} {
		id, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{fillColor}, Pattern: 1},
		})
		if err != nil {
			return fmt.Errorf("creating style: %w", err)
		}
		styles[status] = id
	}

	for i, t := range results.Tests {
		status := testStatus(t)
		var failures []string
		for _, e := range t.Errors {
			failures = append(failures, e.Error())
		}
		row := []interface{}{
			t.TestID.String(),
			status,
			strings.Join(failures, "\n"),
			strings.Join(t.Warnings, "\n"),
			t.SkipReason,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(reportSheetName, cell, &row); err != nil {
			return err
		}
		if styleID, ok := styles[status]; ok {
			lastCell, _ := excelize.CoordinatesToCellName(len(row), i+2)
			if err := f.SetCellStyle(reportSheetName, cell, lastCell, styleID); err != nil {
				return err
			}
		}
	}

	if err := writeSummarySheet(f, results, duration); err != nil {
		return err
	}
	if err := f.DeleteSheet(defaultSheetName); err != nil {
		return err
	}
	if idx, err := f.GetSheetIndex(reportSheetName); err == nil {
		f.SetActiveSheet(idx)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving report to %s: %w", path, err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, results Results, duration time.Duration) error {
	if _, err := f.NewSheet(summarySheetName); err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	passed, failed, skipped := results.Count()
	rows := [][]interface{}{
		{"Total", len(results.Tests)},
		{"Passed", passed},
		{"Failed", failed},
		{"Skipped", skipped},
		{"With cleanup warnings", len(results.WithWarnings())},
		{"Duration", duration.Round(time.Millisecond).String()},
	}
	for i := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheetName, cell, &rows[i]); err != nil {
			return err
		}
	}
	return nil
}

func testStatus(t TestResult) string {
	switch {
	case t.Skipped:
		return "SKIPPED"
	case len(t.Errors) > 0:
		return "FAILED"
	case len(t.Warnings) > 0:
		return "WARNING"
	default:
		return "PASSED"
	}
}
