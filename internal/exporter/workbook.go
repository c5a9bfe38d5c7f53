package exporter

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"t20cli/internal/services"
)

// Report is the full batter report written as one workbook: the info
// box, one sheet per grouped view, and the dismissal breakdown.
type Report struct {
	Summary    *services.SummaryView
	Grouped    []*services.GroupedView
	Dismissals *services.DismissalsView
	Precision  int
}

// sheet names by view kind
var viewSheetNames = map[services.ViewKind]string{
	services.ViewLineLength:   "Line and Length",
	services.ViewBowler:       "Bowlers",
	services.ViewBowlerType:   "Bowler Types",
	services.ViewShots:        "Shots",
	services.ViewBallType:     "Ball Types",
	services.ViewFeetMovement: "Feet Movement",
	services.ViewOvers:        "Overs",
	services.ViewBallInOver:   "Ball In Over",
}

// WorkbookWriter exports batter reports as xlsx workbooks
type WorkbookWriter struct {
	exportDir string
	logger    *slog.Logger
}

// NewWorkbookWriter creates a new workbook writer writing under exportDir
func NewWorkbookWriter(exportDir string, logger *slog.Logger) *WorkbookWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookWriter{exportDir: exportDir, logger: logger}
}

// Write writes a batter report workbook to fileName under the export
// directory and returns the full path written.
func (w *WorkbookWriter) Write(fileName string, report Report) (string, error) {
	fullPath := fileName
	if !filepath.IsAbs(fullPath) {
		fullPath = filepath.Join(w.exportDir, fileName)
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	f, err := BuildWorkbook(report)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := f.SaveAs(fullPath); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}

	w.logger.Info("wrote batter report",
		slog.String("file", fullPath),
		slog.Int("sheets", len(report.Grouped)+2))

	return fullPath, nil
}

// Stream writes the workbook to an open writer, used by the HTTP
// download endpoint.
func Stream(out io.Writer, report Report) error {
	f, err := BuildWorkbook(report)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// BuildWorkbook assembles the report workbook in memory
func BuildWorkbook(report Report) (*excelize.File, error) {
	f := excelize.NewFile()

	if report.Summary != nil {
		headers, records := SummaryRecords(report.Summary, report.Precision)
		if err := writeSheet(f, "Summary", headers, records); err != nil {
			f.Close()
			return nil, err
		}
	}

	for _, view := range report.Grouped {
		name := viewSheetNames[view.View]
		if name == "" {
			name = string(view.View)
		}
		headers, records := GroupedRecords(view, report.Precision)
		if err := writeSheet(f, name, headers, records); err != nil {
			f.Close()
			return nil, err
		}
	}

	if report.Dismissals != nil {
		headers, records := DismissalRecords(report.Dismissals, report.Precision)
		if err := writeSheet(f, "Dismissals", headers, records); err != nil {
			f.Close()
			return nil, err
		}
	}

	// Drop excelize's default sheet; the first report sheet is active
	if f.SheetCount > 1 {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to remove default sheet: %w", err)
		}
	}
	f.SetActiveSheet(0)

	return f, nil
}

// writeSheet appends one sheet with a bold header row
func writeSheet(f *excelize.File, name string, headers []string, records [][]string) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", name, err)
	}

	headerRow := make([]interface{}, len(headers))
	for i, h := range headers {
		headerRow[i] = h
	}

	cell, err := excelize.CoordinatesToCellName(1, 1)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(name, cell, &headerRow); err != nil {
		return fmt.Errorf("failed to write headers for %q: %w", name, err)
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		endCell, cellErr := excelize.CoordinatesToCellName(len(headers), 1)
		if cellErr == nil {
			_ = f.SetCellStyle(name, cell, endCell, style)
		}
	}

	for i, record := range records {
		row := make([]interface{}, len(record))
		for j, v := range record {
			row[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d for %q: %w", i, name, err)
		}
	}

	return nil
}
