package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"t20cli/internal/services"
)

// CSVWriter exports dashboard views as CSV reports
type CSVWriter struct {
	exportDir string
	logger    *slog.Logger
}

// NewCSVWriter creates a new CSV writer writing under exportDir
func NewCSVWriter(exportDir string, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{exportDir: exportDir, logger: logger}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	Append    bool
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes data to a CSV file with the given options
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) error {
	fullPath := w.resolvePath(filePath)

	w.logger.Info("writing CSV report",
		slog.String("file", fullPath),
		slog.Int("record_count", len(options.Records)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	flags := os.O_CREATE | os.O_WRONLY
	if options.Append {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	file, err := os.OpenFile(fullPath, flags, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	if options.BOMPrefix && !options.Append {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	return writeRecords(file, options.Headers, options.Records, !options.Append)
}

// WriteGroupedView writes a grouped stats view as a CSV report file
func (w *CSVWriter) WriteGroupedView(filePath string, view *services.GroupedView, precision int) error {
	headers, records := GroupedRecords(view, precision)
	return w.WriteCSV(filePath, WriteOptions{
		Headers:   headers,
		Records:   records,
		BOMPrefix: true,
	})
}

// StreamGroupedView streams a grouped stats view to an open writer,
// used by the HTTP download endpoint.
func StreamGroupedView(out io.Writer, view *services.GroupedView, precision int) error {
	if _, err := out.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}
	headers, records := GroupedRecords(view, precision)
	return writeRecords(out, headers, records, true)
}

// GroupedRecords flattens a grouped view into CSV headers and records
func GroupedRecords(view *services.GroupedView, precision int) ([]string, [][]string) {
	headers := []string{
		"Group", "Balls", "Runs", "Dismissals",
		"SR", "Avg", "Control %", "Aerial %", "Boundary %", "Dot %",
		"eSR", "eControl", "eAerial", "eBoundary", "eDot",
	}

	records := make([][]string, 0, len(view.Groups))
	for _, g := range view.Groups {
		records = append(records, []string{
			g.Group,
			formatInt(g.Balls),
			formatInt(g.Runs),
			formatInt(g.Dismissals),
			formatRate(g.StrikeRate, precision),
			formatRate(g.Average, precision),
			formatRate(g.ControlPct, precision),
			formatRate(g.AerialPct, precision),
			formatRate(g.BoundaryPct, precision),
			formatRate(g.DotPct, precision),
			formatSigned(g.Effective.StrikeRate, precision),
			formatSigned(g.Effective.ControlPct, precision),
			formatSigned(g.Effective.AerialPct, precision),
			formatSigned(g.Effective.BoundaryPct, precision),
			formatSigned(g.Effective.DotPct, precision),
		})
	}

	return headers, records
}

// SummaryRecords flattens the batter info box into CSV headers and records
func SummaryRecords(view *services.SummaryView, precision int) ([]string, [][]string) {
	headers := []string{
		"Batter", "Hand", "Balls", "Runs", "Dismissals",
		"SR", "Avg", "Control %", "Aerial %", "Boundary %", "Dot %",
		"eSR", "eControl", "eAerial",
	}

	s := view.Summary
	record := []string{
		view.Batter,
		string(view.Hand),
		formatInt(s.Balls),
		formatInt(s.Runs),
		formatInt(s.Dismissals),
		formatRate(s.StrikeRate, precision),
		formatRate(s.Average, precision),
		formatRate(s.ControlPct, precision),
		formatRate(s.AerialPct, precision),
		formatRate(s.BoundaryPct, precision),
		formatRate(s.DotPct, precision),
		formatSigned(view.Effective.StrikeRate, precision),
		formatSigned(view.Effective.ControlPct, precision),
		formatSigned(view.Effective.AerialPct, precision),
	}

	return headers, [][]string{record}
}

// DismissalRecords flattens a dismissal breakdown into CSV headers and records
func DismissalRecords(view *services.DismissalsView, precision int) ([]string, [][]string) {
	headers := []string{"Dismissal", "Variation", "Count", "Per 100 Balls"}

	records := make([][]string, 0, len(view.Dismissals))
	for _, d := range view.Dismissals {
		records = append(records, []string{
			d.DismissalType,
			d.Variation,
			formatInt(d.Count),
			formatRate(d.RatePer100, precision),
		})
	}

	return headers, records
}

func writeRecords(out io.Writer, headers []string, records [][]string, withHeaders bool) error {
	writer := csv.NewWriter(out)
	defer writer.Flush()

	if withHeaders && len(headers) > 0 {
		if err := writer.Write(headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for i, record := range records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// resolvePath resolves a report path against the export directory
func (w *CSVWriter) resolvePath(filePath string) string {
	if filepath.IsAbs(filePath) {
		return filePath
	}
	return filepath.Join(w.exportDir, filePath)
}
