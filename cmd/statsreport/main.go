package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"t20cli/internal/config"
	"t20cli/internal/dataset"
	"t20cli/internal/exporter"
	"t20cli/internal/filter"
	"t20cli/internal/infrastructure"
	"t20cli/internal/services"
)

// reportViews is the sheet order of a full batter report
var reportViews = []services.ViewKind{
	services.ViewLineLength,
	services.ViewBowler,
	services.ViewBowlerType,
	services.ViewShots,
	services.ViewBallType,
	services.ViewFeetMovement,
	services.ViewOvers,
	services.ViewBallInOver,
}

func main() {
	csvPath := flag.String("csv", "", "ball-by-ball csv file (defaults to the configured dataset path)")
	batter := flag.String("batter", "", "batter to report on (empty reports every batter)")
	out := flag.String("out", "", "output directory (defaults to the configured export dir)")
	format := flag.String("format", "xlsx", "xlsx | csv")
	baseline := flag.String("baseline", "", "baseline mode: match | global (defaults to configured mode)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}

	if *csvPath != "" {
		cfg.Dataset.CSVPath = *csvPath
	}
	if *out != "" {
		cfg.Export.Dir = *out
	}
	if *baseline != "" {
		cfg.Analysis.Baseline = config.BaselineMode(*baseline)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	if *format != "xlsx" && *format != "csv" {
		logger.Error("Unsupported format", slog.String("format", *format))
		os.Exit(1)
	}

	logger.Info("Starting report generation",
		slog.String("dataset", cfg.GetCSVPath()),
		slog.String("batter", *batter),
		slog.String("format", *format),
		slog.String("output_dir", cfg.GetExportDir()))

	ctx := context.Background()
	store := dataset.NewStore(logger)
	svc := services.NewStatsService(cfg, store, logger)

	batters := []string{*batter}
	if *batter == "" {
		batters, err = svc.Batters(ctx)
		if err != nil {
			logger.Error("Cannot list batters", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	written := 0
	for _, name := range batters {
		if err := writeReport(ctx, cfg, svc, logger, name, *format); err != nil {
			if errors.Is(err, services.ErrNoDeliveries) {
				logger.Warn("No deliveries for batter, skipping", slog.String("batter", name))
				continue
			}
			logger.Error("Report failed",
				slog.String("batter", name),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
		written++
	}

	logger.Info("Report generation complete",
		slog.Int("batters", len(batters)),
		slog.Int("reports_written", written))
}

// writeReport computes every view for one batter and writes the report
func writeReport(ctx context.Context, cfg *config.Config, svc *services.StatsService, logger *slog.Logger, batter, format string) error {
	sel := filter.Selection{Batter: batter}

	summary, err := svc.Summary(ctx, sel)
	if err != nil {
		return err
	}

	var grouped []*services.GroupedView
	for _, kind := range reportViews {
		view, err := svc.Grouped(ctx, sel, kind)
		if err != nil {
			return fmt.Errorf("view %s: %w", kind, err)
		}
		grouped = append(grouped, view)
	}

	dismissals, err := svc.Dismissals(ctx, sel)
	if err != nil {
		return err
	}

	precision := cfg.Analysis.RatePrecision
	base := fileSafeName(batter)

	if format == "csv" {
		writer := exporter.NewCSVWriter(cfg.GetExportDir(), logger)
		for _, view := range grouped {
			name := fmt.Sprintf("%s_%s.csv", base, view.View)
			if err := writer.WriteGroupedView(name, view, precision); err != nil {
				return err
			}
		}
		headers, records := exporter.SummaryRecords(summary, precision)
		return writer.WriteCSV(base+"_summary.csv", exporter.WriteOptions{
			Headers:   headers,
			Records:   records,
			BOMPrefix: true,
		})
	}

	writer := exporter.NewWorkbookWriter(cfg.GetExportDir(), logger)
	path, err := writer.Write(base+"_report.xlsx", exporter.Report{
		Summary:    summary,
		Grouped:    grouped,
		Dismissals: dismissals,
		Precision:  precision,
	})
	if err != nil {
		return err
	}

	logger.Info("Wrote report",
		slog.String("batter", batter),
		slog.String("file", path))
	return nil
}

// fileSafeName turns a batter name into a filename fragment
func fileSafeName(name string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '-', r == '_':
			return '_'
		default:
			return -1
		}
	}, name)
	if safe == "" {
		safe = "batter"
	}
	return safe
}
