// Package report turns a finished (or interrupted) simulation into files:
// a CSV of generations, a JSON summary, an xlsx workbook with charts, a
// SQLite database and a Prometheus textfile.
package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/boristopalov/gambit/pkg/config"
	"github.com/boristopalov/gambit/pkg/core"
)

const (
	CSVFile      = "generations.csv"
	JSONFile     = "summary.json"
	WorkbookFile = "report.xlsx"
	SQLiteFile   = "results.db"
	MetricsFile  = "metrics.prom"
	LogFile      = "simulation.log"
)

// Options carries the event subscribers whose state ends up in reports.
// Nil fields skip the matching artifact.
type Options struct {
	Metrics *MetricsCollector
	Detail  *DetailLog
	Logger  *slog.Logger
}

// WriteAll writes every artifact into dir. A failing artifact is logged
// and skipped; the others are still written. It returns the paths that
// were written and the joined errors.
func WriteAll(ctx context.Context, dir string, result *core.SimulationResult, cfg *config.ExperimentConfig, opts Options) ([]string, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if result == nil {
		return nil, errors.New("no simulation result to report")
	}

	type artifact struct {
		name  string
		write func(path string) error
	}
	artifacts := []artifact{
		{CSVFile, func(p string) error { return WriteCSV(p, result) }},
		{JSONFile, func(p string) error { return WriteJSON(p, result, cfg) }},
		{WorkbookFile, func(p string) error {
			var detail *DetailLog
			if cfg != nil && cfg.Report.DetailedLog {
				detail = opts.Detail
			}
			return WriteWorkbook(p, result, cfg, detail)
		}},
		{SQLiteFile, func(p string) error { return WriteSQLite(ctx, p, result, cfg) }},
	}
	if opts.Metrics != nil {
		artifacts = append(artifacts, artifact{MetricsFile, opts.Metrics.WriteTextfile})
	}

	var (
		written []string
		errs    []error
	)
	for _, a := range artifacts {
		path := filepath.Join(dir, a.name)
		if err := a.write(path); err != nil {
			logger.Error("failed to write report", "file", a.name, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", a.name, err))
			continue
		}
		logger.Debug("report written", "path", path)
		written = append(written, path)
	}
	return written, errors.Join(errs...)
}
