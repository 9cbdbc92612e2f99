package report

import (
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/boristopalov/gambit/pkg/config"
	"github.com/boristopalov/gambit/pkg/core"
)

const (
	sheetGenerations  = "Generations"
	sheetSummary      = "Summary"
	sheetConfig       = "Config"
	sheetDistribution = "Distribution"
	sheetDetail       = "Detail"
)

// sheetWriter appends rows to one sheet and keeps the first error
type sheetWriter struct {
	f     *excelize.File
	sheet string
	row   int
	err   error
}

func (w *sheetWriter) write(values ...any) {
	if w.err != nil {
		return
	}
	w.row++
	w.err = w.f.SetSheetRow(w.sheet, fmt.Sprintf("A%d", w.row), &values)
}

// WriteWorkbook renders the run into an xlsx workbook with a lifespan
// trend chart and a lifespan histogram. detail may be nil.
func WriteWorkbook(path string, result *core.SimulationResult, cfg *config.ExperimentConfig, detail *DetailLog) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetGenerations); err != nil {
		return err
	}
	for _, name := range []string{sheetSummary, sheetConfig, sheetDistribution} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	if err := writeGenerationsSheet(f, result); err != nil {
		return fmt.Errorf("generations sheet: %w", err)
	}
	if err := writeSummarySheet(f, result); err != nil {
		return fmt.Errorf("summary sheet: %w", err)
	}
	if err := writeConfigSheet(f, cfg); err != nil {
		return fmt.Errorf("config sheet: %w", err)
	}
	if err := writeDistributionSheet(f, result); err != nil {
		return fmt.Errorf("distribution sheet: %w", err)
	}
	if detail != nil && len(detail.Generations()) > 0 {
		if _, err := f.NewSheet(sheetDetail); err != nil {
			return fmt.Errorf("create sheet %s: %w", sheetDetail, err)
		}
		if err := writeDetailSheet(f, detail); err != nil {
			return fmt.Errorf("detail sheet: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func writeGenerationsSheet(f *excelize.File, result *core.SimulationResult) error {
	w := &sheetWriter{f: f, sheet: sheetGenerations}
	lifespans := result.Lifespans()
	window := MovingAverageWindow(len(lifespans))
	avg := MovingAverage(lifespans, window)

	header := make([]any, 0, len(csvHeader)+1)
	for _, h := range csvHeader {
		header = append(header, h)
	}
	header = append(header, fmt.Sprintf("moving_average_%d", window))
	w.write(header...)

	for i, r := range result.Records {
		row := []any{r.Generation, r.Lifespan, r.Rewards, r.Punishments, string(r.Reason), r.Threshold, r.FinalConsecutivePunishments}
		// avg[j] covers generations j+1..j+window
		if j := i - window + 1; j >= 0 && j < len(avg) {
			row = append(row, avg[j])
		}
		w.write(row...)
	}
	if w.err != nil || len(result.Records) == 0 {
		return w.err
	}

	last := len(result.Records) + 1
	series := []excelize.ChartSeries{{
		Name:       sheetGenerations + "!$B$1",
		Categories: fmt.Sprintf("%s!$A$2:$A$%d", sheetGenerations, last),
		Values:     fmt.Sprintf("%s!$B$2:$B$%d", sheetGenerations, last),
	}}
	if len(avg) > 0 {
		series = append(series, excelize.ChartSeries{
			Name:       sheetGenerations + "!$H$1",
			Categories: fmt.Sprintf("%s!$A$2:$A$%d", sheetGenerations, last),
			Values:     fmt.Sprintf("%s!$H$2:$H$%d", sheetGenerations, last),
			Line:       excelize.ChartLine{Width: 2},
		})
	}
	return f.AddChart(sheetGenerations, "J2", &excelize.Chart{
		Type:   excelize.Line,
		Series: series,
		Title:  []excelize.RichTextRun{{Text: "Agent Lifespan Across Generations"}},
		XAxis:  excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: "Generation"}}},
		YAxis:  excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: "Lifespan (steps)"}}},
		Legend: excelize.ChartLegend{Position: "bottom"},
		Dimension: excelize.ChartDimension{
			Width:  960,
			Height: 480,
		},
	})
}

func writeSummarySheet(f *excelize.File, result *core.SimulationResult) error {
	w := &sheetWriter{f: f, sheet: sheetSummary}
	s := result.Summary
	env := result.Environment

	w.write("metric", "value")
	w.write("run_id", result.RunID)
	w.write("seed", strconv.FormatUint(result.Seed, 10))
	w.write("requested_generations", result.RequestedGenerations)
	w.write("completed_generations", len(result.Records))
	w.write("mean_lifespan", s.MeanLifespan)
	w.write("median_lifespan", s.MedianLifespan)
	w.write("min_lifespan", s.MinLifespan)
	w.write("max_lifespan", s.MaxLifespan)
	w.write("stddev_lifespan", s.StdDevLifespan)
	w.write("mean_threshold", s.MeanThreshold)
	w.write("threshold_reached", s.ReasonCounts[core.ThresholdReached])
	w.write("max_steps_reached", s.ReasonCounts[core.MaxStepsReached])
	w.write("total_steps", env.TotalSteps)
	w.write("total_rewards", env.TotalRewards)
	w.write("total_punishments", env.TotalPunishments)
	w.write("configured_reward_probability", env.ConfiguredRewardProbability)
	w.write("actual_reward_rate", env.ActualRewardRate)
	w.write("start_time", result.StartTime.Format(time.RFC3339))
	w.write("end_time", result.EndTime.Format(time.RFC3339))
	return w.err
}

func writeConfigSheet(f *excelize.File, cfg *config.ExperimentConfig) error {
	w := &sheetWriter{f: f, sheet: sheetConfig}
	w.write("parameter", "value")
	if cfg == nil {
		return w.err
	}
	w.write("name", cfg.Name)
	w.write("num_generations", cfg.NumGenerations)
	w.write("reward_probability", cfg.RewardProbability)
	w.write("agent_initial_threshold", cfg.AgentInitialThreshold)
	w.write("agent_type", cfg.AgentType)
	w.write("learning_rate", cfg.LearningRate)
	w.write("max_steps_per_generation", cfg.MaxStepsPerGeneration)
	if cfg.Seed != nil {
		w.write("seed", strconv.FormatUint(*cfg.Seed, 10))
	}
	w.write("output_dir_base", cfg.OutputDirBase)
	w.write("log_level", cfg.Logging.Level)
	w.write("detailed_log", cfg.Report.DetailedLog)
	w.write("max_detailed_logs", cfg.Report.MaxDetailedLogs)
	return w.err
}

func writeDistributionSheet(f *excelize.File, result *core.SimulationResult) error {
	w := &sheetWriter{f: f, sheet: sheetDistribution}
	lifespans := result.Lifespans()
	bins := Histogram(lifespans, HistogramBins(lifespans))

	w.write("lower", "upper", "label", "count")
	for _, b := range bins {
		w.write(b.Lower, b.Upper, fmt.Sprintf("%.0f-%.0f", b.Lower, b.Upper), b.Count)
	}
	if w.err != nil || len(bins) == 0 {
		return w.err
	}

	last := len(bins) + 1
	return f.AddChart(sheetDistribution, "F2", &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{{
			Name:       sheetDistribution + "!$D$1",
			Categories: fmt.Sprintf("%s!$C$2:$C$%d", sheetDistribution, last),
			Values:     fmt.Sprintf("%s!$D$2:$D$%d", sheetDistribution, last),
		}},
		Title:  []excelize.RichTextRun{{Text: "Distribution of Agent Lifespans"}},
		XAxis:  excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: "Lifespan (steps)"}}},
		YAxis:  excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: "Generations"}}},
		Legend: excelize.ChartLegend{Position: "none"},
		Dimension: excelize.ChartDimension{
			Width:  720,
			Height: 480,
		},
	})
}

func writeDetailSheet(f *excelize.File, detail *DetailLog) error {
	w := &sheetWriter{f: f, sheet: sheetDetail}
	w.write("generation", "line")
	for _, g := range detail.Generations() {
		for _, line := range detail.Lines(g) {
			w.write(g, line)
		}
	}
	return w.err
}
