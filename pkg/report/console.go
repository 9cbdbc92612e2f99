package report

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/boristopalov/gambit/pkg/config"
	"github.com/boristopalov/gambit/pkg/core"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#FFFFFF"})
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"})
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#B8860B", Dark: "#FFAA00"})
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "#CCCCCC", Dark: "#444444"}).
			Padding(0, 1)
)

// RenderConsoleSummary formats the end-of-run summary for a terminal
func RenderConsoleSummary(result *core.SimulationResult, cfg *config.ExperimentConfig, outputDir string) string {
	s := result.Summary
	env := result.Environment

	type row struct{ label, value string }
	rows := []row{
		{"Run", result.RunID},
		{"Seed", fmt.Sprintf("%d", result.Seed)},
		{"Generations", fmt.Sprintf("%s / %s",
			humanize.Comma(int64(len(result.Records))), humanize.Comma(int64(result.RequestedGenerations)))},
		{"Total steps", humanize.Comma(int64(env.TotalSteps))},
		{"Reward rate", fmt.Sprintf("%.4f actual, %.4f configured", env.ActualRewardRate, env.ConfiguredRewardProbability)},
		{"Lifespan", fmt.Sprintf("mean %.2f, median %.1f, min %s, max %s",
			s.MeanLifespan, s.MedianLifespan, humanize.Comma(int64(s.MinLifespan)), humanize.Comma(int64(s.MaxLifespan)))},
		{"Gave up", humanize.Comma(int64(s.ReasonCounts[core.ThresholdReached]))},
		{"Step capped", humanize.Comma(int64(s.ReasonCounts[core.MaxStepsReached]))},
		{"Duration", result.EndTime.Sub(result.StartTime).Round(time.Millisecond).String()},
	}
	if cfg != nil {
		agent := fmt.Sprintf("%s, initial threshold %d", cfg.AgentType, cfg.AgentInitialThreshold)
		if cfg.IsAdaptive() {
			agent += fmt.Sprintf(", learning rate %.3f, mean threshold %.2f", cfg.LearningRate, s.MeanThreshold)
		}
		rows = slices.Insert(rows, 2, row{"Agent", agent})
	}
	if outputDir != "" {
		rows = append(rows, row{"Output", outputDir})
	}

	width := 0
	for _, r := range rows {
		width = max(width, len(r.label))
	}

	var b strings.Builder
	title := "Simulation complete"
	if cfg != nil {
		title = cfg.Name
	}
	b.WriteString(titleStyle.Render(title))
	if !result.Completed() {
		b.WriteString(" " + warnStyle.Render("(interrupted)"))
	}
	for _, r := range rows {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", width, r.label)))
		b.WriteString("  ")
		b.WriteString(r.value)
	}
	return boxStyle.Render(b.String())
}
