package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"deadline-doom/internal/presenter"
	"deadline-doom/internal/wizard"
)

const gaugeWidth = 20

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Faint(true)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
)

var problemText = map[wizard.Problem]string{
	wizard.ProblemEmpty:       "is empty",
	wizard.ProblemNotPositive: "must be above zero",
	wizard.ProblemUnparseable: "is not a date",
	wizard.ProblemInPast:      "is in the past",
	wizard.ProblemUnknown:     "is not a known type",
}

func issuesText(issues []wizard.DraftIssue) string {
	lines := make([]string, 0, len(issues))
	for _, is := range issues {
		lines = append(lines, fmt.Sprintf("  task %d: %s %s", is.Index+1, is.Field, problemText[is.Problem]))
	}
	return strings.Join(lines, "\n")
}

// renderResult draws the result card in the colour of its risk level.
func renderResult(v presenter.View) string {
	accent := lipgloss.Color(v.Theme.Color)
	accentStyle := lipgloss.NewStyle().Foreground(accent)

	filled := v.Result.Score * gaugeWidth / 100
	gauge := accentStyle.Render(strings.Repeat("█", filled)) +
		mutedStyle.Render(strings.Repeat("░", gaugeWidth-filled))

	lines := []string{
		accentStyle.Bold(true).Render(fmt.Sprintf("%s Doom risk: %d%% (%s)", v.Theme.Emoji, v.Result.Score, v.Theme.Label)),
		gauge,
		v.Theme.Feedback,
	}

	if len(v.Result.Breakdown) > 0 {
		lines = append(lines, "", titleStyle.Render("Breakdown"))
		for _, ts := range v.Result.Breakdown {
			row := fmt.Sprintf("• %s: %s left, %.1fh/day, %.0f pts", ts.Title, daysText(ts.DaysLeft), ts.DailyLoad, ts.Score)
			if len(ts.Multipliers) > 0 {
				row += mutedStyle.Render(" [" + strings.Join(ts.Multipliers, ", ") + "]")
			}
			lines = append(lines, row)
		}
	}
	if v.Quote != "" {
		lines = append(lines, "", mutedStyle.Italic(true).Render("“"+v.Quote+"”"))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

func daysText(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
