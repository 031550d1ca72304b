// Package chart draws the recent completion history as horizontal bars.
package chart

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/daymark/internal/constants"
	"github.com/julianstephens/daymark/internal/models"
)

const (
	EmptyMessage = "Task history unavailable."

	labelWidth  = 6
	minBarWidth = 10
	filledRune  = "█"
	emptyRune   = "░"
)

var (
	completedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	remainingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	labelStyle     = lipgloss.NewStyle().Width(labelWidth).Foreground(lipgloss.Color("252"))
	countStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	emptyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
)

// Render draws one bar per marker, oldest first, using at most the last
// HistoryChartDays markers. width is the total line width available.
func Render(markers []models.HistoryMarker, width int) string {
	if len(markers) == 0 {
		return emptyStyle.Render(EmptyMessage)
	}
	if len(markers) > constants.HistoryChartDays {
		markers = markers[len(markers)-constants.HistoryChartDays:]
	}

	maxTotal := 0
	for _, m := range markers {
		maxTotal = max(maxTotal, m.TotalTasks)
	}

	// label, space, bar, space, "cc/tt"
	countWidth := len(fmt.Sprintf("%d/%d", maxTotal, maxTotal))
	barWidth := max(width-labelWidth-countWidth-2, minBarWidth)

	var b strings.Builder
	for i, m := range markers {
		if i > 0 {
			b.WriteByte('\n')
		}
		filled, empty := segments(m, maxTotal, barWidth)
		b.WriteString(labelStyle.Render(m.Date.Format(constants.ChartDateFormat)))
		b.WriteByte(' ')
		b.WriteString(completedStyle.Render(strings.Repeat(filledRune, filled)))
		b.WriteString(remainingStyle.Render(strings.Repeat(emptyRune, empty)))
		b.WriteString(strings.Repeat(" ", barWidth-filled-empty+1))
		b.WriteString(countStyle.Render(fmt.Sprintf("%d/%d", m.CompletedTasks, m.TotalTasks)))
	}
	return b.String()
}

// segments scales a marker's completed and remaining counts against the
// largest total so bars are comparable across days.
func segments(m models.HistoryMarker, maxTotal, barWidth int) (filled, empty int) {
	if maxTotal == 0 {
		return 0, 0
	}
	total := m.TotalTasks * barWidth / maxTotal
	filled = m.CompletedTasks * barWidth / maxTotal
	if m.CompletedTasks > 0 && filled == 0 {
		filled = 1
	}
	if total < filled {
		total = filled
	}
	return filled, total - filled
}
