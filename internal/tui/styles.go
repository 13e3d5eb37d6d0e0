package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jhoicas/flowboard-api/internal/domain/pipeline"
)

var (
	// Colores
	primaryColor = lipgloss.Color("#7C3AED")
	successColor = lipgloss.Color("#10B981")
	warningColor = lipgloss.Color("#F59E0B")
	errorColor   = lipgloss.Color("#EF4444")
	mutedColor   = lipgloss.Color("#6B7280")
	fgColor      = lipgloss.Color("#F9FAFB")

	stageColors = map[pipeline.Stage]lipgloss.Color{
		pipeline.StageNovo:     lipgloss.Color("#6366F1"),
		pipeline.StageAgendado: lipgloss.Color("#06B6D4"),
		pipeline.StageProposta: warningColor,
		pipeline.StageFechado:  successColor,
		pipeline.StageRecusado: errorColor,
	}

	// Estilos
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			Padding(0, 1)

	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(0, 1)

	activeColumnStyle = columnStyle.
				BorderForeground(primaryColor)

	cardStyle = lipgloss.NewStyle().
			Padding(0, 1)

	selectedCardStyle = lipgloss.NewStyle().
				Background(primaryColor).
				Foreground(fgColor).
				Bold(true).
				Padding(0, 1)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#374151")).
			Foreground(fgColor).
			Padding(0, 1)

	errorBarStyle = statusBarStyle.
			Background(errorColor)

	warningBarStyle = statusBarStyle.
			Background(warningColor).
			Foreground(lipgloss.Color("#111827"))
)

func stageHeader(s pipeline.Stage, count int) string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(stageColors[s]).
		Render(s.String()) + mutedStyle.Render(" ("+itoa(count)+")")
}
