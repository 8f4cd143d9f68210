package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F5C2E7"))

	labelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#B4BEFE"))

	cpuStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#89B4FA"))

	memStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1"))

	netStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#89B4FA"))

	diskStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#CBA6F7"))

	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8"))

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6ADC8")).Padding(1, 0)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#585B70")).
			Padding(1, 2)
)
