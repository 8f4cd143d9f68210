package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	units "github.com/docker/go-units"
	"github.com/rusenback/dockerstats/internal/model"
	"github.com/rusenback/dockerstats/internal/output"
)

// RenderStats renders the latest derived metrics for a container
func RenderStats(container model.Container, stats *model.DerivedMetrics, cpuHistory, memHistory []float64) string {
	name := container.Name
	if name == "" {
		name = container.ID
	}
	title := titleStyle.Render("Container: " + truncate(name, 40))
	if container.Image != "" {
		title += " " + helpStyle.UnsetPadding().Render("("+container.Image+")")
	}

	if stats == nil {
		return lipgloss.JoinVertical(lipgloss.Left, title, "", helpStyle.Render("Waiting for the second sample..."))
	}

	colorize := func(percent float64, text string) string {
		var color string
		switch {
		case percent > 80:
			color = "#F38BA8" // red/pink
		case percent > 50:
			color = "#FAB387" // orange
		default:
			color = "#A6E3A1" // green
		}
		return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(text)
	}

	barLength := 30
	sparkWidth := 30

	// CPU can exceed 100 on multi-core containers; the bar saturates
	cpuLine := fmt.Sprintf("%8s |%s|", output.FormatPercent(stats.CPUPercent), renderBar(stats.CPUPercent, barLength))
	cpuBox := lipgloss.JoinVertical(lipgloss.Left,
		labelStyle.Render("CPU"),
		colorize(stats.CPUPercent, cpuLine),
		cpuStyle.Render(renderSparkline(cpuHistory, sparkWidth)),
	)

	memLine := fmt.Sprintf("%8s", units.BytesSize(stats.MemMiB*units.MiB))
	memBox := lipgloss.JoinVertical(lipgloss.Left,
		labelStyle.Render("MEM"),
		memStyle.Render(memLine),
		memStyle.Render(renderSparkline(memHistory, sparkWidth)),
	)

	netStr := netStyle.Render(fmt.Sprintf("Network: Rx: %9s | Tx: %9s",
		output.FormatBytes(stats.RxBytes), output.FormatBytes(stats.TxBytes)))

	blockStr := diskStyle.Render(fmt.Sprintf("Disk I/O: Read: %9s | Write: %9s",
		output.FormatBytes(stats.ReadBytes), output.FormatBytes(stats.WriteBytes)))

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		cpuBox,
		"",
		memBox,
		"",
		netStr,
		blockStr,
	)
}
