package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/hovercard/pkg/preview"
)

// cardWidth is the outer width of a terminal card, in cells.
const cardWidth = 46

var (
	styleCard = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorCyan).
			Padding(0, 1)
	styleCardError = styleCard.BorderForeground(colorRed)

	styleCardTitle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleCardDesc   = lipgloss.NewStyle().Foreground(colorWhite)
	styleStatLabel  = lipgloss.NewStyle().Foreground(colorGray)
	styleStatValue  = lipgloss.NewStyle().Foreground(colorWhite).Bold(true)
	styleCardFooter = lipgloss.NewStyle().Foreground(colorDim).Italic(true)
)

// renderCard draws data as a bordered card of the given outer width.
func renderCard(d preview.Data, width int) string {
	return cardFrame(styleCard, d, width)
}

// renderErrorCard draws the error variant with msg as its description.
func renderErrorCard(msg string, width int) string {
	return cardFrame(styleCardError, preview.Error(msg), width)
}

// renderLoadingCard draws the placeholder shown while a preview loads.
func renderLoadingCard(width int) string {
	inner := contentWidth(width)
	body := lipgloss.JoinVertical(lipgloss.Left,
		styleCardTitle.Render("Chargement..."),
		StyleDim.Width(inner).Render("Récupération des informations"),
	)
	return styleCard.Width(width - 2).Render(body)
}

func cardFrame(frame lipgloss.Style, d preview.Data, width int) string {
	inner := contentWidth(width)
	parts := []string{
		styleCardTitle.Width(inner).Render(d.Title),
		styleCardDesc.Width(inner).Render(d.Description),
	}
	if stats := renderStats(d.Stats, inner); stats != "" {
		parts = append(parts, "", stats)
	}
	if d.Footer != "" {
		parts = append(parts, "", styleCardFooter.Width(inner).Render(d.Footer))
	}
	return frame.Width(width - 2).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// renderStats lays stats out one per line, icon first.
func renderStats(stats []preview.Stat, width int) string {
	if len(stats) == 0 {
		return ""
	}
	lines := make([]string, len(stats))
	for i, s := range stats {
		label := s.Label
		if s.Icon != "" {
			label = s.Icon + " " + label
		}
		lines[i] = styleStatLabel.Render(label+" ") + styleStatValue.Render(s.Value)
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(strings.Join(lines, "\n"))
}

// contentWidth is the text width inside a card of the given outer width.
func contentWidth(width int) int {
	return max(width-4, 10)
}
