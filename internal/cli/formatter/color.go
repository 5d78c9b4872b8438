package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/proyek/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// DeadlineColor returns the style for a deadline state.
func DeadlineColor(s domain.DeadlineState) lipgloss.Style {
	switch s {
	case domain.DeadlineOverdue, domain.DeadlineCritical:
		return StyleRed
	case domain.DeadlineWarning:
		return StyleYellow
	case domain.DeadlineSafe:
		return StyleGreen
	default:
		return StyleDim
	}
}

// DeadlineIndicator returns a colored indicator such as "● CRITICAL".
func DeadlineIndicator(s domain.DeadlineState) string {
	switch s {
	case domain.DeadlineOverdue:
		return StyleRed.Render("▲ OVERDUE")
	case domain.DeadlineCritical:
		return StyleRed.Render("● CRITICAL")
	case domain.DeadlineWarning:
		return StyleYellow.Render("● WARNING")
	case domain.DeadlineSafe:
		return StyleGreen.Render("● SAFE")
	default:
		return StyleDim.Render("● UNKNOWN")
	}
}

// ProjectStatusPill renders the execution phase of a project.
func ProjectStatusPill(s domain.ProjectStatus) string {
	switch s {
	case domain.ProjectPreparation:
		return StyleBlue.Render("○ Persiapan")
	case domain.ProjectRunning:
		return StyleGreen.Render("● Berjalan")
	case domain.ProjectCompleted:
		return StyleDim.Render("✔ Selesai")
	case domain.ProjectHandedOver:
		return StyleDim.Render("✔ Serah Terima")
	default:
		return StyleDim.Render(string(s))
	}
}

// StageStatusPill renders a stage display status. Pass the result of
// Stage.DisplayStatus so overdue stages are flagged.
func StageStatusPill(s domain.StageStatus) string {
	switch s {
	case domain.StagePending:
		return StyleBlue.Render("○ Pending")
	case domain.StageInProgress:
		return StyleYellow.Render("◐ Progress")
	case domain.StageDone:
		return StyleGreen.Render("✔ Done")
	case domain.StageOverdue:
		return StyleRed.Render("▲ Overdue")
	default:
		return StyleDim.Render(string(s))
	}
}

func PaymentPill(s domain.PaymentStatus) string {
	switch s.OrDefault() {
	case domain.PaymentPaid:
		return StyleGreen.Render("Lunas")
	case domain.PaymentOverdue:
		return StyleRed.Render("Overdue")
	default:
		return StyleYellow.Render("Pending")
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
