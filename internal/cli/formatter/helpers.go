package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/proyek/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// DaysLeftLabel renders a day count relative to today: "Today", "In 12d",
// "3d late".
func DaysLeftLabel(days int) string {
	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dd", days)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days > -60:
		return fmt.Sprintf("%dd late", -days)
	default:
		return fmt.Sprintf("%dmo late", -days/30)
	}
}

// DaysLeftStyled colors DaysLeftLabel by urgency.
func DaysLeftStyled(days int) string {
	text := DaysLeftLabel(days)
	switch {
	case days < 0 || days <= 7:
		return StyleRed.Render(text)
	case days <= 30:
		return StyleYellow.Render(text)
	default:
		return StyleFg.Render(text)
	}
}

// DateCell renders an optional date, "--" when unset.
func DateCell(t *time.Time) string {
	if t == nil {
		return Dim("--")
	}
	return t.Format(domain.DateLayout)
}

// MoneyCell renders an optional amount, "--" when unset.
func MoneyCell(m *domain.Money) string {
	if m == nil {
		return Dim("--")
	}
	return m.String()
}

func Percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// ShortID truncates an id for display.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func padRight(s string, n int) string {
	if w := lipgloss.Width(s); w < n {
		return s + strings.Repeat(" ", n-w)
	}
	return s
}
