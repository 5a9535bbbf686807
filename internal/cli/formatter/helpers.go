package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

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
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// Duration formats a minute count as "1h 30m" or "45m".
func Duration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	h := minutes / 60
	m := minutes % 60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

// Hours formats fractional hours as "2.5h".
func Hours(h float64) string {
	return fmt.Sprintf("%.1fh", h)
}

// RelativeDate returns a human-friendly relative date string.
func RelativeDate(t time.Time) string {
	return RelativeDateFrom(t, time.Now())
}

// RelativeDateFrom returns a human-friendly relative date string from a reference time.
func RelativeDateFrom(t time.Time, now time.Time) string {
	diff := t.Sub(now)
	days := int(math.Round(diff.Hours() / 24))

	switch {
	case days == 0:
		return "Hoy"
	case days == 1:
		return "Mañana"
	case days == -1:
		return "Ayer"
	case days > 0 && days < 14:
		return fmt.Sprintf("En %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("En %dsem", days/7)
	case days > 0:
		return fmt.Sprintf("En %dmes", days/30)
	case days < 0 && days > -14:
		return fmt.Sprintf("Hace %dd", -days)
	case days < 0 && days > -60:
		return fmt.Sprintf("Hace %dsem", -days/7)
	default:
		return fmt.Sprintf("Hace %dmes", -days/30)
	}
}

// RelativeDateStyled returns RelativeDate with urgency coloring applied.
func RelativeDateStyled(t time.Time) string {
	text := RelativeDate(t)
	days := int(math.Round(time.Until(t).Hours() / 24))

	switch {
	case days < 0 || days <= 2:
		return StyleRed.Render(text)
	case days <= 7:
		return StyleYellow.Render(text)
	default:
		return StyleFg.Render(text)
	}
}

// WeekdayName returns the Spanish name for a 0=Sunday..6=Saturday weekday.
func WeekdayName(day int) string {
	names := []string{"Domingo", "Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado"}
	if day < 0 || day > 6 {
		return fmt.Sprintf("día %d", day)
	}
	return names[day]
}
