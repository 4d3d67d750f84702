// Package statusline grades each signal into a display severity, decorates
// it, and joins the segments into the single line written to stdout.
package statusline

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pulseline-dev/pulseline/internal/budget"
	"github.com/pulseline-dev/pulseline/internal/window"
)

// Severity is the display urgency of a line segment. Budget levels and
// window phases both reduce to one of these before decoration.
type Severity int

const (
	SeverityGood Severity = iota
	SeverityCaution
	SeverityCritical
)

// budgetSeverity maps consumption levels to display urgency: low consumption
// is the healthy state.
func budgetSeverity(l budget.Level) Severity {
	switch l {
	case budget.LevelLow:
		return SeverityGood
	case budget.LevelMedium:
		return SeverityCaution
	default:
		return SeverityCritical
	}
}

// phaseSeverity maps window progress to display urgency. The scale is
// inverted relative to budgets: an early phase means the longest wait until
// the budget renews, so it reads critical, while a late phase means the
// reset is imminent.
func phaseSeverity(p window.Phase) Severity {
	switch p {
	case window.PhaseEarly:
		return SeverityCritical
	case window.PhaseMid:
		return SeverityCaution
	default:
		return SeverityGood
	}
}

// ---------- decoration ----------

var (
	goodStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("2"))

	cautionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	criticalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
)

var glyphs = map[Severity]string{
	SeverityGood:     "●",
	SeverityCaution:  "◆",
	SeverityCritical: "▲",
}

var glyphStyles = map[Severity]lipgloss.Style{
	SeverityGood:     goodStyle,
	SeverityCaution:  cautionStyle,
	SeverityCritical: criticalStyle,
}

var plainMarks = map[Severity]string{
	SeverityGood:     "[OK]",
	SeverityCaution:  "[WARN]",
	SeverityCritical: "[CRIT]",
}

// Decorator renders a severity and a bare label into an emitted segment.
type Decorator struct {
	// Plain uses text markers instead of colored glyphs.
	Plain bool
}

// Decorate prefixes label with the severity marking.
func (d Decorator) Decorate(sev Severity, label string) string {
	if d.Plain {
		return plainMarks[sev] + " " + label
	}
	return glyphStyles[sev].Render(glyphs[sev]) + " " + label
}

// ---------- composing ----------

const separator = " | "

// Compose joins the present segments with the line separator. Empty
// segments are absent and skipped, never leaving doubled separators.
func Compose(parts []string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, separator)
}
