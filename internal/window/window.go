// Package window locates the wall clock inside the daily rotation of usage
// windows and formats the countdown strings shown on the status line.
package window

import "fmt"

// Window is a half-open [Start, End) interval in minutes since midnight.
type Window struct {
	Start int
	End   int
}

// Duration returns the window length in minutes.
func (w Window) Duration() int { return w.End - w.Start }

// Daily is the fixed rotation: three five-hour windows from 08:00 to 23:00.
// The rotation is contiguous but leaves the early morning and the late night
// uncovered.
var Daily = []Window{
	{Start: 8 * 60, End: 13 * 60},
	{Start: 13 * 60, End: 18 * 60},
	{Start: 18 * 60, End: 23 * 60},
}

const minutesPerDay = 24 * 60

// Status reports where a clock reading falls relative to the rotation.
// Elapsed and Remaining are meaningful when Inside is set; UntilOpen,
// Tomorrow and StartsNow apply otherwise.
type Status struct {
	Inside    bool
	Window    Window
	Elapsed   int
	Remaining int

	UntilOpen int
	Tomorrow  bool
	StartsNow bool
}

// Locate places clockMinutes (minutes since local midnight) in the rotation.
func Locate(clockMinutes int) Status {
	return locate(clockMinutes, Daily)
}

func locate(clock int, rotation []Window) Status {
	for _, w := range rotation {
		if clock >= w.Start && clock < w.End {
			return Status{
				Inside:    true,
				Window:    w,
				Elapsed:   clock - w.Start,
				Remaining: w.End - clock,
			}
		}
	}
	// Before the first window, or in a gap between two of them. The
	// StartsNow case only fires for a degenerate zero-width window.
	for _, w := range rotation {
		if clock <= w.Start {
			return Status{
				UntilOpen: w.Start - clock,
				StartsNow: clock == w.Start,
			}
		}
	}
	// After the last close: the next opening is tomorrow's first window.
	return Status{
		UntilOpen: (minutesPerDay - clock) + rotation[0].Start,
		Tomorrow:  true,
	}
}

// Progress returns the elapsed share of the window as a truncated percent.
// Zero outside a window or for a zero-length window.
func (s Status) Progress() int {
	d := s.Window.Duration()
	if !s.Inside || d <= 0 {
		return 0
	}
	return s.Elapsed * 100 / d
}

// Phase classifies window progress. The scale runs toward renewal: an early
// phase means the longest wait until the budget refreshes, a late phase
// means the reset is imminent.
type Phase int

const (
	PhaseEarly Phase = iota // 0-33% elapsed
	PhaseMid                // 34-66%
	PhaseLate               // 67-100%
)

func (p Phase) String() string {
	switch p {
	case PhaseEarly:
		return "early"
	case PhaseMid:
		return "mid"
	default:
		return "late"
	}
}

// PhaseFor maps a progress percentage to its phase.
func PhaseFor(progress int) Phase {
	switch {
	case progress <= 33:
		return PhaseEarly
	case progress <= 66:
		return PhaseMid
	default:
		return PhaseLate
	}
}

// FormatMinutes renders a minute count for display: "45m" up to an hour,
// "8h30m" beyond, with the minute part dropped when it is zero.
func FormatMinutes(m int) string {
	if m >= 61 {
		if m%60 == 0 {
			return fmt.Sprintf("%dh", m/60)
		}
		return fmt.Sprintf("%dh%dm", m/60, m%60)
	}
	return fmt.Sprintf("%dm", m)
}
