// Package budget estimates token and context consumption as bounded
// percentages of fixed allowances. Token counts are never exact here; both
// estimators work from proxies (byte counts and elapsed time).
package budget

import "github.com/pulseline-dev/pulseline/internal/window"

const (
	// bytesPerToken approximates transcript bytes per token.
	bytesPerToken = 4

	// fallbackCap is the display ceiling for estimates derived only from
	// elapsed time; without activity data the line must not claim
	// near-exhaustion.
	fallbackCap = 45

	// noDataFloor is reported at the very start of a window, before either
	// signal exists.
	noDataFloor = 5
)

// Params holds the estimation constants. The activity multiplier and the
// fallback drain rate are heuristics, kept configurable rather than
// re-derived.
type Params struct {
	// TokenBudget is the assumed token allowance per usage window.
	TokenBudget int

	// ContextBudget is the assumed context-window size in tokens.
	ContextBudget int

	// ActivityMultiplier converts activity bytes into estimated tokens.
	ActivityMultiplier int

	// FallbackRate is the assumed drain in tokens per hour when no
	// activity data is available.
	FallbackRate int
}

// DefaultParams returns the stock estimation constants.
func DefaultParams() Params {
	return Params{
		TokenBudget:        200000,
		ContextBudget:      200000,
		ActivityMultiplier: 2,
		FallbackRate:       15000,
	}
}

// Level grades budget consumption. Low consumption is the healthy state;
// the grading runs opposite to window.Phase, which counts down to renewal.
type Level int

const (
	LevelLow    Level = iota // 0-60%
	LevelMedium              // 61-80%
	LevelHigh                // 81-100%
)

func (l Level) String() string {
	switch l {
	case LevelLow:
		return "low"
	case LevelMedium:
		return "medium"
	default:
		return "high"
	}
}

// LevelFor maps a consumption percentage to its level.
func LevelFor(pct int) Level {
	switch {
	case pct <= 60:
		return LevelLow
	case pct <= 80:
		return LevelMedium
	default:
		return LevelHigh
	}
}

// TokenPercent estimates how much of the window's token budget has been
// consumed. The second return is false outside a window, where no estimate
// is produced. Activity bytes, when present, drive the estimate directly;
// otherwise a linear drain on elapsed time stands in, capped at fallbackCap
// percent.
func TokenPercent(st window.Status, activityBytes int64, p Params) (int, bool) {
	if !st.Inside {
		return 0, false
	}
	if activityBytes > 0 {
		tokens := activityBytes * int64(p.ActivityMultiplier)
		return clampPercent(tokens, int64(p.TokenBudget)), true
	}
	if st.Elapsed <= 0 {
		return noDataFloor, true
	}
	tokens := int64(st.Elapsed) * int64(p.FallbackRate) / 60
	pct := clampPercent(tokens, int64(p.TokenBudget))
	if pct > fallbackCap {
		pct = fallbackCap
	}
	return pct, true
}

// ContextPercent estimates context consumption from the transcript size.
// It always produces a value; a missing transcript reads as zero.
func ContextPercent(transcriptBytes int64, p Params) int {
	return clampPercent(transcriptBytes/bytesPerToken, int64(p.ContextBudget))
}

// clampPercent scales tokens against a budget into [0,100]. Comparing
// before multiplying keeps arbitrarily large inputs from overflowing.
func clampPercent(tokens, budget int64) int {
	if tokens <= 0 || budget <= 0 {
		return 0
	}
	if tokens >= budget {
		return 100
	}
	return int(tokens * 100 / budget)
}
