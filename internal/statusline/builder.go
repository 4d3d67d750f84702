package statusline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pulseline-dev/pulseline/internal/budget"
	"github.com/pulseline-dev/pulseline/internal/config"
	"github.com/pulseline-dev/pulseline/internal/gitinfo"
	"github.com/pulseline-dev/pulseline/internal/payload"
	"github.com/pulseline-dev/pulseline/internal/project"
	"github.com/pulseline-dev/pulseline/internal/window"
)

// Clock supplies the wall-clock reading for a render.
type Clock interface {
	Now() time.Time
}

// RepoInspector reports version-control state for a directory.
type RepoInspector interface {
	Inspect(ctx context.Context, dir string) gitinfo.Info
}

// ActivityScanner totals bytes written to session artifacts after a time.
type ActivityScanner interface {
	SizeSince(since time.Time) int64
}

// Builder assembles the status line from one session snapshot. The
// collaborator fields let tests substitute fixed clocks and repository
// state for the real ones.
type Builder struct {
	Plain   bool
	Debug   bool
	Timeout time.Duration
	Params  budget.Params

	Clock    Clock
	Repo     RepoInspector
	Scanner  ActivityScanner
	Classify func(dir string) string
}

// NewBuilder wires a Builder against the real clock, repository, and
// filesystem.
func NewBuilder(cfg *config.Config) *Builder {
	return &Builder{
		Plain:   cfg.Plain,
		Debug:   cfg.Debug,
		Timeout: cfg.Timeout(),
		Params: budget.Params{
			TokenBudget:        cfg.TokenBudget,
			ContextBudget:      cfg.ContextBudget,
			ActivityMultiplier: cfg.ActivityMultiplier,
			FallbackRate:       cfg.FallbackRate,
		},
		Clock:    systemClock{},
		Repo:     gitInspector{},
		Scanner:  artifactScanner{dirs: cfg.ScanDirs},
		Classify: project.Classify,
	}
}

// Build renders the status line. Every signal degrades independently: a
// failed collaborator drops or zeroes its own segment and the rest of the
// line still renders.
func (b *Builder) Build(ctx context.Context, snap payload.Snapshot) string {
	now := b.Clock.Now()
	clock := now.Hour()*60 + now.Minute()
	st := window.Locate(clock)
	b.trace("clock %d (%s), inside=%v", clock, now.Format("15:04"), st.Inside)
	b.trace("model %q session %q", snap.Model, snap.SessionID)

	dec := Decorator{Plain: b.Plain}
	parts := make([]string, 0, 5)

	transcript := fileSize(snap.TranscriptPath)
	ctxPct := budget.ContextPercent(transcript, b.Params)
	b.trace("transcript %s bytes, ctx %d%% (%s)", humanize.Comma(transcript), ctxPct, budget.LevelFor(ctxPct))
	parts = append(parts, dec.Decorate(budgetSeverity(budget.LevelFor(ctxPct)), fmt.Sprintf("ctx %d%%", ctxPct)))

	if st.Inside {
		activity := b.Scanner.SizeSince(windowStart(now, st.Window))
		b.trace("activity %s since window start", humanize.IBytes(uint64(activity)))
		if pct, ok := budget.TokenPercent(st, activity, b.Params); ok {
			parts = append(parts, dec.Decorate(budgetSeverity(budget.LevelFor(pct)), fmt.Sprintf("tok %d%%", pct)))
		}
	}

	parts = append(parts, b.windowSegment(dec, st))
	parts = append(parts, b.projectLabel(ctx, snap.WorkDir))

	if snap.OutputStyle != "" && snap.OutputStyle != payload.DefaultOutputStyle {
		parts = append(parts, "style "+snap.OutputStyle)
	}

	return Compose(parts)
}

// windowSegment renders the countdown. Inside a window it carries the phase
// severity; outside it is informational and undecorated.
func (b *Builder) windowSegment(dec Decorator, st window.Status) string {
	if st.Inside {
		label := fmt.Sprintf("win %s left", window.FormatMinutes(st.Remaining))
		return dec.Decorate(phaseSeverity(window.PhaseFor(st.Progress())), label)
	}
	if st.StartsNow {
		return "win starts now"
	}
	label := "win opens " + window.FormatMinutes(st.UntilOpen)
	if st.Tomorrow {
		label += " (tomorrow)"
	}
	return label
}

// projectLabel is never absent: it degrades from "name(tag) branch*" down
// to the bare directory name.
func (b *Builder) projectLabel(ctx context.Context, dir string) string {
	name := filepath.Base(dir)
	if tag := b.Classify(dir); tag != "" {
		name += "(" + tag + ")"
	}

	timeout := b.Timeout
	if timeout <= 0 {
		timeout = time.Second
	}
	rctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	info := b.Repo.Inspect(rctx, dir)
	if info.Branch == "" {
		return name
	}
	label := name + " " + info.Branch
	if info.Dirty {
		label += "*"
	}
	return label
}

func (b *Builder) trace(format string, args ...any) {
	if !b.Debug {
		return
	}
	fmt.Fprintf(os.Stderr, "[pulseline] "+format+"\n", args...)
}

// fileSize returns the size of the file at path, or zero when it cannot
// be read.
func fileSize(path string) int64 {
	if path == "" {
		return 0
	}
	fi, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return fi.Size()
}

// windowStart pins the window's opening minute to the render's date.
func windowStart(now time.Time, w window.Window) time.Time {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return midnight.Add(time.Duration(w.Start) * time.Minute)
}

// ---------- real collaborators ----------

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

type gitInspector struct{}

func (gitInspector) Inspect(ctx context.Context, dir string) gitinfo.Info {
	return gitinfo.Inspect(ctx, dir)
}

type artifactScanner struct {
	dirs []string
}

func (s artifactScanner) SizeSince(since time.Time) int64 {
	dirs := s.dirs
	if len(dirs) == 0 {
		home, err := os.UserHomeDir()
		if err != nil {
			return 0
		}
		dirs = project.ActivityDirs(home)
	}
	return project.ScanActivity(dirs, since)
}
