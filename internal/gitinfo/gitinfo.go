// Package gitinfo reads branch and working-tree state through the git CLI.
package gitinfo

import (
	"context"
	"os"
	"os/exec"
	"strings"
)

// Info describes the repository containing a directory. A zero Info means
// no repository was found or git did not answer in time.
type Info struct {
	Branch string
	Dirty  bool
}

// gitBin returns the path to the git executable.
// Searches PATH first, then falls back to well-known locations.
func gitBin() string {
	if p, err := exec.LookPath("git"); err == nil {
		return p
	}
	for _, candidate := range []string{
		"/usr/bin/git",
		"/usr/local/bin/git",
		"/opt/homebrew/bin/git",
	} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return "git" // last resort, will fail with a clear error
}

// runGit executes a git command in the given directory and returns combined output.
func runGit(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, gitBin(), args...)
	if dir != "" {
		cmd.Dir = dir
	}
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// Inspect queries the branch and working-tree state for dir. The context
// bounds the git invocations; any failure or timeout degrades to a zero
// Info rather than an error.
func Inspect(ctx context.Context, dir string) Info {
	out, err := runGit(ctx, dir, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return Info{}
	}
	branch := strings.TrimSpace(out)
	if branch == "HEAD" {
		// Detached head: show the short commit id instead.
		out, err = runGit(ctx, dir, "rev-parse", "--short", "HEAD")
		if err != nil {
			return Info{}
		}
		branch = strings.TrimSpace(out)
	}
	if branch == "" {
		return Info{}
	}

	status, err := runGit(ctx, dir, "status", "--porcelain")
	if err != nil {
		// Branch is known but tree state is not; report it clean.
		return Info{Branch: branch}
	}
	return Info{Branch: branch, Dirty: strings.TrimSpace(status) != ""}
}
