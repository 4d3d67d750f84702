// Package project names the project type from marker files and measures
// recent write activity in the session artifact directories.
package project

import (
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// markers pair a marker file with the project-type tag it proves.
// Checked in order; the first match wins.
var markers = []struct {
	file string
	tag  string
}{
	{"go.mod", "go"},
	{"package.json", "node"},
	{"Cargo.toml", "rust"},
	{"pyproject.toml", "python"},
	{"requirements.txt", "python"},
	{"pom.xml", "java"},
	{"build.gradle", "java"},
	{"Gemfile", "ruby"},
	{"composer.json", "php"},
	{"mix.exs", "elixir"},
}

// Classify returns a short tag for the project rooted at dir, or "" when no
// marker file is present.
func Classify(dir string) string {
	for _, m := range markers {
		if _, err := os.Stat(filepath.Join(dir, m.file)); err == nil {
			return m.tag
		}
	}
	return ""
}

// ActivityDirs lists the session artifact directories under home that count
// toward the activity estimate.
func ActivityDirs(home string) []string {
	return []string{
		filepath.Join(home, ".claude", "projects"),
		filepath.Join(home, ".claude", "todos"),
		filepath.Join(home, ".claude", "shell-snapshots"),
	}
}

// ScanActivity sums the sizes of files under dirs modified after since.
// Scanning is best-effort: unreadable directories and files contribute
// nothing.
func ScanActivity(dirs []string, since time.Time) int64 {
	var total int64
	for _, dir := range dirs {
		_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return nil
			}
			if info.ModTime().After(since) {
				total += info.Size()
			}
			return nil
		})
	}
	return total
}
