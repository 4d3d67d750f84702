// Package payload extracts the renderer's inputs from the JSON snapshot the
// host writes on stdin. Extraction is tolerant: any missing, mistyped, or
// unparseable field falls back to its default.
package payload

import "github.com/tidwall/gjson"

// DefaultModel labels the session when the host omits the model name.
const DefaultModel = "Claude"

// DefaultOutputStyle is the style name that keeps the style segment off
// the line.
const DefaultOutputStyle = "default"

// Snapshot is the session state one render consumes.
type Snapshot struct {
	// WorkDir is empty when the host omitted it; callers fall back to the
	// process working directory.
	WorkDir        string
	Model          string
	OutputStyle    string
	TranscriptPath string
	SessionID      string
}

// StringField returns the string at path inside data, or def when the
// document does not parse or the field is missing, empty, or not a string.
func StringField(data []byte, path, def string) string {
	if len(data) == 0 || !gjson.ValidBytes(data) {
		return def
	}
	v := gjson.GetBytes(data, path)
	if v.Type != gjson.String || v.Str == "" {
		return def
	}
	return v.Str
}

// Parse reads the snapshot fields the renderer uses. The working directory
// prefers workspace.current_dir and falls back to the top-level cwd field.
func Parse(data []byte) Snapshot {
	wd := StringField(data, "workspace.current_dir", "")
	if wd == "" {
		wd = StringField(data, "cwd", "")
	}
	return Snapshot{
		WorkDir:        wd,
		Model:          StringField(data, "model.display_name", DefaultModel),
		OutputStyle:    StringField(data, "output_style.name", DefaultOutputStyle),
		TranscriptPath: StringField(data, "transcript_path", ""),
		SessionID:      StringField(data, "session_id", ""),
	}
}
