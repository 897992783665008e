// Package settings installs cc-line as the statusLine command in
// Claude Code's settings.json, editing the file in place while
// preserving its formatting and everything else in it.
package settings

// MergeOptions controls the settings merge.
type MergeOptions struct {
	// SettingsPath overrides the settings.json location (tests).
	// Empty means ~/.claude/settings.json.
	SettingsPath string

	// Command is the statusline command to install. Empty means
	// "cc-line".
	Command string

	// Force replaces an existing, different statusLine entry instead
	// of leaving it alone with a warning.
	Force bool
}

// MergeResult classifies the outcome of a merge.
type MergeResult int

const (
	MergeSuccess MergeResult = iota
	MergeAlreadyConfigured
	MergeSkipped
	MergeError
)

// MergeOutput is the full outcome of a merge: the result class plus
// user-facing messages and warnings.
type MergeOutput struct {
	Result   MergeResult
	Err      error
	Messages []string
	Warnings []string
}
