package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
)

// defaultSettingsPath returns the default path to Claude Code's settings.json.
func defaultSettingsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".claude", "settings.json")
}

// statusLineEntry builds the settings value cc-line installs.
func statusLineEntry(command string) map[string]any {
	return map[string]any{
		"type":    "command",
		"command": command,
		// float64, so the entry compares equal to its decoded form
		// (encoding/json decodes all numbers as float64).
		"padding": float64(0),
	}
}

// Merge reads ~/.claude/settings.json (or the path in opts), sets the
// "statusLine" block to run cc-line, and writes the file back
// atomically (temp file + rename).
//
// Behaviour:
//   - File not found: creates a new file with just the statusLine block.
//   - Malformed JSON: creates a .bak backup and returns an error.
//   - Already configured identically: returns MergeAlreadyConfigured.
//   - A different statusLine present: skipped with a warning unless
//     Force is set.
func Merge(opts MergeOptions) MergeOutput {
	settingsPath := opts.SettingsPath
	if settingsPath == "" {
		settingsPath = defaultSettingsPath()
	}
	command := opts.Command
	if command == "" {
		command = "cc-line"
	}
	want := statusLineEntry(command)

	data, err := os.ReadFile(settingsPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return createNewSettingsFile(settingsPath, want)
		}
		if errors.Is(err, fs.ErrPermission) {
			return MergeOutput{
				Result: MergeError,
				Err:    fmt.Errorf("permission denied reading %s", settingsPath),
			}
		}
		return MergeOutput{
			Result: MergeError,
			Err:    fmt.Errorf("reading settings file: %w", err),
		}
	}

	// Detect indentation before parsing.
	indent := detectIndent(data)

	var settings map[string]any
	if err := json.Unmarshal(data, &settings); err != nil {
		// Malformed JSON: create backup.
		bakPath := settingsPath + ".bak"
		if bakErr := os.WriteFile(bakPath, data, 0644); bakErr != nil {
			return MergeOutput{
				Result:   MergeError,
				Err:      fmt.Errorf("settings.json contains invalid JSON and backup failed: %w", bakErr),
				Messages: []string{fmt.Sprintf("Failed to create backup at %s", bakPath)},
			}
		}
		return MergeOutput{
			Result:   MergeError,
			Err:      fmt.Errorf("settings.json contains invalid JSON (backup saved to %s)", bakPath),
			Messages: []string{fmt.Sprintf("Backup saved to %s", bakPath)},
		}
	}

	if existing, ok := settings["statusLine"]; ok {
		if reflect.DeepEqual(existing, want) {
			return MergeOutput{
				Result:   MergeAlreadyConfigured,
				Messages: []string{"statusLine is already configured for cc-line"},
			}
		}
		if !opts.Force {
			return MergeOutput{
				Result: MergeSkipped,
				Warnings: []string{
					"Warning: a different statusLine is already configured, not overwriting (use -force)",
				},
			}
		}
	}

	settings["statusLine"] = want

	if err := writeSettingsAtomic(settingsPath, settings, indent); err != nil {
		return MergeOutput{
			Result: MergeError,
			Err:    fmt.Errorf("writing settings file: %w", err),
		}
	}

	return MergeOutput{
		Result:   MergeSuccess,
		Messages: []string{fmt.Sprintf("Set statusLine command to %q", command)},
	}
}

// createNewSettingsFile creates a new settings.json holding only the
// statusLine block.
func createNewSettingsFile(path string, want map[string]any) MergeOutput {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return MergeOutput{
				Result: MergeError,
				Err:    fmt.Errorf("permission denied creating directory %s", dir),
			}
		}
		return MergeOutput{
			Result: MergeError,
			Err:    fmt.Errorf("creating directory %s: %w", dir, err),
		}
	}

	settings := map[string]any{
		"statusLine": want,
	}

	indent := "  " // Default 2 spaces for new files.
	if err := writeSettingsAtomic(path, settings, indent); err != nil {
		return MergeOutput{
			Result: MergeError,
			Err:    fmt.Errorf("creating settings file: %w", err),
		}
	}

	return MergeOutput{
		Result:   MergeSuccess,
		Messages: []string{fmt.Sprintf("Created %s with a statusLine block", path)},
	}
}

// writeSettingsAtomic writes the settings map through a temp file in
// the target directory followed by a rename, keeping the existing
// file's permissions.
func writeSettingsAtomic(path string, settings map[string]any, indent string) error {
	data, err := json.MarshalIndent(settings, "", indent)
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	data = append(data, '\n')

	// The temp file must share the target's directory for the rename.
	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, ".settings-*.json.tmp")
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return fmt.Errorf("permission denied writing to %s", dir)
		}
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		if tmpPath != "" {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if info, err := os.Stat(path); err == nil {
		_ = os.Chmod(tmpPath, info.Mode())
	} else {
		_ = os.Chmod(tmpPath, 0644)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming temp file to %s: %w", path, err)
	}
	tmpPath = "" // rename succeeded, nothing to remove

	return nil
}
