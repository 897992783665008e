package settings

import "strings"

// detectIndent returns the indentation string the JSON document uses,
// taken from its first indented line. Documents with no indented lines
// (including empty ones) get the two-space default.
func detectIndent(data []byte) string {
	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimLeft(line, " \t")
		if len(trimmed) > 0 && len(trimmed) < len(line) {
			return line[:len(line)-len(trimmed)]
		}
	}
	return "  "
}
