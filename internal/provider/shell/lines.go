package shell

import (
	"strings"
)

// containsLine reports whether content has the exact line. Surrounding
// whitespace on a line is ignored so hand-edited files still match.
func containsLine(content, line string) bool {
	want := strings.TrimSpace(line)
	for _, l := range strings.Split(content, "\n") {
		if strings.TrimSpace(l) == want {
			return true
		}
	}
	return false
}

// appendChunk returns the bytes to append so content ends with the line
// on its own row, repairing a missing trailing newline first. Empty when
// the line is already present, keeping the append guarded.
func appendChunk(content, line string) string {
	if containsLine(content, line) {
		return ""
	}
	chunk := line + "\n"
	if content != "" && !strings.HasSuffix(content, "\n") {
		chunk = "\n" + chunk
	}
	return chunk
}
