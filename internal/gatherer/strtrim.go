package gatherer

import (
	"strings"
	"unicode/utf8"

	"github.com/programme-lv/minijudge/api"
)

// TrimToRect keeps at most maxHeight lines of at most maxWidth bytes each,
// marking every cut with "[...]". Lines are never cut inside a UTF-8 rune.
func TrimToRect(s string, maxHeight int, maxWidth int) string {
	if s == "" {
		return ""
	}
	lines := strings.Split(s, "\n")
	cutHeight := len(lines) > maxHeight
	if cutHeight {
		lines = lines[:maxHeight]
	}
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		if len(line) > maxWidth {
			cut := maxWidth
			for cut > 0 && !utf8.RuneStart(line[cut]) {
				cut--
			}
			b.WriteString(line[:cut])
			b.WriteString("[...]")
		} else {
			b.WriteString(line)
		}
	}
	if cutHeight {
		b.WriteString("\n[...]")
	}
	return b.String()
}

// TrimBytes is TrimToRect for raw file previews; nil stays nil.
func TrimBytes(b []byte) *string {
	if b == nil {
		return nil
	}
	s := TrimToRect(string(b), api.MaxRuntimeDataHeight, api.MaxRuntimeDataWidth)
	return &s
}

// TrimRuntimeData returns a copy of data with its streams trimmed for
// transport.
func TrimRuntimeData(data *api.RuntimeData) *api.RuntimeData {
	if data == nil {
		return nil
	}
	trimmed := *data
	trimmed.Stdout = TrimToRect(data.Stdout, api.MaxRuntimeDataHeight, api.MaxRuntimeDataWidth)
	trimmed.Stderr = TrimToRect(data.Stderr, api.MaxRuntimeDataHeight, api.MaxRuntimeDataWidth)
	return &trimmed
}
