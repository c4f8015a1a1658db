package normalize

import "strings"

// Lines splits raw text on runs of \n and \r, trims every line and drops the
// blank ones. Order follows the text.
func Lines(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.FieldsFunc(raw, func(r rune) bool { return r == '\n' || r == '\r' })
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// NormalizedLines is Lines followed by Normalize, keeping lines that still
// carry text after folding
func NormalizedLines(raw string) []string {
	lines := Lines(raw)
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if n := Normalize(l); n != "" {
			out = append(out, n)
		}
	}
	return out
}
