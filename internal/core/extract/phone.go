package extract

import (
	"fmt"
	"regexp"
	"strings"

	"yukbul/internal/core/normalize"
)

// PhoneMode selects how digits are recognized as a phone number
type PhoneMode string

const (
	// PhoneStrict accepts 05XXXXXXXXX or +905XXXXXXXXX written without separators
	PhoneStrict PhoneMode = "strict"
	// PhoneTolerant also accepts the same numbers split by spaces, dashes, dots or parentheses
	PhoneTolerant PhoneMode = "tolerant"
	// PhoneLoose accepts any run of 8 or more digits with an optional leading +
	PhoneLoose PhoneMode = "loose"
)

// ParsePhoneMode maps a config string to a PhoneMode, empty means tolerant
func ParsePhoneMode(s string) (PhoneMode, error) {
	switch m := PhoneMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return PhoneTolerant, nil
	case PhoneStrict, PhoneTolerant, PhoneLoose:
		return m, nil
	}
	return "", fmt.Errorf("extract: unknown phone mode %q", s)
}

var (
	strictPhone  = regexp.MustCompile(`(?:\+90|0)5\d{9}`)
	compactPhone = regexp.MustCompile(`(?:90|0)5\d{9}`)
	loosePhone   = regexp.MustCompile(`\+?\d{8,}`)
)

// ContainsPhone reports whether text carries a phone number under mode
func ContainsPhone(text string, mode PhoneMode) bool {
	switch mode {
	case PhoneLoose:
		return loosePhone.MatchString(text)
	case PhoneStrict:
		return len(strictMatches(text, 1)) > 0
	default:
		if len(strictMatches(text, 1)) > 0 {
			return true
		}
		return len(tolerantMatches(text, 1)) > 0
	}
}

// FindPhones returns the mobile numbers in text as +905XXXXXXXXX without
// repeats, unseparated ones first. Separated forms are found regardless of mode.
func FindPhones(text string) []string {
	var out []string
	seen := map[string]struct{}{}
	push := func(raw string) {
		c := canonicalPhone(raw)
		if _, dup := seen[c]; dup {
			return
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	for _, m := range strictMatches(text, -1) {
		push(m)
	}
	for _, m := range tolerantMatches(text, -1) {
		push(m)
	}
	return out
}

// strictMatches finds strict numbers not glued to other digits
func strictMatches(text string, limit int) []string {
	return scan(strictPhone, text, limit, func(s, e int) bool { return digitBounded(text, s, e) })
}

// tolerantMatches finds numbers written with in-line separators. The digit
// boundary is checked on the raw text, so a number hidden inside a longer
// digit run is rejected even when separators sit around it.
func tolerantMatches(text string, limit int) []string {
	compact, at := compactPhoneText(text)
	return scan(compactPhone, compact, limit, func(s, e int) bool {
		return digitBounded(text, at[s], at[e-1]+1)
	})
}

// scan collects matches of re in s accepted by ok. A rejected candidate only
// advances one byte so an overlapping valid number is still seen.
func scan(re *regexp.Regexp, s string, limit int, ok func(start, end int) bool) []string {
	var out []string
	for off := 0; off < len(s); {
		loc := re.FindStringIndex(s[off:])
		if loc == nil {
			break
		}
		start, end := off+loc[0], off+loc[1]
		if ok(start, end) {
			out = append(out, s[start:end])
			if limit > 0 && len(out) >= limit {
				break
			}
			off = end
			continue
		}
		off = start + 1
	}
	return out
}

// compactPhoneText drops in-line separators and returns, per kept byte, its
// offset in text. Line breaks are kept: a number never spans two lines.
func compactPhoneText(text string) (string, []int) {
	var b strings.Builder
	b.Grow(len(text))
	at := make([]int, 0, len(text))
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case ' ', '\t', '-', '(', ')', '.', '+':
			continue
		}
		b.WriteByte(text[i])
		at = append(at, i)
	}
	return b.String(), at
}

func digitBounded(s string, start, end int) bool {
	if start > 0 && isDigit(s[start-1]) {
		return false
	}
	if end < len(s) && isDigit(s[end]) {
		return false
	}
	return true
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// canonicalPhone turns 05XXXXXXXXX, 905XXXXXXXXX or +905XXXXXXXXX into +905XXXXXXXXX
func canonicalPhone(raw string) string {
	d := normalize.Digits(raw)
	if strings.HasPrefix(d, "0") {
		d = "90" + d[1:]
	}
	return "+" + d
}
