// Package normalize folds hostile chat text into a comparable ASCII form
// Pipeline order
// 1 Sanitize controls and drop invalid UTF-8
// 2 Static fold table for Turkish letters and the small-capital block
// 3 NFKD, strip combining marks and format chars, width fold, case fold
// 4 Transliterate leftover non-ASCII letters
// 5 Every run outside [a-z0-9] becomes one space, trimmed
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Normalizer is concurrency safe when used with the pool below
type Normalizer struct{}

var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKD,                          // split precomposed letters so marks can go
			runes.Remove(runes.In(unicode.Mn)), // strip combining marks
			runes.Remove(runes.In(unicode.Cf)), // strip format chars ZWJ ZWNJ FEFF etc
			width.Fold,                         // fullwidth forms to ASCII
			cases.Fold(),
		)
	},
}

var std = New()

// New constructs a Normalizer
func New() *Normalizer { return &Normalizer{} }

// Normalize is the package level shortcut for New().Normalize
func Normalize(s string) string { return std.Normalize(s) }

// Normalize returns the normalized form of s. The result only holds [a-z0-9 ]
// with single spaces and no edge spaces, so Normalize(Normalize(s)) == Normalize(s)
func (n *Normalizer) Normalize(s string) string {
	if s == "" {
		return ""
	}

	s = Sanitize(s)
	s = strings.ToValidUTF8(s, "")

	s = foldTable(s)

	tr := chainPool.Get().(transform.Transformer)
	ns, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		ns = s
	}

	return asciiWords(ns)
}

// asciiWords keeps [a-z0-9], lowercases A-Z, transliterates other letters and
// turns everything else into single separating spaces
func asciiWords(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pending := false
	emit := func(c byte) {
		if pending && b.Len() > 0 {
			b.WriteByte(' ')
		}
		pending = false
		b.WriteByte(c)
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			emit(byte(r))
		case r >= 'A' && r <= 'Z':
			emit(byte(r - 'A' + 'a'))
		case r > unicode.MaxASCII && unicode.IsLetter(r):
			tl := unidecode.Unidecode(string(r))
			wrote := false
			for i := 0; i < len(tl); i++ {
				c := tl[i]
				switch {
				case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
					emit(c)
					wrote = true
				case c >= 'A' && c <= 'Z':
					emit(c - 'A' + 'a')
					wrote = true
				}
			}
			if !wrote {
				pending = true
			}
		default:
			pending = true
		}
	}
	return b.String()
}

// Compact drops every space from an already normalized string
func Compact(norm string) string {
	if strings.IndexByte(norm, ' ') < 0 {
		return norm
	}
	return strings.ReplaceAll(norm, " ", "")
}
