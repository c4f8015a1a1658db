// Package query turns a short free text message such as "İstanbul'dan
// Ankara'ya" into an origin and an optional destination
package query

import (
	"errors"
	"sort"
	"strings"

	"yukbul/internal/core/gazetteer"
	"yukbul/internal/core/normalize"
)

// MaxWords bounds how long a route query may be
const MaxWords = 5

// ErrNotAQuery means the text does not read as a route query
var ErrNotAQuery = errors.New("query: not a route query")

// Query is a parsed route query. Destination is empty for a single place.
type Query struct {
	Origin      string   `json:"origin"`
	Destination string   `json:"destination,omitempty"`
	Places      []string `json:"places"`
}

// Parser recognizes route queries against a gazetteer
type Parser struct {
	g *gazetteer.Gazetteer
}

// New returns a Parser over g
func New(g *gazetteer.Gazetteer) *Parser {
	if g == nil {
		panic("query.New: nil Gazetteer")
	}
	return &Parser{g: g}
}

// standalone case endings left over once normalize splits "Bolu'dan"
var detached = map[string]struct{}{
	"dan": {}, "den": {}, "tan": {}, "ten": {},
	"a": {}, "e": {}, "ya": {}, "ye": {},
}

// glued endings, longest first
var glued = []string{"dan", "den", "tan", "ten", "ya", "ye", "a", "e"}

// Parse extracts places in order. Two word names are tried before single
// words. More than one unrecognized word longer than two letters means the
// text is chatter, not a query.
func (p *Parser) Parse(text string) (Query, error) {
	var words []string
	for _, w := range strings.Fields(normalize.Normalize(text)) {
		if _, ok := detached[w]; ok {
			continue
		}
		words = append(words, p.stem(w))
	}
	if len(words) == 0 || len(words) > MaxWords {
		return Query{}, ErrNotAQuery
	}

	type hit struct {
		name string
		pos  int
	}
	var found []hit
	used := make([]bool, len(words))

	for i := 0; i+1 < len(words); i++ {
		if used[i] || used[i+1] {
			continue
		}
		if n, ok := p.g.Lookup(words[i] + " " + words[i+1]); ok {
			found = append(found, hit{n.Display, i})
			used[i], used[i+1] = true, true
		}
	}
	for i, w := range words {
		if used[i] {
			continue
		}
		if n, ok := p.g.Lookup(w); ok {
			found = append(found, hit{n.Display, i})
			used[i] = true
		}
	}

	leftover := 0
	for i, w := range words {
		if !used[i] && len(w) > 2 {
			leftover++
		}
	}
	if len(found) == 0 || leftover > 1 {
		return Query{}, ErrNotAQuery
	}

	sort.Slice(found, func(a, b int) bool { return found[a].pos < found[b].pos })
	q := Query{Origin: found[0].name}
	for _, h := range found {
		q.Places = append(q.Places, h.name)
	}
	if len(found) > 1 {
		q.Destination = found[1].name
	}
	return q, nil
}

// stem drops a glued case ending when the word is not a place but its stem is
func (p *Parser) stem(w string) string {
	if _, ok := p.g.Lookup(w); ok {
		return w
	}
	for _, suf := range glued {
		if len(w) > len(suf)+1 && strings.HasSuffix(w, suf) {
			if _, ok := p.g.Lookup(w[:len(w)-len(suf)]); ok {
				return w[:len(w)-len(suf)]
			}
		}
	}
	return w
}
