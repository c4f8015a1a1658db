// Package extract decides whether a chat message is a freight listing and
// pulls the places, phone numbers and content hash out of it
package extract

import (
	"sort"

	"yukbul/internal/core/gazetteer"
	"yukbul/internal/core/normalize"
)

// Match is one place found in normalized text, spans are [Start,End)
type Match struct {
	Name  gazetteer.Name
	Start int
	End   int
}

// Extractor finds gazetteer names in text. It is immutable once built and
// safe for concurrent use.
type Extractor struct {
	names []gazetteer.Name
	ac    *automaton
}

// NewExtractor compiles the vocabulary of g into a scanner
func NewExtractor(g *gazetteer.Gazetteer) *Extractor {
	names := g.Names()
	a := newAutomaton()
	for i, n := range names {
		a.add(n.Norm, i)
	}
	a.build()
	return &Extractor{names: names, ac: a}
}

// Matches returns the first boundary delimited occurrence of every name in an
// already normalized string, ordered by start. At the same start the longer
// name comes first.
func (e *Extractor) Matches(norm string) []Match {
	if norm == "" {
		return nil
	}
	first := make(map[int]int) // name id -> index into out
	var out []Match
	e.ac.each(norm, func(start, end, id int) {
		if !bounded(norm, start, end) {
			return
		}
		if _, seen := first[id]; seen {
			return
		}
		first[id] = len(out)
		out = append(out, Match{Name: e.names[id], Start: start, End: end})
	})
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].End > out[j].End
	})
	return out
}

// bounded reports whether [start,end) sits between spaces or the text edges
func bounded(norm string, start, end int) bool {
	if start > 0 && norm[start-1] != ' ' {
		return false
	}
	if end < len(norm) && norm[end] != ' ' {
		return false
	}
	return true
}

// ExtractCities lists the places named anywhere in text, in order of first
// appearance, each normalized form at most once
func (e *Extractor) ExtractCities(text string) []string {
	return names(e.Matches(normalize.Normalize(text)))
}

// ExtractLinePairs runs ExtractCities per non blank line. Lines without a
// place are left out, so the result may be shorter than the line count.
func (e *Extractor) ExtractLinePairs(text string) [][]string {
	var out [][]string
	for _, line := range normalize.Lines(text) {
		if found := names(e.Matches(normalize.Normalize(line))); len(found) > 0 {
			out = append(out, found)
		}
	}
	return out
}

func names(ms []Match) []string {
	if len(ms) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(ms))
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		if _, dup := seen[m.Name.Norm]; dup {
			continue
		}
		seen[m.Name.Norm] = struct{}{}
		out = append(out, m.Name.Display)
	}
	return out
}
