package gazetteer

import (
	"fmt"
	"math"
	"sort"

	"github.com/agnivade/levenshtein"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/xrash/smetrics"

	"yukbul/internal/core/normalize"
)

// maxSuggest caps what one memo entry keeps
const maxSuggest = 10

// Suggestion is a fuzzy match for a name that did not resolve
type Suggestion struct {
	Name     string  `json:"name"`
	Province string  `json:"province"`
	Kind     string  `json:"kind"`
	Score    float64 `json:"score"`
}

type suggestCache struct {
	c *lru.Cache[string, []Suggestion]
}

func newSuggestCache(size int) (*suggestCache, error) {
	c, err := lru.New[string, []Suggestion](size)
	if err != nil {
		return nil, fmt.Errorf("gazetteer: suggest cache: %w", err)
	}
	return &suggestCache{c: c}, nil
}

// Suggest ranks table names that look like input, best first.
// Scores are the better of Jaro-Winkler and length normalized Levenshtein;
// short inputs need a closer match than long ones. Results are memoized.
func (g *Gazetteer) Suggest(input string, n int) []Suggestion {
	q := normalize.Normalize(input)
	if q == "" || n <= 0 {
		return nil
	}

	all, ok := g.suggest.c.Get(q)
	if !ok {
		all = g.rank(q)
		g.suggest.c.Add(q, all)
	}
	if n > len(all) {
		n = len(all)
	}
	out := make([]Suggestion, n)
	copy(out, all[:n])
	return out
}

func (g *Gazetteer) rank(q string) []Suggestion {
	type scored struct {
		idx   int
		score float64
	}
	var hits []scored
	for i, nm := range g.names {
		if s := similarity(q, nm.Norm); passes(q, s) {
			hits = append(hits, scored{idx: i, score: s})
		}
	}
	sort.SliceStable(hits, func(a, b int) bool { return hits[a].score > hits[b].score })
	if len(hits) > maxSuggest {
		hits = hits[:maxSuggest]
	}
	out := make([]Suggestion, len(hits))
	for i, h := range hits {
		nm := g.names[h.idx]
		out[i] = Suggestion{
			Name:     nm.Display,
			Province: nm.Province,
			Kind:     nm.Kind.String(),
			Score:    math.Round(h.score*1000) / 1000,
		}
	}
	return out
}

func similarity(a, b string) float64 {
	jw := smetrics.JaroWinkler(a, b, 0.7, 4)
	dist := levenshtein.ComputeDistance(a, b)
	longest := math.Max(float64(len(a)), float64(len(b)))
	lev := 1 - float64(dist)/longest
	return math.Max(jw, lev)
}

func passes(q string, score float64) bool {
	if len(q) <= 10 {
		return score > 0.85
	}
	return score > 0.7
}
