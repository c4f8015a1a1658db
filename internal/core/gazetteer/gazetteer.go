// Package gazetteer resolves Turkish province and district names.
// The table is embedded, loaded once and immutable afterwards, so a
// *Gazetteer is safe for concurrent use.
package gazetteer

import (
	_ "embed"
	"fmt"
	"slices"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"gopkg.in/yaml.v3"

	"yukbul/internal/core/normalize"
)

//go:embed data/provinces.yaml
var embedded []byte

// Kind tells what a name denotes
type Kind uint8

const (
	// KindProvince is a province name
	KindProvince Kind = iota + 1
	// KindAlias is an alternative province name (antep, urfa)
	KindAlias
	// KindDistrict is a district name
	KindDistrict
)

func (k Kind) String() string {
	switch k {
	case KindProvince:
		return "province"
	case KindAlias:
		return "alias"
	case KindDistrict:
		return "district"
	}
	return "unknown"
}

// Name is one entry of the scan vocabulary
type Name struct {
	Display  string // as written in the table
	Norm     string // normalize.Normalize(Display)
	Province string // owning province display name
	Kind     Kind
}

// Resolution is what a user typed place expands to.
// Province is empty when the input is not a province, alias or district.
type Resolution struct {
	Province string   `json:"province,omitempty"`
	AllNames []string `json:"all_names"`
}

// Known reports whether the input resolved to a province
func (r Resolution) Known() bool { return r.Province != "" }

type rawTable struct {
	Provinces []rawProvince `yaml:"provinces"`
}

type rawProvince struct {
	Name      string   `yaml:"name"`
	Aliases   []string `yaml:"aliases"`
	Districts []string `yaml:"districts"`
}

type province struct {
	name     string
	allNames []string // province, aliases, districts; unique by normalized form
}

// Gazetteer is the compiled province and district table
type Gazetteer struct {
	provinces []province
	byNorm    map[string]int // normalized name -> index into names
	names     []Name
	provIdx   map[string]int // province display -> index into provinces

	suggest  *suggestCache
	resolved *lru.Cache[string, Resolution] // raw input -> result
}

var (
	defOnce sync.Once
	def     *Gazetteer
	defErr  error
)

// Default returns the gazetteer built from the embedded table, loading it on first use
func Default() *Gazetteer {
	defOnce.Do(func() { def, defErr = Load() })
	if defErr != nil {
		panic(fmt.Errorf("gazetteer: embedded table: %w", defErr))
	}
	return def
}

// Load compiles the embedded table
func Load(opts ...Option) (*Gazetteer, error) { return Parse(embedded, opts...) }

// Parse compiles a YAML table with the same shape as the embedded one.
// Table order decides ties: provinces and aliases beat districts, and a
// district shared by several provinces belongs to the first one listed.
func Parse(data []byte, opts ...Option) (*Gazetteer, error) {
	o := options{cacheSize: 1024}
	for _, fn := range opts {
		fn(&o)
	}

	var raw rawTable
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("gazetteer: parse: %w", err)
	}
	if len(raw.Provinces) == 0 {
		return nil, fmt.Errorf("gazetteer: table has no provinces")
	}

	g := &Gazetteer{
		byNorm:  make(map[string]int, 1200),
		provIdx: make(map[string]int, len(raw.Provinces)),
	}

	add := func(display, prov string, kind Kind) bool {
		n := normalize.Normalize(display)
		if n == "" {
			return false
		}
		if _, dup := g.byNorm[n]; dup {
			return false
		}
		g.byNorm[n] = len(g.names)
		g.names = append(g.names, Name{Display: display, Norm: n, Province: prov, Kind: kind})
		return true
	}

	// two passes so every province and alias is claimed before any district
	for _, rp := range raw.Provinces {
		if rp.Name == "" {
			return nil, fmt.Errorf("gazetteer: province without a name")
		}
		if !add(rp.Name, rp.Name, KindProvince) {
			return nil, fmt.Errorf("gazetteer: duplicate province %q", rp.Name)
		}
		for _, a := range rp.Aliases {
			add(a, rp.Name, KindAlias)
		}
	}
	for _, rp := range raw.Provinces {
		for _, d := range rp.Districts {
			add(d, rp.Name, KindDistrict)
		}
	}

	for _, rp := range raw.Provinces {
		p := province{name: rp.Name}
		seen := make(map[string]struct{}, len(rp.Districts)+1)
		for _, s := range append(append([]string{rp.Name}, rp.Aliases...), rp.Districts...) {
			n := normalize.Normalize(s)
			if _, dup := seen[n]; dup || n == "" {
				continue
			}
			seen[n] = struct{}{}
			p.allNames = append(p.allNames, s)
		}
		g.provIdx[rp.Name] = len(g.provinces)
		g.provinces = append(g.provinces, p)
	}

	sc, err := newSuggestCache(o.cacheSize)
	if err != nil {
		return nil, err
	}
	g.suggest = sc
	if g.resolved, err = lru.New[string, Resolution](o.cacheSize); err != nil {
		return nil, fmt.Errorf("gazetteer: resolve cache: %w", err)
	}
	return g, nil
}

// Resolve expands a user typed place name.
// A province or alias yields the province with all its names, a district
// yields its province with just the input, anything else only the input.
// Results are memoized by raw input; callers get their own AllNames slice.
func (g *Gazetteer) Resolve(input string) Resolution {
	r, ok := g.resolved.Get(input)
	if !ok {
		r = g.resolve(input)
		g.resolved.Add(input, r)
	}
	r.AllNames = slices.Clone(r.AllNames)
	return r
}

func (g *Gazetteer) resolve(input string) Resolution {
	n, ok := g.Lookup(normalize.Normalize(input))
	if !ok {
		return Resolution{AllNames: []string{input}}
	}
	if n.Kind == KindDistrict {
		return Resolution{Province: n.Province, AllNames: []string{input}}
	}
	p := g.provinces[g.provIdx[n.Province]]
	return Resolution{Province: p.name, AllNames: slices.Clone(p.allNames)}
}

// SameProvince is true when both inputs resolve to the same known province
func (g *Gazetteer) SameProvince(a, b string) bool {
	pa, pb := g.Resolve(a).Province, g.Resolve(b).Province
	return pa != "" && pa == pb
}

// Lookup finds an already normalized name
func (g *Gazetteer) Lookup(norm string) (Name, bool) {
	if norm == "" {
		return Name{}, false
	}
	i, ok := g.byNorm[norm]
	if !ok {
		return Name{}, false
	}
	return g.names[i], true
}

// Names returns the scan vocabulary in table order, unique by normalized form.
// The slice is shared; callers must not modify it.
func (g *Gazetteer) Names() []Name { return g.names }

// Provinces returns province display names in table order
func (g *Gazetteer) Provinces() []string {
	out := make([]string, len(g.provinces))
	for i, p := range g.provinces {
		out[i] = p.name
	}
	return out
}
