package extract

import (
	"strings"
	"sync"

	"yukbul/internal/core/normalize"
)

// minDigitEntry is the shortest all digit entry also matched against the
// digits only projection of a message. Shorter ones would hit tonnages and prices.
const minDigitEntry = 7

type blEntry struct {
	raw    string
	norm   string
	digits string // set only for number entries
}

// Blacklist is a runtime mutable set of banned phrases and numbers. The host
// owns its lifecycle; readers only consult it at classification time.
type Blacklist struct {
	mu      sync.RWMutex
	entries []blEntry
	byNorm  map[string]int
}

// NewBlacklist builds a blacklist from raw entries
func NewBlacklist(entries ...string) *Blacklist {
	b := &Blacklist{byNorm: map[string]int{}}
	b.add(entries)
	return b
}

func makeEntry(raw string) (blEntry, bool) {
	n := normalize.Normalize(raw)
	if n == "" {
		return blEntry{}, false
	}
	e := blEntry{raw: strings.TrimSpace(raw), norm: n}
	if d := normalize.Digits(n); len(d) >= minDigitEntry && len(d) == len(normalize.Compact(n)) {
		e.digits = d
	}
	return e, true
}

// add expects the write lock held, or exclusive ownership during construction
func (b *Blacklist) add(raws []string) int {
	added := 0
	for _, r := range raws {
		e, ok := makeEntry(r)
		if !ok {
			continue
		}
		if _, dup := b.byNorm[e.norm]; dup {
			continue
		}
		b.byNorm[e.norm] = len(b.entries)
		b.entries = append(b.entries, e)
		added++
	}
	return added
}

// Add inserts entries and returns how many were new. Entries that normalize
// to nothing are ignored since they would match every message.
func (b *Blacklist) Add(entries ...string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.add(entries)
}

// Replace swaps the whole set
func (b *Blacklist) Replace(entries []string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = nil
	b.byNorm = map[string]int{}
	b.add(entries)
}

// Remove deletes the entry that normalizes like entry
func (b *Blacklist) Remove(entry string) bool {
	n := normalize.Normalize(entry)
	b.mu.Lock()
	defer b.mu.Unlock()
	i, ok := b.byNorm[n]
	if !ok {
		return false
	}
	b.entries = append(b.entries[:i], b.entries[i+1:]...)
	delete(b.byNorm, n)
	for j := i; j < len(b.entries); j++ {
		b.byNorm[b.entries[j].norm] = j
	}
	return true
}

// Entries returns the entries as they were added
func (b *Blacklist) Entries() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]string, len(b.entries))
	for i, e := range b.entries {
		out[i] = e.raw
	}
	return out
}

// Len is the entry count
func (b *Blacklist) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries)
}

// Match reports the first entry found in norm, an already normalized text
func (b *Blacklist) Match(norm string) (string, bool) {
	if norm == "" {
		return "", false
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	if len(b.entries) == 0 {
		return "", false
	}
	var digits string
	for _, e := range b.entries {
		if strings.Contains(norm, e.norm) {
			return e.raw, true
		}
		if e.digits == "" {
			continue
		}
		if digits == "" {
			digits = normalize.Digits(norm)
		}
		if strings.Contains(digits, e.digits) {
			return e.raw, true
		}
	}
	return "", false
}

// IsBlacklisted reports whether text contains any entry
func (b *Blacklist) IsBlacklisted(text string) bool {
	_, hit := b.Match(normalize.Normalize(text))
	return hit
}
