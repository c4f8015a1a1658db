package extract

import (
	"yukbul/internal/core/normalize"
)

// Reason names the gate that decided a verdict
type Reason string

const (
	// ReasonAdmitted means every gate passed
	ReasonAdmitted Reason = "admitted"
	// ReasonBlacklisted means a banned phrase or number was found
	ReasonBlacklisted Reason = "blacklisted"
	// ReasonNoPhone means no phone number was recognized
	ReasonNoPhone Reason = "no_phone"
	// ReasonNoCity means no province or district was found
	ReasonNoCity Reason = "no_city"
)

// Verdict is the full classification of one message
type Verdict struct {
	Admitted     bool       `json:"admitted"`
	Reason       Reason     `json:"reason"`
	BlacklistHit string     `json:"blacklist_hit,omitempty"`
	Phones       []string   `json:"phones,omitempty"`
	Cities       []string   `json:"cities,omitempty"`
	LinePairs    [][]string `json:"line_pairs,omitempty"`
	Hash         int32      `json:"hash"`
}

// Classifier applies the admission gate: not blacklisted, has a phone, names a place
type Classifier struct {
	ext  *Extractor
	bl   *Blacklist
	mode PhoneMode
}

// Option configures a Classifier
type Option func(*Classifier)

// WithPhoneMode picks the phone recognizer, tolerant by default
func WithPhoneMode(m PhoneMode) Option {
	return func(c *Classifier) {
		if m != "" {
			c.mode = m
		}
	}
}

// NewClassifier wires an extractor with a blacklist; a nil blacklist bans nothing
func NewClassifier(ext *Extractor, bl *Blacklist, opts ...Option) *Classifier {
	if ext == nil {
		panic("extract.NewClassifier: nil Extractor")
	}
	if bl == nil {
		bl = NewBlacklist()
	}
	c := &Classifier{ext: ext, bl: bl, mode: PhoneTolerant}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Extractor exposes the place scanner
func (c *Classifier) Extractor() *Extractor { return c.ext }

// Blacklist exposes the live blacklist
func (c *Classifier) Blacklist() *Blacklist { return c.bl }

// Mode is the active phone mode
func (c *Classifier) Mode() PhoneMode { return c.mode }

// IsBlacklisted reports whether text contains a banned entry
func (c *Classifier) IsBlacklisted(text string) bool { return c.bl.IsBlacklisted(text) }

// ContainsPhone reports whether text carries a phone number
func (c *Classifier) ContainsPhone(text string) bool { return ContainsPhone(text, c.mode) }

// Classify is Inspect(text).Admitted without the extra work
func (c *Classifier) Classify(text string) bool {
	norm := normalize.Normalize(text)
	if _, hit := c.bl.Match(norm); hit {
		return false
	}
	if !ContainsPhone(text, c.mode) {
		return false
	}
	return len(c.ext.Matches(norm)) > 0
}

// Inspect classifies text and reports why, together with everything extracted
func (c *Classifier) Inspect(text string) Verdict {
	norm := normalize.Normalize(text)
	v := Verdict{
		Hash:      normalize.HashNormalized(norm),
		Phones:    FindPhones(text),
		Cities:    names(c.ext.Matches(norm)),
		LinePairs: c.ext.ExtractLinePairs(text),
	}
	switch hit, banned := c.bl.Match(norm); {
	case banned:
		v.Reason, v.BlacklistHit = ReasonBlacklisted, hit
	case !ContainsPhone(text, c.mode):
		v.Reason = ReasonNoPhone
	case len(v.Cities) == 0:
		v.Reason = ReasonNoCity
	default:
		v.Admitted, v.Reason = true, ReasonAdmitted
	}
	return v
}
