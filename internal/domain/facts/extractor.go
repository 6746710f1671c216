package facts

import (
	"fmt"
	"regexp"
	"strings"
)

// Extractor turns a matching line into a (key, value) fact.
//
// Scalar extractors name two capture groups: one for the key, one for the
// value. List extractors accumulate one captured value per matching line
// under a fixed registry key (ListKey), modeling facts like "the set of
// dont_touch nets".
type Extractor struct {
	Name       string
	KeyGroup   int    // capture group holding the fact key (scalar form)
	ValueGroup int    // capture group holding the fact value
	ListKey    string // non-empty selects the list-accumulator form
	pattern    *regexp.Regexp
}

// NewExtractor compiles a scalar extractor. keyGroup and valueGroup are
// 1-based capture group indices. A pattern that does not compile is fatal
// and the error carries the offending pattern text.
func NewExtractor(name, pattern string, keyGroup, valueGroup int) (Extractor, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Extractor{}, fmt.Errorf("extractor %s: invalid pattern %q: %w", name, pattern, err)
	}
	if keyGroup < 1 || keyGroup > re.NumSubexp() {
		return Extractor{}, fmt.Errorf("extractor %s: key group %d out of range (pattern has %d groups)", name, keyGroup, re.NumSubexp())
	}
	if valueGroup < 0 || valueGroup > re.NumSubexp() {
		return Extractor{}, fmt.Errorf("extractor %s: value group %d out of range (pattern has %d groups)", name, valueGroup, re.NumSubexp())
	}
	return Extractor{Name: name, KeyGroup: keyGroup, ValueGroup: valueGroup, pattern: re}, nil
}

// NewListExtractor compiles a list-accumulator extractor. Every matching
// line appends capture group valueGroup to the registry entry named listKey.
func NewListExtractor(name, pattern, listKey string, valueGroup int) (Extractor, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Extractor{}, fmt.Errorf("extractor %s: invalid pattern %q: %w", name, pattern, err)
	}
	if listKey == "" {
		return Extractor{}, fmt.Errorf("extractor %s: list extractor requires a list key", name)
	}
	if valueGroup < 1 || valueGroup > re.NumSubexp() {
		return Extractor{}, fmt.Errorf("extractor %s: value group %d out of range (pattern has %d groups)", name, valueGroup, re.NumSubexp())
	}
	return Extractor{Name: name, ListKey: listKey, ValueGroup: valueGroup, pattern: re}, nil
}

// IsList reports whether this extractor accumulates into a list fact.
func (e Extractor) IsList() bool {
	return e.ListKey != ""
}

// Match tests a line and returns the extracted key and raw value.
// valueGroup 0 on a scalar extractor means "presence only": the value is
// empty and the fact is an existence marker.
func (e Extractor) Match(line string) (key, value string, ok bool) {
	m := e.pattern.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	if e.IsList() {
		return e.ListKey, m[e.ValueGroup], true
	}
	key = m[e.KeyGroup]
	if e.ValueGroup > 0 {
		value = m[e.ValueGroup]
	}
	return key, value, true
}

// CleanValue strips inline annotations from an extracted value before
// storage: a trailing "//" comment, a trailing ";", and surrounding
// whitespace.
func CleanValue(s string) string {
	if idx := strings.Index(s, "//"); idx >= 0 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, ";")
	return strings.TrimSpace(s)
}
