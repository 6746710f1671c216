// Package waivers implements approved-exception handling: matching waiver
// entries against violations, tracking unused entries, and linting waiver
// sets for ambiguity.
package waivers

import (
	"fmt"
	"regexp"
)

// Entry is one approved exception. Name is interpreted as a regular
// expression under the two-strategy matching in Resolver; anchors in the
// pattern are honored literally, so "Worker 1$" binds "Worker 1" but
// never "Worker 11".
type Entry struct {
	Name   string `json:"name" yaml:"name"`
	Reason string `json:"reason" yaml:"reason"`
	re     *regexp.Regexp
}

// NewEntry compiles a waiver entry. A pattern that fails to compile is
// fatal; the error carries the offending pattern text.
func NewEntry(name, reason string) (Entry, error) {
	re, err := regexp.Compile(name)
	if err != nil {
		return Entry{}, fmt.Errorf("waiver pattern %q does not compile: %w", name, err)
	}
	return Entry{Name: name, Reason: reason, re: re}, nil
}

// MustNewEntry compiles an entry or panics (for tests only).
func MustNewEntry(name, reason string) Entry {
	e, err := NewEntry(name, reason)
	if err != nil {
		panic(err)
	}
	return e
}

// Matches tests the pattern against a candidate string.
func (e Entry) Matches(s string) bool {
	return e.re != nil && e.re.MatchString(s)
}

// Set is the waiver configuration for one check.
//
// Three states, mirroring the three allowed configuration shapes:
// absent (empty set), forced-pass (the "value = 0" sentinel, entries are
// commentary only), or a list of compiled entries.
type Set struct {
	ForcedPass bool
	Notes      []string // forced-pass commentary, rendered verbatim
	Entries    []Entry
}

// NewSet compiles a list of name/reason pairs into a Set.
func NewSet(pairs []struct{ Name, Reason string }) (Set, error) {
	set := Set{}
	for _, p := range pairs {
		entry, err := NewEntry(p.Name, p.Reason)
		if err != nil {
			return Set{}, err
		}
		set.Entries = append(set.Entries, entry)
	}
	return set, nil
}

// ForcedPassSet creates the forced-pass sentinel set. Notes are pure
// commentary: they are never compiled or evaluated against violations.
func ForcedPassSet(notes []string) Set {
	return Set{ForcedPass: true, Notes: notes}
}

// IsEmpty reports whether the set holds neither entries nor the
// forced-pass sentinel.
func (s Set) IsEmpty() bool {
	return !s.ForcedPass && len(s.Entries) == 0
}
