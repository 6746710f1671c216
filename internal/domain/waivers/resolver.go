package waivers

import (
	"github.com/tapecheck-dev/tapecheck/internal/domain/requirements"
)

// Strategy records which matching strategy bound a waiver to an item.
type Strategy string

const (
	// StrategyNone applies to unwaived items
	StrategyNone Strategy = ""
	// StrategyIdentifier matched the item's identifying token
	StrategyIdentifier Strategy = "identifier"
	// StrategyMessage matched the full rendered message text
	StrategyMessage Strategy = "message"
)

// Classified is a violation tagged with its waiver disposition.
type Classified struct {
	Result   requirements.MatchResult
	Message  string // fully rendered message text
	Waived   bool
	Waiver   *Entry // the binding entry when waived
	Strategy Strategy
}

// RenderFunc produces the full display message for a missing item. The
// resolver needs it for the fallback matching strategy; composition
// keeps the message templates out of this package.
type RenderFunc func(requirements.MatchResult) string

// Resolver classifies violations against a waiver set.
type Resolver struct{}

// NewResolver creates a waiver resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve classifies each missing item as waived or unwaived and returns
// the entries that bound nothing.
//
// Per item, two strategies run in order, stopping at the first success:
//
//  1. Identifier match: the item's requirement key (rule name, cell name,
//     worker id) is tested against each entry's pattern in list order.
//  2. Full-message fallback: only if no entry matched the identifier,
//     each pattern is tested against the complete rendered message.
//
// List order is the tie-break: the first entry that matches wins. One
// entry may bind any number of items; an entry that binds none is
// returned as unused. Deterministic for fixed inputs.
func (r *Resolver) Resolve(missing []requirements.MatchResult, set Set, render RenderFunc) ([]Classified, []Entry) {
	used := make([]bool, len(set.Entries))
	classified := make([]Classified, 0, len(missing))

	for _, item := range missing {
		message := render(item)
		c := Classified{Result: item, Message: message}

		if idx := r.matchIdentifier(item.Key(), set.Entries); idx >= 0 {
			c.Waived = true
			c.Waiver = &set.Entries[idx]
			c.Strategy = StrategyIdentifier
			used[idx] = true
		} else if idx := r.matchMessage(message, set.Entries); idx >= 0 {
			c.Waived = true
			c.Waiver = &set.Entries[idx]
			c.Strategy = StrategyMessage
			used[idx] = true
		}

		classified = append(classified, c)
	}

	var unused []Entry
	for i, entry := range set.Entries {
		if !used[i] {
			unused = append(unused, entry)
		}
	}
	return classified, unused
}

// matchIdentifier returns the index of the first entry whose pattern
// matches the identifying token, or -1.
func (r *Resolver) matchIdentifier(token string, entries []Entry) int {
	for i, entry := range entries {
		if entry.Matches(token) {
			return i
		}
	}
	return -1
}

// matchMessage returns the index of the first entry whose pattern
// matches the rendered message, or -1.
func (r *Resolver) matchMessage(message string, entries []Entry) int {
	for i, entry := range entries {
		if entry.Matches(message) {
			return i
		}
	}
	return -1
}
