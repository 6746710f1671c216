// Package facts builds the fact registry: a flat mapping of named facts
// extracted from verification artifacts (tool logs, configuration scripts,
// summary reports), with per-fact provenance.
package facts

// Value holds a fact value: either a scalar string or an accumulated
// list of strings (named nets, rule IDs). Exactly one of the two forms
// is populated.
type Value struct {
	Scalar string   `json:"scalar,omitempty" yaml:"scalar,omitempty"`
	List   []string `json:"list,omitempty" yaml:"list,omitempty"`
	IsList bool     `json:"is_list,omitempty" yaml:"is_list,omitempty"`
}

// ScalarValue creates a scalar fact value.
func ScalarValue(s string) Value {
	return Value{Scalar: s}
}

// ListValue creates a list fact value.
func ListValue(items []string) Value {
	return Value{List: items, IsList: true}
}

// String returns the scalar, or a best-effort rendering for lists.
func (v Value) String() string {
	if !v.IsList {
		return v.Scalar
	}
	out := ""
	for i, item := range v.List {
		if i > 0 {
			out += ", "
		}
		out += item
	}
	return out
}

// Entry is one named fact with provenance.
type Entry struct {
	Key    string `json:"key" yaml:"key"`
	Value  Value  `json:"value" yaml:"value"`
	Source string `json:"source" yaml:"source"`
	File   string `json:"file" yaml:"file"`
	Line   int    `json:"line" yaml:"line"`
}

// Registry is the fact registry for one evaluation run.
// It is built once by the Builder and read-only afterwards.
//
// Merge invariant: sources are applied in ascending priority order and a
// later source unconditionally overwrites an earlier source's entry for
// the same key. The actual tool log always wins over the intended
// configuration script.
type Registry struct {
	entries map[string]Entry
	order   []string // first-insertion order, for deterministic iteration
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// Put stores an entry, unconditionally overwriting any existing entry
// for the same key. The key keeps its first-insertion position so
// iteration order stays stable across overwrites.
func (r *Registry) Put(e Entry) {
	if _, exists := r.entries[e.Key]; !exists {
		r.order = append(r.order, e.Key)
	}
	r.entries[e.Key] = e
}

// Get returns the entry for a key.
func (r *Registry) Get(key string) (Entry, bool) {
	e, ok := r.entries[key]
	return e, ok
}

// Has returns true if the key is present.
func (r *Registry) Has(key string) bool {
	_, ok := r.entries[key]
	return ok
}

// Keys returns all keys in first-insertion order.
func (r *Registry) Keys() []string {
	keys := make([]string, len(r.order))
	copy(keys, r.order)
	return keys
}

// Len returns the number of facts.
func (r *Registry) Len() int {
	return len(r.entries)
}
