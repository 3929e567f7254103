package rdf

import (
	"fmt"
	"sort"
)

// Tuple is a raw, not-yet-coerced (subject, predicate, object) statement,
// distinct from Triple (already-coerced terms), for callers building
// graphs from plain strings/values.
type Tuple struct {
	S, P, O interface{}
}

// GraphOption configures Graph construction.
type GraphOption func(*graphOptions)

type graphOptions struct {
	name        interface{}
	nameSet     bool
	prefixes    map[string]string
	prefixesSet bool
	base        string
	baseSet     bool
}

// WithGraphName sets the graph's name (an IRI, BlankNode, or coercible string).
func WithGraphName(name interface{}) GraphOption {
	return func(o *graphOptions) { o.name, o.nameSet = name, true }
}

// WithPrefixes sets the graph's prefix map.
func WithPrefixes(prefixes map[string]string) GraphOption {
	return func(o *graphOptions) { o.prefixes, o.prefixesSet = prefixes, true }
}

// WithBaseIRI sets the graph's base IRI.
func WithBaseIRI(base string) GraphOption {
	return func(o *graphOptions) { o.base, o.baseSet = base, true }
}

// Graph is an optionally named set of triples, indexed by subject,
// carrying optional prefix-map and base-IRI metadata. It is an immutable
// value; every mutator returns a new Graph.
type Graph struct {
	name     Term
	descs    map[string]Description // keyed by subject.TermString()
	prefixes PrefixMap
	base     string
}

// NewGraph creates a Graph seeded from data (nil, or any combination of
// Tuple, Triple, PredObj, Description, Graph, or a []interface{} of
// those), configured by opts. When data contains exactly one Graph value
// and the corresponding option was not given, that Graph's prefixes and
// base IRI are inherited; its name is always dropped.
func NewGraph(data interface{}, opts ...GraphOption) (Graph, error) {
	var o graphOptions
	for _, opt := range opts {
		opt(&o)
	}
	g := Graph{descs: map[string]Description{}}
	if o.nameSet {
		n, err := CoerceSubject(o.name)
		if err != nil {
			return Graph{}, err
		}
		g.name = n
	}
	if o.prefixesSet {
		g.prefixes = NewPrefixMap(o.prefixes)
	}
	if o.baseSet {
		g.base = o.base
	}

	items := flattenItems(data)
	for _, item := range items {
		if src, ok := item.(Graph); ok {
			if !o.prefixesSet {
				g.prefixes = g.prefixes.Merge(src.prefixes, KeepIncoming)
			}
			if !o.baseSet && src.base != "" {
				g.base = src.base
			}
		}
	}
	ng, err := g.Add(items...)
	if err != nil {
		return Graph{}, err
	}
	return ng, nil
}

// flattenItems recursively expands []interface{} (and typed slices) into
// a single flat list of seed items.
func flattenItems(data interface{}) []interface{} {
	if data == nil {
		return nil
	}
	switch v := data.(type) {
	case []interface{}:
		var out []interface{}
		for _, x := range v {
			out = append(out, flattenItems(x)...)
		}
		return out
	case []Triple:
		out := make([]interface{}, len(v))
		for i, t := range v {
			out[i] = t
		}
		return out
	case []Tuple:
		out := make([]interface{}, len(v))
		for i, t := range v {
			out[i] = t
		}
		return out
	default:
		return []interface{}{data}
	}
}

func (g Graph) clone() Graph {
	ng := Graph{name: g.name, descs: make(map[string]Description, len(g.descs)), prefixes: g.prefixes, base: g.base}
	for k, d := range g.descs {
		ng.descs[k] = d
	}
	return ng
}

// Name returns the graph's name term, or nil if unnamed.
func (g Graph) Name() Term { return g.name }

// BaseIRI returns the graph's base IRI metadata.
func (g Graph) BaseIRI() string { return g.base }

// Prefixes returns the graph's prefix map metadata.
func (g Graph) Prefixes() PrefixMap { return g.prefixes }

// SetBaseIRI returns a new Graph with the given base IRI.
func (g Graph) SetBaseIRI(base string) Graph {
	ng := g.clone()
	ng.base = base
	return ng
}

// ClearBaseIRI returns a new Graph with no base IRI.
func (g Graph) ClearBaseIRI() Graph {
	ng := g.clone()
	ng.base = ""
	return ng
}

// AddPrefixes merges prefixes into the graph's prefix map, with
// last-writer-wins on conflicts by default, or via resolve if given. A
// prefix that isn't a valid Turtle PNAME_NS prefix is silently dropped
// rather than stored, since it could never be written back out.
func (g Graph) AddPrefixes(prefixes map[string]string, resolve ...ConflictResolver) Graph {
	var r ConflictResolver = KeepIncoming
	if len(resolve) > 0 {
		r = resolve[0]
	}
	valid := make(map[string]string, len(prefixes))
	for prefix, ns := range prefixes {
		if isValidPrefixName(prefix) {
			valid[prefix] = ns
		}
	}
	ng := g.clone()
	ng.prefixes = g.prefixes.Merge(NewPrefixMap(valid), r)
	return ng
}

// DeletePrefixes removes the given prefixes from the graph's prefix map.
func (g Graph) DeletePrefixes(prefixes ...string) Graph {
	ng := g.clone()
	ng.prefixes = g.prefixes.Delete(prefixes...)
	return ng
}

// ClearPrefixes returns a new Graph with an empty prefix map.
func (g Graph) ClearPrefixes() Graph {
	ng := g.clone()
	ng.prefixes = PrefixMap{}
	return ng
}

// ClearMetadata returns a new Graph with no prefixes and no base IRI
// (the name and triples are unaffected).
func (g Graph) ClearMetadata() Graph {
	ng := g.clone()
	ng.prefixes = PrefixMap{}
	ng.base = ""
	return ng
}

// Clear empties the graph's triples but retains name, prefixes, and base IRI.
func (g Graph) Clear() Graph {
	return Graph{name: g.name, descs: map[string]Description{}, prefixes: g.prefixes, base: g.base}
}

// coerceItemToTriples turns one seed item into zero or more coerced triples.
func coerceItemToTriples(item interface{}) ([]Triple, error) {
	switch v := item.(type) {
	case Triple:
		return []Triple{v}, nil
	case Tuple:
		s, err := CoerceSubject(v.S)
		if err != nil {
			return nil, err
		}
		p, err := CoercePredicate(v.P)
		if err != nil {
			return nil, err
		}
		o, err := CoerceObject(v.O)
		if err != nil {
			return nil, err
		}
		return []Triple{{S: s, P: p, O: o}}, nil
	case PredObj:
		return nil, fmt.Errorf("%w: PredObj requires a subject; use Description instead", ErrInvalidTerm)
	case Description:
		return v.Triples(), nil
	case Graph:
		return v.Triples(), nil
	default:
		return nil, fmt.Errorf("%w: unsupported Graph seed element %T", ErrInvalidTerm, item)
	}
}

// Add merges the given items (Tuple, Triple, Description, Graph, or
// []interface{} of those) into the graph; duplicate triples collapse.
// Adding a Graph merges its prefix map with first-writer-wins on
// conflicting prefixes. Failure aborts the whole call, leaving g unchanged.
func (g Graph) Add(items ...interface{}) (Graph, error) {
	ng := g.clone()
	for _, raw := range flattenItems(items) {
		if src, ok := raw.(Graph); ok {
			ng.prefixes = ng.prefixes.Merge(src.prefixes, KeepExisting)
		}
		triples, err := coerceItemToTriples(raw)
		if err != nil {
			return Graph{}, err
		}
		for _, t := range triples {
			key := t.S.TermString()
			d, ok := ng.descs[key]
			if !ok {
				var err error
				d, err = NewDescription(t.S)
				if err != nil {
					return Graph{}, err
				}
			}
			d, err = d.Add(t.P, t.O)
			if err != nil {
				return Graph{}, err
			}
			ng.descs[key] = d
		}
	}
	return ng, nil
}

// Put replaces, for every (s,p) pair named in items, the entire object
// set under (s,p); other (s,p') pairs for the same subject are preserved.
func (g Graph) Put(items ...interface{}) (Graph, error) {
	ng := g.clone()
	type key struct{ s, p string }
	grouped := map[key][]Term{}
	order := map[key]Triple{}
	for _, raw := range flattenItems(items) {
		triples, err := coerceItemToTriples(raw)
		if err != nil {
			return Graph{}, err
		}
		for _, t := range triples {
			k := key{t.S.TermString(), t.P.Value}
			grouped[k] = append(grouped[k], t.O)
			order[k] = t
		}
	}
	for k, objs := range grouped {
		t := order[k]
		sKey := t.S.TermString()
		d, ok := ng.descs[sKey]
		if !ok {
			var err error
			d, err = NewDescription(t.S)
			if err != nil {
				return Graph{}, err
			}
		}
		anyObjs := make([]interface{}, len(objs))
		for i, o := range objs {
			anyObjs[i] = o
		}
		d, err := d.Put(t.P, anyObjs...)
		if err != nil {
			return Graph{}, err
		}
		ng.descs[sKey] = d
	}
	return ng, nil
}

// Delete removes the given items' triples, symmetric to Add. Deleting a
// Graph deletes its triples regardless of the two graphs' names. Emptied
// descriptions are evicted.
func (g Graph) Delete(items ...interface{}) (Graph, error) {
	ng := g.clone()
	for _, raw := range flattenItems(items) {
		triples, err := coerceItemToTriples(raw)
		if err != nil {
			return Graph{}, err
		}
		for _, t := range triples {
			key := t.S.TermString()
			d, ok := ng.descs[key]
			if !ok {
				continue
			}
			d, err = d.Delete(t.P, t.O)
			if err != nil {
				return Graph{}, err
			}
			if d.IsEmpty() {
				delete(ng.descs, key)
			} else {
				ng.descs[key] = d
			}
		}
	}
	return ng, nil
}

// DeleteSubjects removes entire descriptions for the given subjects.
func (g Graph) DeleteSubjects(subjects ...interface{}) (Graph, error) {
	ng := g.clone()
	for _, s := range subjects {
		st, err := CoerceSubject(s)
		if err != nil {
			return Graph{}, err
		}
		delete(ng.descs, st.TermString())
	}
	return ng, nil
}

// Update mutates the Description for subject s: same semantics as
// Description.Update, except f may return a Description with a
// different subject, which is rewritten to s.
func (g Graph) Update(s interface{}, init []interface{}, f func(Description) Description) (Graph, error) {
	st, err := CoerceSubject(s)
	if err != nil {
		return Graph{}, err
	}
	ng := g.clone()
	key := st.TermString()
	d, present := ng.descs[key]
	if !present {
		if init == nil {
			return ng, nil
		}
		nd, err := NewDescription(st, init...)
		if err != nil {
			return Graph{}, err
		}
		if nd.IsEmpty() {
			return ng, nil
		}
		ng.descs[key] = nd
		return ng, nil
	}
	updated := f(d)
	updated.subject = st
	if updated.IsEmpty() {
		delete(ng.descs, key)
	} else {
		ng.descs[key] = updated
	}
	return ng, nil
}

// Fetch returns the Description for s and whether it is present.
func (g Graph) Fetch(s interface{}) (Description, bool) {
	st, err := CoerceSubject(s)
	if err != nil {
		return Description{}, false
	}
	d, ok := g.descs[st.TermString()]
	return d, ok
}

// Get returns the Description for s, or ErrNotFound.
func (g Graph) Get(s interface{}) (Description, error) {
	d, ok := g.Fetch(s)
	if !ok {
		return Description{}, ErrNotFound
	}
	return d, nil
}

// Pop removes and returns some Description and the resulting Graph;
// which subject is unspecified. ok is false if the graph is empty.
func (g Graph) Pop() (Description, Graph, bool) {
	for key, d := range g.descs {
		ng := g.clone()
		delete(ng.descs, key)
		return d, ng, true
	}
	return Description{}, g, false
}

// Subjects returns every subject with at least one statement.
func (g Graph) Subjects() []Term {
	out := make([]Term, 0, len(g.descs))
	for _, d := range g.descs {
		out = append(out, d.subject)
	}
	return out
}

// Predicates returns the set of predicates used anywhere in the graph.
func (g Graph) Predicates() []IRI {
	seen := map[string]IRI{}
	for _, d := range g.descs {
		for _, p := range d.Predicates() {
			seen[p.Value] = p
		}
	}
	out := make([]IRI, 0, len(seen))
	for _, p := range seen {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out
}

// Objects returns the set projection of every object in the graph,
// subject to the same default-resources-only rule as Description.Objects.
func (g Graph) Objects(filter ...func(Term) bool) []Term {
	seen := map[string]bool{}
	var out []Term
	for _, d := range g.descs {
		for _, o := range d.Objects(filter...) {
			key := o.TermString()
			if !seen[key] {
				seen[key] = true
				out = append(out, o)
			}
		}
	}
	return out
}

// Resources returns every object that is an IRI or BlankNode.
func (g Graph) Resources() []Term { return g.Objects(func(t Term) bool { return t.Kind() == KindIRI || t.Kind() == KindBlankNode }) }

// Triples returns every triple in the graph.
func (g Graph) Triples() []Triple {
	out := make([]Triple, 0, g.TripleCount())
	for _, d := range g.descs {
		out = append(out, d.Triples()...)
	}
	return out
}

// TripleCount returns the total number of triples in the graph.
func (g Graph) TripleCount() int {
	n := 0
	for _, d := range g.descs {
		n += d.Count()
	}
	return n
}

// SubjectCount returns the number of distinct subjects.
func (g Graph) SubjectCount() int { return len(g.descs) }

// Take restricts the graph to the given subjects and predicates (nil
// for either means "all").
func (g Graph) Take(subjects []Term, predicates []IRI) Graph {
	ng := Graph{descs: map[string]Description{}, prefixes: g.prefixes, base: g.base, name: g.name}
	if subjects == nil {
		for key, d := range g.descs {
			ng.descs[key] = d.Take(predicates)
		}
		return ng
	}
	for _, s := range subjects {
		key := s.TermString()
		if d, ok := g.descs[key]; ok {
			nd := d.Take(predicates)
			if !nd.IsEmpty() {
				ng.descs[key] = nd
			}
		}
	}
	return ng
}

// Include reports whether (s,p,o) is present.
func (g Graph) Include(s, p, o interface{}) bool {
	d, ok := g.Fetch(s)
	if !ok {
		return false
	}
	return d.Include(p, o)
}

// Equal reports whether two graphs have the same name and the same
// triple set; prefix map and base IRI are ignored.
func (g Graph) Equal(o Graph) bool {
	if !termEqual(g.name, o.name) {
		return false
	}
	if len(g.descs) != len(o.descs) {
		return false
	}
	for key, d := range g.descs {
		od, ok := o.descs[key]
		if !ok || !d.Equal(od) {
			return false
		}
	}
	return true
}

// WithName returns a new Graph with name set (or cleared, if name is nil).
func (g Graph) WithName(name interface{}) (Graph, error) {
	ng := g.clone()
	if name == nil {
		ng.name = nil
		return ng, nil
	}
	n, err := CoerceSubject(name)
	if err != nil {
		return Graph{}, err
	}
	ng.name = n
	return ng, nil
}
