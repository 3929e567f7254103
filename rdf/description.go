package rdf

import (
	"fmt"
	"sort"
)

// PredObj is an explicit (predicate, objects...) pair usable as an init
// argument to NewDescription/Graph or as an Add/Put argument list.
type PredObj struct {
	P Term
	O []Term
}

// PO builds a PredObj from coercible predicate/object values.
func PO(p interface{}, objs ...interface{}) (PredObj, error) {
	pi, err := CoercePredicate(p)
	if err != nil {
		return PredObj{}, err
	}
	os := make([]Term, 0, len(objs))
	for _, o := range objs {
		ot, err := CoerceObject(o)
		if err != nil {
			return PredObj{}, err
		}
		os = append(os, ot)
	}
	return PredObj{P: pi, O: os}, nil
}

// predEntry holds one predicate's deduplicated object set, in insertion
// order (iteration order is not a spec guarantee, but a stable order
// keeps single-process behavior predictable and serialization simple).
type predEntry struct {
	objects []Term
}

func (e predEntry) contains(o Term) bool {
	for _, x := range e.objects {
		if termEqual(x, o) {
			return true
		}
	}
	return false
}

// Description is all statements sharing one subject: the subject plus a
// mapping from predicate to a set of objects. It is an immutable value;
// every mutator returns a new Description.
type Description struct {
	subject Term
	preds   map[string]predEntry // keyed by predicate IRI value
	order   map[string]IRI       // predicate-key -> IRI, for stable enumeration
}

// NewDescription creates a Description for subject, seeded from init
// arguments of type PredObj, Triple, Description, or map[string][]interface{}.
// Triples whose subject differs from the coerced subject are silently
// dropped, per the Description.new contract.
func NewDescription(subject interface{}, init ...interface{}) (Description, error) {
	s, err := CoerceSubject(subject)
	if err != nil {
		return Description{}, err
	}
	d := Description{subject: s, preds: map[string]predEntry{}, order: map[string]IRI{}}
	for _, item := range init {
		if err := d.seed(item); err != nil {
			return Description{}, err
		}
	}
	return d, nil
}

func (d *Description) seed(item interface{}) error {
	switch v := item.(type) {
	case PredObj:
		pi, ok := v.P.(IRI)
		if !ok {
			return fmt.Errorf("%w: PredObj predicate must be an IRI", ErrInvalidTerm)
		}
		d.insert(pi, v.O...)
	case Triple:
		if termEqual(v.S, d.subject) {
			d.insert(v.P, v.O)
		}
	case Description:
		if termEqual(v.subject, d.subject) {
			for key, e := range v.preds {
				d.insert(v.order[key], e.objects...)
			}
		}
	case map[string][]interface{}:
		for p, objs := range v {
			pi, err := CoercePredicate(p)
			if err != nil {
				return err
			}
			ts := make([]Term, 0, len(objs))
			for _, o := range objs {
				ot, err := CoerceObject(o)
				if err != nil {
					return err
				}
				ts = append(ts, ot)
			}
			d.insert(pi, ts...)
		}
	default:
		return fmt.Errorf("%w: unsupported Description init element %T", ErrInvalidTerm, item)
	}
	return nil
}

func (d *Description) insert(p IRI, objs ...Term) {
	key := p.Value
	e := d.preds[key]
	for _, o := range objs {
		if !e.contains(o) {
			e.objects = append(e.objects, o)
		}
	}
	d.preds[key] = e
	d.order[key] = p
}

func (d Description) clone() Description {
	nd := Description{subject: d.subject, preds: make(map[string]predEntry, len(d.preds)), order: make(map[string]IRI, len(d.order))}
	for k, e := range d.preds {
		cp := make([]Term, len(e.objects))
		copy(cp, e.objects)
		nd.preds[k] = predEntry{objects: cp}
	}
	for k, v := range d.order {
		nd.order[k] = v
	}
	return nd
}

// Subject returns the Description's subject.
func (d Description) Subject() Term { return d.subject }

// IsEmpty reports whether the Description has no predications.
func (d Description) IsEmpty() bool { return len(d.preds) == 0 }

// Add inserts every (p, objs[i]); duplicates collapse. p/objs are
// coerced. Adding with a nil/zero subject mismatch is impossible since
// Description.Add always targets this Description's own subject.
func (d Description) Add(p interface{}, objs ...interface{}) (Description, error) {
	pi, err := CoercePredicate(p)
	if err != nil {
		return Description{}, err
	}
	ts := make([]Term, 0, len(objs))
	for _, o := range objs {
		ot, err := CoerceObject(o)
		if err != nil {
			return Description{}, err
		}
		ts = append(ts, ot)
	}
	nd := d.clone()
	nd.insert(pi, ts...)
	return nd, nil
}

// AddDescription merges other's predications into d, if other describes
// the same subject; otherwise it is a no-op (per the Graph/Description
// merge contract for mismatched subjects).
func (d Description) AddDescription(other Description) Description {
	if !termEqual(d.subject, other.subject) {
		return d
	}
	nd := d.clone()
	for key, e := range other.preds {
		nd.insert(other.order[key], e.objects...)
	}
	return nd
}

// Put replaces all objects currently under p with the given ones. Other
// predicates are untouched.
func (d Description) Put(p interface{}, objs ...interface{}) (Description, error) {
	pi, err := CoercePredicate(p)
	if err != nil {
		return Description{}, err
	}
	ts := make([]Term, 0, len(objs))
	for _, o := range objs {
		ot, err := CoerceObject(o)
		if err != nil {
			return Description{}, err
		}
		ts = append(ts, ot)
	}
	nd := d.clone()
	deduped := make([]Term, 0, len(ts))
	for _, t := range ts {
		dup := false
		for _, x := range deduped {
			if termEqual(x, t) {
				dup = true
				break
			}
		}
		if !dup {
			deduped = append(deduped, t)
		}
	}
	nd.preds[pi.Value] = predEntry{objects: deduped}
	nd.order[pi.Value] = pi
	return nd, nil
}

// Delete removes listed (p, objs[i]); if p's object set becomes empty,
// the predicate is removed entirely.
func (d Description) Delete(p interface{}, objs ...interface{}) (Description, error) {
	pi, err := CoercePredicate(p)
	if err != nil {
		return Description{}, err
	}
	ts := make([]Term, 0, len(objs))
	for _, o := range objs {
		ot, err := CoerceObject(o)
		if err != nil {
			return Description{}, err
		}
		ts = append(ts, ot)
	}
	nd := d.clone()
	e, ok := nd.preds[pi.Value]
	if !ok {
		return nd, nil
	}
	remaining := e.objects[:0:0]
	for _, existing := range e.objects {
		drop := false
		for _, t := range ts {
			if termEqual(existing, t) {
				drop = true
				break
			}
		}
		if !drop {
			remaining = append(remaining, existing)
		}
	}
	if len(remaining) == 0 {
		delete(nd.preds, pi.Value)
		delete(nd.order, pi.Value)
	} else {
		nd.preds[pi.Value] = predEntry{objects: remaining}
	}
	return nd, nil
}

// DeletePredicates removes all statements for the given predicates.
func (d Description) DeletePredicates(preds ...interface{}) (Description, error) {
	nd := d.clone()
	for _, p := range preds {
		pi, err := CoercePredicate(p)
		if err != nil {
			return Description{}, err
		}
		delete(nd.preds, pi.Value)
		delete(nd.order, pi.Value)
	}
	return nd, nil
}

// Update mutates the object set for p: if p is present, its objects are
// replaced with f(current); if absent and init is non-nil, init seeds the
// predicate; if absent and init is nil, the Description is returned
// unchanged. f returning an empty slice removes p. f is never called on
// the initial value.
func (d Description) Update(p interface{}, init []interface{}, f func([]Term) []Term) (Description, error) {
	pi, err := CoercePredicate(p)
	if err != nil {
		return Description{}, err
	}
	nd := d.clone()
	e, present := nd.preds[pi.Value]
	if !present {
		if init == nil {
			return nd, nil
		}
		ts := make([]Term, 0, len(init))
		for _, o := range init {
			ot, err := CoerceObject(o)
			if err != nil {
				return Description{}, err
			}
			ts = append(ts, ot)
		}
		nd.preds[pi.Value] = predEntry{objects: ts}
		nd.order[pi.Value] = pi
		return nd, nil
	}
	updated := f(append([]Term(nil), e.objects...))
	if len(updated) == 0 {
		delete(nd.preds, pi.Value)
		delete(nd.order, pi.Value)
		return nd, nil
	}
	nd.preds[pi.Value] = predEntry{objects: updated}
	nd.order[pi.Value] = pi
	return nd, nil
}

// Fetch returns the objects stored under p and whether p is present.
func (d Description) Fetch(p interface{}) ([]Term, bool) {
	pi, err := CoercePredicate(p)
	if err != nil {
		return nil, false
	}
	e, ok := d.preds[pi.Value]
	if !ok {
		return nil, false
	}
	return append([]Term(nil), e.objects...), true
}

// Get returns the objects stored under p, or ErrNotFound.
func (d Description) Get(p interface{}) ([]Term, error) {
	objs, ok := d.Fetch(p)
	if !ok {
		return nil, ErrNotFound
	}
	return objs, nil
}

// First returns one object stored under p (the first in insertion
// order) and whether p is present.
func (d Description) First(p interface{}) (Term, bool) {
	objs, ok := d.Fetch(p)
	if !ok || len(objs) == 0 {
		return nil, false
	}
	return objs[0], true
}

// Pop removes and returns some (s,p,o) triple and the resulting
// Description; which triple is unspecified. Returns ok=false if empty.
func (d Description) Pop() (Triple, Description, bool) {
	for key, e := range d.preds {
		if len(e.objects) == 0 {
			continue
		}
		o := e.objects[0]
		p := d.order[key]
		nd, _ := d.Delete(p, o)
		return Triple{S: d.subject, P: p, O: o}, nd, true
	}
	return Triple{}, d, false
}

// Predicates returns the set of predicates with at least one object.
func (d Description) Predicates() []IRI {
	out := make([]IRI, 0, len(d.order))
	for _, p := range d.order {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out
}

// Objects returns the set projection of all objects. By default only
// resources (IRI, BlankNode) are returned — not literals — unless a
// filter predicate is supplied, in which case exactly the objects
// satisfying filter are returned.
func (d Description) Objects(filter ...func(Term) bool) []Term {
	var pred func(Term) bool
	if len(filter) > 0 {
		pred = filter[0]
	} else {
		pred = func(t Term) bool { return t.Kind() == KindIRI || t.Kind() == KindBlankNode }
	}
	seen := map[string]bool{}
	var out []Term
	for _, e := range d.preds {
		for _, o := range e.objects {
			if !pred(o) {
				continue
			}
			key := o.TermString()
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, o)
		}
	}
	return out
}

// Resources returns every object that is an IRI or BlankNode.
func (d Description) Resources() []Term {
	return d.Objects(func(t Term) bool { return t.Kind() == KindIRI || t.Kind() == KindBlankNode })
}

// Take restricts the Description to the given predicates (nil means all).
func (d Description) Take(preds []IRI) Description {
	if preds == nil {
		return d.clone()
	}
	nd := Description{subject: d.subject, preds: map[string]predEntry{}, order: map[string]IRI{}}
	for _, p := range preds {
		if e, ok := d.preds[p.Value]; ok {
			nd.preds[p.Value] = predEntry{objects: append([]Term(nil), e.objects...)}
			nd.order[p.Value] = p
		}
	}
	return nd
}

// Count returns the total number of (p,o) statements.
func (d Description) Count() int {
	n := 0
	for _, e := range d.preds {
		n += len(e.objects)
	}
	return n
}

// Include reports whether (p,o) is present.
func (d Description) Include(p, o interface{}) bool {
	pi, err := CoercePredicate(p)
	if err != nil {
		return false
	}
	ot, err := CoerceObject(o)
	if err != nil {
		return false
	}
	e, ok := d.preds[pi.Value]
	return ok && e.contains(ot)
}

// Describes reports whether s term-equals the Description's subject.
func (d Description) Describes(s interface{}) bool {
	st, err := CoerceSubject(s)
	if err != nil {
		return false
	}
	return termEqual(d.subject, st)
}

// Equal reports structural equality: same subject and same (p,o) set.
func (d Description) Equal(o Description) bool {
	if !termEqual(d.subject, o.subject) {
		return false
	}
	if len(d.preds) != len(o.preds) {
		return false
	}
	for key, e := range d.preds {
		oe, ok := o.preds[key]
		if !ok || len(e.objects) != len(oe.objects) {
			return false
		}
		for _, t := range e.objects {
			if !oe.contains(t) {
				return false
			}
		}
	}
	return true
}

// Triples returns every (s,p,o) triple in the Description.
func (d Description) Triples() []Triple {
	out := make([]Triple, 0, d.Count())
	for key, e := range d.preds {
		p := d.order[key]
		for _, o := range e.objects {
			out = append(out, Triple{S: d.subject, P: p, O: o})
		}
	}
	return out
}

// Values projects predicate -> native values, via an optional mapper of
// (position, term) -> value; position is always "object" here since
// Description only carries one subject. The default mapper returns the
// datatype registry's Value() for literals and the term's string form
// for resources.
func (d Description) Values(mapper func(position string, t Term) interface{}) map[string][]interface{} {
	if mapper == nil {
		mapper = defaultValueMapper
	}
	out := make(map[string][]interface{}, len(d.preds))
	for key, e := range d.preds {
		p := d.order[key]
		vals := make([]interface{}, 0, len(e.objects))
		for _, o := range e.objects {
			vals = append(vals, mapper("object", o))
		}
		out[p.Value] = vals
	}
	return out
}

func defaultValueMapper(_ string, t Term) interface{} {
	if lit, ok := t.(Literal); ok {
		if dt, ok := LookupDatatype(lit.EffectiveDatatype()); ok {
			if v := dt.Value(lit.Lexical); v != nil {
				return v
			}
		}
		return lit.Lexical
	}
	return t.TermString()
}
