package rdf

import (
	"fmt"
	"sync/atomic"
)

// Var is a named placeholder in a triple pattern, distinct from any
// concrete Term so pattern construction never has to guess whether a
// string means "this variable" or "this IRI".
type Var struct{ Name string }

// Variable returns a named pattern variable.
func Variable(name string) Var { return Var{Name: name} }

// Pattern is one triple pattern: each position holds either a concrete
// Term or a Var.
type Pattern struct {
	S, P, O interface{}
}

var pathBlankCounter int64

func freshPathBlank() BlankNode {
	n := atomic.AddInt64(&pathBlankCounter, 1)
	return BlankNode{ID: fmt.Sprintf("bgp-path-%d", n)}
}

func resolvePatternElem(v interface{}, position string) (interface{}, error) {
	if vr, ok := v.(Var); ok {
		return vr, nil
	}
	switch position {
	case "subject":
		return CoerceSubject(v)
	case "predicate":
		if s, ok := v.(string); ok && s == "a" {
			return RDFType, nil
		}
		return CoercePredicate(v)
	default:
		return CoerceObject(v)
	}
}

// Pat builds a single triple pattern, coercing concrete positions the
// same way Description/Graph construction does. The predicate position
// accepts the bare string "a" as shorthand for rdf:type. A literal in
// subject or predicate position is rejected.
func Pat(s, p, o interface{}) (Pattern, error) {
	sv, err := resolvePatternElem(s, "subject")
	if err != nil {
		return Pattern{}, fmt.Errorf("%w: subject: %v", ErrInvalidQuery, err)
	}
	pv, err := resolvePatternElem(p, "predicate")
	if err != nil {
		return Pattern{}, fmt.Errorf("%w: predicate: %v", ErrInvalidQuery, err)
	}
	ov, err := resolvePatternElem(o, "object")
	if err != nil {
		return Pattern{}, fmt.Errorf("%w: object: %v", ErrInvalidQuery, err)
	}
	return Pattern{S: sv, P: pv, O: ov}, nil
}

// Path expands [s, p1, p2, ..., pn, o] (n>=2 predicates) into the
// chained patterns (s,p1,b1), (b1,p2,b2), ..., (b_{n-1},pn,o), using a
// fresh blank node per interior chain position.
func Path(s interface{}, steps ...interface{}) ([]Pattern, error) {
	if len(steps) < 3 {
		return nil, fmt.Errorf("%w: path requires at least 2 predicates", ErrInvalidQuery)
	}
	preds := steps[:len(steps)-1]
	obj := steps[len(steps)-1]
	patterns := make([]Pattern, 0, len(preds))
	cur := s
	for i, p := range preds {
		var next interface{}
		if i == len(preds)-1 {
			next = obj
		} else {
			next = freshPathBlank()
		}
		pat, err := Pat(cur, p, next)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, pat)
		cur = next
	}
	return patterns, nil
}

// Fan expands (s, p, o1, o2, ...) into one pattern per object,
// (s,p,o1), (s,p,o2), ...
func Fan(s, p interface{}, objs ...interface{}) ([]Pattern, error) {
	if len(objs) == 0 {
		return nil, fmt.Errorf("%w: fan-out requires at least one object", ErrInvalidQuery)
	}
	patterns := make([]Pattern, 0, len(objs))
	for _, o := range objs {
		pat, err := Pat(s, p, o)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, pat)
	}
	return patterns, nil
}

// BGP is an ordered conjunction of triple patterns.
type BGP struct {
	patterns []Pattern
}

// NewBGP builds a BGP from Pattern, []Pattern (as returned by Path/Fan),
// or Triple (fully concrete, no variables) elements. Zero elements is a
// valid, trivially-satisfied BGP.
func NewBGP(items ...interface{}) (BGP, error) {
	var patterns []Pattern
	for _, item := range items {
		switch v := item.(type) {
		case Pattern:
			patterns = append(patterns, v)
		case []Pattern:
			patterns = append(patterns, v...)
		case Triple:
			patterns = append(patterns, Pattern{S: v.S, P: v.P, O: v.O})
		default:
			return BGP{}, fmt.Errorf("%w: unsupported BGP element %T", ErrInvalidQuery, item)
		}
	}
	return BGP{patterns: patterns}, nil
}

// Solution is a variable-name-to-term binding satisfying a BGP.
type Solution map[string]Term

func (s Solution) clone() Solution {
	out := make(Solution, len(s)+1)
	for k, v := range s {
		out[k] = v
	}
	return out
}

func extendBinding(b Solution, name string, t Term) (Solution, bool) {
	if existing, ok := b[name]; ok {
		return b, termEqual(existing, t)
	}
	nb := b.clone()
	nb[name] = t
	return nb, true
}

func patternVarNames(p Pattern) []string {
	var names []string
	add := func(v interface{}) {
		if vr, ok := v.(Var); ok {
			for _, n := range names {
				if n == vr.Name {
					return
				}
			}
			names = append(names, vr.Name)
		}
	}
	add(p.S)
	add(p.P)
	add(p.O)
	return names
}

// planPatterns reorders patterns so each step's as many variables as
// possible are already bound by a preceding step, per the spec's
// selectivity heuristic; ties keep the caller's original relative order.
func planPatterns(patterns []Pattern) []Pattern {
	remaining := append([]Pattern(nil), patterns...)
	bound := map[string]bool{}
	order := make([]Pattern, 0, len(patterns))
	for len(remaining) > 0 {
		bestIdx, bestScore := 0, -1
		for i, p := range remaining {
			score := 0
			for _, n := range patternVarNames(p) {
				if !bound[n] {
					score++
				}
			}
			if bestScore == -1 || score < bestScore {
				bestIdx, bestScore = i, score
			}
		}
		chosen := remaining[bestIdx]
		order = append(order, chosen)
		for _, n := range patternVarNames(chosen) {
			bound[n] = true
		}
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}
	return order
}

func resolveElem(elem interface{}, binding Solution) (value interface{}, isVar bool, varName string) {
	if v, ok := elem.(Var); ok {
		if t, bound := binding[v.Name]; bound {
			return t, false, ""
		}
		return nil, true, v.Name
	}
	return elem, false, ""
}

func candidateDescriptions(g Graph, subjectTerm Term, isVar bool) []Description {
	if !isVar {
		if d, ok := g.Fetch(subjectTerm); ok {
			return []Description{d}
		}
		return nil
	}
	out := make([]Description, 0, len(g.descs))
	for _, d := range g.descs {
		out = append(out, d)
	}
	return out
}

// solve performs the plan->match->join->emit algorithm shared by both
// execution strategies. yield is called once per solution; returning
// false from yield aborts the search immediately (the streaming
// strategy's cancellation hook).
func solve(g Graph, patterns []Pattern, binding Solution, yield func(Solution) bool) bool {
	if len(patterns) == 0 {
		return yield(binding)
	}
	pat, rest := patterns[0], patterns[1:]

	sVal, sIsVar, sVarName := resolveElem(pat.S, binding)
	var sTerm Term
	if !sIsVar {
		sTerm = sVal.(Term)
	}
	for _, d := range candidateDescriptions(g, sTerm, sIsVar) {
		b1 := binding
		if sIsVar {
			var ok bool
			b1, ok = extendBinding(binding, sVarName, d.Subject())
			if !ok {
				continue
			}
		}

		pVal, pIsVar, pVarName := resolveElem(pat.P, b1)
		var preds []IRI
		if pIsVar {
			preds = d.Predicates()
		} else {
			iri, ok := pVal.(IRI)
			if !ok {
				continue
			}
			preds = []IRI{iri}
		}

		for _, p := range preds {
			objs, ok := d.Fetch(p)
			if !ok {
				continue
			}
			b2 := b1
			if pIsVar {
				var ok2 bool
				b2, ok2 = extendBinding(b1, pVarName, p)
				if !ok2 {
					continue
				}
			}

			oVal, oIsVar, oVarName := resolveElem(pat.O, b2)
			var oTerm Term
			if !oIsVar {
				oTerm = oVal.(Term)
			}
			for _, o := range objs {
				b3 := b2
				if oIsVar {
					var ok3 bool
					b3, ok3 = extendBinding(b2, oVarName, o)
					if !ok3 {
						continue
					}
				} else if !termEqual(o, oTerm) {
					continue
				}
				if !solve(g, rest, b3, yield) {
					return false
				}
			}
		}
	}
	return true
}

// MaterializeSolutions eagerly evaluates bgp against g and returns every
// solution.
func MaterializeSolutions(g Graph, bgp BGP) ([]Solution, error) {
	ordered := planPatterns(bgp.patterns)
	var out []Solution
	solve(g, ordered, Solution{}, func(s Solution) bool {
		out = append(out, s)
		return true
	})
	if out == nil {
		out = []Solution{}
	}
	return out, nil
}
