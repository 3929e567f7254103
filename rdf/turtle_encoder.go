package rdf

import (
	"sort"
	"strings"
)

// TurtleOption configures EncodeTurtle.
type TurtleOption func(*turtleOptions)

type turtleOptions struct {
	topClasses []IRI
	indent     string
}

// WithTopClasses overrides the default "top classes" group (rdfs:Class)
// that descriptions are prioritized by, in declaration order.
func WithTopClasses(classes ...IRI) TurtleOption {
	return func(o *turtleOptions) { o.topClasses = classes }
}

// WithIndent sets the indentation string used before each predicate line
// (default two spaces).
func WithIndent(indent string) TurtleOption {
	return func(o *turtleOptions) { o.indent = indent }
}

type listCell struct {
	first Term
	rest  Term
}

// turtleEnc holds precomputed folding state for one encoding pass.
type turtleEnc struct {
	g              Graph
	opts           turtleOptions
	objRefs        map[string]int // blank node key -> count of appearances as an object
	cells          map[string]listCell
	chainElems     map[string][]Term // cell key -> ordered elements of the well-formed subchain starting there
	restReferenced map[string]bool   // cell key -> reached only via a preceding cell's rdf:rest
	rendering      map[string]bool   // blank-node keys currently being folded inline, to break reference cycles
}

// EncodeTurtle pretty-prints g as a Turtle document. The result
// round-trips (via DecodeTurtle) to a graph isomorphic to g modulo
// blank-node renaming.
func EncodeTurtle(g Graph, opts ...TurtleOption) (string, error) {
	o := turtleOptions{topClasses: []IRI{RDFSClass}, indent: "  "}
	for _, opt := range opts {
		opt(&o)
	}
	e := &turtleEnc{g: g, opts: o}
	e.precompute()

	var b strings.Builder
	e.writeBase(&b)
	e.writePrefixes(&b)

	for _, d := range e.orderedDescriptions() {
		e.writeDescription(&b, d)
	}
	return b.String(), nil
}

func (e *turtleEnc) precompute() {
	e.objRefs = map[string]int{}
	for _, t := range e.g.Triples() {
		if t.O.Kind() == KindBlankNode {
			e.objRefs[t.O.TermString()]++
		}
	}

	e.cells = map[string]listCell{}
	for key, d := range e.g.descs {
		if d.subject.Kind() != KindBlankNode {
			continue
		}
		preds := d.Predicates()
		if len(preds) != 2 || preds[0].Value != RDFFirst.Value || preds[1].Value != RDFRest.Value {
			continue
		}
		firsts, _ := d.Fetch(RDFFirst)
		rests, _ := d.Fetch(RDFRest)
		if len(firsts) != 1 || len(rests) != 1 {
			continue
		}
		if e.objRefs[key] > 1 {
			continue
		}
		e.cells[key] = listCell{first: firsts[0], rest: rests[0]}
	}

	e.restReferenced = map[string]bool{}
	for _, c := range e.cells {
		if c.rest.Kind() == KindBlankNode {
			e.restReferenced[c.rest.TermString()] = true
		}
	}

	e.chainElems = map[string][]Term{}
	for key := range e.cells {
		if elems, ok := e.walkList(key); ok {
			e.chainElems[key] = elems
		}
	}
}

// walkList follows the rdf:first/rdf:rest chain from key, returning the
// element values if the chain is well-formed (every step a registered
// cell, terminating at rdf:nil).
func (e *turtleEnc) walkList(key string) (elems []Term, ok bool) {
	cur := key
	for {
		cell, present := e.cells[cur]
		if !present {
			return nil, false
		}
		elems = append(elems, cell.first)
		if cell.rest.Kind() == KindIRI && cell.rest.(IRI).Value == RDFNil.Value {
			return elems, true
		}
		if cell.rest.Kind() != KindBlankNode {
			return nil, false
		}
		cur = cell.rest.TermString()
	}
}

// excludedFromTopLevel reports whether key's description must NOT get its
// own top-level statement: interior list members (reached only via a
// preceding cell's rdf:rest) always fold away, and a list head folds away
// once something outside the chain references it as an object. A list
// head with no outside reference (objRefs == 0) still gets a top-level
// statement, but writeDescription renders it as "( ... ) ." list sugar
// instead of its raw rdf:first/rdf:rest triples.
func (e *turtleEnc) excludedFromTopLevel(key string) bool {
	if e.restReferenced[key] {
		return true
	}
	if _, isCell := e.cells[key]; isCell {
		if _, validChain := e.chainElems[key]; validChain {
			return e.objRefs[key] >= 1
		}
	}
	return false
}

func (e *turtleEnc) writeBase(b *strings.Builder) {
	if e.g.base == "" {
		return
	}
	b.WriteString("@base <")
	b.WriteString(e.g.base)
	b.WriteString("> .\n")
}

func (e *turtleEnc) writePrefixes(b *strings.Builder) {
	if e.g.prefixes.Len() == 0 {
		return
	}
	e.g.prefixes.Each(func(prefix, ns string) {
		label := prefix + ":"
		if prefix == "" {
			label = ":"
		}
		b.WriteString("@prefix ")
		b.WriteString(label)
		b.WriteString(" <")
		b.WriteString(ns)
		b.WriteString("> .\n")
	})
	b.WriteByte('\n')
}

func (e *turtleEnc) orderedDescriptions() []Description {
	var base, topClass, rest []Description
	inTopClass := func(d Description) bool {
		objs, ok := d.Fetch(RDFType)
		if !ok {
			return false
		}
		for _, tc := range e.opts.topClasses {
			for _, o := range objs {
				if iri, ok := o.(IRI); ok && iri.Value == tc.Value {
					return true
				}
			}
		}
		return false
	}
	for key, d := range e.g.descs {
		if e.excludedFromTopLevel(key) {
			continue
		}
		switch {
		case e.g.base != "" && d.subject.Kind() == KindIRI && d.subject.(IRI).Value == e.g.base:
			base = append(base, d)
		case inTopClass(d):
			topClass = append(topClass, d)
		default:
			rest = append(rest, d)
		}
	}
	sortDescriptions(topClass)
	sortDescriptions(rest)
	out := make([]Description, 0, len(base)+len(topClass)+len(rest))
	out = append(out, base...)
	out = append(out, topClass...)
	out = append(out, rest...)
	return out
}

func sortDescriptions(ds []Description) {
	sort.Slice(ds, func(i, j int) bool {
		si, sj := ds[i].subject, ds[j].subject
		if si.Kind() != sj.Kind() {
			return si.Kind() == KindIRI
		}
		return si.TermString() < sj.TermString()
	})
}

var predicateRank = map[string]int{
	RDFType.Value:   0,
	RDFSLabel.Value: 1,
	DCTitle.Value:   2,
}

func orderedPredicates(d Description) []IRI {
	preds := d.Predicates()
	sort.SliceStable(preds, func(i, j int) bool {
		ri, oki := predicateRank[preds[i].Value]
		rj, okj := predicateRank[preds[j].Value]
		if oki && okj {
			return ri < rj
		}
		if oki != okj {
			return oki
		}
		return preds[i].Value < preds[j].Value
	})
	return preds
}

func (e *turtleEnc) writeDescription(b *strings.Builder, d Description) {
	subject, isListHead := e.renderTopLevelSubject(d.subject)
	b.WriteString(subject)
	if isListHead {
		b.WriteString(" .\n")
		return
	}
	preds := orderedPredicates(d)
	for i, p := range preds {
		if i == 0 {
			b.WriteByte(' ')
		} else {
			b.WriteString(" ;\n")
			b.WriteString(e.opts.indent)
		}
		b.WriteString(e.renderPredicate(p))
		b.WriteByte(' ')
		objs, _ := d.Fetch(p)
		for j, o := range objs {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteString(e.renderSubjectOrObject(o))
		}
	}
	b.WriteString(" .\n")
}

func (e *turtleEnc) renderPredicate(p IRI) string {
	if p.Value == RDFType.Value {
		return "a"
	}
	return e.renderIRI(p)
}

func (e *turtleEnc) renderIRI(iri IRI) string {
	if qname, ok := e.g.prefixes.Shrink(iri.Value); ok {
		return qname
	}
	if e.g.base != "" && strings.HasPrefix(iri.Value, e.g.base) {
		rel := iri.Value[len(e.g.base):]
		if rel != "" {
			return "<" + rel + ">"
		}
	}
	return "<" + iri.Value + ">"
}

func (e *turtleEnc) renderSubjectOrObject(t Term) string {
	switch v := t.(type) {
	case IRI:
		if v.Value == RDFNil.Value {
			return "()"
		}
		return e.renderIRI(v)
	case BlankNode:
		return e.renderBlankNode(v)
	case Literal:
		return e.renderLiteral(v)
	case TripleTerm:
		return "<<" + e.renderSubjectOrObject(v.S) + " " + e.renderIRI(v.P) + " " + e.renderSubjectOrObject(v.O) + ">>"
	default:
		return t.TermString()
	}
}

// renderTopLevelSubject renders a description's own subject. Blank-node
// subjects never fold into [...] property-list sugar: that sugar exists
// only for a blank node's occurrence as someone else's object, and
// folding a subject into a containing description's property list would
// need that containing description to exist, which a top-level subject
// by definition isn't part of. An unreferenced list head is the one
// exception: nothing points to it, so nothing is lost by writing it as
// "( ... )" instead of "_:label". The second return value reports this
// case, telling writeDescription to skip the predicate-object list
// entirely (its only predicates, rdf:first/rdf:rest, are already implied
// by the list sugar).
func (e *turtleEnc) renderTopLevelSubject(t Term) (string, bool) {
	if bn, ok := t.(BlankNode); ok {
		if elems, isRoot := e.rootListElems(bn); isRoot {
			return e.renderList(elems), true
		}
		return "_:" + bn.ID, false
	}
	return e.renderSubjectOrObject(t), false
}

// rootListElems reports whether bn heads a well-formed rdf:first/rdf:rest
// chain that nothing else references as an object, along with its
// elements in order.
func (e *turtleEnc) rootListElems(bn BlankNode) ([]Term, bool) {
	key := bn.TermString()
	elems, ok := e.chainElems[key]
	if !ok || e.objRefs[key] != 0 {
		return nil, false
	}
	return elems, true
}

func (e *turtleEnc) renderBlankNode(bn BlankNode) string {
	key := bn.TermString()
	if e.rendering[key] {
		// A cycle through inline-folded blank nodes: fall back to a
		// plain label reference to avoid recursing forever.
		return "_:" + bn.ID
	}
	if elems, ok := e.chainElems[key]; ok {
		if e.rendering == nil {
			e.rendering = map[string]bool{}
		}
		e.rendering[key] = true
		out := e.renderList(elems)
		delete(e.rendering, key)
		return out
	}
	if e.objRefs[key] == 1 {
		if d, ok := e.g.Fetch(bn); ok {
			if e.rendering == nil {
				e.rendering = map[string]bool{}
			}
			e.rendering[key] = true
			out := e.renderPropertyList(d)
			delete(e.rendering, key)
			return out
		}
	}
	return "_:" + bn.ID
}

func (e *turtleEnc) renderList(elems []Term) string {
	if len(elems) == 0 {
		return "()"
	}
	parts := make([]string, len(elems))
	for i, el := range elems {
		parts[i] = e.renderSubjectOrObject(el)
	}
	return "( " + strings.Join(parts, " ") + " )"
}

func (e *turtleEnc) renderPropertyList(d Description) string {
	if d.IsEmpty() {
		return "[]"
	}
	var b strings.Builder
	b.WriteString("[ ")
	preds := orderedPredicates(d)
	for i, p := range preds {
		if i > 0 {
			b.WriteString(" ; ")
		}
		b.WriteString(e.renderPredicate(p))
		b.WriteByte(' ')
		objs, _ := d.Fetch(p)
		for j, o := range objs {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteString(e.renderSubjectOrObject(o))
		}
	}
	b.WriteString(" ]")
	return b.String()
}

func (e *turtleEnc) renderLiteral(l Literal) string {
	if l.Lang != "" {
		return quoteLexical(l.Lexical) + "@" + l.Lang
	}
	dt := l.EffectiveDatatype()
	switch dt.Value {
	case XSDBoolean.Value, XSDInteger.Value, XSDDouble.Value, XSDDecimal.Value:
		if ValidLiteral(l) {
			return CanonicalLiteral(l).Lexical
		}
	}
	if dt.Value == XSDString.Value {
		return quoteLexical(l.Lexical)
	}
	return quoteLexical(l.Lexical) + "^^" + e.renderIRI(dt)
}

func quoteLexical(s string) string {
	if strings.ContainsAny(s, "\n\r") {
		return quoteTurtleLongString(s)
	}
	return quoteNTString(s)
}
