package rdf

import "sort"

// Dataset is a default graph plus a collection of named graphs, per RDF
// 1.1's dataset model. It is an immutable value like Graph.
type Dataset struct {
	defaultGraph Graph
	named        map[string]Graph // keyed by graph name TermString()
}

// NewDataset creates a Dataset seeded from data (nil, or any combination
// of Quad, Graph (named or unnamed), Dataset, or a []interface{} of
// those). An unnamed Graph or a Graph's triples coerced from Quads with
// a nil G contribute to the default graph.
func NewDataset(data interface{}) (Dataset, error) {
	ds := Dataset{defaultGraph: Graph{descs: map[string]Description{}}, named: map[string]Graph{}}
	items := flattenItems(data)
	return ds.Add(items...)
}

func (ds Dataset) clone() Dataset {
	nds := Dataset{defaultGraph: ds.defaultGraph, named: make(map[string]Graph, len(ds.named))}
	for k, g := range ds.named {
		nds.named[k] = g
	}
	return nds
}

// DefaultGraph returns the dataset's default (unnamed) graph.
func (ds Dataset) DefaultGraph() Graph { return ds.defaultGraph }

// Graph returns the named graph bound to name, or ok=false if absent.
// A nil name returns the default graph.
func (ds Dataset) Graph(name Term) (Graph, bool) {
	if name == nil {
		return ds.defaultGraph, true
	}
	g, ok := ds.named[name.TermString()]
	return g, ok
}

// GraphNames returns the names of every non-default graph in the dataset.
func (ds Dataset) GraphNames() []Term {
	out := make([]Term, 0, len(ds.named))
	for _, g := range ds.named {
		out = append(out, g.name)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TermString() < out[j].TermString() })
	return out
}

// quadsOf expands one seed item into quads, routing bare Graph/triple
// items into the default graph (G=nil) and Quad items by their own G.
func quadsOf(item interface{}) ([]Quad, error) {
	switch v := item.(type) {
	case Quad:
		return []Quad{v}, nil
	case Triple:
		return []Quad{v.ToQuad()}, nil
	case Tuple:
		triples, err := coerceItemToTriples(v)
		if err != nil {
			return nil, err
		}
		out := make([]Quad, len(triples))
		for i, t := range triples {
			out[i] = t.ToQuad()
		}
		return out, nil
	case Graph:
		triples := v.Triples()
		out := make([]Quad, len(triples))
		for i, t := range triples {
			out[i] = t.ToQuadInGraph(v.name)
		}
		return out, nil
	case Description:
		triples := v.Triples()
		out := make([]Quad, len(triples))
		for i, t := range triples {
			out[i] = t.ToQuad()
		}
		return out, nil
	default:
		return nil, coerceItemError(item)
	}
}

func coerceItemError(item interface{}) error {
	_, err := coerceItemToTriples(item)
	return err
}

// Add merges Quad/Triple/Tuple/Description/Graph items into the dataset,
// routing each by its graph name (nil -> default graph).
func (ds Dataset) Add(items ...interface{}) (Dataset, error) {
	nds := ds.clone()
	for _, raw := range flattenItems(items) {
		if src, ok := raw.(Dataset); ok {
			merged, err := nds.mergeDataset(src)
			if err != nil {
				return Dataset{}, err
			}
			nds = merged
			continue
		}
		quads, err := quadsOf(raw)
		if err != nil {
			return Dataset{}, err
		}
		for _, q := range quads {
			nds, err = nds.addQuad(q)
			if err != nil {
				return Dataset{}, err
			}
		}
	}
	return nds, nil
}

func (ds Dataset) mergeDataset(src Dataset) (Dataset, error) {
	nds, err := ds.Add(src.defaultGraph)
	if err != nil {
		return Dataset{}, err
	}
	for _, g := range src.named {
		nds, err = nds.Add(g)
		if err != nil {
			return Dataset{}, err
		}
	}
	return nds, nil
}

func (ds Dataset) addQuad(q Quad) (Dataset, error) {
	nds := ds.clone()
	if q.G == nil {
		g, err := nds.defaultGraph.Add(Triple{S: q.S, P: q.P, O: q.O})
		if err != nil {
			return Dataset{}, err
		}
		nds.defaultGraph = g
		return nds, nil
	}
	key := q.G.TermString()
	g, ok := nds.named[key]
	if !ok {
		var err error
		g, err = NewGraph(nil, WithGraphName(q.G))
		if err != nil {
			return Dataset{}, err
		}
	}
	g, err := g.Add(Triple{S: q.S, P: q.P, O: q.O})
	if err != nil {
		return Dataset{}, err
	}
	nds.named[key] = g
	return nds, nil
}

// Put replaces, within the target graph, the object set for every (s,p)
// pair named in items, analogous to Graph.Put but quad-scoped.
func (ds Dataset) Put(items ...interface{}) (Dataset, error) {
	nds := ds.clone()
	byGraph := map[string][]interface{}{}
	graphTerms := map[string]Term{}
	for _, raw := range flattenItems(items) {
		quads, err := quadsOf(raw)
		if err != nil {
			return Dataset{}, err
		}
		for _, q := range quads {
			key := ""
			if q.G != nil {
				key = q.G.TermString()
				graphTerms[key] = q.G
			}
			byGraph[key] = append(byGraph[key], Triple{S: q.S, P: q.P, O: q.O})
		}
	}
	for key, triples := range byGraph {
		if key == "" {
			g, err := nds.defaultGraph.Put(triples...)
			if err != nil {
				return Dataset{}, err
			}
			nds.defaultGraph = g
			continue
		}
		g, ok := nds.named[key]
		if !ok {
			var err error
			g, err = NewGraph(nil, WithGraphName(graphTerms[key]))
			if err != nil {
				return Dataset{}, err
			}
		}
		g, err := g.Put(triples...)
		if err != nil {
			return Dataset{}, err
		}
		nds.named[key] = g
	}
	return nds, nil
}

// Delete removes the given quads/triples (default graph for bare
// triples), evicting a named graph entirely once it becomes empty.
func (ds Dataset) Delete(items ...interface{}) (Dataset, error) {
	nds := ds.clone()
	for _, raw := range flattenItems(items) {
		quads, err := quadsOf(raw)
		if err != nil {
			return Dataset{}, err
		}
		for _, q := range quads {
			if q.G == nil {
				g, err := nds.defaultGraph.Delete(Triple{S: q.S, P: q.P, O: q.O})
				if err != nil {
					return Dataset{}, err
				}
				nds.defaultGraph = g
				continue
			}
			key := q.G.TermString()
			g, ok := nds.named[key]
			if !ok {
				continue
			}
			g, err = g.Delete(Triple{S: q.S, P: q.P, O: q.O})
			if err != nil {
				return Dataset{}, err
			}
			if g.TripleCount() == 0 {
				delete(nds.named, key)
			} else {
				nds.named[key] = g
			}
		}
	}
	return nds, nil
}

// DeleteGraph removes an entire named graph.
func (ds Dataset) DeleteGraph(name Term) Dataset {
	nds := ds.clone()
	delete(nds.named, name.TermString())
	return nds
}

// PutGraph binds name to g in full, replacing any prior graph of that name.
func (ds Dataset) PutGraph(name Term, g Graph) Dataset {
	nds := ds.clone()
	ng, _ := g.WithName(name)
	nds.named[name.TermString()] = ng
	return nds
}

// ClearDefaultGraph empties the dataset's default graph.
func (ds Dataset) ClearDefaultGraph() Dataset {
	nds := ds.clone()
	nds.defaultGraph = ds.defaultGraph.Clear()
	return nds
}

// Clear empties the dataset entirely.
func (ds Dataset) Clear() Dataset {
	return Dataset{defaultGraph: Graph{descs: map[string]Description{}}, named: map[string]Graph{}}
}

// Quads returns every quad in the dataset, default graph first.
func (ds Dataset) Quads() []Quad {
	out := make([]Quad, 0, ds.QuadCount())
	for _, t := range ds.defaultGraph.Triples() {
		out = append(out, t.ToQuad())
	}
	for _, name := range ds.GraphNames() {
		g := ds.named[name.TermString()]
		for _, t := range g.Triples() {
			out = append(out, t.ToQuadInGraph(name))
		}
	}
	return out
}

// QuadCount returns the total number of quads across every graph.
func (ds Dataset) QuadCount() int {
	n := ds.defaultGraph.TripleCount()
	for _, g := range ds.named {
		n += g.TripleCount()
	}
	return n
}

// Equal reports whether two datasets have the same default graph and the
// same set of identically-named graphs.
func (ds Dataset) Equal(o Dataset) bool {
	if !ds.defaultGraph.Equal(o.defaultGraph) {
		return false
	}
	if len(ds.named) != len(o.named) {
		return false
	}
	for key, g := range ds.named {
		og, ok := o.named[key]
		if !ok || !g.Equal(og) {
			return false
		}
	}
	return true
}

// Include reports whether (s,p,o,g) is present; g=nil checks the default graph.
func (ds Dataset) Include(s, p, o interface{}, g Term) bool {
	target, ok := ds.Graph(g)
	if !ok {
		return false
	}
	return target.Include(s, p, o)
}
