package rdf

import "testing"

func TestGraphAddDeduplicatesTriples(t *testing.T) {
	g, err := NewGraph([]interface{}{
		Tuple{S: "http://example.org/s", P: "http://example.org/p", O: "http://example.org/o"},
		Tuple{S: "http://example.org/s", P: "http://example.org/p", O: "http://example.org/o"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if g.TripleCount() != 1 {
		t.Fatalf("expected 1 triple after dedup, got %d", g.TripleCount())
	}
}

func TestGraphImmutability(t *testing.T) {
	g, err := NewGraph(nil)
	if err != nil {
		t.Fatal(err)
	}
	g2, err := g.Add(Tuple{S: "http://example.org/s", P: "http://example.org/p", O: "http://example.org/o"})
	if err != nil {
		t.Fatal(err)
	}
	if g.TripleCount() != 0 {
		t.Fatalf("original graph must be unaffected by Add, got %d triples", g.TripleCount())
	}
	if g2.TripleCount() != 1 {
		t.Fatalf("expected new graph to carry 1 triple, got %d", g2.TripleCount())
	}
}

func TestGraphPutReplacesObjectSet(t *testing.T) {
	g, err := NewGraph([]interface{}{
		Tuple{S: "http://example.org/s", P: "http://example.org/p", O: "http://example.org/o1"},
		Tuple{S: "http://example.org/s", P: "http://example.org/other", O: "http://example.org/keep"},
	})
	if err != nil {
		t.Fatal(err)
	}
	g2, err := g.Put(Tuple{S: "http://example.org/s", P: "http://example.org/p", O: "http://example.org/o2"})
	if err != nil {
		t.Fatal(err)
	}
	d, ok := g2.Fetch("http://example.org/s")
	if !ok {
		t.Fatal("expected subject description to survive Put")
	}
	objs, ok := d.Fetch("http://example.org/p")
	if !ok || len(objs) != 1 || objs[0] != Term(MustIRI("http://example.org/o2")) {
		t.Fatalf("expected Put to replace object set with o2, got %v", objs)
	}
	if _, ok := d.Fetch("http://example.org/other"); !ok {
		t.Fatal("expected unrelated predicate to survive Put")
	}
}

func TestGraphDeleteEvictsEmptyDescription(t *testing.T) {
	g, err := NewGraph([]interface{}{
		Tuple{S: "http://example.org/s", P: "http://example.org/p", O: "http://example.org/o"},
	})
	if err != nil {
		t.Fatal(err)
	}
	g2, err := g.Delete(Tuple{S: "http://example.org/s", P: "http://example.org/p", O: "http://example.org/o"})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := g2.Fetch("http://example.org/s"); ok {
		t.Fatal("expected emptied subject description to be evicted")
	}
}

func TestGraphEqualIgnoresTripleOrder(t *testing.T) {
	a, err := NewGraph([]interface{}{
		Tuple{S: "http://example.org/s1", P: "http://example.org/p", O: "http://example.org/o"},
		Tuple{S: "http://example.org/s2", P: "http://example.org/p", O: "http://example.org/o"},
	})
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewGraph([]interface{}{
		Tuple{S: "http://example.org/s2", P: "http://example.org/p", O: "http://example.org/o"},
		Tuple{S: "http://example.org/s1", P: "http://example.org/p", O: "http://example.org/o"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !a.Equal(b) {
		t.Fatal("expected graphs with the same triples in different insertion order to be Equal")
	}
}
