package rdf

import "testing"

func TestDatasetAddDefaultAndNamedGraph(t *testing.T) {
	ds, err := NewDataset([]interface{}{
		Quad{S: MustIRI("http://example.org/s1"), P: MustIRI("http://example.org/p"), O: MustIRI("http://example.org/o")},
		Quad{
			S: MustIRI("http://example.org/s2"), P: MustIRI("http://example.org/p"), O: MustIRI("http://example.org/o"),
			G: MustIRI("http://example.org/g"),
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if ds.DefaultGraph().TripleCount() != 1 {
		t.Fatalf("expected 1 default-graph triple, got %d", ds.DefaultGraph().TripleCount())
	}
	named, ok := ds.Graph(MustIRI("http://example.org/g"))
	if !ok || named.TripleCount() != 1 {
		t.Fatalf("expected named graph with 1 triple, got ok=%v count=%d", ok, named.TripleCount())
	}
	if len(ds.GraphNames()) != 1 {
		t.Fatalf("expected 1 named graph, got %d", len(ds.GraphNames()))
	}
}

func TestDatasetDeleteGraph(t *testing.T) {
	gName := MustIRI("http://example.org/g")
	g, err := NewGraph([]interface{}{
		Tuple{S: "http://example.org/s", P: "http://example.org/p", O: "http://example.org/o"},
	})
	if err != nil {
		t.Fatal(err)
	}
	ds, err := NewDataset(nil)
	if err != nil {
		t.Fatal(err)
	}
	ds = ds.PutGraph(gName, g)
	if _, ok := ds.Graph(gName); !ok {
		t.Fatal("expected named graph to be present after PutGraph")
	}
	ds = ds.DeleteGraph(gName)
	if _, ok := ds.Graph(gName); ok {
		t.Fatal("expected named graph to be gone after DeleteGraph")
	}
}

func TestDatasetEqual(t *testing.T) {
	a, err := NewDataset([]interface{}{
		Quad{S: MustIRI("http://example.org/s"), P: MustIRI("http://example.org/p"), O: MustIRI("http://example.org/o")},
	})
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewDataset([]interface{}{
		Quad{S: MustIRI("http://example.org/s"), P: MustIRI("http://example.org/p"), O: MustIRI("http://example.org/o")},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !a.Equal(b) {
		t.Fatal("expected datasets with identical quads to be Equal")
	}
}
