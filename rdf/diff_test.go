package rdf

import (
	"strings"
	"testing"
)

func TestDiffAddedAndRemoved(t *testing.T) {
	a, err := NewGraph([]interface{}{
		Tuple{S: "http://example.org/s", P: "http://example.org/p", O: "http://example.org/o1"},
		Tuple{S: "http://example.org/s", P: "http://example.org/p", O: "http://example.org/shared"},
	})
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewGraph([]interface{}{
		Tuple{S: "http://example.org/s", P: "http://example.org/p", O: "http://example.org/o2"},
		Tuple{S: "http://example.org/s", P: "http://example.org/p", O: "http://example.org/shared"},
	})
	if err != nil {
		t.Fatal(err)
	}
	d := Diff(a, b)
	if d.Equal() {
		t.Fatal("expected a non-empty diff")
	}
	if len(d.Added) != 1 || d.Added[0].O != Term(MustIRI("http://example.org/o2")) {
		t.Fatalf("expected Added to contain o2, got %v", d.Added)
	}
	if len(d.Removed) != 1 || d.Removed[0].O != Term(MustIRI("http://example.org/o1")) {
		t.Fatalf("expected Removed to contain o1, got %v", d.Removed)
	}
}

func TestDiffEqualGraphsHaveNoDiff(t *testing.T) {
	a, err := NewGraph([]interface{}{
		Tuple{S: "http://example.org/s", P: "http://example.org/p", O: "http://example.org/o"},
	})
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewGraph([]interface{}{
		Tuple{S: "http://example.org/s", P: "http://example.org/p", O: "http://example.org/o"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !Diff(a, b).Equal() {
		t.Fatal("expected no diff between identical graphs")
	}
}

func TestUnifiedProducesReadableDiff(t *testing.T) {
	a, err := NewGraph([]interface{}{
		Tuple{S: "http://example.org/s", P: "http://example.org/p", O: "http://example.org/o1"},
	})
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewGraph([]interface{}{
		Tuple{S: "http://example.org/s", P: "http://example.org/p", O: "http://example.org/o2"},
	})
	if err != nil {
		t.Fatal(err)
	}
	out, err := Unified(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "o1") || !strings.Contains(out, "o2") {
		t.Fatalf("expected unified diff to mention both differing objects, got:\n%s", out)
	}
}
