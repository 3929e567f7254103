package rdf

import (
	"strings"
	"testing"
)

func TestJSONLDRoundTrip(t *testing.T) {
	g, err := NewGraph([]interface{}{
		Triple{S: MustIRI("http://example.org/alice"), P: RDFType, O: MustIRI("http://example.org/Person")},
		Triple{S: MustIRI("http://example.org/alice"), P: MustIRI("http://example.org/name"), O: NewLiteral("Alice")},
	})
	if err != nil {
		t.Fatal(err)
	}
	doc, err := EncodeJSONLD(g)
	if err != nil {
		t.Fatalf("EncodeJSONLD failed: %v", err)
	}
	if !strings.Contains(doc, "example.org/alice") {
		t.Fatalf("expected encoded document to mention the subject IRI, got:\n%s", doc)
	}
	g2, err := DecodeJSONLD(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("DecodeJSONLD failed on:\n%s\nerror: %v", doc, err)
	}
	if g2.TripleCount() != g.TripleCount() {
		t.Fatalf("expected round-trip to preserve triple count, got %d want %d.\ndoc:\n%s", g2.TripleCount(), g.TripleCount(), doc)
	}
	d, ok := g2.Fetch("http://example.org/alice")
	if !ok {
		t.Fatalf("expected subject to survive round-trip.\ndoc:\n%s", doc)
	}
	if !d.Include(RDFType, MustIRI("http://example.org/Person")) {
		t.Fatalf("expected rdf:type Person to survive round-trip.\ndoc:\n%s", doc)
	}
}
