package rdf

import (
	"strings"
	"testing"
)

func TestNTriplesRoundTrip(t *testing.T) {
	g, err := NewGraph([]interface{}{
		Triple{S: MustIRI("http://example.org/s"), P: MustIRI("http://example.org/p"), O: MustIRI("http://example.org/o")},
		Triple{S: BlankNode{ID: "b0"}, P: MustIRI("http://example.org/p"), O: NewLangLiteral("bonjour", "fr")},
	})
	if err != nil {
		t.Fatal(err)
	}
	doc := EncodeNTriples(g)
	g2, err := DecodeNTriples(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("decode failed on:\n%s\nerror: %v", doc, err)
	}
	if !g.Equal(g2) {
		t.Fatalf("N-Triples round-trip mismatch.\n%s", doc)
	}
}

func TestDecodeNTriplesSkipsCommentsAndBlankLines(t *testing.T) {
	input := `# a leading comment
<http://example.org/s> <http://example.org/p> <http://example.org/o> .

# trailing comment
`
	g, err := DecodeNTriples(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if g.TripleCount() != 1 {
		t.Fatalf("expected 1 triple, got %d", g.TripleCount())
	}
}

func TestDecodeNTriplesKeepsHashInsideLiteral(t *testing.T) {
	input := `<http://example.org/s> <http://example.org/p> "contains # not a comment" .` + "\n"
	g, err := DecodeNTriples(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	d, ok := g.Fetch("http://example.org/s")
	if !ok {
		t.Fatal("expected subject to be present")
	}
	objs, ok := d.Fetch("http://example.org/p")
	if !ok || len(objs) != 1 {
		t.Fatalf("expected 1 object, got %v", objs)
	}
	lit, ok := objs[0].(Literal)
	if !ok || lit.Lexical != "contains # not a comment" {
		t.Fatalf("expected literal to retain its '#', got %v", objs[0])
	}
}

func TestNQuadsRoundTripWithNamedGraph(t *testing.T) {
	ds, err := NewDataset([]interface{}{
		Quad{S: MustIRI("http://example.org/s"), P: MustIRI("http://example.org/p"), O: MustIRI("http://example.org/o")},
		Quad{
			S: MustIRI("http://example.org/s2"), P: MustIRI("http://example.org/p"), O: MustIRI("http://example.org/o"),
			G: MustIRI("http://example.org/g"),
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	doc := EncodeNQuads(ds)
	ds2, err := DecodeNQuads(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("decode failed on:\n%s\nerror: %v", doc, err)
	}
	if !ds.Equal(ds2) {
		t.Fatalf("N-Quads round-trip mismatch.\n%s", doc)
	}
}

func TestDecodeNTriplesMaxTriplesLimit(t *testing.T) {
	input := `<http://example.org/s1> <http://example.org/p> <http://example.org/o> .
<http://example.org/s2> <http://example.org/p> <http://example.org/o> .
`
	_, err := DecodeNTriples(strings.NewReader(input), WithMaxTriples(1))
	if err == nil {
		t.Fatal("expected MaxTriples limit to produce an error")
	}
}
