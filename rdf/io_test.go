package rdf

import (
	"path/filepath"
	"testing"
)

func TestReadWriteFileTurtle(t *testing.T) {
	g, err := NewGraph([]interface{}{
		Tuple{S: "http://example.org/s", P: "http://example.org/p", O: "http://example.org/o"},
	})
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "graph.ttl")
	if err := WriteFile(g, path); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	g2, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !g.Equal(g2) {
		t.Fatal("expected round-tripped Turtle file to be Equal to the original graph")
	}
}

func TestReadWriteFileNTriples(t *testing.T) {
	g, err := NewGraph([]interface{}{
		Tuple{S: "http://example.org/s", P: "http://example.org/p", O: "http://example.org/o"},
	})
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "graph.nt")
	if err := WriteFile(g, path); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	g2, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !g.Equal(g2) {
		t.Fatal("expected round-tripped N-Triples file to be Equal to the original graph")
	}
}

func TestDetectFormatUnknownExtension(t *testing.T) {
	if _, ok := DetectFormat("graph.unknown"); ok {
		t.Fatal("expected unknown extension to not resolve a Format")
	}
}

func TestReadFileUnknownExtensionErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.unknown")
	if _, err := ReadFile(path); err == nil {
		t.Fatal("expected ReadFile to error on an undetectable format")
	}
}
