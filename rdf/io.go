package rdf

import (
	"fmt"
	"os"
)

// ReadFile reads and decodes path, inferring its Format from the
// file extension the way the teacher's facade.go infers an AnyFormat
// from a path, scoped here to the four formats this package supports.
func ReadFile(path string, opts ...Option) (Graph, error) {
	format, ok := DetectFormat(path)
	if !ok {
		return Graph{}, fmt.Errorf("rdf: cannot infer format from path %q", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return Graph{}, err
	}
	defer f.Close()

	switch format {
	case FormatTurtle:
		return DecodeTurtle(f, opts...)
	case FormatNTriples:
		return DecodeNTriples(f, opts...)
	case FormatJSONLD:
		return DecodeJSONLD(f)
	case FormatNQuads:
		ds, err := DecodeNQuads(f, opts...)
		if err != nil {
			return Graph{}, err
		}
		return defaultGraphOf(ds), nil
	default:
		return Graph{}, fmt.Errorf("rdf: unsupported format %q", format)
	}
}

// WriteFile encodes g and writes it to path, inferring its Format from
// the file extension.
func WriteFile(g Graph, path string) error {
	format, ok := DetectFormat(path)
	if !ok {
		return fmt.Errorf("rdf: cannot infer format from path %q", path)
	}

	var body string
	switch format {
	case FormatTurtle:
		var err error
		body, err = EncodeTurtle(g)
		if err != nil {
			return err
		}
	case FormatNTriples:
		body = EncodeNTriples(g)
	case FormatJSONLD:
		var err error
		body, err = EncodeJSONLD(g)
		if err != nil {
			return err
		}
	case FormatNQuads:
		body = EncodeNQuads(datasetOf(g))
	default:
		return fmt.Errorf("rdf: unsupported format %q", format)
	}

	return os.WriteFile(path, []byte(body), 0o644)
}

// defaultGraphOf collects a Dataset's default-graph quads (G == nil)
// into a Graph, discarding named graphs. Used when a caller asks to
// read an N-Quads file as a single Graph.
func defaultGraphOf(ds Dataset) Graph {
	var triples []interface{}
	for _, q := range ds.Quads() {
		if q.G == nil {
			triples = append(triples, q.ToTriple())
		}
	}
	g, _ := NewGraph(triples)
	return g
}

// datasetOf wraps g's triples as a single default-graph Dataset, for
// encoders (like N-Quads) that operate on Dataset rather than Graph.
func datasetOf(g Graph) Dataset {
	var quads []interface{}
	for _, t := range g.Triples() {
		quads = append(quads, Quad{S: t.S, P: t.P, O: t.O})
	}
	ds, _ := NewDataset(quads)
	return ds
}
