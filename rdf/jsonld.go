package rdf

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	ld "github.com/piprate/json-gold/ld"
)

// EncodeJSONLD renders g as an expanded JSON-LD document: its triples
// are serialized to N-Quads and handed to json-gold's FromRDF, the
// same N-Quads intermediate the teacher's jsonld_api.go builds before
// calling into json-gold.
func EncodeJSONLD(g Graph) (string, error) {
	nquads := EncodeNTriples(g)
	proc := ld.NewJsonLdProcessor()
	opts := ld.NewJsonLdOptions("")
	opts.Format = "application/n-quads"
	doc, err := proc.FromRDF(nquads, opts)
	if err != nil {
		return "", fmt.Errorf("jsonld: %w", err)
	}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("jsonld: %w", err)
	}
	return string(out), nil
}

// DecodeJSONLD parses a JSON-LD document into a Graph: json-gold
// expands it and converts it to N-Quads, which feeds into the
// package's own N-Triples parser so JSON-LD exercises the same
// coercion and term construction path every other format does,
// instead of a parallel Go-object-to-Term mapping.
func DecodeJSONLD(r io.Reader) (Graph, error) {
	var doc interface{}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Graph{}, fmt.Errorf("jsonld: %w", err)
	}
	proc := ld.NewJsonLdProcessor()
	opts := ld.NewJsonLdOptions("")
	result, err := proc.ToRDF(doc, opts)
	if err != nil {
		return Graph{}, fmt.Errorf("jsonld: %w", err)
	}
	dataset, ok := result.(*ld.RDFDataset)
	if !ok {
		return Graph{}, fmt.Errorf("jsonld: unexpected ToRDF result %T", result)
	}
	serializer := &ld.NQuadRDFSerializer{}
	serialized, err := serializer.Serialize(dataset)
	if err != nil {
		return Graph{}, fmt.Errorf("jsonld: %w", err)
	}
	nquads, ok := serialized.(string)
	if !ok {
		return Graph{}, fmt.Errorf("jsonld: unexpected N-Quads result %T", serialized)
	}
	return DecodeNTriples(strings.NewReader(nquads))
}
