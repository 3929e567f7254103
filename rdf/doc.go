// Package rdf is an in-memory library for the RDF 1.1 data model: graphs of
// subject-predicate-object statements about resources identified by IRIs or
// blank nodes, whose objects may also be typed or language-tagged literals.
//
// The data model has four levels, each an immutable value:
//
//	Term  -> Triple/Quad -> Description -> Graph -> Dataset
//
// Every mutator (Add, Put, Delete, ...) returns a new value; nothing is
// mutated in place, so concurrent readers of the same value never need to
// synchronize.
//
// A basic-graph-pattern matcher (MaterializeSolutions/StreamSolutions)
// evaluates conjunctive triple-pattern queries against a Graph, and a
// Turtle encoder and decoder round-trip Graphs to and from text.
//
// Example (building a graph and matching a pattern):
//
//	knows := rdf.MustIRI("http://ex/knows")
//	g, _ := rdf.NewGraph(rdf.T(rdf.MustIRI("http://ex/alice"), knows, rdf.MustIRI("http://ex/bob")))
//	pat, _ := rdf.Pat(rdf.Variable("x"), knows, rdf.Variable("y"))
//	bgp, _ := rdf.NewBGP(pat)
//	solutions, _ := rdf.MaterializeSolutions(g, bgp)
//	for _, sol := range solutions {
//	    fmt.Println(sol["x"], sol["y"])
//	}
//
// Supported serialization formats are N-Triples, N-Quads, Turtle, and
// (via github.com/piprate/json-gold) JSON-LD.
package rdf
