package rdf

import (
	"errors"
	"strings"
	"testing"
)

func TestDecodeNTriplesReportsParseErrorPosition(t *testing.T) {
	input := "<http://example.org/s> <http://example.org/p> not-a-term .\n"
	_, err := DecodeNTriples(strings.NewReader(input))
	if err == nil {
		t.Fatal("expected a parse error for a malformed object term")
	}
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected a *ParseError, got %T: %v", err, err)
	}
	if perr.Format != "ntriples" || perr.Line != 1 {
		t.Fatalf("expected ntriples:1, got %s:%d", perr.Format, perr.Line)
	}
}

func TestDecodeTurtleReportsParseErrorOnUnterminatedStatement(t *testing.T) {
	input := "<http://example.org/s> <http://example.org/p> <http://example.org/o>\n"
	_, err := DecodeTurtle(strings.NewReader(input))
	if err == nil {
		t.Fatal("expected a parse error for a statement missing its terminating '.'")
	}
}
