package rdf

import (
	"path/filepath"
	"strings"
)

// Format identifies a graph/dataset serialization.
type Format string

const (
	FormatTurtle   Format = "turtle"
	FormatNTriples Format = "ntriples"
	FormatNQuads   Format = "nquads"
	FormatJSONLD   Format = "jsonld"
)

// DetectFormat infers a Format from a file path's extension.
func DetectFormat(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ttl":
		return FormatTurtle, true
	case ".nt":
		return FormatNTriples, true
	case ".nq":
		return FormatNQuads, true
	case ".jsonld", ".json":
		return FormatJSONLD, true
	default:
		return "", false
	}
}
