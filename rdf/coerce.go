package rdf

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ParseIRI validates s as an absolute IRI and returns it as an IRI: s must
// be non-empty, start with a scheme, parse as a URL, and contain no control
// characters or characters that are disallowed inside an IRI reference.
func ParseIRI(s string) (IRI, error) {
	if s == "" {
		return IRI{}, fmt.Errorf("%w: empty string", ErrInvalidIRI)
	}
	if !hasIRIScheme(s) {
		return IRI{}, fmt.Errorf("%w: %q is not absolute", ErrInvalidIRI, s)
	}
	if _, err := url.Parse(s); err != nil {
		return IRI{}, fmt.Errorf("%w: %v", ErrInvalidIRI, err)
	}
	for i, r := range s {
		if r < 0x20 {
			return IRI{}, fmt.Errorf("%w: control character at byte %d", ErrInvalidIRI, i)
		}
		if r == ' ' || r == '<' || r == '>' || r == '"' || r == '{' || r == '}' || r == '|' || r == '^' || r == '`' || r == '\\' {
			return IRI{}, fmt.Errorf("%w: disallowed character %q", ErrInvalidIRI, r)
		}
	}
	return IRI{Value: s}, nil
}

// MustIRI is ParseIRI but panics on error; useful for tests and literal
// construction of well-known IRIs.
func MustIRI(s string) IRI {
	iri, err := ParseIRI(s)
	if err != nil {
		panic(err)
	}
	return iri
}

func hasIRIScheme(s string) bool {
	i := strings.IndexByte(s, ':')
	if i <= 0 {
		return false
	}
	scheme := s[:i]
	for j, r := range scheme {
		alpha := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		if j == 0 && !alpha {
			return false
		}
		if !alpha && !(r >= '0' && r <= '9') && r != '+' && r != '-' && r != '.' {
			return false
		}
	}
	return true
}

// ResolveIRI resolves a possibly-relative IRI reference against base,
// following RFC 3986 reference resolution via the standard library's URL
// type. If base is empty, ref is returned unchanged (and must already be
// absolute).
func ResolveIRI(base, ref string) (IRI, error) {
	if base == "" {
		return ParseIRI(ref)
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return IRI{}, fmt.Errorf("%w: bad base %q: %v", ErrInvalidIRI, base, err)
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return IRI{}, fmt.Errorf("%w: bad reference %q: %v", ErrInvalidIRI, ref, err)
	}
	resolved := baseURL.ResolveReference(refURL)
	return ParseIRI(resolved.String())
}

// CoerceSubject coerces v into a subject Term: a Term already (IRI,
// BlankNode, or TripleTerm), a string (parsed as an IRI), or a VocabToken.
func CoerceSubject(v interface{}) (Term, error) {
	t, err := coerceAny(v)
	if err != nil {
		return nil, err
	}
	switch t.Kind() {
	case KindIRI, KindBlankNode, KindTripleTerm:
		return t, nil
	default:
		return nil, fmt.Errorf("%w: literal not allowed as subject", ErrInvalidTerm)
	}
}

// CoercePredicate coerces v into a predicate IRI: an IRI, a string, or a
// VocabToken. Anything else (blank nodes, literals) is rejected.
func CoercePredicate(v interface{}) (IRI, error) {
	switch x := v.(type) {
	case IRI:
		return x, nil
	case string:
		return ParseIRI(x)
	case VocabToken:
		return x(), nil
	default:
		t, err := coerceAny(v)
		if err != nil {
			return IRI{}, err
		}
		if iri, ok := t.(IRI); ok {
			return iri, nil
		}
		return IRI{}, fmt.Errorf("%w: predicate must be an IRI", ErrInvalidTerm)
	}
}

// CoerceObject coerces v into an object Term: any Term, a string (parsed
// as an IRI — use Literal{} directly for string literals), a VocabToken,
// or a native Go value (bool/int*/float*/time.Time), which becomes a
// typed literal per the same mapping NewLiteral documents.
func CoerceObject(v interface{}) (Term, error) {
	return coerceAny(v)
}

func coerceAny(v interface{}) (Term, error) {
	switch x := v.(type) {
	case nil:
		return nil, fmt.Errorf("%w: nil value", ErrInvalidTerm)
	case Term:
		return x, nil
	case string:
		return ParseIRI(x)
	case VocabToken:
		return x(), nil
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, time.Time:
		return NewLiteral(x), nil
	default:
		return nil, fmt.Errorf("%w: cannot coerce %T", ErrInvalidTerm, v)
	}
}

// NewLiteral builds a Literal from a native Go value, inferring its
// datatype: bool -> xsd:boolean, integer kinds -> xsd:integer, float
// kinds -> xsd:double, time.Time -> xsd:dateTime (RFC3339), anything else
// -> xsd:string via fmt.Sprint.
func NewLiteral(v interface{}) Literal {
	switch t := v.(type) {
	case bool:
		return Literal{Lexical: strconv.FormatBool(t), Datatype: XSDBoolean}
	case int:
		return Literal{Lexical: strconv.FormatInt(int64(t), 10), Datatype: XSDInteger}
	case int8:
		return Literal{Lexical: strconv.FormatInt(int64(t), 10), Datatype: XSDInteger}
	case int16:
		return Literal{Lexical: strconv.FormatInt(int64(t), 10), Datatype: XSDInteger}
	case int32:
		return Literal{Lexical: strconv.FormatInt(int64(t), 10), Datatype: XSDInteger}
	case int64:
		return Literal{Lexical: strconv.FormatInt(t, 10), Datatype: XSDInteger}
	case uint:
		return Literal{Lexical: strconv.FormatUint(uint64(t), 10), Datatype: XSDInteger}
	case uint8:
		return Literal{Lexical: strconv.FormatUint(uint64(t), 10), Datatype: XSDInteger}
	case uint16:
		return Literal{Lexical: strconv.FormatUint(uint64(t), 10), Datatype: XSDInteger}
	case uint32:
		return Literal{Lexical: strconv.FormatUint(uint64(t), 10), Datatype: XSDInteger}
	case uint64:
		return Literal{Lexical: strconv.FormatUint(t, 10), Datatype: XSDInteger}
	case float32:
		return Literal{Lexical: strconv.FormatFloat(float64(t), 'E', -1, 32), Datatype: XSDDouble}
	case float64:
		return Literal{Lexical: strconv.FormatFloat(t, 'E', -1, 64), Datatype: XSDDouble}
	case string:
		return Literal{Lexical: t, Datatype: XSDString}
	case time.Time:
		return Literal{Lexical: t.UTC().Format(time.RFC3339Nano), Datatype: IRI{Value: "http://www.w3.org/2001/XMLSchema#dateTime"}}
	default:
		return Literal{Lexical: fmt.Sprint(t), Datatype: XSDString}
	}
}

// NewLangLiteral builds a language-tagged Literal. lang is lowercased for
// comparison purposes elsewhere but stored as given for rendering.
func NewLangLiteral(lexical, lang string) Literal {
	return Literal{Lexical: lexical, Lang: lang}
}

// NewTypedLiteral builds a Literal with an explicit datatype.
func NewTypedLiteral(lexical string, datatype IRI) Literal {
	return Literal{Lexical: lexical, Datatype: datatype}
}
