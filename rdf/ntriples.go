package rdf

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ntCursor is a single-line cursor shared by the N-Triples and N-Quads
// parsers, grounded on the teacher's ntriples.go cursor of the same
// shape (skipWS/consume/parseTerm/parseIRI/parseBlankNode/parseLiteral).
type ntCursor struct {
	input string
	pos   int
}

func (c *ntCursor) skipWS() {
	for c.pos < len(c.input) {
		switch c.input[c.pos] {
		case ' ', '\t', '\r', '\n':
			c.pos++
		default:
			return
		}
	}
}

func (c *ntCursor) consume(ch byte) bool {
	c.skipWS()
	if c.pos < len(c.input) && c.input[c.pos] == ch {
		c.pos++
		return true
	}
	return false
}

func (c *ntCursor) errorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

func (c *ntCursor) parseTerm(allowLiteral bool) (Term, error) {
	c.skipWS()
	if c.pos >= len(c.input) {
		return nil, c.errorf("unexpected end of line")
	}
	switch {
	case strings.HasPrefix(c.input[c.pos:], "<<"):
		return c.parseTripleTerm()
	case c.input[c.pos] == '<':
		return c.parseIRI()
	case strings.HasPrefix(c.input[c.pos:], "_:"):
		return c.parseBlankNode()
	case c.input[c.pos] == '"':
		if !allowLiteral {
			return nil, c.errorf("literal not allowed here")
		}
		return c.parseLiteral()
	default:
		return nil, c.errorf("unexpected token at byte %d", c.pos)
	}
}

func (c *ntCursor) parseIRI() (IRI, error) {
	if !c.consume('<') {
		return IRI{}, c.errorf("expected IRI")
	}
	start := c.pos
	for c.pos < len(c.input) && c.input[c.pos] != '>' {
		if c.input[c.pos] == '\\' {
			c.pos++
		}
		c.pos++
	}
	if c.pos >= len(c.input) {
		return IRI{}, c.errorf("unterminated IRI")
	}
	raw := c.input[start:c.pos]
	c.pos++
	value, err := unescapeString(raw)
	if err != nil {
		return IRI{}, err
	}
	return ParseIRI(value)
}

func (c *ntCursor) parseBlankNode() (BlankNode, error) {
	if !strings.HasPrefix(c.input[c.pos:], "_:") {
		return BlankNode{}, c.errorf("expected blank node")
	}
	c.pos += 2
	start := c.pos
	for c.pos < len(c.input) && !isTermDelimiter(c.input[c.pos]) {
		c.pos++
	}
	if start == c.pos {
		return BlankNode{}, c.errorf("blank node id missing")
	}
	return BlankNode{ID: c.input[start:c.pos]}, nil
}

func (c *ntCursor) parseLiteral() (Literal, error) {
	if !c.consume('"') {
		return Literal{}, c.errorf("expected literal")
	}
	start := c.pos
	for c.pos < len(c.input) {
		ch := c.input[c.pos]
		if ch == '\\' {
			c.pos += 2
			continue
		}
		if ch == '"' {
			break
		}
		c.pos++
	}
	if c.pos >= len(c.input) {
		return Literal{}, c.errorf("unterminated string literal")
	}
	raw := c.input[start:c.pos]
	c.pos++
	lexical, err := unescapeString(raw)
	if err != nil {
		return Literal{}, err
	}
	if strings.HasPrefix(c.input[c.pos:], "@") {
		c.pos++
		start := c.pos
		for c.pos < len(c.input) && !isTermDelimiter(c.input[c.pos]) {
			c.pos++
		}
		return Literal{Lexical: lexical, Lang: c.input[start:c.pos]}, nil
	}
	if strings.HasPrefix(c.input[c.pos:], "^^") {
		c.pos += 2
		dt, err := c.parseIRI()
		if err != nil {
			return Literal{}, err
		}
		return Literal{Lexical: lexical, Datatype: dt}, nil
	}
	return Literal{Lexical: lexical, Datatype: XSDString}, nil
}

func (c *ntCursor) parseTripleTerm() (Term, error) {
	if !strings.HasPrefix(c.input[c.pos:], "<<") {
		return nil, c.errorf("expected '<<'")
	}
	c.pos += 2
	s, err := c.parseTerm(false)
	if err != nil {
		return nil, err
	}
	predTerm, err := c.parseTerm(false)
	if err != nil {
		return nil, err
	}
	pred, ok := predTerm.(IRI)
	if !ok {
		return nil, c.errorf("predicate must be an IRI")
	}
	o, err := c.parseTerm(true)
	if err != nil {
		return nil, err
	}
	c.skipWS()
	if !strings.HasPrefix(c.input[c.pos:], ">>") {
		return nil, c.errorf("expected '>>'")
	}
	c.pos += 2
	return TripleTerm{S: s, P: pred, O: o}, nil
}

func isTermDelimiter(ch byte) bool {
	switch ch {
	case ' ', '\t', '\r', '\n', '.', ')', '<', '>':
		return true
	default:
		return false
	}
}

func parseNTLine(line, format string, lineNum int, allowGraph bool) (Quad, error) {
	c := &ntCursor{input: line}
	c.skipWS()
	s, err := c.parseTerm(false)
	if err != nil {
		return Quad{}, wrapParseError(format, line, lineNum, -1, err)
	}
	predTerm, err := c.parseTerm(false)
	if err != nil {
		return Quad{}, wrapParseError(format, line, lineNum, -1, err)
	}
	pred, ok := predTerm.(IRI)
	if !ok {
		return Quad{}, wrapParseError(format, line, lineNum, -1, fmt.Errorf("predicate must be an IRI"))
	}
	o, err := c.parseTerm(true)
	if err != nil {
		return Quad{}, wrapParseError(format, line, lineNum, -1, err)
	}
	var g Term
	if allowGraph {
		c.skipWS()
		if c.pos < len(c.input) && c.input[c.pos] != '.' {
			gt, err := c.parseTerm(false)
			if err != nil {
				return Quad{}, wrapParseError(format, line, lineNum, -1, err)
			}
			g = gt
		}
	}
	c.skipWS()
	if !c.consume('.') {
		return Quad{}, wrapParseError(format, line, lineNum, -1, fmt.Errorf("expected '.' at end of statement"))
	}
	return Quad{S: s, P: pred, O: o, G: g}, nil
}

// DecodeNTriples parses an N-Triples document into a Graph.
func DecodeNTriples(r io.Reader, opts ...Option) (Graph, error) {
	o := buildDecodeOptions(opts...)
	scanner := bufio.NewReader(r)
	var triples []Triple
	lineNum := 0
	for {
		if err := checkDecodeContext(o.Context); err != nil {
			return Graph{}, err
		}
		line, err := readLineWithLimit(scanner, o.MaxLineBytes)
		if err != nil {
			if err == io.EOF {
				break
			}
			return Graph{}, err
		}
		lineNum++
		trimmed := strings.TrimSpace(stripComment(line))
		if trimmed == "" {
			continue
		}
		if o.MaxTriples > 0 && len(triples) >= o.MaxTriples {
			return Graph{}, ErrStatementLimitExceeded
		}
		q, err := parseNTLine(trimmed, "ntriples", lineNum, false)
		if err != nil {
			return Graph{}, err
		}
		triples = append(triples, q.ToTriple())
	}
	items := make([]interface{}, len(triples))
	for i, t := range triples {
		items[i] = t
	}
	return NewGraph(items)
}

// DecodeNQuads parses an N-Quads document into a Dataset.
func DecodeNQuads(r io.Reader, opts ...Option) (Dataset, error) {
	o := buildDecodeOptions(opts...)
	scanner := bufio.NewReader(r)
	var quads []Quad
	lineNum := 0
	for {
		if err := checkDecodeContext(o.Context); err != nil {
			return Dataset{}, err
		}
		line, err := readLineWithLimit(scanner, o.MaxLineBytes)
		if err != nil {
			if err == io.EOF {
				break
			}
			return Dataset{}, err
		}
		lineNum++
		trimmed := strings.TrimSpace(stripComment(line))
		if trimmed == "" {
			continue
		}
		if o.MaxTriples > 0 && len(quads) >= o.MaxTriples {
			return Dataset{}, ErrStatementLimitExceeded
		}
		q, err := parseNTLine(trimmed, "nquads", lineNum, true)
		if err != nil {
			return Dataset{}, err
		}
		quads = append(quads, q)
	}
	items := make([]interface{}, len(quads))
	for i, q := range quads {
		items[i] = q
	}
	return NewDataset(items)
}

func readLineWithLimit(reader *bufio.Reader, maxBytes int) (string, error) {
	if maxBytes <= 0 {
		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF && len(line) > 0 {
				return line, nil
			}
			return "", err
		}
		return line, nil
	}
	var buffer []byte
	for {
		part, err := reader.ReadSlice('\n')
		buffer = append(buffer, part...)
		if len(buffer) > maxBytes {
			discardLine(reader)
			return "", ErrLineTooLong
		}
		if err == nil {
			return string(buffer), nil
		}
		if err == bufio.ErrBufferFull {
			continue
		}
		if err == io.EOF && len(buffer) > 0 {
			return string(buffer), nil
		}
		return "", err
	}
}

func discardLine(reader *bufio.Reader) {
	for {
		_, err := reader.ReadSlice('\n')
		if err == nil {
			return
		}
		if err != bufio.ErrBufferFull {
			return
		}
	}
}

func stripComment(line string) string {
	inString, inIRI := false, false
	for i := 0; i < len(line); i++ {
		switch ch := line[i]; {
		case inString && ch == '\\':
			i++
		case ch == '"' && !inIRI:
			inString = !inString
		case ch == '<' && !inString:
			inIRI = true
		case ch == '>' && !inString:
			inIRI = false
		case ch == '#' && !inString && !inIRI:
			return line[:i]
		}
	}
	return line
}

func renderNTTerm(t Term) string {
	switch v := t.(type) {
	case IRI:
		return v.TermString()
	case BlankNode:
		return v.TermString()
	case Literal:
		return v.TermString()
	case TripleTerm:
		return "<<" + renderNTTerm(v.S) + " " + v.P.TermString() + " " + renderNTTerm(v.O) + ">>"
	default:
		return ""
	}
}

// EncodeNTriples renders g's triples as an N-Triples document, one
// statement per line with no prefix resolution.
func EncodeNTriples(g Graph) string {
	var b strings.Builder
	for _, t := range g.Triples() {
		b.WriteString(renderNTTerm(t.S))
		b.WriteByte(' ')
		b.WriteString(t.P.TermString())
		b.WriteByte(' ')
		b.WriteString(renderNTTerm(t.O))
		b.WriteString(" .\n")
	}
	return b.String()
}

// EncodeNQuads renders ds's quads as an N-Quads document.
func EncodeNQuads(ds Dataset) string {
	var b strings.Builder
	for _, q := range ds.Quads() {
		b.WriteString(renderNTTerm(q.S))
		b.WriteByte(' ')
		b.WriteString(q.P.TermString())
		b.WriteByte(' ')
		b.WriteString(renderNTTerm(q.O))
		if q.G != nil {
			b.WriteByte(' ')
			b.WriteString(renderNTTerm(q.G))
		}
		b.WriteString(" .\n")
	}
	return b.String()
}
