package rdf

import (
	"sort"
	"strings"

	"github.com/pkg/diff"
)

// GraphDiff is the structural difference between two graphs: the
// triples present in the second graph but not the first, and vice
// versa.
type GraphDiff struct {
	Added   []Triple
	Removed []Triple
}

// Equal reports whether the two graphs compared had no differences.
func (d GraphDiff) Equal() bool { return len(d.Added) == 0 && len(d.Removed) == 0 }

func sortedNTLines(g Graph) []string {
	triples := g.Triples()
	lines := make([]string, len(triples))
	for i, t := range triples {
		lines[i] = renderNTTerm(t.S) + " " + t.P.TermString() + " " + renderNTTerm(t.O) + " ."
	}
	sort.Strings(lines)
	return lines
}

// Diff computes the structural difference between a and b: triples in
// b not present in a are Added, triples in a not present in b are
// Removed. Graph names are not compared; only the triple sets are.
func Diff(a, b Graph) GraphDiff {
	aSet := map[string]Triple{}
	for _, t := range a.Triples() {
		aSet[tripleKey(t)] = t
	}
	bSet := map[string]Triple{}
	for _, t := range b.Triples() {
		bSet[tripleKey(t)] = t
	}

	var gd GraphDiff
	for key, t := range bSet {
		if _, ok := aSet[key]; !ok {
			gd.Added = append(gd.Added, t)
		}
	}
	for key, t := range aSet {
		if _, ok := bSet[key]; !ok {
			gd.Removed = append(gd.Removed, t)
		}
	}
	sort.Slice(gd.Added, func(i, j int) bool { return tripleKey(gd.Added[i]) < tripleKey(gd.Added[j]) })
	sort.Slice(gd.Removed, func(i, j int) bool { return tripleKey(gd.Removed[i]) < tripleKey(gd.Removed[j]) })
	return gd
}

func tripleKey(t Triple) string {
	return t.S.TermString() + " " + t.P.TermString() + " " + t.O.TermString()
}

// Unified renders a and b's canonically sorted N-Triples forms as a
// unified diff, via github.com/pkg/diff's line-oriented text differ.
// This is a human-readable companion to Diff's structural result, not
// a replacement for it: Diff is order-free, Unified is not.
func Unified(a, b Graph) (string, error) {
	aText := strings.Join(sortedNTLines(a), "\n")
	bText := strings.Join(sortedNTLines(b), "\n")
	var out strings.Builder
	if err := diff.Text("a", "b", aText, bText, &out); err != nil {
		return "", err
	}
	return out.String(), nil
}
