package rdf

import (
	"context"
	"sort"
	"testing"
)

func friendGraph(t *testing.T) Graph {
	t.Helper()
	g, err := NewGraph([]interface{}{
		Tuple{S: "http://example.org/alice", P: "http://example.org/knows", O: "http://example.org/bob"},
		Tuple{S: "http://example.org/bob", P: "http://example.org/knows", O: "http://example.org/carol"},
		Tuple{S: "http://example.org/alice", P: "http://example.org/knows", O: "http://example.org/carol"},
		Tuple{S: "http://example.org/alice", P: "http://example.org/name", O: NewLiteral("Alice")},
	})
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestMaterializeSolutionsSingleJoin(t *testing.T) {
	g := friendGraph(t)
	p1, err := Pat(Variable("who"), "http://example.org/knows", Variable("friend"))
	if err != nil {
		t.Fatal(err)
	}
	bgp, err := NewBGP(p1)
	if err != nil {
		t.Fatal(err)
	}
	solutions, err := MaterializeSolutions(g, bgp)
	if err != nil {
		t.Fatal(err)
	}
	if len(solutions) != 3 {
		t.Fatalf("expected 3 knows-edges, got %d", len(solutions))
	}
}

func TestMaterializeSolutionsSelfJoin(t *testing.T) {
	// Find who and friend such that who knows friend and friend knows someone:
	// alice->bob->carol is the only chain satisfying this.
	g := friendGraph(t)
	p1, err := Pat(Variable("who"), "http://example.org/knows", Variable("mid"))
	if err != nil {
		t.Fatal(err)
	}
	p2, err := Pat(Variable("mid"), "http://example.org/knows", Variable("friend"))
	if err != nil {
		t.Fatal(err)
	}
	bgp, err := NewBGP(p1, p2)
	if err != nil {
		t.Fatal(err)
	}
	solutions, err := MaterializeSolutions(g, bgp)
	if err != nil {
		t.Fatal(err)
	}
	if len(solutions) != 1 {
		t.Fatalf("expected 1 two-hop chain, got %d", len(solutions))
	}
	sol := solutions[0]
	if sol["who"] != Term(MustIRI("http://example.org/alice")) {
		t.Fatalf("expected who=alice, got %v", sol["who"])
	}
	if sol["mid"] != Term(MustIRI("http://example.org/bob")) {
		t.Fatalf("expected mid=bob, got %v", sol["mid"])
	}
	if sol["friend"] != Term(MustIRI("http://example.org/carol")) {
		t.Fatalf("expected friend=carol, got %v", sol["friend"])
	}
}

func TestMaterializeAndStreamSolutionsAgree(t *testing.T) {
	g := friendGraph(t)
	p1, err := Pat(Variable("who"), "http://example.org/knows", Variable("friend"))
	if err != nil {
		t.Fatal(err)
	}
	bgp, err := NewBGP(p1)
	if err != nil {
		t.Fatal(err)
	}

	eager, err := MaterializeSolutions(g, bgp)
	if err != nil {
		t.Fatal(err)
	}

	it := StreamSolutions(context.Background(), g, bgp)
	defer it.Close()
	var lazy []Solution
	for {
		s, ok := it.Next()
		if !ok {
			break
		}
		lazy = append(lazy, s)
	}

	if len(eager) != len(lazy) {
		t.Fatalf("eager and streaming strategies disagree on solution count: %d vs %d", len(eager), len(lazy))
	}
	key := func(s Solution) string {
		return s["who"].TermString() + "|" + s["friend"].TermString()
	}
	eagerKeys, lazyKeys := make([]string, len(eager)), make([]string, len(lazy))
	for i, s := range eager {
		eagerKeys[i] = key(s)
	}
	for i, s := range lazy {
		lazyKeys[i] = key(s)
	}
	sort.Strings(eagerKeys)
	sort.Strings(lazyKeys)
	for i := range eagerKeys {
		if eagerKeys[i] != lazyKeys[i] {
			t.Fatalf("eager and streaming solution sets differ: %v vs %v", eagerKeys, lazyKeys)
		}
	}
}

func TestStreamSolutionsCancellationStopsEarly(t *testing.T) {
	g := friendGraph(t)
	p1, err := Pat(Variable("who"), "http://example.org/knows", Variable("friend"))
	if err != nil {
		t.Fatal(err)
	}
	bgp, err := NewBGP(p1)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	it := StreamSolutions(ctx, g, bgp)
	_, ok := it.Next()
	if !ok {
		t.Fatal("expected at least one solution before cancellation")
	}
	cancel()
	// Draining after cancellation must terminate (not hang) and yield no
	// more solutions than were already in flight.
	for {
		_, ok := it.Next()
		if !ok {
			break
		}
	}
	it.Close()
}

func TestPathExpandsChain(t *testing.T) {
	patterns, err := Path("http://example.org/alice", "http://example.org/knows", "http://example.org/knows", Variable("foaf"))
	if err != nil {
		t.Fatal(err)
	}
	if len(patterns) != 2 {
		t.Fatalf("expected 2 chained patterns, got %d", len(patterns))
	}
	if patterns[0].S != Term(MustIRI("http://example.org/alice")) {
		t.Fatalf("expected first pattern subject alice, got %v", patterns[0].S)
	}
	if patterns[0].O != patterns[1].S {
		t.Fatal("expected the interior blank node to chain the two patterns together")
	}
}

func TestFanExpandsObjects(t *testing.T) {
	patterns, err := Fan("http://example.org/alice", "http://example.org/knows", "http://example.org/bob", "http://example.org/carol")
	if err != nil {
		t.Fatal(err)
	}
	if len(patterns) != 2 {
		t.Fatalf("expected 2 fanned-out patterns, got %d", len(patterns))
	}
}
