package rdf

import (
	"context"
	"sync"
)

// SolutionIter is a lazy, single-consumer, finite sequence of Solutions
// produced by StreamSolutions. Pulling one solution does only the work
// needed to produce it; abandoning the iterator (calling Close without
// draining it, or letting it be garbage collected after Close) stops the
// underlying search at its next yield point.
type SolutionIter struct {
	ch        chan Solution
	stop      chan struct{}
	closeOnce sync.Once
}

// StreamSolutions evaluates bgp against g lazily: the search runs on a
// background goroutine and blocks at each solution until Next is called
// or the iterator is closed. ctx is checked at each yield point; a
// cancelled context stops the search the same way Close does.
func StreamSolutions(ctx context.Context, g Graph, bgp BGP) *SolutionIter {
	if ctx == nil {
		ctx = context.Background()
	}
	ordered := planPatterns(bgp.patterns)
	it := &SolutionIter{ch: make(chan Solution), stop: make(chan struct{})}
	go func() {
		defer close(it.ch)
		solve(g, ordered, Solution{}, func(s Solution) bool {
			select {
			case it.ch <- s:
				return true
			case <-it.stop:
				return false
			case <-ctx.Done():
				return false
			}
		})
	}()
	return it
}

// Next blocks for the next solution. ok is false once the sequence is
// exhausted.
func (it *SolutionIter) Next() (Solution, bool) {
	s, ok := <-it.ch
	return s, ok
}

// Close abandons the iterator, releasing the background search at its
// next yield point. Safe to call more than once, and safe to call
// without having drained the sequence.
func (it *SolutionIter) Close() error {
	it.closeOnce.Do(func() { close(it.stop) })
	return nil
}
