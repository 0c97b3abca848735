package ai

import (
	"battleship-ai/internal/game"
)

// Candidates lists the target-mode attacks around the tracked hits.
//
// With a single hit these are its open orthogonal neighbours. With more, the
// orientation is taken from the first two hits and the candidates are the
// open cells just beyond either end of the run.
func (e *Engine) Candidates() []game.Point {
	hits := e.track.Hits
	switch len(hits) {
	case 0:
		return nil
	case 1:
		return e.open(hits[0].Neighbors())
	}

	if !e.track.Oriented {
		e.track.Orientation = game.Vertical
		if hits[0].X != hits[1].X {
			e.track.Orientation = game.Horizontal
		}
		e.track.Oriented = true
	}

	last := hits[len(hits)-1]
	axis := func(p game.Point) int { return p.Y }
	if e.track.Orientation == game.Horizontal {
		axis = func(p game.Point) int { return p.X }
	}
	lo, hi := axis(hits[0]), axis(hits[0])
	for _, h := range hits[1:] {
		lo = min(lo, axis(h))
		hi = max(hi, axis(h))
	}

	var ends []game.Point
	if e.track.Orientation == game.Horizontal {
		ends = []game.Point{{X: lo - 1, Y: last.Y}, {X: hi + 1, Y: last.Y}}
	} else {
		ends = []game.Point{{X: last.X, Y: lo - 1}, {X: last.X, Y: hi + 1}}
	}
	return e.open(ends)
}

// open keeps on-grid cells that are not yet resolved to water or a hit.
func (e *Engine) open(ps []game.Point) []game.Point {
	out := make([]game.Point, 0, len(ps))
	for _, p := range ps {
		if !p.In() {
			continue
		}
		if s := e.opponent.At(p); s == game.Water || s == game.Hit {
			continue
		}
		out = append(out, p)
	}
	return out
}
