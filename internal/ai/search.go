package ai

import (
	"battleship-ai/internal/game"
)

var directions = [4]game.Point{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}}

// Scores is the search-mode probability field, indexed [y][x]. Only unknown
// cells score. For every surviving ship, a cell gains one point per direction
// in which the ship fits entirely on unknown cells starting from it. Single
// cell ships add one point everywhere.
func Scores(b *game.Board) [game.BoardSize][game.BoardSize]int {
	var scores [game.BoardSize][game.BoardSize]int
	ships := b.Ships()
	for y := 0; y < game.BoardSize; y++ {
		for x := 0; x < game.BoardSize; x++ {
			p := game.Point{X: x, Y: y}
			if b.At(p) != game.Unknown {
				continue
			}
			for _, s := range ships {
				if s.Length == 1 {
					scores[y][x]++
					continue
				}
				for _, d := range directions {
					if fits(b, p, d, s.Length) {
						scores[y][x]++
					}
				}
			}
		}
	}
	return scores
}

func fits(b *game.Board, from, d game.Point, length int) bool {
	for i := 0; i < length; i++ {
		c := game.Point{X: from.X + d.X*i, Y: from.Y + d.Y*i}
		if !c.In() || b.At(c) != game.Unknown {
			return false
		}
	}
	return true
}

// search draws uniformly among the unknown cells with the highest score.
func (e *Engine) search() (game.Point, error) {
	scores := Scores(e.opponent)
	best := -1
	var top []game.Point
	for y := range scores {
		for x, s := range scores[y] {
			p := game.Point{X: x, Y: y}
			if e.opponent.At(p) != game.Unknown {
				continue
			}
			switch {
			case s > best:
				best = s
				top = append(top[:0], p)
			case s == best:
				top = append(top, p)
			}
		}
	}
	if len(top) == 0 {
		return game.Point{}, ErrNoCandidates
	}
	return top[e.rng.Intn(len(top))], nil
}
