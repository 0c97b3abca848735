package ai

import "battleship-ai/internal/game"

// SetTrack puts the engine in target mode with the given confirmed hits.
func (e *Engine) SetTrack(hits ...game.Point) {
	for _, h := range hits {
		e.opponent.Set(h, game.Hit)
	}
	e.track = Track{Hits: hits}
	e.mode = Target
}

// Aim marks p as the pending attack.
func (e *Engine) Aim(p game.Point) { e.current, e.pending = p, true }
