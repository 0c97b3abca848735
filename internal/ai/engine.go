// Package ai picks attacks against the opponent's board.
//
// In search mode every unknown cell is scored by how many ways a surviving
// ship could be laid from it, and the attack is drawn from the best cells.
// Once a hit lands the engine switches to target mode and walks the
// neighbourhood of the hits until the ship is reported sunk.
package ai

import (
	"errors"
	"math/rand"

	"github.com/rs/zerolog"

	"battleship-ai/internal/game"
)

type Mode int

const (
	Search Mode = iota
	Target
)

func (m Mode) String() string {
	switch m {
	case Search:
		return "Search"
	case Target:
		return "Target"
	default:
		return "Unknown"
	}
}

var (
	ErrNoCandidates = errors.New("no unknown cell left to attack")
	ErrNoAttack     = errors.New("no attack pending")
)

// Track is the ship currently being finished off.
type Track struct {
	Hits        []game.Point
	Orientation game.Orientation
	Oriented    bool
}

// Outcome is the effect of a reported result.
type Outcome struct {
	Sunk           game.ShipID
	FleetDestroyed bool
}

type Engine struct {
	opponent *game.Board
	rng      *rand.Rand
	log      zerolog.Logger

	mode    Mode
	track   Track
	current game.Point
	pending bool
}

func New(opponent *game.Board, rng *rand.Rand, log zerolog.Logger) *Engine {
	return &Engine{opponent: opponent, rng: rng, log: log}
}

func (e *Engine) Mode() Mode { return e.mode }

// Track returns a copy of the targeting record.
func (e *Engine) Track() Track {
	t := e.track
	t.Hits = append([]game.Point(nil), e.track.Hits...)
	return t
}

// Opponent returns the board the engine reasons about.
func (e *Engine) Opponent() *game.Board { return e.opponent }

// Next chooses the next attack and remembers it until Record is called.
func (e *Engine) Next() (game.Point, error) {
	var (
		p   game.Point
		err error
	)
	if e.mode == Target {
		cands := e.Candidates()
		if len(cands) > 0 {
			p = cands[e.rng.Intn(len(cands))]
		} else {
			e.log.Warn().Interface("hits", e.track.Hits).Msg("target mode has no candidates, searching")
			p, err = e.search()
		}
	} else {
		p, err = e.search()
	}
	if err != nil {
		return game.Point{}, err
	}

	e.current, e.pending = p, true
	e.log.Debug().Stringer("mode", e.mode).Int("x", p.X).Int("y", p.Y).Msg("attack chosen")
	return p, nil
}

// Record applies the result of the pending attack to the opponent board.
func (e *Engine) Record(hit, sunk bool) (Outcome, error) {
	if !e.pending {
		return Outcome{}, ErrNoAttack
	}
	e.pending = false
	p := e.current

	if !hit {
		e.log.Debug().Int("x", p.X).Int("y", p.Y).Msg("miss")
		e.opponent.Set(p, game.Water)
		return Outcome{}, nil
	}

	e.log.Debug().Int("x", p.X).Int("y", p.Y).Msg("hit")
	e.opponent.Set(p, game.Hit)
	e.track.Hits = append(e.track.Hits, p)
	if e.mode != Target {
		e.setMode(Target)
	}
	if !sunk {
		return Outcome{}, nil
	}

	out := Outcome{Sunk: e.sink()}
	out.FleetDestroyed = e.opponent.FleetSize() == 0
	e.setMode(Search)
	return out, nil
}

// sink retires the tracked ship: its record is dropped, every cell touching it
// becomes water, and the track is cleared.
func (e *Engine) sink() game.ShipID {
	var id game.ShipID
	length := len(e.track.Hits)
	for _, s := range e.opponent.Ships() {
		if s.Length == length {
			id = s.ID
			break
		}
	}
	if id != "" {
		e.opponent.Remove(id)
		e.log.Debug().Str("ship", string(id)).Msg("sunk a ship")
	} else {
		e.log.Warn().Int("length", length).Msg("sunk ship matches no remaining record")
	}

	for _, h := range e.track.Hits {
		for _, n := range h.Neighbors() {
			if e.opponent.At(n) != game.Hit {
				e.opponent.Set(n, game.Water)
			}
		}
	}
	e.track = Track{}
	return id
}

func (e *Engine) setMode(m Mode) {
	e.log.Debug().Stringer("from", e.mode).Stringer("to", m).Msg("mode change")
	e.mode = m
	if m == Search {
		e.track = Track{}
	}
}
