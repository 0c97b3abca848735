package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"battleship-ai/internal/ai"
	"battleship-ai/internal/codec"
	"battleship-ai/internal/game"
)

type State int

const (
	Starting State = iota
	Waiting
	Playing
	End
)

func (s State) String() string {
	switch s {
	case Starting:
		return "Starting"
	case Waiting:
		return "Waiting"
	case Playing:
		return "Playing"
	case End:
		return "End"
	default:
		return "Unknown"
	}
}

// Attestation is notified of every answered shot and of the end of the game.
type Attestation interface {
	Attest(p game.Point)
	Reveal()
}

type Option func(*Controller)

func WithAttestation(a Attestation) Option {
	return func(c *Controller) { c.attest = a }
}

// Controller drives one game over a line protocol. Lines are handled one at a
// time; nothing here is safe for concurrent use.
type Controller struct {
	ownBoard *game.Board
	engine   *ai.Engine
	attest   Attestation

	out   io.Writer
	log   zerolog.Logger
	state State
}

func NewController(own *game.Board, engine *ai.Engine, out io.Writer, log zerolog.Logger, opts ...Option) *Controller {
	c := &Controller{
		ownBoard: own,
		engine:   engine,
		out:      out,
		log:      log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) State() State { return c.state }

// Start writes the own board before any protocol exchange.
func (c *Controller) Start() error {
	c.log.Debug().Stringer("state", c.state).Stringer("mode", c.engine.Mode()).Msg("initialized")
	_, err := io.WriteString(c.out, c.ownBoard.Render())
	return err
}

// Run starts the game and feeds it lines from r until the game ends, r is
// exhausted or ctx is cancelled.
func (c *Controller) Run(ctx context.Context, r io.Reader) error {
	if err := c.Start(); err != nil {
		return err
	}
	sc := bufio.NewScanner(r)
	for c.state != End && sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := c.Handle(sc.Text()); err != nil {
			return err
		}
	}
	return sc.Err()
}

// Handle processes one input line. Malformed lines are logged and dropped;
// only output failures are returned.
func (c *Controller) Handle(line string) error {
	line = strings.TrimSpace(line)
	c.log.Debug().Str("line", line).Stringer("state", c.state).Msg("received")

	switch c.state {
	case Starting:
		return c.handshake(line)
	case Waiting:
		return c.respond(line)
	case Playing:
		return c.report(line)
	}
	return nil
}

func (c *Controller) handshake(line string) error {
	switch line {
	case "0":
		c.setState(Waiting)
		return nil
	case "1":
		c.setState(Playing)
		return c.fire()
	}
	c.log.Debug().Str("line", line).Msg("ignoring handshake token")
	return nil
}

// respond answers the opponent's attack, then takes our turn.
func (c *Controller) respond(line string) error {
	p, err := codec.DecodeCoord(line)
	if err != nil {
		c.log.Warn().Err(err).Msg("discarding line")
		return nil
	}

	res := c.ownBoard.Strike(p)
	c.log.Debug().Str("coord", line).Bool("hit", res.Hit).Bool("sunk", res.Sunk).Msg("attacked")
	if c.attest != nil {
		c.attest.Attest(p)
	}
	r := codec.Result{Hit: res.Hit, Sunk: res.Sunk, End: res.FleetExhausted}
	if err := c.writeLine(r.String()); err != nil {
		return err
	}

	if res.FleetExhausted {
		c.setState(End)
		return nil
	}
	c.setState(Playing)
	return c.fire()
}

// report applies the result of our outstanding attack.
func (c *Controller) report(line string) error {
	r, err := codec.ParseResult(line)
	if err != nil {
		c.log.Warn().Err(err).Msg("discarding line")
		return nil
	}
	out, err := c.engine.Record(r.Hit, r.Sunk)
	if err != nil {
		c.log.Warn().Err(err).Msg("result without attack")
	}
	if r.End || out.FleetDestroyed {
		c.setState(End)
		return nil
	}
	c.setState(Waiting)
	return nil
}

func (c *Controller) fire() error {
	p, err := c.engine.Next()
	if errors.Is(err, ai.ErrNoCandidates) {
		c.log.Warn().Err(err).Msg("nothing left to attack")
		c.setState(End)
		return nil
	}
	if err != nil {
		return err
	}
	return c.writeLine(codec.EncodeCoord(p))
}

func (c *Controller) setState(s State) {
	c.log.Debug().Stringer("from", c.state).Stringer("to", s).Msg("state change")
	c.state = s
	if s == End && c.attest != nil {
		c.attest.Reveal()
	}
}

func (c *Controller) writeLine(s string) error {
	if _, err := fmt.Fprintln(c.out, s); err != nil {
		return fmt.Errorf("write %q: %w", s, err)
	}
	return nil
}
