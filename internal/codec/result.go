package codec

import (
	"errors"
	"fmt"
	"strings"
)

var ErrMalformedLine = errors.New("malformed protocol line")

// Result is an attack report: "miss", "hit" or "hit, sunk", optionally
// followed by an end token.
type Result struct {
	Hit  bool
	Sunk bool
	End  bool
}

// String formats the report the way it is written on the wire.
func (r Result) String() string {
	parts := []string{"miss"}
	if r.Hit {
		parts[0] = "hit"
		if r.Sunk {
			parts = append(parts, "sunk")
		}
	}
	if r.End {
		parts = append(parts, "end")
	}
	return strings.Join(parts, ", ")
}

// ParseResult reads a report line. Comparison is case-insensitive and any
// third token is taken as the end of the game.
func ParseResult(line string) (Result, error) {
	toks := strings.Split(strings.ToLower(strings.TrimSpace(line)), ",")
	for i := range toks {
		toks[i] = strings.TrimSpace(toks[i])
	}
	if len(toks) > 3 {
		return Result{}, fmt.Errorf("%w: %q", ErrMalformedLine, line)
	}

	var r Result
	switch toks[0] {
	case "hit":
		r.Hit = true
	case "miss":
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrMalformedLine, line)
	}

	if len(toks) == 3 {
		if toks[1] != "sunk" || !r.Hit || toks[2] == "" {
			return Result{}, fmt.Errorf("%w: %q", ErrMalformedLine, line)
		}
		r.Sunk, r.End = true, true
		return r, nil
	}
	if len(toks) == 2 {
		switch {
		case toks[1] == "sunk" && r.Hit:
			r.Sunk = true
		case toks[1] == "end":
			r.End = true
		default:
			return Result{}, fmt.Errorf("%w: %q", ErrMalformedLine, line)
		}
	}
	return r, nil
}
