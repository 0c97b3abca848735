package codec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"battleship-ai/internal/game"
)

var ErrInvalidCoordinate = errors.New("invalid coordinate")

const rowLetters = "ABCDEFGHIJ"

// DecodeCoord parses "<row-letter><column-number>", e.g. "C7" or "c7".
// The letter selects the row (Y), the number the column (X).
func DecodeCoord(s string) (game.Point, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return game.Point{}, fmt.Errorf("%w: %q", ErrInvalidCoordinate, s)
	}
	num := s[1:]
	if num[0] == '0' || strings.TrimLeft(num, "0123456789") != "" {
		return game.Point{}, fmt.Errorf("%w: %q", ErrInvalidCoordinate, s)
	}
	col, err := strconv.Atoi(num)
	if err != nil {
		return game.Point{}, fmt.Errorf("%w: %q", ErrInvalidCoordinate, s)
	}
	p := game.Point{
		X: col - 1,
		Y: strings.IndexByte(rowLetters, upper(s[0])),
	}
	if !p.In() {
		return game.Point{}, fmt.Errorf("%w: %q out of range", ErrInvalidCoordinate, s)
	}
	return p, nil
}

// EncodeCoord is the inverse of DecodeCoord, always uppercase.
func EncodeCoord(p game.Point) string {
	return fmt.Sprintf("%c%d", rowLetters[p.Y], p.X+1)
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}
