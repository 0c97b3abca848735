package game

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// BoardSize is the side of the square grid.
const BoardSize = 10

// Point is a zero-based (column, row) pair.
type Point struct {
	X int
	Y int
}

// In reports whether p lies on the grid.
func (p Point) In() bool {
	return p.X >= 0 && p.X < BoardSize && p.Y >= 0 && p.Y < BoardSize
}

// Neighbors returns the on-grid orthogonal neighbours of p (east, west, south, north).
func (p Point) Neighbors() []Point {
	out := make([]Point, 0, 4)
	for _, d := range [4]Point{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
		n := Point{p.X + d.X, p.Y + d.Y}
		if n.In() {
			out = append(out, n)
		}
	}
	return out
}

// Index is the row-major cell index.
func (p Point) Index() int { return p.Y*BoardSize + p.X }

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

type CellState uint8

const (
	Water CellState = iota
	Occupied
	Hit
	Unknown
)

func (s CellState) String() string {
	switch s {
	case Water:
		return "Water"
	case Occupied:
		return "Occupied"
	case Hit:
		return "Hit"
	case Unknown:
		return "Unknown"
	default:
		return "Invalid"
	}
}

// Cell is one grid square. Ship is only meaningful while State is Occupied,
// and stays set after the cell is struck on the own board.
type Cell struct {
	State CellState
	Ship  ShipID
}

type ShipID string

type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "Horizontal"
	case Vertical:
		return "Vertical"
	default:
		return "Unset"
	}
}

// Ship is a placed (own board) or tracked (opponent board) vessel.
// Anchor is the north-west-most cell; tracked ships have no placement.
type Ship struct {
	ID          ShipID
	Length      int
	Orientation Orientation
	Anchor      Point
	Health      int
}

// Cells lists the cells covered by the ship, extending east or south from the anchor.
func (s *Ship) Cells() []Point {
	out := make([]Point, s.Length)
	for i := 0; i < s.Length; i++ {
		if s.Orientation == Horizontal {
			out[i] = Point{s.Anchor.X + i, s.Anchor.Y}
		} else {
			out[i] = Point{s.Anchor.X, s.Anchor.Y + i}
		}
	}
	return out
}

var ErrPlacement = errors.New("placement rejected")

// Board is a 10x10 grid plus the ship records that live on it.
// Cells are stored row-major: cells[y][x].
type Board struct {
	cells [BoardSize][BoardSize]Cell
	ships map[ShipID]*Ship
}

// NewBoard returns an all-water board, used for the own fleet.
func NewBoard() *Board {
	return &Board{ships: make(map[ShipID]*Ship)}
}

// NewOpponentBoard returns an all-unknown board tracking one record per ship
// of the given fleet.
func NewOpponentBoard(fleet []ShipType) *Board {
	b := NewBoard()
	b.Fill(Unknown)
	for _, t := range fleet {
		for i := 0; i < t.Count; i++ {
			b.Track(t.ID(i), t.Length)
		}
	}
	return b
}

// Fill overwrites every cell with s and forgets all ships.
func (b *Board) Fill(s CellState) {
	for y := range b.cells {
		for x := range b.cells[y] {
			b.cells[y][x] = Cell{State: s}
		}
	}
	b.ships = make(map[ShipID]*Ship)
}

func (b *Board) Cell(p Point) Cell { return b.cells[p.Y][p.X] }

func (b *Board) At(p Point) CellState { return b.cells[p.Y][p.X].State }

// Set records what is known about a cell. Used on the opponent board.
func (b *Board) Set(p Point, s CellState) {
	b.cells[p.Y][p.X] = Cell{State: s}
}

// Track registers a ship record of the given length without a placement.
func (b *Board) Track(id ShipID, length int) {
	b.ships[id] = &Ship{ID: id, Length: length, Health: length}
}

// Place writes a ship onto the board. It fails if any covered cell is off the
// grid, or if any covered cell or one of its orthogonal neighbours is already
// occupied.
func (b *Board) Place(id ShipID, length int, o Orientation, anchor Point) error {
	if length < 1 || length > 5 {
		return fmt.Errorf("%w: invalid length %d", ErrPlacement, length)
	}
	if _, ok := b.ships[id]; ok {
		return fmt.Errorf("%w: ship %s already placed", ErrPlacement, id)
	}
	s := &Ship{ID: id, Length: length, Orientation: o, Anchor: anchor, Health: length}
	cells := s.Cells()
	for _, c := range cells {
		if !c.In() {
			return fmt.Errorf("%w: %s off grid", ErrPlacement, c)
		}
		if b.At(c) == Occupied {
			return fmt.Errorf("%w: %s occupied", ErrPlacement, c)
		}
		for _, n := range c.Neighbors() {
			if b.At(n) == Occupied {
				return fmt.Errorf("%w: %s touches a ship", ErrPlacement, c)
			}
		}
	}
	for _, c := range cells {
		b.cells[c.Y][c.X] = Cell{State: Occupied, Ship: id}
	}
	b.ships[id] = s
	return nil
}

// StrikeResult describes the outcome of an incoming attack.
type StrikeResult struct {
	Hit            bool
	Sunk           bool
	FleetExhausted bool
	Ship           ShipID
}

// Strike resolves an attack on p. Striking water or an already hit cell
// leaves the board untouched and reports a miss.
func (b *Board) Strike(p Point) StrikeResult {
	c := b.Cell(p)
	if c.State != Occupied {
		return StrikeResult{}
	}
	s, ok := b.ships[c.Ship]
	if !ok {
		return StrikeResult{}
	}
	s.Health--
	b.cells[p.Y][p.X].State = Hit
	res := StrikeResult{Hit: true, Ship: s.ID}
	if s.Health <= 0 {
		delete(b.ships, s.ID)
		res.Sunk = true
	}
	res.FleetExhausted = len(b.ships) == 0
	return res
}

func (b *Board) Ship(id ShipID) (*Ship, bool) {
	s, ok := b.ships[id]
	return s, ok
}

// Ships returns the live ships ordered by id.
func (b *Board) Ships() []*Ship {
	out := make([]*Ship, 0, len(b.ships))
	for _, s := range b.ships {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Remove deletes a ship record.
func (b *Board) Remove(id ShipID) { delete(b.ships, id) }

func (b *Board) FleetSize() int { return len(b.ships) }

// Count returns the number of cells in state s.
func (b *Board) Count(s CellState) int {
	n := 0
	for y := range b.cells {
		for x := range b.cells[y] {
			if b.cells[y][x].State == s {
				n++
			}
		}
	}
	return n
}

// Flatten returns the occupancy bits in row-major order: 1 for a ship cell
// (live or struck), 0 otherwise.
func (b *Board) Flatten() []uint8 {
	out := make([]uint8, 0, BoardSize*BoardSize)
	for y := range b.cells {
		for x := range b.cells[y] {
			c := b.cells[y][x]
			if c.State == Occupied || (c.State == Hit && c.Ship != "") {
				out = append(out, 1)
			} else {
				out = append(out, 0)
			}
		}
	}
	return out
}

// Render draws the board one row per line, '.' for empty and 'X' for ship cells.
func (b *Board) Render() string {
	var sb strings.Builder
	bits := b.Flatten()
	for i, v := range bits {
		if v == 1 {
			sb.WriteByte('X')
		} else {
			sb.WriteByte('.')
		}
		if i%BoardSize == BoardSize-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
