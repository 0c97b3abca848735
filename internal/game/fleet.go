package game

import (
	"errors"
	"fmt"
	"math/rand"
)

// ShipType is one entry of the fleet specification.
type ShipType struct {
	Type   byte
	Length int
	Count  int
}

// ID names the i-th ship of this type, e.g. "C1".
func (t ShipType) ID(i int) ShipID { return ShipID(fmt.Sprintf("%c%d", t.Type, i)) }

// Fleet is the fixed specification every board must conform to. Total 20 cells.
var Fleet = []ShipType{
	{Type: 'A', Length: 5, Count: 1},
	{Type: 'B', Length: 4, Count: 1},
	{Type: 'C', Length: 3, Count: 2},
	{Type: 'D', Length: 2, Count: 2},
	{Type: 'E', Length: 1, Count: 1},
}

// FleetCells is the number of cells the fleet occupies.
func FleetCells() int {
	n := 0
	for _, t := range Fleet {
		n += t.Length * t.Count
	}
	return n
}

// FleetShips is the number of ships in the fleet.
func FleetShips() int {
	n := 0
	for _, t := range Fleet {
		n += t.Count
	}
	return n
}

const (
	maxShipTries = 1000
	maxRestarts  = 100
)

// GenerateFleet places the whole fleet onto b by rejection sampling, largest
// ship first. b is cleared to water first. A ship that cannot be placed after
// maxShipTries draws restarts the whole fleet.
func GenerateFleet(b *Board, rng *rand.Rand) error {
	for restart := 0; restart < maxRestarts; restart++ {
		b.Fill(Water)
		if placeAll(b, rng) {
			return nil
		}
	}
	return errors.New("failed to place ships")
}

func placeAll(b *Board, rng *rand.Rand) bool {
	for _, t := range Fleet {
		for i := 0; i < t.Count; i++ {
			if !placeOne(b, rng, t.ID(i), t.Length) {
				return false
			}
		}
	}
	return true
}

func placeOne(b *Board, rng *rand.Rand, id ShipID, length int) bool {
	for tries := 0; tries < maxShipTries; tries++ {
		o := Orientation(rng.Intn(2))
		var anchor Point
		if o == Horizontal {
			anchor = Point{rng.Intn(BoardSize - length + 1), rng.Intn(BoardSize)}
		} else {
			anchor = Point{rng.Intn(BoardSize), rng.Intn(BoardSize - length + 1)}
		}
		if err := b.Place(id, length, o, anchor); err == nil {
			return true
		}
	}
	return false
}

// Validate checks that b holds exactly the fleet specification with no two
// ships overlapping or sharing an edge.
func (b *Board) Validate() error {
	total := 0
	for y := range b.cells {
		for x := range b.cells[y] {
			if b.cells[y][x].State == Occupied {
				total++
			}
		}
	}
	if total != FleetCells() {
		return fmt.Errorf("board must contain exactly %d ship cells, got %d", FleetCells(), total)
	}
	for _, t := range Fleet {
		for i := 0; i < t.Count; i++ {
			s, ok := b.ships[t.ID(i)]
			if !ok {
				return fmt.Errorf("ship %s not placed", t.ID(i))
			}
			if s.Length != t.Length {
				return fmt.Errorf("ship %s has length %d, want %d", s.ID, s.Length, t.Length)
			}
		}
	}
	if len(b.ships) != FleetShips() {
		return fmt.Errorf("board must contain exactly %d ships, got %d", FleetShips(), len(b.ships))
	}
	for y := range b.cells {
		for x := range b.cells[y] {
			c := b.cells[y][x]
			if c.State != Occupied {
				continue
			}
			for _, n := range (Point{x, y}).Neighbors() {
				nc := b.Cell(n)
				if nc.State == Occupied && nc.Ship != c.Ship {
					return fmt.Errorf("ships %s and %s touch at %s", c.Ship, nc.Ship, n)
				}
			}
		}
	}
	return nil
}
