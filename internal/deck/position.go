package deck

import (
	"fmt"
	"strconv"
	"strings"
)

// Board dimensions. Rows are addressed by letter A-I, columns by number 1-12.
const (
	Rows    = 9
	Columns = 12

	firstLetter = 'A'
	lastLetter  = 'I'
)

// Position is a single cell coordinate on the board. Positions are plain
// values; equality is structural.
type Position struct {
	Letter byte // 'A'..'I'
	Number int  // 1..12
}

// NewPosition creates a position. It does not validate bounds; use Valid
// when the input comes from outside the engine.
func NewPosition(letter byte, number int) Position {
	return Position{Letter: letter, Number: number}
}

// ParsePosition parses text like "B7" or "i12" into a position.
func ParsePosition(s string) (Position, error) {
	s = strings.TrimSpace(strings.ToUpper(s))
	if len(s) < 2 {
		return Position{}, fmt.Errorf("invalid position %q", s)
	}
	letter := s[0]
	number, err := strconv.Atoi(s[1:])
	if err != nil {
		return Position{}, fmt.Errorf("invalid position %q: %w", s, err)
	}
	p := Position{Letter: letter, Number: number}
	if !p.Valid() {
		return Position{}, fmt.Errorf("position %q is outside the board", s)
	}
	return p, nil
}

// Valid reports whether the position is on the board.
func (p Position) Valid() bool {
	return p.Letter >= firstLetter && p.Letter <= lastLetter &&
		p.Number >= 1 && p.Number <= Columns
}

// String returns the position in card notation, e.g. "B7".
func (p Position) String() string {
	return fmt.Sprintf("%c%d", p.Letter, p.Number)
}

// Up returns the position one row above (B3 -> A3).
func (p Position) Up() (Position, bool) {
	if p.Letter <= firstLetter {
		return Position{}, false
	}
	return Position{Letter: p.Letter - 1, Number: p.Number}, true
}

// Down returns the position one row below (B3 -> C3).
func (p Position) Down() (Position, bool) {
	if p.Letter >= lastLetter {
		return Position{}, false
	}
	return Position{Letter: p.Letter + 1, Number: p.Number}, true
}

// Next returns the position one column to the right (B3 -> B4).
func (p Position) Next() (Position, bool) {
	if p.Number >= Columns {
		return Position{}, false
	}
	return Position{Letter: p.Letter, Number: p.Number + 1}, true
}

// Prev returns the position one column to the left (B3 -> B2).
func (p Position) Prev() (Position, bool) {
	if p.Number <= 1 {
		return Position{}, false
	}
	return Position{Letter: p.Letter, Number: p.Number - 1}, true
}

// Neighbours returns the up to four grid-adjacent positions, omitting
// anything beyond the board edge.
func (p Position) Neighbours() []Position {
	neighbours := make([]Position, 0, 4)
	if n, ok := p.Up(); ok {
		neighbours = append(neighbours, n)
	}
	if n, ok := p.Down(); ok {
		neighbours = append(neighbours, n)
	}
	if n, ok := p.Next(); ok {
		neighbours = append(neighbours, n)
	}
	if n, ok := p.Prev(); ok {
		neighbours = append(neighbours, n)
	}
	return neighbours
}

// Less orders positions row-major (A1 < A2 < ... < B1), the order hands are
// shown in.
func (p Position) Less(other Position) bool {
	if p.Letter != other.Letter {
		return p.Letter < other.Letter
	}
	return p.Number < other.Number
}

// AllPositions returns every cell on the board in row-major order.
func AllPositions() []Position {
	positions := make([]Position, 0, Rows*Columns)
	for letter := byte(firstLetter); letter <= lastLetter; letter++ {
		for number := 1; number <= Columns; number++ {
			positions = append(positions, Position{Letter: letter, Number: number})
		}
	}
	return positions
}
