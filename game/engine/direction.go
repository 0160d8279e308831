package engine

import (
	"fmt"
	"strings"
)

// Direction is one of the four diagonal unit steps.
type Direction int

const (
	DownRight Direction = iota
	DownLeft
	UpRight
	UpLeft
)

// Directions lists every direction in a fixed order.
var Directions = [4]Direction{DownRight, DownLeft, UpRight, UpLeft}

var directionDeltas = [4]struct{ dr, dc int }{
	DownRight: {1, 1},
	DownLeft:  {1, -1},
	UpRight:   {-1, 1},
	UpLeft:    {-1, -1},
}

var directionNames = [4]string{
	DownRight: "down-right",
	DownLeft:  "down-left",
	UpRight:   "up-right",
	UpLeft:    "up-left",
}

// Delta returns the row and column change of the direction.
func (d Direction) Delta() (int, int) {
	if !d.valid() {
		return 0, 0
	}
	delta := directionDeltas[d]
	return delta.dr, delta.dc
}

func (d Direction) String() string {
	if !d.valid() {
		return fmt.Sprintf("direction(%d)", int(d))
	}
	return directionNames[d]
}

// MarshalText encodes the direction by name.
func (d Direction) MarshalText() ([]byte, error) {
	if !d.valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDirection, int(d))
	}
	return []byte(directionNames[d]), nil
}

// UnmarshalText decodes a direction name.
func (d *Direction) UnmarshalText(text []byte) error {
	name := strings.ToLower(string(text))
	for _, dir := range Directions {
		if directionNames[dir] == name {
			*d = dir
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrInvalidDirection, name)
}

func (d Direction) valid() bool {
	return d >= DownRight && d <= UpLeft
}

// DirectionOf returns the direction with exactly the given deltas. Any other
// pair, including orthogonal and multi-step offsets, yields ErrInvalidDirection.
func DirectionOf(rowDelta, colDelta int) (Direction, error) {
	for _, d := range Directions {
		delta := directionDeltas[d]
		if delta.dr == rowDelta && delta.dc == colDelta {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: (%d,%d)", ErrInvalidDirection, rowDelta, colDelta)
}
