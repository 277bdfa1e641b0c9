package game

import (
	"fmt"
	"strings"
)

// Direction is one of the four compass exits a room can have.
type Direction string

const (
	North Direction = "N"
	South Direction = "S"
	East  Direction = "E"
	West  Direction = "W"
)

// Directions lists every direction in display order.
var Directions = []Direction{North, South, East, West}

var directionNames = map[Direction]string{
	North: "north",
	South: "south",
	East:  "east",
	West:  "west",
}

// ParseDirection accepts a short ("n") or long ("north") direction in any case.
func ParseDirection(s string) (Direction, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d, name := range directionNames {
		if s == name || s == strings.ToLower(string(d)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown direction %q", s)
}

// Name returns the long, lowercase name of the direction.
func (d Direction) Name() string {
	return directionNames[d]
}

func (d Direction) String() string {
	return string(d)
}

// Valid reports whether d is one of the four known directions.
func (d Direction) Valid() bool {
	_, ok := directionNames[d]
	return ok
}
