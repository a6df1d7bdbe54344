package config

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrBadTemplate is returned when a room template has the wrong shape
var ErrBadTemplate = errors.New("bad room template")

// RoomsConfig is the root config for rooms.yaml
type RoomsConfig struct {
	RoomSize int          `yaml:"roomSize"`
	Rooms    []RoomConfig `yaml:"rooms"`
}

// RoomConfig is one ASCII room template. The first row is the top of the room.
type RoomConfig struct {
	Name string   `yaml:"name"`
	Rows []string `yaml:"rows"`
}

// Validate checks that every room is RoomSize x RoomSize
func (c *RoomsConfig) Validate() error {
	if c.RoomSize <= 0 {
		return fmt.Errorf("%w: roomSize must be positive, got %d", ErrBadTemplate, c.RoomSize)
	}
	for i, room := range c.Rooms {
		name := room.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i)
		}
		if len(room.Rows) != c.RoomSize {
			return fmt.Errorf("%w: room %s has %d rows, want %d", ErrBadTemplate, name, len(room.Rows), c.RoomSize)
		}
		for y, row := range room.Rows {
			if n := utf8.RuneCountInString(row); n != c.RoomSize {
				return fmt.Errorf("%w: room %s row %d has %d columns, want %d", ErrBadTemplate, name, y, n, c.RoomSize)
			}
		}
	}
	return nil
}
