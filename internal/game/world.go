package game

import (
	"fmt"
	"slices"
)

// World is the room graph: every room addressed by its integer id.
type World struct {
	Name  string
	rooms map[int]*Room
}

func NewWorld(name string) *World {
	return &World{
		Name:  name,
		rooms: map[int]*Room{},
	}
}

// AddRoom inserts r, refusing a second room with the same id.
func (w *World) AddRoom(r *Room) error {
	if _, ok := w.rooms[r.Id]; ok {
		return fmt.Errorf("room %d: %w", r.Id, ErrDuplicateRoom)
	}
	w.rooms[r.Id] = r
	return nil
}

// Room returns the room with id, or nil when absent.
func (w *World) Room(id int) *Room {
	return w.rooms[id]
}

// Exit returns the raw exit value of room id in direction d, 0 when the
// room does not exist or has no such exit.
func (w *World) Exit(id int, d Direction) int {
	r := w.rooms[id]
	if r == nil {
		return 0
	}
	return r.Exit(d)
}

// SetExit stores v as the exit of room id in direction d.
func (w *World) SetExit(id int, d Direction, v int) error {
	r := w.rooms[id]
	if r == nil {
		return fmt.Errorf("room %d: %w", id, ErrRoomNotFound)
	}
	r.SetExit(d, v)
	return nil
}

// Rooms returns every room ordered by id.
func (w *World) Rooms() []*Room {
	out := make([]*Room, 0, len(w.rooms))
	for _, r := range w.rooms {
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b *Room) int { return a.Id - b.Id })
	return out
}

func (w *World) Len() int {
	return len(w.rooms)
}
