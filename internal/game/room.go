package game

import (
	"fmt"
	"strings"

	"github.com/pixil98/go-errors"
)

// Room is a node in the world graph. Exit values follow the sign
// convention: 0 is no exit, +n leads to room n, -n leads to room n but is
// blocked until an obstacle is resolved.
type Room struct {
	Id          int
	Name        string
	Description string
	Items       []*Item
	Fixtures    []*Fixture
	Obstacle    Obstacle

	exits map[Direction]int
}

func NewRoom(id int, name, description string) *Room {
	return &Room{
		Id:          id,
		Name:        name,
		Description: description,
		exits:       map[Direction]int{},
	}
}

// Exit returns the raw exit value in direction d, 0 when none was set.
func (r *Room) Exit(d Direction) int {
	return r.exits[d]
}

// SetExit stores v verbatim. Setting 0 removes the exit.
func (r *Room) SetExit(d Direction, v int) {
	if r.exits == nil {
		r.exits = map[Direction]int{}
	}
	if v == 0 {
		delete(r.exits, d)
		return
	}
	r.exits[d] = v
}

// Exits returns a copy of the exit table.
func (r *Room) Exits() map[Direction]int {
	out := make(map[Direction]int, len(r.exits))
	for d, v := range r.exits {
		out[d] = v
	}
	return out
}

// UnblockExitsTo flips every exit equal to -target to +target and returns
// how many were changed.
func (r *Room) UnblockExitsTo(target int) int {
	if target <= 0 {
		return 0
	}
	n := 0
	for d, v := range r.exits {
		if v == -target {
			r.exits[d] = target
			n++
		}
	}
	return n
}

func (r *Room) AddItem(i *Item) {
	r.Items = append(r.Items, i)
}

// FindItem returns the first item whose name matches, ignoring case.
func (r *Room) FindItem(name string) *Item {
	return findItem(r.Items, name)
}

// RemoveItem takes the first matching item out of the room.
func (r *Room) RemoveItem(name string) *Item {
	var item *Item
	r.Items, item = removeItem(r.Items, name)
	return item
}

func (r *Room) AddFixture(f *Fixture) {
	r.Fixtures = append(r.Fixtures, f)
}

// FindFixture returns the first fixture whose name matches, ignoring case.
func (r *Room) FindFixture(name string) *Fixture {
	name = strings.TrimSpace(name)
	for _, f := range r.Fixtures {
		if strings.EqualFold(f.Name, name) {
			return f
		}
	}
	return nil
}

// RemoveFixture takes the first matching fixture out of the room. The
// fixture itself is shared, so other rooms keep theirs.
func (r *Room) RemoveFixture(name string) *Fixture {
	name = strings.TrimSpace(name)
	for idx, f := range r.Fixtures {
		if strings.EqualFold(f.Name, name) {
			r.Fixtures = append(r.Fixtures[:idx:idx], r.Fixtures[idx+1:]...)
			return f
		}
	}
	return nil
}

// SetObstacle places o in the room, replacing any previous obstacle. A nil
// o clears it.
func (r *Room) SetObstacle(o Obstacle) {
	r.Obstacle = o
}

// DeactivateObstacle resolves the room's obstacle. It reports false when
// there was no active obstacle.
func (r *Room) DeactivateObstacle() bool {
	if !r.HasActiveObstacle() {
		return false
	}
	r.Obstacle.Deactivate()
	return true
}

// HasActiveObstacle reports whether the room's obstacle still blocks progress.
func (r *Room) HasActiveObstacle() bool {
	return r.Obstacle != nil && r.Obstacle.IsActive()
}

// ActivePuzzle returns the room's obstacle if it is an unsolved puzzle.
func (r *Room) ActivePuzzle() *Puzzle {
	p, ok := r.Obstacle.(*Puzzle)
	if !ok || !p.IsActive() {
		return nil
	}
	return p
}

// ActiveMonster returns the room's obstacle if it is an undefeated monster.
func (r *Room) ActiveMonster() *Monster {
	m, ok := r.Obstacle.(*Monster)
	if !ok || !m.IsActive() {
		return nil
	}
	return m
}

// Validate satisfies storage.ValidatingSpec.
func (r *Room) Validate() error {
	el := errors.NewErrorList()

	if r.Id <= 0 {
		el.Add(fmt.Errorf("room id must be positive"))
	}
	if r.Name == "" {
		el.Add(fmt.Errorf("room %d: name is required", r.Id))
	}
	for d := range r.exits {
		if !d.Valid() {
			el.Add(fmt.Errorf("room %d: unknown exit direction %q", r.Id, d))
		}
	}

	return el.Err()
}

func findItem(items []*Item, name string) *Item {
	name = strings.TrimSpace(name)
	for _, i := range items {
		if strings.EqualFold(i.Name, name) {
			return i
		}
	}
	return nil
}

func removeItem(items []*Item, name string) ([]*Item, *Item) {
	name = strings.TrimSpace(name)
	for idx, i := range items {
		if strings.EqualFold(i.Name, name) {
			return append(items[:idx:idx], items[idx+1:]...), i
		}
	}
	return items, nil
}
