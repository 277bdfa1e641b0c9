package loader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pixil98/go-adventure/internal/game"
)

const (
	defaultPuzzleDescription  = "An unsolved puzzle."
	defaultMonsterDescription = "A hostile creature."
)

type roomRecord struct {
	Number      flexInt    `json:"room_number"`
	Name        flexString `json:"room_name"`
	Description flexString `json:"description"`
	North       flexInt    `json:"N"`
	South       flexInt    `json:"S"`
	East        flexInt    `json:"E"`
	West        flexInt    `json:"W"`
	Items       flexList   `json:"items"`
	Fixtures    flexList   `json:"fixtures"`
}

func (r *roomRecord) build() (*game.Room, error) {
	if !r.Number.set {
		return nil, fmt.Errorf("room_number is required")
	}
	if r.Number.v <= 0 {
		return nil, fmt.Errorf("room_number must be positive, got %d", r.Number.v)
	}
	if r.Name.v == "" {
		return nil, fmt.Errorf("room %d: room_name is required", r.Number.v)
	}

	room := game.NewRoom(r.Number.v, r.Name.v, r.Description.v)
	room.SetExit(game.North, r.North.v)
	room.SetExit(game.South, r.South.v)
	room.SetExit(game.East, r.East.v)
	room.SetExit(game.West, r.West.v)
	return room, nil
}

type itemRecord struct {
	Name          flexString `json:"name"`
	Description   flexString `json:"description"`
	Weight        flexFloat  `json:"weight"`
	MaxUses       flexInt    `json:"max_uses"`
	UsesRemaining flexInt    `json:"uses_remaining"`
	Value         flexInt    `json:"value"`
	WhenUsed      flexString `json:"when_used"`
}

func (r *itemRecord) build() (*game.Item, error) {
	maxUses := r.MaxUses.or(1)
	item := &game.Item{
		Name:          r.Name.v,
		Description:   r.Description.or(game.DefaultItemDescription),
		Weight:        r.Weight.or(0),
		MaxUses:       maxUses,
		UsesRemaining: min(max(r.UsesRemaining.or(maxUses), 0), maxUses),
		Value:         r.Value.or(0),
		WhenUsed:      r.WhenUsed.or(game.DefaultWhenUsed),
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	return item, nil
}

type fixtureRecord struct {
	Name        flexString `json:"name"`
	Description flexString `json:"description"`
	Weight      flexFloat  `json:"weight"`
}

func (r *fixtureRecord) build() (*game.Fixture, error) {
	f := &game.Fixture{
		Name:        r.Name.v,
		Description: r.Description.or(game.DefaultItemDescription),
		Weight:      r.Weight.or(0),
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// obstacleRecord holds the fields puzzles and monsters share.
type obstacleRecord struct {
	Name        flexString `json:"name"`
	Description flexString `json:"description"`
	Effects     flexString `json:"effects"`
	Active      flexBool   `json:"active"`
	Value       flexInt    `json:"value"`
	Target      flexString `json:"target"`
	Unblocks    flexString `json:"unblocks"`
	Solution    flexString `json:"solution"`
}

// state returns the shared obstacle data and the id of the room the
// obstacle belongs in.
func (r *obstacleRecord) state(defaultDescription string) (game.ObstacleState, int, error) {
	if !r.Target.set {
		return game.ObstacleState{}, 0, fmt.Errorf("%q: target is required", r.Name.v)
	}
	roomId, err := parseRoomRef(r.Target.v)
	if err != nil {
		return game.ObstacleState{}, 0, fmt.Errorf("%q: %w", r.Name.v, err)
	}

	unblocks := roomId
	if r.Unblocks.set && r.Unblocks.v != "" {
		unblocks, err = parseRoomRef(r.Unblocks.v)
		if err != nil {
			return game.ObstacleState{}, 0, fmt.Errorf("%q: unblocks: %w", r.Name.v, err)
		}
	}

	return game.ObstacleState{
		Name:         r.Name.v,
		Description:  r.Description.or(defaultDescription),
		ActiveEffect: r.Effects.v,
		Active:       r.Active.or(true),
		Value:        r.Value.or(0),
		TargetRoomId: unblocks,
	}, roomId, nil
}

type puzzleRecord struct {
	obstacleRecord
	AffectsTarget flexBool   `json:"affects_target"`
	AffectsPlayer flexBool   `json:"affects_player"`
	Hint          flexString `json:"hintMessage"`
}

func (r *puzzleRecord) build() (*game.Puzzle, int, error) {
	st, roomId, err := r.state(defaultPuzzleDescription)
	if err != nil {
		return nil, 0, err
	}
	p := &game.Puzzle{
		ObstacleState: st,
		Solution:      r.Solution.v,
		AffectsTarget: r.AffectsTarget.or(true),
		AffectsPlayer: r.AffectsPlayer.or(false),
		Hint:          r.Hint.v,
	}
	if err := p.Validate(); err != nil {
		return nil, 0, err
	}
	return p, roomId, nil
}

type monsterRecord struct {
	obstacleRecord
	Damage    flexInt    `json:"damage"`
	CanAttack flexBool   `json:"can_attack"`
	Attack    flexString `json:"attack"`
}

func (r *monsterRecord) build() (*game.Monster, int, error) {
	st, roomId, err := r.state(defaultMonsterDescription)
	if err != nil {
		return nil, 0, err
	}
	m := &game.Monster{
		ObstacleState: st,
		Damage:        r.Damage.or(0),
		CanAttack:     r.CanAttack.or(false),
		AttackMessage: r.Attack.v,
		DefeatItem:    r.Solution.v,
	}
	if err := m.Validate(); err != nil {
		return nil, 0, err
	}
	return m, roomId, nil
}

// parseRoomRef reads the numeric prefix of "<roomId>:<label>". The label
// is informational only.
func parseRoomRef(s string) (int, error) {
	prefix, _, _ := strings.Cut(s, ":")
	id, err := strconv.Atoi(strings.TrimSpace(prefix))
	if err != nil {
		return 0, fmt.Errorf("invalid room reference %q", s)
	}
	if id <= 0 {
		return 0, fmt.Errorf("room reference %q must be positive", s)
	}
	return id, nil
}
