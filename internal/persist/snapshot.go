package persist

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pixil98/go-errors"

	"github.com/pixil98/go-adventure/internal/game"
)

// Snapshot is the complete state of one game: every room, including exit
// signs and obstacle activity, plus the player.
type Snapshot struct {
	SessionId uuid.UUID    `json:"session_id"`
	World     string       `json:"world"`
	SavedAt   time.Time    `json:"saved_at"`
	Rooms     []RoomState  `json:"rooms"`
	Player    *game.Player `json:"player"`
}

type RoomState struct {
	Id          int                    `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Exits       map[game.Direction]int `json:"exits,omitempty"`
	Items       []*game.Item           `json:"items,omitempty"`
	Fixtures    []*game.Fixture        `json:"fixtures,omitempty"`
	Obstacle    *ObstacleState         `json:"obstacle,omitempty"`
}

// ObstacleState is a tagged variant: Kind selects which of Puzzle or
// Monster is populated.
type ObstacleState struct {
	Kind    game.ObstacleKind `json:"kind"`
	Puzzle  *game.Puzzle      `json:"puzzle,omitempty"`
	Monster *game.Monster     `json:"monster,omitempty"`
}

// Capture deep-copies w and p into a new snapshot.
func Capture(sessionId uuid.UUID, w *game.World, p *game.Player) *Snapshot {
	s := &Snapshot{
		SessionId: sessionId,
		World:     w.Name,
		SavedAt:   time.Now().UTC(),
		Player:    &game.Player{},
	}
	s.Player.CopyFrom(p)

	for _, r := range w.Rooms() {
		rs := RoomState{
			Id:          r.Id,
			Name:        r.Name,
			Description: r.Description,
			Exits:       r.Exits(),
		}
		for _, i := range r.Items {
			rs.Items = append(rs.Items, i.Clone())
		}
		for _, f := range r.Fixtures {
			fc := *f
			rs.Fixtures = append(rs.Fixtures, &fc)
		}
		rs.Obstacle = captureObstacle(r.Obstacle)
		s.Rooms = append(s.Rooms, rs)
	}

	return s
}

func captureObstacle(o game.Obstacle) *ObstacleState {
	switch v := o.(type) {
	case *game.Puzzle:
		c := *v
		return &ObstacleState{Kind: game.KindPuzzle, Puzzle: &c}
	case *game.Monster:
		c := *v
		return &ObstacleState{Kind: game.KindMonster, Monster: &c}
	default:
		return nil
	}
}

// Validate satisfies storage.ValidatingSpec.
func (s *Snapshot) Validate() error {
	el := errors.NewErrorList()

	if len(s.Rooms) == 0 {
		el.Add(fmt.Errorf("snapshot has no rooms"))
	}

	seen := map[int]bool{}
	for _, r := range s.Rooms {
		if seen[r.Id] {
			el.Add(fmt.Errorf("room %d: %w", r.Id, game.ErrDuplicateRoom))
		}
		seen[r.Id] = true
		el.Add(r.validate())
	}

	if s.Player == nil {
		el.Add(fmt.Errorf("snapshot has no player"))
	} else {
		el.Add(s.Player.Validate())
		if !seen[s.Player.RoomId] {
			el.Add(fmt.Errorf("player room %d: %w", s.Player.RoomId, game.ErrRoomNotFound))
		}
	}

	return el.Err()
}

func (r *RoomState) validate() error {
	el := errors.NewErrorList()

	if r.Id <= 0 {
		el.Add(fmt.Errorf("room id must be positive"))
	}
	for d := range r.Exits {
		if !d.Valid() {
			el.Add(fmt.Errorf("room %d: unknown exit direction %q", r.Id, d))
		}
	}
	for _, i := range r.Items {
		el.Add(i.Validate())
	}

	if r.Obstacle != nil {
		switch {
		case r.Obstacle.Kind == game.KindPuzzle && r.Obstacle.Puzzle != nil:
		case r.Obstacle.Kind == game.KindMonster && r.Obstacle.Monster != nil:
		default:
			el.Add(fmt.Errorf("room %d: invalid obstacle of kind %q", r.Id, r.Obstacle.Kind))
		}
	}

	return el.Err()
}

// Restore rebuilds the world held by the snapshot and copies the saved
// player into p. p is left untouched when the snapshot is invalid.
func (s *Snapshot) Restore(p *game.Player) (*game.World, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("validating snapshot: %w", err)
	}

	w := game.NewWorld(s.World)
	for _, rs := range s.Rooms {
		r := game.NewRoom(rs.Id, rs.Name, rs.Description)
		for d, v := range rs.Exits {
			r.SetExit(d, v)
		}
		for _, i := range rs.Items {
			r.AddItem(i.Clone())
		}
		for _, f := range rs.Fixtures {
			fc := *f
			r.AddFixture(&fc)
		}
		r.SetObstacle(rs.Obstacle.build())
		if err := w.AddRoom(r); err != nil {
			return nil, err
		}
	}

	p.CopyFrom(s.Player)
	return w, nil
}

func (o *ObstacleState) build() game.Obstacle {
	if o == nil {
		return nil
	}
	switch o.Kind {
	case game.KindPuzzle:
		c := *o.Puzzle
		return &c
	case game.KindMonster:
		c := *o.Monster
		return &c
	default:
		return nil
	}
}
