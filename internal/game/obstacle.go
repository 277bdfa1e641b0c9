package game

import (
	"fmt"
	"strings"

	"github.com/pixil98/go-errors"
)

// ObstacleKind names the concrete type behind an Obstacle.
type ObstacleKind string

const (
	KindPuzzle  ObstacleKind = "puzzle"
	KindMonster ObstacleKind = "monster"
)

// Obstacle gates progress through a room until it is resolved. Resolution
// always deactivates; an obstacle never becomes active again.
type Obstacle interface {
	Kind() ObstacleKind
	State() *ObstacleState
	IsActive() bool
	Deactivate()
	CurrentDescription() string
}

// ObstacleState is the data shared by every kind of obstacle.
type ObstacleState struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	ActiveEffect string `json:"effects,omitempty"`
	Active       bool   `json:"active"`
	Value        int    `json:"value"`
	TargetRoomId int    `json:"target_room"`
}

func (s *ObstacleState) State() *ObstacleState {
	return s
}

func (s *ObstacleState) IsActive() bool {
	return s.Active
}

func (s *ObstacleState) Deactivate() {
	s.Active = false
}

// CurrentDescription is the effect text while active, and the plain
// description once resolved or when no effect text was given.
func (s *ObstacleState) CurrentDescription() string {
	if s.Active && s.ActiveEffect != "" {
		return s.ActiveEffect
	}
	return s.Description
}

func (s *ObstacleState) validate() error {
	el := errors.NewErrorList()

	if s.Name == "" {
		el.Add(fmt.Errorf("name is required"))
	}
	if s.TargetRoomId <= 0 {
		el.Add(fmt.Errorf("%q: target room must be positive", s.Name))
	}

	return el.Err()
}

// Puzzle is resolved by answering with its solution text, or by using an
// item whose name matches it.
type Puzzle struct {
	ObstacleState
	Solution      string `json:"solution"`
	AffectsTarget bool   `json:"affects_target"`
	AffectsPlayer bool   `json:"affects_player"`
	Hint          string `json:"hint,omitempty"`
}

func (p *Puzzle) Kind() ObstacleKind {
	return KindPuzzle
}

// IsSolved compares answer to the solution ignoring case, surrounding
// whitespace and surrounding quote characters.
func (p *Puzzle) IsSolved(answer string) bool {
	want := normalizeAnswer(p.Solution)
	if want == "" {
		return false
	}
	return strings.EqualFold(normalizeAnswer(answer), want)
}

func (p *Puzzle) Validate() error {
	el := errors.NewErrorList()
	el.Add(p.ObstacleState.validate())
	if normalizeAnswer(p.Solution) == "" {
		el.Add(fmt.Errorf("puzzle %q: solution is required", p.Name))
	}
	return el.Err()
}

// normalizeAnswer trims whitespace and strips one layer of quotes from
// each end.
func normalizeAnswer(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 0 && isQuote(s[0]) {
		s = s[1:]
	}
	if len(s) > 0 && isQuote(s[len(s)-1]) {
		s = s[:len(s)-1]
	}
	return strings.TrimSpace(s)
}

func isQuote(b byte) bool {
	return b == '"' || b == '\''
}

// Monster is resolved by using its defeat item. While active it may attack
// the player every turn they share a room.
type Monster struct {
	ObstacleState
	Damage        int    `json:"damage"`
	CanAttack     bool   `json:"can_attack"`
	AttackMessage string `json:"attack,omitempty"`
	DefeatItem    string `json:"defeat_item"`
}

func (m *Monster) Kind() ObstacleKind {
	return KindMonster
}

// IsDefeatedByItem reports whether name matches the defeat item, ignoring case.
func (m *Monster) IsDefeatedByItem(name string) bool {
	if m.DefeatItem == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(name), m.DefeatItem)
}

// Attack deals the monster's damage to p and returns the amount dealt.
// Inactive or passive monsters deal nothing.
func (m *Monster) Attack(p *Player) int {
	if !m.Active || !m.CanAttack || m.Damage == 0 {
		return 0
	}
	dmg := m.Damage
	if dmg < 0 {
		dmg = -dmg
	}
	return p.TakeDamage(dmg)
}

func (m *Monster) Validate() error {
	el := errors.NewErrorList()
	el.Add(m.ObstacleState.validate())
	if m.DefeatItem == "" {
		el.Add(fmt.Errorf("monster %q: defeat item is required", m.Name))
	}
	return el.Err()
}
