package game

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

const (
	MaxHealth      = 100
	MaxCarryWeight = 13.0
	StartRoomId    = 1
)

// Player is the single adventurer. Callers hold a long-lived *Player;
// restoring a save copies into it rather than replacing it.
type Player struct {
	Name      string  `json:"name"`
	Health    int     `json:"health"`
	Score     float64 `json:"score"`
	RoomId    int     `json:"room_id"`
	Inventory []*Item `json:"inventory"`
}

func NewPlayer(name string, roomId int) *Player {
	return &Player{
		Name:   name,
		Health: MaxHealth,
		RoomId: roomId,
	}
}

// CarriedWeight is the summed weight of the inventory.
func (p *Player) CarriedWeight() float64 {
	total := 0.0
	for _, i := range p.Inventory {
		total += i.Weight
	}
	return total
}

// CanCarry reports whether adding i keeps the inventory within MaxCarryWeight.
func (p *Player) CanCarry(i *Item) bool {
	return p.CarriedWeight()+i.Weight <= MaxCarryWeight
}

// FindItem returns the first carried item whose name matches, ignoring case.
func (p *Player) FindItem(name string) *Item {
	return findItem(p.Inventory, name)
}

func (p *Player) AddItem(i *Item) {
	p.Inventory = append(p.Inventory, i)
}

func (p *Player) RemoveItem(name string) *Item {
	var item *Item
	p.Inventory, item = removeItem(p.Inventory, name)
	return item
}

// SetHealth stores h clamped to [0, MaxHealth].
func (p *Player) SetHealth(h int) {
	p.Health = min(max(h, 0), MaxHealth)
}

// TakeDamage lowers health by dmg and returns how much was actually lost.
func (p *Player) TakeDamage(dmg int) int {
	before := p.Health
	p.SetHealth(p.Health - dmg)
	return before - p.Health
}

func (p *Player) AddScore(v int) {
	p.Score += float64(v)
}

func (p *Player) IsAlive() bool {
	return p.Health > 0
}

func (p *Player) HealthStatus() HealthStatus {
	return HealthStatusFor(p.Health)
}

func (p *Player) Rank() PlayerRank {
	return RankFor(p.Score)
}

// CopyFrom overwrites every field of p with a deep copy of other's.
func (p *Player) CopyFrom(other *Player) {
	p.Name = other.Name
	p.Health = other.Health
	p.Score = other.Score
	p.RoomId = other.RoomId
	p.Inventory = make([]*Item, 0, len(other.Inventory))
	for _, i := range other.Inventory {
		p.Inventory = append(p.Inventory, i.Clone())
	}
}

// Validate satisfies storage.ValidatingSpec.
func (p *Player) Validate() error {
	el := errors.NewErrorList()

	if p.Health < 0 || p.Health > MaxHealth {
		el.Add(fmt.Errorf("health must be between 0 and %d", MaxHealth))
	}
	if p.RoomId <= 0 {
		el.Add(fmt.Errorf("room_id must be positive"))
	}
	for _, i := range p.Inventory {
		el.Add(i.Validate())
	}

	return el.Err()
}
