package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/pixil98/go-adventure/internal/game"
	"github.com/pixil98/go-adventure/internal/persist"
	"github.com/pixil98/go-adventure/internal/storage"
)

const (
	MsgItemNotFound    = "Item not found in inventory."
	MsgItemExhausted   = "You can't use that item anymore."
	MsgNothingToSee    = "You see nothing interesting about that."
	MsgNoHint          = "There is nothing here to give you a hint about."
	MsgHintUnavailable = "You're on your own with this one."
)

// Engine applies player commands to a world. It is not safe for
// concurrent use; callers issue one command at a time.
type Engine struct {
	world  *game.World
	player *game.Player

	store      storage.Storer[*persist.Snapshot]
	sessionId  uuid.UUID
	entryGuard bool

	entryAttack *Attack
}

// Attack describes one monster attack on the player.
type Attack struct {
	Monster string
	Message string
	Damage  int
}

// New starts a session on w for p. p stays the same object for the life
// of the engine, even across Restore.
func New(w *game.World, p *game.Player, opts ...EngineOpt) *Engine {
	e := &Engine{
		world:     w,
		player:    p,
		sessionId: uuid.New(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

func (e *Engine) World() *game.World {
	return e.world
}

func (e *Engine) Player() *game.Player {
	return e.player
}

func (e *Engine) SessionId() uuid.UUID {
	return e.sessionId
}

func (e *Engine) CurrentRoom() *game.Room {
	return e.world.Room(e.player.RoomId)
}

func (e *Engine) Inventory() []*game.Item {
	return e.player.Inventory
}

func (e *Engine) Health() int {
	return e.player.Health
}

func (e *Engine) Score() float64 {
	return e.player.Score
}

func (e *Engine) HealthStatus() game.HealthStatus {
	return e.player.HealthStatus()
}

func (e *Engine) Rank() game.PlayerRank {
	return e.player.Rank()
}

func (e *Engine) IsAlive() bool {
	return e.player.IsAlive()
}

// Move follows the exit in direction d. Missing and blocked exits, and
// exits to rooms that do not exist, are not traversable. Rooms holding an
// active obstacle can be entered unless the engine was built with
// WithEntryGuard. Entering a room with a hostile monster runs its attack
// at once; EntryAttack reports it.
func (e *Engine) Move(d game.Direction) bool {
	e.entryAttack = nil

	room := e.CurrentRoom()
	if room == nil {
		return false
	}

	target := e.world.Exit(room.Id, d)
	if target <= 0 {
		return false
	}

	dest := e.world.Room(target)
	if dest == nil {
		slog.Warn("exit leads to a missing room", "room", room.Id, "direction", d, "target", target)
		return false
	}
	if e.entryGuard && dest.HasActiveObstacle() {
		return false
	}

	e.player.RoomId = dest.Id
	if a, ok := e.Tick(); ok {
		e.entryAttack = &a
	}
	return true
}

// EntryAttack returns the attack made when the last Move entered a room,
// and forgets it so it is reported only once.
func (e *Engine) EntryAttack() (Attack, bool) {
	a := e.entryAttack
	e.entryAttack = nil
	if a == nil {
		return Attack{}, false
	}
	return *a, true
}

// PickItem moves an item from the current room to the inventory unless it
// would take the player over MaxCarryWeight.
func (e *Engine) PickItem(name string) bool {
	room := e.CurrentRoom()
	if room == nil {
		return false
	}

	item := room.FindItem(name)
	if item == nil || !e.player.CanCarry(item) {
		return false
	}

	e.player.AddItem(room.RemoveItem(item.Name))
	return true
}

// DropItem moves a carried item into the current room.
func (e *Engine) DropItem(name string) bool {
	room := e.CurrentRoom()
	if room == nil {
		return false
	}

	item := e.player.RemoveItem(name)
	if item == nil {
		return false
	}

	room.AddItem(item)
	return true
}

// UseItem spends one use of a carried item and returns its use text.
func (e *Engine) UseItem(name string) string {
	item := e.player.FindItem(name)
	if item == nil {
		return MsgItemNotFound
	}

	msg, ok := item.Use()
	if !ok {
		return MsgItemExhausted
	}
	return msg
}

// Answer tries text against the current room's active puzzle.
func (e *Engine) Answer(text string) bool {
	room := e.CurrentRoom()
	if room == nil {
		return false
	}

	p := room.ActivePuzzle()
	if p == nil || !p.IsSolved(text) {
		return false
	}

	e.resolve(room, p, p.AffectsTarget)
	return true
}

// AttemptDefeat tries itemName against the current room's active monster.
func (e *Engine) AttemptDefeat(itemName string) bool {
	room := e.CurrentRoom()
	if room == nil {
		return false
	}

	m := room.ActiveMonster()
	if m == nil || !m.IsDefeatedByItem(itemName) {
		return false
	}

	e.resolve(room, m, true)
	return true
}

func (e *Engine) resolve(room *game.Room, o game.Obstacle, unblock bool) {
	st := o.State()
	if !room.DeactivateObstacle() {
		return
	}
	e.player.AddScore(st.Value)

	opened := 0
	if unblock {
		opened = room.UnblockExitsTo(st.TargetRoomId)
	}

	slog.Info("obstacle resolved",
		"session", e.sessionId,
		"kind", o.Kind(),
		"name", st.Name,
		"room", room.Id,
		"value", st.Value,
		"exits_opened", opened,
	)
}

// UseOn uses a carried item, first trying it against the room's active
// obstacle. A monster defeated by the item or a puzzle whose solution is
// the item's name is resolved before the item's own effect is applied.
func (e *Engine) UseOn(name string) string {
	item := e.player.FindItem(name)
	if item == nil {
		return MsgItemNotFound
	}
	if !item.Usable() {
		return MsgItemExhausted
	}

	room := e.CurrentRoom()
	if room == nil {
		return e.UseItem(item.Name)
	}

	if m := room.ActiveMonster(); m != nil && e.AttemptDefeat(item.Name) {
		return fmt.Sprintf("You used %s and defeated the %s!\n%s", item.Name, m.Name, e.UseItem(item.Name))
	}
	if p := room.ActivePuzzle(); p != nil && e.Answer(item.Name) {
		return fmt.Sprintf("You used %s and solved the %s!\n%s", item.Name, p.Name, e.UseItem(item.Name))
	}

	return e.UseItem(item.Name)
}

// Examine describes a named item, fixture or obstacle the player can see.
func (e *Engine) Examine(name string) string {
	room := e.CurrentRoom()
	if room != nil {
		if i := room.FindItem(name); i != nil {
			return i.Description
		}
	}
	if i := e.player.FindItem(name); i != nil {
		return i.Description
	}
	if room != nil {
		if f := room.FindFixture(name); f != nil {
			return f.Description
		}
		if o := room.Obstacle; o != nil && strings.EqualFold(o.State().Name, strings.TrimSpace(name)) {
			return o.CurrentDescription()
		}
	}
	return MsgNothingToSee
}

// Hint returns the hint for the room's active puzzle.
func (e *Engine) Hint() string {
	room := e.CurrentRoom()
	if room == nil {
		return MsgNoHint
	}

	p := room.ActivePuzzle()
	if p == nil {
		return MsgNoHint
	}
	if p.Hint == "" {
		return MsgHintUnavailable
	}
	return p.Hint
}

// Tick runs the end-of-turn monster attack. It reports false when no
// monster in the current room was able to attack.
func (e *Engine) Tick() (Attack, bool) {
	room := e.CurrentRoom()
	if room == nil {
		return Attack{}, false
	}

	m := room.ActiveMonster()
	if m == nil || !m.CanAttack {
		return Attack{}, false
	}

	dealt := m.Attack(e.player)
	slog.Debug("monster attack", "session", e.sessionId, "monster", m.Name, "damage", dealt, "health", e.player.Health)

	return Attack{Monster: m.Name, Message: m.AttackMessage, Damage: dealt}, true
}

// Save writes the whole world and player to slot.
func (e *Engine) Save(ctx context.Context, slot string) bool {
	if e.store == nil {
		slog.Error("save requested without a store", "session", e.sessionId)
		return false
	}

	err := e.store.Save(ctx, slot, persist.Capture(e.sessionId, e.world, e.player))
	if err != nil {
		slog.Error("saving game", "session", e.sessionId, "slot", slot, "error", err)
		return false
	}

	slog.Info("game saved", "session", e.sessionId, "slot", slot)
	return true
}

// Restore replaces the world with the one saved in slot and copies the
// saved player into the engine's player. On failure nothing changes.
func (e *Engine) Restore(ctx context.Context, slot string) bool {
	if e.store == nil {
		slog.Error("restore requested without a store", "session", e.sessionId)
		return false
	}

	snap, err := e.store.Load(ctx, slot)
	if err != nil {
		slog.Warn("loading saved game", "session", e.sessionId, "slot", slot, "error", err)
		return false
	}

	w, err := snap.Restore(e.player)
	if err != nil {
		slog.Warn("restoring saved game", "session", e.sessionId, "slot", slot, "error", err)
		return false
	}

	e.world = w
	e.entryAttack = nil
	e.sessionId = snap.SessionId
	slog.Info("game restored", "session", e.sessionId, "slot", slot)
	return true
}
