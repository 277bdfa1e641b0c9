package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pixil98/go-testutil"

	"github.com/pixil98/go-adventure/internal/game"
	"github.com/pixil98/go-adventure/internal/loader"
	"github.com/pixil98/go-adventure/internal/persist"
	"github.com/pixil98/go-adventure/internal/storage"
)

type testRoom struct {
	id       int
	exits    map[game.Direction]int
	items    []*game.Item
	obstacle game.Obstacle
}

func newTestEngine(t *testing.T, start int, rooms []testRoom, opts ...EngineOpt) *Engine {
	t.Helper()

	w := game.NewWorld("test")
	for _, tr := range rooms {
		r := game.NewRoom(tr.id, "Room", "")
		for d, v := range tr.exits {
			r.SetExit(d, v)
		}
		for _, i := range tr.items {
			r.AddItem(i)
		}
		r.Obstacle = tr.obstacle
		if err := w.AddRoom(r); err != nil {
			t.Fatalf("adding room: %v", err)
		}
	}

	return New(w, game.NewPlayer("tester", start), opts...)
}

func TestEngine_Move(t *testing.T) {
	rooms := []testRoom{
		{id: 1, exits: map[game.Direction]int{game.North: 2, game.East: -3, game.West: 9}},
		{id: 2, exits: map[game.Direction]int{game.South: 1}},
		{id: 3},
	}

	tests := map[string]struct {
		dir     game.Direction
		expOk   bool
		expRoom int
	}{
		"open exit":         {dir: game.North, expOk: true, expRoom: 2},
		"no exit":           {dir: game.South, expOk: false, expRoom: 1},
		"blocked exit":      {dir: game.East, expOk: false, expRoom: 1},
		"missing room":      {dir: game.West, expOk: false, expRoom: 1},
		"unknown direction": {dir: game.Direction("U"), expOk: false, expRoom: 1},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			e := newTestEngine(t, 1, rooms)
			testutil.AssertEqual(t, "ok", e.Move(tt.dir), tt.expOk)
			testutil.AssertEqual(t, "room", e.CurrentRoom().Id, tt.expRoom)
		})
	}
}

func TestEngine_MoveEntryGuard(t *testing.T) {
	rooms := []testRoom{
		{id: 1, exits: map[game.Direction]int{game.North: 2}},
		{id: 2, obstacle: &game.Monster{ObstacleState: game.ObstacleState{Name: "Rat", Active: true, TargetRoomId: 2}}},
	}

	guarded := newTestEngine(t, 1, rooms, WithEntryGuard())
	testutil.AssertEqual(t, "guarded move", guarded.Move(game.North), false)
	testutil.AssertEqual(t, "guarded room", guarded.CurrentRoom().Id, 1)

	guarded.World().Room(2).Obstacle.Deactivate()
	testutil.AssertEqual(t, "after defeat", guarded.Move(game.North), true)

	open := newTestEngine(t, 1, rooms)
	testutil.AssertEqual(t, "unguarded move", open.Move(game.North), true)
}

func TestEngine_PickItem(t *testing.T) {
	tests := map[string]struct {
		carried   []*game.Item
		inRoom    []*game.Item
		pick      string
		expOk     bool
		expRoom   int
		expCarry  int
		expWeight float64
	}{
		"light item": {
			inRoom:    []*game.Item{{Name: "Comb", Weight: 1}},
			pick:      "comb",
			expOk:     true,
			expRoom:   0,
			expCarry:  1,
			expWeight: 1,
		},
		"not in room": {
			inRoom:   []*game.Item{{Name: "Comb", Weight: 1}},
			pick:     "brush",
			expOk:    false,
			expRoom:  1,
			expCarry: 0,
		},
		"exactly at the limit": {
			carried:   []*game.Item{{Name: "Rock", Weight: 10}},
			inRoom:    []*game.Item{{Name: "Brick", Weight: 3}},
			pick:      "brick",
			expOk:     true,
			expRoom:   0,
			expCarry:  2,
			expWeight: 13,
		},
		"overweight stays in room": {
			carried:   []*game.Item{{Name: "Rock", Weight: 10}},
			inRoom:    []*game.Item{{Name: "Comb", Weight: 1}, {Name: "Anvil", Weight: 12}, {Name: "Pin", Weight: 0}},
			pick:      "anvil",
			expOk:     false,
			expRoom:   3,
			expCarry:  1,
			expWeight: 10,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			e := newTestEngine(t, 1, []testRoom{{id: 1, items: tt.inRoom}})
			for _, i := range tt.carried {
				e.Player().AddItem(i)
			}

			testutil.AssertEqual(t, "ok", e.PickItem(tt.pick), tt.expOk)
			testutil.AssertEqual(t, "room items", len(e.CurrentRoom().Items), tt.expRoom)
			testutil.AssertEqual(t, "carried", len(e.Inventory()), tt.expCarry)
			testutil.AssertEqual(t, "weight", e.Player().CarriedWeight(), tt.expWeight)
			if tt.pick == "anvil" {
				testutil.AssertEqual(t, "original position", e.CurrentRoom().Items[1].Name, "Anvil")
			}
		})
	}
}

func TestEngine_DropItem(t *testing.T) {
	e := newTestEngine(t, 1, []testRoom{{id: 1}})
	e.Player().AddItem(&game.Item{Name: "Comb", Weight: 1})

	testutil.AssertEqual(t, "missing", e.DropItem("brush"), false)
	testutil.AssertEqual(t, "carried", e.DropItem("COMB"), true)
	testutil.AssertEqual(t, "inventory", len(e.Inventory()), 0)
	testutil.AssertEqual(t, "in room", e.CurrentRoom().FindItem("comb") != nil, true)
	testutil.AssertEqual(t, "twice", e.DropItem("comb"), false)
}

func TestEngine_UseItem(t *testing.T) {
	e := newTestEngine(t, 1, []testRoom{{id: 1}})
	match := &game.Item{Name: "Match", MaxUses: 1, UsesRemaining: 1, WhenUsed: "It flares."}
	e.Player().AddItem(match)

	testutil.AssertEqual(t, "first use", e.UseItem("match"), "It flares.")
	testutil.AssertEqual(t, "remaining", match.UsesRemaining, 0)
	testutil.AssertEqual(t, "second use", e.UseItem("match"), MsgItemExhausted)
	testutil.AssertEqual(t, "still zero", match.UsesRemaining, 0)
	testutil.AssertEqual(t, "still carried", len(e.Inventory()), 1)
	testutil.AssertEqual(t, "not carried", e.UseItem("torch"), MsgItemNotFound)
}

func TestEngine_Answer(t *testing.T) {
	newPuzzle := func(affects bool) *game.Puzzle {
		return &game.Puzzle{
			ObstacleState: game.ObstacleState{Name: "Riddle", Active: true, Value: 40, TargetRoomId: 2},
			Solution:      "'light'",
			AffectsTarget: affects,
		}
	}

	tests := map[string]struct {
		obstacle  game.Obstacle
		answer    string
		expOk     bool
		expScore  float64
		expNorth  int
		expActive bool
	}{
		"correct answer unblocks": {
			obstacle: newPuzzle(true),
			answer:   "LIGHT",
			expOk:    true,
			expScore: 40,
			expNorth: 2,
		},
		"correct answer without target": {
			obstacle: newPuzzle(false),
			answer:   "light",
			expOk:    true,
			expScore: 40,
			expNorth: -2,
		},
		"wrong answer": {
			obstacle:  newPuzzle(true),
			answer:    "dark",
			expOk:     false,
			expNorth:  -2,
			expActive: true,
		},
		"monster is not a puzzle": {
			obstacle:  &game.Monster{ObstacleState: game.ObstacleState{Name: "Rat", Active: true, TargetRoomId: 2}, DefeatItem: "light"},
			answer:    "light",
			expOk:     false,
			expNorth:  -2,
			expActive: true,
		},
		"no obstacle": {
			answer:   "light",
			expOk:    false,
			expNorth: -2,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			e := newTestEngine(t, 7, []testRoom{
				{id: 7, exits: map[game.Direction]int{game.North: -2}, obstacle: tt.obstacle},
				{id: 2},
			})

			testutil.AssertEqual(t, "ok", e.Answer(tt.answer), tt.expOk)
			testutil.AssertEqual(t, "score", e.Score(), tt.expScore)
			testutil.AssertEqual(t, "north", e.CurrentRoom().Exit(game.North), tt.expNorth)
			testutil.AssertEqual(t, "active", e.CurrentRoom().HasActiveObstacle(), tt.expActive)
		})
	}
}

func TestEngine_AnswerTwice(t *testing.T) {
	e := newTestEngine(t, 7, []testRoom{
		{id: 7, exits: map[game.Direction]int{game.North: -2}, obstacle: &game.Puzzle{
			ObstacleState: game.ObstacleState{Name: "Riddle", Active: true, Value: 40, TargetRoomId: 2},
			Solution:      "light",
			AffectsTarget: true,
		}},
		{id: 2},
	})

	testutil.AssertEqual(t, "first", e.Answer("light"), true)
	testutil.AssertEqual(t, "second", e.Answer("light"), false)
	testutil.AssertEqual(t, "score once", e.Score(), 40.0)
	testutil.AssertEqual(t, "can leave", e.Move(game.North), true)
}

func TestEngine_AttemptDefeat(t *testing.T) {
	newRoom := func() testRoom {
		return testRoom{
			id:    3,
			exits: map[game.Direction]int{game.North: -4, game.West: 2},
			obstacle: &game.Monster{
				ObstacleState: game.ObstacleState{Name: "Rabbit", Active: true, Value: 300, TargetRoomId: 4},
				Damage:        5,
				CanAttack:     true,
				DefeatItem:    "Slippers",
			},
		}
	}

	e := newTestEngine(t, 3, []testRoom{newRoom(), {id: 4}})
	testutil.AssertEqual(t, "wrong item", e.AttemptDefeat("comb"), false)
	testutil.AssertEqual(t, "still blocked", e.CurrentRoom().Exit(game.North), -4)

	testutil.AssertEqual(t, "right item", e.AttemptDefeat("slippers"), true)
	testutil.AssertEqual(t, "score", e.Score(), 300.0)
	testutil.AssertEqual(t, "unblocked", e.CurrentRoom().Exit(game.North), 4)
	testutil.AssertEqual(t, "west untouched", e.CurrentRoom().Exit(game.West), 2)
	testutil.AssertEqual(t, "again", e.AttemptDefeat("slippers"), false)
	testutil.AssertEqual(t, "score once", e.Score(), 300.0)

	_, attacked := e.Tick()
	testutil.AssertEqual(t, "no attack after defeat", attacked, false)
}

func TestEngine_UseOn(t *testing.T) {
	tests := map[string]struct {
		obstacle   game.Obstacle
		use        string
		expMsg     string
		expActive  bool
		expScore   float64
		expUsesFor int
	}{
		"defeats monster": {
			obstacle: &game.Monster{
				ObstacleState: game.ObstacleState{Name: "Rabbit", Active: true, Value: 300, TargetRoomId: 4},
				DefeatItem:    "Slippers",
			},
			use:        "slippers",
			expMsg:     "You used Slippers and defeated the Rabbit!\nSo comfy.",
			expScore:   300,
			expUsesFor: 1,
		},
		"solves puzzle": {
			obstacle: &game.Puzzle{
				ObstacleState: game.ObstacleState{Name: "Cold Room", Active: true, Value: 50, TargetRoomId: 4},
				Solution:      "Slippers",
				AffectsTarget: true,
			},
			use:        "Slippers",
			expMsg:     "You used Slippers and solved the Cold Room!\nSo comfy.",
			expScore:   50,
			expUsesFor: 1,
		},
		"no effect on obstacle": {
			obstacle: &game.Monster{
				ObstacleState: game.ObstacleState{Name: "Bear", Active: true, Value: 300, TargetRoomId: 4},
				DefeatItem:    "Honey",
			},
			use:        "slippers",
			expMsg:     "So comfy.",
			expActive:  true,
			expUsesFor: 1,
		},
		"not carried": {
			use:        "honey",
			expMsg:     MsgItemNotFound,
			expUsesFor: 2,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			e := newTestEngine(t, 3, []testRoom{
				{id: 3, exits: map[game.Direction]int{game.North: -4}, obstacle: tt.obstacle},
				{id: 4},
			})
			slippers := &game.Item{Name: "Slippers", MaxUses: 2, UsesRemaining: 2, WhenUsed: "So comfy."}
			e.Player().AddItem(slippers)

			testutil.AssertEqual(t, "message", e.UseOn(tt.use), tt.expMsg)
			testutil.AssertEqual(t, "active", e.CurrentRoom().HasActiveObstacle(), tt.expActive)
			testutil.AssertEqual(t, "score", e.Score(), tt.expScore)
			testutil.AssertEqual(t, "uses", slippers.UsesRemaining, tt.expUsesFor)
		})
	}
}

func TestEngine_UseOnExhausted(t *testing.T) {
	e := newTestEngine(t, 3, []testRoom{{id: 3, obstacle: &game.Monster{
		ObstacleState: game.ObstacleState{Name: "Rabbit", Active: true, TargetRoomId: 3},
		DefeatItem:    "Slippers",
	}}})
	e.Player().AddItem(&game.Item{Name: "Slippers", MaxUses: 1})

	testutil.AssertEqual(t, "message", e.UseOn("slippers"), MsgItemExhausted)
	testutil.AssertEqual(t, "still active", e.CurrentRoom().HasActiveObstacle(), true)
}

func TestEngine_Tick(t *testing.T) {
	monster := &game.Monster{
		ObstacleState: game.ObstacleState{Name: "Troll", Active: true, TargetRoomId: 2},
		Damage:        25,
		CanAttack:     true,
		AttackMessage: "swings a club",
	}
	e := newTestEngine(t, 2, []testRoom{{id: 2, obstacle: monster}})
	e.Player().Health = 10

	a, ok := e.Tick()
	testutil.AssertEqual(t, "attacked", ok, true)
	testutil.AssertEqual(t, "damage", a.Damage, 10)
	testutil.AssertEqual(t, "message", a.Message, "swings a club")
	testutil.AssertEqual(t, "health", e.Health(), 0)
	testutil.AssertEqual(t, "status", e.HealthStatus(), game.Sleep)
	testutil.AssertEqual(t, "alive", e.IsAlive(), false)
}

func TestEngine_MoveRunsEntryAttack(t *testing.T) {
	monster := &game.Monster{
		ObstacleState: game.ObstacleState{Name: "Troll", Active: true, TargetRoomId: 2},
		Damage:        25,
		CanAttack:     true,
		AttackMessage: "swings a club",
	}

	tests := map[string]struct {
		canAttack bool
		dir       game.Direction
		expMoved  bool
		expHealth int
		expAttack bool
	}{
		"hostile monster attacks on entry": {canAttack: true, dir: game.North, expMoved: true, expHealth: 75, expAttack: true},
		"passive monster":                  {canAttack: false, dir: game.North, expMoved: true, expHealth: 100},
		"failed move":                      {canAttack: true, dir: game.South, expMoved: false, expHealth: 100},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			m := *monster
			m.CanAttack = tt.canAttack
			e := newTestEngine(t, 1, []testRoom{
				{id: 1, exits: map[game.Direction]int{game.North: 2}},
				{id: 2, exits: map[game.Direction]int{game.South: 1}, obstacle: &m},
			})

			testutil.AssertEqual(t, "moved", e.Move(tt.dir), tt.expMoved)
			testutil.AssertEqual(t, "health", e.Health(), tt.expHealth)

			a, ok := e.EntryAttack()
			testutil.AssertEqual(t, "attack reported", ok, tt.expAttack)
			if tt.expAttack {
				testutil.AssertEqual(t, "damage", a.Damage, 25)
				testutil.AssertEqual(t, "monster", a.Monster, "Troll")
			}

			_, again := e.EntryAttack()
			testutil.AssertEqual(t, "reported once", again, false)
		})
	}
}

func TestEngine_TickEveryTurn(t *testing.T) {
	monster := &game.Monster{
		ObstacleState: game.ObstacleState{Name: "Rabbit", Active: true, TargetRoomId: 2},
		Damage:        -5,
		CanAttack:     true,
	}
	e := newTestEngine(t, 1, []testRoom{
		{id: 1, exits: map[game.Direction]int{game.East: 2}},
		{id: 2, exits: map[game.Direction]int{game.West: 1}, obstacle: monster},
	})

	_, ok := e.Tick()
	testutil.AssertEqual(t, "no monster here", ok, false)

	e.Move(game.East)
	for i := 0; i < 3; i++ {
		if _, ok := e.Tick(); !ok {
			t.Fatalf("expected attack on turn %d", i)
		}
	}
	// One attack on entry plus three turns.
	testutil.AssertEqual(t, "health", e.Health(), 80)
	testutil.AssertEqual(t, "status", e.HealthStatus(), game.Awake)
}

func TestEngine_ExamineAndHint(t *testing.T) {
	puzzle := &game.Puzzle{
		ObstacleState: game.ObstacleState{Name: "Mirror", Description: "Clear.", ActiveEffect: "Fogged.", Active: true, TargetRoomId: 1},
		Solution:      "wipe",
		Hint:          "Try cleaning it.",
	}
	e := newTestEngine(t, 1, []testRoom{{id: 1, items: []*game.Item{{Name: "Comb", Description: "A plastic comb."}}, obstacle: puzzle}})
	e.CurrentRoom().AddFixture(&game.Fixture{Name: "Bench", Description: "A wooden bench."})
	e.Player().AddItem(&game.Item{Name: "Lamp", Description: "An oil lamp."})

	tests := map[string]struct {
		name string
		exp  string
	}{
		"room item":      {name: "comb", exp: "A plastic comb."},
		"inventory item": {name: "LAMP", exp: "An oil lamp."},
		"fixture":        {name: "bench", exp: "A wooden bench."},
		"obstacle":       {name: "mirror", exp: "Fogged."},
		"nothing":        {name: "ceiling", exp: MsgNothingToSee},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "description", e.Examine(tt.name), tt.exp)
		})
	}

	testutil.AssertEqual(t, "hint", e.Hint(), "Try cleaning it.")
	e.Answer("wipe")
	testutil.AssertEqual(t, "no hint after solve", e.Hint(), MsgNoHint)
	testutil.AssertEqual(t, "resolved description", e.Examine("mirror"), "Clear.")
}

func TestEngine_SaveRestore(t *testing.T) {
	ctx := context.Background()
	store, err := storage.NewFileStore[*persist.Snapshot](t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	puzzle := &game.Puzzle{
		ObstacleState: game.ObstacleState{Name: "Riddle", Active: true, Value: 40, TargetRoomId: 2},
		Solution:      "light",
		AffectsTarget: true,
	}
	e := newTestEngine(t, 1, []testRoom{
		{id: 1, exits: map[game.Direction]int{game.North: -2}, obstacle: puzzle, items: []*game.Item{{Name: "Comb", Weight: 1, MaxUses: 1, UsesRemaining: 1}}},
		{id: 2, exits: map[game.Direction]int{game.South: 1}},
	}, WithStore(store))
	player := e.Player()
	player.Health = 72
	e.PickItem("comb")
	session := e.SessionId()

	testutil.AssertEqual(t, "save", e.Save(ctx, "slot-1"), true)

	// Progress after the save is lost on restore.
	e.Answer("light")
	e.Move(game.North)
	e.UseItem("comb")
	player.Health = 12

	testutil.AssertEqual(t, "restore", e.Restore(ctx, "slot-1"), true)

	testutil.AssertEqual(t, "same player object", e.Player() == player, true)
	testutil.AssertEqual(t, "health", player.Health, 72)
	testutil.AssertEqual(t, "score", player.Score, 0.0)
	testutil.AssertEqual(t, "room", player.RoomId, 1)
	testutil.AssertEqual(t, "inventory", len(player.Inventory), 1)
	testutil.AssertEqual(t, "item uses", player.Inventory[0].UsesRemaining, 1)
	testutil.AssertEqual(t, "exit sign", e.CurrentRoom().Exit(game.North), -2)
	testutil.AssertEqual(t, "puzzle active", e.CurrentRoom().HasActiveObstacle(), true)
	testutil.AssertEqual(t, "session", e.SessionId(), session)
}

func TestEngine_RestoreFailureLeavesState(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := storage.NewFileStore[*persist.Snapshot](dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := map[string]struct {
		setup func(t *testing.T)
	}{
		"missing slot": {
			setup: func(t *testing.T) {},
		},
		"corrupt slot": {
			setup: func(t *testing.T) {
				if err := os.WriteFile(filepath.Join(dir, "slot-1.json"), []byte(`{"version": 1, "id": "slot-1", "spec": {"rooms": [`), 0644); err != nil {
					t.Fatalf("failed to write test file: %v", err)
				}
			},
		},
		"snapshot without player": {
			setup: func(t *testing.T) {
				data := `{"version": 1, "id": "slot-1", "spec": {"rooms": [{"id": 1, "name": "A"}]}}`
				if err := os.WriteFile(filepath.Join(dir, "slot-1.json"), []byte(data), 0644); err != nil {
					t.Fatalf("failed to write test file: %v", err)
				}
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_ = os.Remove(filepath.Join(dir, "slot-1.json"))
			tt.setup(t)

			e := newTestEngine(t, 1, []testRoom{{id: 1}, {id: 5}}, WithStore(store))
			world := e.World()
			e.Player().Health = 33

			testutil.AssertEqual(t, "restore", e.Restore(ctx, "slot-1"), false)
			testutil.AssertEqual(t, "same world", e.World() == world, true)
			testutil.AssertEqual(t, "health", e.Health(), 33)
			testutil.AssertEqual(t, "name", e.Player().Name, "tester")
		})
	}
}

func TestEngine_SaveWithoutStore(t *testing.T) {
	e := newTestEngine(t, 1, []testRoom{{id: 1}})
	testutil.AssertEqual(t, "save", e.Save(context.Background(), "slot-1"), false)
	testutil.AssertEqual(t, "restore", e.Restore(context.Background(), "slot-1"), false)
}

func TestEngine_Playthrough(t *testing.T) {
	w, err := loader.LoadFile(filepath.Join("..", "loader", "testdata", "align_quest.json"))
	if err != nil {
		t.Fatalf("loading world: %v", err)
	}
	e := New(w, game.NewPlayer("Ada", game.StartRoomId))

	testutil.AssertEqual(t, "gate blocks", e.Move(game.North), false)
	testutil.AssertEqual(t, "wrong answer", e.Answer("open"), false)
	testutil.AssertEqual(t, "right answer", e.Answer(`"align"`), true)
	testutil.AssertEqual(t, "through the gate", e.Move(game.North), true)
	testutil.AssertEqual(t, "take slippers", e.PickItem("slippers"), true)
	testutil.AssertEqual(t, "to kitchen", e.Move(game.East), true)

	a, ok := e.EntryAttack()
	testutil.AssertEqual(t, "rabbit attacks", ok, true)
	testutil.AssertEqual(t, "rabbit damage", a.Damage, 5)

	testutil.AssertEqual(t, "pantry blocked", e.Move(game.North), false)
	testutil.AssertEqual(t, "use slippers", e.UseOn("slippers"), "You used Slippers and defeated the Rabbit!\nYou slide the slippers on. So comfy.")
	testutil.AssertEqual(t, "to pantry", e.Move(game.North), true)
	testutil.AssertEqual(t, "anvil just fits", e.PickItem("anvil"), true)

	testutil.AssertEqual(t, "score", e.Score(), 450.0)
	testutil.AssertEqual(t, "rank", e.Rank(), game.Legend)
	testutil.AssertEqual(t, "health", e.Health(), 95)
}
