package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pixil98/go-adventure/internal/display"
	"github.com/pixil98/go-adventure/internal/engine"
	"github.com/pixil98/go-adventure/internal/game"
)

// CommandFunc runs one command. args is everything after the verb.
type CommandFunc func(ctx context.Context, args string) (string, error)

type command struct {
	names []string
	usage string
	turn  bool
	fn    CommandFunc
}

// Handler maps a line of player input to one engine operation.
type Handler struct {
	engine   *engine.Engine
	commands map[string]*command
	ordered  []*command
}

func NewHandler(e *engine.Engine) *Handler {
	h := &Handler{
		engine:   e,
		commands: map[string]*command{},
	}

	h.registerMovement()
	h.registerItems()
	h.registerObstacles()
	h.registerInfo()
	h.registerSession()

	return h
}

// Register adds a command under each of names. Commands with turn set let
// the room's monster attack once they finish.
func (h *Handler) Register(names []string, usage string, turn bool, fn CommandFunc) error {
	if len(names) == 0 {
		return fmt.Errorf("command needs at least one name")
	}
	if fn == nil {
		return fmt.Errorf("command %q: func cannot be nil", names[0])
	}
	for _, n := range names {
		if _, exists := h.commands[n]; exists {
			return fmt.Errorf("command %q already registered", n)
		}
	}

	c := &command{names: names, usage: usage, turn: turn, fn: fn}
	for _, n := range names {
		h.commands[n] = c
	}
	h.ordered = append(h.ordered, c)
	return nil
}

// mustRegister is Register for the built-in commands, whose names are
// known not to collide.
func (h *Handler) mustRegister(names []string, usage string, turn bool, fn CommandFunc) {
	if err := h.Register(names, usage, turn, fn); err != nil {
		panic(err)
	}
}

// Exec runs one line of input. Expected failures come back as *UserError;
// ErrQuit ends the game.
func (h *Handler) Exec(ctx context.Context, line string) (string, error) {
	verb, args := splitInput(line)
	if verb == "" {
		return "", nil
	}

	cmd, ok := h.commands[verb]
	if !ok {
		return "", NewUserError(fmt.Sprintf("Unknown command: %s", verb))
	}

	// Forget an entry attack from a move made outside Exec.
	h.engine.EntryAttack()

	out, err := cmd.fn(ctx, args)
	var ue *UserError
	if err != nil && !errors.As(err, &ue) {
		return "", err
	}

	if cmd.turn {
		attack, aerr := h.endTurn()
		if aerr != nil {
			return "", aerr
		}
		if ue != nil {
			return "", NewUserError(joinLines(ue.Message, attack))
		}
		out = joinLines(out, attack)
	}

	if ue != nil {
		return "", ue
	}
	return out, nil
}

// endTurn lets the current room's monster attack. A move into the room
// has already attacked, so that attack is reported instead.
func (h *Handler) endTurn() (string, error) {
	a, ok := h.engine.EntryAttack()
	if !ok {
		a, ok = h.engine.Tick()
	}
	if !ok {
		return "", nil
	}

	msg, err := display.RenderAttack(a.Monster, a.Message, a.Damage)
	if err != nil {
		return "", err
	}
	if !h.engine.IsAlive() {
		msg = joinLines(msg, "You have fallen. Game Over.")
	}
	return msg, nil
}

// currentRoom is the player's room, or a UserError when the player stands
// in a room the world does not have.
func (h *Handler) currentRoom() (*game.Room, error) {
	room := h.engine.CurrentRoom()
	if room == nil {
		return nil, NewUserError("You are nowhere at all.")
	}
	return room, nil
}

// look renders the player's room.
func (h *Handler) look() (string, error) {
	room, err := h.currentRoom()
	if err != nil {
		return "", err
	}
	return display.RenderRoom(room)
}

func splitInput(line string) (string, string) {
	verb, args, _ := strings.Cut(strings.TrimSpace(line), " ")
	return strings.ToLower(verb), strings.TrimSpace(args)
}

func joinLines(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "\n")
}
