package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pixil98/go-adventure/internal/commands"
	"github.com/pixil98/go-adventure/internal/display"
	"github.com/pixil98/go-adventure/internal/engine"
	"github.com/pixil98/go-adventure/internal/game"
	"github.com/pixil98/go-adventure/internal/loader"
	"github.com/pixil98/go-adventure/internal/persist"
	"github.com/pixil98/go-adventure/internal/storage"
)

const (
	mapExt       = ".json"
	maxNameTries = 3
)

// Session runs one player's game on a console: choosing a new or saved
// game, then reading commands until the game ends.
type Session struct {
	mapsDir    string
	store      storage.Storer[*persist.Snapshot]
	startRoom  int
	engineOpts []engine.EngineOpt
}

type SessionOpt func(*Session)

// WithStartRoom sets the room new players begin in.
func WithStartRoom(id int) SessionOpt {
	return func(s *Session) {
		s.startRoom = id
	}
}

// WithEngineOpts passes extra options to every engine the session creates.
func WithEngineOpts(opts ...engine.EngineOpt) SessionOpt {
	return func(s *Session) {
		s.engineOpts = append(s.engineOpts, opts...)
	}
}

func NewSession(mapsDir string, store storage.Storer[*persist.Snapshot], opts ...SessionOpt) *Session {
	s := &Session{
		mapsDir:   mapsDir,
		store:     store,
		startRoom: game.StartRoomId,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Run plays one game over rw. It returns nil when the player quits, dies
// or closes the input.
func (s *Session) Run(ctx context.Context, rw io.ReadWriter) error {
	c := newConsole(rw)
	defer c.close()

	err := s.run(ctx, c)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (s *Session) run(ctx context.Context, c *console) error {
	err := c.writeLine("Welcome, adventurer!")
	if err != nil {
		return err
	}

	e, err := s.start(ctx, c)
	if err != nil {
		return err
	}
	slog.Info("game started", "session", e.SessionId(), "player", e.Player().Name, "world", e.World().Name)

	return s.play(ctx, c, e)
}

// start asks for a new or saved game until one is ready.
func (s *Session) start(ctx context.Context, c *console) (*engine.Engine, error) {
	for {
		choice, err := c.PromptChoice(ctx, "Start a (N)ew game or (R)estore a saved one? ", "new", "restore")
		if err != nil {
			return nil, err
		}

		var e *engine.Engine
		switch choice {
		case "n":
			e, err = s.newGame(ctx, c)
		case "r":
			e, err = s.restoreGame(ctx, c)
		}
		if err != nil {
			return nil, err
		}
		if e != nil {
			return e, nil
		}
	}
}

func (s *Session) newGame(ctx context.Context, c *console) (*engine.Engine, error) {
	maps, err := s.listMaps()
	if err != nil {
		return nil, err
	}
	if len(maps) == 0 {
		return nil, fmt.Errorf("no maps found in %s", s.mapsDir)
	}

	file, err := newSelector(maps).Prompt(ctx, c, "Choose a map:")
	if err != nil {
		return nil, err
	}

	w, err := loader.LoadFile(filepath.Join(s.mapsDir, file))
	if err != nil {
		slog.Error("loading map", "map", file, "error", err)
		return nil, c.writeLine("That map could not be loaded.")
	}
	if w.Room(s.startRoom) == nil {
		slog.Error("map has no start room", "map", file, "room", s.startRoom)
		return nil, c.writeLine("That map has nowhere to start.")
	}

	name, err := c.Prompt(ctx, "What is your name? ", WithValidator(
		func(str string) (bool, string) {
			if str == "" {
				return false, "You must have a name.\n"
			}
			return true, ""
		},
	), WithMaxTries(maxNameTries))
	if errors.Is(err, ErrTooManyTries) {
		return nil, c.writeLine("Let's start over.")
	}
	if err != nil {
		return nil, err
	}

	return engine.New(w, game.NewPlayer(name, s.startRoom), s.options()...), nil
}

func (s *Session) restoreGame(ctx context.Context, c *console) (*engine.Engine, error) {
	slots, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing saved games: %w", err)
	}
	if len(slots) == 0 {
		return nil, c.writeLine("There are no saved games.")
	}

	labels := make(map[string]string, len(slots))
	for _, slot := range slots {
		labels[slot] = slot
	}

	slot, err := newSelector(labels).Prompt(ctx, c, "Choose a saved game:")
	if err != nil {
		return nil, err
	}

	e := engine.New(game.NewWorld(""), game.NewPlayer("", s.startRoom), s.options()...)
	if !e.Restore(ctx, slot) {
		return nil, c.writeLine("That game could not be restored.")
	}
	return e, nil
}

func (s *Session) options() []engine.EngineOpt {
	return append([]engine.EngineOpt{engine.WithStore(s.store)}, s.engineOpts...)
}

// listMaps returns map file name -> display name.
func (s *Session) listMaps() (map[string]string, error) {
	entries, err := os.ReadDir(s.mapsDir)
	if err != nil {
		return nil, fmt.Errorf("reading maps directory: %w", err)
	}

	maps := map[string]string{}
	for _, ent := range entries {
		if ent.IsDir() || filepath.Ext(ent.Name()) != mapExt {
			continue
		}
		maps[ent.Name()] = display.Title(strings.ReplaceAll(strings.TrimSuffix(ent.Name(), mapExt), "_", " "))
	}
	return maps, nil
}

func (s *Session) play(ctx context.Context, c *console, e *engine.Engine) error {
	h := commands.NewHandler(e)

	room, err := display.RenderRoom(e.CurrentRoom())
	if err != nil {
		return err
	}
	err = c.writeLine(room)
	if err != nil {
		return err
	}

	for e.IsAlive() {
		line, err := c.Prompt(ctx, "> ")
		if err != nil {
			return err
		}

		out, err := h.Exec(ctx, line)
		if errors.Is(err, commands.ErrQuit) {
			slog.Info("player quit", "session", e.SessionId())
			return c.writeLine("Farewell.")
		}
		var userErr *commands.UserError
		if errors.As(err, &userErr) {
			out = userErr.Message
		} else if err != nil {
			return fmt.Errorf("running %q: %w", line, err)
		}

		if out == "" {
			continue
		}
		err = c.writeLine(out)
		if err != nil {
			return err
		}
	}

	slog.Info("player died", "session", e.SessionId(), "score", e.Score())
	return nil
}
