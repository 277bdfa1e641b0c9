package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pixil98/go-adventure/internal/game"
)

// MalformedWorldError is returned when a world definition cannot be used
// at all. Problems confined to a single record are skipped instead and
// reported as warnings.
type MalformedWorldError struct {
	Cause error
}

func (e *MalformedWorldError) Error() string {
	return fmt.Sprintf("malformed world: %v", e.Cause)
}

func (e *MalformedWorldError) Unwrap() error {
	return e.Cause
}

func malformed(format string, args ...any) error {
	return &MalformedWorldError{Cause: fmt.Errorf(format, args...)}
}

// Result is a loaded world plus every record that was skipped on the way.
type Result struct {
	World    *game.World
	Warnings []error
}

type document struct {
	Name     string          `json:"name"`
	Rooms    json.RawMessage `json:"rooms"`
	Items    json.RawMessage `json:"items"`
	Fixtures json.RawMessage `json:"fixtures"`
	Puzzles  json.RawMessage `json:"puzzles"`
	Monsters json.RawMessage `json:"monsters"`
}

type placement struct {
	items    []string
	fixtures []string
}

type loader struct {
	res      *Result
	world    *game.World
	pending  map[int]placement
	items    map[string]*game.Item
	fixtures map[string]*game.Fixture
}

// Load builds a world from a JSON world definition.
func Load(r io.Reader) (*game.World, error) {
	res, err := Inspect(r)
	if err != nil {
		return nil, err
	}
	return res.World, nil
}

// LoadFile builds a world from the JSON file at path.
func LoadFile(path string) (*game.World, error) {
	res, err := InspectFile(path)
	if err != nil {
		return nil, err
	}
	return res.World, nil
}

// InspectFile is Inspect for the file at path. The file name, without its
// extension, names the world when the document does not.
func InspectFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening world file: %w", err)
	}
	// Ignoring close error - file is read-only, error is not actionable
	defer func() { _ = f.Close() }()

	res, err := Inspect(f)
	if err != nil {
		return nil, err
	}
	if res.World.Name == "" {
		res.World.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return res, nil
}

// Inspect builds a world and returns it along with the warnings for every
// record it had to skip.
func Inspect(r io.Reader) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading world: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &MalformedWorldError{Cause: err}
	}

	l := &loader{
		res:      &Result{},
		world:    game.NewWorld(doc.Name),
		pending:  map[int]placement{},
		items:    map[string]*game.Item{},
		fixtures: map[string]*game.Fixture{},
	}

	if err := l.structure(doc.Rooms); err != nil {
		return nil, err
	}
	l.resolve(&doc)

	l.res.World = l.world
	return l.res, nil
}

func (l *loader) warn(err error) {
	slog.Warn("skipping world record", "error", err)
	l.res.Warnings = append(l.res.Warnings, err)
}

// structure is the first pass: rooms and exits, with item and fixture
// names kept unresolved.
func (l *loader) structure(raw json.RawMessage) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return malformed("rooms array is missing")
	}
	if raw[0] != '[' {
		return malformed("rooms must be an array")
	}

	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		return &MalformedWorldError{Cause: fmt.Errorf("rooms: %w", err)}
	}

	for i, rec := range records {
		var rr roomRecord
		if err := json.Unmarshal(rec, &rr); err != nil {
			l.warn(fmt.Errorf("room %d: %w", i, err))
			continue
		}

		room, err := rr.build()
		if err != nil {
			l.warn(fmt.Errorf("room %d: %w", i, err))
			continue
		}

		if err := l.world.AddRoom(room); err != nil {
			return &MalformedWorldError{Cause: err}
		}
		l.pending[room.Id] = placement{items: rr.Items, fixtures: rr.Fixtures}
	}

	return nil
}

// resolve is the second pass: catalogs, obstacles, then placement of
// catalog entries into rooms.
func (l *loader) resolve(doc *document) {
	eachRecord(l, "items", doc.Items, func(r *itemRecord) error {
		item, err := r.build()
		if err != nil {
			return err
		}
		key := strings.ToLower(item.Name)
		if _, ok := l.items[key]; ok {
			return fmt.Errorf("duplicate item %q", item.Name)
		}
		l.items[key] = item
		return nil
	})

	eachRecord(l, "fixtures", doc.Fixtures, func(r *fixtureRecord) error {
		f, err := r.build()
		if err != nil {
			return err
		}
		key := strings.ToLower(f.Name)
		if _, ok := l.fixtures[key]; ok {
			return fmt.Errorf("duplicate fixture %q", f.Name)
		}
		l.fixtures[key] = f
		return nil
	})

	eachRecord(l, "puzzles", doc.Puzzles, func(r *puzzleRecord) error {
		p, roomId, err := r.build()
		if err != nil {
			return err
		}
		return l.attach(roomId, p)
	})

	eachRecord(l, "monsters", doc.Monsters, func(r *monsterRecord) error {
		m, roomId, err := r.build()
		if err != nil {
			return err
		}
		return l.attach(roomId, m)
	})

	for _, room := range l.world.Rooms() {
		p := l.pending[room.Id]
		for _, name := range p.items {
			tmpl, ok := l.items[strings.ToLower(name)]
			if !ok {
				l.warn(fmt.Errorf("room %d: unknown item %q", room.Id, name))
				continue
			}
			room.AddItem(tmpl.Clone())
		}
		for _, name := range p.fixtures {
			f, ok := l.fixtures[strings.ToLower(name)]
			if !ok {
				l.warn(fmt.Errorf("room %d: unknown fixture %q", room.Id, name))
				continue
			}
			room.AddFixture(f)
		}
	}
}

func (l *loader) attach(roomId int, o game.Obstacle) error {
	room := l.world.Room(roomId)
	if room == nil {
		return fmt.Errorf("%s %q: %w: %d", o.Kind(), o.State().Name, game.ErrRoomNotFound, roomId)
	}
	if room.Obstacle != nil {
		return fmt.Errorf("%s %q: room %d already has %s %q", o.Kind(), o.State().Name, roomId, room.Obstacle.Kind(), room.Obstacle.State().Name)
	}
	room.SetObstacle(o)
	return nil
}

// eachRecord decodes every element of an optional catalog array into a
// fresh T and hands it to fn. Failures skip the single record.
func eachRecord[T any](l *loader, section string, raw json.RawMessage, fn func(*T) error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return
	}

	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		l.warn(fmt.Errorf("%s: expected an array", section))
		return
	}

	for i, rec := range records {
		var v T
		if err := json.Unmarshal(rec, &v); err != nil {
			l.warn(fmt.Errorf("%s %d: %w", section, i, err))
			continue
		}
		if err := fn(&v); err != nil {
			l.warn(fmt.Errorf("%s %d: %w", section, i, err))
		}
	}
}
