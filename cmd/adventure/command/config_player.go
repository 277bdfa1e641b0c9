package command

import (
	"fmt"

	"github.com/pixil98/go-errors"

	"github.com/pixil98/go-adventure/internal/engine"
	"github.com/pixil98/go-adventure/internal/game"
	"github.com/pixil98/go-adventure/internal/session"
)

type PlayerConfig struct {
	StartRoom  int  `json:"start_room"`
	EntryGuard bool `json:"entry_guard"`
}

func (c *PlayerConfig) validate() error {
	el := errors.NewErrorList()

	if c.StartRoom < 0 {
		el.Add(fmt.Errorf("player: start_room must be positive"))
	}

	return el.Err()
}

func (c *PlayerConfig) sessionOpts() []session.SessionOpt {
	start := c.StartRoom
	if start == 0 {
		start = game.StartRoomId
	}

	opts := []session.SessionOpt{session.WithStartRoom(start)}
	if c.EntryGuard {
		opts = append(opts, session.WithEngineOpts(engine.WithEntryGuard()))
	}
	return opts
}
