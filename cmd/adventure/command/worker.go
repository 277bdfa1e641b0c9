package command

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pixil98/go-service"

	"github.com/pixil98/go-adventure/internal/persist"
	"github.com/pixil98/go-adventure/internal/session"
	"github.com/pixil98/go-adventure/internal/storage"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	slog.SetDefault(cfg.NewLogger(os.Stderr))

	store, err := cfg.Saves.BuildStore(context.Background())
	if err != nil {
		return nil, fmt.Errorf("creating save store: %w", err)
	}

	s := session.NewSession(cfg.Maps.Path, store, cfg.Player.sessionOpts()...)

	return service.WorkerList{
		"console": &consoleWorker{
			session: s,
			store:   store,
			rw:      stdio{Reader: os.Stdin, Writer: os.Stdout},
		},
	}, nil
}

type stdio struct {
	io.Reader
	io.Writer
}

// consoleWorker plays a single game on the terminal.
type consoleWorker struct {
	session *session.Session
	store   storage.Storer[*persist.Snapshot]
	rw      io.ReadWriter
}

func (w *consoleWorker) Start(ctx context.Context) error {
	defer func() {
		if c, ok := w.store.(io.Closer); ok {
			if err := c.Close(); err != nil {
				slog.Warn("closing save store", "error", err)
			}
		}
	}()

	return w.session.Run(ctx, w.rw)
}
