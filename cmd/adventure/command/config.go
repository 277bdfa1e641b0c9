package command

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pixil98/go-errors"
)

type LogFormat int

const (
	LogFormatText LogFormat = iota
	LogFormatJSON
)

func (lf *LogFormat) UnmarshalText(text []byte) error {
	switch string(text) {
	case "", "text":
		*lf = LogFormatText
	case "json":
		*lf = LogFormatJSON
	default:
		return fmt.Errorf("unknown log format: %s", text)
	}
	return nil
}

type Config struct {
	LogLevel  slog.Level   `json:"log_level"`
	LogFormat LogFormat    `json:"log_format"`
	Maps      MapsConfig   `json:"maps"`
	Saves     SavesConfig  `json:"saves"`
	Player    PlayerConfig `json:"player"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	el.Add(c.Maps.validate())
	el.Add(c.Saves.validate())
	el.Add(c.Player.validate())

	return el.Err()
}

// NewLogger builds the process logger. The console belongs to the game,
// so logs go to w rather than stdout.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if c.LogFormat == LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

type MapsConfig struct {
	Path string `json:"path"`
}

func (c *MapsConfig) validate() error {
	if c.Path == "" {
		return fmt.Errorf("maps: path is required")
	}
	fi, err := os.Stat(c.Path)
	if err != nil {
		return fmt.Errorf("maps: invalid path %q: %w", c.Path, err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("maps: path %q is not a directory", c.Path)
	}
	return nil
}
