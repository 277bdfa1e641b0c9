package command

import (
	"context"
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/redis/go-redis/v9"

	"github.com/pixil98/go-adventure/internal/persist"
	"github.com/pixil98/go-adventure/internal/storage"
)

type SaveBackend int

const (
	SaveBackendFile SaveBackend = iota
	SaveBackendRedis
)

func (sb *SaveBackend) UnmarshalText(text []byte) error {
	switch string(text) {
	case "", "file":
		*sb = SaveBackendFile
	case "redis":
		*sb = SaveBackendRedis
	default:
		return fmt.Errorf("unknown save backend: %s", text)
	}
	return nil
}

type SavesConfig struct {
	Backend SaveBackend `json:"backend"`
	Path    string      `json:"path"`
	Redis   RedisConfig `json:"redis"`
}

type RedisConfig struct {
	Addr     string `json:"addr"`
	Password string `json:"password,omitempty"`
	DB       int    `json:"db"`
	Prefix   string `json:"prefix"`
}

func (c *SavesConfig) validate() error {
	el := errors.NewErrorList()

	switch c.Backend {
	case SaveBackendFile:
		if c.Path == "" {
			el.Add(fmt.Errorf("saves: path is required for the file backend"))
		}
	case SaveBackendRedis:
		if c.Redis.Addr == "" {
			el.Add(fmt.Errorf("saves: redis.addr is required for the redis backend"))
		}
		if c.Redis.DB < 0 {
			el.Add(fmt.Errorf("saves: redis.db must not be negative"))
		}
	default:
		el.Add(fmt.Errorf("saves: unknown backend %d", c.Backend))
	}

	return el.Err()
}

// BuildStore opens the configured snapshot store. Redis stores are pinged
// so a bad address fails at startup rather than on the first save.
func (c *SavesConfig) BuildStore(ctx context.Context) (storage.Storer[*persist.Snapshot], error) {
	switch c.Backend {
	case SaveBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     c.Redis.Addr,
			Password: c.Redis.Password,
			DB:       c.Redis.DB,
		})
		s := storage.NewRedisStore[*persist.Snapshot](client, c.Redis.Prefix)
		if err := s.Ping(ctx); err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("connecting to redis at %s: %w", c.Redis.Addr, err)
		}
		return s, nil
	default:
		return storage.NewFileStore[*persist.Snapshot](c.Path)
	}
}
