package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

var ErrNotFound = errors.New("not found")

// Storer keeps whole values under string ids. Each Save replaces the
// previous value atomically; a failed Save leaves it intact.
type Storer[T ValidatingSpec] interface {
	Save(ctx context.Context, id string, v T) error
	Load(ctx context.Context, id string) (T, error)
	List(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, id string) error
}

type FileStore[T ValidatingSpec] struct {
	path string

	mu sync.RWMutex
}

// NewFileStore keeps one <id>.json file per value under path, creating the
// directory if needed.
func NewFileStore[T ValidatingSpec](path string) (*FileStore[T], error) {
	err := os.MkdirAll(path, 0755)
	if err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	return &FileStore[T]{path: path}, nil
}

func (s *FileStore[T]) Save(_ context.Context, id string, v T) error {
	jsonData, err := encodeAsset(id, v)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return atomicWrite(s.filePath(id), jsonData, 0644)
}

// atomicWrite writes data to a temp file then renames it to the target path.
// This prevents partial or empty files if the process is interrupted.
func atomicWrite(path string, data []byte, perm os.FileMode) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, perm); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		if removeErr := os.Remove(tmp); removeErr != nil {
			slog.Warn("failed to remove temp file after rename failure", "path", tmp, "error", removeErr)
		}
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

func (s *FileStore[T]) Load(_ context.Context, id string) (T, error) {
	var zero T
	if err := Identifier(id).Validate(); err != nil {
		return zero, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	jsonData, err := os.ReadFile(s.filePath(id))
	if errors.Is(err, fs.ErrNotExist) {
		return zero, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if err != nil {
		return zero, fmt.Errorf("reading file: %w", err)
	}

	return decodeAsset[T](id, jsonData)
}

// List returns the ids of every stored value, sorted.
func (s *FileStore[T]) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading store directory: %w", err)
	}

	ids := []string{}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		ids = append(ids, strings.TrimSuffix(e.Name(), ".json"))
	}
	slices.Sort(ids)

	return ids, nil
}

func (s *FileStore[T]) Delete(_ context.Context, id string) error {
	if err := Identifier(id).Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.filePath(id))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return err
}

func (s *FileStore[T]) filePath(id string) string {
	return filepath.Join(s.path, fmt.Sprintf("%s.json", id))
}
