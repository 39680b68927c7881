// Package jsonfile stores the world as one indented JSON document on disk.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/louisbranch/worldforge/internal/services/world/domain/world"
	"github.com/louisbranch/worldforge/internal/services/world/storage"
)

// Store persists world state in a single JSON file.
type Store struct {
	path string
}

var _ storage.WorldStore = (*Store)(nil)

// Open returns a store for path. The file does not need to exist yet.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	return &Store{path: filepath.Clean(path)}, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the document. A missing or blank file is an empty world.
func (s *Store) Load(ctx context.Context) (*world.State, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil {
		return nil, storage.ErrNotConfigured
	}
	content, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return &world.State{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read world file: %w", err)
	}
	if len(bytes.TrimSpace(content)) == 0 {
		return &world.State{}, nil
	}
	var state world.State
	if err := json.Unmarshal(content, &state); err != nil {
		return nil, fmt.Errorf("decode world file %s: %w", s.path, err)
	}
	return &state, nil
}

// Save writes to a temp file in the same directory and renames it over the
// target, so readers never observe a partial document.
func (s *Store) Save(ctx context.Context, state *world.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil {
		return storage.ErrNotConfigured
	}
	if state == nil {
		state = &world.State{}
	}
	content, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode world: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create world dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		cleanup()
		return fmt.Errorf("replace world file: %w", err)
	}
	return nil
}

// Close is a no-op; the file is opened per call.
func (s *Store) Close() error {
	return nil
}
