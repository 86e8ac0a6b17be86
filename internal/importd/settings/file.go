// Package settings persists the import cursor as a small JSON file.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/vinsync-io/vinsync/internal/importd/core"
	"github.com/vinsync-io/vinsync/internal/importd/core/model"
	"github.com/vinsync-io/vinsync/pkg/log"
)

const settingsFile = "settings.json"

var _ core.SettingsStore = (*FileStore)(nil)

type persisted struct {
	Offset    int  `json:"offset"`
	BatchSize int  `json:"batch_size"`
	Paused    bool `json:"paused"`
}

func defaults() persisted {
	return persisted{Offset: 0, BatchSize: 10, Paused: false}
}

// FileStore keeps the cursor in <dir>/settings.json. Writes replace the
// file atomically so a crash never leaves a torn cursor behind.
type FileStore struct {
	path string

	mu    sync.Mutex
	state persisted
}

// NewFileStore loads or initializes the settings file under dir.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	s := &FileStore{
		path:  filepath.Join(dir, settingsFile),
		state: defaults(),
	}

	raw, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if err := s.save(); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		if err := json.Unmarshal(raw, &s.state); err != nil {
			return nil, err
		}
		if !model.ValidBatchSize(s.state.BatchSize) {
			s.state.BatchSize = defaults().BatchSize
		}
	}

	return s, nil
}

// Cursor returns the current import cursor.
func (s *FileStore) Cursor(ctx context.Context) (model.ImportCursor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.ImportCursor{
		Offset:    s.state.Offset,
		BatchSize: s.state.BatchSize,
		Paused:    s.state.Paused,
	}, nil
}

// SetOffset persists a new offset.
func (s *FileStore) SetOffset(ctx context.Context, offset int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Offset = offset
	return s.save()
}

// SetBatchSize persists a new batch size. Validation happens above; an
// unknown size reaching this layer is still stored as given.
func (s *FileStore) SetBatchSize(ctx context.Context, size int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.BatchSize = size
	return s.save()
}

// SetPaused persists the paused flag.
func (s *FileStore) SetPaused(ctx context.Context, paused bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Paused = paused
	return s.save()
}

// save writes the state through a temp file and renames it into place.
// Callers hold s.mu.
func (s *FileStore) save() error {
	raw, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Watch reloads the settings file when something edits it out-of-band.
// It blocks until ctx is done.
func (s *FileStore) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory: editors and the atomic rename above replace the
	// file, which drops a watch placed on the file itself.
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != s.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if err := s.reload(); err != nil {
				log.Warn("failed to reload settings file", "path", s.path, "err", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("settings watcher error", "err", err)
		}
	}
}

func (s *FileStore) reload() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}

	var next persisted
	if err := json.Unmarshal(raw, &next); err != nil {
		return err
	}
	if !model.ValidBatchSize(next.BatchSize) {
		next.BatchSize = defaults().BatchSize
	}

	s.mu.Lock()
	changed := next != s.state
	s.state = next
	s.mu.Unlock()

	if changed {
		log.Info("settings reloaded", "offset", next.Offset, "batch_size", next.BatchSize, "paused", next.Paused)
	}
	return nil
}
