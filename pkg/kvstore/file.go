package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"medq/pkg/logger"
)

// CorruptSuffix is appended to a store file that could not be parsed when it
// is moved aside.
const CorruptSuffix = ".corrupt"

// FileStore keeps every key in one JSON object on disk. Values are stored
// as strings so the file stays human-readable. Writes go to a temp file
// followed by a rename so a crash never leaves a half-written file.
type FileStore struct {
	mu   sync.Mutex
	path string
	data map[string]string
}

// NewFileStore opens the store at path. A file that does not parse is moved
// to path+CorruptSuffix and the store starts empty.
func NewFileStore(path string, log *logger.Logger) (*FileStore, error) {
	s := &FileStore{path: path, data: make(map[string]string)}

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("read store file: %w", err)
	}

	if len(raw) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		s.data = make(map[string]string)
		aside := path + CorruptSuffix
		log.Warn("Store file is corrupt, starting empty",
			"path", path,
			"moved_to", aside,
			"error", err,
		)
		if err := os.Rename(path, aside); err != nil {
			log.Warn("Failed to move corrupt store file aside", "path", path, "error", err)
		}
	}
	return s, nil
}

func (s *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return []byte(v), nil
}

func (s *FileStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.writeLocked(key, value)
}

func (s *FileStore) Update(_ context.Context, key string, fn UpdateFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, found := s.data[key]
	next, err := fn([]byte(current), found)
	if err != nil {
		return err
	}
	return s.writeLocked(key, next)
}

func (s *FileStore) Incr(ctx context.Context, key string) (int64, error) {
	return incrValue(ctx, s, key)
}

func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) writeLocked(key string, value []byte) error {
	previous, existed := s.data[key]
	s.data[key] = string(value)

	if err := s.flushLocked(); err != nil {
		if existed {
			s.data[key] = previous
		} else {
			delete(s.data, key)
		}
		return err
	}
	return nil
}

func (s *FileStore) flushLocked() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace store file: %w", err)
	}
	return nil
}
