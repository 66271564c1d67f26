package sessionstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const recordFileMode = 0o600

// FileStore keeps one JSON file per key in dir.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(key string) (string, error) {
	if key == "" || strings.HasPrefix(key, ".") || filepath.Base(key) != key {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}

func (s *FileStore) Load(_ context.Context, key string) ([]byte, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read session record: %w", err)
	}
	return data, nil
}

// Save writes through a temp file and rename so a reader never sees a partial record.
func (s *FileStore) Save(_ context.Context, key string, data []byte) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}

	f, err := os.CreateTemp(s.dir, ".tmp-"+key+"-")
	if err != nil {
		return fmt.Errorf("create temp session record: %w", err)
	}
	tmp := f.Name()
	ok := false
	defer func() {
		if !ok {
			f.Close()
			os.Remove(tmp)
		}
	}()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("write session record: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("sync session record: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close session record: %w", err)
	}
	if err := os.Chmod(tmp, recordFileMode); err != nil {
		return fmt.Errorf("chmod session record: %w", err)
	}
	if err := os.Rename(tmp, p); err != nil {
		return fmt.Errorf("rename session record: %w", err)
	}
	ok = true
	return nil
}

func (s *FileStore) Delete(_ context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete session record: %w", err)
	}
	return nil
}
