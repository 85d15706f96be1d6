package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/cfgfacts/cfgfacts/pkg/mytime"
)

// FileStore stores each key in file "<Dir>/.<key>.json".
// A file is fresh while its modification time is younger than TTL.
type FileStore struct {
	Dir string
	TTL time.Duration
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.Dir, "."+key+".json")
}

func (s *FileStore) Load(_ context.Context, key string, v any) (bool, error) {
	p := s.path(key)
	st, err := os.Stat(p)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !mytime.Fresh(st.ModTime(), s.TTL) {
		return false, nil
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("invalid JSON in %s: %v", p, err)
	}
	return true, nil
}

// Save writes v to a temporary file first, so concurrent readers never
// see a partial file.
func (s *FileStore) Save(_ context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.Dir, "."+key+".*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path(key))
}
