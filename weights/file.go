package weights

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// FileStore keeps the vector in a JSON file of the form {"weight": [...]}.
// Concurrent writers from several processes are not coordinated; the last
// one wins.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Load() (Vector, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read weights file %s", s.path)
	}

	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, errors.Wrapf(err, "failed to decode weights file %s", s.path)
	}
	if r.Weight == nil {
		return nil, errors.Errorf("weights file %s has no weight field", s.path)
	}
	return r.Weight, nil
}

func (s *FileStore) Save(v Vector) error {
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, "failed to create directory for %s", s.path)
		}
	}
	data, err := json.MarshalIndent(record{Weight: v}, "", "    ")
	if err != nil {
		return errors.Wrap(err, "failed to encode weights")
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return errors.Wrapf(err, "failed to write weights file %s", s.path)
	}
	return nil
}
