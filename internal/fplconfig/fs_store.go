package fplconfig

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FSStore persists the config snapshot as one JSON file on disk.
type FSStore struct {
	basePath string
}

// NewFSStore constructs an FS-backed config store rooted at basePath.
func NewFSStore(basePath string) *FSStore {
	return &FSStore{basePath: basePath}
}

func (s *FSStore) path() string {
	return filepath.Join(s.basePath, fmt.Sprintf("%s.json", snapshotKey))
}

// Load reads the persisted snapshot. A missing file yields (nil, nil).
func (s *FSStore) Load(_ context.Context) (*Snapshot, error) {
	if s == nil {
		return nil, errors.New("config store not configured")
	}

	f, err := os.Open(s.path())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var snap Snapshot
	if err := json.NewDecoder(f).Decode(&snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Save writes the snapshot atomically (temp file plus rename) so a crashed
// write leaves the previous snapshot intact.
func (s *FSStore) Save(_ context.Context, snap Snapshot) error {
	if s == nil {
		return errors.New("config store not configured")
	}
	if err := os.MkdirAll(s.basePath, 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path())
}
