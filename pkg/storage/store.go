package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrInvalidSnapshot is returned when the snapshot file exists but cannot be
// decoded or carries an unexpected schema version. It is distinct from the
// os.ErrNotExist a Load reports for an absent file.
var ErrInvalidSnapshot = errors.New("invalid snapshot")

// Store reads and writes ledger snapshots at a fixed path.
type Store struct {
	path string
}

// NewStore creates a store for the given snapshot path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the snapshot file path.
func (s *Store) Path() string {
	return s.path
}

// Save writes the snapshot atomically: it encodes to a temporary file next
// to the target and renames it over the previous snapshot, so an interrupted
// write never corrupts the last successful save.
func (s *Store) Save(snap Snapshot) error {
	snap.Version = SnapshotVersion
	tmp := s.path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create snapshot file: %w", err)
	}

	// Indented output so the file stays hand-inspectable.
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close snapshot file: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// Load reads and validates the snapshot. Three outcomes:
//   - the file is absent: the error satisfies errors.Is(err, os.ErrNotExist)
//   - the file cannot be decoded or has the wrong version: the error
//     satisfies errors.Is(err, ErrInvalidSnapshot)
//   - success: the full snapshot as last saved
func (s *Store) Load() (Snapshot, error) {
	var snap Snapshot

	f, err := os.Open(s.path)
	if err != nil {
		return snap, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(&snap); err != nil {
		return Snapshot{}, fmt.Errorf("%w: decode %s: %v", ErrInvalidSnapshot, s.path, err)
	}
	if snap.Version != SnapshotVersion {
		return Snapshot{}, fmt.Errorf("%w: unsupported version %d (want %d)",
			ErrInvalidSnapshot, snap.Version, SnapshotVersion)
	}
	return snap, nil
}
