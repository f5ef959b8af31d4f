package inspect

import (
	"os"
	"path/filepath"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/syssam/schemagen/schema"
)

// Snapshot is an inspected schema persisted between runs. Generation can
// run from a snapshot without a live database, and watch mode diffs a
// fresh inspection against the last snapshot to decide whether to
// regenerate.
type Snapshot struct {
	Dialect   string         `msgpack:"dialect"`
	Schema    string         `msgpack:"schema"`
	Tables    []schema.Table `msgpack:"tables"`
	CreatedAt time.Time      `msgpack:"created_at"`
}

// WriteSnapshot persists a snapshot. The file is written to a temporary
// sibling first and renamed into place, so readers never observe a
// partial snapshot.
func WriteSnapshot(path string, snap *Snapshot) error {
	buf, err := msgpack.Marshal(snap)
	if err != nil {
		return newInspectError(snap.Dialect, "", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return newInspectError(snap.Dialect, "", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf, 0o644); err != nil {
		return newInspectError(snap.Dialect, "", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return newInspectError(snap.Dialect, "", err)
	}
	return nil
}

// ReadSnapshot loads a previously written snapshot.
func ReadSnapshot(path string) (*Snapshot, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, newInspectError("snapshot", "", err)
	}
	var snap Snapshot
	if err := msgpack.Unmarshal(buf, &snap); err != nil {
		return nil, newInspectError("snapshot", "", err)
	}
	return &snap, nil
}

// Changed reports whether a fresh inspection differs from the snapshot in
// any way that affects generation. Timestamps are ignored.
func (s *Snapshot) Changed(tables []schema.Table) bool {
	if len(s.Tables) != len(tables) {
		return true
	}
	for i, t := range tables {
		prev := s.Tables[i]
		if prev.Name != t.Name || len(prev.Columns) != len(t.Columns) {
			return true
		}
		for j, c := range t.Columns {
			if prev.Columns[j] != c {
				return true
			}
		}
	}
	return false
}
