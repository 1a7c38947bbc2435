package snapshot

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/maxbat99/probax/internal/domain/team"
)

// FileStore keeps the team snapshot as a single JSON document on disk.
type FileStore struct {
	path string
}

func NewFileStore(path string) (*FileStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("snapshot path is required")
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Path() string {
	return s.path
}

// Save writes to a sibling temp file and renames it over the target so
// readers never see a partial document.
func (s *FileStore) Save(_ context.Context, snapshot team.Snapshot) error {
	raw, err := sonic.ConfigStd.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encode team snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".teams-*.json")
	if err != nil {
		return fmt.Errorf("create snapshot temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

func (s *FileStore) Load(_ context.Context) (team.Snapshot, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return team.Snapshot{}, team.ErrSnapshotNotFound
		}
		return team.Snapshot{}, fmt.Errorf("read snapshot %s: %w", s.path, err)
	}
	return decodeSnapshot(raw)
}

func decodeSnapshot(raw []byte) (team.Snapshot, error) {
	var out team.Snapshot
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return team.Snapshot{}, fmt.Errorf("decode team snapshot: %w", err)
	}
	if out.Teams == nil {
		out.Teams = []team.Team{}
	}
	out.Count = len(out.Teams)
	return out, nil
}
