package memory

import (
	"context"
	"sync"

	"github.com/maxbat99/probax/internal/domain/team"
)

type SnapshotStore struct {
	mu       sync.RWMutex
	snapshot *team.Snapshot
}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

func (s *SnapshotStore) Save(_ context.Context, snapshot team.Snapshot) error {
	snapshot.Teams = append([]team.Team(nil), snapshot.Teams...)

	s.mu.Lock()
	s.snapshot = &snapshot
	s.mu.Unlock()
	return nil
}

func (s *SnapshotStore) Load(_ context.Context) (team.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snapshot == nil {
		return team.Snapshot{}, team.ErrSnapshotNotFound
	}
	out := *s.snapshot
	out.Teams = append([]team.Team(nil), out.Teams...)
	return out, nil
}
