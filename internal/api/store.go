package api

import (
	"sync"

	"github.com/annel0/voxelworld/internal/game"
)

// SnapshotStore последний опубликованный снимок симуляции.
// Пишет цикл симуляции, читают HTTP-обработчики.
type SnapshotStore struct {
	mu       sync.RWMutex
	snapshot game.Snapshot
	ready    bool
}

// NewSnapshotStore создаёт пустое хранилище
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

// Publish заменяет текущий снимок
func (s *SnapshotStore) Publish(snap game.Snapshot) {
	s.mu.Lock()
	s.snapshot = snap
	s.ready = true
	s.mu.Unlock()
}

// Latest возвращает последний снимок; false до первой публикации
func (s *SnapshotStore) Latest() (game.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot, s.ready
}
