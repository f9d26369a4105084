package history

import (
	"context"
	"sync"

	"github.com/moaazpadawy-lgtm/written-chat-clone/internal/domain"
)

// MemoryStore keeps messages per room in process memory. Unbounded: it
// grows with traffic and is dropped on restart.
type MemoryStore struct {
	mu    sync.RWMutex
	rooms map[string][]domain.Message
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rooms: make(map[string][]domain.Message)}
}

func (s *MemoryStore) Append(_ context.Context, msg domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[msg.Room] = append(s.rooms[msg.Room], msg)
	return nil
}

func (s *MemoryStore) Recent(_ context.Context, room string, limit int) ([]domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	msgs := s.rooms[room]
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	out := make([]domain.Message, len(msgs))
	copy(out, msgs)
	return out, nil
}
