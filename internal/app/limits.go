package app

import "github.com/moaazpadawy-lgtm/written-chat-clone/internal/domain"

// Limits bounds user-supplied field sizes. Zero values fall back to the
// domain defaults.
type Limits struct {
	MaxNameLen    int
	MaxRoomKeyLen int
	MaxMessageLen int
}

func (l Limits) withDefaults() Limits {
	if l.MaxNameLen <= 0 {
		l.MaxNameLen = domain.DefaultMaxNameLen
	}
	if l.MaxRoomKeyLen <= 0 {
		l.MaxRoomKeyLen = domain.DefaultMaxRoomKeyLen
	}
	if l.MaxMessageLen <= 0 {
		l.MaxMessageLen = domain.DefaultMaxMessageLen
	}
	return l
}
