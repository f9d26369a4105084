// Package app is the coordination core of the relay: room membership,
// per-connection rate limiting, and the router that applies inbound
// events and fans the results out to room members.
package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/moaazpadawy-lgtm/written-chat-clone/internal/core"
	"github.com/moaazpadawy-lgtm/written-chat-clone/internal/domain"
)

// Departure reports one removed membership.
type Departure struct {
	RoomKey     string
	DisplayName string
}

type member struct {
	id   core.ConnID
	name string
	conn core.Conn
}

// room holds the insertion-ordered member list; join order is roster order.
type room struct {
	members []member
}

func (rm *room) roster() []string {
	out := make([]string, len(rm.members))
	for i, m := range rm.members {
		out[i] = m.name
	}
	return out
}

// Registry maps room keys to membership. Rooms are created lazily on
// first join and never destroyed; an empty room keeps its table entry
// for the process lifetime.
type Registry struct {
	mu     sync.RWMutex
	rooms  map[string]*room
	limits Limits
}

func NewRegistry(limits Limits) *Registry {
	return &Registry{
		rooms:  make(map[string]*room),
		limits: limits.withDefaults(),
	}
}

// Join clamps the inputs, creates the room if needed, appends the member
// and returns the roster. It never rejects: malformed values are clamped
// here, rejection of truly invalid requests is the router's job. A
// connection already present in another room keeps that membership until
// disconnect.
func (r *Registry) Join(id core.ConnID, conn core.Conn, displayName, roomKey string) []string {
	name := domain.Clamp(displayName, r.limits.MaxNameLen)
	key := domain.Clamp(roomKey, r.limits.MaxRoomKeyLen)

	r.mu.Lock()
	defer r.mu.Unlock()
	rm, ok := r.rooms[key]
	if !ok {
		rm = &room{}
		r.rooms[key] = rm
		log.Info().Str("module", "app.registry").Str("room", key).Msg("room created")
	}
	rm.members = append(rm.members, member{id: id, name: name, conn: conn})
	log.Info().Str("module", "app.registry").Str("conn", string(id)).Str("room", key).Str("name", name).Msg("member joined")
	return rm.roster()
}

// Leave scans every room and removes the connection's entry from each
// room it appears in, reporting one Departure per removal. Linear scan
// over rooms by design; there is no reverse index at this scale.
func (r *Registry) Leave(id core.ConnID) []Departure {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Departure
	for key, rm := range r.rooms {
		for i, m := range rm.members {
			if m.id == id {
				rm.members = append(rm.members[:i], rm.members[i+1:]...)
				out = append(out, Departure{RoomKey: key, DisplayName: m.name})
				log.Info().Str("module", "app.registry").Str("conn", string(id)).Str("room", key).Msg("member left")
				break
			}
		}
	}
	return out
}

// Roster returns the display names currently in the room, in join order.
func (r *Registry) Roster(roomKey string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rm, ok := r.rooms[roomKey]
	if !ok {
		return nil
	}
	return rm.roster()
}

// Members returns a fan-out snapshot of the room's membership.
func (r *Registry) Members(roomKey string) []core.MemberSnap {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rm, ok := r.rooms[roomKey]
	if !ok {
		return nil
	}
	out := make([]core.MemberSnap, len(rm.members))
	for i, m := range rm.members {
		out[i] = core.MemberSnap{ID: m.id, Name: m.name, Conn: m.conn}
	}
	return out
}
