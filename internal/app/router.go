package app

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/moaazpadawy-lgtm/written-chat-clone/internal/core"
	"github.com/moaazpadawy-lgtm/written-chat-clone/internal/domain"
	"github.com/moaazpadawy-lgtm/written-chat-clone/internal/history"
)

const persistTimeout = 5 * time.Second

// Router applies validated inbound events against the registry and fans
// the results out to room members. Every mutation+broadcast pair for a
// room runs under that room's lock, so no event can deliver a roster
// older than one already delivered. Events for different rooms proceed
// concurrently.
type Router struct {
	registry *Registry
	limiter  *RateLimiter
	store    history.Store
	limits   Limits
	clock    func() time.Time

	lmu   sync.Mutex
	locks map[string]*sync.Mutex
}

func NewRouter(registry *Registry, limiter *RateLimiter, store history.Store, limits Limits) *Router {
	return &Router{
		registry: registry,
		limiter:  limiter,
		store:    store,
		limits:   limits.withDefaults(),
		clock:    time.Now,
		locks:    make(map[string]*sync.Mutex),
	}
}

// lockRoom serializes events for one room key. Lock entries are created
// lazily and, like rooms, kept for the process lifetime.
func (rt *Router) lockRoom(key string) func() {
	rt.lmu.Lock()
	l, ok := rt.locks[key]
	if !ok {
		l = &sync.Mutex{}
		rt.locks[key] = l
	}
	rt.lmu.Unlock()
	l.Lock()
	return l.Unlock
}

// Join registers the connection in the room and announces it: roster to
// everyone, a private welcome to the joiner, a join notice to the rest.
// Empty username or room after trimming is silently ignored.
func (rt *Router) Join(id core.ConnID, conn core.Conn, username, roomKey string) {
	name := domain.Clamp(username, rt.limits.MaxNameLen)
	key := domain.Clamp(roomKey, rt.limits.MaxRoomKeyLen)
	if name == "" || key == "" {
		log.Debug().Str("module", "app.router").Str("conn", string(id)).Msg("join with empty name or room ignored")
		return
	}

	unlock := rt.lockRoom(key)
	defer unlock()

	users := rt.registry.Join(id, conn, name, key)
	members := rt.registry.Members(key)
	now := rt.clock()

	rt.fanout(members, core.RoomDataEvent{Type: core.EventRoomData, Room: key, Users: users})
	rt.sendTo(conn, core.MessageEvent{Type: core.EventMessage, Username: core.SystemUser, Text: "Welcome " + name, CreatedAt: now})
	rt.fanoutExcept(members, id, core.MessageEvent{Type: core.EventMessage, Username: core.SystemUser, Text: name + " has joined", CreatedAt: now})
}

// SendMessage validates, rate-limits, broadcasts and persists one chat
// line. The ack reaches only the sender; persistence is fire-and-forget
// after the broadcast decision and never blocks or fails delivery.
func (rt *Router) SendMessage(id core.ConnID, roomKey, username, text string, ack func(error)) {
	if ack == nil {
		ack = func(error) {}
	}
	name := domain.Clamp(username, rt.limits.MaxNameLen)
	key := domain.Clamp(roomKey, rt.limits.MaxRoomKeyLen)
	if text == "" || name == "" || key == "" {
		ack(ErrInvalidData)
		return
	}
	body := strings.TrimSpace(text)
	if body == "" || utf8.RuneCountInString(body) > rt.limits.MaxMessageLen {
		ack(ErrMessageLength)
		return
	}
	if !rt.limiter.TryAccept(id, rt.clock()) {
		ack(ErrRateLimited)
		return
	}

	msg := domain.NewMessage(key, name, body, rt.clock())

	unlock := rt.lockRoom(key)
	rt.fanout(rt.registry.Members(key), core.MessageEvent{
		Type:      core.EventMessage,
		Username:  msg.Username,
		Text:      msg.Text,
		CreatedAt: msg.CreatedAt,
	})
	unlock()

	ack(nil)
	go rt.persist(msg)
}

// Typing relays a typing indicator to everyone else in the room.
func (rt *Router) Typing(id core.ConnID, roomKey, username string) {
	rt.relayTyping(id, roomKey, username, core.EventTyping)
}

// StopTyping relays the end of a typing indicator to everyone else.
func (rt *Router) StopTyping(id core.ConnID, roomKey, username string) {
	rt.relayTyping(id, roomKey, username, core.EventStopTyping)
}

func (rt *Router) relayTyping(id core.ConnID, roomKey, username, event string) {
	name := domain.Clamp(username, rt.limits.MaxNameLen)
	key := domain.Clamp(roomKey, rt.limits.MaxRoomKeyLen)
	if name == "" || key == "" {
		return
	}
	unlock := rt.lockRoom(key)
	defer unlock()
	rt.fanoutExcept(rt.registry.Members(key), id, core.TypingEvent{Type: event, Username: name})
}

// Disconnect removes the connection from every room it joined and
// notifies each room's remaining members. Unknown connections are a
// no-op. Must be called exactly when the transport tears down.
func (rt *Router) Disconnect(id core.ConnID) {
	for _, dep := range rt.registry.Leave(id) {
		unlock := rt.lockRoom(dep.RoomKey)
		members := rt.registry.Members(dep.RoomKey)
		rt.fanout(members, core.MessageEvent{
			Type:      core.EventMessage,
			Username:  core.SystemUser,
			Text:      dep.DisplayName + " left",
			CreatedAt: rt.clock(),
		})
		rt.fanout(members, core.RoomDataEvent{
			Type:  core.EventRoomData,
			Room:  dep.RoomKey,
			Users: rt.registry.Roster(dep.RoomKey),
		})
		unlock()
	}
	rt.limiter.Forget(id)
}

func (rt *Router) persist(msg domain.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := rt.store.Append(ctx, msg); err != nil {
		log.Error().Err(err).Str("module", "app.router").Str("room", msg.Room).Msg("history append failed")
	}
}

// fanout delivers one event to every member. A failed peer write is
// logged and skipped; it never aborts delivery to the rest.
func (rt *Router) fanout(members []core.MemberSnap, v any) {
	frame, err := encode(v)
	if err != nil {
		log.Error().Err(err).Str("module", "app.router").Msg("encode outbound event")
		return
	}
	for _, m := range members {
		if err := m.Conn.TrySend(frame); err != nil {
			log.Warn().Err(err).Str("module", "app.router").Str("conn", string(m.ID)).Msg("dropped outbound frame")
		}
	}
}

func (rt *Router) fanoutExcept(members []core.MemberSnap, except core.ConnID, v any) {
	frame, err := encode(v)
	if err != nil {
		log.Error().Err(err).Str("module", "app.router").Msg("encode outbound event")
		return
	}
	for _, m := range members {
		if m.ID == except {
			continue
		}
		if err := m.Conn.TrySend(frame); err != nil {
			log.Warn().Err(err).Str("module", "app.router").Str("conn", string(m.ID)).Msg("dropped outbound frame")
		}
	}
}

func (rt *Router) sendTo(conn core.Conn, v any) {
	frame, err := encode(v)
	if err != nil {
		log.Error().Err(err).Str("module", "app.router").Msg("encode outbound event")
		return
	}
	if err := conn.TrySend(frame); err != nil {
		log.Warn().Err(err).Str("module", "app.router").Msg("dropped outbound frame")
	}
}

func encode(v any) (core.Frame, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return core.Frame(b), nil
}
