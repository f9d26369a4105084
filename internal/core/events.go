package core

import "time"

// Outbound event types on the wire.
const (
	EventMessage    = "message"
	EventRoomData   = "roomData"
	EventTyping     = "typing"
	EventStopTyping = "stopTyping"
	EventAck        = "ack"
)

// SystemUser authors server-generated chat lines.
const SystemUser = "System"

// MessageEvent delivers one chat line to a room member.
type MessageEvent struct {
	Type      string    `json:"type"`
	Username  string    `json:"username"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// RoomDataEvent delivers the current roster, in join order.
type RoomDataEvent struct {
	Type  string   `json:"type"`
	Room  string   `json:"room"`
	Users []string `json:"users"`
}

// TypingEvent signals that a member started or stopped typing.
type TypingEvent struct {
	Type     string `json:"type"`
	Username string `json:"username"`
}

// AckEvent answers a sendMessage request. ID echoes the client-chosen
// request id, if any; Error is empty on success.
type AckEvent struct {
	Type  string `json:"type"`
	ID    string `json:"id,omitempty"`
	Error string `json:"error,omitempty"`
}
