// Package core holds the transport-neutral contracts of the relay:
// connection identity, the wire frame, and the delivery surface the
// router fans out through. It never imports transports or storage.
package core

// Frame is one encoded outbound event.
type Frame []byte

// ConnID identifies a single client connection for its lifetime.
type ConnID string

// Conn is the router-facing side of one client connection.
// Owned by the adapter; the adapter must Close() it.
type Conn interface {
	TrySend(Frame) error
	Close()
}

// MemberSnap is a read-only fan-out view of one room member.
type MemberSnap struct {
	ID   ConnID
	Name string
	Conn Conn
}
