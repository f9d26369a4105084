// Package domain contains the relay's entities: plain data plus the
// validation rules that make a value storable.
package domain

import (
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
)

// Default bounds for user-supplied values. The config layer may
// override the ones it recognizes.
const (
	DefaultMaxNameLen    = 50
	DefaultMaxRoomKeyLen = 100
	DefaultMaxMessageLen = 2000
)

var strict = bluemonday.StrictPolicy()

// Clamp trims surrounding whitespace and caps the result at max runes.
func Clamp(raw string, max int) string {
	s := strings.TrimSpace(raw)
	if max > 0 {
		if runes := []rune(s); len(runes) > max {
			s = string(runes[:max])
		}
	}
	return s
}

// Sanitize strips markup from a message body so neither stored nor
// broadcast text carries executable content.
func Sanitize(text string) string {
	return strict.Sanitize(text)
}

// Message is one accepted chat line. Append-only; never mutated.
type Message struct {
	Room      string    `json:"room"`
	Username  string    `json:"username"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewMessage sanitizes the body and stamps the server-side creation time.
func NewMessage(room, username, text string, at time.Time) Message {
	return Message{Room: room, Username: username, Text: Sanitize(text), CreatedAt: at}
}
