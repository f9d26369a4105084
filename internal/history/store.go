// Package history persists room messages. Two stores implement the
// same append/query contract: a sqlite-backed one and an in-memory
// fallback, chosen at process start. Delivery never waits on either.
package history

import (
	"context"

	"github.com/moaazpadawy-lgtm/written-chat-clone/internal/domain"
)

type Store interface {
	Append(ctx context.Context, msg domain.Message) error
	// Recent returns up to limit of the most recent messages for the
	// room, in chronological order.
	Recent(ctx context.Context, room string, limit int) ([]domain.Message, error)
}
