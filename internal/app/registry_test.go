package app

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryRosterFollowsJoinOrder(t *testing.T) {
	r := NewRegistry(Limits{})

	assert.Equal(t, []string{"Alice"}, r.Join("c1", &mockConn{}, "Alice", "lobby"))
	assert.Equal(t, []string{"Alice", "Bob"}, r.Join("c2", &mockConn{}, "Bob", "lobby"))
	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, r.Join("c3", &mockConn{}, "Carol", "lobby"))

	deps := r.Leave("c2")
	require.Len(t, deps, 1)
	assert.Equal(t, Departure{RoomKey: "lobby", DisplayName: "Bob"}, deps[0])
	assert.Equal(t, []string{"Alice", "Carol"}, r.Roster("lobby"))
}

func TestRegistryRoomsAreIndependent(t *testing.T) {
	r := NewRegistry(Limits{})
	r.Join("c1", &mockConn{}, "Alice", "room1")
	r.Join("c2", &mockConn{}, "Bob", "room2")
	r.Join("c3", &mockConn{}, "Carol", "room1")

	assert.Equal(t, []string{"Alice", "Carol"}, r.Roster("room1"))
	assert.Equal(t, []string{"Bob"}, r.Roster("room2"))

	r.Leave("c2")
	assert.Equal(t, []string{"Alice", "Carol"}, r.Roster("room1"))
	assert.Empty(t, r.Roster("room2"))
}

func TestRegistryClampsInputs(t *testing.T) {
	r := NewRegistry(Limits{})

	longName := strings.Repeat("n", 80)
	longRoom := strings.Repeat("r", 150)
	roster := r.Join("c1", &mockConn{}, "  "+longName+"  ", longRoom)

	require.Len(t, roster, 1)
	assert.Len(t, roster[0], 50)
	assert.Equal(t, []string{roster[0]}, r.Roster(strings.Repeat("r", 100)))
}

func TestRegistryDuplicateNamesAllowed(t *testing.T) {
	r := NewRegistry(Limits{})
	r.Join("c1", &mockConn{}, "Alice", "lobby")
	r.Join("c2", &mockConn{}, "Alice", "lobby")

	assert.Equal(t, []string{"Alice", "Alice"}, r.Roster("lobby"))

	// Departure removes the matching connection, not just any Alice.
	r.Leave("c1")
	members := r.Members("lobby")
	require.Len(t, members, 1)
	assert.Equal(t, "c2", string(members[0].ID))
}

func TestRegistryLeaveRemovesFromEveryRoom(t *testing.T) {
	r := NewRegistry(Limits{})
	r.Join("c1", &mockConn{}, "Alice", "room1")
	r.Join("c1", &mockConn{}, "Alice", "room2")

	deps := r.Leave("c1")
	assert.Len(t, deps, 2)
	assert.Empty(t, r.Roster("room1"))
	assert.Empty(t, r.Roster("room2"))
}

func TestRegistryLeaveUnknownConn(t *testing.T) {
	r := NewRegistry(Limits{})
	r.Join("c1", &mockConn{}, "Alice", "lobby")

	assert.Empty(t, r.Leave("ghost"))
	assert.Equal(t, []string{"Alice"}, r.Roster("lobby"))
}

func TestRegistryEmptyRoomPersists(t *testing.T) {
	r := NewRegistry(Limits{})
	r.Join("c1", &mockConn{}, "Alice", "lobby")
	r.Leave("c1")

	// The room entry survives; the roster is just empty now.
	assert.Empty(t, r.Roster("lobby"))
	assert.NotNil(t, r.rooms["lobby"])
}
