package presence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinOverwritesNickname(t *testing.T) {
	r := NewRegistry()
	r.Join("conn-1", "alice")
	r.Join("conn-1", "alicia")

	assert.Equal(t, []string{"alicia"}, r.Snapshot())
}

func TestLeaveIsIdempotent(t *testing.T) {
	r := NewRegistry()
	r.Join("conn-1", "alice")
	r.Leave("conn-1")
	r.Leave("conn-1")
	r.Leave("never-joined")

	assert.Empty(t, r.Snapshot())
}

func TestSnapshotListsAllUsers(t *testing.T) {
	r := NewRegistry()
	r.Join("conn-1", "alice")
	r.Join("conn-2", "bob")

	snapshot := r.Snapshot()
	assert.Len(t, snapshot, 2)
	assert.ElementsMatch(t, []string{"alice", "bob"}, snapshot)
}

func TestDuplicateNicknamesAreKeptPerConnection(t *testing.T) {
	r := NewRegistry()
	r.Join("conn-1", "alice")
	r.Join("conn-2", "alice")

	assert.Len(t, r.Snapshot(), 2)

	r.Leave("conn-1")
	assert.Equal(t, []string{"alice"}, r.Snapshot())
}
