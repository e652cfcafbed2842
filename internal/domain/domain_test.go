package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveUserID_Deterministic(t *testing.T) {
	variants := []string{"Alice", "alice", " ALICE ", "aLiCe"}
	for _, v := range variants {
		assert.Equal(t, "user:alice", DeriveUserID(v), "variant %q", v)
	}
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "Alice", NormalizeName("  Alice  "))
	assert.Equal(t, DefaultUserName, NormalizeName(""))
	assert.Equal(t, DefaultUserName, NormalizeName("   "))
}

func TestNewUser(t *testing.T) {
	u := NewUser("  Bob ")
	assert.Equal(t, "Bob", u.Name)
	assert.Equal(t, "user:bob", u.ID)

	anon := NewUser(" ")
	assert.Equal(t, "User", anon.Name)
	assert.Equal(t, "user:user", anon.ID)
}

func TestSameIdentity(t *testing.T) {
	assert.True(t, SameIdentity(" Alice ", "alice"))
	assert.True(t, SameIdentity("alice", "Alice"))
	assert.False(t, SameIdentity("Alicia", "alice"))
}

func TestParseStatus(t *testing.T) {
	cases := []struct {
		in   string
		want Status
		ok   bool
	}{
		{"open", StatusOpen, true},
		{" Open ", StatusOpen, true},
		{"In Progress", StatusInProgress, true},
		{"in-progress", StatusInProgress, true},
		{"in_progress", StatusInProgress, true},
		{"CLOSED", StatusClosed, true},
		{"done", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseStatus(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestOwnership(t *testing.T) {
	alice := NewUser("Alice")
	bob := NewUser("Bob")
	ticket := Ticket{ID: "T-1", CreatedByID: alice.ID}
	comment := Comment{ID: "c1", UserID: bob.ID}

	assert.True(t, ticket.OwnedBy(&alice))
	assert.False(t, ticket.OwnedBy(&bob))
	assert.False(t, ticket.OwnedBy(nil))

	assert.True(t, comment.AuthoredBy(&bob))
	assert.False(t, comment.AuthoredBy(&alice))
	assert.False(t, comment.AuthoredBy(nil))
}
