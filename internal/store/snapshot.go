package store

import (
	"encoding/json"
	"fmt"

	"github.com/spec-kit/ticket-store/internal/domain"
)

// SnapshotVersion is the envelope version this build writes. Version 0
// blobs (written before the envelope carried an explicit version) decode
// with the same state shape.
const SnapshotVersion = 1

// Snapshot is the unit of persistence: the complete store state.
type Snapshot struct {
	CurrentUser *domain.User     `json:"currentUser,omitempty"`
	Tickets     []domain.Ticket  `json:"tickets"`
	Comments    []domain.Comment `json:"comments"`
}

// envelope wraps the state so the persisted format can evolve without
// reinterpreting old blobs.
type envelope struct {
	Version int      `json:"version"`
	State   Snapshot `json:"state"`
}

// EncodeSnapshot serializes a snapshot into its versioned JSON envelope.
// Nil collections encode as empty arrays so the persisted shape is stable.
func EncodeSnapshot(s Snapshot) ([]byte, error) {
	if s.Tickets == nil {
		s.Tickets = []domain.Ticket{}
	}
	if s.Comments == nil {
		s.Comments = []domain.Comment{}
	}
	return json.Marshal(envelope{Version: SnapshotVersion, State: s})
}

// DecodeSnapshot parses a persisted envelope. Data written by a newer
// version of the application is refused rather than silently misread.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if env.Version > SnapshotVersion {
		return Snapshot{}, fmt.Errorf("snapshot version %d is newer than supported %d", env.Version, SnapshotVersion)
	}
	return env.State, nil
}
