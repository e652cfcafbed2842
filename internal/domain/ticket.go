package domain

import "strings"

// Status enumerates ticket lifecycle states. Any state may transition to
// any other; the only gate on a status change is ticket ownership.
type Status string

const (
	StatusOpen       Status = "Open"
	StatusInProgress Status = "In Progress"
	StatusClosed     Status = "Closed"
)

// Statuses lists all states in display order.
var Statuses = []Status{StatusOpen, StatusInProgress, StatusClosed}

// ParseStatus maps user input onto a Status. It tolerates case differences
// and the in-progress/in_progress spellings.
func ParseStatus(s string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "open":
		return StatusOpen, true
	case "in progress", "in-progress", "in_progress", "inprogress":
		return StatusInProgress, true
	case "closed":
		return StatusClosed, true
	}
	return "", false
}

// Ticket is the aggregate for tracked work items. The id is a caller-chosen
// ticket number, unique case-insensitively and immutable after creation.
// CreatedAt is epoch milliseconds; the JSON tags match the persisted
// snapshot shape exactly.
type Ticket struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	Status        Status `json:"status"`
	CreatedAt     int64  `json:"createdAt"`
	CreatedByID   string `json:"createdById"`
	CreatedByName string `json:"createdByName"`
}

// OwnedBy reports whether u is the ticket's recorded creator. Only the
// owner may mutate or delete a ticket.
func (t Ticket) OwnedBy(u *User) bool {
	return u != nil && t.CreatedByID == u.ID
}
