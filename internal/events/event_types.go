package events

import (
	"time"

	"github.com/spec-kit/ticket-store/internal/domain"
)

// EventType enumerates store mutations observers can subscribe to.
type EventType string

const (
	EventUserLoggedIn        EventType = "user_logged_in"
	EventUserLoggedOut       EventType = "user_logged_out"
	EventTicketCreated       EventType = "ticket_created"
	EventTicketUpdated       EventType = "ticket_updated"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventTicketDeleted       EventType = "ticket_deleted"
	EventCommentAdded        EventType = "comment_added"
	EventCommentDeleted      EventType = "comment_deleted"
)

// All lists every event type, for observers that want the full stream.
var All = []EventType{
	EventUserLoggedIn,
	EventUserLoggedOut,
	EventTicketCreated,
	EventTicketUpdated,
	EventTicketStatusChanged,
	EventTicketDeleted,
	EventCommentAdded,
	EventCommentDeleted,
}

// Event is published by the store after every successful mutation.
type Event struct {
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// SessionPayload accompanies login/logout events. UserID is empty on a
// logout that found no active session.
type SessionPayload struct {
	UserID   string `json:"user_id,omitempty"`
	UserName string `json:"user_name,omitempty"`
	Retagged int    `json:"retagged,omitempty"`
}

// TicketPayload accompanies ticket_created and ticket_updated.
type TicketPayload struct {
	TicketID string        `json:"ticket_id"`
	Title    string        `json:"title"`
	Status   domain.Status `json:"status"`
	OwnerID  string        `json:"owner_id"`
}

// StatusChangedPayload accompanies ticket_status_changed.
type StatusChangedPayload struct {
	TicketID  string        `json:"ticket_id"`
	OldStatus domain.Status `json:"old_status"`
	NewStatus domain.Status `json:"new_status"`
}

// TicketDeletedPayload accompanies ticket_deleted.
type TicketDeletedPayload struct {
	TicketID        string `json:"ticket_id"`
	CommentsRemoved int    `json:"comments_removed"`
}

// CommentPayload accompanies comment_added and comment_deleted.
type CommentPayload struct {
	CommentID string `json:"comment_id"`
	TicketID  string `json:"ticket_id"`
	AuthorID  string `json:"author_id"`
}
