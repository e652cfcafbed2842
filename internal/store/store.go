package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-store/internal/config"
	"github.com/spec-kit/ticket-store/internal/domain"
	"github.com/spec-kit/ticket-store/internal/events"
	"github.com/spec-kit/ticket-store/internal/persistence"
	"github.com/spec-kit/ticket-store/pkg/util"
)

// Store holds the whole application state: the session identity and the
// ticket and comment collections. Operations are invoked sequentially from
// a single logical actor, so the store takes no locks; accessors hand out
// copies so readers can never alias internal slices.
//
// In-memory state is the source of truth for the session. The persisted
// snapshot is a best-effort mirror written after every mutation; a failed
// save is logged and never fails the mutation that triggered it.
type Store struct {
	storage    persistence.Storage
	key        string
	logger     *zap.Logger
	dispatcher events.Dispatcher
	now        func() time.Time
	newID      func() string

	currentUser *domain.User
	tickets     []domain.Ticket
	comments    []domain.Comment
}

// Dependencies bundles the store's collaborators. Storage is required;
// everything else has a working default.
type Dependencies struct {
	Storage    persistence.Storage
	Key        string
	Logger     *zap.Logger
	Dispatcher events.Dispatcher
	Now        func() time.Time
	NewID      func() string
}

// New constructs a store. Call Load before first use to rehydrate
// persisted state.
func New(deps Dependencies) *Store {
	s := &Store{
		storage:    deps.Storage,
		key:        deps.Key,
		logger:     deps.Logger,
		dispatcher: deps.Dispatcher,
		now:        deps.Now,
		newID:      deps.NewID,
	}
	if s.key == "" {
		s.key = config.DefaultSnapshotKey
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		// UUIDs rather than timestamps: comment ids must stay unique
		// across calls that land in the same millisecond.
		s.newID = uuid.NewString
	}
	return s
}

// Load rehydrates state from storage. A snapshot that was never written
// leaves the store empty; a snapshot that exists but cannot be decoded is
// an error, because silently discarding data is worse than failing startup.
func (s *Store) Load(ctx context.Context) error {
	data, err := s.storage.Load(ctx, s.key)
	if errors.Is(err, persistence.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	snap, err := DecodeSnapshot(data)
	if err != nil {
		return err
	}
	s.currentUser = snap.CurrentUser
	s.tickets = snap.Tickets
	s.comments = snap.Comments
	return nil
}

// Login asserts an identity. The name is trimmed (empty falls back to a
// default) and the id derived from its lowercased form, so the same display
// name always resolves to the same identity. Existing tickets and comments
// whose recorded author name matches the new name are retagged to the
// derived id and their stored name canonicalized, merging case and
// whitespace variants into one identity. Never fails.
func (s *Store) Login(ctx context.Context, name string) domain.User {
	user := domain.NewUser(name)

	retagged := 0
	for i := range s.tickets {
		t := &s.tickets[i]
		if domain.SameIdentity(t.CreatedByName, user.Name) {
			t.CreatedByID = user.ID
			t.CreatedByName = user.Name
			retagged++
		}
	}
	for i := range s.comments {
		c := &s.comments[i]
		if domain.SameIdentity(c.UserName, user.Name) {
			c.UserID = user.ID
			c.UserName = user.Name
			retagged++
		}
	}

	s.currentUser = &user
	s.persist(ctx)
	s.publish(ctx, events.EventUserLoggedIn, events.SessionPayload{
		UserID:   user.ID,
		UserName: user.Name,
		Retagged: retagged,
	})
	return user
}

// Logout clears the session. Tickets and comments keep their recorded
// ownership; there is just no one logged in to exercise it. Idempotent.
func (s *Store) Logout(ctx context.Context) {
	var payload events.SessionPayload
	if s.currentUser != nil {
		payload.UserID = s.currentUser.ID
		payload.UserName = s.currentUser.Name
	}
	s.currentUser = nil
	s.persist(ctx)
	s.publish(ctx, events.EventUserLoggedOut, payload)
}

// TicketInput describes the ticket creation payload. ID is the
// caller-chosen ticket number.
type TicketInput struct {
	ID          string
	Name        string
	Description string
	Status      domain.Status
}

// AddTicket creates a ticket owned by the current user and returns its id.
// This is the only operation with hard failures: Unauthenticated without a
// session, InvalidArgument for a missing number or title, Conflict for a
// case-insensitive duplicate number.
func (s *Store) AddTicket(ctx context.Context, in TicketInput) (string, error) {
	if s.currentUser == nil {
		return "", util.NewUnauthenticated("must be logged in to create tickets")
	}

	id := strings.TrimSpace(in.ID)
	name := strings.TrimSpace(in.Name)
	if id == "" {
		return "", util.NewInvalidArgument("ticket number is required", nil)
	}
	if name == "" {
		return "", util.NewInvalidArgument("ticket title is required", nil)
	}
	for _, t := range s.tickets {
		if strings.EqualFold(t.ID, id) {
			return "", util.NewConflict("a ticket with this number already exists", map[string]any{"id": t.ID})
		}
	}

	ticket := domain.Ticket{
		ID:            id,
		Name:          name,
		Description:   strings.TrimSpace(in.Description),
		Status:        in.Status,
		CreatedAt:     s.now().UnixMilli(),
		CreatedByID:   s.currentUser.ID,
		CreatedByName: s.currentUser.Name,
	}

	// Newest first.
	s.tickets = append([]domain.Ticket{ticket}, s.tickets...)
	s.persist(ctx)
	s.publish(ctx, events.EventTicketCreated, events.TicketPayload{
		TicketID: ticket.ID,
		Title:    ticket.Name,
		Status:   ticket.Status,
		OwnerID:  ticket.CreatedByID,
	})
	return id, nil
}

// TicketUpdate carries optional field changes. A nil field is untouched.
type TicketUpdate struct {
	Name        *string
	Description *string
}

// UpdateTicket edits a ticket's title and description. A missing ticket,
// missing session, or non-owner session makes this a silent no-op: the UI
// is expected to have disabled the control, and the store just re-enforces
// the gate. A submitted name that trims to empty never clears the title; a
// submitted description that trims to empty clears the description.
// ID, status, creation time, and ownership are never touched.
func (s *Store) UpdateTicket(ctx context.Context, id string, upd TicketUpdate) {
	t := s.findOwned(id)
	if t == nil {
		return
	}
	if upd.Name != nil {
		if name := strings.TrimSpace(*upd.Name); name != "" {
			t.Name = name
		}
	}
	if upd.Description != nil {
		t.Description = strings.TrimSpace(*upd.Description)
	}
	s.persist(ctx)
	s.publish(ctx, events.EventTicketUpdated, events.TicketPayload{
		TicketID: t.ID,
		Title:    t.Name,
		Status:   t.Status,
		OwnerID:  t.CreatedByID,
	})
}

// SetStatus replaces a ticket's status, owner only. Transitions between
// the three states are unrestricted. Silent no-op when unauthorized or the
// ticket is missing.
func (s *Store) SetStatus(ctx context.Context, id string, status domain.Status) {
	t := s.findOwned(id)
	if t == nil {
		return
	}
	old := t.Status
	t.Status = status
	s.persist(ctx)
	s.publish(ctx, events.EventTicketStatusChanged, events.StatusChangedPayload{
		TicketID:  t.ID,
		OldStatus: old,
		NewStatus: status,
	})
}

// DeleteTicket removes a ticket and every comment referencing it, owner
// only. The ticket and its comments disappear together: both collections
// are swapped in a single step, so no observer sees one without the other.
// Silent no-op when unauthorized or the ticket is missing.
func (s *Store) DeleteTicket(ctx context.Context, id string) {
	if s.findOwned(id) == nil {
		return
	}

	tickets := make([]domain.Ticket, 0, len(s.tickets)-1)
	for _, t := range s.tickets {
		if t.ID != id {
			tickets = append(tickets, t)
		}
	}
	removed := 0
	comments := make([]domain.Comment, 0, len(s.comments))
	for _, c := range s.comments {
		if c.TicketID == id {
			removed++
			continue
		}
		comments = append(comments, c)
	}
	s.tickets, s.comments = tickets, comments

	s.persist(ctx)
	s.publish(ctx, events.EventTicketDeleted, events.TicketDeletedPayload{
		TicketID:        id,
		CommentsRemoved: removed,
	})
}

// AddComment appends a comment authored by the current user. Silent no-op
// without a session or when the text trims to empty. The referenced ticket
// is not required to exist; orphaned comments are tolerated and swept only
// by the delete cascade (known gap, kept deliberately).
func (s *Store) AddComment(ctx context.Context, ticketID, text string) {
	if s.currentUser == nil {
		return
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	comment := domain.Comment{
		ID:        s.newID(),
		TicketID:  ticketID,
		UserID:    s.currentUser.ID,
		UserName:  s.currentUser.Name,
		Text:      text,
		CreatedAt: s.now().UnixMilli(),
	}
	s.comments = append(s.comments, comment)

	s.persist(ctx)
	s.publish(ctx, events.EventCommentAdded, events.CommentPayload{
		CommentID: comment.ID,
		TicketID:  comment.TicketID,
		AuthorID:  comment.UserID,
	})
}

// DeleteComment removes a comment, author only. Silent no-op when the
// comment is missing, there is no session, or the session is not the
// author's.
func (s *Store) DeleteComment(ctx context.Context, commentID string) {
	if s.currentUser == nil {
		return
	}
	for i, c := range s.comments {
		if c.ID != commentID {
			continue
		}
		if !c.AuthoredBy(s.currentUser) {
			return
		}
		s.comments = append(s.comments[:i:i], s.comments[i+1:]...)
		s.persist(ctx)
		s.publish(ctx, events.EventCommentDeleted, events.CommentPayload{
			CommentID: c.ID,
			TicketID:  c.TicketID,
			AuthorID:  c.UserID,
		})
		return
	}
}

// CurrentUser returns the session identity, if any.
func (s *Store) CurrentUser() (domain.User, bool) {
	if s.currentUser == nil {
		return domain.User{}, false
	}
	return *s.currentUser, true
}

// Tickets returns the ticket collection, newest first.
func (s *Store) Tickets() []domain.Ticket {
	out := make([]domain.Ticket, len(s.tickets))
	copy(out, s.tickets)
	return out
}

// Ticket looks up a ticket by its exact id.
func (s *Store) Ticket(id string) (domain.Ticket, bool) {
	for _, t := range s.tickets {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Ticket{}, false
}

// Comments returns every comment in chronological append order.
func (s *Store) Comments() []domain.Comment {
	out := make([]domain.Comment, len(s.comments))
	copy(out, s.comments)
	return out
}

// CommentsFor returns the comments referencing a ticket, in append order.
func (s *Store) CommentsFor(ticketID string) []domain.Comment {
	var out []domain.Comment
	for _, c := range s.comments {
		if c.TicketID == ticketID {
			out = append(out, c)
		}
	}
	return out
}

// findOwned resolves a ticket the current user may mutate, or nil. Lookup
// is by exact id; only creation enforces case-insensitive uniqueness.
func (s *Store) findOwned(id string) *domain.Ticket {
	if s.currentUser == nil {
		return nil
	}
	for i := range s.tickets {
		if s.tickets[i].ID == id && s.tickets[i].OwnedBy(s.currentUser) {
			return &s.tickets[i]
		}
	}
	return nil
}

func (s *Store) persist(ctx context.Context) {
	data, err := EncodeSnapshot(Snapshot{
		CurrentUser: s.currentUser,
		Tickets:     s.tickets,
		Comments:    s.comments,
	})
	if err != nil {
		s.logger.Warn("encode snapshot", zap.Error(err))
		return
	}
	if err := s.storage.Save(ctx, s.key, data); err != nil {
		s.logger.Warn("persist snapshot", zap.String("key", s.key), zap.Error(err))
	}
}

func (s *Store) publish(ctx context.Context, eventType events.EventType, payload any) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:      eventType,
		Timestamp: s.now(),
		Payload:   payload,
	})
}
