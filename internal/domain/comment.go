package domain

// Comment is a note attached to a ticket. TicketID is a weak reference:
// nothing checks it on write, and orphans are swept only by the cascade
// when their ticket is deleted.
type Comment struct {
	ID        string `json:"id"`
	TicketID  string `json:"ticketId"`
	UserID    string `json:"userId"`
	UserName  string `json:"userName"`
	Text      string `json:"text"`
	CreatedAt int64  `json:"createdAt"`
}

// AuthoredBy reports whether u wrote the comment. Only the author may
// delete a comment.
func (c Comment) AuthoredBy(u *User) bool {
	return u != nil && c.UserID == u.ID
}
