package domain

import "strings"

// User identifies the session owner. There is no credential: the id is
// derived from the display name, so logging in again with the same name
// (modulo case and surrounding whitespace) resolves to the same identity.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DefaultUserName is substituted when a login name is empty after trimming.
const DefaultUserName = "User"

// NormalizeName trims a display name, falling back to DefaultUserName.
func NormalizeName(name string) string {
	n := strings.TrimSpace(name)
	if n == "" {
		return DefaultUserName
	}
	return n
}

// DeriveUserID maps a display name onto its stable identity. Names that
// differ only in case or surrounding whitespace derive the same id.
func DeriveUserID(name string) string {
	return "user:" + strings.ToLower(strings.TrimSpace(name))
}

// NewUser builds the session identity for a raw login name.
func NewUser(name string) User {
	n := NormalizeName(name)
	return User{ID: DeriveUserID(n), Name: n}
}

// SameIdentity reports whether a recorded author name denotes the given
// normalized name, ignoring case and surrounding whitespace. Used by the
// login backfill to merge name variants into one identity.
func SameIdentity(recorded, normalized string) bool {
	return strings.EqualFold(strings.TrimSpace(recorded), normalized)
}
