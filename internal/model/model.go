// Package model defines domain entities used by services and repositories.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// User represents an account. The password is stored only as a bcrypt hash.
type User struct {
	ID        uuid.UUID // PK
	FullName  string
	Email     string // normalized (trimmed, lower-cased), unique
	PwdHash   string // bcrypt output, never exposed to clients
	CreatedAt time.Time
}

// Note is a single note record owned by exactly one user.
type Note struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID // FK -> users.id, set once at creation
	Seq       int64     // insertion sequence, breaks created_at ties in list ordering
	Title     string
	Content   string
	Tags      []string
	IsPinned  bool
	CreatedAt time.Time
}

// NoteDraft is a client change intent for note create/update.
// IsPinned is optional: nil means "keep the current pin state".
type NoteDraft struct {
	Title    string
	Content  string
	Tags     []string
	IsPinned *bool
}

// Session is the result of a successful registration or login.
type Session struct {
	Token     string
	ExpiresAt time.Time // token expiry (for diagnostics)
	User      User
}
