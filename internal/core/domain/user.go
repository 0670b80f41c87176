package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsStaff      bool      `json:"is_staff"`
	TokenVersion int64     `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type Group struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Actor is the authenticated identity behind a request.
type Actor struct {
	UserID   uuid.UUID
	Username string
	IsStaff  bool
}

// Owns reports whether the actor may act on the given user record.
func (a Actor) Owns(userID uuid.UUID) bool {
	return a.IsStaff || a.UserID == userID
}
