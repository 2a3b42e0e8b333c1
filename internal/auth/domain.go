package auth

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account. The password hash never leaves
// this package; responses expose the PublicUser projection instead.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// PublicUser is the client-visible projection of a User.
type PublicUser struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Public returns the client-visible projection of the user.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt}
}
