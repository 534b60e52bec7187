package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is the single resource this service manages. ID and both timestamps
// are assigned by the database; callers never set them.
type User struct {
	ID        uuid.UUID
	Name      string
	Email     string
	AvatarKey string
	AvatarURL string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewUser(name, email string) *User {
	u := &User{Name: name, Email: email}
	u.Normalize()
	return u
}

// Normalize trims the name and trims+lowercases the email. Uniqueness is
// enforced on the normalized email, so every write path must go through here.
func (u *User) Normalize() {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
}

func (u *User) HasAvatar() bool {
	return u.AvatarKey != ""
}
