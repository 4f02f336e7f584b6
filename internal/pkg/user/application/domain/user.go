package user

import (
	"errors"
	"strings"
	"time"
)

// DefaultPic is the avatar assigned when registration omits one.
const DefaultPic = "https://icon-library.com/images/anonymous-avatar-icon/anonymous-avatar-icon-25.jpg"

var (
	ErrMissingFields = errors.New("user: name, email and password are required")
	ErrBadEmail      = errors.New("user: email is not valid")
)

// User is an identity record. PasswordHash never leaves the persistence and
// authentication layers; everything outward-facing goes through View.
type User struct {
	ID           string    `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Pic          string    `db:"pic"`
	IsAdmin      bool      `db:"is_admin"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// View is the credential-free projection of a User.
type View struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Pic     string `json:"pic"`
	IsAdmin bool   `json:"is_admin"`
}

func (u *User) View() View {
	return View{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Pic:     u.Pic,
		IsAdmin: u.IsAdmin,
	}
}

// NewRegistration normalizes and validates the fields supplied at sign-up.
// The returned User has no ID or PasswordHash yet.
func NewRegistration(name, email, pic string) (*User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" {
		return nil, ErrMissingFields
	}
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return nil, ErrBadEmail
	}
	if strings.TrimSpace(pic) == "" {
		pic = DefaultPic
	}
	return &User{Name: name, Email: email, Pic: pic}, nil
}
