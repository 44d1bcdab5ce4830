package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidInput       = errors.New("mobile number and password are required")
	ErrInvalidCredentials = errors.New("invalid password")
	ErrInvalidMobile      = errors.New("mobile number must be exactly 10 digits")
	ErrInvalidPIN         = errors.New("password must be exactly 4 digits")
)

var (
	mobileRegex = regexp.MustCompile(`^[0-9]{10}$`)
	pinRegex    = regexp.MustCompile(`^[0-9]{4}$`)
)

// User is an account in the registry. The password is a 4-digit PIN stored
// and compared as plain text: the persisted documents must stay readable by
// the original client, which never hashed credentials.
type User struct {
	ID        string    `json:"id"`
	Mobile    string    `json:"mobile"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewUser registers a fresh account. Registration happens on first login with
// an unseen mobile, so this cannot fail on content: format checks are the
// presentation layer's contract (ValidMobile/ValidPIN).
func NewUser(mobile, password string) *User {
	return &User{
		ID:        uuid.NewString(),
		Mobile:    strings.TrimSpace(mobile),
		Password:  password,
		CreatedAt: time.Now().UTC(),
	}
}

func (u *User) CheckPassword(plain string) bool {
	return u.Password == plain
}

// Valid reports whether a persisted session record is usable. Anything
// missing an id or mobile is treated as corrupted and discarded.
func (u *User) Valid() bool {
	return u != nil && u.ID != "" && u.Mobile != ""
}

// Redacted returns a copy safe to hand to clients or exports.
func (u *User) Redacted() User {
	clone := *u
	clone.Password = ""
	return clone
}

func ValidMobile(mobile string) bool {
	return mobileRegex.MatchString(mobile)
}

func ValidPIN(pin string) bool {
	return pinRegex.MatchString(pin)
}

// FormatMobile renders a 10-digit mobile as xxx-xxx-xxxx for display.
// Anything else is returned unchanged.
func FormatMobile(mobile string) string {
	if len(mobile) != 10 {
		return mobile
	}
	return mobile[:3] + "-" + mobile[3:6] + "-" + mobile[6:]
}
