package kernel

import (
	"errors"
	"net/mail"
	"strings"

	"dispatch/internal/pkg/errs"
)

// Identity is the (user id, email) pair of an authenticated actor.
// Emails are stored lower-cased so that comparisons are case-insensitive
// and Identity can be used directly as a map key.
type Identity struct {
	userID string
	email  string
}

// NewIdentity validates and normalizes an actor identity.
func NewIdentity(userID, email string) (Identity, error) {
	userID = strings.TrimSpace(userID)
	normalized, emailErr := NormalizeEmail(email)

	var userErr error
	if userID == "" {
		userErr = errs.NewValueIsRequiredError("user id")
	}
	if err := errors.Join(userErr, emailErr); err != nil {
		return Identity{}, err
	}

	return Identity{userID: userID, email: normalized}, nil
}

// NormalizeEmail trims, lower-cases and syntactically validates an email address.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", errs.NewValueIsRequiredError("email")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", errs.NewValueIsInvalidErrorWithCause("email", err)
	}
	return email, nil
}

// SameEmail reports whether two addresses are equal ignoring case and surrounding space.
func SameEmail(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func (i Identity) UserID() string {
	return i.userID
}

func (i Identity) Email() string {
	return i.email
}

func (i Identity) IsZero() bool {
	return i == Identity{}
}

func (i Identity) String() string {
	return i.userID + "<" + i.email + ">"
}
