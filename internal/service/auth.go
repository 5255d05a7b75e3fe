package service

import (
	"context"
	"errors"
	"strings"

	"github.com/lolocuentaps32/fanscopa/internal/models"
)

// ErrNoRegistration is returned when login credentials match no known
// registration.
var ErrNoRegistration = errors.New("no registration matches these credentials")

// Finder is the single storage operation the login flow depends on.
type Finder interface {
	// Find returns the registration matching the given email or DNI.
	Find(ctx context.Context, email, dni string) (*models.Registration, error)
}

// Auth resolves login attempts into sessions. The role is decided here,
// once, at construction time: the configured admin address yields an admin
// session, any email or DNI matching a registration yields a user session
// bound to that record's DNI.
type Auth struct {
	storage    Finder
	adminEmail string
}

// NewAuth constructs an Auth service. adminEmail is the address granted
// administrator rights.
func NewAuth(storage Finder, adminEmail string) *Auth {
	return &Auth{storage: storage, adminEmail: adminEmail}
}

// Login resolves email/dni credentials into a session.
// Returns ErrNoRegistration when no registration matches.
func (a *Auth) Login(ctx context.Context, email, dni string) (models.Session, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	dni = strings.TrimSpace(strings.ToUpper(dni))

	if email != "" && email == a.adminEmail {
		return models.AdminSession(email), nil
	}

	reg, err := a.storage.Find(ctx, email, dni)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.Session{}, ErrNoRegistration
		}
		return models.Session{}, err
	}
	return models.UserSession(reg.Email, reg.DNI), nil
}
