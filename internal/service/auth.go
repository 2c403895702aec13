// Package service contains application services for authentication and notes.
package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/gofrs/uuid/v5"

	"github.com/akuzmin/notehub/internal/crypto"
	"github.com/akuzmin/notehub/internal/errs"
	"github.com/akuzmin/notehub/internal/limiter"
	"github.com/akuzmin/notehub/internal/model"
	"github.com/akuzmin/notehub/internal/repository"
	"github.com/akuzmin/notehub/internal/token"
)

// MinPasswordLen is the minimum accepted password length.
const MinPasswordLen = 6

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AuthService defines registration and login operations.
type AuthService interface {
	// Register creates a new account and returns an authenticated session.
	Register(ctx context.Context, fullName, email, password string) (model.Session, error)
	// Login authenticates by email/password, applying per-(email, ip) rate limiting.
	Login(ctx context.Context, email, password, ip string) (model.Session, error)
}

type AuthServiceImpl struct {
	users      repository.UserRepository
	issuer     *token.Issuer
	lim        limiter.Limiter // nil disables login throttling
	bcryptCost int
	dummyHash  string // verified against for unknown emails, see Login
}

// NewAuthService constructs AuthService with required dependencies.
func NewAuthService(users repository.UserRepository, issuer *token.Issuer, lim limiter.Limiter, bcryptCost int) *AuthServiceImpl {
	// Hashed once at the configured cost; failed lookups verify against it
	// so they burn the same time as a real password check.
	dummy, _ := crypto.HashPassword("notehub.dummy", bcryptCost)
	return &AuthServiceImpl{users: users, issuer: issuer, lim: lim, bcryptCost: bcryptCost, dummyHash: dummy}
}

// NormalizeEmail trims surrounding whitespace and lower-cases the address.
// All lookups and the uniqueness key use the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register validates input, stores the new user with a hashed password and
// issues a token. Either a user exists afterwards with a valid hash, or
// nothing was created.
func (s *AuthServiceImpl) Register(ctx context.Context, fullName, email, password string) (model.Session, error) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return model.Session{}, errs.Validation("fullName", "full name is required")
	}
	email = NormalizeEmail(email)
	if !emailRe.MatchString(email) {
		return model.Session{}, errs.Validation("email", "invalid email address")
	}
	if len(password) < MinPasswordLen {
		return model.Session{}, errs.Validation("password", "password must be at least 6 characters")
	}

	// Early duplicate check for a clean error; the store's unique
	// constraint still decides races on Create.
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return model.Session{}, errs.ErrEmailTaken
	} else if !errors.Is(err, errs.ErrNotFound) {
		return model.Session{}, err
	}

	hash, err := crypto.HashPassword(password, s.bcryptCost)
	if err != nil {
		return model.Session{}, err
	}
	uid, err := uuid.NewV4()
	if err != nil {
		return model.Session{}, err
	}
	u := &model.User{
		ID:       uid,
		FullName: fullName,
		Email:    email,
		PwdHash:  hash,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return model.Session{}, err
	}
	return s.newSession(u)
}

// Login authenticates the user. Unknown email and wrong password both fail
// with ErrInvalidCredentials so accounts cannot be enumerated.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password, ip string) (model.Session, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return model.Session{}, errs.Validation("email", "email is required")
	}
	if password == "" {
		return model.Session{}, errs.Validation("password", "password is required")
	}

	ipHash := limiter.HashIP(ip)
	if s.lim != nil {
		allowed, _, err := s.lim.Allow(ctx, email, ipHash)
		if err != nil {
			return model.Session{}, err
		}
		if !allowed {
			return model.Session{}, errs.ErrRateLimited
		}
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, errs.ErrNotFound) {
		return model.Session{}, err
	}

	var ok bool
	if err == nil {
		ok = crypto.VerifyPassword(password, u.PwdHash)
	} else {
		// Unknown email: verify against the dummy hash so the response
		// takes as long as a wrong password for an existing account.
		crypto.VerifyPassword(password, s.dummyHash)
	}
	if !ok {
		if s.lim != nil {
			if blocked, _, ferr := s.lim.Failure(ctx, email, ipHash); ferr == nil && blocked {
				return model.Session{}, errs.ErrRateLimited
			}
		}
		return model.Session{}, errs.ErrInvalidCredentials
	}

	if s.lim != nil {
		// Best-effort counter reset.
		_ = s.lim.Success(ctx, email, ipHash)
	}
	return s.newSession(u)
}

func (s *AuthServiceImpl) newSession(u *model.User) (model.Session, error) {
	tok, exp, err := s.issuer.Issue(u.ID, u.FullName)
	if err != nil {
		return model.Session{}, err
	}
	return model.Session{Token: tok, ExpiresAt: exp, User: *u}, nil
}
