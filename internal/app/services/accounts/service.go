package accounts

import (
	"context"
	"fmt"
	"strings"

	"github.com/taskboard/tracker/internal/app/auth"
	"github.com/taskboard/tracker/internal/app/domain/identity"
	"github.com/taskboard/tracker/internal/app/storage"
	"github.com/taskboard/tracker/internal/errors"
	"github.com/taskboard/tracker/internal/logging"
)

const invalidCredentials = "Invalid email or password"

// Session is returned by a successful registration or login.
type Session struct {
	Token string           `json:"token"`
	User  identity.Profile `json:"user"`
}

// Registration carries validated registration input.
type Registration struct {
	Name     string
	Email    string
	Password string
}

// Service registers identities and exchanges credentials for tokens.
type Service struct {
	store  storage.IdentityStore
	tokens *auth.TokenService
	log    *logging.Logger

	// dummyHash is compared against when the email is unknown so both login
	// failure paths cost one bcrypt comparison.
	dummyHash string
}

// New constructs an accounts service.
func New(store storage.IdentityStore, tokens *auth.TokenService, log *logging.Logger) *Service {
	if log == nil {
		log = logging.NewDefault("accounts")
	}
	dummy, _ := auth.HashPassword("timing-equaliser")
	return &Service{store: store, tokens: tokens, log: log, dummyHash: dummy}
}

// Register creates an identity and signs a token for it. A taken email fails
// with a conflict and issues nothing.
func (s *Service) Register(ctx context.Context, reg Registration) (Session, error) {
	if err := s.tokens.Ready(); err != nil {
		return Session{}, err
	}
	email := strings.ToLower(strings.TrimSpace(reg.Email))

	if _, err := s.store.GetIdentityByEmail(ctx, email); err == nil {
		return Session{}, errors.Conflict("Email already registered")
	} else if !errors.Is(err, storage.ErrNotFound) {
		return Session{}, errors.Internal("", fmt.Errorf("lookup identity: %w", err))
	}

	hash, err := auth.HashPassword(reg.Password)
	if err != nil {
		return Session{}, errors.Internal("", fmt.Errorf("hash password: %w", err))
	}

	created, err := s.store.CreateIdentity(ctx, identity.Identity{
		Name:         strings.TrimSpace(reg.Name),
		Email:        email,
		PasswordHash: hash,
	})
	if errors.Is(err, storage.ErrDuplicate) {
		return Session{}, errors.Conflict("Email already registered")
	}
	if err != nil {
		return Session{}, errors.Internal("", fmt.Errorf("create identity: %w", err))
	}

	s.log.WithContext(ctx).WithField("identity_id", created.ID).Info("identity registered")
	return s.session(created)
}

// Login checks credentials. Unknown email and wrong password are reported
// identically.
func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	if err := s.tokens.Ready(); err != nil {
		return Session{}, err
	}
	email = strings.ToLower(strings.TrimSpace(email))

	found, err := s.store.GetIdentityByEmail(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		_, _ = auth.CheckPassword(s.dummyHash, password)
		s.log.LogSecurityEvent(ctx, "login_failed", map[string]interface{}{"reason": "unknown_email"})
		return Session{}, errors.Unauthorized(invalidCredentials)
	}
	if err != nil {
		return Session{}, errors.Internal("", fmt.Errorf("lookup identity: %w", err))
	}

	ok, err := auth.CheckPassword(found.PasswordHash, password)
	if err != nil {
		return Session{}, errors.Internal("", fmt.Errorf("compare password: %w", err))
	}
	if !ok {
		s.log.LogSecurityEvent(ctx, "login_failed", map[string]interface{}{"identity_id": found.ID})
		return Session{}, errors.Unauthorized(invalidCredentials)
	}
	return s.session(found)
}

func (s *Service) session(ident identity.Identity) (Session, error) {
	token, err := s.tokens.Issue(ident.ID)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, User: ident.Profile()}, nil
}
