// Package auth is the identity gateway: it issues and ends sessions and
// owns the user profile documents.
package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/MrSyr3x/catering-system/internal/session"
	"github.com/MrSyr3x/catering-system/internal/store"
)

var (
	// ErrInvalidCredentials deliberately covers both unknown email and
	// wrong password so the login form cannot be used to probe accounts.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailInUse         = errors.New("email already registered")
	ErrInvalidProfile     = errors.New("invalid profile")
)

type Service struct {
	store    store.Store
	sessions *session.Manager
}

func NewService(st store.Store, sessions *session.Manager) *Service {
	return &Service{store: st, sessions: sessions}
}

// Subscribe registers fn for session transitions: called with the new
// session on sign-in and with nil on sign-out.
func (s *Service) Subscribe(fn func(*session.Session)) {
	s.sessions.Subscribe(fn)
}

// SignUp registers a new user and opens their first session.
func (s *Service) SignUp(ctx context.Context, req RegisterRequest) (*session.Session, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if req.FullName == "" || email == "" || req.Password == "" {
		return nil, ErrInvalidProfile
	}
	if req.UserType == "" {
		req.UserType = UserTypeCustomer
	}
	p := Profile{
		FullName:  req.FullName,
		Email:     email,
		Phone:     req.Phone,
		Address:   req.Address,
		UserType:  req.UserType,
		CreatedAt: time.Now().UTC(),
	}
	if err := p.Validate(); err != nil {
		return nil, ErrInvalidProfile
	}

	existing, err := s.store.ListWhere(ctx, store.Credentials, "email", email)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, ErrEmailInUse
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	userID, err := s.store.Create(ctx, store.Users, p)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.Create(ctx, store.Credentials, credentials{
		UserID:       userID,
		Email:        email,
		PasswordHash: hash,
	}); err != nil {
		return nil, err
	}

	return s.sessions.Open(ctx, session.Identity{
		UserID:   userID,
		Email:    email,
		FullName: p.FullName,
		UserType: p.UserType,
	})
}

// SignIn checks credentials and opens a session. Every credential
// failure comes back as ErrInvalidCredentials.
func (s *Service) SignIn(ctx context.Context, email, password string) (*session.Session, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	recs, err := s.store.ListWhere(ctx, store.Credentials, "email", email)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, ErrInvalidCredentials
	}
	var creds credentials
	if err := recs[0].Decode(&creds); err != nil {
		return nil, err
	}
	if !CheckPassword(creds.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	p, err := s.Profile(ctx, creds.UserID)
	if err != nil {
		return nil, err
	}
	return s.sessions.Open(ctx, session.Identity{
		UserID:   creds.UserID,
		Email:    p.Email,
		FullName: p.FullName,
		UserType: p.UserType,
	})
}

// SignOut ends the session for a token.
func (s *Service) SignOut(ctx context.Context, token string) error {
	return s.sessions.Close(ctx, token)
}

// Profile loads and validates a user document.
func (s *Service) Profile(ctx context.Context, userID string) (*Profile, error) {
	rec, err := s.store.Get(ctx, store.Users, userID)
	if err != nil {
		return nil, err
	}
	var p Profile
	if err := rec.Decode(&p); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, errors.Join(store.ErrMalformed, err)
	}
	p.ID = rec.ID
	return &p, nil
}

// UpdateProfile patches the editable fields only; email and userType
// never change through this path.
func (s *Service) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) error {
	if strings.TrimSpace(req.FullName) == "" {
		return ErrInvalidProfile
	}
	return s.store.Update(ctx, store.Users, userID, map[string]any{
		"fullName": req.FullName,
		"phone":    req.Phone,
		"address":  req.Address,
	})
}
