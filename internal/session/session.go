// Package session tracks authenticated sessions. Each session owns its
// cart: the cart is created empty when the session opens and dies with
// it, which is also why carts never cross session boundaries.
package session

import (
	"context"
	"errors"

	"github.com/MrSyr3x/catering-system/internal/cart"
)

var ErrNoSession = errors.New("no active session")

// Identity is the part of a session persisted in the token store.
type Identity struct {
	UserID   string `json:"userId"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	UserType string `json:"userType"`
}

// Session is an authenticated session handle plus its in-memory cart.
type Session struct {
	Token    string
	UserID   string
	Email    string
	FullName string
	UserType string
	Cart     *cart.Cart
}

func (s *Session) IsAdmin() bool { return s.UserType == "admin" }

// TokenStore persists token -> identity so session tokens can outlive a
// process restart when backed by redis. Carts never go through here.
type TokenStore interface {
	Save(ctx context.Context, token string, id Identity) error
	Load(ctx context.Context, token string) (Identity, error)
	Delete(ctx context.Context, token string) error
}
