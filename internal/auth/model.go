package auth

import (
	"errors"
	"time"
)

// User types recognized by the storefront.
const (
	UserTypeCustomer = "customer"
	UserTypeAdmin    = "admin"
)

// Profile is the user document kept in the users collection.
// swagger:model Profile
type Profile struct {
	ID        string    `json:"id,omitempty"`
	FullName  string    `json:"fullName" example:"Asha Nair"`
	Email     string    `json:"email" example:"asha@example.com"`
	Phone     string    `json:"phone" example:"+91 98450 12345"`
	Address   string    `json:"address" example:"12 Brigade Rd, Bengaluru"`
	UserType  string    `json:"userType" example:"customer"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate rejects user documents that do not have the expected shape.
func (p *Profile) Validate() error {
	if p.FullName == "" || p.Email == "" {
		return errors.New("fullName and email are required")
	}
	if p.UserType != UserTypeCustomer && p.UserType != UserTypeAdmin {
		return errors.New("unknown userType " + p.UserType)
	}
	return nil
}

// credentials live in their own collection so the users collection keeps
// exactly the profile shape the frontend reads.
type credentials struct {
	UserID       string `json:"userId"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
}

// RegisterRequest is the sign-up payload.
// swagger:model RegisterRequest
type RegisterRequest struct {
	FullName string `json:"fullName" example:"Asha Nair"`
	Email    string `json:"email" example:"asha@example.com"`
	Password string `json:"password" example:"secret123"`
	Phone    string `json:"phone" example:"+91 98450 12345"`
	Address  string `json:"address" example:"12 Brigade Rd, Bengaluru"`
	UserType string `json:"userType" example:"customer"`
}

// LoginRequest is the sign-in payload.
// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email" example:"asha@example.com"`
	Password string `json:"password" example:"secret123"`
}

// UpdateProfileRequest carries the editable profile fields. Email and
// userType are not editable.
// swagger:model UpdateProfileRequest
type UpdateProfileRequest struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}
