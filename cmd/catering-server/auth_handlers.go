package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MrSyr3x/catering-system/internal/auth"
	"github.com/MrSyr3x/catering-system/internal/httpx"
	"github.com/MrSyr3x/catering-system/internal/session"
	"github.com/MrSyr3x/catering-system/internal/store"
)

type sessionResponse struct {
	Token    string `json:"token"`
	UserID   string `json:"user_id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	UserType string `json:"user_type"`
}

func toSessionResponse(s *session.Session) sessionResponse {
	return sessionResponse{
		Token:    s.Token,
		UserID:   s.UserID,
		FullName: s.FullName,
		Email:    s.Email,
		UserType: s.UserType,
	}
}

// registerHandler creates an account and opens the first session.
// @Summary  Register a new user
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body auth.RegisterRequest true "profile and password"
// @Success  201 {object} sessionResponse
// @Failure  400 {object} httpx.HTTPError
// @Failure  409 {object} httpx.HTTPError
// @Router   /auth/register [post]
func registerHandler(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req auth.RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Err(c, http.StatusBadRequest, "invalid json")
			return
		}
		sess, err := svc.SignUp(c.Request.Context(), req)
		switch {
		case errors.Is(err, auth.ErrInvalidProfile):
			httpx.Err(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, auth.ErrEmailInUse):
			httpx.Err(c, http.StatusConflict, err.Error())
		case err != nil:
			httpx.Err(c, http.StatusBadGateway, "store error")
		default:
			c.JSON(http.StatusCreated, toSessionResponse(sess))
		}
	}
}

// loginHandler signs a user in.
// @Summary  Sign in
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body auth.LoginRequest true "credentials"
// @Success  200 {object} sessionResponse
// @Failure  401 {object} httpx.HTTPError
// @Router   /auth/login [post]
func loginHandler(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req auth.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Err(c, http.StatusBadRequest, "invalid json")
			return
		}
		sess, err := svc.SignIn(c.Request.Context(), req.Email, req.Password)
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			httpx.Err(c, http.StatusUnauthorized, auth.ErrInvalidCredentials.Error())
		case err != nil:
			httpx.Err(c, http.StatusBadGateway, "store error")
		default:
			c.JSON(http.StatusOK, toSessionResponse(sess))
		}
	}
}

// logoutHandler ends the current session.
// @Summary  Sign out
// @Tags     auth
// @Security BearerAuth
// @Success  204
// @Router   /auth/logout [post]
func logoutHandler(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := httpx.CurrentSession(c)
		if err := svc.SignOut(c.Request.Context(), sess.Token); err != nil {
			httpx.Err(c, http.StatusBadGateway, "store error")
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// getProfileHandler returns the signed-in user's profile.
// @Summary  Get profile
// @Tags     profile
// @Security BearerAuth
// @Produce  json
// @Success  200 {object} auth.Profile
// @Failure  404 {object} httpx.HTTPError
// @Router   /profile [get]
func getProfileHandler(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := httpx.CurrentSession(c)
		p, err := svc.Profile(c.Request.Context(), sess.UserID)
		switch {
		case errors.Is(err, store.ErrNotFound):
			httpx.Err(c, http.StatusNotFound, "profile not found")
		case err != nil:
			httpx.Err(c, http.StatusBadGateway, "store error")
		default:
			c.JSON(http.StatusOK, p)
		}
	}
}

// updateProfileHandler patches the editable profile fields.
// @Summary  Update profile
// @Tags     profile
// @Security BearerAuth
// @Accept   json
// @Produce  json
// @Param    body body auth.UpdateProfileRequest true "editable fields"
// @Success  200 {object} auth.Profile
// @Failure  400 {object} httpx.HTTPError
// @Router   /profile [put]
func updateProfileHandler(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req auth.UpdateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Err(c, http.StatusBadRequest, "invalid json")
			return
		}
		sess := httpx.CurrentSession(c)
		if err := svc.UpdateProfile(c.Request.Context(), sess.UserID, req); err != nil {
			switch {
			case errors.Is(err, auth.ErrInvalidProfile):
				httpx.Err(c, http.StatusBadRequest, "fullName is required")
			case errors.Is(err, store.ErrNotFound):
				httpx.Err(c, http.StatusNotFound, "profile not found")
			default:
				httpx.Err(c, http.StatusBadGateway, "store error")
			}
			return
		}
		p, err := svc.Profile(c.Request.Context(), sess.UserID)
		if err != nil {
			httpx.Err(c, http.StatusBadGateway, "store error")
			return
		}
		c.JSON(http.StatusOK, p)
	}
}
