package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/render"
	"github.com/nikhilmandava/authgate/internal/services"
	"github.com/nikhilmandava/authgate/internal/validation"
)

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "session"

// credentials is the request body for sign-up and login. Password is a
// pointer so a payload that omits the key is distinguishable from one that
// sends an empty string.
type credentials struct {
	Email    string  `json:"email"`
	Password *string `json:"password"`
}

// AuthHandler is the HTTP boundary around AuthService. It decodes request
// bodies, maps service errors to status codes and moves the session token
// in and out of the cookie; it performs no authentication logic itself.
type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// UserSignUp registers a new account. No session cookie is set; the caller
// logs in separately.
func (h *AuthHandler) UserSignUp(res http.ResponseWriter, req *http.Request) {
	var creds credentials
	if err := json.NewDecoder(req.Body).Decode(&creds); err != nil {
		log.Printf("sign-up: failed to decode request body: %v", err)
		render.Status(req, http.StatusInternalServerError)
		render.JSON(res, req, "Internal server error")
		return
	}

	if err := h.auth.SignUp(req.Context(), creds.Email, creds.Password); err != nil {
		h.renderAuthError(res, req, "sign-up", err)
		return
	}
	render.JSON(res, req, "You are signed up. Please log in.")
}

// UserLogin authenticates the credentials and sets the session cookie.
func (h *AuthHandler) UserLogin(res http.ResponseWriter, req *http.Request) {
	var creds credentials
	if err := json.NewDecoder(req.Body).Decode(&creds); err != nil {
		log.Printf("login: failed to decode request body: %v", err)
		render.Status(req, http.StatusInternalServerError)
		render.JSON(res, req, "Internal server error")
		return
	}

	session, err := h.auth.LogIn(req.Context(), creds.Email, creds.Password)
	if err != nil {
		h.renderAuthError(res, req, "login", err)
		return
	}

	http.SetCookie(res, &http.Cookie{
		Name:     SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	render.JSON(res, req, "You are logged in!")
}

// UserLogout revokes the presented session and clears the cookie.
func (h *AuthHandler) UserLogout(res http.ResponseWriter, req *http.Request) {
	c, err := req.Cookie(SessionCookieName)
	if err != nil || c.Value == "" {
		render.Status(req, http.StatusBadRequest)
		render.JSON(res, req, "Please log in first.")
		return
	}

	revoked, err := h.auth.Logout(req.Context(), c.Value)
	if err != nil {
		log.Printf("logout: %v", err)
		render.Status(req, http.StatusInternalServerError)
		render.JSON(res, req, "Internal server error")
		return
	}
	if !revoked {
		render.Status(req, http.StatusBadRequest)
		render.JSON(res, req, "Please log in first.")
		return
	}

	http.SetCookie(res, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	render.JSON(res, req, "You are logged out.")
}

// renderAuthError maps service errors onto the two client-visible classes.
// Everything that is not a known client error is a 500, so operational
// failures never masquerade as bad requests.
func (h *AuthHandler) renderAuthError(res http.ResponseWriter, req *http.Request, op string, err error) {
	var msg string
	switch {
	case errors.Is(err, validation.ErrInvalidEmail):
		msg = "Please provide a valid email."
	case errors.Is(err, validation.ErrMissingPassword):
		msg = "Password cannot be blank."
	case errors.Is(err, validation.ErrPasswordTooLong):
		msg = "Password is too long."
	case errors.Is(err, services.ErrInvalidCredentials):
		msg = "Invalid email or password."
	case errors.Is(err, services.ErrEmailExists):
		msg = "Unable to sign up with the provided details."
	case errors.Is(err, services.ErrInvalidSession):
		msg = "Please log in first."
	default:
		log.Printf("%s: %v", op, err)
		render.Status(req, http.StatusInternalServerError)
		render.JSON(res, req, "Internal server error")
		return
	}

	log.Printf("%s rejected: %v", op, err)
	render.Status(req, http.StatusBadRequest)
	render.JSON(res, req, msg)
}
