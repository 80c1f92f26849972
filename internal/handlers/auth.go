package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/fullstack-app/apiserver/internal/services"
	"github.com/fullstack-app/apiserver/internal/store"
	"github.com/fullstack-app/apiserver/internal/token"
	"github.com/go-chi/chi/v5"
)

const authSuccessMessage = "Authentication successful"

// AuthHandler provides the register, login, and current-user endpoints.
type AuthHandler struct {
	authService *services.AuthService
	secret      []byte
}

// NewAuthHandler constructs an AuthHandler with the provided dependencies.
func NewAuthHandler(authService *services.AuthService, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		secret:      []byte(jwtSecret),
	}
}

// AuthRouter registers the user routes on the given router.
func AuthRouter(r chi.Router, authService *services.AuthService, jwtSecret string) {
	handler := NewAuthHandler(authService, jwtSecret)

	r.Post("/users/register", handler.Register)
	r.Post("/users/login", handler.Login)
	r.With(handler.RequireAuth).Post("/user", handler.CurrentUser)
}

// RequireAuth verifies the bearer token and injects the authenticated
// user's id into the request context. Missing, malformed, expired, and
// badly signed tokens all produce the same bare 401.
func (h *AuthHandler) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, err := bearerToken(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		claims, err := token.Verify(tokenString, h.secret)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		if claims.ID == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		ctx := context.WithValue(r.Context(), contextSubjectKey, claims.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Register creates a new user account and returns a session token.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, `"email" is required`)
		return
	}
	if req.Password == "" {
		writeError(w, http.StatusBadRequest, `"password" is required`)
		return
	}

	tok, err := h.authService.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrValidation):
			writeError(w, http.StatusBadRequest, fmt.Sprintf("%q is not a valid email address", req.Email))
		case errors.Is(err, store.ErrConflict):
			writeError(w, http.StatusBadRequest, fmt.Sprintf("A user with email %q is already registered", req.Email))
		default:
			log.Printf("register %q: %v", req.Email, err)
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{Message: authSuccessMessage, Token: tok})
}

// Login verifies credentials and returns a session token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "missing credentials")
		return
	}

	tok, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "Authentication failed. User not found.")
		case errors.Is(err, services.ErrWrongPassword):
			writeError(w, http.StatusUnauthorized, "Authentication failed. Wrong password.")
		case errors.Is(err, store.ErrValidation):
			writeError(w, http.StatusBadRequest, fmt.Sprintf("%q is not a valid email address", req.Email))
		default:
			log.Printf("login %q: %v", req.Email, err)
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{Message: authSuccessMessage, Token: tok})
}

// CurrentUser returns the public view of the authenticated user.
func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	id, err := subjectFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.authService.CurrentUser(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		log.Printf("current user %q: %v", id, err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, UserResponse{User: user})
}

func bearerToken(r *http.Request) (string, error) {
	auth := strings.TrimSpace(r.Header.Get("Authorization"))
	if auth == "" {
		return "", errors.New("missing authorization")
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization")
	}
	tok := strings.TrimSpace(parts[1])
	if tok == "" {
		return "", errors.New("invalid authorization")
	}
	return tok, nil
}
