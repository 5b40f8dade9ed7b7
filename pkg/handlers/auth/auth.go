// Package auth holds registration and OTP login handlers. Session state lives
// in the identity cache; these handlers never mint credentials themselves.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/andika/rekber-backend/pkg/api"
	"github.com/andika/rekber-backend/pkg/identity"
	"github.com/andika/rekber-backend/pkg/mapping"
	"github.com/andika/rekber-backend/pkg/models"
	"github.com/andika/rekber-backend/pkg/notify"
	"github.com/andika/rekber-backend/pkg/storage"
)

// AuthHandler holds the dependencies for registration and login handlers.
type AuthHandler struct {
	Users    storage.UserStore
	Sessions *identity.SessionCache
	Notifier notify.Notifier
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users storage.UserStore, sessions *identity.SessionCache, notifier notify.Notifier) *AuthHandler {
	return &AuthHandler{Users: users, Sessions: sessions, Notifier: notifier}
}

// Register creates a new user account.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var newUser api.NewUser
	if err := json.NewDecoder(r.Body).Decode(&newUser); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if _, err := h.Users.GetUserByEmail(r.Context(), string(newUser.Email)); err == nil {
		http.Error(w, "Email already registered", http.StatusConflict)
		return
	} else if !errors.Is(err, storage.ErrNotFound) {
		http.Error(w, fmt.Sprintf("Failed to check email: %v", err), http.StatusInternalServerError)
		return
	}

	user := mapping.ToDomainNewUser(&newUser)
	user.Id = uuid.New().String()
	user.Role = models.RoleUser
	user.CreatedAt = time.Now()

	if err := h.Users.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, storage.ErrUserExists) {
			http.Error(w, "Email already registered", http.StatusConflict)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to create user: %v", err), http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusCreated, mapping.ToApiUser(user))
}

// RequestOTP issues a short-lived login code for a registered email. The code
// is pushed to the user's device, never returned in the response.
func (h *AuthHandler) RequestOTP(w http.ResponseWriter, r *http.Request) {
	var req api.OTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	user, err := h.Users.GetUserByEmail(r.Context(), string(req.Email))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Email not registered", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to resolve email: %v", err), http.StatusInternalServerError)
		return
	}

	code, err := h.Sessions.IssueOTP(r.Context(), user.Email)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to issue code: %v", err), http.StatusInternalServerError)
		return
	}

	if err := h.Notifier.Send(r.Context(), user.DeviceToken, "Your login code",
		fmt.Sprintf("Use code %s to sign in", code), map[string]string{"kind": "otp"}); err != nil {
		slog.Error("failed to deliver login code", "user_id", user.Id, "error", err)
	}

	w.WriteHeader(http.StatusNoContent)
}

// VerifyOTP exchanges a login code for a session token.
func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req api.OTPVerification
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	user, err := h.Users.GetUserByEmail(r.Context(), string(req.Email))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Email not registered", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to resolve email: %v", err), http.StatusInternalServerError)
		return
	}

	token, err := h.Sessions.VerifyOTP(r.Context(), user.Email, req.Code, user.Id)
	if err != nil {
		if errors.Is(err, identity.ErrOTPMismatch) {
			http.Error(w, "Invalid or expired code", http.StatusUnauthorized)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to verify code: %v", err), http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, api.Session{Token: token})
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
