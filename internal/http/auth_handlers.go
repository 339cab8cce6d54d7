package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Email           string  `json:"email"`
	Password        string  `json:"password"`
	ConfirmPassword *string `json:"confirmPassword"`
	FirstName       *string `json:"firstName"`
	LastName        *string `json:"lastName"`
	MiddleName      *string `json:"middleName"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	ExpiresAt    int64       `json:"expiresAt"`
	User         *ProfileDTO `json:"user"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if req.ConfirmPassword != nil && req.Password != *req.ConfirmPassword {
		WriteError(w, http.StatusBadRequest, "Password confirmation does not match")
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || strings.TrimSpace(req.Password) == "" {
		WriteError(w, http.StatusBadRequest, "Email and password are required")
		return
	}
	if len(req.Password) < 8 {
		WriteError(w, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}
	var exists bool
	if err := s.DB.Get(&exists, `SELECT EXISTS(SELECT 1 FROM users WHERE lower(email) = $1)`, email); err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if exists {
		WriteError(w, http.StatusBadRequest, "User already exists")
		return
	}
	hash, err := s.Tokens.HashPassword(req.Password)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	userID := uuid.NewString()
	now := time.Now().UTC()
	_, err = s.DB.Exec(`
INSERT INTO users (id, email, password_hash, created_at, updated_at)
VALUES ($1,$2,$3,$4,$4)
`, userID, email, hash, now)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	// New accounts start unapproved; an admin flips the flag later.
	_, _ = s.DB.Exec(`
INSERT INTO profiles (id, email, first_name, last_name, middle_name, role, approved, created_at)
VALUES ($1,$2,$3,$4,$5,'user',FALSE,$6)
`, userID, email, req.FirstName, req.LastName, req.MiddleName, now)
	WriteJSON(w, http.StatusOK, map[string]string{"userId": userID, "email": email})
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || strings.TrimSpace(req.Password) == "" {
		WriteError(w, http.StatusBadRequest, "Authentication failed")
		return
	}
	row := struct {
		ID           string `db:"id"`
		PasswordHash string `db:"password_hash"`
	}{}
	if err := s.DB.Get(&row, `SELECT id, password_hash FROM users WHERE lower(email) = $1`, email); err != nil {
		WriteError(w, http.StatusUnauthorized, "Authentication failed")
		return
	}
	if !s.Tokens.VerifyPassword(req.Password, row.PasswordHash) {
		WriteError(w, http.StatusUnauthorized, "Authentication failed")
		return
	}
	sess, err := s.loadSession(row.ID, email)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	s.writeTokenResponse(w, row.ID, email, sess.Role, sess.Approved)
}

func (s *Server) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	token, claims, err := s.Tokens.ParseToken(strings.TrimSpace(req.RefreshToken))
	if err != nil || !token.Valid || claims["typ"] != "refresh" {
		WriteError(w, http.StatusUnauthorized, "Authentication failed")
		return
	}
	userID, _ := claims["sub"].(string)
	var email string
	if err := s.DB.Get(&email, `SELECT email FROM users WHERE id = $1`, userID); err != nil {
		WriteError(w, http.StatusUnauthorized, "Authentication failed")
		return
	}
	sess, err := s.loadSession(userID, email)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	s.writeTokenResponse(w, userID, email, sess.Role, sess.Approved)
}

// Logout is a no-op on the server; tokens are stateless and simply expire.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeTokenResponse(w http.ResponseWriter, userID, email, role string, approved bool) {
	access, expiresAt, err := s.Tokens.CreateAccessToken(userID, email, role, approved)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	refresh, err := s.Tokens.CreateRefreshToken(userID)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	profile, err := s.buildProfileDTO(userID)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusOK, TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    expiresAt,
		User:         profile,
	})
}
