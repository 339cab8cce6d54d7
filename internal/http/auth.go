package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/alexsalminskiy/cryptoschool-sub000/internal/gate"
)

type contextKey string

const (
	ctxUserID  contextKey = "userID"
	ctxEmail   contextKey = "email"
	ctxSession contextKey = "session"
)

// WithAuth rejects requests without a valid access token and loads the
// caller's profile into the context as a gate session.
func (s *Server) WithAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, email, ok := s.bearerIdentity(r)
		if !ok {
			WriteError(w, http.StatusUnauthorized, "Authentication failed")
			return
		}
		sess, err := s.loadSession(userID, email)
		if err != nil {
			WriteError(w, http.StatusUnauthorized, "Authentication failed")
			return
		}
		next.ServeHTTP(w, r.WithContext(sessionContext(r.Context(), userID, email, sess)))
	})
}

// OptionalAuth loads a session when a valid token is present and proceeds
// anonymously otherwise.
func (s *Server) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, email, ok := s.bearerIdentity(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		sess, err := s.loadSession(userID, email)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(sessionContext(r.Context(), userID, email, sess)))
	})
}

func sessionContext(ctx context.Context, userID, email string, sess *gate.Session) context.Context {
	ctx = context.WithValue(ctx, ctxUserID, userID)
	ctx = context.WithValue(ctx, ctxEmail, email)
	return context.WithValue(ctx, ctxSession, sess)
}

func (s *Server) bearerIdentity(r *http.Request) (userID, email string, ok bool) {
	auth := r.Header.Get("Authorization")
	if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
		return "", "", false
	}
	return s.tokenIdentity(strings.TrimSpace(strings.TrimPrefix(auth, "Bearer ")))
}

func (s *Server) tokenIdentity(tokenStr string) (userID, email string, ok bool) {
	token, claims, err := s.Tokens.ParseToken(tokenStr)
	if err != nil || !token.Valid || claims["typ"] != "access" {
		return "", "", false
	}
	userID, _ = claims["sub"].(string)
	email, _ = claims["email"].(string)
	return userID, email, userID != ""
}

// loadSession reads the profile row fresh on every request so an approval
// flip takes effect on the next request, without re-authentication. A missing
// row is re-created (the explicit-insert fallback for sign-ups that never got
// a profile).
func (s *Server) loadSession(userID, email string) (*gate.Session, error) {
	row := struct {
		Role     string `db:"role"`
		Approved bool   `db:"approved"`
	}{}
	err := s.DB.Get(&row, `SELECT role, approved FROM profiles WHERE id = $1`, userID)
	if err != nil {
		if _, insErr := s.DB.Exec(`
INSERT INTO profiles (id, email, role, approved, created_at)
VALUES ($1,$2,'user',FALSE,$3)
ON CONFLICT (id) DO NOTHING
`, userID, email, time.Now().UTC()); insErr != nil {
			return nil, insErr
		}
		if err := s.DB.Get(&row, `SELECT role, approved FROM profiles WHERE id = $1`, userID); err != nil {
			return nil, err
		}
	}
	return &gate.Session{UserID: userID, Role: row.Role, Approved: row.Approved}, nil
}

func CurrentUserID(r *http.Request) string {
	if value, ok := r.Context().Value(ctxUserID).(string); ok {
		return value
	}
	return ""
}

func CurrentSession(r *http.Request) *gate.Session {
	if value, ok := r.Context().Value(ctxSession).(*gate.Session); ok {
		return value
	}
	return nil
}

// GateMember applies the shared access policy to member-content reads. The
// page path is the request path without the /api prefix, so the edge filter
// and the page guard evaluate the same input.
func GateMember(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pagePath := strings.TrimPrefix(r.URL.Path, "/api")
		if !applyDecision(w, gate.Decide(CurrentSession(r), pagePath)) {
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GateAdmin applies the shared access policy for the admin area.
func GateAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !applyDecision(w, gate.Decide(CurrentSession(r), "/admin")) {
			return
		}
		next.ServeHTTP(w, r)
	})
}

// applyDecision maps a gate verdict to an HTTP response. Returns true when
// the request may proceed.
func applyDecision(w http.ResponseWriter, decision gate.Decision) bool {
	switch decision.Action {
	case gate.Allow:
		return true
	case gate.RedirectSignIn:
		WriteRedirectError(w, http.StatusUnauthorized, "Authentication required", decision.Location)
	case gate.RedirectPending:
		WriteRedirectError(w, http.StatusForbidden, "Account pending approval", decision.Location)
	default:
		WriteRedirectError(w, http.StatusForbidden, "Not allowed", decision.Location)
	}
	return false
}
