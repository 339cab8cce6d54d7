package httpapi

import (
	"net/http"
	"strings"

	"github.com/alexsalminskiy/cryptoschool-sub000/internal/gate"
)

type AccessResponse struct {
	Allowed  bool   `json:"allowed"`
	Redirect string `json:"redirect,omitempty"`
}

type ApprovalResponse struct {
	Approved bool   `json:"approved"`
	Role     string `json:"role"`
}

func (s *Server) Me(w http.ResponseWriter, r *http.Request) {
	profile, err := s.buildProfileDTO(CurrentUserID(r))
	if err != nil {
		WriteError(w, http.StatusNotFound, "User not found")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]*ProfileDTO{"user": profile})
}

// AccessCheck is the page-level guard endpoint. It evaluates the same policy
// function the router middleware uses, so the two layers cannot disagree.
func (s *Server) AccessCheck(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimSpace(r.URL.Query().Get("path"))
	if path == "" || !strings.HasPrefix(path, "/") {
		WriteError(w, http.StatusBadRequest, "A path query parameter is required")
		return
	}
	decision := gate.Decide(CurrentSession(r), path)
	WriteJSON(w, http.StatusOK, AccessResponse{
		Allowed:  decision.Action == gate.Allow,
		Redirect: decision.Location,
	})
}

// ApprovalStatus is the poll target for the pending-approval holding page.
// The session is loaded fresh per request, so a flip shows up on the next poll.
func (s *Server) ApprovalStatus(w http.ResponseWriter, r *http.Request) {
	sess := CurrentSession(r)
	if sess == nil {
		WriteError(w, http.StatusUnauthorized, "Authentication failed")
		return
	}
	WriteJSON(w, http.StatusOK, ApprovalResponse{
		Approved: sess.IsApproved(),
		Role:     sess.Role,
	})
}
