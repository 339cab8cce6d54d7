package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
)

type VisitRequest struct {
	Path     *string `json:"path"`
	Referrer *string `json:"referrer"`
}

type VisitCountResponse struct {
	Total int `json:"total"`
}

// TrackVisit records one page view. Fire-and-forget: the page must never
// fail to load because the counter insert did.
func (s *Server) TrackVisit(w http.ResponseWriter, r *http.Request) {
	var req VisitRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	ip := resolveClientIP(r)
	ua := trimString(r.Header.Get("User-Agent"), 512)
	path := trimString(ptrToString(req.Path), 255)
	ref := trimString(ptrToString(req.Referrer), 512)
	_, _ = s.DB.Exec(`
INSERT INTO site_visits (id, ip_address, user_agent, path, referrer, created_at)
VALUES ($1,$2,$3,$4,$5,$6)
`, uuid.NewString(), nullIfEmpty(ip), nullIfEmpty(ua), nullIfEmpty(path), nullIfEmpty(ref), time.Now().UTC())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) VisitCount(w http.ResponseWriter, r *http.Request) {
	var total int
	_ = s.DB.Get(&total, `SELECT count(*) FROM site_visits`)
	WriteJSON(w, http.StatusOK, VisitCountResponse{Total: total})
}
