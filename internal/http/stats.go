package httpapi

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/alexsalminskiy/cryptoschool-sub000/internal/services"
)

type StatsHistoryResponse struct {
	Items []services.StatsSample `json:"items"`
}

// Stats returns the current content counters for the admin dashboard.
func (s *Server) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := services.CollectContentStats(s.DB)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusOK, stats)
}

func (s *Server) StatsHistory(w http.ResponseWriter, r *http.Request) {
	limit := parseInt(r.URL.Query().Get("limit"), 120)
	if limit > 500 {
		limit = 500
	}
	items, err := services.LatestStats(s.DB, limit)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusOK, StatsHistoryResponse{Items: items})
}

// StatsSocket streams live samples to admin dashboards. Browsers cannot
// set an Authorization header on websocket upgrades, so the access token
// rides in the query string instead.
func (s *Server) StatsSocket(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("token")
	if query == "" {
		WriteError(w, http.StatusUnauthorized, "Authentication failed")
		return
	}
	userID, email, ok := s.tokenIdentity(query)
	if !ok {
		WriteError(w, http.StatusUnauthorized, "Authentication failed")
		return
	}
	sess, err := s.loadSession(userID, email)
	if err != nil {
		WriteError(w, http.StatusUnauthorized, "Authentication failed")
		return
	}
	if !sess.IsAdmin() {
		WriteError(w, http.StatusForbidden, "Not allowed")
		return
	}
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.StatsHub.Add(conn)
	defer func() {
		s.StatsHub.Remove(conn)
		_ = conn.Close()
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
