package httpapi

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"
)

type ProfileDTO struct {
	ID         string     `json:"id"`
	Email      string     `json:"email"`
	FirstName  *string    `json:"firstName,omitempty"`
	LastName   *string    `json:"lastName,omitempty"`
	MiddleName *string    `json:"middleName,omitempty"`
	Role       string     `json:"role"`
	Approved   bool       `json:"approved"`
	ApprovedAt *time.Time `json:"approvedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

type ProfileListResponse struct {
	Items []ProfileDTO `json:"items"`
	Total int          `json:"total"`
}

// ProfileUpdateRequest mutates the approval gate and role. Nil fields are
// left unchanged.
type ProfileUpdateRequest struct {
	ID         string  `json:"id"`
	Approved   *bool   `json:"approved"`
	Role       *string `json:"role"`
	FirstName  *string `json:"firstName"`
	LastName   *string `json:"lastName"`
	MiddleName *string `json:"middleName"`
}

type profileRow struct {
	ID         string     `db:"id"`
	Email      string     `db:"email"`
	FirstName  *string    `db:"first_name"`
	LastName   *string    `db:"last_name"`
	MiddleName *string    `db:"middle_name"`
	Role       string     `db:"role"`
	Approved   bool       `db:"approved"`
	ApprovedAt *time.Time `db:"approved_at"`
	CreatedAt  time.Time  `db:"created_at"`
}

func (row profileRow) dto() ProfileDTO {
	return ProfileDTO{
		ID:         row.ID,
		Email:      row.Email,
		FirstName:  row.FirstName,
		LastName:   row.LastName,
		MiddleName: row.MiddleName,
		Role:       row.Role,
		Approved:   row.Approved,
		ApprovedAt: row.ApprovedAt,
		CreatedAt:  row.CreatedAt,
	}
}

func (s *Server) buildProfileDTO(userID string) (*ProfileDTO, error) {
	var row profileRow
	if err := s.DB.Get(&row, `
SELECT id, email, first_name, last_name, middle_name, role, approved, approved_at, created_at
FROM profiles WHERE id = $1
`, userID); err != nil {
		return nil, err
	}
	dto := row.dto()
	return &dto, nil
}

func (s *Server) ListProfiles(w http.ResponseWriter, r *http.Request) {
	search := strings.TrimSpace(r.URL.Query().Get("search"))
	args := []interface{}{}
	where := ""
	if search != "" {
		where = "WHERE lower(email) LIKE $1"
		args = append(args, "%"+strings.ToLower(search)+"%")
	}
	rows := []profileRow{}
	if err := s.DB.Select(&rows, `
SELECT id, email, first_name, last_name, middle_name, role, approved, approved_at, created_at
FROM profiles
`+where+`
ORDER BY created_at DESC
`, args...); err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	items := make([]ProfileDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.dto())
	}
	WriteJSON(w, http.StatusOK, ProfileListResponse{Items: items, Total: len(items)})
}

func (s *Server) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req ProfileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if strings.TrimSpace(req.ID) == "" {
		WriteError(w, http.StatusBadRequest, "User id is required")
		return
	}
	if req.Role != nil {
		role := strings.ToLower(strings.TrimSpace(*req.Role))
		if role != "user" && role != "admin" {
			WriteError(w, http.StatusBadRequest, "Unknown role")
			return
		}
		*req.Role = role
	}
	now := time.Now().UTC()
	// Approving stamps approved_at; revoking clears it.
	var approvedAt interface{}
	if req.Approved != nil {
		if *req.Approved {
			approvedAt = now
		} else {
			approvedAt = nil
		}
	}
	var result sql.Result
	var err error
	if req.Approved != nil {
		result, err = s.DB.Exec(`
UPDATE profiles
SET approved = $2,
    approved_at = $3,
    role = COALESCE($4, role),
    first_name = COALESCE($5, first_name),
    last_name = COALESCE($6, last_name),
    middle_name = COALESCE($7, middle_name)
WHERE id = $1
`, req.ID, *req.Approved, approvedAt, req.Role, req.FirstName, req.LastName, req.MiddleName)
	} else {
		result, err = s.DB.Exec(`
UPDATE profiles
SET role = COALESCE($2, role),
    first_name = COALESCE($3, first_name),
    last_name = COALESCE($4, last_name),
    middle_name = COALESCE($5, middle_name)
WHERE id = $1
`, req.ID, req.Role, req.FirstName, req.LastName, req.MiddleName)
	}
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		WriteError(w, http.StatusNotFound, "User not found")
		return
	}
	profile, err := s.buildProfileDTO(req.ID)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusOK, profile)
}

// DeleteProfile removes the profile row and then, best-effort, the auth row.
// A failure on the second step is logged and swallowed: the profile is gone,
// the orphaned principal is a documented possible inconsistency.
func (s *Server) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.URL.Query().Get("id"))
	if userID == "" {
		WriteError(w, http.StatusBadRequest, "User id is required")
		return
	}
	result, err := s.DB.Exec(`DELETE FROM profiles WHERE id = $1`, userID)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		WriteError(w, http.StatusNotFound, "User not found")
		return
	}
	if _, err := s.DB.Exec(`DELETE FROM users WHERE id = $1`, userID); err != nil {
		log.Printf("delete auth principal %s: %v", userID, err)
	}
	w.WriteHeader(http.StatusNoContent)
}
