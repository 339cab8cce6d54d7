package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/alexsalminskiy/cryptoschool-sub000/internal/markup"
	"github.com/alexsalminskiy/cryptoschool-sub000/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type articleRow struct {
	ID        string    `db:"id"`
	Title     string    `db:"title"`
	Slug      string    `db:"slug"`
	Category  string    `db:"category"`
	CoverURL  *string   `db:"cover_image_url"`
	ContentMD string    `db:"content_md"`
	Status    string    `db:"status"`
	Views     int64     `db:"views"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (row articleRow) card() ArticleCardDTO {
	return ArticleCardDTO{
		ID:            row.ID,
		Title:         row.Title,
		Slug:          row.Slug,
		Category:      row.Category,
		CoverImageURL: row.CoverURL,
		Status:        row.Status,
		Views:         row.Views,
		CreatedAt:     row.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (s *Server) ListArticles(w http.ResponseWriter, r *http.Request) {
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	search := services.CleanSearchTerm(r.URL.Query().Get("search"))
	limit := parseInt(r.URL.Query().Get("limit"), 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	where := "WHERE status = 'published'"
	args := []interface{}{}
	if category != "" {
		args = append(args, category)
		where += " AND category = $1"
	}
	if search != "" {
		args = append(args, "%"+strings.ToLower(search)+"%")
		placeholder := "$" + itoa(len(args))
		where += " AND (lower(title) LIKE " + placeholder + " OR lower(content_md) LIKE " + placeholder + ")"
	}
	args = append(args, limit)
	query := `
SELECT id, title, slug, category, cover_image_url, content_md, status, views, created_at, updated_at
FROM articles
` + where + `
ORDER BY created_at DESC
LIMIT $` + itoa(len(args))

	rows := []articleRow{}
	if err := s.DB.Select(&rows, query, args...); err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	items := make([]ArticleCardDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.card())
	}
	WriteJSON(w, http.StatusOK, ArticleListResponse{Items: items, Total: len(items)})
}

// PublicArticle serves one published article and counts the view. The
// increment runs store-side so concurrent readers cannot lose counts. The
// optional lang/sourceLang pair swaps in a translated variant of title and
// body before the markup is rendered.
func (s *Server) PublicArticle(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	var row articleRow
	if err := s.DB.Get(&row, `
SELECT id, title, slug, category, cover_image_url, content_md, status, views, created_at, updated_at
FROM articles
WHERE slug = $1 AND status = 'published'
`, slug); err != nil {
		WriteError(w, http.StatusNotFound, "Article not found")
		return
	}
	var views int64
	if err := s.DB.Get(&views, `UPDATE articles SET views = views + 1 WHERE id = $1 RETURNING views`, row.ID); err == nil {
		row.Views = views
	}

	title, content := row.Title, row.ContentMD
	targetLang := strings.TrimSpace(r.URL.Query().Get("lang"))
	sourceLang := strings.TrimSpace(r.URL.Query().Get("sourceLang"))
	if targetLang != "" && sourceLang != "" {
		title = s.Translator.Translate(r.Context(), title, targetLang, sourceLang)
		content = s.Translator.Translate(r.Context(), content, targetLang, sourceLang)
	}

	faq, body := markup.ExtractFAQ(content)
	dto := ArticleDetailDTO{
		ArticleCardDTO: row.card(),
		ContentMD:      content,
		ContentHTML:    markup.Render(body),
		FAQ:            faq,
	}
	dto.Title = title
	WriteJSON(w, http.StatusOK, dto)
}

func (s *Server) ArticleForEdit(w http.ResponseWriter, r *http.Request) {
	articleID := chi.URLParam(r, "articleId")
	var row articleRow
	if err := s.DB.Get(&row, `
SELECT id, title, slug, category, cover_image_url, content_md, status, views, created_at, updated_at
FROM articles
WHERE id = $1
`, articleID); err != nil {
		WriteError(w, http.StatusNotFound, "Article not found")
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	WriteJSON(w, http.StatusOK, ArticleEditDTO{
		ArticleCardDTO: row.card(),
		ContentMD:      row.ContentMD,
		UpdatedAt:      row.UpdatedAt.UTC().Format(time.RFC3339),
	})
}

func (s *Server) CreateArticle(w http.ResponseWriter, r *http.Request) {
	var req ArticleCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	title, err := services.NormalizeRequired(req.Title, "Title is required")
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	category := strings.ToLower(strings.TrimSpace(req.Category))
	if !services.Categories[category] {
		WriteError(w, http.StatusBadRequest, "Unknown category")
		return
	}
	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		slug = services.Slugify(title)
	}
	status := strings.ToLower(strings.TrimSpace(req.Status))
	if status == "" {
		status = services.StatusDraft
	}
	if !services.ValidStatus(status) {
		WriteError(w, http.StatusBadRequest, "Unknown status")
		return
	}
	articleID := uuid.NewString()
	now := time.Now().UTC()
	_, err = s.DB.Exec(`
INSERT INTO articles (id, title, slug, category, cover_image_url, content_md, status, views, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,0,$8,$8)
`, articleID, title, slug, category, req.CoverImageURL, req.ContentMD, status, now)
	if err != nil {
		// Surface the store's uniqueness verdict; the slug is the public key.
		if services.IsUniqueViolation(err) {
			WriteError(w, http.StatusConflict, err.Error())
			return
		}
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	var row articleRow
	if err := s.DB.Get(&row, `
SELECT id, title, slug, category, cover_image_url, content_md, status, views, created_at, updated_at
FROM articles WHERE id = $1
`, articleID); err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusOK, ArticleEditDTO{
		ArticleCardDTO: row.card(),
		ContentMD:      row.ContentMD,
		UpdatedAt:      row.UpdatedAt.UTC().Format(time.RFC3339),
	})
}

func (s *Server) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	var req ArticleUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if strings.TrimSpace(req.ID) == "" {
		WriteError(w, http.StatusBadRequest, "Article id is required")
		return
	}
	if req.Category != nil && !services.Categories[strings.ToLower(strings.TrimSpace(*req.Category))] {
		WriteError(w, http.StatusBadRequest, "Unknown category")
		return
	}
	if req.Status != nil && !services.ValidStatus(strings.ToLower(strings.TrimSpace(*req.Status))) {
		WriteError(w, http.StatusBadRequest, "Unknown status")
		return
	}
	result, err := s.DB.Exec(`
UPDATE articles
SET title = COALESCE($2, title),
    slug = COALESCE($3, slug),
    category = COALESCE(lower($4), category),
    cover_image_url = COALESCE($5, cover_image_url),
    content_md = COALESCE($6, content_md),
    status = COALESCE(lower($7), status),
    updated_at = $8
WHERE id = $1
`, req.ID, req.Title, req.Slug, req.Category, req.CoverImageURL, req.ContentMD, req.Status, time.Now().UTC())
	if err != nil {
		if services.IsUniqueViolation(err) {
			WriteError(w, http.StatusConflict, err.Error())
			return
		}
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		WriteError(w, http.StatusNotFound, "Article not found")
		return
	}
	var row articleRow
	if err := s.DB.Get(&row, `
SELECT id, title, slug, category, cover_image_url, content_md, status, views, created_at, updated_at
FROM articles WHERE id = $1
`, req.ID); err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusOK, ArticleEditDTO{
		ArticleCardDTO: row.card(),
		ContentMD:      row.ContentMD,
		UpdatedAt:      row.UpdatedAt.UTC().Format(time.RFC3339),
	})
}

func (s *Server) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	articleID := strings.TrimSpace(r.URL.Query().Get("id"))
	if articleID == "" {
		WriteError(w, http.StatusBadRequest, "Article id is required")
		return
	}
	result, err := s.DB.Exec(`DELETE FROM articles WHERE id = $1`, articleID)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		WriteError(w, http.StatusNotFound, "Article not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
