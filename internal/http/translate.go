package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
)

// TranslateRequest asks for a piece of text in another language.
type TranslateRequest struct {
	Text       string `json:"text"`
	TargetLang string `json:"targetLang"`
	SourceLang string `json:"sourceLang"`
}

// TranslateResponse carries the translated text. On translator failure
// the original text is returned unchanged, never an error page.
type TranslateResponse struct {
	TranslatedText string `json:"translatedText"`
}

// Translate renders text into the requested language via the
// translation bridge. Results are memoised inside the translator.
func (s *Server) Translate(w http.ResponseWriter, r *http.Request) {
	var req TranslateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	target := strings.TrimSpace(req.TargetLang)
	if target == "" {
		WriteError(w, http.StatusBadRequest, "targetLang is required")
		return
	}
	source := strings.TrimSpace(req.SourceLang)
	if source == "" {
		source = "ru"
	}

	out := s.Translator.Translate(r.Context(), req.Text, target, source)
	WriteJSON(w, http.StatusOK, TranslateResponse{TranslatedText: out})
}
