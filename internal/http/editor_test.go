package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexsalminskiy/cryptoschool-sub000/internal/editor"
)

func TestEditorApplyBold(t *testing.T) {
	s, _ := newTestServer(t)

	body := `{"buffer":{"content":"hello world","selectionStart":0,"selectionEnd":5},"command":"bold"}`
	req := httptest.NewRequest(http.MethodPost, "/api/editor/apply", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.EditorApply(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var out editor.Buffer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "**hello** world", out.Text)
	assert.Equal(t, 2, out.SelStart)
	assert.Equal(t, 7, out.SelEnd)
}

func TestEditorApplyLink(t *testing.T) {
	s, _ := newTestServer(t)

	body := `{"buffer":{"content":"read this","selectionStart":5,"selectionEnd":9},"command":"link","args":{"url":"https://example.com"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/editor/apply", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.EditorApply(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var out editor.Buffer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Contains(t, out.Text, "[this](https://example.com)")
}

func TestEditorApplyUnknownCommand(t *testing.T) {
	s, _ := newTestServer(t)

	body := `{"buffer":{"content":"x","selectionStart":0,"selectionEnd":0},"command":"blink"}`
	req := httptest.NewRequest(http.MethodPost, "/api/editor/apply", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.EditorApply(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Message, "blink")
}

func TestEditorApplyBadColor(t *testing.T) {
	s, _ := newTestServer(t)

	body := `{"buffer":{"content":"warn","selectionStart":0,"selectionEnd":4},"command":"color","args":{"color":"#123456"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/editor/apply", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.EditorApply(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTranslateRequiresTargetLang(t *testing.T) {
	s, _ := newTestServer(t)

	body := `{"text":"Основы биткоина"}`
	req := httptest.NewRequest(http.MethodPost, "/api/translate", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Translate(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTranslateFallsBackToOriginal(t *testing.T) {
	// The test server's translator points at a closed port, so the bridge
	// fails and the original text must come back.
	s, _ := newTestServer(t)

	body := `{"text":"Основы биткоина","targetLang":"en","sourceLang":"ru"}`
	req := httptest.NewRequest(http.MethodPost, "/api/translate", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Translate(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp TranslateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Основы биткоина", resp.TranslatedText)
}

func TestTranslateSameLanguagePassthrough(t *testing.T) {
	s, _ := newTestServer(t)

	body := `{"text":"hello","targetLang":"en","sourceLang":"en"}`
	req := httptest.NewRequest(http.MethodPost, "/api/translate", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Translate(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp TranslateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "hello", resp.TranslatedText)
}
