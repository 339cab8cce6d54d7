package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"
)

const translateSystemPrompt = "You are a translator for an educational crypto platform. " +
	"Translate the user's text from %s to %s. Keep every markup construct exactly as written: " +
	"#/##/###/#### headings, **bold**, *italic*, ~~strikethrough~~, `code`, [text](url) links, " +
	"![alt](url) images, <span>/<u> tags with their attributes, [FAQ]/[Q]/[A] blocks and pipe tables. " +
	"Translate only the prose. Reply with the translated text and nothing else."

// Translator produces best-effort translations of article text through an
// OpenAI-compatible chat completion endpoint. Failures never propagate: the
// caller always gets text back, translated or original.
type Translator struct {
	Endpoint string
	APIKey   string
	Model    string
	Client   *http.Client

	mu   sync.Mutex
	memo map[string]string
}

func NewTranslator(endpoint, apiKey, model string) *Translator {
	return &Translator{
		Endpoint: endpoint,
		APIKey:   apiKey,
		Model:    model,
		Client:   &http.Client{Timeout: 60 * time.Second},
		memo:     map[string]string{},
	}
}

// Translate returns text rendered in targetLang. Same-language and empty
// inputs short-circuit without a network call. Results are memoized for the
// lifetime of the process; there is no eviction.
func (t *Translator) Translate(ctx context.Context, text, targetLang, sourceLang string) string {
	if strings.TrimSpace(text) == "" || strings.EqualFold(targetLang, sourceLang) {
		return text
	}
	key := memoKey(sourceLang, targetLang, text)
	t.mu.Lock()
	if cached, ok := t.memo[key]; ok {
		t.mu.Unlock()
		return cached
	}
	t.mu.Unlock()

	translated, err := t.complete(ctx, text, targetLang, sourceLang)
	if err != nil {
		log.Printf("translate %s->%s failed: %v", sourceLang, targetLang, err)
		return text
	}
	t.mu.Lock()
	t.memo[key] = translated
	t.mu.Unlock()
	return translated
}

// Reset clears the memo.
func (t *Translator) Reset() {
	t.mu.Lock()
	t.memo = map[string]string{}
	t.mu.Unlock()
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (t *Translator) complete(ctx context.Context, text, targetLang, sourceLang string) (string, error) {
	payload := chatRequest{
		Model: t.Model,
		Messages: []chatMessage{
			{Role: "system", Content: fmt.Sprintf(translateSystemPrompt, sourceLang, targetLang)},
			{Role: "user", Content: text},
		},
		Temperature: 0.3,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if t.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+t.APIKey)
	}
	resp, err := t.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion status %d", resp.StatusCode)
	}
	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("empty completion")
	}
	return parsed.Choices[0].Message.Content, nil
}

// memoKey is (source, target, first 100 characters of text).
func memoKey(sourceLang, targetLang, text string) string {
	runes := []rune(text)
	if len(runes) > 100 {
		runes = runes[:100]
	}
	return sourceLang + "|" + targetLang + "|" + string(runes)
}
