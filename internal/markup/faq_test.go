package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractFAQ(t *testing.T) {
	src := "intro\n[FAQ]\n[Q]What is BTC?[/Q]\n[A]A cryptocurrency.[/A]\n[Q]Is it safe?[/Q]\n[A]Depends\non your keys.[/A]\n[/FAQ]\noutro"
	items, body := ExtractFAQ(src)
	require.Len(t, items, 2)
	assert.Equal(t, "What is BTC?", items[0].Question)
	assert.Equal(t, "A cryptocurrency.", items[0].Answer)
	assert.Equal(t, "Is it safe?", items[1].Question)
	assert.Equal(t, "Depends\non your keys.", items[1].Answer)
	assert.NotContains(t, body, "[FAQ]")
	assert.NotContains(t, body, "[Q]")
	assert.Contains(t, body, "intro")
	assert.Contains(t, body, "outro")
}

func TestExtractFAQCaseInsensitive(t *testing.T) {
	src := "[faq][q]Q1[/q][a]A1[/a][/FAQ]"
	items, body := ExtractFAQ(src)
	require.Len(t, items, 1)
	assert.Equal(t, "Q1", items[0].Question)
	assert.Equal(t, "", body)
}

func TestExtractFAQAbsent(t *testing.T) {
	src := "# Title\n\nplain body with *markers*"
	items, body := ExtractFAQ(src)
	assert.Empty(t, items)
	assert.Equal(t, src, body)
	// Formatter output is unchanged by the extraction pass.
	assert.Equal(t, Render(src), Render(body))
}

func TestExtractFAQMalformed(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unterminated block", "[FAQ][Q]q[/Q][A]a[/A]"},
		{"no pairs", "[FAQ]nothing structured[/FAQ]"},
		{"question without answer", "[FAQ][Q]q[/Q][/FAQ]"},
		{"unterminated answer", "[FAQ][Q]q[/Q][A]a[/FAQ]"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			items, _ := ExtractFAQ(tc.src)
			assert.Empty(t, items)
		})
	}
}

func TestExtractFAQUnterminatedLeavesBody(t *testing.T) {
	src := "before [FAQ][Q]q[/Q]"
	items, body := ExtractFAQ(src)
	assert.Empty(t, items)
	assert.Equal(t, src, body)
}

func TestExtractFAQOrderPreserved(t *testing.T) {
	src := "[FAQ][Q]first[/Q][A]1[/A][Q]second[/Q][A]2[/A][Q]third[/Q][A]3[/A][/FAQ]"
	items, _ := ExtractFAQ(src)
	require.Len(t, items, 3)
	assert.Equal(t, []string{"first", "second", "third"}, []string{items[0].Question, items[1].Question, items[2].Question})
}
