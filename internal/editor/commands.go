package editor

import (
	"errors"
	"strconv"
	"strings"
)

// ColorPalette is the fixed set of hex colors offered by the color picker.
var ColorPalette = []string{
	"#f44336", "#ff9800", "#ffeb3b", "#4caf50",
	"#2196f3", "#9c27b0", "#e91e63", "#607d8b",
}

// FontSizes is the fixed set of pixel sizes offered by the size picker.
var FontSizes = []int{12, 14, 16, 18, 20, 24, 28, 32}

// QA is one question/answer entry of the FAQ dialog.
type QA struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

var (
	ErrUnknownCommand = errors.New("unknown editor command")
	ErrBadArgument    = errors.New("invalid command argument")
)

func (b Buffer) Bold() Buffer          { return b.WrapSelection("**", "**") }
func (b Buffer) Italic() Buffer        { return b.WrapSelection("*", "*") }
func (b Buffer) Underline() Buffer     { return b.WrapSelection("<u>", "</u>") }
func (b Buffer) Strikethrough() Buffer { return b.WrapSelection("~~", "~~") }
func (b Buffer) InlineCode() Buffer    { return b.WrapSelection("`", "`") }

func (b Buffer) Heading(level int) (Buffer, error) {
	if level < 1 || level > 3 {
		return b, ErrBadArgument
	}
	return b.InsertAtCursor("\n" + strings.Repeat("#", level) + " Heading\n"), nil
}

func (b Buffer) BulletList() Buffer {
	return b.InsertAtCursor("\n- Item 1\n- Item 2\n- Item 3\n")
}

func (b Buffer) OrderedList() Buffer {
	return b.InsertAtCursor("\n1. Item 1\n2. Item 2\n3. Item 3\n")
}

func (b Buffer) Quote() Buffer   { return b.InsertAtCursor("\n> Quote\n") }
func (b Buffer) Divider() Buffer { return b.InsertAtCursor("\n---\n") }

func (b Buffer) Link(url string) (Buffer, error) {
	if strings.TrimSpace(url) == "" {
		return b, ErrBadArgument
	}
	return b.WrapSelection("[", "]("+strings.TrimSpace(url)+")"), nil
}

func (b Buffer) Color(hex string) (Buffer, error) {
	if !contains(ColorPalette, strings.ToLower(hex)) {
		return b, ErrBadArgument
	}
	return b.WrapSelection(`<span style="color:`+strings.ToLower(hex)+`">`, "</span>"), nil
}

func (b Buffer) FontSize(px int) (Buffer, error) {
	ok := false
	for _, size := range FontSizes {
		if size == px {
			ok = true
		}
	}
	if !ok {
		return b, ErrBadArgument
	}
	return b.WrapSelection(`<span style="font-size:`+strconv.Itoa(px)+`px">`, "</span>"), nil
}

// FAQBlock builds the [FAQ] skeleton from the structured dialog entries.
// Blank entries are skipped; at least one complete entry is required.
func (b Buffer) FAQBlock(entries []QA) (Buffer, error) {
	var sb strings.Builder
	sb.WriteString("\n[FAQ]\n")
	written := 0
	for _, entry := range entries {
		question := strings.TrimSpace(entry.Question)
		answer := strings.TrimSpace(entry.Answer)
		if question == "" || answer == "" {
			continue
		}
		sb.WriteString("[Q]" + question + "[/Q]\n")
		sb.WriteString("[A]" + answer + "[/A]\n")
		written++
	}
	if written == 0 {
		return b, ErrBadArgument
	}
	sb.WriteString("[/FAQ]\n")
	return b.InsertAtCursor(sb.String()), nil
}

// Table inserts a pipe-delimited rows x cols grid with a separator row.
func (b Buffer) Table(rows, cols int) (Buffer, error) {
	if rows < 1 || cols < 1 || rows > 20 || cols > 10 {
		return b, ErrBadArgument
	}
	var sb strings.Builder
	sb.WriteString("\n")
	writeRow := func(cell func(col int) string) {
		for col := 0; col < cols; col++ {
			sb.WriteString("| " + cell(col) + " ")
		}
		sb.WriteString("|\n")
	}
	writeRow(func(col int) string { return "Header " + strconv.Itoa(col+1) })
	writeRow(func(int) string { return "---" })
	for row := 0; row < rows; row++ {
		writeRow(func(int) string { return "Cell" })
	}
	return b.InsertAtCursor(sb.String()), nil
}

// Image inserts a markup image reference wrapped in blank lines, once the
// upload collaborator has produced the URL.
func (b Buffer) Image(url string) (Buffer, error) {
	if strings.TrimSpace(url) == "" {
		return b, ErrBadArgument
	}
	return b.InsertAtCursor("\n\n![](" + strings.TrimSpace(url) + ")\n\n"), nil
}

// Args carries the optional parameters of an Apply call.
type Args struct {
	Level int    `json:"level,omitempty"`
	URL   string `json:"url,omitempty"`
	Color string `json:"color,omitempty"`
	Size  int    `json:"size,omitempty"`
	Rows  int    `json:"rows,omitempty"`
	Cols  int    `json:"cols,omitempty"`
	FAQ   []QA   `json:"faq,omitempty"`
}

// Apply dispatches one named toolbar command against the buffer.
func Apply(b Buffer, command string, args Args) (Buffer, error) {
	switch command {
	case "bold":
		return b.Bold(), nil
	case "italic":
		return b.Italic(), nil
	case "underline":
		return b.Underline(), nil
	case "strikethrough":
		return b.Strikethrough(), nil
	case "code":
		return b.InlineCode(), nil
	case "heading":
		return b.Heading(args.Level)
	case "bullet-list":
		return b.BulletList(), nil
	case "ordered-list":
		return b.OrderedList(), nil
	case "quote":
		return b.Quote(), nil
	case "divider":
		return b.Divider(), nil
	case "link":
		return b.Link(args.URL)
	case "color":
		return b.Color(args.Color)
	case "font-size":
		return b.FontSize(args.Size)
	case "faq":
		return b.FAQBlock(args.FAQ)
	case "table":
		return b.Table(args.Rows, args.Cols)
	case "image":
		return b.Image(args.URL)
	default:
		return b, ErrUnknownCommand
	}
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
